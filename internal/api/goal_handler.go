package api

import (
	"net/http"
	"time"

	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/repository"
	"fittrack/fitness-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// GoalHandler holds the goal service dependency.
type GoalHandler struct {
	goalService service.GoalService
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(goalService service.GoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

// GoalRequest is the editable part of a goal. current_value and achieved
// are intentionally absent: progress only moves through the progress
// endpoint and achievement is derived.
type GoalRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	GoalType    string     `json:"goal_type"`
	TargetValue float64    `json:"target_value"`
	Unit        string     `json:"unit"`
	TargetDate  *time.Time `json:"target_date"`
}

// ProgressRequest carries a new progress value.
type ProgressRequest struct {
	CurrentValue float64 `json:"current_value"`
}

// GoalResponse is the presentation shape of a goal.
type GoalResponse struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	GoalType        string     `json:"goal_type"`
	TargetValue     float64    `json:"target_value"`
	CurrentValue    float64    `json:"current_value"`
	Unit            string     `json:"unit"`
	Achieved        bool       `json:"achieved"`
	ProgressPercent float64    `json:"progress_percent"`
	TargetDate      *time.Time `json:"target_date"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (r *GoalRequest) toDomain() *domain.Goal {
	return &domain.Goal{
		Title:       r.Title,
		Description: r.Description,
		GoalType:    r.GoalType,
		TargetValue: r.TargetValue,
		Unit:        r.Unit,
		TargetDate:  r.TargetDate,
	}
}

// MapGoalToResponse converts a domain.Goal to its presentation shape.
func MapGoalToResponse(goal *domain.Goal) GoalResponse {
	if goal == nil {
		return GoalResponse{}
	}
	return GoalResponse{
		ID:              goal.ID.Hex(),
		Title:           goal.Title,
		Description:     goal.Description,
		GoalType:        goal.GoalType,
		TargetValue:     goal.TargetValue,
		CurrentValue:    goal.CurrentValue,
		Unit:            goal.Unit,
		Achieved:        goal.Achieved,
		ProgressPercent: goal.ProgressPercent(),
		TargetDate:      goal.TargetDate,
		CreatedAt:       goal.CreatedAt,
		UpdatedAt:       goal.UpdatedAt,
	}
}

// MapGoalsToResponse converts a slice of goals.
func MapGoalsToResponse(goals []domain.Goal) []GoalResponse {
	responses := make([]GoalResponse, len(goals))
	for i := range goals {
		responses[i] = MapGoalToResponse(&goals[i])
	}
	return responses
}

// CreateGoal handles POST /goals.
func (h *GoalHandler) CreateGoal(c *gin.Context) {
	var req GoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	goal, err := h.goalService.Create(c.Request.Context(), req.toDomain())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapGoalToResponse(goal))
}

// GetGoal handles GET /goals/:id.
func (h *GoalHandler) GetGoal(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	goal, err := h.goalService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapGoalToResponse(goal))
}

// ListGoals handles GET /goals with filters and pagination.
func (h *GoalHandler) ListGoals(c *gin.Context) {
	var page pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid pagination parameters")
		return
	}
	page.normalize()

	filter := repository.GoalFilter{
		GoalType: c.Query("goal_type"),
		Search:   c.Query("search"),
		Limit:    page.Limit,
		Skip:     page.Skip,
	}
	if achievedParam := c.Query("achieved"); achievedParam != "" {
		achieved := achievedParam == "true"
		filter.Achieved = &achieved
	}

	goals, total, err := h.goalService.List(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"goals": MapGoalsToResponse(goals),
		"total": total,
	})
}

// UpdateGoal handles PUT /goals/:id for the editable fields.
func (h *GoalHandler) UpdateGoal(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req GoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	goal, err := h.goalService.Update(c.Request.Context(), id, req.toDomain())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapGoalToResponse(goal))
}

// UpdateProgress handles PUT /goals/:id/progress.
func (h *GoalHandler) UpdateProgress(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req ProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	goal, err := h.goalService.UpdateProgress(c.Request.Context(), id, req.CurrentValue)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapGoalToResponse(goal))
}

// DeleteGoal handles DELETE /goals/:id.
func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.goalService.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "goal deleted"})
}

// CheckAchievements handles POST /goals/check-achievements, the on-demand
// reconciliation sweep.
func (h *GoalHandler) CheckAchievements(c *gin.Context) {
	corrected, err := h.goalService.CheckAllAchievements(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"corrected": corrected})
}

// GetGoalStatistics handles GET /goals/statistics.
func (h *GoalHandler) GetGoalStatistics(c *gin.Context) {
	stats, err := h.goalService.GetStatistics(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetOverallStats handles GET /goals/overall-stats.
func (h *GoalHandler) GetOverallStats(c *gin.Context) {
	stats, err := h.goalService.GetOverallStats(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetRecentGoals handles GET /goals/recent.
func (h *GoalHandler) GetRecentGoals(c *gin.Context) {
	goals, err := h.goalService.GetRecent(c.Request.Context(), recentGoalsLimit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapGoalsToResponse(goals))
}

const recentGoalsLimit = 5
