package api

import (
	"net/http"
	"time"

	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/repository"
	"fittrack/fitness-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// WorkoutHandler holds the workout service dependency.
type WorkoutHandler struct {
	workoutService service.WorkoutService
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(workoutService service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

// WorkoutRequest is the full record supplied on create and update.
type WorkoutRequest struct {
	Name         string                   `json:"name"`
	Description  string                   `json:"description"`
	Duration     int                      `json:"duration"`
	Difficulty   string                   `json:"difficulty"`
	TargetMuscle string                   `json:"target_muscle"`
	Exercises    []domain.WorkoutExercise `json:"exercises"`
}

// WorkoutResponse is the presentation shape of a workout.
type WorkoutResponse struct {
	ID           string                   `json:"id"`
	Name         string                   `json:"name"`
	Description  string                   `json:"description"`
	Duration     int                      `json:"duration"`
	Difficulty   string                   `json:"difficulty"`
	TargetMuscle string                   `json:"target_muscle,omitempty"`
	Exercises    []domain.WorkoutExercise `json:"exercises"`
	CreatedAt    time.Time                `json:"created_at"`
	UpdatedAt    time.Time                `json:"updated_at"`
}

func (r *WorkoutRequest) toDomain() *domain.Workout {
	return &domain.Workout{
		Name:         r.Name,
		Description:  r.Description,
		Duration:     r.Duration,
		Difficulty:   r.Difficulty,
		TargetMuscle: r.TargetMuscle,
		Exercises:    r.Exercises,
	}
}

// MapWorkoutToResponse converts a domain.Workout to its presentation shape.
func MapWorkoutToResponse(workout *domain.Workout) WorkoutResponse {
	if workout == nil {
		return WorkoutResponse{}
	}
	response := WorkoutResponse{
		ID:           workout.ID.Hex(),
		Name:         workout.Name,
		Description:  workout.Description,
		Duration:     workout.Duration,
		Difficulty:   workout.Difficulty,
		TargetMuscle: workout.TargetMuscle,
		Exercises:    workout.Exercises,
		CreatedAt:    workout.CreatedAt,
		UpdatedAt:    workout.UpdatedAt,
	}
	if response.Exercises == nil {
		response.Exercises = []domain.WorkoutExercise{}
	}
	return response
}

// MapWorkoutsToResponse converts a slice of workouts.
func MapWorkoutsToResponse(workouts []domain.Workout) []WorkoutResponse {
	responses := make([]WorkoutResponse, len(workouts))
	for i := range workouts {
		responses[i] = MapWorkoutToResponse(&workouts[i])
	}
	return responses
}

// CreateWorkout handles POST /workouts.
func (h *WorkoutHandler) CreateWorkout(c *gin.Context) {
	var req WorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	workout, err := h.workoutService.Create(c.Request.Context(), req.toDomain())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapWorkoutToResponse(workout))
}

// GetWorkout handles GET /workouts/:id.
func (h *WorkoutHandler) GetWorkout(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	workout, err := h.workoutService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapWorkoutToResponse(workout))
}

// ListWorkouts handles GET /workouts with filters and pagination.
func (h *WorkoutHandler) ListWorkouts(c *gin.Context) {
	var page pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid pagination parameters")
		return
	}
	page.normalize()

	filter := repository.WorkoutFilter{
		Difficulty:   c.Query("difficulty"),
		TargetMuscle: c.Query("target_muscle"),
		Search:       c.Query("search"),
		Sort:         c.Query("sort"),
		Limit:        page.Limit,
		Skip:         page.Skip,
	}

	workouts, total, err := h.workoutService.List(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"workouts": MapWorkoutsToResponse(workouts),
		"total":    total,
	})
}

// UpdateWorkout handles PUT /workouts/:id with a complete record.
func (h *WorkoutHandler) UpdateWorkout(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req WorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	workout, err := h.workoutService.Update(c.Request.Context(), id, req.toDomain())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapWorkoutToResponse(workout))
}

// DeleteWorkout handles DELETE /workouts/:id.
func (h *WorkoutHandler) DeleteWorkout(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.workoutService.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "workout deleted"})
}

// GetWorkoutStatistics handles GET /workouts/statistics.
func (h *WorkoutHandler) GetWorkoutStatistics(c *gin.Context) {
	stats, err := h.workoutService.GetStatistics(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
