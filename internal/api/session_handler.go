package api

import (
	"net/http"
	"time"

	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SessionHandler holds the workout session service dependency.
type SessionHandler struct {
	sessionService service.SessionService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessionService service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// SessionRequest is the request body for starting a session.
type SessionRequest struct {
	WorkoutID *string   `json:"workout_id"`
	StartTime time.Time `json:"start_time"`
	Notes     string    `json:"notes"`
}

// CompleteSessionRequest is the request body for finishing a session.
type CompleteSessionRequest struct {
	EndTime time.Time `json:"end_time"`
	Notes   string    `json:"notes"`
}

func (r *SessionRequest) toDomain() (*domain.WorkoutSession, domain.ValidationErrors) {
	session := &domain.WorkoutSession{
		StartTime: r.StartTime,
		Notes:     r.Notes,
	}
	if r.WorkoutID != nil && *r.WorkoutID != "" {
		workoutID, err := primitive.ObjectIDFromHex(*r.WorkoutID)
		if err != nil {
			return nil, domain.ValidationErrors{"workout_id": "invalid workout reference"}
		}
		session.WorkoutID = &workoutID
	}
	return session, nil
}

// CreateSession handles POST /sessions.
func (h *SessionHandler) CreateSession(c *gin.Context) {
	var req SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	input, verrs := req.toDomain()
	if !verrs.IsValid() {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":  "validation failed",
			"fields": verrs,
		})
		return
	}

	session, err := h.sessionService.Create(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

// GetSession handles GET /sessions/:id.
func (h *SessionHandler) GetSession(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	session, err := h.sessionService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// ListSessions handles GET /sessions.
func (h *SessionHandler) ListSessions(c *gin.Context) {
	var page pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid pagination parameters")
		return
	}
	page.normalize()

	sessions, err := h.sessionService.List(c.Request.Context(), page.Limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if sessions == nil {
		sessions = []domain.WorkoutSession{}
	}
	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

// CompleteSession handles PUT /sessions/:id/complete.
func (h *SessionHandler) CompleteSession(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req CompleteSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	session, err := h.sessionService.Complete(c.Request.Context(), id, req.EndTime, req.Notes)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// DeleteSession handles DELETE /sessions/:id.
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.sessionService.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "session deleted"})
}
