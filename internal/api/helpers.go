package api

import (
	"errors"
	"net/http"

	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// abortWithError sends a JSON error response and stops the handler chain.
func abortWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// parseIDParam reads the :id path parameter. A malformed id is reported as
// not-found, not as a distinct error class.
func parseIDParam(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusNotFound, "resource not found")
		return primitive.NilObjectID, false
	}
	return id, true
}

// respondServiceError translates the service error taxonomy into HTTP
// results. Validation and duplicate failures surface field-level detail;
// anything unexpected is logged in full and reported generically.
func respondServiceError(c *gin.Context, err error) {
	var verrs domain.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "validation failed",
			"fields": verrs,
		})
	case errors.Is(err, service.ErrDuplicateName):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNoChanges):
		c.JSON(http.StatusOK, gin.H{"message": err.Error()})
	default:
		logrus.WithError(err).WithField("path", c.FullPath()).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "an unexpected error occurred"})
	}
}

// pagination reads limit/skip query parameters, clamping negatives to zero.
type pagination struct {
	Limit int64 `form:"limit"`
	Skip  int64 `form:"skip"`
}

func (p *pagination) normalize() {
	if p.Limit < 0 {
		p.Limit = 0
	}
	if p.Skip < 0 {
		p.Skip = 0
	}
}
