package api

import (
	"testing"

	"fittrack/fitness-tracker/internal/domain"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMapGoalToResponse(t *testing.T) {
	goal := &domain.Goal{
		ID:           primitive.NewObjectID(),
		Title:        "Squat 140kg",
		GoalType:     "strength",
		TargetValue:  140,
		CurrentValue: 70,
		Unit:         "kg",
	}

	response := MapGoalToResponse(goal)
	assert.Equal(t, goal.ID.Hex(), response.ID)
	assert.InDelta(t, 50, response.ProgressPercent, 1e-9)
	assert.False(t, response.Achieved)
	assert.Nil(t, response.TargetDate)
}

func TestMapGoalToResponse_ZeroTarget(t *testing.T) {
	goal := &domain.Goal{ID: primitive.NewObjectID(), CurrentValue: 10}
	assert.Zero(t, MapGoalToResponse(goal).ProgressPercent)
}

func TestMapGoalsToResponse_Empty(t *testing.T) {
	responses := MapGoalsToResponse(nil)
	assert.NotNil(t, responses)
	assert.Empty(t, responses)
}
