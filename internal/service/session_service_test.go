package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSessionService_Create_DefaultsDate(t *testing.T) {
	repo := &fakeSessionRepo{}
	svc := service.NewSessionService(repo)

	start := time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC)
	session, err := svc.Create(context.Background(), &domain.WorkoutSession{StartTime: start})
	require.NoError(t, err)
	assert.Equal(t, start, session.Date)
	assert.False(t, session.Completed)
}

func TestSessionService_Create_Invalid(t *testing.T) {
	svc := service.NewSessionService(&fakeSessionRepo{})

	_, err := svc.Create(context.Background(), &domain.WorkoutSession{})
	var verrs domain.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Contains(t, verrs, "start_time")
}

func TestSessionService_Complete(t *testing.T) {
	start := time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC)
	repo := &fakeSessionRepo{sessions: []domain.WorkoutSession{
		{ID: primitive.NewObjectID(), StartTime: start, Date: start},
	}}
	svc := service.NewSessionService(repo)

	end := start.Add(47*time.Minute + 40*time.Second)
	session, err := svc.Complete(context.Background(), repo.sessions[0].ID, end, "good session")
	require.NoError(t, err)
	assert.True(t, session.Completed)
	assert.Equal(t, 48, session.Duration)
	require.NotNil(t, session.EndTime)
	assert.Equal(t, end, *session.EndTime)
	assert.Equal(t, "good session", session.Notes)
}

func TestSessionService_Complete_EndBeforeStart(t *testing.T) {
	start := time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC)
	repo := &fakeSessionRepo{sessions: []domain.WorkoutSession{
		{ID: primitive.NewObjectID(), StartTime: start},
	}}
	svc := service.NewSessionService(repo)

	_, err := svc.Complete(context.Background(), repo.sessions[0].ID, start.Add(-time.Minute), "")
	var verrs domain.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Contains(t, verrs, "end_time")
}

func TestSessionService_Complete_NotFound(t *testing.T) {
	svc := service.NewSessionService(&fakeSessionRepo{})

	_, err := svc.Complete(context.Background(), primitive.NewObjectID(), time.Now(), "")
	assert.ErrorIs(t, err, service.ErrNotFound)
}
