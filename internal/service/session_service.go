package service

import (
	"context"
	"errors"
	"math"
	"time"

	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SessionService manages the workout session log. Sessions carry no derived
// state; completing one just stamps the end time and duration.
type SessionService interface {
	Create(ctx context.Context, input *domain.WorkoutSession) (*domain.WorkoutSession, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutSession, error)
	List(ctx context.Context, limit int64) ([]domain.WorkoutSession, error)
	Complete(ctx context.Context, id primitive.ObjectID, endTime time.Time, notes string) (*domain.WorkoutSession, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type sessionService struct {
	sessionRepo repository.SessionRepository
}

// NewSessionService creates a new instance of sessionService.
func NewSessionService(sessionRepo repository.SessionRepository) SessionService {
	return &sessionService{sessionRepo: sessionRepo}
}

// Create validates and persists a new session log entry.
func (s *sessionService) Create(ctx context.Context, input *domain.WorkoutSession) (*domain.WorkoutSession, error) {
	if verrs := input.Validate(); !verrs.IsValid() {
		return nil, verrs
	}

	id, err := s.sessionRepo.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	return s.sessionRepo.GetByID(ctx, id)
}

// GetByID retrieves a single session.
func (s *sessionService) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutSession, error) {
	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return session, nil
}

// List retrieves sessions newest first.
func (s *sessionService) List(ctx context.Context, limit int64) ([]domain.WorkoutSession, error) {
	sessions, err := s.sessionRepo.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	if sessions == nil {
		sessions = []domain.WorkoutSession{}
	}
	return sessions, nil
}

// Complete marks a session finished, deriving its duration in whole minutes
// from the start and end times.
func (s *sessionService) Complete(ctx context.Context, id primitive.ObjectID, endTime time.Time, notes string) (*domain.WorkoutSession, error) {
	session, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if endTime.Before(session.StartTime) {
		return nil, domain.ValidationErrors{"end_time": "end time cannot be before start time"}
	}

	session.EndTime = &endTime
	session.Duration = int(math.Round(endTime.Sub(session.StartTime).Minutes()))
	session.Completed = true
	if notes != "" {
		session.Notes = notes
	}

	if err := s.sessionRepo.Update(ctx, session); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.sessionRepo.GetByID(ctx, id)
}

// Delete removes a session permanently.
func (s *sessionService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := s.sessionRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
