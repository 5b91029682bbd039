package service

import (
	"context"
	"errors"

	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutService is the entity model contract for workouts. Exercises inside
// a workout are referenced by name without integrity checks; a workout can
// legitimately name an exercise that no longer exists.
type WorkoutService interface {
	Create(ctx context.Context, input *domain.Workout) (*domain.Workout, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error)
	List(ctx context.Context, filter repository.WorkoutFilter) ([]domain.Workout, int64, error)
	Update(ctx context.Context, id primitive.ObjectID, input *domain.Workout) (*domain.Workout, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	GetStatistics(ctx context.Context) (*domain.WorkoutStats, error)
}

type workoutService struct {
	workoutRepo repository.WorkoutRepository
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(workoutRepo repository.WorkoutRepository) WorkoutService {
	return &workoutService{workoutRepo: workoutRepo}
}

// Create validates the input, rejects duplicate names case-insensitively
// and persists the workout.
func (s *workoutService) Create(ctx context.Context, input *domain.Workout) (*domain.Workout, error) {
	if verrs := input.Validate(); !verrs.IsValid() {
		return nil, verrs
	}

	existing, err := s.workoutRepo.FindByName(ctx, input.Name)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateName
	}

	id, err := s.workoutRepo.Create(ctx, input)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateName
		}
		return nil, err
	}

	return s.workoutRepo.GetByID(ctx, id)
}

// GetByID retrieves a single workout.
func (s *workoutService) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error) {
	workout, err := s.workoutRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return workout, nil
}

// List retrieves workouts matching the filter plus the unpaginated total.
func (s *workoutService) List(ctx context.Context, filter repository.WorkoutFilter) ([]domain.Workout, int64, error) {
	workouts, total, err := s.workoutRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	if workouts == nil {
		workouts = []domain.Workout{}
	}
	return workouts, total, nil
}

// Update re-validates the full input and replaces the stored record.
func (s *workoutService) Update(ctx context.Context, id primitive.ObjectID, input *domain.Workout) (*domain.Workout, error) {
	if verrs := input.Validate(); !verrs.IsValid() {
		return nil, verrs
	}

	existing, err := s.workoutRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	other, err := s.workoutRepo.FindByName(ctx, input.Name)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if other != nil && other.ID != existing.ID {
		return nil, ErrDuplicateName
	}

	input.ID = existing.ID
	if err := s.workoutRepo.Update(ctx, input); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrNotFound
		case errors.Is(err, repository.ErrNoChanges):
			return nil, ErrNoChanges
		default:
			return nil, err
		}
	}

	return s.workoutRepo.GetByID(ctx, id)
}

// Delete removes a workout permanently.
func (s *workoutService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := s.workoutRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// GetStatistics returns the workout distribution report.
func (s *workoutService) GetStatistics(ctx context.Context) (*domain.WorkoutStats, error) {
	return s.workoutRepo.GetStatistics(ctx)
}
