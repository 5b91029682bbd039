package service

import (
	"context"
	"errors"

	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const relatedExercisesLimit = 5

// ExerciseService is the entity model contract for exercises: validate,
// persist, format.
type ExerciseService interface {
	Create(ctx context.Context, input *domain.Exercise) (*domain.Exercise, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	List(ctx context.Context, filter repository.ExerciseFilter) ([]domain.Exercise, int64, error)
	Related(ctx context.Context, id primitive.ObjectID) ([]domain.Exercise, error)
	Update(ctx context.Context, id primitive.ObjectID, input *domain.Exercise) (*domain.Exercise, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	GetStatistics(ctx context.Context) (*domain.ExerciseStats, error)
	FilterOptions(ctx context.Context) (*domain.FilterOptions, error)
}

type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(exerciseRepo repository.ExerciseRepository) ExerciseService {
	return &exerciseService{exerciseRepo: exerciseRepo}
}

// Create validates the input, rejects duplicates by name (case-insensitive)
// and persists the exercise. The stored record is re-fetched so the caller
// gets the server-assigned id and timestamps.
func (s *exerciseService) Create(ctx context.Context, input *domain.Exercise) (*domain.Exercise, error) {
	if verrs := input.Validate(); !verrs.IsValid() {
		return nil, verrs
	}

	existing, err := s.exerciseRepo.FindByName(ctx, input.Name)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateName
	}

	id, err := s.exerciseRepo.Create(ctx, input)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateName
		}
		return nil, err
	}

	return s.exerciseRepo.GetByID(ctx, id)
}

// GetByID retrieves a single exercise.
func (s *exerciseService) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return exercise, nil
}

// List retrieves exercises matching the filter. The returned total counts
// all matches regardless of pagination.
func (s *exerciseService) List(ctx context.Context, filter repository.ExerciseFilter) ([]domain.Exercise, int64, error) {
	exercises, total, err := s.exerciseRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	if exercises == nil {
		exercises = []domain.Exercise{}
	}
	return exercises, total, nil
}

// Related retrieves other exercises for the same muscle group.
func (s *exerciseService) Related(ctx context.Context, id primitive.ObjectID) ([]domain.Exercise, error) {
	exercise, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	related, err := s.exerciseRepo.FindByMuscleGroup(ctx, exercise.MuscleGroup, id, relatedExercisesLimit)
	if err != nil {
		return nil, err
	}
	if related == nil {
		related = []domain.Exercise{}
	}
	return related, nil
}

// Update re-validates the full input and replaces the stored record.
// Partial updates are not supported.
func (s *exerciseService) Update(ctx context.Context, id primitive.ObjectID, input *domain.Exercise) (*domain.Exercise, error) {
	if verrs := input.Validate(); !verrs.IsValid() {
		return nil, verrs
	}

	existing, err := s.exerciseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	// Renaming onto another exercise's name is still a duplicate.
	other, err := s.exerciseRepo.FindByName(ctx, input.Name)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if other != nil && other.ID != existing.ID {
		return nil, ErrDuplicateName
	}

	input.ID = existing.ID
	if err := s.exerciseRepo.Update(ctx, input); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrNotFound
		case errors.Is(err, repository.ErrNoChanges):
			return nil, ErrNoChanges
		default:
			return nil, err
		}
	}

	return s.exerciseRepo.GetByID(ctx, id)
}

// Delete removes an exercise permanently.
func (s *exerciseService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := s.exerciseRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// GetStatistics returns the exercise distribution report.
func (s *exerciseService) GetStatistics(ctx context.Context) (*domain.ExerciseStats, error) {
	return s.exerciseRepo.GetStatistics(ctx)
}

// FilterOptions returns the distinct values for the filter dropdowns.
func (s *exerciseService) FilterOptions(ctx context.Context) (*domain.FilterOptions, error) {
	return s.exerciseRepo.FilterOptions(ctx)
}
