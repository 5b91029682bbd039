package service

import (
	"context"
	"errors"

	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/repository"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GoalService is the entity model contract for goals plus the achievement
// engine. The achieved flag is derived state owned by this service: every
// write path that touches progress recomputes it, and CheckAllAchievements
// repairs drift introduced outside those paths.
type GoalService interface {
	Create(ctx context.Context, input *domain.Goal) (*domain.Goal, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Goal, error)
	List(ctx context.Context, filter repository.GoalFilter) ([]domain.Goal, int64, error)
	Update(ctx context.Context, id primitive.ObjectID, input *domain.Goal) (*domain.Goal, error)
	Delete(ctx context.Context, id primitive.ObjectID) error

	UpdateProgress(ctx context.Context, id primitive.ObjectID, value float64) (*domain.Goal, error)
	CheckAllAchievements(ctx context.Context) (int, error)

	GetRecent(ctx context.Context, limit int64) ([]domain.Goal, error)
	GetStatistics(ctx context.Context) (*domain.GoalStats, error)
	GetOverallStats(ctx context.Context) (*domain.GoalOverallStats, error)
}

type goalService struct {
	goalRepo repository.GoalRepository
}

// NewGoalService creates a new instance of goalService.
func NewGoalService(goalRepo repository.GoalRepository) GoalService {
	return &goalService{goalRepo: goalRepo}
}

// Create validates the input and persists a new goal. Progress always starts
// at zero and the achieved flag starts false regardless of the input; the
// target date must not be in the past at creation time.
func (s *goalService) Create(ctx context.Context, input *domain.Goal) (*domain.Goal, error) {
	input.CurrentValue = 0
	input.Achieved = false

	if verrs := input.Validate(true); !verrs.IsValid() {
		return nil, verrs
	}

	existing, err := s.goalRepo.FindByTitle(ctx, input.Title)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateName
	}

	id, err := s.goalRepo.Create(ctx, input)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateName
		}
		return nil, err
	}

	return s.goalRepo.GetByID(ctx, id)
}

// GetByID retrieves a single goal.
func (s *goalService) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Goal, error) {
	goal, err := s.goalRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return goal, nil
}

// List retrieves goals matching the filter plus the unpaginated total.
func (s *goalService) List(ctx context.Context, filter repository.GoalFilter) ([]domain.Goal, int64, error) {
	goals, total, err := s.goalRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	if goals == nil {
		goals = []domain.Goal{}
	}
	return goals, total, nil
}

// Update edits a goal's descriptive fields. Progress and the achieved flag
// are never touched here; changing the target does not retroactively flip
// achievement until the next progress write or reconciliation sweep.
func (s *goalService) Update(ctx context.Context, id primitive.ObjectID, input *domain.Goal) (*domain.Goal, error) {
	if verrs := input.Validate(false); !verrs.IsValid() {
		return nil, verrs
	}

	existing, err := s.goalRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	other, err := s.goalRepo.FindByTitle(ctx, input.Title)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if other != nil && other.ID != existing.ID {
		return nil, ErrDuplicateName
	}

	input.ID = existing.ID
	if err := s.goalRepo.Update(ctx, input); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrNotFound
		case errors.Is(err, repository.ErrNoChanges):
			return nil, ErrNoChanges
		default:
			return nil, err
		}
	}

	return s.goalRepo.GetByID(ctx, id)
}

// Delete removes a goal permanently.
func (s *goalService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := s.goalRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// UpdateProgress records a new progress value and recomputes the achieved
// flag against the stored target. current_value, achieved and updated_at are
// written as one document update. The target itself is never mutated here.
func (s *goalService) UpdateProgress(ctx context.Context, id primitive.ObjectID, value float64) (*domain.Goal, error) {
	if value < 0 {
		return nil, domain.ValidationErrors{"current_value": "progress value must not be negative"}
	}

	goal, err := s.goalRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	achieved := goal.AchievedFor(value)
	if err := s.goalRepo.UpdateProgress(ctx, id, value, achieved); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return s.goalRepo.GetByID(ctx, id)
}

// CheckAllAchievements recomputes the achievement predicate for every goal
// and rewrites only the documents whose stored flag disagrees. It returns
// the number of corrected goals; a second run right after a clean sweep
// returns zero. This is the on-demand repair for drift the storage layer
// cannot prevent.
func (s *goalService) CheckAllAchievements(ctx context.Context) (int, error) {
	goals, _, err := s.goalRepo.List(ctx, repository.GoalFilter{})
	if err != nil {
		return 0, err
	}

	corrected := 0
	for i := range goals {
		goal := &goals[i]
		shouldBe := goal.ShouldBeAchieved()
		if goal.Achieved == shouldBe {
			continue
		}
		if err := s.goalRepo.SetAchieved(ctx, goal.ID, shouldBe); err != nil {
			return corrected, err
		}
		logrus.WithFields(logrus.Fields{
			"goal":     goal.Title,
			"achieved": shouldBe,
		}).Info("corrected achievement status")
		corrected++
	}

	return corrected, nil
}

// GetRecent retrieves the most recently updated goals.
func (s *goalService) GetRecent(ctx context.Context, limit int64) ([]domain.Goal, error) {
	goals, err := s.goalRepo.GetRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	if goals == nil {
		goals = []domain.Goal{}
	}
	return goals, nil
}

// GetStatistics returns the goal dashboard section.
func (s *goalService) GetStatistics(ctx context.Context) (*domain.GoalStats, error) {
	return s.goalRepo.GetStatistics(ctx)
}

// GetOverallStats returns the extended goal report.
func (s *goalService) GetOverallStats(ctx context.Context) (*domain.GoalOverallStats, error) {
	return s.goalRepo.GetOverallStats(ctx)
}
