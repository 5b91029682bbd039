package repository

import (
	"context"

	"fittrack/fitness-tracker/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Sentinel errors for the repository layer. Services map these onto their
// own error taxonomy with errors.Is.
var (
	ErrNotFound  = RepositoryError("not found")
	ErrDuplicate = RepositoryError("duplicate entry")
	ErrNoChanges = RepositoryError("no changes")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// Sort orders supported by the list operations.
const (
	SortNewest     = "newest"
	SortName       = "name"
	SortDifficulty = "difficulty"
)

// ExerciseFilter narrows an exercise listing. Zero values mean "no filter".
// Limit/Skip paginate the result; the reported total ignores them.
type ExerciseFilter struct {
	MuscleGroup string
	Difficulty  string
	Equipment   string
	CategoryID  *primitive.ObjectID
	Search      string
	Sort        string
	Limit       int64
	Skip        int64
}

// WorkoutFilter narrows a workout listing.
type WorkoutFilter struct {
	Difficulty   string
	TargetMuscle string
	Search       string
	Sort         string
	Limit        int64
	Skip         int64
}

// GoalFilter narrows a goal listing. Achieved is a tri-state: nil means both.
type GoalFilter struct {
	GoalType string
	Achieved *bool
	Search   string
	Limit    int64
	Skip     int64
}

// ExerciseRepository defines the storage contract for exercises.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	FindByName(ctx context.Context, name string) (*domain.Exercise, error)
	List(ctx context.Context, filter ExerciseFilter) ([]domain.Exercise, int64, error)
	FindByMuscleGroup(ctx context.Context, muscleGroup string, exclude primitive.ObjectID, limit int64) ([]domain.Exercise, error)
	Update(ctx context.Context, exercise *domain.Exercise) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	GetStatistics(ctx context.Context) (*domain.ExerciseStats, error)
	FilterOptions(ctx context.Context) (*domain.FilterOptions, error)
}

// WorkoutRepository defines the storage contract for workouts.
type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error)
	FindByName(ctx context.Context, name string) (*domain.Workout, error)
	List(ctx context.Context, filter WorkoutFilter) ([]domain.Workout, int64, error)
	Update(ctx context.Context, workout *domain.Workout) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	GetStatistics(ctx context.Context) (*domain.WorkoutStats, error)
}

// GoalRepository defines the storage contract for goals, including the two
// write primitives the achievement engine relies on.
type GoalRepository interface {
	Create(ctx context.Context, goal *domain.Goal) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Goal, error)
	FindByTitle(ctx context.Context, title string) (*domain.Goal, error)
	List(ctx context.Context, filter GoalFilter) ([]domain.Goal, int64, error)
	Update(ctx context.Context, goal *domain.Goal) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	// UpdateProgress writes current_value, achieved and updated_at as a
	// single document update.
	UpdateProgress(ctx context.Context, id primitive.ObjectID, value float64, achieved bool) error
	// SetAchieved corrects only the achieved flag (plus updated_at); used by
	// the reconciliation sweep.
	SetAchieved(ctx context.Context, id primitive.ObjectID, achieved bool) error

	GetRecent(ctx context.Context, limit int64) ([]domain.Goal, error)
	GetOverallStats(ctx context.Context) (*domain.GoalOverallStats, error)
	GetStatistics(ctx context.Context) (*domain.GoalStats, error)
	GetTypeStats(ctx context.Context) ([]domain.GoalTypeStat, error)
	GetProgressDistribution(ctx context.Context) ([]domain.ProgressBucket, error)
	GetMonthlyStats(ctx context.Context, months int64) ([]domain.MonthlyGoalStat, error)
}

// CategoryRepository defines the storage contract for exercise categories.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Category, error)
	FindByName(ctx context.Context, name string) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
	GetStatistics(ctx context.Context) ([]domain.CategoryStat, error)
}

// SessionRepository defines the storage contract for workout sessions.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.WorkoutSession) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutSession, error)
	List(ctx context.Context, limit int64) ([]domain.WorkoutSession, error)
	Update(ctx context.Context, session *domain.WorkoutSession) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// RecentActivityRepository serves the combined activity feed. The goal and
// workout queries are independent; results are never merge-sorted.
type RecentActivityRepository interface {
	RecentGoals(ctx context.Context, limit int64) ([]domain.Goal, error)
	RecentWorkouts(ctx context.Context, limit int64) ([]domain.Workout, error)
}
