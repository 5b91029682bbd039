package service_test

import (
	"context"
	"strings"
	"time"

	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes. They keep documents in insertion order and
// mimic the storage layer's case-insensitive name matching and sentinel
// errors. Each fake exposes forcedErr to simulate a storage failure.

type fakeGoalRepo struct {
	goals     []domain.Goal
	forcedErr error

	setAchievedCalls    int
	updateProgressCalls int
}

func newFakeGoalRepo(goals ...domain.Goal) *fakeGoalRepo {
	repo := &fakeGoalRepo{}
	for _, goal := range goals {
		if goal.ID.IsZero() {
			goal.ID = primitive.NewObjectID()
		}
		repo.goals = append(repo.goals, goal)
	}
	return repo
}

func (r *fakeGoalRepo) Create(_ context.Context, goal *domain.Goal) (primitive.ObjectID, error) {
	if r.forcedErr != nil {
		return primitive.NilObjectID, r.forcedErr
	}
	stored := *goal
	stored.ID = primitive.NewObjectID()
	stored.CreatedAt = time.Now().UTC()
	stored.UpdatedAt = stored.CreatedAt
	r.goals = append(r.goals, stored)
	return stored.ID, nil
}

func (r *fakeGoalRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Goal, error) {
	if r.forcedErr != nil {
		return nil, r.forcedErr
	}
	for i := range r.goals {
		if r.goals[i].ID == id {
			goal := r.goals[i]
			return &goal, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeGoalRepo) FindByTitle(_ context.Context, title string) (*domain.Goal, error) {
	if r.forcedErr != nil {
		return nil, r.forcedErr
	}
	for i := range r.goals {
		if strings.EqualFold(r.goals[i].Title, title) {
			goal := r.goals[i]
			return &goal, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeGoalRepo) List(_ context.Context, filter repository.GoalFilter) ([]domain.Goal, int64, error) {
	if r.forcedErr != nil {
		return nil, 0, r.forcedErr
	}
	var matched []domain.Goal
	for _, goal := range r.goals {
		if filter.GoalType != "" && goal.GoalType != filter.GoalType {
			continue
		}
		if filter.Achieved != nil && goal.Achieved != *filter.Achieved {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(goal.Title), strings.ToLower(filter.Search)) {
			continue
		}
		matched = append(matched, goal)
	}
	total := int64(len(matched))
	if filter.Skip > 0 {
		if filter.Skip >= total {
			matched = nil
		} else {
			matched = matched[filter.Skip:]
		}
	}
	if filter.Limit > 0 && int64(len(matched)) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}

func (r *fakeGoalRepo) Update(_ context.Context, goal *domain.Goal) error {
	if r.forcedErr != nil {
		return r.forcedErr
	}
	for i := range r.goals {
		if r.goals[i].ID == goal.ID {
			updated := *goal
			updated.CurrentValue = r.goals[i].CurrentValue
			updated.Achieved = r.goals[i].Achieved
			updated.CreatedAt = r.goals[i].CreatedAt
			updated.UpdatedAt = time.Now().UTC()
			r.goals[i] = updated
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeGoalRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if r.forcedErr != nil {
		return r.forcedErr
	}
	for i := range r.goals {
		if r.goals[i].ID == id {
			r.goals = append(r.goals[:i], r.goals[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeGoalRepo) UpdateProgress(_ context.Context, id primitive.ObjectID, value float64, achieved bool) error {
	if r.forcedErr != nil {
		return r.forcedErr
	}
	r.updateProgressCalls++
	for i := range r.goals {
		if r.goals[i].ID == id {
			r.goals[i].CurrentValue = value
			r.goals[i].Achieved = achieved
			r.goals[i].UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeGoalRepo) SetAchieved(_ context.Context, id primitive.ObjectID, achieved bool) error {
	if r.forcedErr != nil {
		return r.forcedErr
	}
	r.setAchievedCalls++
	for i := range r.goals {
		if r.goals[i].ID == id {
			r.goals[i].Achieved = achieved
			r.goals[i].UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeGoalRepo) GetRecent(_ context.Context, limit int64) ([]domain.Goal, error) {
	if r.forcedErr != nil {
		return nil, r.forcedErr
	}
	goals := append([]domain.Goal(nil), r.goals...)
	if limit > 0 && int64(len(goals)) > limit {
		goals = goals[:limit]
	}
	return goals, nil
}

func (r *fakeGoalRepo) GetOverallStats(_ context.Context) (*domain.GoalOverallStats, error) {
	if r.forcedErr != nil {
		return nil, r.forcedErr
	}
	return &domain.GoalOverallStats{Total: int64(len(r.goals))}, nil
}

func (r *fakeGoalRepo) GetStatistics(_ context.Context) (*domain.GoalStats, error) {
	if r.forcedErr != nil {
		return nil, r.forcedErr
	}
	stats := &domain.GoalStats{Total: int64(len(r.goals))}
	for _, goal := range r.goals {
		if goal.Achieved {
			stats.Achieved++
		} else {
			stats.InProgress++
		}
	}
	return stats, nil
}

func (r *fakeGoalRepo) GetTypeStats(_ context.Context) ([]domain.GoalTypeStat, error) {
	if r.forcedErr != nil {
		return nil, r.forcedErr
	}
	return nil, nil
}

func (r *fakeGoalRepo) GetProgressDistribution(_ context.Context) ([]domain.ProgressBucket, error) {
	if r.forcedErr != nil {
		return nil, r.forcedErr
	}
	return nil, nil
}

func (r *fakeGoalRepo) GetMonthlyStats(_ context.Context, _ int64) ([]domain.MonthlyGoalStat, error) {
	if r.forcedErr != nil {
		return nil, r.forcedErr
	}
	return nil, nil
}

type fakeExerciseRepo struct {
	exercises []domain.Exercise
	forcedErr error
}

func newFakeExerciseRepo(exercises ...domain.Exercise) *fakeExerciseRepo {
	repo := &fakeExerciseRepo{}
	for _, exercise := range exercises {
		if exercise.ID.IsZero() {
			exercise.ID = primitive.NewObjectID()
		}
		repo.exercises = append(repo.exercises, exercise)
	}
	return repo
}

func (r *fakeExerciseRepo) Create(_ context.Context, exercise *domain.Exercise) (primitive.ObjectID, error) {
	if r.forcedErr != nil {
		return primitive.NilObjectID, r.forcedErr
	}
	stored := *exercise
	stored.ID = primitive.NewObjectID()
	stored.CreatedAt = time.Now().UTC()
	stored.UpdatedAt = stored.CreatedAt
	r.exercises = append(r.exercises, stored)
	return stored.ID, nil
}

func (r *fakeExerciseRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	if r.forcedErr != nil {
		return nil, r.forcedErr
	}
	for i := range r.exercises {
		if r.exercises[i].ID == id {
			exercise := r.exercises[i]
			return &exercise, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeExerciseRepo) FindByName(_ context.Context, name string) (*domain.Exercise, error) {
	if r.forcedErr != nil {
		return nil, r.forcedErr
	}
	for i := range r.exercises {
		if strings.EqualFold(r.exercises[i].Name, name) {
			exercise := r.exercises[i]
			return &exercise, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeExerciseRepo) List(_ context.Context, filter repository.ExerciseFilter) ([]domain.Exercise, int64, error) {
	if r.forcedErr != nil {
		return nil, 0, r.forcedErr
	}
	var matched []domain.Exercise
	for _, exercise := range r.exercises {
		if filter.MuscleGroup != "" && exercise.MuscleGroup != filter.MuscleGroup {
			continue
		}
		if filter.Difficulty != "" && exercise.Difficulty != filter.Difficulty {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(exercise.Name), strings.ToLower(filter.Search)) {
			continue
		}
		matched = append(matched, exercise)
	}
	total := int64(len(matched))
	if filter.Skip > 0 {
		if filter.Skip >= total {
			matched = nil
		} else {
			matched = matched[filter.Skip:]
		}
	}
	if filter.Limit > 0 && int64(len(matched)) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}

func (r *fakeExerciseRepo) FindByMuscleGroup(_ context.Context, muscleGroup string, exclude primitive.ObjectID, limit int64) ([]domain.Exercise, error) {
	if r.forcedErr != nil {
		return nil, r.forcedErr
	}
	var matched []domain.Exercise
	for _, exercise := range r.exercises {
		if exercise.MuscleGroup != muscleGroup || exercise.ID == exclude {
			continue
		}
		matched = append(matched, exercise)
		if limit > 0 && int64(len(matched)) == limit {
			break
		}
	}
	return matched, nil
}

func (r *fakeExerciseRepo) Update(_ context.Context, exercise *domain.Exercise) error {
	if r.forcedErr != nil {
		return r.forcedErr
	}
	for i := range r.exercises {
		if r.exercises[i].ID == exercise.ID {
			updated := *exercise
			updated.CreatedAt = r.exercises[i].CreatedAt
			updated.UpdatedAt = time.Now().UTC()
			r.exercises[i] = updated
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeExerciseRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if r.forcedErr != nil {
		return r.forcedErr
	}
	for i := range r.exercises {
		if r.exercises[i].ID == id {
			r.exercises = append(r.exercises[:i], r.exercises[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeExerciseRepo) GetStatistics(_ context.Context) (*domain.ExerciseStats, error) {
	if r.forcedErr != nil {
		return nil, r.forcedErr
	}
	return &domain.ExerciseStats{Total: int64(len(r.exercises))}, nil
}

func (r *fakeExerciseRepo) FilterOptions(_ context.Context) (*domain.FilterOptions, error) {
	if r.forcedErr != nil {
		return nil, r.forcedErr
	}
	return &domain.FilterOptions{}, nil
}

type fakeWorkoutRepo struct {
	workouts  []domain.Workout
	forcedErr error
}

func (r *fakeWorkoutRepo) Create(_ context.Context, workout *domain.Workout) (primitive.ObjectID, error) {
	if r.forcedErr != nil {
		return primitive.NilObjectID, r.forcedErr
	}
	stored := *workout
	stored.ID = primitive.NewObjectID()
	r.workouts = append(r.workouts, stored)
	return stored.ID, nil
}

func (r *fakeWorkoutRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Workout, error) {
	if r.forcedErr != nil {
		return nil, r.forcedErr
	}
	for i := range r.workouts {
		if r.workouts[i].ID == id {
			workout := r.workouts[i]
			return &workout, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeWorkoutRepo) FindByName(_ context.Context, name string) (*domain.Workout, error) {
	if r.forcedErr != nil {
		return nil, r.forcedErr
	}
	for i := range r.workouts {
		if strings.EqualFold(r.workouts[i].Name, name) {
			workout := r.workouts[i]
			return &workout, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeWorkoutRepo) List(_ context.Context, _ repository.WorkoutFilter) ([]domain.Workout, int64, error) {
	if r.forcedErr != nil {
		return nil, 0, r.forcedErr
	}
	return append([]domain.Workout(nil), r.workouts...), int64(len(r.workouts)), nil
}

func (r *fakeWorkoutRepo) Update(_ context.Context, workout *domain.Workout) error {
	if r.forcedErr != nil {
		return r.forcedErr
	}
	for i := range r.workouts {
		if r.workouts[i].ID == workout.ID {
			r.workouts[i] = *workout
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeWorkoutRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if r.forcedErr != nil {
		return r.forcedErr
	}
	for i := range r.workouts {
		if r.workouts[i].ID == id {
			r.workouts = append(r.workouts[:i], r.workouts[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeWorkoutRepo) GetStatistics(_ context.Context) (*domain.WorkoutStats, error) {
	if r.forcedErr != nil {
		return nil, r.forcedErr
	}
	return &domain.WorkoutStats{Total: int64(len(r.workouts))}, nil
}

type fakeCategoryRepo struct {
	categories []domain.Category
	forcedErr  error
}

func (r *fakeCategoryRepo) Create(_ context.Context, category *domain.Category) (primitive.ObjectID, error) {
	if r.forcedErr != nil {
		return primitive.NilObjectID, r.forcedErr
	}
	stored := *category
	stored.ID = primitive.NewObjectID()
	r.categories = append(r.categories, stored)
	return stored.ID, nil
}

func (r *fakeCategoryRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Category, error) {
	if r.forcedErr != nil {
		return nil, r.forcedErr
	}
	for i := range r.categories {
		if r.categories[i].ID == id {
			category := r.categories[i]
			return &category, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeCategoryRepo) FindByName(_ context.Context, name string) (*domain.Category, error) {
	if r.forcedErr != nil {
		return nil, r.forcedErr
	}
	for i := range r.categories {
		if strings.EqualFold(r.categories[i].Name, name) {
			category := r.categories[i]
			return &category, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeCategoryRepo) List(_ context.Context) ([]domain.Category, error) {
	if r.forcedErr != nil {
		return nil, r.forcedErr
	}
	return append([]domain.Category(nil), r.categories...), nil
}

func (r *fakeCategoryRepo) GetStatistics(_ context.Context) ([]domain.CategoryStat, error) {
	if r.forcedErr != nil {
		return nil, r.forcedErr
	}
	return nil, nil
}

type fakeSessionRepo struct {
	sessions  []domain.WorkoutSession
	forcedErr error
}

func (r *fakeSessionRepo) Create(_ context.Context, session *domain.WorkoutSession) (primitive.ObjectID, error) {
	if r.forcedErr != nil {
		return primitive.NilObjectID, r.forcedErr
	}
	stored := *session
	stored.ID = primitive.NewObjectID()
	if stored.Date.IsZero() {
		stored.Date = stored.StartTime
	}
	r.sessions = append(r.sessions, stored)
	return stored.ID, nil
}

func (r *fakeSessionRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.WorkoutSession, error) {
	if r.forcedErr != nil {
		return nil, r.forcedErr
	}
	for i := range r.sessions {
		if r.sessions[i].ID == id {
			session := r.sessions[i]
			return &session, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeSessionRepo) List(_ context.Context, limit int64) ([]domain.WorkoutSession, error) {
	if r.forcedErr != nil {
		return nil, r.forcedErr
	}
	sessions := append([]domain.WorkoutSession(nil), r.sessions...)
	if limit > 0 && int64(len(sessions)) > limit {
		sessions = sessions[:limit]
	}
	return sessions, nil
}

func (r *fakeSessionRepo) Update(_ context.Context, session *domain.WorkoutSession) error {
	if r.forcedErr != nil {
		return r.forcedErr
	}
	for i := range r.sessions {
		if r.sessions[i].ID == session.ID {
			r.sessions[i] = *session
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeSessionRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if r.forcedErr != nil {
		return r.forcedErr
	}
	for i := range r.sessions {
		if r.sessions[i].ID == id {
			r.sessions = append(r.sessions[:i], r.sessions[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeActivityRepo struct {
	goals       []domain.Goal
	workouts    []domain.Workout
	goalsErr    error
	workoutsErr error
}

func (r *fakeActivityRepo) RecentGoals(_ context.Context, limit int64) ([]domain.Goal, error) {
	if r.goalsErr != nil {
		return nil, r.goalsErr
	}
	goals := append([]domain.Goal(nil), r.goals...)
	if limit > 0 && int64(len(goals)) > limit {
		goals = goals[:limit]
	}
	return goals, nil
}

func (r *fakeActivityRepo) RecentWorkouts(_ context.Context, limit int64) ([]domain.Workout, error) {
	if r.workoutsErr != nil {
		return nil, r.workoutsErr
	}
	workouts := append([]domain.Workout(nil), r.workouts...)
	if limit > 0 && int64(len(workouts)) > limit {
		workouts = workouts[:limit]
	}
	return workouts, nil
}
