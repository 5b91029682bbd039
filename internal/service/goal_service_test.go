package service_test

import (
	"context"
	"errors"
	"testing"

	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/repository"
	"fittrack/fitness-tracker/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func strengthGoal(title string, current, target float64, achieved bool) domain.Goal {
	return domain.Goal{
		ID:           primitive.NewObjectID(),
		Title:        title,
		Description:  "a goal description long enough to validate",
		GoalType:     "strength",
		TargetValue:  target,
		CurrentValue: current,
		Achieved:     achieved,
		Unit:         "kg",
	}
}

func TestGoalService_Create_ResetsProgress(t *testing.T) {
	repo := newFakeGoalRepo()
	svc := service.NewGoalService(repo)

	input := strengthGoal("Squat 140kg", 120, 140, true)
	input.ID = primitive.NilObjectID

	created, err := svc.Create(context.Background(), &input)
	require.NoError(t, err)
	assert.Zero(t, created.CurrentValue)
	assert.False(t, created.Achieved)
	assert.False(t, created.ID.IsZero())
}

func TestGoalService_Create_Invalid(t *testing.T) {
	svc := service.NewGoalService(newFakeGoalRepo())

	_, err := svc.Create(context.Background(), &domain.Goal{Title: "x"})
	require.Error(t, err)

	var verrs domain.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Contains(t, verrs, "title")
	assert.Contains(t, verrs, "target_value")
}

func TestGoalService_Create_DuplicateTitleCaseInsensitive(t *testing.T) {
	repo := newFakeGoalRepo(strengthGoal("Kreuzheben 180kg", 0, 180, false))
	svc := service.NewGoalService(repo)

	dup := strengthGoal("KREUZHEBEN 180KG", 0, 180, false)
	dup.ID = primitive.NilObjectID
	_, err := svc.Create(context.Background(), &dup)
	assert.ErrorIs(t, err, service.ErrDuplicateName)
}

func TestGoalService_UpdateProgress_RecomputesAchieved(t *testing.T) {
	repo := newFakeGoalRepo(strengthGoal("Squat 140kg", 100, 140, false))
	svc := service.NewGoalService(repo)
	id := repo.goals[0].ID

	// Below target stays unachieved.
	goal, err := svc.UpdateProgress(context.Background(), id, 139.5)
	require.NoError(t, err)
	assert.False(t, goal.Achieved)
	assert.InDelta(t, 139.5, goal.CurrentValue, 1e-9)

	// Reaching the target exactly flips the flag.
	goal, err = svc.UpdateProgress(context.Background(), id, 140)
	require.NoError(t, err)
	assert.True(t, goal.Achieved)

	// Dropping back below un-achieves again.
	goal, err = svc.UpdateProgress(context.Background(), id, 130)
	require.NoError(t, err)
	assert.False(t, goal.Achieved)

	assert.Equal(t, 3, repo.updateProgressCalls)
}

func TestGoalService_UpdateProgress_NegativeValue(t *testing.T) {
	repo := newFakeGoalRepo(strengthGoal("Squat 140kg", 100, 140, false))
	svc := service.NewGoalService(repo)

	_, err := svc.UpdateProgress(context.Background(), repo.goals[0].ID, -5)
	var verrs domain.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Contains(t, verrs, "current_value")
	assert.Zero(t, repo.updateProgressCalls)
}

func TestGoalService_UpdateProgress_NotFound(t *testing.T) {
	svc := service.NewGoalService(newFakeGoalRepo())

	_, err := svc.UpdateProgress(context.Background(), primitive.NewObjectID(), 10)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestGoalService_Update_NeverTouchesProgress(t *testing.T) {
	repo := newFakeGoalRepo(strengthGoal("Squat 140kg", 100, 140, false))
	svc := service.NewGoalService(repo)
	id := repo.goals[0].ID

	// Lowering the target below the current value does not flip achieved;
	// only the next progress write or sweep does.
	edited := strengthGoal("Squat 90kg", 0, 90, false)
	updated, err := svc.Update(context.Background(), id, &edited)
	require.NoError(t, err)
	assert.InDelta(t, 100, updated.CurrentValue, 1e-9)
	assert.InDelta(t, 90, updated.TargetValue, 1e-9)
	assert.False(t, updated.Achieved)

	corrected, err := svc.CheckAllAchievements(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, corrected)

	goal, err := svc.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, goal.Achieved)
}

func TestGoalService_CheckAllAchievements(t *testing.T) {
	repo := newFakeGoalRepo(
		strengthGoal("consistent achieved", 150, 100, true),
		strengthGoal("consistent active", 50, 100, false),
		strengthGoal("drifted should be achieved", 120, 100, false),
		strengthGoal("drifted should be active", 30, 100, true),
	)
	svc := service.NewGoalService(repo)

	corrected, err := svc.CheckAllAchievements(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, corrected)
	assert.Equal(t, 2, repo.setAchievedCalls)

	for _, goal := range repo.goals {
		assert.Equal(t, goal.ShouldBeAchieved(), goal.Achieved, goal.Title)
	}

	// A second sweep right after a clean one finds nothing to fix.
	corrected, err = svc.CheckAllAchievements(context.Background())
	require.NoError(t, err)
	assert.Zero(t, corrected)
	assert.Equal(t, 2, repo.setAchievedCalls)
}

func TestGoalService_CheckAllAchievements_Empty(t *testing.T) {
	svc := service.NewGoalService(newFakeGoalRepo())

	corrected, err := svc.CheckAllAchievements(context.Background())
	require.NoError(t, err)
	assert.Zero(t, corrected)
}

func TestGoalService_List_TotalIgnoresPagination(t *testing.T) {
	repo := newFakeGoalRepo(
		strengthGoal("goal one", 0, 100, false),
		strengthGoal("goal two", 0, 100, false),
		strengthGoal("goal three", 0, 100, false),
	)
	svc := service.NewGoalService(repo)

	goals, total, err := svc.List(context.Background(), repository.GoalFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, goals, 2)
	assert.EqualValues(t, 3, total)
}

func TestGoalService_List_AchievedTriState(t *testing.T) {
	repo := newFakeGoalRepo(
		strengthGoal("done", 100, 100, true),
		strengthGoal("open", 10, 100, false),
	)
	svc := service.NewGoalService(repo)

	achieved := true
	goals, total, err := svc.List(context.Background(), repository.GoalFilter{Achieved: &achieved})
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "done", goals[0].Title)

	goals, total, err = svc.List(context.Background(), repository.GoalFilter{})
	require.NoError(t, err)
	assert.Len(t, goals, 2)
	assert.EqualValues(t, 2, total)
}

func TestGoalService_List_NilBecomesEmpty(t *testing.T) {
	svc := service.NewGoalService(newFakeGoalRepo())

	goals, total, err := svc.List(context.Background(), repository.GoalFilter{})
	require.NoError(t, err)
	assert.NotNil(t, goals)
	assert.Empty(t, goals)
	assert.Zero(t, total)
}

func TestGoalService_Delete_NotFound(t *testing.T) {
	svc := service.NewGoalService(newFakeGoalRepo())
	assert.ErrorIs(t, svc.Delete(context.Background(), primitive.NewObjectID()), service.ErrNotFound)
}
