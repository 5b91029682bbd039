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
)

func chestExercise(name string) domain.Exercise {
	return domain.Exercise{
		ID:             primitive.NewObjectID(),
		Name:           name,
		Description:    "a pressing movement for the chest",
		Instructions:   "set up on the bench, unrack the bar, lower under control, press back up",
		MuscleGroup:    "Chest",
		Equipment:      "Barbell",
		Difficulty:     "Medium",
		PrimaryMuscles: []string{"Pectoralis Major"},
	}
}

func TestExerciseService_Create(t *testing.T) {
	repo := newFakeExerciseRepo()
	svc := service.NewExerciseService(repo)

	input := chestExercise("Bench Press")
	input.ID = primitive.NilObjectID

	created, err := svc.Create(context.Background(), &input)
	require.NoError(t, err)
	assert.False(t, created.ID.IsZero())
	assert.Equal(t, "Bench Press", created.Name)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestExerciseService_Create_DuplicateCaseInsensitive(t *testing.T) {
	repo := newFakeExerciseRepo(chestExercise("Bankdrücken"))
	svc := service.NewExerciseService(repo)

	dup := chestExercise("BANKDRÜCKEN")
	dup.ID = primitive.NilObjectID
	_, err := svc.Create(context.Background(), &dup)
	assert.ErrorIs(t, err, service.ErrDuplicateName)
	assert.Len(t, repo.exercises, 1)
}

func TestExerciseService_Create_Invalid(t *testing.T) {
	svc := service.NewExerciseService(newFakeExerciseRepo())

	_, err := svc.Create(context.Background(), &domain.Exercise{Name: "Curl"})
	var verrs domain.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Contains(t, verrs, "description")
	assert.Contains(t, verrs, "muscle_group")
}

func TestExerciseService_Update_RenameCollision(t *testing.T) {
	first := chestExercise("Incline Press")
	second := chestExercise("Flat Press")
	repo := newFakeExerciseRepo(first, second)
	svc := service.NewExerciseService(repo)

	// Renaming onto another record's name is rejected.
	edited := chestExercise("incline press")
	_, err := svc.Update(context.Background(), repo.exercises[1].ID, &edited)
	assert.ErrorIs(t, err, service.ErrDuplicateName)

	// Keeping your own name (different case) is not a collision.
	kept := chestExercise("FLAT PRESS")
	kept.Description = "an updated description for the flat press"
	updated, err := svc.Update(context.Background(), repo.exercises[1].ID, &kept)
	require.NoError(t, err)
	assert.Equal(t, "FLAT PRESS", updated.Name)
}

func TestExerciseService_Update_NotFound(t *testing.T) {
	svc := service.NewExerciseService(newFakeExerciseRepo())

	edited := chestExercise("Bench Press")
	_, err := svc.Update(context.Background(), primitive.NewObjectID(), &edited)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestExerciseService_Related_ExcludesSelf(t *testing.T) {
	base := chestExercise("Bench Press")
	sameGroup := chestExercise("Push Up")
	otherGroup := chestExercise("Deadlift")
	otherGroup.MuscleGroup = "Back"
	repo := newFakeExerciseRepo(base, sameGroup, otherGroup)
	svc := service.NewExerciseService(repo)

	related, err := svc.Related(context.Background(), repo.exercises[0].ID)
	require.NoError(t, err)
	require.Len(t, related, 1)
	assert.Equal(t, "Push Up", related[0].Name)
}

func TestExerciseService_Related_NoneIsEmptyNotNil(t *testing.T) {
	repo := newFakeExerciseRepo(chestExercise("Bench Press"))
	svc := service.NewExerciseService(repo)

	related, err := svc.Related(context.Background(), repo.exercises[0].ID)
	require.NoError(t, err)
	assert.NotNil(t, related)
	assert.Empty(t, related)
}

func TestExerciseService_List_TotalIgnoresPagination(t *testing.T) {
	repo := newFakeExerciseRepo(
		chestExercise("Bench Press"),
		chestExercise("Push Up"),
		chestExercise("Cable Fly"),
		chestExercise("Dips"),
	)
	svc := service.NewExerciseService(repo)

	exercises, total, err := svc.List(context.Background(), repository.ExerciseFilter{Limit: 2, Skip: 1})
	require.NoError(t, err)
	assert.Len(t, exercises, 2)
	assert.EqualValues(t, 4, total)
}

func TestExerciseService_List_RepoFailure(t *testing.T) {
	repo := newFakeExerciseRepo()
	repo.forcedErr = errors.New("connection reset")
	svc := service.NewExerciseService(repo)

	_, _, err := svc.List(context.Background(), repository.ExerciseFilter{})
	assert.Error(t, err)
}
