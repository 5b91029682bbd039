package mongo

import (
	"context"

	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoActivityRepository implements repository.RecentActivityRepository.
// It reads the goal and workout collections with two independent queries;
// the feeds are never merge-sorted.
type mongoActivityRepository struct {
	goals    *mongo.Collection
	workouts *mongo.Collection
}

// NewMongoActivityRepository creates the activity feed repository.
func NewMongoActivityRepository(db *mongo.Database) repository.RecentActivityRepository {
	return &mongoActivityRepository{
		goals:    db.Collection(goalCollectionName),
		workouts: db.Collection(workoutCollectionName),
	}
}

// RecentGoals retrieves the most recently updated goals.
func (r *mongoActivityRepository) RecentGoals(ctx context.Context, limit int64) ([]domain.Goal, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "updated_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.goals.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var goals []domain.Goal
	if err = cursor.All(ctx, &goals); err != nil {
		return nil, err
	}
	return goals, nil
}

// RecentWorkouts retrieves the most recently created workouts.
func (r *mongoActivityRepository) RecentWorkouts(ctx context.Context, limit int64) ([]domain.Workout, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.workouts.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var workouts []domain.Workout
	if err = cursor.All(ctx, &workouts); err != nil {
		return nil, err
	}
	return workouts, nil
}
