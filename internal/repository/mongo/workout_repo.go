package mongo

import (
	"context"
	"errors"
	"math"
	"time"

	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const workoutCollectionName = "workouts"

// mongoWorkoutRepository implements repository.WorkoutRepository
type mongoWorkoutRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutRepository creates a new Workout repository backed by MongoDB.
func NewMongoWorkoutRepository(db *mongo.Database) repository.WorkoutRepository {
	return &mongoWorkoutRepository{
		collection: db.Collection(workoutCollectionName),
	}
}

// Create inserts a new workout.
func (r *mongoWorkoutRepository) Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error) {
	workout.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	workout.CreatedAt = now
	workout.UpdatedAt = now
	if workout.Exercises == nil {
		workout.Exercises = []domain.WorkoutExercise{}
	}

	result, err := r.collection.InsertOne(ctx, workout)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByID retrieves a workout by its ID.
func (r *mongoWorkoutRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error) {
	var workout domain.Workout
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&workout)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	if workout.Exercises == nil {
		workout.Exercises = []domain.WorkoutExercise{}
	}
	return &workout, nil
}

// FindByName retrieves a workout whose name matches case-insensitively.
func (r *mongoWorkoutRepository) FindByName(ctx context.Context, name string) (*domain.Workout, error) {
	var workout domain.Workout
	err := r.collection.FindOne(ctx, bson.M{"name": exactNameMatch(name)}).Decode(&workout)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &workout, nil
}

// List retrieves workouts matching the filter plus the unpaginated total.
func (r *mongoWorkoutRepository) List(ctx context.Context, filter repository.WorkoutFilter) ([]domain.Workout, int64, error) {
	query := bson.M{}

	if filter.Difficulty != "" {
		query["difficulty"] = filter.Difficulty
	}
	if filter.TargetMuscle != "" {
		query["target_muscle"] = substringMatch(filter.TargetMuscle)
	}
	if filter.Search != "" {
		term := substringMatch(filter.Search)
		query["$or"] = bson.A{
			bson.M{"name": term},
			bson.M{"description": term},
			bson.M{"target_muscle": term},
		}
	}

	sortKey := bson.D{{Key: "created_at", Value: -1}}
	if filter.Sort == repository.SortName {
		sortKey = bson.D{{Key: "name", Value: 1}}
	}
	findOptions := options.Find().SetSort(sortKey)
	if filter.Limit > 0 {
		findOptions = findOptions.SetLimit(filter.Limit)
	}
	if filter.Skip > 0 {
		findOptions = findOptions.SetSkip(filter.Skip)
	}

	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var workouts []domain.Workout
	if err = cursor.All(ctx, &workouts); err != nil {
		return nil, 0, err
	}
	for i := range workouts {
		if workouts[i].Exercises == nil {
			workouts[i].Exercises = []domain.WorkoutExercise{}
		}
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	return workouts, total, nil
}

// Update replaces all mutable fields of an existing workout.
func (r *mongoWorkoutRepository) Update(ctx context.Context, workout *domain.Workout) error {
	if workout.ID == primitive.NilObjectID {
		return repository.ErrNotFound
	}
	if workout.Exercises == nil {
		workout.Exercises = []domain.WorkoutExercise{}
	}

	update := bson.M{
		"$set": bson.M{
			"name":          workout.Name,
			"description":   workout.Description,
			"duration":      workout.Duration,
			"difficulty":    workout.Difficulty,
			"target_muscle": workout.TargetMuscle,
			"exercises":     workout.Exercises,
			"updated_at":    time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": workout.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	if result.ModifiedCount == 0 {
		return repository.ErrNoChanges
	}
	return nil
}

// Delete removes a workout permanently.
func (r *mongoWorkoutRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// GetStatistics computes workout totals and distributions server-side.
func (r *mongoWorkoutRepository) GetStatistics(ctx context.Context) (*domain.WorkoutStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":           nil,
			"total":         bson.M{"$sum": 1},
			"avgDuration":   bson.M{"$avg": "$duration"},
			"totalDuration": bson.M{"$sum": "$duration"},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Total         int64   `bson:"total"`
		AvgDuration   float64 `bson:"avgDuration"`
		TotalDuration int64   `bson:"totalDuration"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	stats := &domain.WorkoutStats{
		ByDifficulty: map[string]int64{},
		ByMuscle:     map[string]int64{},
	}
	if len(rows) > 0 {
		stats.Total = rows[0].Total
		stats.AvgDuration = int64(math.Round(rows[0].AvgDuration))
		stats.TotalDuration = rows[0].TotalDuration
	}

	byDifficulty, err := groupCounts(ctx, r.collection, "difficulty")
	if err != nil {
		return nil, err
	}
	byMuscle, err := groupCounts(ctx, r.collection, "target_muscle")
	if err != nil {
		return nil, err
	}
	stats.ByDifficulty = byDifficulty
	stats.ByMuscle = byMuscle

	return stats, nil
}
