package mongo

import (
	"context"
	"errors"
	"sort"
	"time"

	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const exerciseCollectionName = "exercises"

// mongoExerciseRepository implements repository.ExerciseRepository
type mongoExerciseRepository struct {
	collection *mongo.Collection
}

// NewMongoExerciseRepository creates a new Exercise repository backed by MongoDB.
func NewMongoExerciseRepository(db *mongo.Database) repository.ExerciseRepository {
	return &mongoExerciseRepository{
		collection: db.Collection(exerciseCollectionName),
	}
}

// Create inserts a new exercise. List-typed fields are normalized to empty
// slices first so reads never yield nulls.
func (r *mongoExerciseRepository) Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error) {
	exercise.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	exercise.CreatedAt = now
	exercise.UpdatedAt = now
	normalizeExercise(exercise)

	result, err := r.collection.InsertOne(ctx, exercise)
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

// GetByID retrieves an exercise by its ID.
func (r *mongoExerciseRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	var exercise domain.Exercise
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&exercise)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	normalizeExercise(&exercise)
	return &exercise, nil
}

// FindByName retrieves an exercise whose name matches case-insensitively.
// Used for the duplicate check before inserts.
func (r *mongoExerciseRepository) FindByName(ctx context.Context, name string) (*domain.Exercise, error) {
	var exercise domain.Exercise
	err := r.collection.FindOne(ctx, bson.M{"name": exactNameMatch(name)}).Decode(&exercise)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	normalizeExercise(&exercise)
	return &exercise, nil
}

// List retrieves exercises matching the filter, plus the total match count
// computed independently of pagination.
func (r *mongoExerciseRepository) List(ctx context.Context, filter repository.ExerciseFilter) ([]domain.Exercise, int64, error) {
	query := bson.M{}

	if filter.MuscleGroup != "" {
		query["muscle_group"] = filter.MuscleGroup
	}
	if filter.Difficulty != "" {
		query["difficulty"] = filter.Difficulty
	}
	if filter.Equipment != "" {
		query["equipment"] = filter.Equipment
	}
	if filter.CategoryID != nil {
		query["category_id"] = *filter.CategoryID
	}
	if filter.Search != "" {
		term := substringMatch(filter.Search)
		query["$or"] = bson.A{
			bson.M{"name": term},
			bson.M{"description": term},
			bson.M{"muscle_group": term},
			bson.M{"primary_muscles": bson.M{"$elemMatch": bson.M{"$regex": term}}},
		}
	}

	findOptions := options.Find().SetSort(exerciseSort(filter.Sort))
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

	var exercises []domain.Exercise
	if err = cursor.All(ctx, &exercises); err != nil {
		return nil, 0, err
	}
	for i := range exercises {
		normalizeExercise(&exercises[i])
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	return exercises, total, nil
}

// FindByMuscleGroup retrieves exercises sharing a muscle group, excluding
// one id. Serves the "related exercises" view.
func (r *mongoExerciseRepository) FindByMuscleGroup(ctx context.Context, muscleGroup string, exclude primitive.ObjectID, limit int64) ([]domain.Exercise, error) {
	query := bson.M{"muscle_group": muscleGroup}
	if exclude != primitive.NilObjectID {
		query["_id"] = bson.M{"$ne": exclude}
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var exercises []domain.Exercise
	if err = cursor.All(ctx, &exercises); err != nil {
		return nil, err
	}
	for i := range exercises {
		normalizeExercise(&exercises[i])
	}
	return exercises, nil
}

// Update replaces all mutable fields of an existing exercise. Partial
// updates are not supported; callers supply the complete record.
func (r *mongoExerciseRepository) Update(ctx context.Context, exercise *domain.Exercise) error {
	if exercise.ID == primitive.NilObjectID {
		return repository.ErrNotFound
	}
	normalizeExercise(exercise)

	update := bson.M{
		"$set": bson.M{
			"name":                exercise.Name,
			"description":         exercise.Description,
			"instructions":        exercise.Instructions,
			"muscle_group":        exercise.MuscleGroup,
			"equipment":           exercise.Equipment,
			"difficulty":          exercise.Difficulty,
			"category_id":         exercise.CategoryID,
			"image_url":           exercise.ImageURL,
			"primary_muscles":     exercise.PrimaryMuscles,
			"secondary_muscles":   exercise.SecondaryMuscles,
			"benefits":            exercise.Benefits,
			"tips":                exercise.Tips,
			"variations":          exercise.Variations,
			"sets_recommendation": exercise.SetsRecommendation,
			"rest_time":           exercise.RestTime,
			"updated_at":          time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": exercise.ID}, update)
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

// Delete removes an exercise permanently. Workouts referencing it by name
// keep their references; integrity is deliberately not enforced.
func (r *mongoExerciseRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// GetStatistics computes the exercise distribution report server-side.
func (r *mongoExerciseRepository) GetStatistics(ctx context.Context) (*domain.ExerciseStats, error) {
	total, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	byMuscleGroup, err := groupCounts(ctx, r.collection, "muscle_group")
	if err != nil {
		return nil, err
	}
	byDifficulty, err := groupCounts(ctx, r.collection, "difficulty")
	if err != nil {
		return nil, err
	}
	byEquipment, err := groupCounts(ctx, r.collection, "equipment")
	if err != nil {
		return nil, err
	}

	return &domain.ExerciseStats{
		Total:         total,
		ByMuscleGroup: byMuscleGroup,
		ByDifficulty:  byDifficulty,
		ByEquipment:   byEquipment,
	}, nil
}

// FilterOptions returns the distinct values present in the collection for
// the filter dropdowns.
func (r *mongoExerciseRepository) FilterOptions(ctx context.Context) (*domain.FilterOptions, error) {
	muscleGroups, err := r.distinctStrings(ctx, "muscle_group")
	if err != nil {
		return nil, err
	}
	difficulties, err := r.distinctStrings(ctx, "difficulty")
	if err != nil {
		return nil, err
	}
	equipment, err := r.distinctStrings(ctx, "equipment")
	if err != nil {
		return nil, err
	}

	return &domain.FilterOptions{
		MuscleGroups: muscleGroups,
		Difficulties: difficulties,
		Equipment:    equipment,
	}, nil
}

func (r *mongoExerciseRepository) distinctStrings(ctx context.Context, field string) ([]string, error) {
	values, err := r.collection.Distinct(ctx, field, bson.M{})
	if err != nil {
		return nil, err
	}
	result := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok && s != "" {
			result = append(result, s)
		}
	}
	sort.Strings(result)
	return result, nil
}

func exerciseSort(key string) bson.D {
	switch key {
	case repository.SortName:
		return bson.D{{Key: "name", Value: 1}}
	case repository.SortDifficulty:
		return bson.D{{Key: "difficulty", Value: 1}, {Key: "name", Value: 1}}
	default:
		return bson.D{{Key: "created_at", Value: -1}}
	}
}

// normalizeExercise defaults every list-typed field to an empty slice so the
// presentation layer never receives null collections.
func normalizeExercise(exercise *domain.Exercise) {
	if exercise.PrimaryMuscles == nil {
		exercise.PrimaryMuscles = []string{}
	}
	if exercise.SecondaryMuscles == nil {
		exercise.SecondaryMuscles = []string{}
	}
	if exercise.Benefits == nil {
		exercise.Benefits = []string{}
	}
	if exercise.Tips == nil {
		exercise.Tips = []string{}
	}
	if exercise.Variations == nil {
		exercise.Variations = []domain.ExerciseVariation{}
	}
}
