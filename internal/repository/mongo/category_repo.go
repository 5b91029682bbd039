package mongo

import (
	"context"
	"errors"
	"time"

	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const categoryCollectionName = "exercise_categories"

// mongoCategoryRepository implements repository.CategoryRepository
type mongoCategoryRepository struct {
	collection *mongo.Collection
}

// NewMongoCategoryRepository creates a new Category repository backed by MongoDB.
func NewMongoCategoryRepository(db *mongo.Database) repository.CategoryRepository {
	return &mongoCategoryRepository{
		collection: db.Collection(categoryCollectionName),
	}
}

// Create inserts a new category.
func (r *mongoCategoryRepository) Create(ctx context.Context, category *domain.Category) (primitive.ObjectID, error) {
	category.ID = primitive.NewObjectID()
	category.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, category)
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

// GetByID retrieves a category by its ID.
func (r *mongoCategoryRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Category, error) {
	var category domain.Category
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&category)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

// FindByName retrieves a category whose name matches case-insensitively.
func (r *mongoCategoryRepository) FindByName(ctx context.Context, name string) (*domain.Category, error) {
	var category domain.Category
	err := r.collection.FindOne(ctx, bson.M{"name": exactNameMatch(name)}).Decode(&category)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

// List retrieves all categories sorted by name.
func (r *mongoCategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var categories []domain.Category
	if err = cursor.All(ctx, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// GetStatistics counts the exercises referencing each category via a
// cross-collection lookup, most used first.
func (r *mongoCategoryRepository) GetStatistics(ctx context.Context) ([]domain.CategoryStat, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$lookup", Value: bson.M{
			"from":         exerciseCollectionName,
			"localField":   "_id",
			"foreignField": "category_id",
			"as":           "exercises",
		}}},
		{{Key: "$project", Value: bson.M{
			"name":          1,
			"color":         1,
			"exerciseCount": bson.M{"$size": "$exercises"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "exerciseCount", Value: -1}}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Name          string `bson:"name"`
		Color         string `bson:"color"`
		ExerciseCount int64  `bson:"exerciseCount"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	stats := make([]domain.CategoryStat, 0, len(rows))
	for _, row := range rows {
		color := row.Color
		if color == "" {
			color = "#667eea"
		}
		stats = append(stats, domain.CategoryStat{
			Name:          row.Name,
			Color:         color,
			ExerciseCount: row.ExerciseCount,
		})
	}
	return stats, nil
}
