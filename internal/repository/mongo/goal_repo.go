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

const goalCollectionName = "goals"

// Progress distribution boundaries in percent. The last bucket collects
// everything at or above 100%.
var progressBoundaries = []interface{}{0, 25, 50, 75, 100, 1000000}

var progressLabels = map[int64]string{
	0:   "0-24%",
	25:  "25-49%",
	50:  "50-74%",
	75:  "75-99%",
	100: "100%+",
}

// mongoGoalRepository implements repository.GoalRepository
type mongoGoalRepository struct {
	collection *mongo.Collection
}

// NewMongoGoalRepository creates a new Goal repository backed by MongoDB.
func NewMongoGoalRepository(db *mongo.Database) repository.GoalRepository {
	return &mongoGoalRepository{
		collection: db.Collection(goalCollectionName),
	}
}

// Create inserts a new goal.
func (r *mongoGoalRepository) Create(ctx context.Context, goal *domain.Goal) (primitive.ObjectID, error) {
	goal.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	goal.CreatedAt = now
	goal.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, goal)
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

// GetByID retrieves a goal by its ID.
func (r *mongoGoalRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Goal, error) {
	var goal domain.Goal
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&goal)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &goal, nil
}

// FindByTitle retrieves a goal whose title matches case-insensitively.
func (r *mongoGoalRepository) FindByTitle(ctx context.Context, title string) (*domain.Goal, error) {
	var goal domain.Goal
	err := r.collection.FindOne(ctx, bson.M{"title": exactNameMatch(title)}).Decode(&goal)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &goal, nil
}

// List retrieves goals matching the filter plus the unpaginated total.
func (r *mongoGoalRepository) List(ctx context.Context, filter repository.GoalFilter) ([]domain.Goal, int64, error) {
	query := bson.M{}

	if filter.GoalType != "" {
		query["goal_type"] = filter.GoalType
	}
	if filter.Achieved != nil {
		query["achieved"] = *filter.Achieved
	}
	if filter.Search != "" {
		term := substringMatch(filter.Search)
		query["$or"] = bson.A{
			bson.M{"title": term},
			bson.M{"description": term},
		}
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
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

	var goals []domain.Goal
	if err = cursor.All(ctx, &goals); err != nil {
		return nil, 0, err
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	return goals, total, nil
}

// Update replaces the editable fields of a goal. Progress and achievement
// are deliberately excluded; they only change through UpdateProgress and
// SetAchieved.
func (r *mongoGoalRepository) Update(ctx context.Context, goal *domain.Goal) error {
	if goal.ID == primitive.NilObjectID {
		return repository.ErrNotFound
	}

	fields := bson.M{
		"title":        goal.Title,
		"description":  goal.Description,
		"goal_type":    goal.GoalType,
		"target_value": goal.TargetValue,
		"unit":         goal.Unit,
		"updated_at":   time.Now().UTC(),
	}
	if goal.TargetDate != nil {
		fields["target_date"] = *goal.TargetDate
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": goal.ID}, bson.M{"$set": fields})
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

// Delete removes a goal permanently.
func (r *mongoGoalRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// UpdateProgress writes current_value, achieved and updated_at in a single
// document update so the achievement invariant cannot be observed half
// applied within one document.
func (r *mongoGoalRepository) UpdateProgress(ctx context.Context, id primitive.ObjectID, value float64, achieved bool) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"current_value": value,
			"achieved":      achieved,
			"updated_at":    time.Now().UTC(),
		},
	})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// SetAchieved corrects the achieved flag only. Used by the reconciliation
// sweep.
func (r *mongoGoalRepository) SetAchieved(ctx context.Context, id primitive.ObjectID, achieved bool) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"achieved":   achieved,
			"updated_at": time.Now().UTC(),
		},
	})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// GetRecent retrieves the most recently updated goals.
func (r *mongoGoalRepository) GetRecent(ctx context.Context, limit int64) ([]domain.Goal, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "updated_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
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

// GetOverallStats runs the extended goal aggregation: totals, uncapped
// average ratio, target-date coverage and overdue count.
func (r *mongoGoalRepository) GetOverallStats(ctx context.Context) (*domain.GoalOverallStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":      nil,
			"total":    bson.M{"$sum": 1},
			"achieved": bson.M{"$sum": bson.M{"$cond": bson.A{"$achieved", 1, 0}}},
			"avgProgress": bson.M{"$avg": bson.M{"$cond": bson.A{
				bson.M{"$gt": bson.A{"$target_value", 0}},
				bson.M{"$divide": bson.A{"$current_value", "$target_value"}},
				0,
			}}},
			"withTargetDate": bson.M{"$sum": bson.M{"$cond": bson.A{
				bson.M{"$ne": bson.A{"$target_date", nil}}, 1, 0,
			}}},
			"overdue": bson.M{"$sum": bson.M{"$cond": bson.A{
				bson.M{"$and": bson.A{
					bson.M{"$ne": bson.A{"$target_date", nil}},
					bson.M{"$lt": bson.A{"$target_date", time.Now().UTC()}},
					bson.M{"$eq": bson.A{"$achieved", false}},
				}},
				1, 0,
			}}},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Total          int64   `bson:"total"`
		Achieved       int64   `bson:"achieved"`
		AvgProgress    float64 `bson:"avgProgress"`
		WithTargetDate int64   `bson:"withTargetDate"`
		Overdue        int64   `bson:"overdue"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	stats := &domain.GoalOverallStats{}
	if len(rows) > 0 {
		stats.Total = rows[0].Total
		stats.Achieved = rows[0].Achieved
		stats.AvgProgress = rows[0].AvgProgress
		stats.WithTargetDate = rows[0].WithTargetDate
		stats.Overdue = rows[0].Overdue
	}
	if stats.Total > 0 {
		stats.CompletionRate = float64(stats.Achieved) / float64(stats.Total) * 100
	}
	return stats, nil
}

// GetStatistics computes the goal dashboard section. Each goal's progress
// ratio is capped at 1.0 before averaging so over-achieved goals cannot
// inflate the mean.
func (r *mongoGoalRepository) GetStatistics(ctx context.Context) (*domain.GoalStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":      nil,
			"total":    bson.M{"$sum": 1},
			"achieved": bson.M{"$sum": bson.M{"$cond": bson.A{"$achieved", 1, 0}}},
			"avgProgress": bson.M{"$avg": bson.M{"$cond": bson.A{
				bson.M{"$gt": bson.A{"$target_value", 0}},
				bson.M{"$min": bson.A{
					bson.M{"$divide": bson.A{"$current_value", "$target_value"}},
					1,
				}},
				0,
			}}},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Total       int64   `bson:"total"`
		Achieved    int64   `bson:"achieved"`
		AvgProgress float64 `bson:"avgProgress"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	stats := &domain.GoalStats{ByType: map[string]int64{}}
	if len(rows) > 0 {
		stats.Total = rows[0].Total
		stats.Achieved = rows[0].Achieved
		stats.InProgress = rows[0].Total - rows[0].Achieved
		stats.AvgProgress = int64(math.Round(rows[0].AvgProgress * 100))
	}
	if stats.Total > 0 {
		stats.AchievementRate = int64(math.Round(float64(stats.Achieved) / float64(stats.Total) * 100))
	}

	byType, err := groupCounts(ctx, r.collection, "goal_type")
	if err != nil {
		return nil, err
	}
	stats.ByType = byType

	return stats, nil
}

// GetTypeStats groups goals by type with achievement counts and completion
// rate. Types with no goals are simply absent from the result.
func (r *mongoGoalRepository) GetTypeStats(ctx context.Context) ([]domain.GoalTypeStat, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":      "$goal_type",
			"count":    bson.M{"$sum": 1},
			"achieved": bson.M{"$sum": bson.M{"$cond": bson.A{"$achieved", 1, 0}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Type     string `bson:"_id"`
		Count    int64  `bson:"count"`
		Achieved int64  `bson:"achieved"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	stats := make([]domain.GoalTypeStat, 0, len(rows))
	for _, row := range rows {
		goalType := row.Type
		if goalType == "" {
			goalType = "other"
		}
		stat := domain.GoalTypeStat{
			Type:     goalType,
			Count:    row.Count,
			Achieved: row.Achieved,
		}
		if row.Count > 0 {
			stat.CompletionRate = int64(math.Round(float64(row.Achieved) / float64(row.Count) * 100))
		}
		stats = append(stats, stat)
	}
	return stats, nil
}

// GetProgressDistribution buckets goals into progress-percentage ranges.
// Goals with a non-positive target are projected to 0% instead of dividing
// by zero.
func (r *mongoGoalRepository) GetProgressDistribution(ctx context.Context) ([]domain.ProgressBucket, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$project", Value: bson.M{
			"progressPercent": bson.M{"$cond": bson.A{
				bson.M{"$gt": bson.A{"$target_value", 0}},
				bson.M{"$multiply": bson.A{
					bson.M{"$divide": bson.A{"$current_value", "$target_value"}},
					100,
				}},
				0,
			}},
		}}},
		{{Key: "$bucket", Value: bson.M{
			"groupBy":    "$progressPercent",
			"boundaries": progressBoundaries,
			"default":    "other",
			"output":     bson.M{"count": bson.M{"$sum": 1}},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Lower interface{} `bson:"_id"`
		Count int64       `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	buckets := make([]domain.ProgressBucket, 0, len(rows))
	for _, row := range rows {
		lower, ok := numericBoundary(row.Lower)
		if !ok {
			continue
		}
		label := progressLabels[lower]
		if label == "" {
			label = "other"
		}
		buckets = append(buckets, domain.ProgressBucket{
			Lower: lower,
			Label: label,
			Count: row.Count,
		})
	}
	return buckets, nil
}

// GetMonthlyStats groups goals by creation year+month, keeps the most recent
// n months and returns them in chronological order.
func (r *mongoGoalRepository) GetMonthlyStats(ctx context.Context, months int64) ([]domain.MonthlyGoalStat, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{
				"year":  bson.M{"$year": "$created_at"},
				"month": bson.M{"$month": "$created_at"},
			},
			"goalsCreated":  bson.M{"$sum": 1},
			"goalsAchieved": bson.M{"$sum": bson.M{"$cond": bson.A{"$achieved", 1, 0}}},
		}}},
		{{Key: "$sort", Value: bson.D{
			{Key: "_id.year", Value: -1},
			{Key: "_id.month", Value: -1},
		}}},
		{{Key: "$limit", Value: months}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Key struct {
			Year  int `bson:"year"`
			Month int `bson:"month"`
		} `bson:"_id"`
		GoalsCreated  int64 `bson:"goalsCreated"`
		GoalsAchieved int64 `bson:"goalsAchieved"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	// Oldest first.
	stats := make([]domain.MonthlyGoalStat, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		stats = append(stats, domain.MonthlyGoalStat{
			Year:          rows[i].Key.Year,
			Month:         rows[i].Key.Month,
			GoalsCreated:  rows[i].GoalsCreated,
			GoalsAchieved: rows[i].GoalsAchieved,
		})
	}
	return stats, nil
}

// numericBoundary converts the $bucket _id, which the driver may decode as
// any numeric type, into an int64 boundary.
func numericBoundary(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		return int64(n), true
	case int:
		return int64(n), true
	default:
		return 0, false
	}
}
