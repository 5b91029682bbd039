package domain

import "time"

// Report shapes produced by the statistics aggregations. Group-by maps only
// contain keys with at least one matching document; absent keys are omitted,
// never zero-filled.

// WorkoutStats summarizes the workouts collection.
type WorkoutStats struct {
	Total         int64            `json:"total"`
	AvgDuration   int64            `json:"avg_duration"`
	TotalDuration int64            `json:"total_duration"`
	ByDifficulty  map[string]int64 `json:"by_difficulty"`
	ByMuscle      map[string]int64 `json:"by_muscle"`
}

// ExerciseStats summarizes the exercises collection.
type ExerciseStats struct {
	Total         int64            `json:"total"`
	ByMuscleGroup map[string]int64 `json:"by_muscle_group"`
	ByDifficulty  map[string]int64 `json:"by_difficulty"`
	ByEquipment   map[string]int64 `json:"by_equipment"`
}

// GoalStats summarizes the goals collection. AvgProgress is the mean of
// per-goal completion ratios, each capped at 1.0, expressed as a percentage.
type GoalStats struct {
	Total           int64            `json:"total"`
	Achieved        int64            `json:"achieved"`
	InProgress      int64            `json:"in_progress"`
	AvgProgress     int64            `json:"avg_progress"`
	AchievementRate int64            `json:"achievement_rate"`
	ByType          map[string]int64 `json:"by_type"`
}

// GoalOverallStats is the extended goal report used by the goal dashboard.
type GoalOverallStats struct {
	Total          int64   `json:"total"`
	Achieved       int64   `json:"achieved"`
	AvgProgress    float64 `json:"avg_progress"`
	WithTargetDate int64   `json:"with_target_date"`
	Overdue        int64   `json:"overdue"`
	CompletionRate float64 `json:"completion_rate"`
}

// CategoryStat is the per-category exercise count from the cross-collection
// lookup.
type CategoryStat struct {
	Name          string `json:"name"`
	Color         string `json:"color"`
	ExerciseCount int64  `json:"exercise_count"`
}

// GoalTypeStat is one row of the goals-by-type breakdown.
type GoalTypeStat struct {
	Type           string `json:"type"`
	Count          int64  `json:"count"`
	Achieved       int64  `json:"achieved"`
	CompletionRate int64  `json:"completion_rate"`
}

// ProgressBucket is one range of the progress-percentage distribution.
// Lower is the inclusive lower boundary of the bucket.
type ProgressBucket struct {
	Lower int64  `json:"lower"`
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// MonthlyGoalStat reports goals created and achieved in one calendar month.
type MonthlyGoalStat struct {
	Year          int   `json:"year"`
	Month         int   `json:"month"`
	GoalsCreated  int64 `json:"goals_created"`
	GoalsAchieved int64 `json:"goals_achieved"`
}

// RecentGoal is a goal entry in the activity feed.
type RecentGoal struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Progress int64     `json:"progress"`
	Updated  time.Time `json:"updated"`
}

// RecentWorkout is a workout entry in the activity feed.
type RecentWorkout struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Difficulty string    `json:"difficulty"`
	Created    time.Time `json:"created"`
}

// RecentActivity holds the two independent activity feeds. The lists are not
// merged into a single sorted timeline.
type RecentActivity struct {
	Goals    []RecentGoal    `json:"goals"`
	Workouts []RecentWorkout `json:"workouts"`
}

// DashboardStats is the merged dashboard report.
type DashboardStats struct {
	Workouts    WorkoutStats   `json:"workouts"`
	Exercises   ExerciseStats  `json:"exercises"`
	Goals       GoalStats      `json:"goals"`
	Categories  []CategoryStat `json:"categories"`
	LastUpdated time.Time      `json:"last_updated"`
}

// FilterOptions lists the distinct values available for the exercise filter
// dropdowns.
type FilterOptions struct {
	MuscleGroups []string `json:"muscle_groups"`
	Difficulties []string `json:"difficulties"`
	Equipment    []string `json:"equipment"`
}
