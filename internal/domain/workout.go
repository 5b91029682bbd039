package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Workout duration bounds in minutes.
const (
	MinWorkoutDuration = 10
	MaxWorkoutDuration = 180
)

// WorkoutExercise is one entry in a workout's ordered exercise list.
// Exercises are referenced by name, not by id; referential integrity is not
// enforced, so deleting an exercise can leave dangling references here.
type WorkoutExercise struct {
	ExerciseName string `bson:"exercise_name" json:"exercise_name"`
	Sets         int    `bson:"sets" json:"sets"`
	Reps         string `bson:"reps" json:"reps"`
	RestTime     string `bson:"rest_time,omitempty" json:"rest_time,omitempty"`
}

// Workout is a named routine composed of an ordered exercise list.
// Name is unique case-insensitively across the collection.
type Workout struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Description  string             `bson:"description" json:"description"`
	Duration     int                `bson:"duration" json:"duration"`
	Difficulty   string             `bson:"difficulty" json:"difficulty"`
	TargetMuscle string             `bson:"target_muscle,omitempty" json:"target_muscle,omitempty"`
	Exercises    []WorkoutExercise  `bson:"exercises" json:"exercises"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

// Validate checks the workout input rules and returns a field-keyed error
// map. An empty map means the input is valid.
func (w *Workout) Validate() ValidationErrors {
	errs := ValidationErrors{}

	if len(trimmed(w.Name)) < 2 {
		errs["name"] = "name must be at least 2 characters"
	}
	if len(trimmed(w.Description)) < 10 {
		errs["description"] = "description must be at least 10 characters"
	}
	if w.Duration < MinWorkoutDuration || w.Duration > MaxWorkoutDuration {
		errs["duration"] = "duration must be between 10 and 180 minutes"
	}
	if !contains(Difficulties, w.Difficulty) {
		errs["difficulty"] = "invalid difficulty"
	}

	return errs
}
