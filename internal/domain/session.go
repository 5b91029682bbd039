package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutSession is a training log entry. Both references are optional and
// nothing is derived from it; it exists purely for the activity history.
type WorkoutSession struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID    *primitive.ObjectID `bson:"user_id,omitempty" json:"user_id,omitempty"`
	WorkoutID *primitive.ObjectID `bson:"workout_id,omitempty" json:"workout_id,omitempty"`
	StartTime time.Time           `bson:"start_time" json:"start_time"`
	EndTime   *time.Time          `bson:"end_time,omitempty" json:"end_time,omitempty"`
	Duration  int                 `bson:"duration,omitempty" json:"duration,omitempty"`
	Notes     string              `bson:"notes,omitempty" json:"notes,omitempty"`
	Completed bool                `bson:"completed" json:"completed"`
	Date      time.Time           `bson:"date" json:"date"`
}

func (s *WorkoutSession) Validate() ValidationErrors {
	errs := ValidationErrors{}
	if s.StartTime.IsZero() {
		errs["start_time"] = "start time is required"
	}
	if s.EndTime != nil && s.EndTime.Before(s.StartTime) {
		errs["end_time"] = "end time cannot be before start time"
	}
	return errs
}
