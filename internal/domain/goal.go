package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GoalTypes lists the accepted goal_type values.
var GoalTypes = []string{
	"weight_loss", "weight_gain", "muscle_gain", "strength",
	"endurance", "flexibility", "habit", "health", "other",
}

// Goal is a user-defined numeric target with tracked progress.
//
// Achieved is derived state: it must equal CurrentValue >= TargetValue after
// every write that touches either value. The storage layer does not enforce
// this; every write path recomputes it, and the reconciliation sweep corrects
// drift caused by direct data edits.
type Goal struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title        string             `bson:"title" json:"title"`
	Description  string             `bson:"description" json:"description"`
	GoalType     string             `bson:"goal_type" json:"goal_type"`
	TargetValue  float64            `bson:"target_value" json:"target_value"`
	CurrentValue float64            `bson:"current_value" json:"current_value"`
	Unit         string             `bson:"unit" json:"unit"`
	Achieved     bool               `bson:"achieved" json:"achieved"`
	TargetDate   *time.Time         `bson:"target_date,omitempty" json:"target_date,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

// AchievedFor reports whether the given progress value reaches the target.
// The comparison is plain numeric >= with no epsilon; reaching the target
// exactly counts. It is applied uniformly regardless of goal direction, so a
// "lower is better" goal (e.g. a race time) flips achieved as soon as the
// recorded value is numerically at or above the target.
func (g *Goal) AchievedFor(value float64) bool {
	return value >= g.TargetValue
}

// ShouldBeAchieved recomputes the achievement predicate from the stored
// progress. Used by the reconciliation sweep.
func (g *Goal) ShouldBeAchieved() bool {
	return g.AchievedFor(g.CurrentValue)
}

// ProgressPercent returns the completion percentage. A goal with a
// non-positive target contributes 0 rather than dividing by zero.
func (g *Goal) ProgressPercent() float64 {
	if g.TargetValue <= 0 {
		return 0
	}
	return g.CurrentValue / g.TargetValue * 100
}

// ProgressRatio returns the completion ratio capped at 1.0, so an
// over-achieved goal cannot inflate averages beyond 100%.
func (g *Goal) ProgressRatio() float64 {
	if g.TargetValue <= 0 {
		return 0
	}
	ratio := g.CurrentValue / g.TargetValue
	if ratio > 1 {
		return 1
	}
	return ratio
}

// Validate checks the goal input rules and returns a field-keyed error map.
// The target date check only applies on creation; pass checkDate=false when
// re-validating an existing goal whose date may legitimately be in the past.
func (g *Goal) Validate(checkDate bool) ValidationErrors {
	errs := ValidationErrors{}

	if len(trimmed(g.Title)) < 3 {
		errs["title"] = "title must be at least 3 characters"
	}
	if len(trimmed(g.Description)) < 10 {
		errs["description"] = "description must be at least 10 characters"
	}
	if !contains(GoalTypes, g.GoalType) {
		errs["goal_type"] = "invalid goal type"
	}
	if g.TargetValue <= 0 {
		errs["target_value"] = "target value must be a positive number"
	}
	if trimmed(g.Unit) == "" {
		errs["unit"] = "unit is required"
	}
	if checkDate && g.TargetDate != nil {
		today := time.Now().Truncate(24 * time.Hour)
		if g.TargetDate.Before(today) {
			errs["target_date"] = "target date cannot be in the past"
		}
	}

	return errs
}
