package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Valid values for the exercise enum fields. Validation rejects anything
// outside these lists.
var (
	MuscleGroups = []string{
		"Chest", "Back", "Shoulders", "Biceps", "Triceps",
		"Legs", "Quadriceps", "Hamstrings", "Calves", "Glutes",
		"Abs", "Core", "Full Body",
	}

	EquipmentTypes = []string{
		"Bodyweight", "Barbell", "Dumbbells", "Cable", "Machines",
		"Kettlebell", "Resistance Bands", "TRX", "Pull-up Bar",
		"Dip Station", "Medicine Ball", "None",
	}

	Difficulties = []string{"Easy", "Medium", "Hard"}
)

// ExerciseVariation is a named variant of a base exercise.
type ExerciseVariation struct {
	Name        string `bson:"name" json:"name"`
	Description string `bson:"description" json:"description"`
}

// SetsRecommendation holds free-text set/rep advice per experience level.
type SetsRecommendation struct {
	Beginner     string `bson:"beginner,omitempty" json:"beginner,omitempty"`
	Intermediate string `bson:"intermediate,omitempty" json:"intermediate,omitempty"`
	Advanced     string `bson:"advanced,omitempty" json:"advanced,omitempty"`
}

// Exercise is a single exercise definition in the library.
// Name is unique case-insensitively across the collection.
type Exercise struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name         string              `bson:"name" json:"name"`
	Description  string              `bson:"description" json:"description"`
	Instructions string              `bson:"instructions" json:"instructions"`
	MuscleGroup  string              `bson:"muscle_group" json:"muscle_group"`
	Equipment    string              `bson:"equipment" json:"equipment"`
	Difficulty   string              `bson:"difficulty" json:"difficulty"`
	CategoryID   *primitive.ObjectID `bson:"category_id,omitempty" json:"category_id,omitempty"`
	ImageURL     string              `bson:"image_url,omitempty" json:"image_url,omitempty"`

	PrimaryMuscles   []string            `bson:"primary_muscles" json:"primary_muscles"`
	SecondaryMuscles []string            `bson:"secondary_muscles" json:"secondary_muscles"`
	Benefits         []string            `bson:"benefits" json:"benefits"`
	Tips             []string            `bson:"tips" json:"tips"`
	Variations       []ExerciseVariation `bson:"variations" json:"variations"`

	SetsRecommendation SetsRecommendation `bson:"sets_recommendation" json:"sets_recommendation"`
	RestTime           string             `bson:"rest_time,omitempty" json:"rest_time,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Validate checks the exercise input rules and returns a field-keyed error
// map. An empty map means the input is valid.
func (e *Exercise) Validate() ValidationErrors {
	errs := ValidationErrors{}

	if len(trimmed(e.Name)) < 2 {
		errs["name"] = "name must be at least 2 characters"
	}
	if len(trimmed(e.Description)) < 10 {
		errs["description"] = "description must be at least 10 characters"
	}
	if len(trimmed(e.Instructions)) < 20 {
		errs["instructions"] = "instructions must be at least 20 characters"
	}
	if !contains(MuscleGroups, e.MuscleGroup) {
		errs["muscle_group"] = "invalid muscle group"
	}
	if !contains(EquipmentTypes, e.Equipment) {
		errs["equipment"] = "invalid equipment"
	}
	if !contains(Difficulties, e.Difficulty) {
		errs["difficulty"] = "invalid difficulty"
	}
	if len(e.PrimaryMuscles) == 0 {
		errs["primary_muscles"] = "at least one primary muscle is required"
	}

	return errs
}
