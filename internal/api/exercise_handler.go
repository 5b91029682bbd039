package api

import (
	"net/http"
	"time"

	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/repository"
	"fittrack/fitness-tracker/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseHandler holds the exercise service dependency.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// --- DTOs ---

// ExerciseRequest is the full record supplied on create and update. Partial
// updates are not supported.
type ExerciseRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Instructions string `json:"instructions"`
	MuscleGroup  string `json:"muscle_group"`
	Equipment    string `json:"equipment"`
	Difficulty   string `json:"difficulty"`
	CategoryID   string `json:"category_id"`
	ImageURL     string `json:"image_url"`

	PrimaryMuscles   []string                   `json:"primary_muscles"`
	SecondaryMuscles []string                   `json:"secondary_muscles"`
	Benefits         []string                   `json:"benefits"`
	Tips             []string                   `json:"tips"`
	Variations       []domain.ExerciseVariation `json:"variations"`

	SetsRecommendation domain.SetsRecommendation `json:"sets_recommendation"`
	RestTime           string                    `json:"rest_time"`
}

// ExerciseResponse is the presentation shape of an exercise: ids as plain
// strings, every list present even when empty.
type ExerciseResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Instructions string  `json:"instructions"`
	MuscleGroup  string  `json:"muscle_group"`
	Equipment    string  `json:"equipment"`
	Difficulty   string  `json:"difficulty"`
	CategoryID   *string `json:"category_id"`
	ImageURL     string  `json:"image_url,omitempty"`

	PrimaryMuscles   []string                   `json:"primary_muscles"`
	SecondaryMuscles []string                   `json:"secondary_muscles"`
	Benefits         []string                   `json:"benefits"`
	Tips             []string                   `json:"tips"`
	Variations       []domain.ExerciseVariation `json:"variations"`

	SetsRecommendation domain.SetsRecommendation `json:"sets_recommendation"`
	RestTime           string                    `json:"rest_time,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *ExerciseRequest) toDomain() (*domain.Exercise, error) {
	exercise := &domain.Exercise{
		Name:               r.Name,
		Description:        r.Description,
		Instructions:       r.Instructions,
		MuscleGroup:        r.MuscleGroup,
		Equipment:          r.Equipment,
		Difficulty:         r.Difficulty,
		ImageURL:           r.ImageURL,
		PrimaryMuscles:     r.PrimaryMuscles,
		SecondaryMuscles:   r.SecondaryMuscles,
		Benefits:           r.Benefits,
		Tips:               r.Tips,
		Variations:         r.Variations,
		SetsRecommendation: r.SetsRecommendation,
		RestTime:           r.RestTime,
	}
	if r.CategoryID != "" {
		categoryID, err := primitive.ObjectIDFromHex(r.CategoryID)
		if err != nil {
			return nil, domain.ValidationErrors{"category_id": "invalid category id"}
		}
		exercise.CategoryID = &categoryID
	}
	return exercise, nil
}

// MapExerciseToResponse converts a domain.Exercise to its presentation
// shape. Nil list fields become empty lists so the caller never sees null.
func MapExerciseToResponse(exercise *domain.Exercise) ExerciseResponse {
	if exercise == nil {
		return ExerciseResponse{}
	}

	response := ExerciseResponse{
		ID:                 exercise.ID.Hex(),
		Name:               exercise.Name,
		Description:        exercise.Description,
		Instructions:       exercise.Instructions,
		MuscleGroup:        exercise.MuscleGroup,
		Equipment:          exercise.Equipment,
		Difficulty:         exercise.Difficulty,
		ImageURL:           exercise.ImageURL,
		PrimaryMuscles:     exercise.PrimaryMuscles,
		SecondaryMuscles:   exercise.SecondaryMuscles,
		Benefits:           exercise.Benefits,
		Tips:               exercise.Tips,
		Variations:         exercise.Variations,
		SetsRecommendation: exercise.SetsRecommendation,
		RestTime:           exercise.RestTime,
		CreatedAt:          exercise.CreatedAt,
		UpdatedAt:          exercise.UpdatedAt,
	}
	if exercise.CategoryID != nil {
		hex := exercise.CategoryID.Hex()
		response.CategoryID = &hex
	}
	if response.PrimaryMuscles == nil {
		response.PrimaryMuscles = []string{}
	}
	if response.SecondaryMuscles == nil {
		response.SecondaryMuscles = []string{}
	}
	if response.Benefits == nil {
		response.Benefits = []string{}
	}
	if response.Tips == nil {
		response.Tips = []string{}
	}
	if response.Variations == nil {
		response.Variations = []domain.ExerciseVariation{}
	}
	return response
}

// MapExercisesToResponse converts a slice of exercises.
func MapExercisesToResponse(exercises []domain.Exercise) []ExerciseResponse {
	responses := make([]ExerciseResponse, len(exercises))
	for i := range exercises {
		responses[i] = MapExerciseToResponse(&exercises[i])
	}
	return responses
}

// --- Handler methods ---

// CreateExercise handles POST /exercises.
func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	var req ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	input, err := req.toDomain()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	exercise, err := h.exerciseService.Create(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapExerciseToResponse(exercise))
}

// GetExercise handles GET /exercises/:id.
func (h *ExerciseHandler) GetExercise(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	exercise, err := h.exerciseService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapExerciseToResponse(exercise))
}

// ListExercises handles GET /exercises with filters and pagination.
func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	var page pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid pagination parameters")
		return
	}
	page.normalize()

	filter := repository.ExerciseFilter{
		MuscleGroup: c.Query("muscle_group"),
		Difficulty:  c.Query("difficulty"),
		Equipment:   c.Query("equipment"),
		Search:      c.Query("search"),
		Sort:        c.Query("sort"),
		Limit:       page.Limit,
		Skip:        page.Skip,
	}
	if categoryHex := c.Query("category"); categoryHex != "" {
		categoryID, err := primitive.ObjectIDFromHex(categoryHex)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "invalid category id")
			return
		}
		filter.CategoryID = &categoryID
	}

	exercises, total, err := h.exerciseService.List(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"exercises": MapExercisesToResponse(exercises),
		"total":     total,
	})
}

// GetRelatedExercises handles GET /exercises/:id/related.
func (h *ExerciseHandler) GetRelatedExercises(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	related, err := h.exerciseService.Related(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapExercisesToResponse(related))
}

// UpdateExercise handles PUT /exercises/:id with a complete record.
func (h *ExerciseHandler) UpdateExercise(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	input, err := req.toDomain()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	exercise, err := h.exerciseService.Update(c.Request.Context(), id, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapExerciseToResponse(exercise))
}

// DeleteExercise handles DELETE /exercises/:id.
func (h *ExerciseHandler) DeleteExercise(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.exerciseService.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "exercise deleted"})
}

// GetExerciseStatistics handles GET /exercises/statistics.
func (h *ExerciseHandler) GetExerciseStatistics(c *gin.Context) {
	stats, err := h.exerciseService.GetStatistics(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetFilterOptions handles GET /exercises/filter-options.
func (h *ExerciseHandler) GetFilterOptions(c *gin.Context) {
	options, err := h.exerciseService.FilterOptions(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, options)
}
