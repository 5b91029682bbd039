package api

import (
	"net/http"
	"time"

	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// CategoryHandler holds the category service dependency.
type CategoryHandler struct {
	categoryService service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CategoryRequest is the request body for creating a category.
type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// CategoryResponse is the presentation shape of a category.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	CreatedAt   time.Time `json:"created_at"`
}

// MapCategoryToResponse converts a domain.Category to its presentation shape.
func MapCategoryToResponse(category *domain.Category) CategoryResponse {
	if category == nil {
		return CategoryResponse{}
	}
	return CategoryResponse{
		ID:          category.ID.Hex(),
		Name:        category.Name,
		Description: category.Description,
		Color:       category.Color,
		CreatedAt:   category.CreatedAt,
	}
}

// CreateCategory handles POST /categories.
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), &domain.Category{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapCategoryToResponse(category))
}

// ListCategories handles GET /categories.
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoryService.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	responses := make([]CategoryResponse, len(categories))
	for i := range categories {
		responses[i] = MapCategoryToResponse(&categories[i])
	}
	c.JSON(http.StatusOK, gin.H{"categories": responses})
}

// GetCategoryStatistics handles GET /categories/statistics.
func (h *CategoryHandler) GetCategoryStatistics(c *gin.Context) {
	stats, err := h.categoryService.GetStatistics(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": stats})
}
