package service

import (
	"context"
	"errors"

	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/repository"
)

// CategoryService manages the exercise category lookup table.
type CategoryService interface {
	Create(ctx context.Context, input *domain.Category) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
	GetStatistics(ctx context.Context) ([]domain.CategoryStat, error)
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService creates a new instance of categoryService.
func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

// Create validates the category and rejects duplicate names.
func (s *categoryService) Create(ctx context.Context, input *domain.Category) (*domain.Category, error) {
	if verrs := input.Validate(); !verrs.IsValid() {
		return nil, verrs
	}

	existing, err := s.categoryRepo.FindByName(ctx, input.Name)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateName
	}

	id, err := s.categoryRepo.Create(ctx, input)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateName
		}
		return nil, err
	}

	return s.categoryRepo.GetByID(ctx, id)
}

// List retrieves all categories.
func (s *categoryService) List(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []domain.Category{}
	}
	return categories, nil
}

// GetStatistics counts exercises per category.
func (s *categoryService) GetStatistics(ctx context.Context) ([]domain.CategoryStat, error) {
	stats, err := s.categoryRepo.GetStatistics(ctx)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		stats = []domain.CategoryStat{}
	}
	return stats, nil
}
