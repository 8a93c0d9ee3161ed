package repositories

import (
	"github.com/shashiranjanraj/aushadhi/app/models"
	"github.com/shashiranjanraj/aushadhi/pkg/orm"
)

// CategoryRepository handles database operations for Category.
type CategoryRepository struct{}

func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{}
}

// All returns every category, alphabetically.
func (r *CategoryRepository) All() ([]models.Category, error) {
	var categories []models.Category
	err := orm.DB().Model(&models.Category{}).Order("name asc").Get(&categories)
	return categories, err
}

// FindByID returns one category with its products preloaded.
func (r *CategoryRepository) FindByID(id uint) (models.Category, error) {
	var category models.Category
	err := orm.DB().
		Model(&models.Category{}).
		Preload("Products").
		Preload("Products.Images").
		Where("id = ?", id).
		First(&category)
	return category, err
}

func (r *CategoryRepository) Create(category *models.Category) error {
	return orm.DB().Create(category)
}

func (r *CategoryRepository) Update(category *models.Category) error {
	return orm.DB().Save(category)
}

func (r *CategoryRepository) Delete(id uint) error {
	return orm.DB().Delete(&models.Category{}, id)
}
