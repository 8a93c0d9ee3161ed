package repositories

import (
	"github.com/shashiranjanraj/aushadhi/app/models"
	"github.com/shashiranjanraj/aushadhi/pkg/orm"
)

// BranchRepository reads the seeded pickup locations.
type BranchRepository struct{}

func NewBranchRepository() *BranchRepository {
	return &BranchRepository{}
}

// All returns every branch.
func (r *BranchRepository) All() ([]models.Branch, error) {
	var branches []models.Branch
	err := orm.DB().Model(&models.Branch{}).Order("name asc").Get(&branches)
	return branches, err
}

// FindBySlug returns one branch by its public id slug.
func (r *BranchRepository) FindBySlug(slug string) (models.Branch, error) {
	var branch models.Branch
	err := orm.DB().Model(&models.Branch{}).Where("slug = ?", slug).First(&branch)
	return branch, err
}

// Exists reports whether a branch slug is valid.
func (r *BranchRepository) Exists(slug string) bool {
	n, err := orm.DB().Model(&models.Branch{}).Where("slug = ?", slug).Count()
	return err == nil && n > 0
}
