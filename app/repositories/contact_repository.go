package repositories

import (
	"github.com/shashiranjanraj/aushadhi/app/models"
	"github.com/shashiranjanraj/aushadhi/pkg/orm"
)

// ContactRepository handles database operations for ContactMessage.
type ContactRepository struct{}

func NewContactRepository() *ContactRepository {
	return &ContactRepository{}
}

func (r *ContactRepository) Create(msg *models.ContactMessage) error {
	return orm.DB().Create(msg)
}

// All returns contact messages with pagination, newest first.
func (r *ContactRepository) All(page, limit int) ([]models.ContactMessage, orm.Pagination, error) {
	var msgs []models.ContactMessage
	pagination, err := orm.DB().
		Model(&models.ContactMessage{}).
		Order("created_at desc").
		GetWithPagination(&msgs, page, limit)
	return msgs, pagination, err
}

func (r *ContactRepository) Delete(id uint) error {
	return orm.DB().Delete(&models.ContactMessage{}, id)
}
