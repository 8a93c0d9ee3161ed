// Package repositories holds the database access layer. Each repository
// wraps pkg/orm for one aggregate and exposes exactly the queries the
// services need.
package repositories

import (
	"context"

	"github.com/shashiranjanraj/aushadhi/app/models"
	"github.com/shashiranjanraj/aushadhi/pkg/auth"
	"github.com/shashiranjanraj/aushadhi/pkg/orm"
)

// UserRepository handles database operations for User.
type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// FindByEmail looks up a user by their email address.
func (r *UserRepository) FindByEmail(email string) (models.User, error) {
	var user models.User
	err := orm.DB().Model(&models.User{}).Where("email = ?", email).First(&user)
	return user, err
}

// FindByUsername looks up a user by username.
func (r *UserRepository) FindByUsername(username string) (models.User, error) {
	var user models.User
	err := orm.DB().Model(&models.User{}).Where("username = ?", username).First(&user)
	return user, err
}

// FindByID looks up a user by primary key.
func (r *UserRepository) FindByID(id uint) (models.User, error) {
	var user models.User
	err := orm.DB().Model(&models.User{}).Where("id = ?", id).First(&user)
	return user, err
}

// FindIdentity satisfies middleware.IdentityFinder: it resolves a token
// subject into a live identity, so deleted accounts fail authentication.
func (r *UserRepository) FindIdentity(_ context.Context, userID uint) (auth.Identity, error) {
	user, err := r.FindByID(userID)
	if err != nil {
		return auth.Identity{}, err
	}
	return user.Identity(), nil
}

// Create persists a new user record.
func (r *UserRepository) Create(user *models.User) error {
	return orm.DB().Create(user)
}

// Update persists changes to an existing user.
func (r *UserRepository) Update(user *models.User) error {
	return orm.DB().Save(user)
}

// All returns users with pagination, newest first.
func (r *UserRepository) All(page, limit int) ([]models.User, orm.Pagination, error) {
	var users []models.User
	pagination, err := orm.DB().
		Model(&models.User{}).
		Order("created_at desc").
		GetWithPagination(&users, page, limit)
	return users, pagination, err
}
