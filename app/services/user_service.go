package services

import (
	"errors"

	"github.com/shashiranjanraj/aushadhi/app/models"
	"github.com/shashiranjanraj/aushadhi/app/repositories"
	"github.com/shashiranjanraj/aushadhi/pkg/auth"
	"github.com/shashiranjanraj/aushadhi/pkg/orm"
)

var (
	ErrWrongPassword = errors.New("current password is incorrect")
	ErrUnknownStatus = errors.New("unknown account status")
)

// UserService covers profile self-service and the admin user directory.
type UserService struct {
	users *repositories.UserRepository
}

func NewUserService() *UserService {
	return &UserService{users: repositories.NewUserRepository()}
}

// List returns the user directory (admin).
func (s *UserService) List(page, limit int) ([]models.User, orm.Pagination, error) {
	return s.users.All(page, limit)
}

// Get returns one user.
func (s *UserService) Get(id uint) (models.User, error) {
	return s.users.FindByID(id)
}

// ProfileInput is the self-service profile update payload.
type ProfileInput struct {
	FirstName string `json:"firstName" validate:"required,min=2,max=100"`
	LastName  string `json:"lastName"  validate:"required,min=2,max=100"`
	Username  string `json:"username"  validate:"nullable,min=3,max=100"`
	Phone     string `json:"phone"     validate:"nullable,digits=10"`
}

// UpdateProfile updates the caller's own names, username, and phone.
// FullName is recomputed by the model hook.
func (s *UserService) UpdateProfile(userID uint, in ProfileInput) (models.User, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		return models.User{}, err
	}

	if in.Username != "" && in.Username != user.Username {
		if existing, err := s.users.FindByUsername(in.Username); err == nil && existing.ID != user.ID {
			return models.User{}, ErrUsernameTaken
		}
	}

	user.FirstName = in.FirstName
	user.LastName = in.LastName
	user.Username = in.Username
	user.Phone = in.Phone

	if err := s.users.Update(&user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// ChangePassword verifies the current password before setting a new hash.
func (s *UserService) ChangePassword(userID uint, current, next string) error {
	user, err := s.users.FindByID(userID)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(user.Password, current) {
		return ErrWrongPassword
	}
	hash, err := auth.HashPassword(next)
	if err != nil {
		return err
	}
	user.Password = hash
	return s.users.Update(&user)
}

// UpdateRole changes a user's role (admin only). The role must parse
// against the closed enum.
func (s *UserService) UpdateRole(userID uint, rawRole string) (models.User, error) {
	role, err := auth.ParseRole(rawRole)
	if err != nil {
		return models.User{}, err
	}
	user, err := s.users.FindByID(userID)
	if err != nil {
		return models.User{}, err
	}
	user.Role = role
	if err := s.users.Update(&user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// UpdateStatus blocks or unblocks an account (admin only).
func (s *UserService) UpdateStatus(userID uint, status string) (models.User, error) {
	if status != models.UserStatusActive && status != models.UserStatusBlocked {
		return models.User{}, ErrUnknownStatus
	}
	user, err := s.users.FindByID(userID)
	if err != nil {
		return models.User{}, err
	}
	user.Status = status
	if err := s.users.Update(&user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// SetProfilePicture stores the uploaded picture path on the account.
func (s *UserService) SetProfilePicture(userID uint, path string) (models.User, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		return models.User{}, err
	}
	user.ProfilePicture = path
	if err := s.users.Update(&user); err != nil {
		return models.User{}, err
	}
	return user, nil
}
