// Package services holds the business logic between controllers and
// repositories.
package services

import (
	"errors"

	"github.com/shashiranjanraj/aushadhi/app/models"
	"github.com/shashiranjanraj/aushadhi/app/repositories"
	"github.com/shashiranjanraj/aushadhi/pkg/auth"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountBlocked     = errors.New("account is blocked")
)

// AuthService implements register/login/me.
type AuthService struct {
	users *repositories.UserRepository
}

func NewAuthService() *AuthService {
	return &AuthService{users: repositories.NewUserRepository()}
}

// RegisterInput is the payload accepted by Register.
type RegisterInput struct {
	FirstName string `json:"firstName" validate:"required,min=2,max=100"`
	LastName  string `json:"lastName"  validate:"required,min=2,max=100"`
	Email     string `json:"email"     validate:"required,email"`
	Username  string `json:"username"  validate:"nullable,min=3,max=100"`
	Phone     string `json:"phone"     validate:"nullable,digits=10"`
	Password  string `json:"password"  validate:"required,min=8"`
}

// Register creates a customer account. New accounts always get the customer
// role; admins are seeded or promoted by an existing admin.
func (s *AuthService) Register(in RegisterInput) (models.User, error) {
	if _, err := s.users.FindByEmail(in.Email); err == nil {
		return models.User{}, ErrEmailTaken
	}
	if in.Username != "" {
		if _, err := s.users.FindByUsername(in.Username); err == nil {
			return models.User{}, ErrUsernameTaken
		}
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Username:  in.Username,
		Phone:     in.Phone,
		Password:  hash,
		Role:      auth.RoleCustomer,
		Status:    models.UserStatusActive,
	}
	if err := s.users.Create(&user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Login verifies credentials and returns the user plus a signed token pair.
func (s *AuthService) Login(email, password string) (models.User, string, string, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		return models.User{}, "", "", ErrInvalidCredentials
	}
	if !auth.CheckPassword(user.Password, password) {
		return models.User{}, "", "", ErrInvalidCredentials
	}
	if user.IsBlocked() {
		return models.User{}, "", "", ErrAccountBlocked
	}

	token, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		return models.User{}, "", "", err
	}
	refresh, err := auth.GenerateRefreshToken(user.ID, user.Role)
	if err != nil {
		return models.User{}, "", "", err
	}
	return user, token, refresh, nil
}

// Me returns the full record behind an authenticated identity.
func (s *AuthService) Me(userID uint) (models.User, error) {
	return s.users.FindByID(userID)
}
