// Package controllers holds the HTTP handlers. Controllers decode and
// validate input via pkg/bind, call a service, and write the envelope via
// pkg/response; they contain no business logic.
package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/aushadhi/app/services"
	"github.com/shashiranjanraj/aushadhi/pkg/auth"
	"github.com/shashiranjanraj/aushadhi/pkg/bind"
	"github.com/shashiranjanraj/aushadhi/pkg/response"
	"github.com/shashiranjanraj/aushadhi/pkg/session"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController() *AuthController {
	return &AuthController{service: services.NewAuthService()}
}

// Register handles POST /api/auth/register.
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	user, err := c.service.Register(in)
	switch {
	case errors.Is(err, services.ErrEmailTaken), errors.Is(err, services.ErrUsernameTaken):
		response.BadRequest(w, err.Error())
		return
	case err != nil:
		response.Error(w, http.StatusInternalServerError, "Could not create account")
		return
	}

	token, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not issue token")
		return
	}

	response.Created(w, map[string]interface{}{
		"user":  user,
		"token": token,
	})
}

type loginInput struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login handles POST /api/auth/login.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var in loginInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	user, token, refresh, err := c.service.Login(in.Email, in.Password)
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		response.BadRequest(w, err.Error())
		return
	case errors.Is(err, services.ErrAccountBlocked):
		response.Error(w, http.StatusForbidden, err.Error())
		return
	case err != nil:
		response.Error(w, http.StatusInternalServerError, "Login failed")
		return
	}

	// A pre-login cookie must not name the authenticated session.
	session.Regenerate(r.Context(), w, r)

	response.Success(w, map[string]interface{}{
		"user":         user,
		"token":        token,
		"refreshToken": refresh,
	})
}

// Me handles GET /api/auth/me.
func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromRequest(r)
	if !ok {
		response.Unauthenticated(w)
		return
	}
	user, err := c.service.Me(identity.ID)
	if err != nil {
		response.NotFound(w)
		return
	}
	response.Success(w, user)
}
