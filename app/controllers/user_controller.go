package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/aushadhi/app/services"
	"github.com/shashiranjanraj/aushadhi/pkg/auth"
	"github.com/shashiranjanraj/aushadhi/pkg/bind"
	"github.com/shashiranjanraj/aushadhi/pkg/response"
	"github.com/shashiranjanraj/aushadhi/pkg/router"
)

type UserController struct {
	users *services.UserService
}

func NewUserController() *UserController {
	return &UserController{users: services.NewUserService()}
}

// Index handles GET /api/users (admin).
func (c *UserController) Index(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	users, pagination, err := c.users.List(page, limit)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not load users")
		return
	}
	response.Paginated(w, users, pagination)
}

// Show handles GET /api/users/{id} (admin).
func (c *UserController) Show(w http.ResponseWriter, r *http.Request) {
	user, err := c.users.Get(router.ParamUint(r, "id"))
	if err != nil {
		response.NotFound(w)
		return
	}
	response.Success(w, user)
}

type roleInput struct {
	Role string `json:"role" validate:"required,in=admin,customer"`
}

// UpdateRole handles PATCH /api/users/{id}/role (admin).
func (c *UserController) UpdateRole(w http.ResponseWriter, r *http.Request) {
	var in roleInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	user, err := c.users.UpdateRole(router.ParamUint(r, "id"), in.Role)
	if err != nil {
		response.NotFound(w)
		return
	}
	response.Success(w, user)
}

type statusInput struct {
	Status string `json:"status" validate:"required,in=active,blocked"`
}

// UpdateStatus handles PATCH /api/users/{id}/status (admin).
func (c *UserController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var in statusInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	user, err := c.users.UpdateStatus(router.ParamUint(r, "id"), in.Status)
	if err != nil {
		response.NotFound(w)
		return
	}
	response.Success(w, user)
}

// UpdateProfile handles PUT /api/profile.
func (c *UserController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromRequest(r)
	if !ok {
		response.Unauthenticated(w)
		return
	}

	var in services.ProfileInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	user, err := c.users.UpdateProfile(identity.ID, in)
	switch {
	case errors.Is(err, services.ErrUsernameTaken):
		response.BadRequest(w, err.Error())
		return
	case err != nil:
		response.Error(w, http.StatusInternalServerError, "Could not update profile")
		return
	}
	response.Success(w, user)
}

type passwordInput struct {
	CurrentPassword      string `json:"current_password" validate:"required"`
	Password             string `json:"password"         validate:"required,min=8,confirmed"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// ChangePassword handles PUT /api/profile/password.
func (c *UserController) ChangePassword(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromRequest(r)
	if !ok {
		response.Unauthenticated(w)
		return
	}

	var in passwordInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	err := c.users.ChangePassword(identity.ID, in.CurrentPassword, in.Password)
	switch {
	case errors.Is(err, services.ErrWrongPassword):
		response.BadRequest(w, err.Error())
		return
	case err != nil:
		response.Error(w, http.StatusInternalServerError, "Could not change password")
		return
	}
	response.Message(w, "Password updated")
}
