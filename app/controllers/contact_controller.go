package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/aushadhi/app/models"
	"github.com/shashiranjanraj/aushadhi/app/repositories"
	"github.com/shashiranjanraj/aushadhi/pkg/bind"
	"github.com/shashiranjanraj/aushadhi/pkg/response"
	"github.com/shashiranjanraj/aushadhi/pkg/router"
)

type ContactController struct {
	contacts *repositories.ContactRepository
}

func NewContactController() *ContactController {
	return &ContactController{contacts: repositories.NewContactRepository()}
}

type contactInput struct {
	Name    string `json:"name"    validate:"required,min=2,max=255"`
	Email   string `json:"email"   validate:"required,email"`
	Subject string `json:"subject" validate:"nullable,max=255"`
	Body    string `json:"message" validate:"required,min=10,max=5000"`
}

// Store handles POST /api/contact (public).
func (c *ContactController) Store(w http.ResponseWriter, r *http.Request) {
	var in contactInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	msg := models.ContactMessage{
		Name:    in.Name,
		Email:   in.Email,
		Subject: in.Subject,
		Body:    in.Body,
	}
	if err := c.contacts.Create(&msg); err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not save message")
		return
	}
	response.Created(w, msg)
}

// Index handles GET /api/contact (admin).
func (c *ContactController) Index(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	messages, pagination, err := c.contacts.All(page, limit)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not load messages")
		return
	}
	response.Paginated(w, messages, pagination)
}

// Destroy handles DELETE /api/contact/{id} (admin).
func (c *ContactController) Destroy(w http.ResponseWriter, r *http.Request) {
	if err := c.contacts.Delete(router.ParamUint(r, "id")); err != nil {
		response.NotFound(w)
		return
	}
	response.Message(w, "Message deleted")
}
