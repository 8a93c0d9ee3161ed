package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/aushadhi/app/models"
	"github.com/shashiranjanraj/aushadhi/app/services"
	"github.com/shashiranjanraj/aushadhi/pkg/bind"
	"github.com/shashiranjanraj/aushadhi/pkg/response"
	"github.com/shashiranjanraj/aushadhi/pkg/router"
)

type CategoryController struct {
	catalog *services.CatalogService
}

func NewCategoryController() *CategoryController {
	return &CategoryController{catalog: services.NewCatalogService()}
}

// Index handles GET /api/categories.
func (c *CategoryController) Index(w http.ResponseWriter, r *http.Request) {
	categories, err := c.catalog.Categories()
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not load categories")
		return
	}
	response.Success(w, categories)
}

// Show handles GET /api/categories/{id}.
func (c *CategoryController) Show(w http.ResponseWriter, r *http.Request) {
	id := router.ParamUint(r, "id")
	category, err := c.catalog.Category(id)
	if err != nil {
		response.NotFound(w)
		return
	}
	response.Success(w, category)
}

type categoryInput struct {
	Name        string `json:"name"        validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"nullable,max=500"`
	Image       string `json:"image"       validate:"nullable,max=500"`
}

// Store handles POST /api/categories (admin).
func (c *CategoryController) Store(w http.ResponseWriter, r *http.Request) {
	var in categoryInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	category := models.Category{Name: in.Name, Description: in.Description, Image: in.Image}
	if err := c.catalog.CreateCategory(&category); err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not create category")
		return
	}
	response.Created(w, category)
}

// Update handles PUT /api/categories/{id} (admin).
func (c *CategoryController) Update(w http.ResponseWriter, r *http.Request) {
	id := router.ParamUint(r, "id")
	category, err := c.catalog.Category(id)
	if err != nil {
		response.NotFound(w)
		return
	}

	var in categoryInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	category.Name = in.Name
	category.Description = in.Description
	category.Image = in.Image
	if err := c.catalog.UpdateCategory(&category); err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not update category")
		return
	}
	response.Success(w, category)
}

// Destroy handles DELETE /api/categories/{id} (admin).
func (c *CategoryController) Destroy(w http.ResponseWriter, r *http.Request) {
	id := router.ParamUint(r, "id")
	if _, err := c.catalog.Category(id); err != nil {
		response.NotFound(w)
		return
	}
	if err := c.catalog.DeleteCategory(id); err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not delete category")
		return
	}
	response.Message(w, "Category deleted")
}
