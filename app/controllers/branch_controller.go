package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/aushadhi/app/repositories"
	"github.com/shashiranjanraj/aushadhi/pkg/response"
	"github.com/shashiranjanraj/aushadhi/pkg/router"
)

type BranchController struct {
	branches *repositories.BranchRepository
}

func NewBranchController() *BranchController {
	return &BranchController{branches: repositories.NewBranchRepository()}
}

// Index handles GET /api/branches (public).
func (c *BranchController) Index(w http.ResponseWriter, r *http.Request) {
	branches, err := c.branches.All()
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not load branches")
		return
	}
	response.Success(w, branches)
}

// Show handles GET /api/branches/{slug} (public).
func (c *BranchController) Show(w http.ResponseWriter, r *http.Request) {
	branch, err := c.branches.FindBySlug(router.Param(r, "slug"))
	if err != nil {
		response.NotFound(w)
		return
	}
	response.Success(w, branch)
}
