package controllers

import (
	"strings"

	"tapr/pkg/resp"
	"tapr/services"

	"github.com/gin-gonic/gin"
)

type CategoryController struct {
	Categories *services.CategoryService
}

func NewCategoryController(categories *services.CategoryService) *CategoryController {
	return &CategoryController{Categories: categories}
}

type CreateCategoryRequest struct {
	Name   string `json:"name" binding:"required,max=60"`
	NameFa string `json:"nameFa" binding:"max=60"`
	Slug   string `json:"slug" binding:"omitempty,max=60,slug"`
}

func (r *CreateCategoryRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.NameFa = strings.TrimSpace(r.NameFa)
	r.Slug = strings.TrimSpace(r.Slug)
}

// GET /api/menu/categories?venue=
func (ctl *CategoryController) Sections(c *gin.Context) {
	venue := strings.TrimSpace(c.Query("venue"))
	if venue == "" {
		resp.BadRequest(c, "venue is required")
		return
	}

	sections, err := ctl.Categories.Sections(c.Request.Context(), venue)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, sections)
}

// POST /api/admin/venues/:slug/categories
func (ctl *CategoryController) Create(c *gin.Context) {
	var req CreateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	category, err := ctl.Categories.Create(c.Request.Context(), c.Param("slug"), services.CategoryInput{
		Name:   req.Name,
		NameFa: req.NameFa,
		Slug:   req.Slug,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.Created(c, category)
}

// DELETE /api/admin/categories/:id
func (ctl *CategoryController) Delete(c *gin.Context) {
	if err := ctl.Categories.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, gin.H{"id": c.Param("id"), "deleted": true})
}
