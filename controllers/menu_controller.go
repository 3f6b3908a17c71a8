package controllers

import (
	"strings"

	"tapr/pkg/resp"
	"tapr/services"

	"github.com/gin-gonic/gin"
)

type MenuController struct {
	Menu *services.MenuService
}

func NewMenuController(menu *services.MenuService) *MenuController {
	return &MenuController{Menu: menu}
}

type CreateMenuItemRequest struct {
	Name          string   `json:"name" binding:"required,max=120"`
	NameFa        string   `json:"nameFa" binding:"max=120"`
	Description   string   `json:"description" binding:"max=500"`
	DescriptionFa string   `json:"descriptionFa" binding:"max=500"`
	Price         *float64 `json:"price" binding:"required,gte=0"`
	Category      string   `json:"category" binding:"required,max=60"`
	Weight        string   `json:"weight" binding:"max=30"`
	IsAvailable   *bool    `json:"isAvailable"`
}

type UpdateMenuItemRequest struct {
	Name          *string  `json:"name" binding:"omitempty,min=1,max=120"`
	NameFa        *string  `json:"nameFa" binding:"omitempty,max=120"`
	Description   *string  `json:"description" binding:"omitempty,max=500"`
	DescriptionFa *string  `json:"descriptionFa" binding:"omitempty,max=500"`
	Price         *float64 `json:"price" binding:"omitempty,gte=0"`
	Category      *string  `json:"category" binding:"omitempty,min=1,max=60"`
	Weight        *string  `json:"weight" binding:"omitempty,max=30"`
	IsAvailable   *bool    `json:"isAvailable"`
}

// GET /api/menu?venue=&category=
func (ctl *MenuController) List(c *gin.Context) {
	venue := strings.TrimSpace(c.Query("venue"))
	if venue == "" {
		resp.BadRequest(c, "venue is required")
		return
	}

	items, err := ctl.Menu.ListForVenue(c.Request.Context(), venue, c.Query("category"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, items)
}

// POST /api/admin/venues/:slug/menu
func (ctl *MenuController) Create(c *gin.Context) {
	var req CreateMenuItemRequest
	if !bindJSON(c, &req) {
		return
	}

	in := services.MenuItemInput{
		Name:          req.Name,
		NameFa:        req.NameFa,
		Description:   req.Description,
		DescriptionFa: req.DescriptionFa,
		Price:         *req.Price,
		Category:      req.Category,
		Weight:        req.Weight,
		IsAvailable:   true,
	}
	if req.IsAvailable != nil {
		in.IsAvailable = *req.IsAvailable
	}

	item, err := ctl.Menu.Create(c.Request.Context(), c.Param("slug"), in)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.Created(c, item)
}

// PUT /api/admin/menu/:id
func (ctl *MenuController) Update(c *gin.Context) {
	var req UpdateMenuItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := ctl.Menu.Update(c.Request.Context(), c.Param("id"), services.MenuItemPatch{
		Name:          req.Name,
		NameFa:        req.NameFa,
		Description:   req.Description,
		DescriptionFa: req.DescriptionFa,
		Price:         req.Price,
		Category:      req.Category,
		Weight:        req.Weight,
		IsAvailable:   req.IsAvailable,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, item)
}

// DELETE /api/admin/menu/:id
func (ctl *MenuController) Delete(c *gin.Context) {
	if err := ctl.Menu.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, gin.H{"id": c.Param("id"), "deleted": true})
}
