package controllers

import (
	"strconv"

	"tapr/pkg/resp"
	"tapr/services"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	Service *services.StatsService
}

func NewAdminController(stats *services.StatsService) *AdminController {
	return &AdminController{Service: stats}
}

// GET /api/admin/stats?days=
func (a *AdminController) Stats(c *gin.Context) {
	days := services.DefaultStatsDays
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > services.MaxStatsDays {
			resp.BadRequest(c, "days must be between 1 and "+strconv.Itoa(services.MaxStatsDays))
			return
		}
		days = n
	}

	dash, err := a.Service.Summary(c.Request.Context(), days)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, dash)
}
