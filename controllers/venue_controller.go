package controllers

import (
	"tapr/entity"
	"tapr/pkg/metrics"
	"tapr/pkg/resp"
	"tapr/services"
	"tapr/utils"

	"github.com/gin-gonic/gin"
)

type VenueController struct {
	Venues  *services.VenueService
	Metrics *metrics.Metrics
}

func NewVenueController(venues *services.VenueService, m *metrics.Metrics) *VenueController {
	return &VenueController{Venues: venues, Metrics: m}
}

type staffResponse struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Role   string  `json:"role"`
	Rating float64 `json:"rating"`
}

type venueDetailResponse struct {
	entity.Venue
	MenuItems  []entity.MenuItem `json:"menuItems"`
	Staff      []staffResponse   `json:"staff"`
	VisitCount int64             `json:"visitCount"`
}

func mapToVenueDetailResponse(d *services.VenueDetail) venueDetailResponse {
	out := venueDetailResponse{
		Venue:      *d.Venue,
		MenuItems:  d.Venue.MenuItems,
		Staff:      make([]staffResponse, 0, len(d.Venue.Staff)),
		VisitCount: d.VisitCount,
	}
	if out.MenuItems == nil {
		out.MenuItems = []entity.MenuItem{}
	}
	for _, s := range d.Venue.Staff {
		out.Staff = append(out.Staff, staffResponse{ID: s.ID, Name: s.Name, Role: s.Role, Rating: s.Rating})
	}
	return out
}

// GET /api/venues?category=&search=
func (ctl *VenueController) List(c *gin.Context) {
	venues, err := ctl.Venues.List(c.Request.Context(), c.Query("category"), c.Query("search"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, venues)
}

// GET /api/venues/:slug
func (ctl *VenueController) Detail(c *gin.Context) {
	detail, err := ctl.Venues.Detail(c.Request.Context(), c.Param("slug"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, mapToVenueDetailResponse(detail))
}

// POST /api/venues/:slug/visits
func (ctl *VenueController) RecordVisit(c *gin.Context) {
	user := utils.CurrentUser(c)
	visit, err := ctl.Venues.RecordVisit(c.Request.Context(), c.Param("slug"), user.ID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	ctl.Metrics.RecordVisit()
	resp.Created(c, visit)
}
