package controllers

import (
	"time"

	"tapr/entity"
	"tapr/pkg/metrics"
	"tapr/pkg/resp"
	"tapr/services"
	"tapr/utils"

	"github.com/gin-gonic/gin"
)

type CreateTipRequest struct {
	StaffID           string               `json:"staffId" binding:"required,max=64"`
	Amount            float64              `json:"amount" binding:"gt=0,lte=1000"`
	PaymentMethod     entity.PaymentMethod `json:"paymentMethod" binding:"required,oneof=card apple_pay google_pay"`
	ExternalPaymentID string               `json:"externalPaymentId" binding:"max=255"`
}

type CompleteTipRequest struct {
	ExternalPaymentID string `json:"externalPaymentId" binding:"max=255"`
}

type TipController struct {
	Tips    *services.TipService
	Metrics *metrics.Metrics
}

func NewTipController(tips *services.TipService, m *metrics.Metrics) *TipController {
	return &TipController{Tips: tips, Metrics: m}
}

type tipVenueResponse struct {
	Name string `json:"name"`
}

type tipStaffResponse struct {
	Name  string            `json:"name"`
	Role  string            `json:"role"`
	Venue *tipVenueResponse `json:"venue,omitempty"`
}

type tipResponse struct {
	ID                string               `json:"id"`
	StaffID           string               `json:"staffId"`
	UserID            *string              `json:"userId"`
	Amount            float64              `json:"amount"`
	PaymentMethod     entity.PaymentMethod `json:"paymentMethod"`
	ExternalPaymentID *string              `json:"externalPaymentId"`
	Status            entity.TipStatus     `json:"status"`
	Currency          string               `json:"currency"`
	CreatedAt         time.Time            `json:"createdAt"`
	Staff             *tipStaffResponse    `json:"staff,omitempty"`
}

func mapToTipResponse(t *entity.Tip) tipResponse {
	out := tipResponse{
		ID:                t.ID,
		StaffID:           t.StaffID,
		UserID:            t.UserID,
		Amount:            t.Amount,
		PaymentMethod:     t.PaymentMethod,
		ExternalPaymentID: t.ExternalPaymentID,
		Status:            t.Status,
		Currency:          t.Currency,
		CreatedAt:         t.CreatedAt,
	}
	if t.Staff != nil {
		out.Staff = &tipStaffResponse{Name: t.Staff.Name, Role: t.Staff.Role}
		if t.Staff.Venue != nil {
			out.Staff.Venue = &tipVenueResponse{Name: t.Staff.Venue.Name}
		}
	}
	return out
}

// POST /api/tips
func (ctl *TipController) Create(c *gin.Context) {
	var req CreateTipRequest
	if !bindJSON(c, &req) {
		return
	}

	tip, err := ctl.Tips.Create(c.Request.Context(), services.CreateTipInput{
		StaffID:           req.StaffID,
		Amount:            req.Amount,
		PaymentMethod:     req.PaymentMethod,
		ExternalPaymentID: req.ExternalPaymentID,
		UserID:            utils.CurrentUserID(c),
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	ctl.Metrics.RecordTip(string(tip.PaymentMethod), string(tip.Status), tip.Currency, tip.Amount)
	resp.Created(c, mapToTipResponse(tip))
}

// GET /api/tips
func (ctl *TipController) ListMine(c *gin.Context) {
	user := utils.CurrentUser(c)
	tips, err := ctl.Tips.ListForUser(c.Request.Context(), user.ID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	out := make([]tipResponse, 0, len(tips))
	for i := range tips {
		out = append(out, mapToTipResponse(&tips[i]))
	}
	resp.OK(c, out)
}

// PATCH /api/admin/tips/:id/complete
func (ctl *TipController) Complete(c *gin.Context) {
	var req CompleteTipRequest
	// the body is optional here
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}

	tip, err := ctl.Tips.Complete(c.Request.Context(), c.Param("id"), req.ExternalPaymentID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, mapToTipResponse(tip))
}
