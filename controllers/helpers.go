package controllers

import (
	"errors"
	"fmt"

	"tapr/pkg/resp"
	"tapr/services"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// writeServiceError maps domain errors onto the response taxonomy;
// anything unknown becomes an opaque 500.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEmailTaken):
		resp.Conflict(c, "Email already registered")
	case errors.Is(err, services.ErrInvalidCredentials):
		resp.Unauthorized(c, "Invalid email or password")
	case errors.Is(err, services.ErrInvalidName):
		resp.Validation(c, []resp.FieldError{{Field: "name", Message: "must be at least 2 characters"}})
	case errors.Is(err, services.ErrPasswordTooLong), errors.Is(err, bcrypt.ErrPasswordTooLong):
		resp.Validation(c, []resp.FieldError{{Field: "password", Message: fmt.Sprintf("must be at most %d bytes", maxPasswordBytes)}})
	case errors.Is(err, services.ErrVenueNotFound):
		resp.NotFound(c, "Venue not found")
	case errors.Is(err, services.ErrStaffNotFound):
		resp.NotFound(c, "Staff not found")
	case errors.Is(err, services.ErrMenuItemNotFound):
		resp.NotFound(c, "Menu item not found")
	case errors.Is(err, services.ErrCategoryNotFound):
		resp.NotFound(c, "Category not found")
	case errors.Is(err, services.ErrCategoryTaken):
		resp.Conflict(c, "Category slug already exists for this venue")
	case errors.Is(err, services.ErrInvalidCategory):
		resp.Validation(c, []resp.FieldError{{Field: "slug", Message: "must contain only lowercase letters, digits and hyphens"}})
	case errors.Is(err, services.ErrTipNotFound):
		resp.NotFound(c, "Tip not found")
	case errors.Is(err, services.ErrTipAlreadyCompleted):
		resp.Conflict(c, "Tip already completed")
	case errors.Is(err, services.ErrInvalidTipAmount):
		resp.Validation(c, []resp.FieldError{{Field: "amount", Message: "must be greater than 0 and at most 1000"}})
	case errors.Is(err, services.ErrInvalidPayment):
		resp.Validation(c, []resp.FieldError{{Field: "paymentMethod", Message: "must be one of: card, apple_pay, google_pay"}})
	default:
		resp.ServerError(c, err)
	}
}
