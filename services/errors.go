package services

import "errors"

var (
	ErrEmailTaken          = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInvalidName         = errors.New("name must be 2 to 60 characters")
	ErrPasswordTooLong     = errors.New("password exceeds 72 bytes")
	ErrVenueNotFound       = errors.New("venue not found")
	ErrStaffNotFound       = errors.New("staff not found")
	ErrMenuItemNotFound    = errors.New("menu item not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrCategoryTaken       = errors.New("category slug already exists")
	ErrInvalidCategory     = errors.New("category slug is empty")
	ErrTipNotFound         = errors.New("tip not found")
	ErrTipAlreadyCompleted = errors.New("tip already completed")
	ErrInvalidTipAmount    = errors.New("tip amount out of range")
	ErrInvalidPayment      = errors.New("unsupported payment method")
)
