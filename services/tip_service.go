package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tapr/entity"
	"tapr/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const MaxTipAmount = 1000

// TipNotifier is told about every tip after it is stored.
type TipNotifier interface {
	NotifyTip(venueID string, tip *entity.Tip)
}

type TipService struct {
	Tips  *repository.TipRepository
	Staff *repository.StaffRepository

	currency string
	// demoStaffFallback substitutes any staff member for an unknown one.
	// Demo deployments only.
	demoStaffFallback bool
	notifier          TipNotifier
	log               logrus.FieldLogger
}

type TipOptions struct {
	Currency          string
	DemoStaffFallback bool
	Notifier          TipNotifier
	Log               logrus.FieldLogger
}

func NewTipService(tips *repository.TipRepository, staff *repository.StaffRepository, opts TipOptions) *TipService {
	if opts.Currency == "" {
		opts.Currency = "USD"
	}
	if opts.Log == nil {
		opts.Log = logrus.StandardLogger()
	}
	return &TipService{
		Tips:              tips,
		Staff:             staff,
		currency:          opts.Currency,
		demoStaffFallback: opts.DemoStaffFallback,
		notifier:          opts.Notifier,
		log:               opts.Log,
	}
}

type CreateTipInput struct {
	StaffID           string
	Amount            float64
	PaymentMethod     entity.PaymentMethod
	ExternalPaymentID string
	UserID            *string
}

// Create stores a tip. It is completed when the payment provider already
// returned a reference, pending otherwise.
func (s *TipService) Create(ctx context.Context, in CreateTipInput) (*entity.Tip, error) {
	if in.Amount <= 0 || in.Amount > MaxTipAmount {
		return nil, ErrInvalidTipAmount
	}
	if !in.PaymentMethod.Valid() {
		return nil, ErrInvalidPayment
	}

	staff, err := s.resolveStaff(ctx, in.StaffID)
	if err != nil {
		return nil, err
	}

	tip := &entity.Tip{
		StaffID:       staff.ID,
		UserID:        in.UserID,
		Amount:        in.Amount,
		PaymentMethod: in.PaymentMethod,
		Status:        entity.TipPending,
		Currency:      s.currency,
	}
	if ref := strings.TrimSpace(in.ExternalPaymentID); ref != "" {
		tip.ExternalPaymentID = &ref
		tip.Status = entity.TipCompleted
	}

	if err := s.Tips.Create(ctx, tip); err != nil {
		return nil, err
	}
	tip.Staff = staff

	if s.notifier != nil {
		s.notifier.NotifyTip(staff.VenueID, tip)
	}
	return tip, nil
}

func (s *TipService) resolveStaff(ctx context.Context, id string) (*entity.Staff, error) {
	staff, err := s.Staff.FindByID(ctx, id)
	if err == nil {
		return staff, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if !s.demoStaffFallback {
		return nil, ErrStaffNotFound
	}

	staff, err = s.Staff.FindAny(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"requested": id, "used": staff.ID}).Warn("demo staff fallback used for tip")
	return staff, nil
}

func (s *TipService) ListForUser(ctx context.Context, userID string) ([]entity.Tip, error) {
	return s.Tips.ListByUser(ctx, userID)
}

// Complete performs the one-way pending -> completed transition.
func (s *TipService) Complete(ctx context.Context, id, externalPaymentID string) (*entity.Tip, error) {
	var ref *string
	if r := strings.TrimSpace(externalPaymentID); r != "" {
		ref = &r
	}

	affected, err := s.Tips.CompleteGuard(ctx, id, ref)
	if err != nil {
		return nil, fmt.Errorf("complete tip %s: %w", id, err)
	}

	tip, err := s.Tips.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTipNotFound
		}
		return nil, err
	}
	if affected == 0 {
		return nil, ErrTipAlreadyCompleted
	}
	return tip, nil
}
