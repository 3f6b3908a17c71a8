package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"tapr/entity"
	"tapr/repository"

	"gorm.io/gorm"
)

type VenueService struct {
	Repo   *repository.VenueRepository
	Visits *repository.VisitRepository
	now    func() time.Time
}

func NewVenueService(repo *repository.VenueRepository, visits *repository.VisitRepository) *VenueService {
	return &VenueService{Repo: repo, Visits: visits, now: time.Now}
}

type VenueSummary struct {
	entity.Venue
	Counts repository.VenueCounts `json:"counts"`
}

type VenueDetail struct {
	*entity.Venue
	VisitCount int64 `json:"visitCount"`
}

// normalizeCategory maps the UI's "All" tab to no filter.
func normalizeCategory(c string) string {
	c = strings.TrimSpace(c)
	if strings.EqualFold(c, "all") {
		return ""
	}
	return c
}

func (s *VenueService) List(ctx context.Context, category, search string) ([]VenueSummary, error) {
	venues, err := s.Repo.List(ctx, repository.VenueFilter{
		Category: normalizeCategory(category),
		Search:   strings.TrimSpace(search),
	})
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(venues))
	for i := range venues {
		ids[i] = venues[i].ID
	}
	counts, err := s.Repo.Counts(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]VenueSummary, len(venues))
	for i := range venues {
		out[i] = VenueSummary{Venue: venues[i], Counts: counts[venues[i].ID]}
	}
	return out, nil
}

func (s *VenueService) Detail(ctx context.Context, slug string) (*VenueDetail, error) {
	venue, err := s.Repo.FindDetailBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	visits, err := s.Visits.CountByVenue(ctx, venue.ID)
	if err != nil {
		return nil, err
	}
	return &VenueDetail{Venue: venue, VisitCount: visits}, nil
}

func (s *VenueService) BySlug(ctx context.Context, slug string) (*entity.Venue, error) {
	venue, err := s.Repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return venue, nil
}

// RecordVisit appends a check-in for userID and counts it toward today's
// UTC total.
func (s *VenueService) RecordVisit(ctx context.Context, slug, userID string) (*entity.Visit, error) {
	venue, err := s.BySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	visit := &entity.Visit{UserID: userID, VenueID: venue.ID}
	if err := s.Visits.Record(ctx, visit, s.now().UTC().Format(dayLayout)); err != nil {
		return nil, err
	}
	return visit, nil
}

const dayLayout = "2006-01-02"
