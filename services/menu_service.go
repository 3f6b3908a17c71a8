package services

import (
	"context"
	"errors"

	"tapr/entity"
	"tapr/repository"

	"gorm.io/gorm"
)

type MenuService struct {
	Repo   *repository.MenuRepository
	Venues *VenueService
}

func NewMenuService(repo *repository.MenuRepository, venues *VenueService) *MenuService {
	return &MenuService{Repo: repo, Venues: venues}
}

// ListForVenue returns only available items.
func (s *MenuService) ListForVenue(ctx context.Context, slug, category string) ([]entity.MenuItem, error) {
	venue, err := s.Venues.BySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.Repo.ListAvailable(ctx, venue.ID, normalizeCategory(category))
}

type MenuItemInput struct {
	Name          string
	NameFa        string
	Description   string
	DescriptionFa string
	Price         float64
	Category      string
	Weight        string
	IsAvailable   bool
}

func (s *MenuService) Create(ctx context.Context, slug string, in MenuItemInput) (*entity.MenuItem, error) {
	venue, err := s.Venues.BySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	item := &entity.MenuItem{
		VenueID:       venue.ID,
		Name:          in.Name,
		NameFa:        in.NameFa,
		Description:   in.Description,
		DescriptionFa: in.DescriptionFa,
		Price:         in.Price,
		Category:      in.Category,
		Weight:        in.Weight,
		IsAvailable:   in.IsAvailable,
	}
	if err := s.Repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// MenuItemPatch holds the fields to change; nil leaves a column untouched.
type MenuItemPatch struct {
	Name          *string
	NameFa        *string
	Description   *string
	DescriptionFa *string
	Price         *float64
	Category      *string
	Weight        *string
	IsAvailable   *bool
}

func (p MenuItemPatch) columns() map[string]any {
	cols := map[string]any{}
	if p.Name != nil {
		cols["name"] = *p.Name
	}
	if p.NameFa != nil {
		cols["name_fa"] = *p.NameFa
	}
	if p.Description != nil {
		cols["description"] = *p.Description
	}
	if p.DescriptionFa != nil {
		cols["description_fa"] = *p.DescriptionFa
	}
	if p.Price != nil {
		cols["price"] = *p.Price
	}
	if p.Category != nil {
		cols["category"] = *p.Category
	}
	if p.Weight != nil {
		cols["weight"] = *p.Weight
	}
	if p.IsAvailable != nil {
		cols["is_available"] = *p.IsAvailable
	}
	return cols
}

func (s *MenuService) Update(ctx context.Context, id string, patch MenuItemPatch) (*entity.MenuItem, error) {
	if cols := patch.columns(); len(cols) > 0 {
		if _, err := s.Repo.Update(ctx, id, cols); err != nil {
			return nil, err
		}
	}
	item, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMenuItemNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *MenuService) Delete(ctx context.Context, id string) error {
	n, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrMenuItemNotFound
	}
	return nil
}
