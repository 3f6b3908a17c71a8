package services

import (
	"context"
	"errors"
	"sort"
	"strings"

	"tapr/entity"
	"tapr/repository"

	"gorm.io/gorm"
)

type CategoryService struct {
	Repo   *repository.CategoryRepository
	Menu   *repository.MenuRepository
	Venues *VenueService
}

func NewCategoryService(repo *repository.CategoryRepository, menu *repository.MenuRepository, venues *VenueService) *CategoryService {
	return &CategoryService{Repo: repo, Menu: menu, Venues: venues}
}

type CategoryInput struct {
	Name   string
	NameFa string
	Slug   string
}

// MenuSection is one heading of the grouped menu. Sections built from a
// free-text item category that has no managed entry carry no ID.
type MenuSection struct {
	ID     string            `json:"id,omitempty"`
	Slug   string            `json:"slug"`
	Name   string            `json:"name"`
	NameFa string            `json:"nameFa,omitempty"`
	Items  []entity.MenuItem `json:"items"`
}

// Slugify lowercases s and joins its ASCII letter/digit runs with hyphens.
func Slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
		default:
			dash = true
		}
	}
	return b.String()
}

func (s *CategoryService) Create(ctx context.Context, venueSlug string, in CategoryInput) (*entity.MenuCategory, error) {
	venue, err := s.Venues.BySlug(ctx, venueSlug)
	if err != nil {
		return nil, err
	}

	slug := in.Slug
	if slug == "" {
		slug = Slugify(in.Name)
	}
	if slug == "" {
		return nil, ErrInvalidCategory
	}

	category := &entity.MenuCategory{
		VenueID: venue.ID,
		Slug:    slug,
		Name:    in.Name,
		NameFa:  in.NameFa,
	}
	if err := s.Repo.Create(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCategoryTaken
		}
		return nil, err
	}
	return category, nil
}

// Delete removes the heading only; its items stay and show up under an
// unmanaged section of the same name.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	n, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

// Sections groups the venue's available items under its categories,
// ordered by name. Managed categories are listed even when empty.
func (s *CategoryService) Sections(ctx context.Context, venueSlug string) ([]MenuSection, error) {
	venue, err := s.Venues.BySlug(ctx, venueSlug)
	if err != nil {
		return nil, err
	}
	categories, err := s.Repo.ListByVenue(ctx, venue.ID)
	if err != nil {
		return nil, err
	}
	items, err := s.Menu.ListAvailable(ctx, venue.ID, "")
	if err != nil {
		return nil, err
	}

	sections := make([]MenuSection, 0, len(categories))
	byName := make(map[string]int, len(categories))
	for _, c := range categories {
		byName[c.Name] = len(sections)
		sections = append(sections, MenuSection{ID: c.ID, Slug: c.Slug, Name: c.Name, NameFa: c.NameFa, Items: []entity.MenuItem{}})
	}
	for _, it := range items {
		i, ok := byName[it.Category]
		if !ok {
			i = len(sections)
			byName[it.Category] = i
			sections = append(sections, MenuSection{Slug: Slugify(it.Category), Name: it.Category, Items: []entity.MenuItem{}})
		}
		sections[i].Items = append(sections[i].Items, it)
	}

	sort.SliceStable(sections, func(i, j int) bool { return sections[i].Name < sections[j].Name })
	return sections, nil
}
