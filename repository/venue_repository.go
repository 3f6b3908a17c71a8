package repository

import (
	"context"
	"strings"

	"tapr/entity"

	"gorm.io/gorm"
)

type VenueFilter struct {
	Category string
	Search   string
}

type VenueCounts struct {
	MenuItems int64 `json:"menuItems"`
	Staff     int64 `json:"staff"`
}

type VenueRepository struct {
	DB *gorm.DB
}

func NewVenueRepository(db *gorm.DB) *VenueRepository {
	return &VenueRepository{DB: db}
}

// List returns venues newest first. Category must equal one element of the
// venue's category list; Search is a case-insensitive substring of name or
// city.
func (r *VenueRepository) List(ctx context.Context, f VenueFilter) ([]entity.Venue, error) {
	q := r.DB.WithContext(ctx).Model(&entity.Venue{})
	if f.Category != "" {
		q = q.Where(`category LIKE ? ESCAPE '\'`, jsonElementPattern(f.Category))
	}
	if f.Search != "" {
		p := containsPattern(strings.ToLower(f.Search))
		q = q.Where(`(LOWER(name) LIKE ? ESCAPE '\' OR LOWER(city) LIKE ? ESCAPE '\')`, p, p)
	}

	venues := []entity.Venue{}
	if err := q.Order("created_at DESC").Order("id").Find(&venues).Error; err != nil {
		return nil, err
	}
	if f.Category == "" {
		return venues, nil
	}

	// sqlite LIKE folds ASCII case and postgres LIKE does not; the query
	// only narrows, the element match is decided here.
	matched := venues[:0]
	for _, v := range venues {
		if v.HasCategory(f.Category) {
			matched = append(matched, v)
		}
	}
	return matched, nil
}

// Counts returns menu item and staff totals keyed by venue id.
func (r *VenueRepository) Counts(ctx context.Context, venueIDs []string) (map[string]VenueCounts, error) {
	out := make(map[string]VenueCounts, len(venueIDs))
	if len(venueIDs) == 0 {
		return out, nil
	}

	type row struct {
		VenueID string
		N       int64
	}
	var items, staff []row
	db := r.DB.WithContext(ctx)
	if err := db.Model(&entity.MenuItem{}).Select("venue_id, COUNT(*) AS n").
		Where("venue_id IN ?", venueIDs).Group("venue_id").Scan(&items).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&entity.Staff{}).Select("venue_id, COUNT(*) AS n").
		Where("venue_id IN ?", venueIDs).Group("venue_id").Scan(&staff).Error; err != nil {
		return nil, err
	}

	for _, it := range items {
		c := out[it.VenueID]
		c.MenuItems = it.N
		out[it.VenueID] = c
	}
	for _, s := range staff {
		c := out[s.VenueID]
		c.Staff = s.N
		out[s.VenueID] = c
	}
	return out, nil
}

func (r *VenueRepository) FindBySlug(ctx context.Context, slug string) (*entity.Venue, error) {
	var venue entity.Venue
	if err := r.DB.WithContext(ctx).Where("slug = ?", slug).First(&venue).Error; err != nil {
		return nil, err
	}
	return &venue, nil
}

// FindDetailBySlug preloads available menu items (category, name) and staff.
func (r *VenueRepository) FindDetailBySlug(ctx context.Context, slug string) (*entity.Venue, error) {
	var venue entity.Venue
	err := r.DB.WithContext(ctx).
		Preload("MenuItems", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_available = ?", true).Order("category ASC").Order("name ASC")
		}).
		Preload("Staff", func(db *gorm.DB) *gorm.DB {
			return db.Order("name ASC")
		}).
		Where("slug = ?", slug).
		First(&venue).Error
	if err != nil {
		return nil, err
	}
	return &venue, nil
}
