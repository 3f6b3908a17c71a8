package entity

// MenuCategory is an admin-managed, bilingual heading for a venue's menu.
// Items belong to it by name (MenuItem.Category).
type MenuCategory struct {
	Model
	VenueID string `gorm:"not null;uniqueIndex:idx_menu_category_venue_slug" json:"venueId"`
	Slug    string `gorm:"not null;uniqueIndex:idx_menu_category_venue_slug" json:"slug"`
	Name    string `gorm:"not null" json:"name"`
	NameFa  string `json:"nameFa,omitempty"`

	Venue *Venue `json:"-"`
}
