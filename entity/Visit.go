package entity

// Visit rows are append-only.
type Visit struct {
	Model
	UserID  string `gorm:"index;not null" json:"userId"`
	VenueID string `gorm:"index;not null" json:"venueId"`

	User  *User  `json:"-"`
	Venue *Venue `json:"-"`
}
