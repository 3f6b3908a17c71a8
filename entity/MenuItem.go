package entity

type MenuItem struct {
	Model
	VenueID       string  `gorm:"index;not null" json:"venueId"`
	Name          string  `gorm:"not null" json:"name"`
	NameFa        string  `json:"nameFa,omitempty"`
	Description   string  `json:"description"`
	DescriptionFa string  `json:"descriptionFa,omitempty"`
	Price         float64 `gorm:"not null;check:price >= 0" json:"price"`
	Category      string  `gorm:"index" json:"category"`
	Weight        string  `json:"weight,omitempty"`
	// no gorm default: a default would swallow an explicit false on insert
	IsAvailable bool `gorm:"not null" json:"isAvailable"`

	Venue *Venue `json:"-"`
}
