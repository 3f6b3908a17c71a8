package entity

type Staff struct {
	Model
	VenueID string  `gorm:"index;not null" json:"venueId"`
	Name    string  `gorm:"not null" json:"name"`
	Role    string  `json:"role"`
	Rating  float64 `json:"rating"`

	Venue *Venue `json:"venue,omitempty"`
	Tips  []Tip  `json:"-"`
}

func (Staff) TableName() string { return "staff" }
