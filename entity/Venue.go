package entity

type Venue struct {
	Model
	Slug       string   `gorm:"uniqueIndex;not null" json:"slug"`
	Name       string   `gorm:"not null" json:"name"`
	Categories []string `gorm:"column:category;type:text;serializer:json" json:"category"`
	Phone      string   `json:"phone"`
	Address    string   `json:"address"`
	City       string   `json:"city"`
	Lat        float64  `json:"lat"`
	Lng        float64  `json:"lng"`
	OpenTime   string   `json:"openTime"`
	CloseTime  string   `json:"closeTime"`
	Bio        string   `json:"bio"`
	LogoText   string   `json:"logoText"`

	// preloaded on detail only
	MenuItems      []MenuItem     `gorm:"constraint:OnDelete:CASCADE;" json:"menuItems,omitempty"`
	Staff          []Staff        `gorm:"constraint:OnDelete:CASCADE;" json:"staff,omitempty"`
	MenuCategories []MenuCategory `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	Visits         []Visit        `json:"-"`
}

func (v *Venue) HasCategory(category string) bool {
	for _, c := range v.Categories {
		if c == category {
			return true
		}
	}
	return false
}
