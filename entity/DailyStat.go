package entity

// DailyStat keeps one counter row per calendar day (YYYY-MM-DD, UTC).
type DailyStat struct {
	Date        string `gorm:"primaryKey;size:10" json:"date"`
	TotalVisits int64  `gorm:"not null;default:0" json:"totalVisits"`
}
