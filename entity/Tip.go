package entity

type Tip struct {
	Model
	StaffID           string        `gorm:"index;not null" json:"staffId"`
	UserID            *string       `gorm:"index" json:"userId"`
	Amount            float64       `gorm:"not null" json:"amount"`
	PaymentMethod     PaymentMethod `gorm:"size:32;not null" json:"paymentMethod"`
	ExternalPaymentID *string       `json:"externalPaymentId"`
	Status            TipStatus     `gorm:"size:16;not null;index" json:"status"`
	Currency          string        `gorm:"size:3;not null" json:"currency"`

	Staff *Staff `json:"staff,omitempty"`
	User  *User  `json:"-"`
}
