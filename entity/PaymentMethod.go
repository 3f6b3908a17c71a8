package entity

type PaymentMethod string

const (
	PaymentCard      PaymentMethod = "card"
	PaymentApplePay  PaymentMethod = "apple_pay"
	PaymentGooglePay PaymentMethod = "google_pay"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCard, PaymentApplePay, PaymentGooglePay:
		return true
	}
	return false
}
