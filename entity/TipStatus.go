package entity

// TipStatus only moves pending -> completed.
type TipStatus string

const (
	TipPending   TipStatus = "pending"
	TipCompleted TipStatus = "completed"
)
