package domain

import "time"

// OnlinePayment is the state of an online payment as reported by the payment provider
type OnlinePayment struct {
	Reference string
	Status    PaymentStatus
	Amount    float64
	PaidAt    *time.Time
}
