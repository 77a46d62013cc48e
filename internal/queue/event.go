// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingConfirmedEvent is published after a payment-verified booking has
// settled its save and notify calls.  It is the operational audit trail:
// downstream consumers can log, alert on saved=false, or feed analytics
// without touching the remote store.
type BookingConfirmedEvent struct {
	BookingID   string  `json:"booking_id"`
	Customer    string  `json:"customer"`
	Theatre     string  `json:"theatre"`
	Date        string  `json:"date"`
	Slot        string  `json:"slot"`
	PaymentID   string  `json:"payment_id"`
	Total       float64 `json:"total"`
	Saved       bool    `json:"saved"`
	Notified    bool    `json:"notified"`
	ConfirmedAt string  `json:"confirmed_at"`
}
