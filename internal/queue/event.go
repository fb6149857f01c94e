// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingConfirmedEvent is published when a parking booking is successfully
// confirmed. It carries enough information for downstream consumers to log,
// notify, or trigger analytics without querying the primary database.
type BookingConfirmedEvent struct {
	BookingID      uint64 `json:"booking_id"`
	UserID         uint64 `json:"user_id"`
	SpotID         uint64 `json:"spot_id"`
	SpotTitle      string `json:"spot_title"`
	Address        string `json:"address"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	TotalCostCents int64  `json:"total_cost_cents"`
	ConfirmedAt    string `json:"confirmed_at"`
}
