package kafka

import "time"

// OrderEvent is published when an order is placed. It carries everything
// the notification worker needs without a round trip to the database.
type OrderEvent struct {
	Type      string        `json:"type"`
	Number    string        `json:"number"`
	UserEmail string        `json:"user_email"`
	CreatedAt time.Time     `json:"created_at"`
	Tickets   []TicketEvent `json:"tickets"`
}

type TicketEvent struct {
	FlightID int64 `json:"flight"`
	Row      int   `json:"row"`
	Seat     int   `json:"seat"`
}
