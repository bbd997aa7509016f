package domain

import "time"

// Order groups the tickets bought in one booking transaction. Orders are
// created exactly once and never updated; tickets only ever disappear
// through cascading deletes of their order or flight.
type Order struct {
	ID        int64     `json:"id"`
	Number    string    `json:"number"`
	UserID    int64     `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	Tickets   []Ticket  `json:"tickets"`
}

// Ticket is a claim on one physical seat (row, seat) on one flight.
// The tuple (flight, row, seat) is unique system-wide.
type Ticket struct {
	ID       int64 `json:"id"`
	Row      int   `json:"row"`
	Seat     int   `json:"seat"`
	FlightID int64 `json:"flight"`
	OrderID  int64 `json:"-"`
}

// TicketRequest is one requested seat inside an order placement, as
// supplied by the client. Row and seat are 1-indexed and unvalidated.
type TicketRequest struct {
	Row      int   `json:"row"`
	Seat     int   `json:"seat"`
	FlightID int64 `json:"flight"`
}
