package domain

import "time"

type Flight struct {
	ID            int64     `json:"id"`
	RouteID       int64     `json:"route"`
	AirplaneID    int64     `json:"airplane"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
	CrewIDs       []int64   `json:"crews"`
	// TicketsAvailable is a read-side projection: airplane capacity minus
	// sold tickets. Populated on list queries only.
	TicketsAvailable int       `json:"tickets_available"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Seating is the seat grid of a flight's airplane, the reference frame
// for ticket validation.
type Seating struct {
	Rows       int
	SeatsInRow int
}
