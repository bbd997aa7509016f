package domain

type Crew struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (c Crew) FullName() string {
	return c.FirstName + " " + c.LastName
}

type Airport struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	ClosestBigCity string `json:"closest_big_city"`
}

// Route connects two airports. A (source, destination) pair is unique.
type Route struct {
	ID            int64  `json:"id"`
	SourceID      int64  `json:"source"`
	DestinationID int64  `json:"destination"`
	Distance      int    `json:"distance"`
}

type AirplaneType struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Airplane struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Rows           int    `json:"rows"`
	SeatsInRow     int    `json:"seats_in_row"`
	AirplaneTypeID int64  `json:"airplane_type"`
}

func (a Airplane) Capacity() int {
	return a.Rows * a.SeatsInRow
}
