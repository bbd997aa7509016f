package booking

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/melnyk-o/airport-api/internal/domain"
	"github.com/melnyk-o/airport-api/internal/kafka"
	"github.com/melnyk-o/airport-api/internal/repository"
)

type BookingUseCase interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*domain.Order, error)
	ListOrders(ctx context.Context, userID int64, page, pageSize int) (*OrderPage, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// BookingService owns the order placement transaction: it validates each
// requested seat against the flight's seat grid and the tickets sold so
// far, then persists the order with all of its tickets atomically.
type BookingService struct {
	orders             repository.OrderRepository
	flights            repository.FlightRepository
	producer           Producer
	ordersTopic        string
	notificationsTopic string
	pageSize           int
	maxPageSize        int
}

// CreateOrderInput carries the authenticated user's identity, as resolved
// by the transport layer, and the requested seats in client order.
type CreateOrderInput struct {
	UserID    int64
	UserEmail string
	Tickets   []domain.TicketRequest
}

// OrderPage is one page of a user's order history, newest order first.
type OrderPage struct {
	Count   int            `json:"count"`
	Results []domain.Order `json:"results"`
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func NewBookingService(
	orders repository.OrderRepository,
	flights repository.FlightRepository,
	producer Producer,
	ordersTopic string,
	pageSize, maxPageSize int,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		orders:      orders,
		flights:     flights,
		producer:    producer,
		ordersTopic: ordersTopic,
		pageSize:    pageSize,
		maxPageSize: maxPageSize,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// seatKey identifies one physical seat on one flight.
type seatKey struct {
	flightID int64
	row      int
	seat     int
}

// checkSeatLegal verifies the seat position exists on the airplane's seat
// grid. Row is checked before seat and the first violation wins.
func checkSeatLegal(row, seat int, seating *domain.Seating) *FieldError {
	for _, c := range []struct {
		value     int
		field     string
		boundName string
		max       int
	}{
		{row, "row", "rows", seating.Rows},
		{seat, "seat", "seats_in_row", seating.SeatsInRow},
	} {
		if c.value < 1 || c.value > c.max {
			return seatOutOfRange(c.field, c.boundName, c.max)
		}
	}
	return nil
}

// checkSeatAvailable fails if the seat is already ticketed, either by a
// committed order or by an earlier ticket of the request being validated.
// It is a fast-fail for a good error message; the database unique
// constraint remains the authoritative guard under concurrency.
func (s *BookingService) checkSeatAvailable(ctx context.Context, key seatKey, claimed map[seatKey]struct{}) error {
	if _, ok := claimed[key]; ok {
		return seatTaken()
	}
	taken, err := s.orders.SeatTaken(ctx, key.flightID, key.row, key.seat)
	if err != nil {
		return err
	}
	if taken {
		return seatTaken()
	}
	return nil
}

// validateTicket runs the legality then the availability check for one
// requested seat, short-circuiting on the first failure. On success the
// seat is recorded in claimed so that sibling tickets of the same order
// see it as taken.
func (s *BookingService) validateTicket(ctx context.Context, req domain.TicketRequest, seatings map[int64]*domain.Seating, claimed map[seatKey]struct{}) (*domain.Ticket, error) {
	seating, ok := seatings[req.FlightID]
	if !ok {
		var err error
		seating, err = s.flights.Seating(ctx, req.FlightID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, flightDoesNotExist()
			}
			return nil, err
		}
		seatings[req.FlightID] = seating
	}

	if ferr := checkSeatLegal(req.Row, req.Seat, seating); ferr != nil {
		return nil, ferr
	}

	key := seatKey{flightID: req.FlightID, row: req.Row, seat: req.Seat}
	if err := s.checkSeatAvailable(ctx, key, claimed); err != nil {
		return nil, err
	}

	claimed[key] = struct{}{}
	return &domain.Ticket{Row: req.Row, Seat: req.Seat, FlightID: req.FlightID}, nil
}

// CreateOrder validates every requested ticket in order and persists the
// order with all of its tickets, or nothing. A unique-constraint race
// lost at commit time surfaces as the same seat-taken error a client
// would get from the synchronous availability check.
func (s *BookingService) CreateOrder(ctx context.Context, input CreateOrderInput) (*domain.Order, error) {
	if len(input.Tickets) == 0 {
		return nil, emptyOrder()
	}

	seatings := make(map[int64]*domain.Seating)
	claimed := make(map[seatKey]struct{}, len(input.Tickets))
	tickets := make([]domain.Ticket, 0, len(input.Tickets))
	for _, req := range input.Tickets {
		ticket, err := s.validateTicket(ctx, req, seatings, claimed)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, *ticket)
	}

	order := &domain.Order{
		Number:  uuid.NewString(),
		UserID:  input.UserID,
		Tickets: tickets,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		if errors.Is(err, repository.ErrSeatTaken) {
			return nil, seatTaken()
		}
		return nil, err
	}

	if err := s.publish(ctx, "order_created", input.UserEmail, order); err != nil {
		log.Printf("publish order_created for order %s: %v", order.Number, err)
	}
	return order, nil
}

func (s *BookingService) ListOrders(ctx context.Context, userID int64, page, pageSize int) (*OrderPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = s.pageSize
	}
	if pageSize > s.maxPageSize {
		pageSize = s.maxPageSize
	}

	count, err := s.orders.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	orders, err := s.orders.ListByUser(ctx, userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	return &OrderPage{Count: count, Results: orders}, nil
}

func (s *BookingService) publish(ctx context.Context, eventType, email string, order *domain.Order) error {
	if s.producer == nil || s.ordersTopic == "" {
		return nil
	}

	event := kafka.OrderEvent{
		Type:      eventType,
		Number:    order.Number,
		UserEmail: email,
		CreatedAt: order.CreatedAt,
		Tickets:   make([]kafka.TicketEvent, 0, len(order.Tickets)),
	}
	for _, t := range order.Tickets {
		event.Tickets = append(event.Tickets, kafka.TicketEvent{
			FlightID: t.FlightID,
			Row:      t.Row,
			Seat:     t.Seat,
		})
	}

	if err := s.producer.Publish(ctx, s.ordersTopic, order.Number, event); err != nil {
		return err
	}
	if s.notificationsTopic != "" {
		return s.producer.Publish(ctx, s.notificationsTopic, order.Number, event)
	}
	return nil
}

var _ BookingUseCase = (*BookingService)(nil)
