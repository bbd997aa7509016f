package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/melnyk-o/airport-api/internal/domain"
	"github.com/melnyk-o/airport-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) SeatTaken(ctx context.Context, flightID int64, row, seat int) (bool, error) {
	args := m.Called(ctx, flightID, row, seat)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Order, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrderRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

type MockFlightRepository struct {
	mock.Mock
}

func (m *MockFlightRepository) List(ctx context.Context, routeID int64) ([]domain.Flight, error) {
	args := m.Called(ctx, routeID)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) Seating(ctx context.Context, flightID int64) (*domain.Seating, error) {
	args := m.Called(ctx, flightID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Seating), args.Error(1)
}

func (m *MockFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	args := m.Called(ctx, flight)
	return args.Error(0)
}

func (m *MockFlightRepository) Update(ctx context.Context, flight *domain.Flight) error {
	args := m.Called(ctx, flight)
	return args.Error(0)
}

func (m *MockFlightRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

func newTestService(orders *MockOrderRepository, flights *MockFlightRepository, producer Producer) *BookingService {
	return NewBookingService(orders, flights, producer, "orders", 5, 100,
		WithNotificationsTopic("order-notifications"))
}

func TestCheckSeatLegal(t *testing.T) {
	seating := &domain.Seating{Rows: 10, SeatsInRow: 6}

	testCases := []struct {
		name            string
		row             int
		seat            int
		expectedField   string
		expectedMessage string
	}{
		{name: "first seat", row: 1, seat: 1},
		{name: "last seat", row: 10, seat: 6},
		{
			name: "row zero", row: 0, seat: 3,
			expectedField:   "row",
			expectedMessage: "row number must be in available range: (1, rows): (1, 10)",
		},
		{
			name: "row negative", row: -2, seat: 3,
			expectedField:   "row",
			expectedMessage: "row number must be in available range: (1, rows): (1, 10)",
		},
		{
			name: "row above grid", row: 15, seat: 4,
			expectedField:   "row",
			expectedMessage: "row number must be in available range: (1, rows): (1, 10)",
		},
		{
			name: "seat zero", row: 5, seat: 0,
			expectedField:   "seat",
			expectedMessage: "seat number must be in available range: (1, seats_in_row): (1, 6)",
		},
		{
			name: "seat above grid", row: 9, seat: 16,
			expectedField:   "seat",
			expectedMessage: "seat number must be in available range: (1, seats_in_row): (1, 6)",
		},
		{
			// both out of range: row is checked first and wins
			name: "row and seat invalid", row: 99, seat: 99,
			expectedField:   "row",
			expectedMessage: "row number must be in available range: (1, rows): (1, 10)",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := checkSeatLegal(tc.row, tc.seat, seating)
			if tc.expectedField == "" {
				assert.Nil(t, err)
				return
			}
			assert.NotNil(t, err)
			assert.Equal(t, tc.expectedField, err.Field)
			assert.Equal(t, tc.expectedMessage, err.Message)
		})
	}
}

func TestBookingService_CreateOrder_Success(t *testing.T) {
	mockOrders := &MockOrderRepository{}
	mockFlights := &MockFlightRepository{}
	mockProducer := &MockProducer{}
	service := newTestService(mockOrders, mockFlights, mockProducer)

	ctx := context.Background()

	mockFlights.On("Seating", ctx, int64(1)).Return(&domain.Seating{Rows: 10, SeatsInRow: 6}, nil).Once()
	mockOrders.On("SeatTaken", ctx, int64(1), 7, 6).Return(false, nil).Once()
	mockOrders.On("Create", ctx, mock.AnythingOfType("*domain.Order")).Run(func(args mock.Arguments) {
		order := args.Get(1).(*domain.Order)
		order.ID = 42
		order.CreatedAt = time.Now()
		for i := range order.Tickets {
			order.Tickets[i].ID = int64(i + 1)
			order.Tickets[i].OrderID = order.ID
		}
	}).Return(nil).Once()
	mockProducer.On("Publish", ctx, "orders", mock.Anything, mock.Anything).Return(nil).Once()
	mockProducer.On("Publish", ctx, "order-notifications", mock.Anything, mock.Anything).Return(nil).Once()

	order, err := service.CreateOrder(ctx, CreateOrderInput{
		UserID:    7,
		UserEmail: "user@example.com",
		Tickets:   []domain.TicketRequest{{Row: 7, Seat: 6, FlightID: 1}},
	})

	assert.NoError(t, err)
	assert.NotNil(t, order)
	assert.Equal(t, int64(42), order.ID)
	assert.Equal(t, int64(7), order.UserID)
	assert.NotEmpty(t, order.Number)
	assert.Len(t, order.Tickets, 1)
	assert.Equal(t, 7, order.Tickets[0].Row)
	assert.Equal(t, 6, order.Tickets[0].Seat)

	mockOrders.AssertExpectations(t)
	mockFlights.AssertExpectations(t)
	mockProducer.AssertExpectations(t)
}

func TestBookingService_CreateOrder_TwoFlights(t *testing.T) {
	mockOrders := &MockOrderRepository{}
	mockFlights := &MockFlightRepository{}
	service := newTestService(mockOrders, mockFlights, nil)

	ctx := context.Background()
	seating := &domain.Seating{Rows: 10, SeatsInRow: 6}

	mockFlights.On("Seating", ctx, int64(1)).Return(seating, nil).Once()
	mockFlights.On("Seating", ctx, int64(2)).Return(seating, nil).Once()
	mockOrders.On("SeatTaken", ctx, int64(1), 7, 6).Return(false, nil).Once()
	mockOrders.On("SeatTaken", ctx, int64(2), 7, 4).Return(false, nil).Once()
	mockOrders.On("Create", ctx, mock.AnythingOfType("*domain.Order")).Return(nil).Once()

	order, err := service.CreateOrder(ctx, CreateOrderInput{
		UserID: 3,
		Tickets: []domain.TicketRequest{
			{Row: 7, Seat: 6, FlightID: 1},
			{Row: 7, Seat: 4, FlightID: 2},
		},
	})

	assert.NoError(t, err)
	assert.Len(t, order.Tickets, 2)
	assert.Equal(t, int64(3), order.UserID)

	mockOrders.AssertExpectations(t)
	mockFlights.AssertExpectations(t)
}

// The same seat on two different flights is not a conflict.
func TestBookingService_CreateOrder_SameSeatOtherFlight(t *testing.T) {
	mockOrders := &MockOrderRepository{}
	mockFlights := &MockFlightRepository{}
	service := newTestService(mockOrders, mockFlights, nil)

	ctx := context.Background()
	seating := &domain.Seating{Rows: 10, SeatsInRow: 6}

	mockFlights.On("Seating", ctx, int64(1)).Return(seating, nil).Once()
	mockFlights.On("Seating", ctx, int64(2)).Return(seating, nil).Once()
	mockOrders.On("SeatTaken", ctx, int64(1), 9, 6).Return(false, nil).Once()
	mockOrders.On("SeatTaken", ctx, int64(2), 9, 6).Return(false, nil).Once()
	mockOrders.On("Create", ctx, mock.AnythingOfType("*domain.Order")).Return(nil).Once()

	order, err := service.CreateOrder(ctx, CreateOrderInput{
		UserID: 1,
		Tickets: []domain.TicketRequest{
			{Row: 9, Seat: 6, FlightID: 1},
			{Row: 9, Seat: 6, FlightID: 2},
		},
	})

	assert.NoError(t, err)
	assert.Len(t, order.Tickets, 2)
}

func TestBookingService_CreateOrder_EmptyOrder(t *testing.T) {
	mockOrders := &MockOrderRepository{}
	mockFlights := &MockFlightRepository{}
	service := newTestService(mockOrders, mockFlights, nil)

	order, err := service.CreateOrder(context.Background(), CreateOrderInput{UserID: 1})

	assert.Nil(t, order)
	var fieldErr *FieldError
	assert.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "tickets", fieldErr.Field)

	mockOrders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	mockFlights.AssertNotCalled(t, "Seating", mock.Anything, mock.Anything)
}

func TestBookingService_CreateOrder_SeatOutOfRange(t *testing.T) {
	mockOrders := &MockOrderRepository{}
	mockFlights := &MockFlightRepository{}
	service := newTestService(mockOrders, mockFlights, nil)

	ctx := context.Background()
	mockFlights.On("Seating", ctx, int64(1)).Return(&domain.Seating{Rows: 10, SeatsInRow: 6}, nil).Once()

	order, err := service.CreateOrder(ctx, CreateOrderInput{
		UserID:  1,
		Tickets: []domain.TicketRequest{{Row: 9, Seat: 16, FlightID: 1}},
	})

	assert.Nil(t, order)
	var fieldErr *FieldError
	assert.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "seat", fieldErr.Field)
	assert.Equal(t, "seat number must be in available range: (1, seats_in_row): (1, 6)", fieldErr.Message)

	mockOrders.AssertNotCalled(t, "SeatTaken", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mockOrders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBookingService_CreateOrder_SeatAlreadySold(t *testing.T) {
	mockOrders := &MockOrderRepository{}
	mockFlights := &MockFlightRepository{}
	service := newTestService(mockOrders, mockFlights, nil)

	ctx := context.Background()
	mockFlights.On("Seating", ctx, int64(1)).Return(&domain.Seating{Rows: 10, SeatsInRow: 6}, nil).Once()
	mockOrders.On("SeatTaken", ctx, int64(1), 9, 6).Return(true, nil).Once()

	order, err := service.CreateOrder(ctx, CreateOrderInput{
		UserID:  1,
		Tickets: []domain.TicketRequest{{Row: 9, Seat: 6, FlightID: 1}},
	})

	assert.Nil(t, order)
	var fieldErr *FieldError
	assert.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, NonFieldErrors, fieldErr.Field)
	assert.Equal(t, "seat already taken", fieldErr.Message)

	mockOrders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// One bad ticket rejects the whole request: nothing is persisted for the
// valid sibling either.
func TestBookingService_CreateOrder_AllOrNothing(t *testing.T) {
	mockOrders := &MockOrderRepository{}
	mockFlights := &MockFlightRepository{}
	service := newTestService(mockOrders, mockFlights, nil)

	ctx := context.Background()
	mockFlights.On("Seating", ctx, int64(1)).Return(&domain.Seating{Rows: 10, SeatsInRow: 6}, nil).Once()
	mockOrders.On("SeatTaken", ctx, int64(1), 4, 1).Return(false, nil).Once()
	mockOrders.On("SeatTaken", ctx, int64(1), 9, 6).Return(true, nil).Once()

	order, err := service.CreateOrder(ctx, CreateOrderInput{
		UserID: 1,
		Tickets: []domain.TicketRequest{
			{Row: 4, Seat: 1, FlightID: 1},
			{Row: 9, Seat: 6, FlightID: 1},
		},
	})

	assert.Nil(t, order)
	var fieldErr *FieldError
	assert.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, NonFieldErrors, fieldErr.Field)

	mockOrders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// A request must not book the same seat twice against itself. The second
// occurrence is caught before any repository lookup.
func TestBookingService_CreateOrder_DuplicateSeatInRequest(t *testing.T) {
	mockOrders := &MockOrderRepository{}
	mockFlights := &MockFlightRepository{}
	service := newTestService(mockOrders, mockFlights, nil)

	ctx := context.Background()
	// seating resolved once per flight, not once per ticket
	mockFlights.On("Seating", ctx, int64(1)).Return(&domain.Seating{Rows: 10, SeatsInRow: 6}, nil).Once()
	mockOrders.On("SeatTaken", ctx, int64(1), 2, 2).Return(false, nil).Once()

	order, err := service.CreateOrder(ctx, CreateOrderInput{
		UserID: 1,
		Tickets: []domain.TicketRequest{
			{Row: 2, Seat: 2, FlightID: 1},
			{Row: 2, Seat: 2, FlightID: 1},
		},
	})

	assert.Nil(t, order)
	var fieldErr *FieldError
	assert.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, NonFieldErrors, fieldErr.Field)
	assert.Equal(t, "seat already taken", fieldErr.Message)

	mockOrders.AssertExpectations(t)
	mockFlights.AssertExpectations(t)
	mockOrders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// Losing the unique-constraint race at commit time must look exactly
// like a synchronous availability failure.
func TestBookingService_CreateOrder_ConstraintRace(t *testing.T) {
	mockOrders := &MockOrderRepository{}
	mockFlights := &MockFlightRepository{}
	service := newTestService(mockOrders, mockFlights, nil)

	ctx := context.Background()
	mockFlights.On("Seating", ctx, int64(1)).Return(&domain.Seating{Rows: 10, SeatsInRow: 6}, nil).Once()
	mockOrders.On("SeatTaken", ctx, int64(1), 3, 3).Return(false, nil).Once()
	mockOrders.On("Create", ctx, mock.AnythingOfType("*domain.Order")).Return(repository.ErrSeatTaken).Once()

	order, err := service.CreateOrder(ctx, CreateOrderInput{
		UserID:  1,
		Tickets: []domain.TicketRequest{{Row: 3, Seat: 3, FlightID: 1}},
	})

	assert.Nil(t, order)
	var fieldErr *FieldError
	assert.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, NonFieldErrors, fieldErr.Field)
	assert.Equal(t, "seat already taken", fieldErr.Message)
}

func TestBookingService_CreateOrder_FlightNotFound(t *testing.T) {
	mockOrders := &MockOrderRepository{}
	mockFlights := &MockFlightRepository{}
	service := newTestService(mockOrders, mockFlights, nil)

	ctx := context.Background()
	mockFlights.On("Seating", ctx, int64(99)).Return(nil, repository.ErrNotFound).Once()

	order, err := service.CreateOrder(ctx, CreateOrderInput{
		UserID:  1,
		Tickets: []domain.TicketRequest{{Row: 1, Seat: 1, FlightID: 99}},
	})

	assert.Nil(t, order)
	var fieldErr *FieldError
	assert.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "flight", fieldErr.Field)
}

func TestBookingService_CreateOrder_StorageFailure(t *testing.T) {
	mockOrders := &MockOrderRepository{}
	mockFlights := &MockFlightRepository{}
	service := newTestService(mockOrders, mockFlights, nil)

	ctx := context.Background()
	storageErr := errors.New("connection reset")
	mockFlights.On("Seating", ctx, int64(1)).Return(&domain.Seating{Rows: 10, SeatsInRow: 6}, nil).Once()
	mockOrders.On("SeatTaken", ctx, int64(1), 1, 1).Return(false, nil).Once()
	mockOrders.On("Create", ctx, mock.AnythingOfType("*domain.Order")).Return(storageErr).Once()

	order, err := service.CreateOrder(ctx, CreateOrderInput{
		UserID:  1,
		Tickets: []domain.TicketRequest{{Row: 1, Seat: 1, FlightID: 1}},
	})

	assert.Nil(t, order)
	// infrastructure failures are not client errors
	var fieldErr *FieldError
	assert.False(t, errors.As(err, &fieldErr))
	assert.ErrorIs(t, err, storageErr)
}

func TestBookingService_ListOrders(t *testing.T) {
	mockOrders := &MockOrderRepository{}
	mockFlights := &MockFlightRepository{}
	service := newTestService(mockOrders, mockFlights, nil)

	ctx := context.Background()
	orders := []domain.Order{
		{ID: 2, Number: "b", UserID: 1, CreatedAt: time.Now()},
		{ID: 1, Number: "a", UserID: 1, CreatedAt: time.Now().Add(-time.Hour)},
	}

	mockOrders.On("CountByUser", ctx, int64(1)).Return(12, nil).Once()
	mockOrders.On("ListByUser", ctx, int64(1), 5, 5).Return(orders, nil).Once()

	page, err := service.ListOrders(ctx, 1, 2, 0)

	assert.NoError(t, err)
	assert.Equal(t, 12, page.Count)
	assert.Equal(t, orders, page.Results)
	mockOrders.AssertExpectations(t)
}

func TestBookingService_ListOrders_ClampsPageSize(t *testing.T) {
	mockOrders := &MockOrderRepository{}
	mockFlights := &MockFlightRepository{}
	service := newTestService(mockOrders, mockFlights, nil)

	ctx := context.Background()
	mockOrders.On("CountByUser", ctx, int64(1)).Return(0, nil).Once()
	mockOrders.On("ListByUser", ctx, int64(1), 100, 0).Return([]domain.Order{}, nil).Once()

	_, err := service.ListOrders(ctx, 1, 0, 5000)

	assert.NoError(t, err)
	mockOrders.AssertExpectations(t)
}
