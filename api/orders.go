package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/melnyk-o/airport-api/internal/domain"
	"github.com/melnyk-o/airport-api/internal/service/booking"
)

type OrderHandler struct {
	service booking.BookingUseCase
}

type createOrderRequest struct {
	Tickets []domain.TicketRequest `json:"tickets"`
}

type ticketResponse struct {
	ID     int64 `json:"id"`
	Row    int   `json:"row"`
	Seat   int   `json:"seat"`
	Flight int64 `json:"flight"`
}

type orderResponse struct {
	ID        int64            `json:"id"`
	Number    string           `json:"number"`
	CreatedAt string           `json:"created_at"`
	Tickets   []ticketResponse `json:"tickets"`
}

type orderPageResponse struct {
	Count   int             `json:"count"`
	Results []orderResponse `json:"results"`
}

func NewOrderHandler(service booking.BookingUseCase) *OrderHandler {
	return &OrderHandler{service: service}
}

// Register wires the order routes. Update and delete are deliberately
// not offered: orders are immutable once placed.
func (h *OrderHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.create)
	router.GET("/", h.list)
}

func (h *OrderHandler) create(c *gin.Context) {
	ident := identityFrom(c)
	if ident == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.service.CreateOrder(c.Request.Context(), booking.CreateOrderInput{
		UserID:    ident.UserID,
		UserEmail: ident.Email,
		Tickets:   req.Tickets,
	})
	if err != nil {
		var fieldErr *booking.FieldError
		if errors.As(err, &fieldErr) {
			c.JSON(http.StatusBadRequest, gin.H{fieldErr.Field: fieldErr.Message})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusCreated, toOrderResponse(order))
}

func (h *OrderHandler) list(c *gin.Context) {
	ident := identityFrom(c)
	if ident == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "0"))

	result, err := h.service.ListOrders(c.Request.Context(), ident.UserID, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	resp := orderPageResponse{
		Count:   result.Count,
		Results: make([]orderResponse, 0, len(result.Results)),
	}
	for i := range result.Results {
		resp.Results = append(resp.Results, toOrderResponse(&result.Results[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func toOrderResponse(order *domain.Order) orderResponse {
	resp := orderResponse{
		ID:        order.ID,
		Number:    order.Number,
		CreatedAt: order.CreatedAt.Format(time.RFC3339),
		Tickets:   make([]ticketResponse, 0, len(order.Tickets)),
	}
	for _, t := range order.Tickets {
		resp.Tickets = append(resp.Tickets, ticketResponse{
			ID:     t.ID,
			Row:    t.Row,
			Seat:   t.Seat,
			Flight: t.FlightID,
		})
	}
	return resp
}
