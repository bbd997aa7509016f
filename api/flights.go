package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/melnyk-o/airport-api/internal/domain"
	"github.com/melnyk-o/airport-api/internal/repository"
	"github.com/melnyk-o/airport-api/internal/service/flights"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

type flightRequest struct {
	RouteID       int64     `json:"route"`
	AirplaneID    int64     `json:"airplane"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
	CrewIDs       []int64   `json:"crews"`
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup, adminOnly gin.HandlerFunc) {
	router.GET("/", h.list)
	router.GET("/:id", h.get)
	router.POST("/", adminOnly, h.create)
	router.PUT("/:id", adminOnly, h.update)
	router.DELETE("/:id", adminOnly, h.delete)
}

func (h *FlightHandler) list(c *gin.Context) {
	var routeID int64
	if raw := c.Query("route"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid route id"})
			return
		}
		routeID = parsed
	}

	list, err := h.service.List(c.Request.Context(), routeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *FlightHandler) get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	flight, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "flight not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, flight)
}

func (h *FlightHandler) create(c *gin.Context) {
	req, ok := bindFlight(c)
	if !ok {
		return
	}

	flight := req.toDomain(0)
	if err := h.service.Create(c.Request.Context(), flight); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, flight)
}

func (h *FlightHandler) update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	req, ok := bindFlight(c)
	if !ok {
		return
	}

	flight := req.toDomain(id)
	if err := h.service.Update(c.Request.Context(), flight); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "flight not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, flight)
}

func (h *FlightHandler) delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "flight not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func bindFlight(c *gin.Context) (*flightRequest, bool) {
	var req flightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	if !req.ArrivalTime.After(req.DepartureTime) {
		c.JSON(http.StatusBadRequest, gin.H{"arrival_time": "arrival must be after departure"})
		return nil, false
	}
	return &req, true
}

func (r *flightRequest) toDomain(id int64) *domain.Flight {
	crews := r.CrewIDs
	if crews == nil {
		crews = make([]int64, 0)
	}
	return &domain.Flight{
		ID:            id,
		RouteID:       r.RouteID,
		AirplaneID:    r.AirplaneID,
		DepartureTime: r.DepartureTime,
		ArrivalTime:   r.ArrivalTime,
		CrewIDs:       crews,
	}
}
