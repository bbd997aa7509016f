package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/melnyk-o/airport-api/internal/domain"
	"github.com/melnyk-o/airport-api/internal/repository"
)

// CatalogHandler serves the reference data behind flights. Pure
// pass-through CRUD: reads for any authenticated user, writes for
// admins only.
type CatalogHandler struct {
	repo repository.CatalogRepository
}

func NewCatalogHandler(repo repository.CatalogRepository) *CatalogHandler {
	return &CatalogHandler{repo: repo}
}

func (h *CatalogHandler) Register(router *gin.RouterGroup, adminOnly gin.HandlerFunc) {
	crews := router.Group("/crews")
	crews.GET("/", h.listCrews)
	crews.GET("/:id", h.getCrew)
	crews.POST("/", adminOnly, h.createCrew)
	crews.PUT("/:id", adminOnly, h.updateCrew)
	crews.DELETE("/:id", adminOnly, h.deleteCrew)

	airports := router.Group("/airports")
	airports.GET("/", h.listAirports)
	airports.GET("/:id", h.getAirport)
	airports.POST("/", adminOnly, h.createAirport)
	airports.PUT("/:id", adminOnly, h.updateAirport)
	airports.DELETE("/:id", adminOnly, h.deleteAirport)

	routes := router.Group("/routes")
	routes.GET("/", h.listRoutes)
	routes.GET("/:id", h.getRoute)
	routes.POST("/", adminOnly, h.createRoute)
	routes.PUT("/:id", adminOnly, h.updateRoute)
	routes.DELETE("/:id", adminOnly, h.deleteRoute)

	types := router.Group("/airplane_types")
	types.GET("/", h.listAirplaneTypes)
	types.GET("/:id", h.getAirplaneType)
	types.POST("/", adminOnly, h.createAirplaneType)
	types.PUT("/:id", adminOnly, h.updateAirplaneType)
	types.DELETE("/:id", adminOnly, h.deleteAirplaneType)

	airplanes := router.Group("/airplanes")
	airplanes.GET("/", h.listAirplanes)
	airplanes.GET("/:id", h.getAirplane)
	airplanes.POST("/", adminOnly, h.createAirplane)
	airplanes.PUT("/:id", adminOnly, h.updateAirplane)
	airplanes.DELETE("/:id", adminOnly, h.deleteAirplane)
}

// Crews

func (h *CatalogHandler) listCrews(c *gin.Context) {
	crews, err := h.repo.ListCrews(c.Request.Context())
	if err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, crews)
}

func (h *CatalogHandler) getCrew(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	crew, err := h.repo.GetCrew(c.Request.Context(), id)
	if err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, crew)
}

func (h *CatalogHandler) createCrew(c *gin.Context) {
	var crew domain.Crew
	if err := c.ShouldBindJSON(&crew); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.repo.CreateCrew(c.Request.Context(), &crew); err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusCreated, crew)
}

func (h *CatalogHandler) updateCrew(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var crew domain.Crew
	if err := c.ShouldBindJSON(&crew); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	crew.ID = id
	if err := h.repo.UpdateCrew(c.Request.Context(), &crew); err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, crew)
}

func (h *CatalogHandler) deleteCrew(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.repo.DeleteCrew(c.Request.Context(), id); err != nil {
		writeRepoError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Airports

func (h *CatalogHandler) listAirports(c *gin.Context) {
	airports, err := h.repo.ListAirports(c.Request.Context())
	if err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, airports)
}

func (h *CatalogHandler) getAirport(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	airport, err := h.repo.GetAirport(c.Request.Context(), id)
	if err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, airport)
}

func (h *CatalogHandler) createAirport(c *gin.Context) {
	var airport domain.Airport
	if err := c.ShouldBindJSON(&airport); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.repo.CreateAirport(c.Request.Context(), &airport); err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusCreated, airport)
}

func (h *CatalogHandler) updateAirport(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var airport domain.Airport
	if err := c.ShouldBindJSON(&airport); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	airport.ID = id
	if err := h.repo.UpdateAirport(c.Request.Context(), &airport); err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, airport)
}

func (h *CatalogHandler) deleteAirport(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.repo.DeleteAirport(c.Request.Context(), id); err != nil {
		writeRepoError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Routes

func (h *CatalogHandler) listRoutes(c *gin.Context) {
	routes, err := h.repo.ListRoutes(c.Request.Context())
	if err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, routes)
}

func (h *CatalogHandler) getRoute(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	route, err := h.repo.GetRoute(c.Request.Context(), id)
	if err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, route)
}

func (h *CatalogHandler) createRoute(c *gin.Context) {
	var route domain.Route
	if err := c.ShouldBindJSON(&route); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.repo.CreateRoute(c.Request.Context(), &route); err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusCreated, route)
}

func (h *CatalogHandler) updateRoute(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var route domain.Route
	if err := c.ShouldBindJSON(&route); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	route.ID = id
	if err := h.repo.UpdateRoute(c.Request.Context(), &route); err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, route)
}

func (h *CatalogHandler) deleteRoute(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.repo.DeleteRoute(c.Request.Context(), id); err != nil {
		writeRepoError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Airplane types

func (h *CatalogHandler) listAirplaneTypes(c *gin.Context) {
	types, err := h.repo.ListAirplaneTypes(c.Request.Context())
	if err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, types)
}

func (h *CatalogHandler) getAirplaneType(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	t, err := h.repo.GetAirplaneType(c.Request.Context(), id)
	if err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *CatalogHandler) createAirplaneType(c *gin.Context) {
	var t domain.AirplaneType
	if err := c.ShouldBindJSON(&t); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.repo.CreateAirplaneType(c.Request.Context(), &t); err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (h *CatalogHandler) updateAirplaneType(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var t domain.AirplaneType
	if err := c.ShouldBindJSON(&t); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t.ID = id
	if err := h.repo.UpdateAirplaneType(c.Request.Context(), &t); err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *CatalogHandler) deleteAirplaneType(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.repo.DeleteAirplaneType(c.Request.Context(), id); err != nil {
		writeRepoError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Airplanes

func (h *CatalogHandler) listAirplanes(c *gin.Context) {
	airplanes, err := h.repo.ListAirplanes(c.Request.Context(), c.Query("name"))
	if err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, airplanes)
}

func (h *CatalogHandler) getAirplane(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	airplane, err := h.repo.GetAirplane(c.Request.Context(), id)
	if err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, airplane)
}

func (h *CatalogHandler) createAirplane(c *gin.Context) {
	var airplane domain.Airplane
	if err := c.ShouldBindJSON(&airplane); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if airplane.Rows < 1 || airplane.SeatsInRow < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rows and seats_in_row must be positive"})
		return
	}
	if err := h.repo.CreateAirplane(c.Request.Context(), &airplane); err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusCreated, airplane)
}

func (h *CatalogHandler) updateAirplane(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var airplane domain.Airplane
	if err := c.ShouldBindJSON(&airplane); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if airplane.Rows < 1 || airplane.SeatsInRow < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rows and seats_in_row must be positive"})
		return
	}
	airplane.ID = id
	if err := h.repo.UpdateAirplane(c.Request.Context(), &airplane); err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, airplane)
}

func (h *CatalogHandler) deleteAirplane(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.repo.DeleteAirplane(c.Request.Context(), id); err != nil {
		writeRepoError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
