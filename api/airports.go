package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/utopia-air/flightnet/internal/service/network"
)

type AirportHandler struct {
	service network.NetworkUseCase
}

func NewAirportHandler(service network.NetworkUseCase) *AirportHandler {
	return &AirportHandler{service: service}
}

func (h *AirportHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.create)
	router.GET("/", h.list)
	router.GET("/:iata", h.get)
	router.GET("/city/:city", h.listByCity)
	router.PATCH("/:iata", h.update)
	router.DELETE("/:iata", h.remove)
}

func (h *AirportHandler) create(c *gin.Context) {
	var input network.CreateAirportInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	airport, err := h.service.CreateAirport(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, airport)
}

func (h *AirportHandler) list(c *gin.Context) {
	airports, err := h.service.ListAirports(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if len(airports) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No airports found"})
		return
	}
	c.JSON(http.StatusOK, airports)
}

func (h *AirportHandler) get(c *gin.Context) {
	airport, err := h.service.GetAirport(c.Request.Context(), c.Param("iata"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, airport)
}

func (h *AirportHandler) listByCity(c *gin.Context) {
	airports, err := h.service.ListAirportsByCity(c.Request.Context(), c.Param("city"))
	if err != nil {
		respondError(c, err)
		return
	}
	if len(airports) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No airports found for city"})
		return
	}
	c.JSON(http.StatusOK, airports)
}

func (h *AirportHandler) update(c *gin.Context) {
	var input network.UpdateAirportInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	airport, err := h.service.UpdateAirport(c.Request.Context(), c.Param("iata"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, airport)
}

func (h *AirportHandler) remove(c *gin.Context) {
	if _, err := h.service.DeleteAirport(c.Request.Context(), c.Param("iata")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
