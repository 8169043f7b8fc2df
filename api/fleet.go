package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/utopia-air/flightnet/internal/service/fleet"
)

type FleetHandler struct {
	service fleet.FleetUseCase
}

func NewFleetHandler(service fleet.FleetUseCase) *FleetHandler {
	return &FleetHandler{service: service}
}

// Register mounts the airplane-type and airplane groups.
func (h *FleetHandler) Register(types, airplanes *gin.RouterGroup) {
	types.POST("/", h.createType)
	types.GET("/", h.listTypes)
	types.GET("/:id", h.getType)
	types.GET("/capacity/:capacity", h.findTypeByCapacity)
	types.PATCH("/:id", h.updateType)
	types.DELETE("/:id", h.removeType)

	airplanes.POST("/", h.createAirplane)
	airplanes.GET("/", h.listAirplanes)
	airplanes.GET("/:id", h.getAirplane)
	airplanes.GET("/type/:type_id", h.listAirplanesByType)
	airplanes.PATCH("/:id", h.updateAirplane)
	airplanes.DELETE("/:id", h.removeAirplane)
}

type airplaneTypeInput struct {
	MaxCapacity int `json:"max_capacity"`
}

type airplaneInput struct {
	TypeID int64 `json:"type_id"`
}

func (h *FleetHandler) createType(c *gin.Context) {
	var input airplaneTypeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	t, err := h.service.CreateAirplaneType(c.Request.Context(), input.MaxCapacity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *FleetHandler) listTypes(c *gin.Context) {
	types, err := h.service.ListAirplaneTypes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if len(types) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No airplane types found"})
		return
	}
	c.JSON(http.StatusOK, types)
}

func (h *FleetHandler) getType(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	t, err := h.service.GetAirplaneType(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *FleetHandler) findTypeByCapacity(c *gin.Context) {
	capacity, err := strconv.Atoi(c.Param("capacity"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid capacity"})
		return
	}

	t, err := h.service.FindAirplaneTypeWithCapacityAtLeast(c.Request.Context(), capacity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *FleetHandler) updateType(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input airplaneTypeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	t, err := h.service.UpdateAirplaneType(c.Request.Context(), id, input.MaxCapacity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *FleetHandler) removeType(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if _, err := h.service.DeleteAirplaneType(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *FleetHandler) createAirplane(c *gin.Context) {
	var input airplaneInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	airplane, err := h.service.CreateAirplane(c.Request.Context(), input.TypeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, airplane)
}

func (h *FleetHandler) listAirplanes(c *gin.Context) {
	airplanes, err := h.service.ListAirplanes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if len(airplanes) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No airplanes found"})
		return
	}
	c.JSON(http.StatusOK, airplanes)
}

func (h *FleetHandler) getAirplane(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	airplane, err := h.service.GetAirplane(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, airplane)
}

func (h *FleetHandler) listAirplanesByType(c *gin.Context) {
	typeID, ok := pathID(c, "type_id")
	if !ok {
		return
	}

	airplanes, err := h.service.ListAirplanesByType(c.Request.Context(), typeID)
	if err != nil {
		respondError(c, err)
		return
	}
	if len(airplanes) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No airplanes found"})
		return
	}
	c.JSON(http.StatusOK, airplanes)
}

func (h *FleetHandler) updateAirplane(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input airplaneInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	airplane, err := h.service.UpdateAirplane(c.Request.Context(), id, input.TypeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, airplane)
}

func (h *FleetHandler) removeAirplane(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if _, err := h.service.DeleteAirplane(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}
