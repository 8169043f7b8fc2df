package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/utopia-air/flightnet/internal/domain"
	"github.com/utopia-air/flightnet/internal/service/network"
)

type RouteHandler struct {
	service network.NetworkUseCase
}

func NewRouteHandler(service network.NetworkUseCase) *RouteHandler {
	return &RouteHandler{service: service}
}

func (h *RouteHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.create)
	router.GET("/", h.list)
	router.GET("/:id", h.get)
	router.GET("/origin/:iata", h.listByOrigin)
	router.GET("/destination/:iata", h.listByDestination)
	router.DELETE("/:id", h.remove)
}

func (h *RouteHandler) create(c *gin.Context) {
	var input network.CreateRouteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	route, err := h.service.CreateRoute(c.Request.Context(), input)
	if err != nil {
		var conflict *domain.ConflictError
		if errors.As(err, &conflict) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("A route between those airports already exists. [id: %s]", conflict.ExistingKey),
			})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, route)
}

func (h *RouteHandler) list(c *gin.Context) {
	routes, err := h.service.ListRoutes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if len(routes) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No routes found"})
		return
	}
	c.JSON(http.StatusOK, routes)
}

func (h *RouteHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	route, err := h.service.GetRoute(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, route)
}

func (h *RouteHandler) listByOrigin(c *gin.Context) {
	routes, err := h.service.ListRoutesByOrigin(c.Request.Context(), c.Param("iata"))
	if err != nil {
		respondError(c, err)
		return
	}
	if len(routes) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No routes found"})
		return
	}
	c.JSON(http.StatusOK, routes)
}

func (h *RouteHandler) listByDestination(c *gin.Context) {
	routes, err := h.service.ListRoutesByDestination(c.Request.Context(), c.Param("iata"))
	if err != nil {
		respondError(c, err)
		return
	}
	if len(routes) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No routes found"})
		return
	}
	c.JSON(http.StatusOK, routes)
}

func (h *RouteHandler) remove(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if _, err := h.service.DeleteRoute(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
