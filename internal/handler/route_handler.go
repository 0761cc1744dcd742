package handler

import (
	"errors"
	"strconv"

	"github.com/SafeHaul-Logistics/service-routing/internal/application"
	"github.com/SafeHaul-Logistics/service-routing/internal/domain/route"
	"github.com/SafeHaul-Logistics/service-routing/internal/platform/response"
	"github.com/gin-gonic/gin"
)

var errInvalidBounds = errors.New("bounds must be given as swLat, swLng, neLat and neLng")

// defaultZoneBounds covers the metro service area used when a zone query
// arrives without an explicit viewport.
var defaultZoneBounds = route.Bounds{
	Southwest: route.LatLng{Lat: 40.55, Lng: -74.15},
	Northeast: route.LatLng{Lat: 40.95, Lng: -73.65},
}

// RouteHandler handles HTTP requests for route evaluation operations.
type RouteHandler struct {
	service *application.EvaluationService
}

// NewRouteHandler creates a new RouteHandler.
func NewRouteHandler(service *application.EvaluationService) *RouteHandler {
	return &RouteHandler{service: service}
}

// RegisterRoutes registers all routing endpoints on the given router group.
func (h *RouteHandler) RegisterRoutes(r *gin.RouterGroup) {
	api := r.Group("/api")
	{
		api.POST("/calculate-routes", h.CalculateRoutes)
		api.GET("/route-metrics/:routeId", h.GetRouteMetrics)
		api.GET("/school-zones", h.GetSchoolZones)
		api.GET("/hazmat-restrictions", h.GetHazmatRestrictions)
	}
}

// CalculateRoutes handles POST /api/calculate-routes.
func (h *RouteHandler) CalculateRoutes(c *gin.Context) {
	var req application.CalculateRoutesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "origin and destination are required")
		return
	}

	routes, err := h.service.CalculateRoutes(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"routes": routes})
}

// GetRouteMetrics handles GET /api/route-metrics/:routeId.
func (h *RouteHandler) GetRouteMetrics(c *gin.Context) {
	metrics, err := h.service.GetRouteMetrics(c.Request.Context(), c.Param("routeId"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"metrics": metrics})
}

// GetSchoolZones handles GET /api/school-zones.
func (h *RouteHandler) GetSchoolZones(c *gin.Context) {
	bounds, err := parseBounds(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	zones, err := h.service.SchoolZones(c.Request.Context(), bounds)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"schoolZones": zones})
}

// GetHazmatRestrictions handles GET /api/hazmat-restrictions.
func (h *RouteHandler) GetHazmatRestrictions(c *gin.Context) {
	bounds, err := parseBounds(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	zones, err := h.service.HazmatRestrictions(c.Request.Context(), bounds)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"restrictions": zones})
}

// parseBounds extracts a viewport from swLat/swLng/neLat/neLng query
// parameters, falling back to the default service area when absent.
func parseBounds(c *gin.Context) (route.Bounds, error) {
	if c.Query("swLat") == "" && c.Query("neLat") == "" {
		return defaultZoneBounds, nil
	}

	bounds := route.Bounds{}
	var err error
	if bounds.Southwest.Lat, err = parseCoordinate(c, "swLat"); err != nil {
		return route.Bounds{}, err
	}
	if bounds.Southwest.Lng, err = parseCoordinate(c, "swLng"); err != nil {
		return route.Bounds{}, err
	}
	if bounds.Northeast.Lat, err = parseCoordinate(c, "neLat"); err != nil {
		return route.Bounds{}, err
	}
	if bounds.Northeast.Lng, err = parseCoordinate(c, "neLng"); err != nil {
		return route.Bounds{}, err
	}

	if !bounds.Southwest.Valid() || !bounds.Northeast.Valid() {
		return route.Bounds{}, errInvalidBounds
	}
	return bounds, nil
}

func parseCoordinate(c *gin.Context, name string) (float64, error) {
	v, err := strconv.ParseFloat(c.Query(name), 64)
	if err != nil {
		return 0, errInvalidBounds
	}
	return v, nil
}
