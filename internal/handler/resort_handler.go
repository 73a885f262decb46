package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"blizzint/internal/errors"
	"blizzint/internal/model"
	"blizzint/internal/service"
)

// ResortHandler handles resort endpoints.
type ResortHandler struct {
	svc service.ResortService
}

// NewResortHandler creates a new resort handler.
func NewResortHandler(svc service.ResortService) *ResortHandler {
	return &ResortHandler{svc: svc}
}

// ResortRequest represents a resort create or update payload. Latitude and
// longitude are pointers so zero coordinates survive the required check.
type ResortRequest struct {
	Name                  string   `json:"name" validate:"required"`
	StateProvince         string   `json:"state_province"`
	Country               string   `json:"country" validate:"required,min=2,max=3"`
	Region                string   `json:"region"`
	Latitude              *float64 `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude             *float64 `json:"longitude" validate:"required,gte=-180,lte=180"`
	SummitElevationFt     *int     `json:"summit_elevation_ft"`
	BaseElevationFt       *int     `json:"base_elevation_ft"`
	VerticalDropFt        *int     `json:"vertical_drop_ft"`
	TrailCount            *int     `json:"trail_count"`
	LiftCount             *int     `json:"lift_count"`
	SkiableAcreage        *int     `json:"skiable_acreage"`
	AnnualSnowfallInches  *int     `json:"annual_snowfall_inches"`
	BeginnerTrailsPct     *int     `json:"beginner_trails_pct"`
	IntermediateTrailsPct *int     `json:"intermediate_trails_pct"`
	AdvancedTrailsPct     *int     `json:"advanced_trails_pct"`
	ExpertTrailsPct       *int     `json:"expert_trails_pct"`
	NightSkiing           bool     `json:"night_skiing"`
	TerrainParks          bool     `json:"terrain_parks"`
	CrossCountry          bool     `json:"cross_country"`
	Snowmaking            bool     `json:"snowmaking"`
	Website               string   `json:"website"`
	Phone                 string   `json:"phone"`
	Description           string   `json:"description"`
	ImageURL              string   `json:"image_url"`
	PassType              string   `json:"pass_type" validate:"omitempty,oneof=Epic Ikon Indy None"`
}

func (r *ResortRequest) toModel() *model.Resort {
	return &model.Resort{
		Name:                  r.Name,
		StateProvince:         r.StateProvince,
		Country:               r.Country,
		Region:                r.Region,
		Latitude:              *r.Latitude,
		Longitude:             *r.Longitude,
		SummitElevationFt:     r.SummitElevationFt,
		BaseElevationFt:       r.BaseElevationFt,
		VerticalDropFt:        r.VerticalDropFt,
		TrailCount:            r.TrailCount,
		LiftCount:             r.LiftCount,
		SkiableAcreage:        r.SkiableAcreage,
		AnnualSnowfallInches:  r.AnnualSnowfallInches,
		BeginnerTrailsPct:     r.BeginnerTrailsPct,
		IntermediateTrailsPct: r.IntermediateTrailsPct,
		AdvancedTrailsPct:     r.AdvancedTrailsPct,
		ExpertTrailsPct:       r.ExpertTrailsPct,
		NightSkiing:           r.NightSkiing,
		TerrainParks:          r.TerrainParks,
		CrossCountry:          r.CrossCountry,
		Snowmaking:            r.Snowmaking,
		Website:               r.Website,
		Phone:                 r.Phone,
		Description:           r.Description,
		ImageURL:              r.ImageURL,
		PassType:              r.PassType,
	}
}

// NearbyQuery represents the nearby search query string.
type NearbyQuery struct {
	Lat         *float64 `query:"lat" validate:"required,gte=-90,lte=90"`
	Lng         *float64 `query:"lng" validate:"required,gte=-180,lte=180"`
	RadiusMiles float64  `query:"radius_miles"`
}

// ListResorts godoc
// @Summary Filtered, paginated resort listing
// @Tags resorts
// @Produce json
// @Param country query string false "Country code"
// @Param state_province query string false "State or province"
// @Param pass_type query string false "Pass type"
// @Param min_elevation query int false "Minimum summit elevation (ft)"
// @Param max_elevation query int false "Maximum summit elevation (ft)"
// @Param min_vertical_drop query int false "Minimum vertical drop (ft)"
// @Param min_trail_count query int false "Minimum trail count"
// @Param night_skiing query bool false "Night skiing"
// @Param sort_by query string false "Sort column"
// @Param sort_order query string false "asc or desc"
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 100)"
// @Success 200 {object} service.ResortPage
// @Failure 400 {object} errors.ErrorResponse
// @Router /resorts [get]
func (h *ResortHandler) ListResorts(c echo.Context) error {
	var params service.ListResortsParams
	if err := c.Bind(&params); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}

	page, err := h.svc.ListResorts(c.Request().Context(), params)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, page)
}

// SearchResorts godoc
// @Summary Substring name search
// @Tags resorts
// @Produce json
// @Param q query string true "Search query"
// @Success 200 {array} model.Resort
// @Failure 400 {object} errors.ErrorResponse
// @Router /resorts/search [get]
func (h *ResortHandler) SearchResorts(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, `search query parameter "q" is required`)
	}

	resorts, err := h.svc.SearchResorts(c.Request().Context(), q)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, resorts)
}

// NearbyResorts godoc
// @Summary Radius search around a point
// @Tags resorts
// @Produce json
// @Param lat query number true "Latitude"
// @Param lng query number true "Longitude"
// @Param radius_miles query number false "Radius in miles (default 50)"
// @Success 200 {array} model.ResortWithDistance
// @Failure 400 {object} errors.ErrorResponse
// @Router /resorts/nearby [get]
func (h *ResortHandler) NearbyResorts(c echo.Context) error {
	var q NearbyQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}
	if err := c.Validate(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "latitude and longitude are required")
	}

	resorts, err := h.svc.NearbyResorts(c.Request().Context(), *q.Lat, *q.Lng, q.RadiusMiles)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, resorts)
}

// GetResort godoc
// @Summary Single resort by id or slug
// @Tags resorts
// @Produce json
// @Param idOrSlug path string true "Resort id or slug"
// @Success 200 {object} model.Resort
// @Failure 404 {object} errors.ErrorResponse
// @Router /resorts/{idOrSlug} [get]
func (h *ResortHandler) GetResort(c echo.Context) error {
	resort, err := h.svc.GetResortByIDOrSlug(c.Request().Context(), c.Param("idOrSlug"))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, resort)
}

// CreateResort godoc
// @Summary Create resort
// @Tags resorts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ResortRequest true "Resort payload"
// @Success 201 {object} model.Resort
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /resorts [post]
func (h *ResortHandler) CreateResort(c echo.Context) error {
	var req ResortRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	resort, err := h.svc.CreateResort(c.Request().Context(), req.toModel())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, resort)
}

// UpdateResort godoc
// @Summary Update resort
// @Tags resorts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Resort ID"
// @Param request body ResortRequest true "Resort payload"
// @Success 200 {object} model.Resort
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /resorts/{id} [put]
func (h *ResortHandler) UpdateResort(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req ResortRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	resort, err := h.svc.UpdateResort(c.Request().Context(), uint(id), req.toModel())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, resort)
}

// DeleteResort godoc
// @Summary Delete resort
// @Tags resorts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Resort ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /resorts/{id} [delete]
func (h *ResortHandler) DeleteResort(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.svc.DeleteResort(c.Request().Context(), uint(id)); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "resort deleted successfully",
	})
}
