package handler

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/labstack/echo/v4"

	"travelbudgeter/internal/models"
	"travelbudgeter/internal/search"
	"travelbudgeter/internal/upstream"
)

type SearchHandler struct {
	controller *search.Controller
	pageSize   int

	mu      sync.Mutex
	lastKey string
}

func NewSearchHandler(controller *search.Controller) *SearchHandler {
	return &SearchHandler{
		controller: controller,
		pageSize:   search.DefaultPageSize,
	}
}

// Search serves one page of offers for the submitted parameters. The ?best
// flag targets the best-options endpoint variant; the request/response
// contract is the same for both. When the parameters change, the page resets
// to 1 so a shrunken result set cannot leave the caller on an empty page.
func (h *SearchHandler) Search(c echo.Context) error {
	var params models.SearchParams
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Failed to parse request body: " + err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	// Validate here as well so the echoed criteria carry the canonical
	// parameters (defaulted adults included), matching what was searched.
	if err := params.Validate(); err != nil {
		return writeError(c, err)
	}

	endpoint := upstream.EndpointFlightOffers
	if c.QueryParam("best") == "true" {
		endpoint = upstream.EndpointBestOptions
	}

	page := 1
	if raw := c.QueryParam("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "invalid_request",
				Message: "page must be a positive integer",
				Code:    http.StatusBadRequest,
			})
		}
		page = parsed
	}

	result := h.controller.Search(c.Request().Context(), endpoint, params)
	if result.Err != nil {
		return writeError(c, result.Err)
	}

	h.mu.Lock()
	if result.Key != h.lastKey {
		h.lastKey = result.Key
		page = 1
	}
	h.mu.Unlock()

	return c.JSON(http.StatusOK, models.SearchResponse{
		Criteria:     params,
		Page:         page,
		PageCount:    search.PageCount(len(result.Offers), h.pageSize),
		TotalResults: len(result.Offers),
		Offers:       search.Page(result.Offers, h.pageSize, page),
	})
}

// Recommendations returns the top options for the parameters, ranked locally
// by price, then total duration, then id.
func (h *SearchHandler) Recommendations(c echo.Context) error {
	var params models.SearchParams
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Failed to parse request body: " + err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	if err := params.Validate(); err != nil {
		return writeError(c, err)
	}

	result := h.controller.Search(c.Request().Context(), upstream.EndpointFlightOffers, params)
	if result.Err != nil {
		return writeError(c, result.Err)
	}

	top := search.TopOptions(result.Offers, search.TopOptionsCount)
	return c.JSON(http.StatusOK, models.SearchResponse{
		Criteria:     params,
		Page:         1,
		PageCount:    search.PageCount(len(top), h.pageSize),
		TotalResults: len(top),
		Offers:       top,
	})
}

func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}
