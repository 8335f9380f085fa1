package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"travelbudgeter/internal/booking"
	"travelbudgeter/internal/models"
	"travelbudgeter/internal/search"
)

// BookingsLister is the slice of the upstream client the bookings listing
// needs.
type BookingsLister interface {
	ListBookings(ctx context.Context) ([]models.BookingRecord, error)
}

type BookingHandler struct {
	controller *search.Controller
	sessions   *booking.SessionManager
	client     BookingsLister
}

func NewBookingHandler(controller *search.Controller, sessions *booking.SessionManager, client BookingsLister) *BookingHandler {
	return &BookingHandler{
		controller: controller,
		sessions:   sessions,
		client:     client,
	}
}

// Toggle flips itinerary disclosure for one offer.
func (h *BookingHandler) Toggle(c echo.Context) error {
	id := c.Param("id")
	expanded := h.sessions.ToggleDetails(id)
	return c.JSON(http.StatusOK, map[string]any{
		"id":       id,
		"expanded": expanded,
	})
}

type bookRequest struct {
	OfferID    string                    `json:"offerId"`
	Passengers []models.PassengerDetails `json:"passengers"`
	Email      string                    `json:"email"`
	Address    models.ContactAddress     `json:"address"`
}

// Book submits an order for one offer from the current result set. The raw
// offer payload is taken from the search result, never from the caller, so it
// reaches the order endpoint exactly as the backend issued it.
func (h *BookingHandler) Book(c echo.Context) error {
	var req bookRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Failed to parse request body: " + err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	offer, ok := h.controller.OfferByID(req.OfferID)
	if !ok {
		return c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "offer_not_found",
			Message: "Offer " + req.OfferID + " is not part of the current results",
			Code:    http.StatusNotFound,
		})
	}

	order, err := h.sessions.Submit(c.Request().Context(), offer, models.BookingDetails{
		Passengers: req.Passengers,
		Email:      req.Email,
		Address:    req.Address,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, models.BookingResponse{
		Message: "Booking successful",
		Order:   *order,
	})
}

// List returns the session's stored bookings for read-only display.
func (h *BookingHandler) List(c echo.Context) error {
	records, err := h.client.ListBookings(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, records)
}
