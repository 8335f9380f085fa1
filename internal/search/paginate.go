package search

import "travelbudgeter/internal/models"

const DefaultPageSize = 10

// Page returns the contiguous slice for a 1-based page number. An out-of-range
// page yields an empty slice, not an error; resetting to page 1 when the
// underlying result set changes is the caller's responsibility.
func Page(offers []models.FlightOffer, pageSize, page int) []models.FlightOffer {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}

	start := (page - 1) * pageSize
	if start >= len(offers) {
		return []models.FlightOffer{}
	}

	end := start + pageSize
	if end > len(offers) {
		end = len(offers)
	}

	return offers[start:end]
}

// PageCount is ceil(n / pageSize).
func PageCount(n, pageSize int) int {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if n <= 0 {
		return 0
	}
	return (n + pageSize - 1) / pageSize
}
