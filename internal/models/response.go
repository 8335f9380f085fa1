package models

type SearchResponse struct {
	Criteria     SearchParams  `json:"criteria"`
	Page         int           `json:"page"`
	PageCount    int           `json:"page_count"`
	TotalResults int           `json:"total_results"`
	Offers       []FlightOffer `json:"offers"`
}

type BookingResponse struct {
	Message string `json:"message"`
	Order   Order  `json:"order"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
