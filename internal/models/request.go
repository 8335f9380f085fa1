package models

// SearchParams mirrors the search form exactly as the flight backend expects
// it. A parameter set is immutable once submitted; the search controller keys
// in-flight requests by its identity.
type SearchParams struct {
	OriginLocationCode      string `json:"originLocationCode"`
	DestinationLocationCode string `json:"destinationLocationCode"`
	DepartureDate           string `json:"departureDate"`
	ReturnDate              string `json:"returnDate,omitempty"`
	Adults                  int    `json:"adults"`
	NonStop                 bool   `json:"nonStop"`
	Max                     int    `json:"max,omitempty"`
}

func (p *SearchParams) Validate() error {
	if p.OriginLocationCode == "" {
		return ErrMissingOrigin
	}
	if p.DestinationLocationCode == "" {
		return ErrMissingDestination
	}
	if p.Adults <= 0 {
		p.Adults = 1
	}
	return nil
}

type ValidationError string

func (e ValidationError) Error() string {
	return string(e)
}

const (
	ErrMissingOrigin      ValidationError = "originLocationCode is required"
	ErrMissingDestination ValidationError = "destinationLocationCode is required"
)
