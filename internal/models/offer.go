package models

import "encoding/json"

// Segment is a single flown leg between two airports.
type Segment struct {
	Departure     string `json:"departure"`
	Arrival       string `json:"arrival"`
	DepartureTime string `json:"departureTime"`
	ArrivalTime   string `json:"arrivalTime"`
	CarrierCode   string `json:"carrierCode"`
	Number        string `json:"number"`
	AircraftCode  string `json:"aircraftCode"`
	Duration      string `json:"duration"`
	NumberOfStops int    `json:"numberOfStops"`
}

// Itinerary is one directional trip composed of one or more segments.
type Itinerary struct {
	Duration string    `json:"duration"`
	Segments []Segment `json:"segments"`
}

// FlightOffer is a priced itinerary option returned by the search endpoint,
// identified uniquely within one result set.
//
// RawResponse is the upstream offer payload exactly as issued. The booking
// endpoint requires the structure it handed out, so the raw bytes are carried
// through untouched and never re-marshalled from the typed fields.
type FlightOffer struct {
	ID          string          `json:"id"`
	Price       string          `json:"price"`
	Currency    string          `json:"currency"`
	Itineraries []Itinerary     `json:"itineraries"`
	RawResponse json.RawMessage `json:"rawResponse,omitempty"`
}
