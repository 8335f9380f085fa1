package models

import "encoding/json"

// PassengerDetails holds one traveler's form input. FirstName, PassportNumber
// and PassportExpiryDate are required before submission.
type PassengerDetails struct {
	FirstName          string `json:"firstName"`
	LastName           string `json:"lastName"`
	DateOfBirth        string `json:"dateOfBirth"`
	PassportNumber     string `json:"passportNumber"`
	PassportExpiryDate string `json:"passportExpiryDate"`
}

// ContactAddress requires at least one address line and all other fields.
type ContactAddress struct {
	Lines       []string `json:"lines"`
	PostalCode  string   `json:"postalCode"`
	City        string   `json:"city"`
	CountryCode string   `json:"countryCode"`
}

// BookingDetails is everything the booking form collects for one offer.
type BookingDetails struct {
	Passengers []PassengerDetails `json:"passengers"`
	Email      string             `json:"email"`
	Address    ContactAddress     `json:"address"`
}

// BookingRequest is the payload sent to the order endpoint. FlightOffer is the
// offer's RawResponse forwarded byte-for-byte.
type BookingRequest struct {
	FlightOffer json.RawMessage    `json:"flightOffer"`
	Passengers  []PassengerDetails `json:"passengers"`
	Email       string             `json:"email"`
	Address     ContactAddress     `json:"address"`
}

// Order is the externally assigned identifier returned on a successful booking.
type Order struct {
	ID        string `json:"orderId"`
	Reference string `json:"reference,omitempty"`
}

type User struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Read models for the bookings listing, matching the backend's booking records.

type TravelerRecord struct {
	FirstName          string `json:"first_name"`
	LastName           string `json:"last_name"`
	DateOfBirth        string `json:"date_of_birth"`
	PassportNumber     string `json:"passport_number"`
	PassportExpiryDate string `json:"passport_expiry_date"`
	IssuanceCountry    string `json:"passport_issuance_country"`
	Nationality        string `json:"nationality"`
}

type ContactRecord struct {
	Email         string `json:"email"`
	AddresseeName string `json:"addressee_name"`
	AddressLines  string `json:"address_lines"`
	PostalCode    string `json:"postal_code"`
	CityName      string `json:"city_name"`
	CountryCode   string `json:"country_code"`
}

type SegmentRecord struct {
	DepartureIataCode string  `json:"departure_iata_code"`
	DepartureTerminal string  `json:"departure_terminal"`
	DepartureTime     string  `json:"departure_time"`
	ArrivalIataCode   string  `json:"arrival_iata_code"`
	ArrivalTerminal   string  `json:"arrival_terminal"`
	ArrivalTime       string  `json:"arrival_time"`
	CarrierCode       string  `json:"carrier_code"`
	FlightNumber      string  `json:"flight_number"`
	AircraftCode      string  `json:"aircraft_code"`
	Duration          string  `json:"duration"`
	NumberOfStops     int     `json:"number_of_stops"`
	Co2Weight         float64 `json:"co2_emissions_weight"`
	Co2Unit           string  `json:"co2_emissions_unit"`
	Cabin             string  `json:"cabin"`
}

type ItineraryRecord struct {
	Segments []SegmentRecord `json:"segments"`
}

type PriceRecord struct {
	Currency   string  `json:"currency"`
	Total      float64 `json:"total"`
	Base       float64 `json:"base"`
	GrandTotal float64 `json:"grand_total"`
}

type BookingRecord struct {
	BookingID       string            `json:"booking_id"`
	Reference       string            `json:"reference"`
	CreationDate    string            `json:"creation_date"`
	FlightOfferID   string            `json:"flight_offer_id"`
	Travelers       []TravelerRecord  `json:"travelers"`
	Contacts        []ContactRecord   `json:"contacts"`
	Itineraries     []ItineraryRecord `json:"itineraries"`
	Price           PriceRecord       `json:"price"`
	TicketingOption string            `json:"ticketing_option"`
}
