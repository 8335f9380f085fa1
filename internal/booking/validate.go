package booking

import (
	"fmt"

	"travelbudgeter/internal/models"
)

// ValidateDetails checks the whole form all-or-nothing before anything is
// sent. The returned error names the first unmet constraint.
func ValidateDetails(details models.BookingDetails) error {
	if len(details.Passengers) == 0 {
		return models.ValidationError("at least one passenger is required")
	}

	for i, p := range details.Passengers {
		if p.FirstName == "" {
			return passengerErr(i, "firstName")
		}
		if p.PassportNumber == "" {
			return passengerErr(i, "passportNumber")
		}
		if p.PassportExpiryDate == "" {
			return passengerErr(i, "passportExpiryDate")
		}
	}

	if details.Email == "" {
		return models.ValidationError("email is required")
	}

	if len(details.Address.Lines) == 0 {
		return models.ValidationError("address needs at least one line")
	}
	if details.Address.City == "" {
		return models.ValidationError("address city is required")
	}
	if details.Address.PostalCode == "" {
		return models.ValidationError("address postalCode is required")
	}
	if details.Address.CountryCode == "" {
		return models.ValidationError("address countryCode is required")
	}

	return nil
}

func passengerErr(index int, field string) models.ValidationError {
	return models.ValidationError(fmt.Sprintf("passenger %d: %s is required", index+1, field))
}
