package search

import (
	"sort"
	"strconv"

	"travelbudgeter/internal/models"
	"travelbudgeter/pkg/duration"
)

const TopOptionsCount = 3

// TopOptions ranks offers by (price, total itinerary duration, id) and keeps
// the best n. Offers whose price or durations cannot be parsed sort last.
func TopOptions(offers []models.FlightOffer, n int) []models.FlightOffer {
	ranked := make([]models.FlightOffer, len(offers))
	copy(ranked, offers)

	sort.SliceStable(ranked, func(i, j int) bool {
		pi, pj := priceValue(ranked[i]), priceValue(ranked[j])
		if pi != pj {
			return pi < pj
		}
		di, dj := totalDuration(ranked[i]), totalDuration(ranked[j])
		if di != dj {
			return di < dj
		}
		return ranked[i].ID < ranked[j].ID
	})

	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

func priceValue(offer models.FlightOffer) float64 {
	price, err := strconv.ParseFloat(offer.Price, 64)
	if err != nil {
		return maxFloat
	}
	return price
}

func totalDuration(offer models.FlightOffer) int {
	total := 0
	for _, itinerary := range offer.Itineraries {
		minutes, err := duration.ParseMinutes(itinerary.Duration)
		if err != nil {
			return maxInt
		}
		total += minutes
	}
	return total
}

const (
	maxFloat = float64(1<<63 - 1)
	maxInt   = int(^uint(0) >> 1)
)
