package duration

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	isoPattern     = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?$`)
	displayPattern = regexp.MustCompile(`^(?:(\d+)h)?\s*(?:(\d+)m)?$`)
)

// ParseMinutes converts a trip duration into total minutes. It accepts both
// the ISO-8601 form the flight backend emits ("PT9H45M") and the display form
// shown to users ("9h 45m").
func ParseMinutes(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("duration: empty string")
	}

	pattern := displayPattern
	if strings.HasPrefix(s, "PT") {
		pattern = isoPattern
	}

	match := pattern.FindStringSubmatch(s)
	if match == nil || (match[1] == "" && match[2] == "") {
		return 0, fmt.Errorf("duration: cannot parse %q", s)
	}

	hours, minutes := 0, 0
	if match[1] != "" {
		hours, _ = strconv.Atoi(match[1])
	}
	if match[2] != "" {
		minutes, _ = strconv.Atoi(match[2])
	}

	return hours*60 + minutes, nil
}

// Format renders total minutes in the display form, e.g. "9h 45m".
func Format(totalMinutes int) string {
	if totalMinutes < 0 {
		totalMinutes = 0
	}
	return fmt.Sprintf("%dh %dm", totalMinutes/60, totalMinutes%60)
}
