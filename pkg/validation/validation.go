package validation

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var monthDayRegex = regexp.MustCompile(`^(\d{2})-(\d{2})$`)

// daysInMonth uses a leap year so that 02-29 is accepted
var daysInMonth = [13]int{0, 31, 29, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// TrimAndValidate trims string and validates it's not empty
func TrimAndValidate(s string) (string, bool) {
	trimmed := strings.TrimSpace(s)
	return trimmed, trimmed != ""
}

// IsValidLatitude reports whether lat is a finite value in [-90, 90]
func IsValidLatitude(lat float64) bool {
	return isFinite(lat) && lat >= -90 && lat <= 90
}

// IsValidLongitude reports whether lon is a finite value in [-180, 180]
func IsValidLongitude(lon float64) bool {
	return isFinite(lon) && lon >= -180 && lon <= 180
}

// IsValidMonthDay reports whether month/day can occur in some year
func IsValidMonthDay(month, day int) bool {
	if month < 1 || month > 12 {
		return false
	}
	return day >= 1 && day <= daysInMonth[month]
}

// ParseMonthDay parses an "MM-DD" calendar day
func ParseMonthDay(s string) (month, day int, err error) {
	m := monthDayRegex.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, 0, fmt.Errorf("date must use MM-DD format")
	}
	month, _ = strconv.Atoi(m[1])
	day, _ = strconv.Atoi(m[2])
	if !IsValidMonthDay(month, day) {
		return 0, 0, fmt.Errorf("date %q is not a calendar day", s)
	}
	return month, day, nil
}

// IsValidWeight reports whether w is a usable activity weight
func IsValidWeight(w, maxWeight float64) bool {
	return isFinite(w) && w >= 0 && w <= maxWeight
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
