package climate

import (
	"fmt"
	"math"
	"time"

	"climaterisk.app/pkg/validation"
)

// Reading is a single measured value. A nil Reading is missing data and never counts as zero.
type Reading = *float64

// Value returns a present Reading holding v
func Value(v float64) Reading {
	return &v
}

// DailyObservation holds one day of readings at a location
type DailyObservation struct {
	Date          time.Time
	MeanTemp      Reading // °C
	MaxTemp       Reading // °C
	MinTemp       Reading // °C
	WindSpeed     Reading // m/s
	Humidity      Reading // %
	Precipitation Reading // mm
}

// Window is the full multi-year observation history for a coordinate pair
type Window struct {
	Latitude     float64
	Longitude    float64
	StartYear    int
	EndYear      int
	Observations []DailyObservation
}

// IsEmpty reports whether the window holds no observations at all
func (w Window) IsEmpty() bool {
	return len(w.Observations) == 0
}

// ExtremeConditions holds exceedance percentages in [0,100]
type ExtremeConditions struct {
	VeryHot   int `json:"veryHot"`
	VeryCold  int `json:"veryCold"`
	VeryWindy int `json:"veryWindy"`
	VeryWet   int `json:"veryWet"`
}

// Report summarises all matching-day observations of a window.
// Averages are nil when no valid reading exists for that quantity.
type Report struct {
	RainProbability    int               `json:"rainProbability"`
	AvgTemperature     *float64          `json:"avgTemperature"`
	AvgMaxTemperature  *float64          `json:"avgMaxTemperature"`
	AvgMinTemperature  *float64          `json:"avgMinTemperature"`
	AvgWindSpeed       *float64          `json:"avgWindSpeed"`
	AvgHumidity        *float64          `json:"avgHumidity"`
	AvgPrecipitation   *float64          `json:"avgPrecipitation"`
	ExtremeConditions  ExtremeConditions `json:"extremeConditions"`
	TotalYearsAnalyzed int               `json:"totalYearsAnalyzed"`
	DataSource         string            `json:"dataSource"`
}

// ClimatologyRequest represents a request for the climatology of one calendar day
type ClimatologyRequest struct {
	Latitude  float64
	Longitude float64
	Month     int
	Day       int
}

// IsValid validates the climatology request
func (r *ClimatologyRequest) IsValid() error {
	if !validation.IsValidLatitude(r.Latitude) {
		return fmt.Errorf("latitude must be between -90 and 90")
	}
	if !validation.IsValidLongitude(r.Longitude) {
		return fmt.Errorf("longitude must be between -180 and 180")
	}
	if !validation.IsValidMonthDay(r.Month, r.Day) {
		return fmt.Errorf("month %d and day %d do not form a calendar day", r.Month, r.Day)
	}
	return nil
}

// NormalizeCoordinates rounds coordinates to two decimals (about 1 km), the
// precision used for cache keys and upstream queries
func (r *ClimatologyRequest) NormalizeCoordinates() {
	r.Latitude = roundTo(r.Latitude, 2)
	r.Longitude = roundTo(r.Longitude, 2)
}

// ClimatologyResult is what the use case returns to the transport layer
type ClimatologyResult struct {
	Location                string
	Latitude                float64
	Longitude               float64
	Month                   int
	Day                     int
	HistoricalDataAvailable bool
	Report                  Report
	Current                 *CurrentConditions // nil when no live provider answered
	Alerts                  []Alert
}

// DateLabel returns the requested calendar day as MM-DD
func (r *ClimatologyResult) DateLabel() string {
	return fmt.Sprintf("%02d-%02d", r.Month, r.Day)
}

func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
