package ports

import (
	"context"
	"time"
)

// DailyObservationData is one day of historical readings. A nil reading is missing data.
type DailyObservationData struct {
	Date          time.Time `json:"date"`
	MeanTemp      *float64  `json:"meanTemp"`
	MaxTemp       *float64  `json:"maxTemp"`
	MinTemp       *float64  `json:"minTemp"`
	WindSpeed     *float64  `json:"windSpeed"`
	Humidity      *float64  `json:"humidity"`
	Precipitation *float64  `json:"precipitation"`
}

// ClimateWindowData is a multi-year sequence of daily observations for one coordinate pair
type ClimateWindowData struct {
	Latitude     float64                `json:"latitude"`
	Longitude    float64                `json:"longitude"`
	StartYear    int                    `json:"startYear"`
	EndYear      int                    `json:"endYear"`
	Source       string                 `json:"source"`
	Observations []DailyObservationData `json:"observations"`
}

// HistoryQuery identifies the window requested from a historical data provider
type HistoryQuery struct {
	Latitude  float64
	Longitude float64
	StartYear int
	EndYear   int
}

// HistoricalDataProvider defines the contract for multi-decade daily observation sources
type HistoricalDataProvider interface {
	GetDailyHistory(ctx context.Context, query HistoryQuery) (*ClimateWindowData, error)
	GetProviderName() string
}

// ClimateCache defines the contract for caching historical windows
type ClimateCache interface {
	Get(ctx context.Context, key string) (*ClimateWindowData, error)
	Set(ctx context.Context, key string, window *ClimateWindowData, ttl time.Duration) error
}

// Geocoder resolves a human-readable label for a coordinate pair
type Geocoder interface {
	ReverseGeocode(ctx context.Context, latitude, longitude float64) (string, error)
}

// CurrentConditionsData is the latest observation near a coordinate pair.
// Humidity, Pressure and UVIndex are nil when the source does not report them.
type CurrentConditionsData struct {
	Time          time.Time
	Temperature   float64 // °C
	WeatherCode   int     // WMO code
	WindSpeed     float64 // km/h
	WindDirection float64 // degrees from north
	Humidity      *float64
	Pressure      *float64 // hPa
	UVIndex       *float64
}

// CurrentConditionsProvider defines the contract for live weather sources
type CurrentConditionsProvider interface {
	GetCurrentConditions(ctx context.Context, latitude, longitude float64) (*CurrentConditionsData, error)
	GetProviderName() string
}
