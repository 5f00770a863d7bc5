package external

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/hectormalot/omgo"

	"climaterisk.app/internal/ports"
	"climaterisk.app/pkg/errors"
	"climaterisk.app/pkg/validation"
)

const openMeteoName = "Open-Meteo"

// current_weather carries temperature, wind and weather code only; the rest is
// read from the hourly series at the observation hour
const (
	hourlyHumidity = "relative_humidity_2m"
	hourlyPressure = "pressure_msl"
	hourlyUVIndex  = "uv_index"
)

// OpenMeteoProviderParams holds the parameters for the Open-Meteo adapter
type OpenMeteoProviderParams struct {
	BaseURL        string
	RequestTimeout time.Duration
	Client         *http.Client // optional
}

// OpenMeteoProviderAdapter serves current conditions from the Open-Meteo forecast API
type OpenMeteoProviderAdapter struct {
	client omgo.Client
}

// NewOpenMeteoProviderAdapter creates a new Open-Meteo provider adapter
func NewOpenMeteoProviderAdapter(params OpenMeteoProviderParams) (*OpenMeteoProviderAdapter, error) {
	client, err := omgo.NewClient()
	if err != nil {
		return nil, fmt.Errorf("failed to create Open-Meteo client: %w", err)
	}
	if params.BaseURL != "" {
		client.URL = params.BaseURL
	}
	client.Client = params.Client
	if client.Client == nil {
		client.Client = &http.Client{Timeout: params.RequestTimeout}
	}

	return &OpenMeteoProviderAdapter{client: client}, nil
}

// GetCurrentConditions returns the latest observation in metric units
func (p *OpenMeteoProviderAdapter) GetCurrentConditions(ctx context.Context, latitude, longitude float64) (*ports.CurrentConditionsData, error) {
	if !validation.IsValidLatitude(latitude) || !validation.IsValidLongitude(longitude) {
		return nil, errors.NewValidationError(fmt.Sprintf("invalid location %.2f, %.2f", latitude, longitude))
	}
	location, err := omgo.NewLocation(latitude, longitude)
	if err != nil {
		return nil, errors.NewValidationError(fmt.Sprintf("invalid location %.2f, %.2f: %v", latitude, longitude, err))
	}

	forecast, err := p.client.Forecast(ctx, location, &omgo.Options{
		Timezone:          "auto",
		TemperatureUnit:   "celsius",
		WindspeedUnit:     "kmh",
		PrecipitationUnit: "mm",
		HourlyMetrics:     []string{hourlyHumidity, hourlyPressure, hourlyUVIndex},
	})
	if err != nil {
		return nil, errors.NewExternalAPIError("failed to fetch Open-Meteo current weather", err)
	}

	data := currentFromForecast(forecast)
	if data == nil {
		return nil, errors.NewExternalAPIError("Open-Meteo returned no current weather", nil)
	}
	return data, nil
}

// GetProviderName returns the name of this provider
func (p *OpenMeteoProviderAdapter) GetProviderName() string {
	return openMeteoName
}

func currentFromForecast(forecast *omgo.Forecast) *ports.CurrentConditionsData {
	if forecast == nil || forecast.CurrentWeather.Time.IsZero() {
		return nil
	}

	current := forecast.CurrentWeather
	data := &ports.CurrentConditionsData{
		Time:          current.Time.Time,
		Temperature:   current.Temperature,
		WeatherCode:   int(current.WeatherCode),
		WindSpeed:     current.WindSpeed,
		WindDirection: current.WindDirection,
	}

	hour := current.Time.Truncate(time.Hour)
	for i, t := range forecast.HourlyTimes {
		if !t.Equal(hour) {
			continue
		}
		data.Humidity = hourlyReading(forecast.HourlyMetrics, hourlyHumidity, i)
		data.Pressure = hourlyReading(forecast.HourlyMetrics, hourlyPressure, i)
		data.UVIndex = hourlyReading(forecast.HourlyMetrics, hourlyUVIndex, i)
		break
	}
	return data
}

func hourlyReading(metrics map[string][]float64, name string, idx int) *float64 {
	series, ok := metrics[name]
	if !ok || idx >= len(series) {
		return nil
	}
	v := series[idx]
	return &v
}
