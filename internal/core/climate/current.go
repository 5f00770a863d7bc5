package climate

import (
	"math"
	"time"
)

const defaultConditionIcon = "//cdn.weatherapi.com/weather/64x64/day/113.png"

// Condition is the text and icon of a WMO weather interpretation code
type Condition struct {
	Code int    `json:"code"`
	Text string `json:"text"`
	Icon string `json:"icon"`
}

var wmoConditions = map[int]Condition{
	0:  {Text: "Clear sky", Icon: "//cdn.weatherapi.com/weather/64x64/day/113.png"},
	1:  {Text: "Mainly clear", Icon: "//cdn.weatherapi.com/weather/64x64/day/113.png"},
	2:  {Text: "Partly cloudy", Icon: "//cdn.weatherapi.com/weather/64x64/day/116.png"},
	3:  {Text: "Overcast", Icon: "//cdn.weatherapi.com/weather/64x64/day/119.png"},
	45: {Text: "Foggy", Icon: "//cdn.weatherapi.com/weather/64x64/day/248.png"},
	48: {Text: "Depositing rime fog", Icon: "//cdn.weatherapi.com/weather/64x64/day/248.png"},
	51: {Text: "Light drizzle", Icon: "//cdn.weatherapi.com/weather/64x64/day/263.png"},
	53: {Text: "Moderate drizzle", Icon: "//cdn.weatherapi.com/weather/64x64/day/266.png"},
	55: {Text: "Dense drizzle", Icon: "//cdn.weatherapi.com/weather/64x64/day/266.png"},
	61: {Text: "Slight rain", Icon: "//cdn.weatherapi.com/weather/64x64/day/296.png"},
	63: {Text: "Moderate rain", Icon: "//cdn.weatherapi.com/weather/64x64/day/302.png"},
	65: {Text: "Heavy rain", Icon: "//cdn.weatherapi.com/weather/64x64/day/308.png"},
	71: {Text: "Slight snow", Icon: "//cdn.weatherapi.com/weather/64x64/day/326.png"},
	73: {Text: "Moderate snow", Icon: "//cdn.weatherapi.com/weather/64x64/day/332.png"},
	75: {Text: "Heavy snow", Icon: "//cdn.weatherapi.com/weather/64x64/day/338.png"},
	80: {Text: "Slight rain showers", Icon: "//cdn.weatherapi.com/weather/64x64/day/353.png"},
	81: {Text: "Moderate rain showers", Icon: "//cdn.weatherapi.com/weather/64x64/day/356.png"},
	82: {Text: "Violent rain showers", Icon: "//cdn.weatherapi.com/weather/64x64/day/359.png"},
	95: {Text: "Thunderstorm", Icon: "//cdn.weatherapi.com/weather/64x64/day/386.png"},
}

// WeatherCondition maps a WMO code to its condition; unmapped codes are "Unknown"
func WeatherCondition(code int) Condition {
	c, ok := wmoConditions[code]
	if !ok {
		c = Condition{Text: "Unknown", Icon: defaultConditionIcon}
	}
	c.Code = code
	return c
}

var compassPoints = [16]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// WindDirection names the 16-point compass sector of a bearing. Sector
// boundaries round up: 11.25° is NNE and 348.75° is N.
func WindDirection(degrees float64) string {
	if math.IsNaN(degrees) || math.IsInf(degrees, 0) {
		return ""
	}
	d := math.Mod(degrees, 360)
	if d < 0 {
		d += 360
	}
	return compassPoints[int(math.Round(d/22.5))%len(compassPoints)]
}

// CelsiusToFahrenheit converts a temperature
func CelsiusToFahrenheit(c float64) float64 {
	return c*9/5 + 32
}

// CurrentConditions is the live weather at the requested location. It does not
// depend on the requested calendar day.
type CurrentConditions struct {
	ObservedAt    time.Time `json:"observedAt"`
	TempC         float64   `json:"tempC"`
	TempF         float64   `json:"tempF"`
	Condition     Condition `json:"condition"`
	WindKPH       float64   `json:"windKph"`
	WindDegree    float64   `json:"windDegree"`
	WindDirection string    `json:"windDir"`
	PressureMB    *float64  `json:"pressureMb"`
	Humidity      *float64  `json:"humidity"`
	UV            float64   `json:"uv"`
	Source        string    `json:"source"`
}
