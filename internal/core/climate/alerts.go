package climate

import (
	"fmt"
	"time"
)

// Alert thresholds, percentages of historical years
const (
	HeatAlertThreshold = 20
	RainAlertThreshold = 50
	WindAlertThreshold = 25
)

const alertValidity = 24 * time.Hour

// Severity of a safety alert
type Severity string

const (
	SeverityMinor    Severity = "Minor"
	SeverityModerate Severity = "Moderate"
)

// Certainty of a safety alert
type Certainty string

const (
	CertaintyLikely   Certainty = "Likely"
	CertaintyPossible Certainty = "Possible"
)

// Alert is a CAP-style advisory derived from a climatology report
type Alert struct {
	Headline    string    `json:"headline"`
	Description string    `json:"description"`
	Severity    Severity  `json:"severity"`
	Urgency     string    `json:"urgency"`
	Area        string    `json:"area"`
	Category    string    `json:"category"`
	Certainty   Certainty `json:"certainty"`
	Event       string    `json:"event"`
	Effective   time.Time `json:"effective"`
	Expires     time.Time `json:"expires"`
}

// DeriveAlerts returns the advisories a report warrants. The result is empty, never nil,
// when no threshold is exceeded.
func DeriveAlerts(report Report, area string, now time.Time) []Alert {
	alerts := make([]Alert, 0, 3)
	newAlert := func(headline, description, event string, severity Severity, certainty Certainty) Alert {
		return Alert{
			Headline:    headline,
			Description: description,
			Severity:    severity,
			Urgency:     "Expected",
			Area:        area,
			Category:    "Met",
			Certainty:   certainty,
			Event:       event,
			Effective:   now,
			Expires:     now.Add(alertValidity),
		}
	}

	if report.ExtremeConditions.VeryHot > HeatAlertThreshold {
		alerts = append(alerts, newAlert(
			"High Temperature Alert",
			fmt.Sprintf("Historical data shows %d%% chance of temperatures above %.0f°C", report.ExtremeConditions.VeryHot, HotThresholdC),
			"Heat Advisory", SeverityModerate, CertaintyLikely))
	}

	if report.RainProbability > RainAlertThreshold {
		alerts = append(alerts, newAlert(
			"Rain Likely",
			fmt.Sprintf("Historical data shows %d%% chance of precipitation", report.RainProbability),
			"Rain Advisory", SeverityMinor, CertaintyLikely))
	}

	if report.ExtremeConditions.VeryWindy > WindAlertThreshold {
		alerts = append(alerts, newAlert(
			"Wind Advisory",
			fmt.Sprintf("Historical data shows %d%% chance of winds above %.0f km/h", report.ExtremeConditions.VeryWindy, WindyThresholdKPH),
			"Wind Advisory", SeverityModerate, CertaintyPossible))
	}

	return alerts
}
