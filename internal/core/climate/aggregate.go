package climate

import (
	"math"
	"time"
)

// Fixed thresholds used for exceedance probabilities
const (
	RainThresholdMM  = 0.1
	HotThresholdC    = 35.0
	ColdThresholdC   = 0.0
	WindyThresholdMS = 6.94 // 25 km/h
	WetThresholdMM   = 10.0
)

// WindyThresholdKPH is WindyThresholdMS in the unit shown to users
const WindyThresholdKPH = 25.0

// Aggregate reduces every observation in window that falls on targetMonth/targetDay
// (in any year) to a Report. It never fails: an empty window or a calendar day with no
// matching observations yields zero percentages and nil averages.
func Aggregate(window Window, targetMonth, targetDay int) Report {
	var (
		meanTemp, maxTemp, minTemp sample
		wind, humidity, precip     sample
		matching                   int
	)

	for _, obs := range window.Observations {
		if int(obs.Date.Month()) != targetMonth || obs.Date.Day() != targetDay {
			continue
		}
		matching++

		meanTemp.add(obs.MeanTemp)
		maxTemp.add(obs.MaxTemp)
		minTemp.add(obs.MinTemp)
		wind.add(obs.WindSpeed)
		humidity.add(obs.Humidity)
		precip.add(obs.Precipitation)
	}

	return Report{
		RainProbability:   percentage(precip.countAbove(RainThresholdMM), matching),
		AvgTemperature:    meanTemp.mean(),
		AvgMaxTemperature: maxTemp.mean(),
		AvgMinTemperature: minTemp.mean(),
		AvgWindSpeed:      wind.mean(),
		AvgHumidity:       humidity.mean(),
		AvgPrecipitation:  precip.mean(),
		ExtremeConditions: ExtremeConditions{
			VeryHot:   percentage(maxTemp.countAbove(HotThresholdC), len(maxTemp)),
			VeryCold:  percentage(minTemp.countBelow(ColdThresholdC), len(minTemp)),
			VeryWindy: percentage(wind.countAbove(WindyThresholdMS), len(wind)),
			VeryWet:   percentage(precip.countAbove(WetThresholdMM), len(precip)),
		},
		TotalYearsAnalyzed: matching,
	}
}

// AggregateOn is Aggregate for the calendar day of date
func AggregateOn(window Window, date time.Time) Report {
	return Aggregate(window, int(date.Month()), date.Day())
}

// sample collects the valid readings of one quantity
type sample []float64

func (s *sample) add(r Reading) {
	if r == nil || math.IsNaN(*r) {
		return
	}
	*s = append(*s, *r)
}

func (s sample) mean() *float64 {
	if len(s) == 0 {
		return nil
	}
	var sum float64
	for _, v := range s {
		sum += v
	}
	avg := sum / float64(len(s))
	return &avg
}

func (s sample) countAbove(threshold float64) int {
	n := 0
	for _, v := range s {
		if v > threshold {
			n++
		}
	}
	return n
}

func (s sample) countBelow(threshold float64) int {
	n := 0
	for _, v := range s {
		if v < threshold {
			n++
		}
	}
	return n
}

// percentage returns round(100*count/total) in [0,100], or 0 when total is 0
func percentage(count, total int) int {
	if total <= 0 {
		return 0
	}
	p := int(math.Round(100 * float64(count) / float64(total)))
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}
