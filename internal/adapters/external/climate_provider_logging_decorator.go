package external

import (
	"context"
	"time"

	"climaterisk.app/internal/ports"
)

// HistoricalProviderLoggingDecorator decorates historical data providers with structured logging
type HistoricalProviderLoggingDecorator struct {
	provider ports.HistoricalDataProvider
	logger   ports.Logger
}

// NewHistoricalProviderLoggingDecorator creates a new logging decorator for historical data providers
func NewHistoricalProviderLoggingDecorator(provider ports.HistoricalDataProvider, logger ports.Logger) *HistoricalProviderLoggingDecorator {
	return &HistoricalProviderLoggingDecorator{
		provider: provider,
		logger:   logger,
	}
}

// GetDailyHistory wraps the provider call with request, response and error logging
func (d *HistoricalProviderLoggingDecorator) GetDailyHistory(ctx context.Context, query ports.HistoryQuery) (*ports.ClimateWindowData, error) {
	providerName := d.provider.GetProviderName()

	d.logger.Info("Historical data request started",
		ports.F("provider", providerName),
		ports.F("lat", query.Latitude),
		ports.F("lon", query.Longitude),
		ports.F("start_year", query.StartYear),
		ports.F("end_year", query.EndYear),
		ports.F("event", "request"))

	startTime := time.Now()
	window, err := d.provider.GetDailyHistory(ctx, query)
	duration := time.Since(startTime)

	if err != nil {
		d.logger.Error("Historical data request failed",
			ports.F("provider", providerName),
			ports.F("lat", query.Latitude),
			ports.F("lon", query.Longitude),
			ports.F("event", "error"),
			ports.F("duration_ms", duration.Milliseconds()),
			ports.F("error", err.Error()))
		return nil, err
	}

	d.logger.Info("Historical data request completed",
		ports.F("provider", providerName),
		ports.F("lat", query.Latitude),
		ports.F("lon", query.Longitude),
		ports.F("event", "response"),
		ports.F("duration_ms", duration.Milliseconds()),
		ports.F("observations", len(window.Observations)))

	return window, nil
}

// GetProviderName returns the name of the wrapped provider
func (d *HistoricalProviderLoggingDecorator) GetProviderName() string {
	return d.provider.GetProviderName()
}
