package climate

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"climaterisk.app/internal/ports"
	"climaterisk.app/pkg/errors"
)

type UseCase struct {
	provider ports.HistoricalDataProvider
	current  ports.CurrentConditionsProvider
	cache    ports.ClimateCache
	geocoder ports.Geocoder
	config   ports.ConfigProvider
	logger   ports.Logger
	metrics  ports.MetricsCollector
	now      func() time.Time
}

type UseCaseDependencies struct {
	Provider ports.HistoricalDataProvider
	Current  ports.CurrentConditionsProvider // optional
	Cache    ports.ClimateCache
	Geocoder ports.Geocoder // optional
	Config   ports.ConfigProvider
	Logger   ports.Logger
	Metrics  ports.MetricsCollector
	Clock    func() time.Time // optional, defaults to time.Now
}

func NewUseCase(deps UseCaseDependencies) (*UseCase, error) {
	if deps.Provider == nil {
		return nil, errors.NewValidationError("historical data provider is required")
	}
	if deps.Cache == nil {
		return nil, errors.NewValidationError("cache is required")
	}
	if deps.Config == nil {
		return nil, errors.NewValidationError("config is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}
	if deps.Metrics == nil {
		return nil, errors.NewValidationError("metrics is required")
	}

	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}

	return &UseCase{
		provider: deps.Provider,
		current:  deps.Current,
		cache:    deps.Cache,
		geocoder: deps.Geocoder,
		config:   deps.Config,
		logger:   deps.Logger,
		metrics:  deps.Metrics,
		now:      clock,
	}, nil
}

// GetClimatology builds the climatology report and alerts for one calendar day at a location
func (uc *UseCase) GetClimatology(ctx context.Context, request ClimatologyRequest) (*ClimatologyResult, error) {
	if err := request.IsValid(); err != nil {
		return nil, errors.NewValidationError("invalid climatology request: " + err.Error())
	}
	request.NormalizeCoordinates()

	now := uc.now()
	cfg := uc.config.GetClimateConfig()
	query := ports.HistoryQuery{
		Latitude:  request.Latitude,
		Longitude: request.Longitude,
		EndYear:   now.Year() - 1,
	}
	query.StartYear = query.EndYear - cfg.WindowYears

	uc.logger.Debug("Getting climatology",
		ports.F("lat", query.Latitude),
		ports.F("lon", query.Longitude),
		ports.F("month", request.Month),
		ports.F("day", request.Day))

	var (
		window    Window
		source    string
		available bool
		current   *CurrentConditions
		location  = FallbackLabel(request.Latitude, request.Longitude)
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		window, source, err = uc.loadWindow(gctx, query)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			uc.logger.Warn("Historical data unavailable, using empty window",
				ports.F("lat", query.Latitude),
				ports.F("lon", query.Longitude),
				ports.F("error", err))
			window = Window{Latitude: query.Latitude, Longitude: query.Longitude, StartYear: query.StartYear, EndYear: query.EndYear}
			source = uc.provider.GetProviderName()
			return nil
		}
		available = true
		return nil
	})
	if uc.geocoder != nil {
		g.Go(func() error {
			label, err := uc.geocoder.ReverseGeocode(gctx, request.Latitude, request.Longitude)
			if err != nil || label == "" {
				uc.logger.Debug("Reverse geocoding failed", ports.F("error", err))
				return nil
			}
			location = label
			return nil
		})
	}
	if uc.current != nil {
		g.Go(func() error {
			current = uc.loadCurrent(gctx, request.Latitude, request.Longitude)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("get climatology: %w", err)
	}

	report := Aggregate(window, request.Month, request.Day)
	report.DataSource = DataSourceLabel(source, cfg.WindowYears, available)

	return &ClimatologyResult{
		Location:                location,
		Latitude:                request.Latitude,
		Longitude:               request.Longitude,
		Month:                   request.Month,
		Day:                     request.Day,
		HistoricalDataAvailable: available,
		Report:                  report,
		Current:                 current,
		Alerts:                  DeriveAlerts(report, location, now),
	}, nil
}

// CacheKey returns the cache key of a historical window
func CacheKey(query ports.HistoryQuery) string {
	return fmt.Sprintf("climate:%.2f:%.2f:%d-%d", query.Latitude, query.Longitude, query.StartYear, query.EndYear)
}

// FallbackLabel is the location label used when no place name is known
func FallbackLabel(latitude, longitude float64) string {
	return fmt.Sprintf("%.2f, %.2f", latitude, longitude)
}

// DataSourceLabel describes the provenance of a report
func DataSourceLabel(source string, years int, available bool) string {
	if !available {
		return source + " (unavailable)"
	}
	return fmt.Sprintf("%s (%d years)", source, years)
}

func (uc *UseCase) loadWindow(ctx context.Context, query ports.HistoryQuery) (Window, string, error) {
	cfg := uc.config.GetClimateConfig()
	if !cfg.EnableCache {
		return uc.loadFromProvider(ctx, query)
	}

	cacheKey := CacheKey(query)
	cached, err := uc.cache.Get(ctx, cacheKey)
	if err == nil && cached != nil {
		uc.metrics.RecordCacheHit(ctx)
		uc.logger.Debug("Climate window found in cache", ports.F("key", cacheKey))
		return convertFromPortsWindow(cached), cached.Source, nil
	}
	uc.metrics.RecordCacheMiss(ctx)

	window, source, err := uc.loadFromProvider(ctx, query)
	if err != nil {
		return Window{}, "", err
	}
	if window.IsEmpty() {
		return window, source, nil
	}

	if cacheErr := uc.cache.Set(ctx, cacheKey, convertToPortsWindow(window, source), cfg.CacheTTL); cacheErr != nil {
		uc.logger.Warn("Failed to cache climate window",
			ports.F("key", cacheKey),
			ports.F("error", cacheErr))
	}
	return window, source, nil
}

func (uc *UseCase) loadFromProvider(ctx context.Context, query ports.HistoryQuery) (Window, string, error) {
	start := time.Now()
	data, err := uc.provider.GetDailyHistory(ctx, query)
	uc.metrics.RecordProviderCall(ctx, uc.provider.GetProviderName(), err == nil, time.Since(start))
	if err != nil {
		return Window{}, "", errors.NewExternalAPIError("historical data provider failed", err)
	}
	if data == nil {
		return Window{}, "", errors.NewExternalAPIError("historical data provider returned no data", nil)
	}

	source := data.Source
	if source == "" {
		source = uc.provider.GetProviderName()
	}
	return convertFromPortsWindow(data), source, nil
}

// loadCurrent returns nil when the live provider fails
func (uc *UseCase) loadCurrent(ctx context.Context, latitude, longitude float64) *CurrentConditions {
	name := uc.current.GetProviderName()
	start := time.Now()
	data, err := uc.current.GetCurrentConditions(ctx, latitude, longitude)
	uc.metrics.RecordProviderCall(ctx, name, err == nil && data != nil, time.Since(start))
	if err != nil || data == nil {
		uc.logger.Warn("Current conditions unavailable",
			ports.F("lat", latitude),
			ports.F("lon", longitude),
			ports.F("error", err))
		return nil
	}

	current := convertFromPortsCurrent(data)
	current.Source = name
	return &current
}

func convertFromPortsCurrent(data *ports.CurrentConditionsData) CurrentConditions {
	var uv float64
	if data.UVIndex != nil {
		uv = *data.UVIndex
	}
	return CurrentConditions{
		ObservedAt:    data.Time,
		TempC:         data.Temperature,
		TempF:         CelsiusToFahrenheit(data.Temperature),
		Condition:     WeatherCondition(data.WeatherCode),
		WindKPH:       data.WindSpeed,
		WindDegree:    data.WindDirection,
		WindDirection: WindDirection(data.WindDirection),
		PressureMB:    data.Pressure,
		Humidity:      data.Humidity,
		UV:            uv,
	}
}

func convertFromPortsWindow(data *ports.ClimateWindowData) Window {
	observations := make([]DailyObservation, 0, len(data.Observations))
	for _, o := range data.Observations {
		observations = append(observations, DailyObservation{
			Date:          o.Date,
			MeanTemp:      o.MeanTemp,
			MaxTemp:       o.MaxTemp,
			MinTemp:       o.MinTemp,
			WindSpeed:     o.WindSpeed,
			Humidity:      o.Humidity,
			Precipitation: o.Precipitation,
		})
	}
	return Window{
		Latitude:     data.Latitude,
		Longitude:    data.Longitude,
		StartYear:    data.StartYear,
		EndYear:      data.EndYear,
		Observations: observations,
	}
}

func convertToPortsWindow(window Window, source string) *ports.ClimateWindowData {
	observations := make([]ports.DailyObservationData, 0, len(window.Observations))
	for _, o := range window.Observations {
		observations = append(observations, ports.DailyObservationData{
			Date:          o.Date,
			MeanTemp:      o.MeanTemp,
			MaxTemp:       o.MaxTemp,
			MinTemp:       o.MinTemp,
			WindSpeed:     o.WindSpeed,
			Humidity:      o.Humidity,
			Precipitation: o.Precipitation,
		})
	}
	return &ports.ClimateWindowData{
		Latitude:     window.Latitude,
		Longitude:    window.Longitude,
		StartYear:    window.StartYear,
		EndYear:      window.EndYear,
		Source:       source,
		Observations: observations,
	}
}
