// Package external provides adapters for external services:
// historical climate data, reverse geocoding and caches.
package external

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"

	"climaterisk.app/internal/ports"
	"climaterisk.app/pkg/errors"
)

const (
	nasaPowerName       = "NASA POWER"
	nasaPowerParameters = "T2M,PRECTOTCORR,T2M_MAX,T2M_MIN,WS2M,RH2M"
	nasaPowerFillValue  = -999.0
	nasaPowerDateLayout = "20060102"
)

// HTTPClient interface for HTTP requests (for testing)
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// NASAPowerProviderAdapter implements HistoricalDataProvider for the NASA POWER daily point API
type NASAPowerProviderAdapter struct {
	baseURL    string
	community  string
	client     HTTPClient
	newBackOff func() backoff.BackOff
	logger     ports.Logger
}

// NASAPowerProviderParams holds parameters for creating the NASA POWER provider
type NASAPowerProviderParams struct {
	BaseURL        string
	Community      string
	RequestTimeout time.Duration
	MaxRetryTime   time.Duration
	Client         HTTPClient              // optional
	NewBackOff     func() backoff.BackOff // optional, overrides MaxRetryTime
	Logger         ports.Logger
}

// nasaPowerResponse is the subset of the GeoJSON response we read
type nasaPowerResponse struct {
	Properties struct {
		Parameter map[string]map[string]*float64 `json:"parameter"`
	} `json:"properties"`
}

// NewNASAPowerProviderAdapter creates a new NASA POWER provider adapter
func NewNASAPowerProviderAdapter(params NASAPowerProviderParams) *NASAPowerProviderAdapter {
	client := params.Client
	if client == nil {
		client = &http.Client{Timeout: params.RequestTimeout}
	}

	community := params.Community
	if community == "" {
		community = "SB"
	}

	newBackOff := params.NewBackOff
	if newBackOff == nil {
		maxRetry := params.MaxRetryTime
		newBackOff = func() backoff.BackOff {
			if maxRetry <= 0 {
				return &backoff.StopBackOff{}
			}
			bo := backoff.NewExponentialBackOff()
			bo.MaxElapsedTime = maxRetry
			return bo
		}
	}

	return &NASAPowerProviderAdapter{
		baseURL:    params.BaseURL,
		community:  community,
		client:     client,
		newBackOff: newBackOff,
		logger:     params.Logger,
	}
}

// GetDailyHistory fetches every day from Jan 1 of StartYear to Dec 31 of EndYear
func (p *NASAPowerProviderAdapter) GetDailyHistory(ctx context.Context, query ports.HistoryQuery) (*ports.ClimateWindowData, error) {
	if query.StartYear > query.EndYear {
		return nil, errors.NewValidationError("start year cannot be after end year")
	}

	endpoint, err := p.buildURL(query)
	if err != nil {
		return nil, errors.NewConfigurationError("invalid NASA POWER base URL", err)
	}

	var body []byte
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := p.client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			return fmt.Errorf("call NASA POWER: %w", err)
		}
		defer func() {
			if closeErr := resp.Body.Close(); closeErr != nil {
				p.logger.Warn("Failed to close NASA POWER response body", ports.F("error", closeErr))
			}
		}()

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
			return fmt.Errorf("NASA POWER returned status %d", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			return backoff.Permanent(fmt.Errorf("NASA POWER returned status %d: %s", resp.StatusCode, string(b)))
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read NASA POWER response: %w", err)
		}
		return nil
	}

	if err := backoff.Retry(operation, backoff.WithContext(p.newBackOff(), ctx)); err != nil {
		return nil, errors.NewExternalAPIError("failed to fetch NASA POWER history", err)
	}

	var apiResp nasaPowerResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, errors.NewExternalAPIError("failed to decode NASA POWER response", err)
	}

	return &ports.ClimateWindowData{
		Latitude:     query.Latitude,
		Longitude:    query.Longitude,
		StartYear:    query.StartYear,
		EndYear:      query.EndYear,
		Source:       nasaPowerName,
		Observations: observationsFromParameters(apiResp.Properties.Parameter),
	}, nil
}

// GetProviderName returns the name of this provider
func (p *NASAPowerProviderAdapter) GetProviderName() string {
	return nasaPowerName
}

func (p *NASAPowerProviderAdapter) buildURL(query ports.HistoryQuery) (string, error) {
	u, err := url.Parse(p.baseURL)
	if err != nil {
		return "", err
	}

	q := u.Query()
	q.Set("parameters", nasaPowerParameters)
	q.Set("community", p.community)
	q.Set("longitude", strconv.FormatFloat(query.Longitude, 'f', -1, 64))
	q.Set("latitude", strconv.FormatFloat(query.Latitude, 'f', -1, 64))
	q.Set("start", fmt.Sprintf("%04d0101", query.StartYear))
	q.Set("end", fmt.Sprintf("%04d1231", query.EndYear))
	q.Set("format", "JSON")
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// observationsFromParameters pivots per-parameter date maps into date-ordered daily observations.
// Keys that are not YYYYMMDD dates are skipped; fill values and nulls become missing readings.
func observationsFromParameters(params map[string]map[string]*float64) []ports.DailyObservationData {
	byDate := make(map[string]*ports.DailyObservationData)
	for _, series := range params {
		for key := range series {
			if len(key) != len(nasaPowerDateLayout) {
				continue
			}
			if _, ok := byDate[key]; ok {
				continue
			}
			date, err := time.Parse(nasaPowerDateLayout, key)
			if err != nil {
				continue
			}
			byDate[key] = &ports.DailyObservationData{Date: date}
		}
	}

	keys := make([]string, 0, len(byDate))
	for key, obs := range byDate {
		keys = append(keys, key)
		obs.MeanTemp = reading(params["T2M"], key)
		obs.MaxTemp = reading(params["T2M_MAX"], key)
		obs.MinTemp = reading(params["T2M_MIN"], key)
		obs.WindSpeed = reading(params["WS2M"], key)
		obs.Humidity = reading(params["RH2M"], key)
		obs.Precipitation = reading(params["PRECTOTCORR"], key)
	}
	sort.Strings(keys)

	observations := make([]ports.DailyObservationData, 0, len(keys))
	for _, key := range keys {
		observations = append(observations, *byDate[key])
	}
	return observations
}

func reading(series map[string]*float64, key string) *float64 {
	v, ok := series[key]
	if !ok || v == nil || *v == nasaPowerFillValue {
		return nil
	}
	value := *v
	return &value
}
