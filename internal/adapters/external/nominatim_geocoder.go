package external

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/text/language"

	"climaterisk.app/internal/ports"
	"climaterisk.app/pkg/errors"
)

// NominatimGeocoderAdapter implements Geocoder with the OpenStreetMap Nominatim reverse endpoint
type NominatimGeocoderAdapter struct {
	baseURL   string
	userAgent string
	lang      language.Tag
	client    HTTPClient
	logger    ports.Logger
}

// NominatimGeocoderParams holds parameters for creating the Nominatim geocoder
type NominatimGeocoderParams struct {
	BaseURL   string
	UserAgent string
	Language  language.Tag
	Client    HTTPClient // optional
	Logger    ports.Logger
}

type nominatimReverseResult struct {
	DisplayName string `json:"display_name"`
	Address     struct {
		City    string `json:"city"`
		Town    string `json:"town"`
		Village string `json:"village"`
	} `json:"address"`
	Error string `json:"error"`
}

// NewNominatimGeocoderAdapter creates a new Nominatim geocoder adapter
func NewNominatimGeocoderAdapter(params NominatimGeocoderParams) *NominatimGeocoderAdapter {
	client := params.Client
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	return &NominatimGeocoderAdapter{
		baseURL:   strings.TrimRight(params.BaseURL, "/"),
		userAgent: params.UserAgent,
		lang:      params.Language,
		client:    client,
		logger:    params.Logger,
	}
}

// ReverseGeocode returns the city, town or village at a coordinate pair, falling back to
// the first component of the display name
func (g *NominatimGeocoderAdapter) ReverseGeocode(ctx context.Context, latitude, longitude float64) (string, error) {
	query := url.Values{}
	query.Set("format", "jsonv2")
	query.Set("lat", fmt.Sprintf("%f", latitude))
	query.Set("lon", fmt.Sprintf("%f", longitude))
	if g.lang != language.Und {
		query.Set("accept-language", g.lang.String())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/reverse?"+query.Encode(), nil)
	if err != nil {
		return "", errors.NewExternalAPIError("failed to build Nominatim request", err)
	}
	req.Header.Set("User-Agent", g.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", errors.NewExternalAPIError("failed to call Nominatim", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			g.logger.Warn("Failed to close Nominatim response body", ports.F("error", closeErr))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return "", errors.NewExternalAPIError(fmt.Sprintf("Nominatim returned status %d", resp.StatusCode), nil)
	}

	var result nominatimReverseResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", errors.NewExternalAPIError("failed to decode Nominatim response", err)
	}
	if result.Error != "" {
		return "", errors.NewNotFoundError("no place found: " + result.Error)
	}

	label := placeLabel(result)
	if label == "" {
		return "", errors.NewNotFoundError("no place name at coordinates")
	}
	return label, nil
}

func placeLabel(result nominatimReverseResult) string {
	switch {
	case result.Address.City != "":
		return result.Address.City
	case result.Address.Town != "":
		return result.Address.Town
	case result.Address.Village != "":
		return result.Address.Village
	}
	first, _, _ := strings.Cut(result.DisplayName, ",")
	return strings.TrimSpace(first)
}
