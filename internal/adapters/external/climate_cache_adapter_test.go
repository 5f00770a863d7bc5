package external

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"climaterisk.app/internal/ports"
	"climaterisk.app/pkg/errors"
)

func TestClimateCacheAdapter_RoundTrip(t *testing.T) {
	provider := NewMemoryCacheProvider(nil)
	adapter := NewClimateCacheAdapter(provider)
	ctx := context.Background()

	temp := 21.5
	window := &ports.ClimateWindowData{
		Latitude:  39.74,
		Longitude: -104.99,
		StartYear: 1995,
		EndYear:   2025,
		Source:    "NASA POWER",
		Observations: []ports.DailyObservationData{
			{Date: time.Date(2020, time.July, 4, 0, 0, 0, 0, time.UTC), MeanTemp: &temp},
		},
	}

	require.NoError(t, adapter.Set(ctx, "climate:39.74:-104.99:1995-2025", window, time.Hour))

	cached, err := adapter.Get(ctx, "climate:39.74:-104.99:1995-2025")
	require.NoError(t, err)
	assert.Equal(t, "NASA POWER", cached.Source)
	require.Len(t, cached.Observations, 1)
	obs := cached.Observations[0]
	assert.True(t, obs.Date.Equal(window.Observations[0].Date))
	require.NotNil(t, obs.MeanTemp)
	assert.Equal(t, 21.5, *obs.MeanTemp)
	assert.Nil(t, obs.WindSpeed)
	assert.Nil(t, obs.Precipitation)
}

func TestClimateCacheAdapter_Errors(t *testing.T) {
	provider := NewMemoryCacheProvider(nil)
	adapter := NewClimateCacheAdapter(provider)
	ctx := context.Background()

	_, err := adapter.Get(ctx, "missing")
	assert.True(t, errors.IsNotFoundError(err))

	assert.True(t, errors.IsValidationError(adapter.Set(ctx, "key", nil, time.Hour)))

	require.NoError(t, provider.Set(ctx, "corrupt", []byte("{not json"), time.Hour))
	_, err = adapter.Get(ctx, "corrupt")
	assert.True(t, errors.IsExternalAPIError(err))
}
