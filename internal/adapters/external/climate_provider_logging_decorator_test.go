package external

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"climaterisk.app/internal/mocks"
	"climaterisk.app/internal/ports"
	"climaterisk.app/pkg/errors"
)

func TestHistoricalProviderLoggingDecorator(t *testing.T) {
	query := ports.HistoryQuery{Latitude: 10, Longitude: 20, StartYear: 1995, EndYear: 2025}

	t.Run("Success", func(t *testing.T) {
		provider := mocks.NewHistoricalDataProvider(t)
		provider.On("GetProviderName").Return("NASA POWER")
		provider.On("GetDailyHistory", mock.Anything, query).Return(&ports.ClimateWindowData{
			Observations: make([]ports.DailyObservationData, 3),
		}, nil)
		logger := &recordingLogger{}

		decorator := NewHistoricalProviderLoggingDecorator(provider, logger)
		window, err := decorator.GetDailyHistory(context.Background(), query)

		require.NoError(t, err)
		assert.Len(t, window.Observations, 3)
		require.Len(t, logger.entries, 2)
		assert.Equal(t, "request", logger.entries[0].fields["event"])
		assert.Equal(t, "response", logger.entries[1].fields["event"])
		assert.Equal(t, 3, logger.entries[1].fields["observations"])
		assert.Equal(t, "NASA POWER", decorator.GetProviderName())
	})

	t.Run("Failure", func(t *testing.T) {
		provider := mocks.NewHistoricalDataProvider(t)
		provider.On("GetProviderName").Return("NASA POWER")
		provider.On("GetDailyHistory", mock.Anything, query).Return(nil, errors.NewExternalAPIError("timeout", nil))
		logger := &recordingLogger{}

		decorator := NewHistoricalProviderLoggingDecorator(provider, logger)
		window, err := decorator.GetDailyHistory(context.Background(), query)

		assert.Nil(t, window)
		assert.True(t, errors.IsExternalAPIError(err))
		require.Len(t, logger.entries, 2)
		assert.Equal(t, "error", logger.entries[1].level)
		assert.IsType(t, int64(0), logger.entries[1].fields["duration_ms"])
	})
}

