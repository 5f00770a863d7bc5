// Package mocks provides testify mocks for the interfaces in internal/ports.
//
// Constructors register a cleanup that asserts every expectation was met.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"climaterisk.app/internal/ports"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

func register(m *mock.Mock, t testingT) {
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
}

// HistoricalDataProvider mocks ports.HistoricalDataProvider
type HistoricalDataProvider struct {
	mock.Mock
}

func NewHistoricalDataProvider(t testingT) *HistoricalDataProvider {
	m := &HistoricalDataProvider{}
	register(&m.Mock, t)
	return m
}

func (m *HistoricalDataProvider) GetDailyHistory(ctx context.Context, query ports.HistoryQuery) (*ports.ClimateWindowData, error) {
	args := m.Called(ctx, query)
	data, _ := args.Get(0).(*ports.ClimateWindowData)
	return data, args.Error(1)
}

func (m *HistoricalDataProvider) GetProviderName() string {
	args := m.Called()
	return args.String(0)
}

// CurrentConditionsProvider mocks ports.CurrentConditionsProvider
type CurrentConditionsProvider struct {
	mock.Mock
}

func NewCurrentConditionsProvider(t testingT) *CurrentConditionsProvider {
	m := &CurrentConditionsProvider{}
	register(&m.Mock, t)
	return m
}

func (m *CurrentConditionsProvider) GetCurrentConditions(ctx context.Context, latitude, longitude float64) (*ports.CurrentConditionsData, error) {
	args := m.Called(ctx, latitude, longitude)
	data, _ := args.Get(0).(*ports.CurrentConditionsData)
	return data, args.Error(1)
}

func (m *CurrentConditionsProvider) GetProviderName() string {
	args := m.Called()
	return args.String(0)
}

// ClimateCache mocks ports.ClimateCache
type ClimateCache struct {
	mock.Mock
}

func NewClimateCache(t testingT) *ClimateCache {
	m := &ClimateCache{}
	register(&m.Mock, t)
	return m
}

func (m *ClimateCache) Get(ctx context.Context, key string) (*ports.ClimateWindowData, error) {
	args := m.Called(ctx, key)
	data, _ := args.Get(0).(*ports.ClimateWindowData)
	return data, args.Error(1)
}

func (m *ClimateCache) Set(ctx context.Context, key string, window *ports.ClimateWindowData, ttl time.Duration) error {
	args := m.Called(ctx, key, window, ttl)
	return args.Error(0)
}

// Geocoder mocks ports.Geocoder
type Geocoder struct {
	mock.Mock
}

func NewGeocoder(t testingT) *Geocoder {
	m := &Geocoder{}
	register(&m.Mock, t)
	return m
}

func (m *Geocoder) ReverseGeocode(ctx context.Context, latitude, longitude float64) (string, error) {
	args := m.Called(ctx, latitude, longitude)
	return args.String(0), args.Error(1)
}

// ActivityProfileRepository mocks ports.ActivityProfileRepository
type ActivityProfileRepository struct {
	mock.Mock
}

func NewActivityProfileRepository(t testingT) *ActivityProfileRepository {
	m := &ActivityProfileRepository{}
	register(&m.Mock, t)
	return m
}

func (m *ActivityProfileRepository) Save(ctx context.Context, profile *ports.ActivityProfileData) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *ActivityProfileRepository) FindByID(ctx context.Context, id string) (*ports.ActivityProfileData, error) {
	args := m.Called(ctx, id)
	data, _ := args.Get(0).(*ports.ActivityProfileData)
	return data, args.Error(1)
}

func (m *ActivityProfileRepository) FindByName(ctx context.Context, name string) (*ports.ActivityProfileData, error) {
	args := m.Called(ctx, name)
	data, _ := args.Get(0).(*ports.ActivityProfileData)
	return data, args.Error(1)
}

func (m *ActivityProfileRepository) List(ctx context.Context) ([]*ports.ActivityProfileData, error) {
	args := m.Called(ctx)
	data, _ := args.Get(0).([]*ports.ActivityProfileData)
	return data, args.Error(1)
}

func (m *ActivityProfileRepository) Update(ctx context.Context, profile *ports.ActivityProfileData) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *ActivityProfileRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *ActivityProfileRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	n, _ := args.Get(0).(int64)
	return n, args.Error(1)
}

// ConfigProvider mocks ports.ConfigProvider
type ConfigProvider struct {
	mock.Mock
}

func NewConfigProvider(t testingT) *ConfigProvider {
	m := &ConfigProvider{}
	register(&m.Mock, t)
	return m
}

func (m *ConfigProvider) GetClimateConfig() ports.ClimateConfig {
	return m.Called().Get(0).(ports.ClimateConfig)
}

func (m *ConfigProvider) GetActivityConfig() ports.ActivityConfig {
	return m.Called().Get(0).(ports.ActivityConfig)
}

func (m *ConfigProvider) GetServerConfig() ports.ServerConfig {
	return m.Called().Get(0).(ports.ServerConfig)
}

func (m *ConfigProvider) GetDatabaseConfig() ports.DatabaseConfig {
	return m.Called().Get(0).(ports.DatabaseConfig)
}

func (m *ConfigProvider) GetCacheConfig() ports.CacheConfig {
	return m.Called().Get(0).(ports.CacheConfig)
}

// MetricsCollector mocks ports.MetricsCollector
type MetricsCollector struct {
	mock.Mock
}

func NewMetricsCollector(t testingT) *MetricsCollector {
	m := &MetricsCollector{}
	register(&m.Mock, t)
	return m
}

func (m *MetricsCollector) RecordCacheHit(ctx context.Context) {
	m.Called(ctx)
}

func (m *MetricsCollector) RecordCacheMiss(ctx context.Context) {
	m.Called(ctx)
}

func (m *MetricsCollector) RecordProviderCall(ctx context.Context, provider string, success bool, duration time.Duration) {
	m.Called(ctx, provider, success, duration)
}

func (m *MetricsCollector) RecordRiskAssessment(ctx context.Context, level string) {
	m.Called(ctx, level)
}
