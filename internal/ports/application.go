package ports

// ApplicationPorts aggregates all ports for dependency injection
type ApplicationPorts struct {
	// Climate
	HistoricalProvider HistoricalDataProvider
	CurrentConditions  CurrentConditionsProvider
	ClimateCache       ClimateCache
	Geocoder           Geocoder

	// Activity
	ActivityRepository ActivityProfileRepository

	// Cache
	CacheProvider CacheProvider
	CacheMetrics  CacheMetrics

	// Infrastructure
	ConfigProvider ConfigProvider
	Logger         Logger
	Metrics        MetricsCollector
	Database       interface{}
}
