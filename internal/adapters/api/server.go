// Package api provides HTTP adapters for the hexagonal architecture
// These adapters handle incoming HTTP requests and translate them to use cases
package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"climaterisk.app/internal/core/activity"
	"climaterisk.app/internal/core/climate"
	"climaterisk.app/internal/ports"
	"climaterisk.app/pkg/errors"
)

// HTTPServerAdapter implements HTTP server using Gin framework
type HTTPServerAdapter struct {
	router           *gin.Engine
	climateUseCase   ClimateUseCase
	activityUseCase  ActivityUseCase
	metricsCollector MetricsCollector
	healthChecker    ports.SystemHealthChecker
	metricsHandler   http.Handler
}

// Use case interfaces that the HTTP adapter depends on
type ClimateUseCase interface {
	GetClimatology(ctx context.Context, request climate.ClimatologyRequest) (*climate.ClimatologyResult, error)
}

type ActivityUseCase interface {
	ListProfiles(ctx context.Context) ([]activity.Profile, error)
	GetProfile(ctx context.Context, id string) (*activity.Profile, error)
	CreateProfile(ctx context.Context, params activity.CreateProfileParams) (*activity.Profile, error)
	UpdateProfile(ctx context.Context, id string, params activity.UpdateProfileParams) (*activity.Profile, error)
	DeleteProfile(ctx context.Context, id string) error
	AssessRisk(ctx context.Context, params activity.AssessParams) (*activity.Assessment, error)
	EvaluateRisk(ctx context.Context, factors activity.Factors, weights activity.Weights) (int, activity.RiskLevel, error)
}

type MetricsCollector interface {
	GetMetrics(ctx context.Context) (map[string]interface{}, error)
}

// ServerOptions represents options for creating the HTTP server
type ServerOptions struct {
	ClimateUseCase      ClimateUseCase
	ActivityUseCase     ActivityUseCase
	MetricsCollector    MetricsCollector
	SystemHealthChecker ports.SystemHealthChecker
	// MetricsHandler serves GET /metrics; defaults to the global Prometheus registry
	MetricsHandler http.Handler
}

// NewHTTPServerAdapter creates a new HTTP server adapter
func NewHTTPServerAdapter(opts ServerOptions) (*HTTPServerAdapter, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server options: %w", err)
	}
	if err := RegisterValidators(); err != nil {
		return nil, fmt.Errorf("register validators: %w", err)
	}

	metricsHandler := opts.MetricsHandler
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}

	server := &HTTPServerAdapter{
		router:           gin.Default(),
		climateUseCase:   opts.ClimateUseCase,
		activityUseCase:  opts.ActivityUseCase,
		metricsCollector: opts.MetricsCollector,
		healthChecker:    opts.SystemHealthChecker,
		metricsHandler:   metricsHandler,
	}

	server.setupRoutes()
	return server, nil
}

// Validate checks if all required dependencies are provided
func (opts *ServerOptions) Validate() error {
	if opts.ClimateUseCase == nil {
		return errors.NewValidationError("climate use case is required")
	}
	if opts.ActivityUseCase == nil {
		return errors.NewValidationError("activity use case is required")
	}
	if opts.MetricsCollector == nil {
		return errors.NewValidationError("metrics collector is required")
	}
	if opts.SystemHealthChecker == nil {
		return errors.NewValidationError("system health checker is required")
	}
	return nil
}

// setupRoutes configures all HTTP routes
func (s *HTTPServerAdapter) setupRoutes() {
	api := s.router.Group("/api")
	{
		api.GET("/climatology", s.getClimatology)

		activities := api.Group("/activities")
		activities.GET("", s.listActivities)
		activities.POST("", s.createActivity)
		activities.GET("/:id", s.getActivity)
		activities.PUT("/:id", s.updateActivity)
		activities.DELETE("/:id", s.deleteActivity)
		activities.POST("/:id/assess", s.assessActivity)

		api.POST("/risk", s.evaluateRisk)
		api.GET("/health", s.getHealth)
		api.GET("/metrics", s.getMetrics)
	}

	s.router.GET("/metrics", gin.WrapH(s.metricsHandler))
}

// GetRouter returns the router
func (s *HTTPServerAdapter) GetRouter() *gin.Engine {
	return s.router
}
