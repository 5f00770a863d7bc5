package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"climaterisk.app/internal/core/activity"
	"climaterisk.app/pkg/errors"
	"climaterisk.app/pkg/validation"
)

// WeightsPayload carries the four factor weights of a profile
type WeightsPayload struct {
	Hot   *float64 `json:"hot" binding:"required"`
	Cold  *float64 `json:"cold" binding:"required"`
	Windy *float64 `json:"windy" binding:"required"`
	Wet   *float64 `json:"wet" binding:"required"`
}

func (w *WeightsPayload) toDomain() activity.Weights {
	return activity.Weights{Hot: *w.Hot, Cold: *w.Cold, Windy: *w.Windy, Wet: *w.Wet}
}

// CreateActivityRequest represents the HTTP request for creating a profile
type CreateActivityRequest struct {
	Name        string         `json:"name" binding:"required,max=64"`
	Weights     WeightsPayload `json:"weights"`
	Description *string        `json:"description"`
	Icon        *string        `json:"icon"`
}

// UpdateActivityRequest represents the HTTP request for a partial profile update
type UpdateActivityRequest struct {
	Name        *string         `json:"name" binding:"omitempty,max=64"`
	Weights     *WeightsPayload `json:"weights"`
	Description *string         `json:"description"`
	Icon        *string         `json:"icon"`
}

// AssessRequest is the body of POST /api/activities/:id/assess
type AssessRequest struct {
	Lat  *float64 `json:"lat" binding:"required,latitude"`
	Lon  *float64 `json:"lon" binding:"required,longitude"`
	Date string   `json:"date" binding:"required,monthday"`
}

// ActivityResponse represents an activity profile in HTTP responses
type ActivityResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Weights     activity.Weights `json:"weights"`
	Description *string          `json:"description,omitempty"`
	Icon        *string          `json:"icon,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// AssessmentResponse represents the weighted risk of a profile
type AssessmentResponse struct {
	Activity    ActivityResponse    `json:"activity"`
	Factors     activity.Factors    `json:"factors"`
	Score       int                 `json:"score"`
	Level       activity.RiskLevel  `json:"level"`
	Climatology ClimatologyResponse `json:"climatology"`
}

// listActivities handles GET /api/activities requests
func (s *HTTPServerAdapter) listActivities(c *gin.Context) {
	profiles, err := s.activityUseCase.ListProfiles(c.Request.Context())
	if err != nil {
		slog.Error("List activities error", "error", err)
		s.handleError(c, err)
		return
	}

	response := make([]ActivityResponse, 0, len(profiles))
	for i := range profiles {
		response = append(response, newActivityResponse(&profiles[i]))
	}
	c.JSON(http.StatusOK, response)
}

// getActivity handles GET /api/activities/:id requests
func (s *HTTPServerAdapter) getActivity(c *gin.Context) {
	profile, err := s.activityUseCase.GetProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, newActivityResponse(profile))
}

// createActivity handles POST /api/activities requests
func (s *HTTPServerAdapter) createActivity(c *gin.Context) {
	var req CreateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Debug("Create activity binding error", "error", err)
		s.handleError(c, errors.NewValidationError(bindingErrorMessage(err)))
		return
	}

	profile, err := s.activityUseCase.CreateProfile(c.Request.Context(), activity.CreateProfileParams{
		Name:        req.Name,
		Weights:     req.Weights.toDomain(),
		Description: req.Description,
		Icon:        req.Icon,
	})
	if err != nil {
		slog.Error("Create activity error", "error", err, "name", req.Name)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newActivityResponse(profile))
}

// updateActivity handles PUT /api/activities/:id requests
func (s *HTTPServerAdapter) updateActivity(c *gin.Context) {
	var req UpdateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Debug("Update activity binding error", "error", err)
		s.handleError(c, errors.NewValidationError(bindingErrorMessage(err)))
		return
	}

	params := activity.UpdateProfileParams{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
	}
	if req.Weights != nil {
		weights := req.Weights.toDomain()
		params.Weights = &weights
	}

	profile, err := s.activityUseCase.UpdateProfile(c.Request.Context(), c.Param("id"), params)
	if err != nil {
		slog.Error("Update activity error", "error", err, "id", c.Param("id"))
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, newActivityResponse(profile))
}

// deleteActivity handles DELETE /api/activities/:id requests
func (s *HTTPServerAdapter) deleteActivity(c *gin.Context) {
	if err := s.activityUseCase.DeleteProfile(c.Request.Context(), c.Param("id")); err != nil {
		s.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// assessActivity handles POST /api/activities/:id/assess requests
func (s *HTTPServerAdapter) assessActivity(c *gin.Context) {
	var req AssessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Debug("Assess binding error", "error", err)
		s.handleError(c, errors.NewValidationError(bindingErrorMessage(err)))
		return
	}

	month, day, err := validation.ParseMonthDay(req.Date)
	if err != nil {
		s.handleError(c, errors.NewValidationError(err.Error()))
		return
	}

	assessment, err := s.activityUseCase.AssessRisk(c.Request.Context(), activity.AssessParams{
		ProfileID: c.Param("id"),
		Latitude:  *req.Lat,
		Longitude: *req.Lon,
		Month:     month,
		Day:       day,
	})
	if err != nil {
		slog.Error("Assess activity error", "error", err, "id", c.Param("id"))
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, AssessmentResponse{
		Activity:    newActivityResponse(&assessment.Profile),
		Factors:     assessment.Factors,
		Score:       assessment.Score,
		Level:       assessment.Level,
		Climatology: newClimatologyResponse(assessment.Climatology),
	})
}

func newActivityResponse(p *activity.Profile) ActivityResponse {
	return ActivityResponse{
		ID:          p.ID,
		Name:        p.Name,
		Weights:     p.Weights,
		Description: p.Description,
		Icon:        p.Icon,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
