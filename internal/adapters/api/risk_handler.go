package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"climaterisk.app/internal/core/activity"
	"climaterisk.app/pkg/errors"
)

// RiskRequest is the body of POST /api/risk
type RiskRequest struct {
	Factors activity.Factors `json:"factors"`
	Weights WeightsPayload   `json:"weights"`
}

// RiskResponse holds a weighted risk score and its level
type RiskResponse struct {
	Score int                `json:"score"`
	Level activity.RiskLevel `json:"level"`
}

// evaluateRisk handles POST /api/risk requests
func (s *HTTPServerAdapter) evaluateRisk(c *gin.Context) {
	var req RiskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, errors.NewValidationError(bindingErrorMessage(err)))
		return
	}

	score, level, err := s.activityUseCase.EvaluateRisk(c.Request.Context(), req.Factors, req.Weights.toDomain())
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, RiskResponse{Score: score, Level: level})
}
