package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"climaterisk.app/internal/core/climate"
	"climaterisk.app/pkg/errors"
	"climaterisk.app/pkg/validation"
)

// ClimatologyQuery is the query string of GET /api/climatology
type ClimatologyQuery struct {
	Lat  *float64 `form:"lat" binding:"required,latitude"`
	Lon  *float64 `form:"lon" binding:"required,longitude"`
	Date string   `form:"date" binding:"required,monthday"`
}

// ClimatologyResponse represents the HTTP response for a calendar day climatology
type ClimatologyResponse struct {
	Location                string                     `json:"location"`
	Latitude                float64                    `json:"latitude"`
	Longitude               float64                    `json:"longitude"`
	Date                    string                     `json:"date"`
	HistoricalDataAvailable bool                       `json:"historical_data_available"`
	Report                  climate.Report             `json:"report"`
	Current                 *climate.CurrentConditions `json:"current"`
	Alerts                  []climate.Alert            `json:"alerts"`
}

// getClimatology handles GET /api/climatology requests
func (s *HTTPServerAdapter) getClimatology(c *gin.Context) {
	var query ClimatologyQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		slog.Debug("Climatology query binding error", "error", err)
		s.handleError(c, errors.NewValidationError(bindingErrorMessage(err)))
		return
	}

	month, day, err := validation.ParseMonthDay(query.Date)
	if err != nil {
		s.handleError(c, errors.NewValidationError(err.Error()))
		return
	}

	request := climate.ClimatologyRequest{
		Latitude:  *query.Lat,
		Longitude: *query.Lon,
		Month:     month,
		Day:       day,
	}
	result, err := s.climateUseCase.GetClimatology(c.Request.Context(), request)
	if err != nil {
		slog.Error("Climatology use case error", "error", err, "lat", request.Latitude, "lon", request.Longitude, "date", query.Date)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, newClimatologyResponse(result))
}

func newClimatologyResponse(result *climate.ClimatologyResult) ClimatologyResponse {
	alerts := result.Alerts
	if alerts == nil {
		alerts = []climate.Alert{}
	}
	return ClimatologyResponse{
		Location:                result.Location,
		Latitude:                result.Latitude,
		Longitude:               result.Longitude,
		Date:                    result.DateLabel(),
		HistoricalDataAvailable: result.HistoricalDataAvailable,
		Report:                  result.Report,
		Current:                 result.Current,
		Alerts:                  alerts,
	}
}
