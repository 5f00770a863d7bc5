package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"climaterisk.app/internal/core/activity"
)

func weightsBody(hot, cold, windy, wet float64) map[string]float64 {
	return map[string]float64{"hot": hot, "cold": cold, "windy": windy, "wet": wet}
}

func createActivity(t *testing.T, s *testServer, name string, weights map[string]float64) ActivityResponse {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/activities", map[string]interface{}{
		"name":        name,
		"weights":     weights,
		"description": "  test profile  ",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[ActivityResponse](t, w)
}

func TestActivityHandler_CreateAndGet(t *testing.T) {
	s := newTestServer(t)

	created := createActivity(t, s, "  Hiking ", weightsBody(0.9, 0.8, 0.4, 0.7))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Hiking", created.Name)
	assert.Equal(t, activity.Weights{Hot: 0.9, Cold: 0.8, Windy: 0.4, Wet: 0.7}, created.Weights)
	require.NotNil(t, created.Description)
	assert.Equal(t, "test profile", *created.Description)

	w := s.do(t, http.MethodGet, "/api/activities/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	fetched := decode[ActivityResponse](t, w)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, created.Weights, fetched.Weights)
}

func TestActivityHandler_Create_DuplicateName(t *testing.T) {
	s := newTestServer(t)
	createActivity(t, s, "Wedding", weightsBody(0.8, 0.6, 0.8, 1))

	w := s.do(t, http.MethodPost, "/api/activities", map[string]interface{}{
		"name":    "wedding",
		"weights": weightsBody(1, 1, 1, 1),
	})

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestActivityHandler_Create_Invalid(t *testing.T) {
	tests := []struct {
		name          string
		body          map[string]interface{}
		expectedError string
	}{
		{
			name:          "missing name",
			body:          map[string]interface{}{"weights": weightsBody(1, 1, 1, 1)},
			expectedError: "name is required",
		},
		{
			name:          "missing weight",
			body:          map[string]interface{}{"name": "Fishing", "weights": map[string]float64{"hot": 1, "cold": 1, "windy": 1}},
			expectedError: "wet is required",
		},
		{
			name:          "negative weight",
			body:          map[string]interface{}{"name": "Fishing", "weights": weightsBody(-1, 1, 1, 1)},
			expectedError: "hot weight must be between 0 and 10",
		},
		{
			name:          "weight above maximum",
			body:          map[string]interface{}{"name": "Fishing", "weights": weightsBody(1, 1, 11, 1)},
			expectedError: "windy weight must be between 0 and 10",
		},
		{
			name:          "blank name",
			body:          map[string]interface{}{"name": "   ", "weights": weightsBody(1, 1, 1, 1)},
			expectedError: "name cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)

			w := s.do(t, http.MethodPost, "/api/activities", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, decode[ErrorResponse](t, w).Error, tt.expectedError)
		})
	}
}

func TestActivityHandler_List(t *testing.T) {
	s := newTestServer(t)
	createActivity(t, s, "wedding", weightsBody(0.8, 0.6, 0.8, 1))
	createActivity(t, s, "Construction", weightsBody(0.9, 0.7, 0.8, 0.9))

	w := s.do(t, http.MethodGet, "/api/activities", nil)

	require.Equal(t, http.StatusOK, w.Code)
	profiles := decode[[]ActivityResponse](t, w)
	require.Len(t, profiles, 2)
	assert.Equal(t, "Construction", profiles[0].Name)
	assert.Equal(t, "wedding", profiles[1].Name)
}

func TestActivityHandler_List_Empty(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/activities", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestActivityHandler_UpdateAndDelete(t *testing.T) {
	s := newTestServer(t)
	created := createActivity(t, s, "Festival", weightsBody(0.7, 0.5, 0.6, 0.9))

	w := s.do(t, http.MethodPut, "/api/activities/"+created.ID, map[string]interface{}{
		"name":    "Music Festival",
		"weights": weightsBody(0.5, 0.5, 0.5, 1),
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[ActivityResponse](t, w)
	assert.Equal(t, "Music Festival", updated.Name)
	assert.Equal(t, 1.0, updated.Weights.Wet)
	assert.Equal(t, created.Description, updated.Description)

	w = s.do(t, http.MethodDelete, "/api/activities/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(t, http.MethodGet, "/api/activities/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodDelete, "/api/activities/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestActivityHandler_Update_RenameConflict(t *testing.T) {
	s := newTestServer(t)
	createActivity(t, s, "Hiking", weightsBody(0.9, 0.8, 0.4, 0.7))
	fishing := createActivity(t, s, "Fishing", weightsBody(0.6, 0.5, 0.9, 0.5))

	w := s.do(t, http.MethodPut, "/api/activities/"+fishing.ID, map[string]interface{}{"name": "HIKING"})

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestActivityHandler_Update_NotFound(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPut, "/api/activities/missing", map[string]interface{}{"name": "Ghost"})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestActivityHandler_Assess(t *testing.T) {
	s := newTestServer(t)
	s.provider.On("GetDailyHistory", mock.Anything, denverQuery).Return(julyFourthWindow(), nil).Once()
	heatOnly := createActivity(t, s, "Marathon", weightsBody(1, 0, 0, 0))

	w := s.do(t, http.MethodPost, "/api/activities/"+heatOnly.ID+"/assess", map[string]interface{}{
		"lat":  39.74,
		"lon":  -104.99,
		"date": "07-04",
	})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	response := decode[AssessmentResponse](t, w)
	assert.Equal(t, "Marathon", response.Activity.Name)
	assert.Equal(t, activity.Factors{Hot: 67}, response.Factors)
	assert.Equal(t, 67, response.Score)
	assert.Equal(t, activity.RiskHigh, response.Level)
	assert.Equal(t, "07-04", response.Climatology.Date)
	assert.True(t, response.Climatology.HistoricalDataAvailable)
}

func TestActivityHandler_Assess_Errors(t *testing.T) {
	s := newTestServer(t)
	created := createActivity(t, s, "Hiking", weightsBody(0.9, 0.8, 0.4, 0.7))

	w := s.do(t, http.MethodPost, "/api/activities/missing/assess", map[string]interface{}{
		"lat": 39.74, "lon": -104.99, "date": "07-04",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodPost, "/api/activities/"+created.ID+"/assess", map[string]interface{}{
		"lat": 39.74, "lon": -104.99, "date": "13-01",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/activities/"+created.ID+"/assess", map[string]interface{}{
		"lon": -104.99, "date": "07-04",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[ErrorResponse](t, w).Error, "lat is required")
}

func TestRiskHandler_EvaluateRisk(t *testing.T) {
	tests := []struct {
		name          string
		body          map[string]interface{}
		expectedCode  int
		expectedScore int
		expectedLevel activity.RiskLevel
	}{
		{
			name: "weighted mean",
			body: map[string]interface{}{
				"factors": map[string]float64{"hot": 20, "cold": 0, "windy": 0, "wet": 80},
				"weights": weightsBody(1, 0, 0, 1),
			},
			expectedCode:  http.StatusOK,
			expectedScore: 50,
			expectedLevel: activity.RiskMedium,
		},
		{
			name: "all weights zero",
			body: map[string]interface{}{
				"factors": map[string]float64{"hot": 90, "cold": 90, "windy": 90, "wet": 90},
				"weights": weightsBody(0, 0, 0, 0),
			},
			expectedCode:  http.StatusOK,
			expectedScore: 0,
			expectedLevel: activity.RiskLow,
		},
		{
			name: "high",
			body: map[string]interface{}{
				"factors": map[string]float64{"hot": 90, "cold": 10, "windy": 70, "wet": 100},
				"weights": weightsBody(1, 0, 1, 1),
			},
			expectedCode:  http.StatusOK,
			expectedScore: 87,
			expectedLevel: activity.RiskHigh,
		},
		{
			name: "negative weight",
			body: map[string]interface{}{
				"factors": map[string]float64{"hot": 10},
				"weights": weightsBody(-0.5, 1, 1, 1),
			},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "missing weights",
			body:         map[string]interface{}{"factors": map[string]float64{"hot": 10}},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)

			w := s.do(t, http.MethodPost, "/api/risk", tt.body)

			require.Equal(t, tt.expectedCode, w.Code, w.Body.String())
			if tt.expectedCode != http.StatusOK {
				return
			}
			response := decode[RiskResponse](t, w)
			assert.Equal(t, tt.expectedScore, response.Score)
			assert.Equal(t, tt.expectedLevel, response.Level)
		})
	}
}
