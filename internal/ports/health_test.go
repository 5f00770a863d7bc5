package ports

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOverallStatus(t *testing.T) {
	tests := []struct {
		name     string
		statuses []string
		expected string
	}{
		{name: "empty", expected: StatusHealthy},
		{name: "all healthy", statuses: []string{StatusHealthy, StatusHealthy}, expected: StatusHealthy},
		{name: "degraded", statuses: []string{StatusHealthy, StatusDegraded}, expected: StatusDegraded},
		{name: "unhealthy wins", statuses: []string{StatusDegraded, StatusUnhealthy, StatusHealthy}, expected: StatusUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := make(map[string]HealthStatus)
			for i, s := range tt.statuses {
				results[string(rune('a'+i))] = HealthStatus{Status: s}
			}
			assert.Equal(t, tt.expected, OverallStatus(results))
		})
	}
}
