package activity

import (
	"fmt"
	"strings"
	"time"

	"climaterisk.app/internal/core/climate"
	"climaterisk.app/pkg/validation"
)

// MaxNameLength is the longest accepted profile name, in characters
const MaxNameLength = 64

// Weights expresses how strongly an activity is affected by each weather factor
type Weights struct {
	Hot   float64 `json:"hot"`
	Cold  float64 `json:"cold"`
	Windy float64 `json:"windy"`
	Wet   float64 `json:"wet"`
}

// Validate checks every weight is finite and within [0, maxWeight]
func (w Weights) Validate(maxWeight float64) error {
	for _, c := range []struct {
		name  string
		value float64
	}{
		{"hot", w.Hot},
		{"cold", w.Cold},
		{"windy", w.Windy},
		{"wet", w.Wet},
	} {
		if !validation.IsValidWeight(c.value, maxWeight) {
			return fmt.Errorf("%s weight must be between 0 and %g", c.name, maxWeight)
		}
	}
	return nil
}

// Sum returns the total of all four weights
func (w Weights) Sum() float64 {
	return w.Hot + w.Cold + w.Windy + w.Wet
}

// Factors are per-factor risk levels, nominally percentages in [0,100]
type Factors struct {
	Hot   float64 `json:"hot"`
	Cold  float64 `json:"cold"`
	Windy float64 `json:"windy"`
	Wet   float64 `json:"wet"`
}

// RiskLevel buckets a risk score
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Profile is a named set of weights
type Profile struct {
	ID          string
	Name        string
	Weights     Weights
	Description *string
	Icon        *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateProfileParams holds the input for a new profile
type CreateProfileParams struct {
	Name        string
	Weights     Weights
	Description *string
	Icon        *string
}

// IsValid validates profile creation input
func (p *CreateProfileParams) IsValid(maxWeight float64) error {
	if err := validateName(p.Name); err != nil {
		return err
	}
	return p.Weights.Validate(maxWeight)
}

// Normalize trims free-text fields
func (p *CreateProfileParams) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.Description = trimOptional(p.Description)
	p.Icon = trimOptional(p.Icon)
}

// UpdateProfileParams holds a partial profile update; nil fields are left unchanged
type UpdateProfileParams struct {
	Name        *string
	Weights     *Weights
	Description *string
	Icon        *string
}

// IsValid validates the fields present in the update
func (p *UpdateProfileParams) IsValid(maxWeight float64) error {
	if p.Name != nil {
		if err := validateName(*p.Name); err != nil {
			return err
		}
	}
	if p.Weights != nil {
		return p.Weights.Validate(maxWeight)
	}
	return nil
}

// AssessParams identifies a profile by ID or name, and the place and calendar day to assess
type AssessParams struct {
	ProfileID   string
	ProfileName string
	Latitude    float64
	Longitude   float64
	Month       int
	Day         int
}

// Assessment is the weighted risk of a profile at a place on a calendar day
type Assessment struct {
	Profile     Profile
	Factors     Factors
	Score       int
	Level       RiskLevel
	Climatology *climate.ClimatologyResult
}

func validateName(name string) error {
	trimmed, ok := validation.TrimAndValidate(name)
	if !ok {
		return fmt.Errorf("name cannot be empty")
	}
	if len([]rune(trimmed)) > MaxNameLength {
		return fmt.Errorf("name cannot exceed %d characters", MaxNameLength)
	}
	return nil
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
