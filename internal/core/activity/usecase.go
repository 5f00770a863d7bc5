package activity

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"climaterisk.app/internal/core/climate"
	"climaterisk.app/internal/ports"
	"climaterisk.app/pkg/errors"
)

// ClimatologyService provides the climatology a risk assessment is based on
type ClimatologyService interface {
	GetClimatology(ctx context.Context, request climate.ClimatologyRequest) (*climate.ClimatologyResult, error)
}

type UseCase struct {
	repo        ports.ActivityProfileRepository
	climatology ClimatologyService
	config      ports.ConfigProvider
	logger      ports.Logger
	metrics     ports.MetricsCollector
}

type UseCaseDependencies struct {
	Repository  ports.ActivityProfileRepository
	Climatology ClimatologyService
	Config      ports.ConfigProvider
	Logger      ports.Logger
	Metrics     ports.MetricsCollector
}

func NewUseCase(deps UseCaseDependencies) (*UseCase, error) {
	if deps.Repository == nil {
		return nil, errors.NewValidationError("activity profile repository is required")
	}
	if deps.Climatology == nil {
		return nil, errors.NewValidationError("climatology service is required")
	}
	if deps.Config == nil {
		return nil, errors.NewValidationError("config is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}
	if deps.Metrics == nil {
		return nil, errors.NewValidationError("metrics is required")
	}

	return &UseCase{
		repo:        deps.Repository,
		climatology: deps.Climatology,
		config:      deps.Config,
		logger:      deps.Logger,
		metrics:     deps.Metrics,
	}, nil
}

// DefaultProfiles are seeded into an empty store
func DefaultProfiles() []CreateProfileParams {
	text := func(s string) *string { return &s }
	return []CreateProfileParams{
		{
			Name:        "Hiking",
			Weights:     Weights{Hot: 0.9, Cold: 0.8, Windy: 0.4, Wet: 0.7},
			Description: text("High sensitivity to temperature extremes and precipitation"),
			Icon:        text("SunIcon"),
		},
		{
			Name:        "Wedding",
			Weights:     Weights{Hot: 0.8, Cold: 0.6, Windy: 0.8, Wet: 1.0},
			Description: text("Critical sensitivity to precipitation, high sensitivity to wind"),
			Icon:        text("CloudRainIcon"),
		},
		{
			Name:        "Fishing",
			Weights:     Weights{Hot: 0.6, Cold: 0.5, Windy: 0.9, Wet: 0.5},
			Description: text("Extremely sensitive to wind conditions for casting and boat control"),
			Icon:        text("WindIcon"),
		},
		{
			Name:        "Construction",
			Weights:     Weights{Hot: 0.9, Cold: 0.7, Windy: 0.8, Wet: 0.9},
			Description: text("High sensitivity to all conditions for worker safety"),
			Icon:        text("AlertIcon"),
		},
		{
			Name:        "Festival",
			Weights:     Weights{Hot: 0.7, Cold: 0.5, Windy: 0.6, Wet: 0.9},
			Description: text("Critical precipitation sensitivity, moderate temperature tolerance"),
			Icon:        text("SnowIcon"),
		},
	}
}

func (uc *UseCase) ListProfiles(ctx context.Context) ([]Profile, error) {
	data, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list activity profiles: %w", err)
	}

	profiles := make([]Profile, 0, len(data))
	for _, d := range data {
		profiles = append(profiles, convertFromPortsProfile(d))
	}
	return profiles, nil
}

func (uc *UseCase) GetProfile(ctx context.Context, id string) (*Profile, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errors.NewValidationError("profile id is required")
	}

	data, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	profile := convertFromPortsProfile(data)
	return &profile, nil
}

func (uc *UseCase) CreateProfile(ctx context.Context, params CreateProfileParams) (*Profile, error) {
	params.Normalize()
	if err := params.IsValid(uc.maxWeight()); err != nil {
		return nil, errors.NewValidationError("invalid activity profile: " + err.Error())
	}

	if err := uc.ensureNameAvailable(ctx, params.Name, ""); err != nil {
		return nil, err
	}

	now := time.Now()
	data := &ports.ActivityProfileData{
		ID:          uuid.New().String(),
		Name:        params.Name,
		HotWeight:   params.Weights.Hot,
		ColdWeight:  params.Weights.Cold,
		WindyWeight: params.Weights.Windy,
		WetWeight:   params.Weights.Wet,
		Description: params.Description,
		Icon:        params.Icon,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Save(ctx, data); err != nil {
		return nil, fmt.Errorf("save activity profile: %w", err)
	}

	uc.logger.Info("Activity profile created",
		ports.F("id", data.ID),
		ports.F("name", data.Name))

	profile := convertFromPortsProfile(data)
	return &profile, nil
}

func (uc *UseCase) UpdateProfile(ctx context.Context, id string, params UpdateProfileParams) (*Profile, error) {
	if params.Name != nil {
		trimmed := strings.TrimSpace(*params.Name)
		params.Name = &trimmed
	}
	if err := params.IsValid(uc.maxWeight()); err != nil {
		return nil, errors.NewValidationError("invalid activity profile: " + err.Error())
	}

	existing, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Name != nil && !strings.EqualFold(*params.Name, existing.Name) {
		if err := uc.ensureNameAvailable(ctx, *params.Name, existing.ID); err != nil {
			return nil, err
		}
	}

	if params.Name != nil {
		existing.Name = *params.Name
	}
	if params.Weights != nil {
		existing.HotWeight = params.Weights.Hot
		existing.ColdWeight = params.Weights.Cold
		existing.WindyWeight = params.Weights.Windy
		existing.WetWeight = params.Weights.Wet
	}
	if params.Description != nil {
		existing.Description = trimOptional(params.Description)
	}
	if params.Icon != nil {
		existing.Icon = trimOptional(params.Icon)
	}
	existing.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("update activity profile: %w", err)
	}

	profile := convertFromPortsProfile(existing)
	return &profile, nil
}

func (uc *UseCase) DeleteProfile(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.NewValidationError("profile id is required")
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	uc.logger.Info("Activity profile deleted", ports.F("id", id))
	return nil
}

// AssessRisk weighs the climatology of a place and calendar day by a stored profile
func (uc *UseCase) AssessRisk(ctx context.Context, params AssessParams) (*Assessment, error) {
	profile, err := uc.resolveProfile(ctx, params)
	if err != nil {
		return nil, err
	}

	result, err := uc.climatology.GetClimatology(ctx, climate.ClimatologyRequest{
		Latitude:  params.Latitude,
		Longitude: params.Longitude,
		Month:     params.Month,
		Day:       params.Day,
	})
	if err != nil {
		return nil, fmt.Errorf("assess risk for %s: %w", profile.Name, err)
	}

	factors := FactorsFromExtremes(result.Report.ExtremeConditions)
	score := WeightedRisk(factors, profile.Weights)
	level := RiskLevelFor(score)
	uc.metrics.RecordRiskAssessment(ctx, string(level))

	uc.logger.Debug("Risk assessed",
		ports.F("profile", profile.Name),
		ports.F("score", score),
		ports.F("level", level))

	return &Assessment{
		Profile:     *profile,
		Factors:     factors,
		Score:       score,
		Level:       level,
		Climatology: result,
	}, nil
}

// EvaluateRisk validates the weights and returns the weighted score and its level
func (uc *UseCase) EvaluateRisk(ctx context.Context, factors Factors, weights Weights) (int, RiskLevel, error) {
	if err := weights.Validate(uc.maxWeight()); err != nil {
		return 0, "", errors.NewValidationError("invalid weights: " + err.Error())
	}

	score := WeightedRisk(factors, weights)
	level := RiskLevelFor(score)
	uc.metrics.RecordRiskAssessment(ctx, string(level))
	return score, level, nil
}

// SeedDefaults inserts the default profiles when no profile exists yet
func (uc *UseCase) SeedDefaults(ctx context.Context) error {
	count, err := uc.repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count activity profiles: %w", err)
	}
	if count > 0 {
		uc.logger.Debug("Activity profiles already present, skipping seed", ports.F("count", count))
		return nil
	}

	for _, params := range DefaultProfiles() {
		if _, err := uc.CreateProfile(ctx, params); err != nil {
			return fmt.Errorf("seed profile %s: %w", params.Name, err)
		}
	}

	uc.logger.Info("Default activity profiles seeded", ports.F("count", len(DefaultProfiles())))
	return nil
}

func (uc *UseCase) resolveProfile(ctx context.Context, params AssessParams) (*Profile, error) {
	switch {
	case strings.TrimSpace(params.ProfileID) != "":
		return uc.GetProfile(ctx, params.ProfileID)
	case strings.TrimSpace(params.ProfileName) != "":
		data, err := uc.repo.FindByName(ctx, strings.TrimSpace(params.ProfileName))
		if err != nil {
			return nil, err
		}
		profile := convertFromPortsProfile(data)
		return &profile, nil
	default:
		return nil, errors.NewValidationError("profile id or name is required")
	}
}

func (uc *UseCase) ensureNameAvailable(ctx context.Context, name, currentID string) error {
	existing, err := uc.repo.FindByName(ctx, name)
	if err != nil && !errors.IsNotFoundError(err) {
		return fmt.Errorf("check existing activity profile: %w", err)
	}
	if existing != nil && existing.ID != currentID {
		return errors.NewAlreadyExistsError(fmt.Sprintf("activity profile %q already exists", name))
	}
	return nil
}

func (uc *UseCase) maxWeight() float64 {
	return uc.config.GetActivityConfig().MaxWeight
}

func convertFromPortsProfile(data *ports.ActivityProfileData) Profile {
	return Profile{
		ID:   data.ID,
		Name: data.Name,
		Weights: Weights{
			Hot:   data.HotWeight,
			Cold:  data.ColdWeight,
			Windy: data.WindyWeight,
			Wet:   data.WetWeight,
		},
		Description: data.Description,
		Icon:        data.Icon,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}
