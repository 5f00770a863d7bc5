package activity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"climaterisk.app/internal/core/climate"
	"climaterisk.app/internal/mocks"
	"climaterisk.app/internal/ports"
	"climaterisk.app/pkg/errors"
)

type climatologyMock struct {
	mock.Mock
}

func (m *climatologyMock) GetClimatology(ctx context.Context, request climate.ClimatologyRequest) (*climate.ClimatologyResult, error) {
	args := m.Called(ctx, request)
	result, _ := args.Get(0).(*climate.ClimatologyResult)
	return result, args.Error(1)
}

type activityMocks struct {
	repo        *mocks.ActivityProfileRepository
	climatology *climatologyMock
	metrics     *mocks.MetricsCollector
}

func newTestUseCase(t *testing.T) (*UseCase, activityMocks) {
	m := activityMocks{
		repo:        mocks.NewActivityProfileRepository(t),
		climatology: &climatologyMock{},
		metrics:     mocks.NewMetricsCollector(t),
	}
	config := mocks.NewConfigProvider(t)
	config.On("GetActivityConfig").Return(ports.ActivityConfig{MaxWeight: 10}).Maybe()

	uc, err := NewUseCase(UseCaseDependencies{
		Repository:  m.repo,
		Climatology: m.climatology,
		Config:      config,
		Logger:      mocks.NewLogger(),
		Metrics:     m.metrics,
	})
	require.NoError(t, err)
	return uc, m
}

func hikingData() *ports.ActivityProfileData {
	return &ports.ActivityProfileData{
		ID:          "7f9c0c80-3b8e-4c1e-9a7b-0d6d1f3f2a11",
		Name:        "Hiking",
		HotWeight:   0.9,
		ColdWeight:  0.8,
		WindyWeight: 0.4,
		WetWeight:   0.7,
	}
}

func TestUseCase_CreateProfile(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		uc, m := newTestUseCase(t)
		m.repo.On("FindByName", mock.Anything, "Kayaking").Return(nil, errors.NewNotFoundError("activity profile not found"))
		m.repo.On("Save", mock.Anything, mock.MatchedBy(func(p *ports.ActivityProfileData) bool {
			return p.Name == "Kayaking" && p.WindyWeight == 1 && p.ID != ""
		})).Return(nil)

		profile, err := uc.CreateProfile(context.Background(), CreateProfileParams{
			Name:    " Kayaking ",
			Weights: Weights{Hot: 0.3, Cold: 0.6, Windy: 1, Wet: 0.2},
		})

		require.NoError(t, err)
		assert.Equal(t, "Kayaking", profile.Name)
		assert.NotEmpty(t, profile.ID)
		assert.False(t, profile.CreatedAt.IsZero())
	})

	t.Run("DuplicateName", func(t *testing.T) {
		uc, m := newTestUseCase(t)
		m.repo.On("FindByName", mock.Anything, "hiking").Return(hikingData(), nil)

		profile, err := uc.CreateProfile(context.Background(), CreateProfileParams{
			Name:    "hiking",
			Weights: Weights{Hot: 1},
		})

		assert.Nil(t, profile)
		assert.True(t, errors.IsAlreadyExistsError(err))
		m.repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("NegativeWeight", func(t *testing.T) {
		uc, _ := newTestUseCase(t)

		_, err := uc.CreateProfile(context.Background(), CreateProfileParams{
			Name:    "Sailing",
			Weights: Weights{Windy: -1},
		})

		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("RepositoryFailure", func(t *testing.T) {
		uc, m := newTestUseCase(t)
		m.repo.On("FindByName", mock.Anything, "Sailing").Return(nil, errors.NewDatabaseError("connection refused", nil))

		_, err := uc.CreateProfile(context.Background(), CreateProfileParams{Name: "Sailing"})

		assert.True(t, errors.IsDatabaseError(err))
	})
}

func TestUseCase_UpdateProfile(t *testing.T) {
	t.Run("PartialUpdate", func(t *testing.T) {
		uc, m := newTestUseCase(t)
		m.repo.On("FindByID", mock.Anything, hikingData().ID).Return(hikingData(), nil)
		m.repo.On("Update", mock.Anything, mock.Anything).Return(nil)

		icon := "MountainIcon"
		profile, err := uc.UpdateProfile(context.Background(), hikingData().ID, UpdateProfileParams{
			Weights: &Weights{Hot: 1, Cold: 1, Windy: 1, Wet: 1},
			Icon:    &icon,
		})

		require.NoError(t, err)
		assert.Equal(t, "Hiking", profile.Name)
		assert.Equal(t, Weights{Hot: 1, Cold: 1, Windy: 1, Wet: 1}, profile.Weights)
		require.NotNil(t, profile.Icon)
		assert.Equal(t, "MountainIcon", *profile.Icon)
		m.repo.AssertNotCalled(t, "FindByName", mock.Anything, mock.Anything)
	})

	t.Run("RenameToTakenName", func(t *testing.T) {
		uc, m := newTestUseCase(t)
		other := hikingData()
		other.ID = "another-id"
		other.Name = "Wedding"
		m.repo.On("FindByID", mock.Anything, hikingData().ID).Return(hikingData(), nil)
		m.repo.On("FindByName", mock.Anything, "Wedding").Return(other, nil)

		name := "Wedding"
		_, err := uc.UpdateProfile(context.Background(), hikingData().ID, UpdateProfileParams{Name: &name})

		assert.True(t, errors.IsAlreadyExistsError(err))
	})

	t.Run("NotFound", func(t *testing.T) {
		uc, m := newTestUseCase(t)
		m.repo.On("FindByID", mock.Anything, "missing").Return(nil, errors.NewNotFoundError("activity profile not found"))

		_, err := uc.UpdateProfile(context.Background(), "missing", UpdateProfileParams{})

		assert.True(t, errors.IsNotFoundError(err))
	})
}

func TestUseCase_GetListDelete(t *testing.T) {
	uc, m := newTestUseCase(t)
	m.repo.On("List", mock.Anything).Return([]*ports.ActivityProfileData{hikingData()}, nil)
	m.repo.On("FindByID", mock.Anything, hikingData().ID).Return(hikingData(), nil)
	m.repo.On("Delete", mock.Anything, hikingData().ID).Return(nil)

	profiles, err := uc.ListProfiles(context.Background())
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, 0.9, profiles[0].Weights.Hot)

	profile, err := uc.GetProfile(context.Background(), hikingData().ID)
	require.NoError(t, err)
	assert.Equal(t, "Hiking", profile.Name)

	require.NoError(t, uc.DeleteProfile(context.Background(), hikingData().ID))

	_, err = uc.GetProfile(context.Background(), " ")
	assert.True(t, errors.IsValidationError(err))
}

func TestUseCase_AssessRisk(t *testing.T) {
	request := climate.ClimatologyRequest{Latitude: 39.74, Longitude: -104.99, Month: 7, Day: 4}
	result := &climate.ClimatologyResult{
		Location: "Denver",
		Report: climate.Report{
			ExtremeConditions: climate.ExtremeConditions{VeryHot: 67, VeryCold: 0, VeryWindy: 10, VeryWet: 20},
		},
	}

	t.Run("ByName", func(t *testing.T) {
		uc, m := newTestUseCase(t)
		m.repo.On("FindByName", mock.Anything, "Hiking").Return(hikingData(), nil)
		m.climatology.On("GetClimatology", mock.Anything, request).Return(result, nil)
		m.metrics.On("RecordRiskAssessment", mock.Anything, "low").Return()

		assessment, err := uc.AssessRisk(context.Background(), AssessParams{
			ProfileName: "Hiking", Latitude: 39.74, Longitude: -104.99, Month: 7, Day: 4,
		})

		require.NoError(t, err)
		assert.Equal(t, 28, assessment.Score)
		assert.Equal(t, RiskLow, assessment.Level)
		assert.Equal(t, Factors{Hot: 67, Cold: 0, Windy: 10, Wet: 20}, assessment.Factors)
		assert.Equal(t, "Denver", assessment.Climatology.Location)
	})

	t.Run("ByID", func(t *testing.T) {
		uc, m := newTestUseCase(t)
		m.repo.On("FindByID", mock.Anything, hikingData().ID).Return(hikingData(), nil)
		m.climatology.On("GetClimatology", mock.Anything, request).Return(result, nil)
		m.metrics.On("RecordRiskAssessment", mock.Anything, "low").Return()

		assessment, err := uc.AssessRisk(context.Background(), AssessParams{
			ProfileID: hikingData().ID, Latitude: 39.74, Longitude: -104.99, Month: 7, Day: 4,
		})

		require.NoError(t, err)
		assert.Equal(t, "Hiking", assessment.Profile.Name)
	})

	t.Run("MissingProfileReference", func(t *testing.T) {
		uc, _ := newTestUseCase(t)

		_, err := uc.AssessRisk(context.Background(), AssessParams{Latitude: 1, Longitude: 1, Month: 1, Day: 1})

		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("ClimatologyValidationError", func(t *testing.T) {
		uc, m := newTestUseCase(t)
		bad := climate.ClimatologyRequest{Latitude: 95, Longitude: 0, Month: 7, Day: 4}
		m.repo.On("FindByName", mock.Anything, "Hiking").Return(hikingData(), nil)
		m.climatology.On("GetClimatology", mock.Anything, bad).Return(nil, errors.NewValidationError("invalid climatology request"))

		_, err := uc.AssessRisk(context.Background(), AssessParams{ProfileName: "Hiking", Latitude: 95, Month: 7, Day: 4})

		assert.True(t, errors.IsValidationError(err))
	})
}

func TestUseCase_EvaluateRisk(t *testing.T) {
	uc, m := newTestUseCase(t)
	m.metrics.On("RecordRiskAssessment", mock.Anything, "medium").Return()

	score, level, err := uc.EvaluateRisk(context.Background(),
		Factors{Hot: 80, Cold: 0, Windy: 40, Wet: 60},
		Weights{Hot: 1, Cold: 1, Windy: 1, Wet: 1})

	require.NoError(t, err)
	assert.Equal(t, 45, score)
	assert.Equal(t, RiskMedium, level)

	_, _, err = uc.EvaluateRisk(context.Background(), Factors{}, Weights{Hot: -2})
	assert.True(t, errors.IsValidationError(err))
}

func TestUseCase_SeedDefaults(t *testing.T) {
	t.Run("EmptyStore", func(t *testing.T) {
		uc, m := newTestUseCase(t)
		m.repo.On("Count", mock.Anything).Return(int64(0), nil)
		m.repo.On("FindByName", mock.Anything, mock.Anything).Return(nil, errors.NewNotFoundError("activity profile not found"))
		m.repo.On("Save", mock.Anything, mock.Anything).Return(nil).Times(len(DefaultProfiles()))

		require.NoError(t, uc.SeedDefaults(context.Background()))
	})

	t.Run("AlreadySeeded", func(t *testing.T) {
		uc, m := newTestUseCase(t)
		m.repo.On("Count", mock.Anything).Return(int64(5), nil)

		require.NoError(t, uc.SeedDefaults(context.Background()))
		m.repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestDefaultProfiles(t *testing.T) {
	profiles := DefaultProfiles()
	require.Len(t, profiles, 5)
	for _, p := range profiles {
		assert.NoError(t, p.IsValid(1), p.Name)
	}
	assert.Equal(t, Weights{Hot: 0.8, Cold: 0.6, Windy: 0.8, Wet: 1.0}, profiles[1].Weights)
}
