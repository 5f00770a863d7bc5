package database

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"climaterisk.app/internal/ports"
	"climaterisk.app/pkg/errors"
)

// ActivityProfileModel represents the database model for activity profiles
type ActivityProfileModel struct {
	ID          string  `gorm:"primaryKey;size:36"`
	Name        string  `gorm:"size:64;not null"`
	NameKey     string  `gorm:"size:64;not null;uniqueIndex"`
	HotWeight   float64 `gorm:"not null;default:0"`
	ColdWeight  float64 `gorm:"not null;default:0"`
	WindyWeight float64 `gorm:"not null;default:0"`
	WetWeight   float64 `gorm:"not null;default:0"`
	Description *string
	Icon        *string `gorm:"size:64"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (ActivityProfileModel) TableName() string {
	return "activity_profiles"
}

// ActivityProfileRepositoryAdapter implements the ActivityProfileRepository port using GORM
type ActivityProfileRepositoryAdapter struct {
	db *gorm.DB
}

// NewActivityProfileRepositoryAdapter creates a new activity profile repository adapter
func NewActivityProfileRepositoryAdapter(db *gorm.DB) *ActivityProfileRepositoryAdapter {
	return &ActivityProfileRepositoryAdapter{db: db}
}

// Save inserts a new activity profile
func (r *ActivityProfileRepositoryAdapter) Save(ctx context.Context, profile *ports.ActivityProfileData) error {
	if profile == nil {
		return errors.NewValidationError("activity profile cannot be nil")
	}
	if profile.ID == "" {
		return errors.NewValidationError("activity profile ID cannot be empty")
	}

	model := r.dataToModel(profile)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return errors.NewAlreadyExistsError("activity profile already exists")
		}
		return errors.NewDatabaseError("failed to save activity profile", err)
	}

	profile.CreatedAt = model.CreatedAt
	profile.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID retrieves an activity profile by its ID
func (r *ActivityProfileRepositoryAdapter) FindByID(ctx context.Context, id string) (*ports.ActivityProfileData, error) {
	if id == "" {
		return nil, errors.NewValidationError("activity profile ID cannot be empty")
	}

	var model ActivityProfileModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&model)
	if result.Error != nil {
		if stderrors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errors.NewNotFoundError("activity profile not found")
		}
		return nil, errors.NewDatabaseError("failed to find activity profile by ID", result.Error)
	}

	return r.modelToData(&model), nil
}

// FindByName retrieves an activity profile by name, ignoring case
func (r *ActivityProfileRepositoryAdapter) FindByName(ctx context.Context, name string) (*ports.ActivityProfileData, error) {
	key := nameKey(name)
	if key == "" {
		return nil, errors.NewValidationError("activity profile name cannot be empty")
	}

	var model ActivityProfileModel
	result := r.db.WithContext(ctx).Where("name_key = ?", key).First(&model)
	if result.Error != nil {
		if stderrors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errors.NewNotFoundError("activity profile not found")
		}
		return nil, errors.NewDatabaseError("failed to find activity profile by name", result.Error)
	}

	return r.modelToData(&model), nil
}

// List returns every activity profile ordered by name
func (r *ActivityProfileRepositoryAdapter) List(ctx context.Context) ([]*ports.ActivityProfileData, error) {
	var models []ActivityProfileModel
	if err := r.db.WithContext(ctx).Order("name_key ASC").Find(&models).Error; err != nil {
		return nil, errors.NewDatabaseError("failed to list activity profiles", err)
	}

	profiles := make([]*ports.ActivityProfileData, len(models))
	for i := range models {
		profiles[i] = r.modelToData(&models[i])
	}
	return profiles, nil
}

// Update modifies an existing activity profile
func (r *ActivityProfileRepositoryAdapter) Update(ctx context.Context, profile *ports.ActivityProfileData) error {
	if profile == nil {
		return errors.NewValidationError("activity profile cannot be nil")
	}
	if profile.ID == "" {
		return errors.NewValidationError("activity profile ID cannot be empty for update")
	}

	model := r.dataToModel(profile)
	result := r.db.WithContext(ctx).Model(&ActivityProfileModel{}).Where("id = ?", profile.ID).
		Select("name", "name_key", "hot_weight", "cold_weight", "windy_weight", "wet_weight", "description", "icon", "updated_at").
		Updates(model)
	if result.Error != nil {
		if stderrors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return errors.NewAlreadyExistsError("activity profile already exists")
		}
		return errors.NewDatabaseError("failed to update activity profile", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("activity profile not found")
	}

	return nil
}

// Delete removes an activity profile
func (r *ActivityProfileRepositoryAdapter) Delete(ctx context.Context, id string) error {
	if id == "" {
		return errors.NewValidationError("activity profile ID cannot be empty for delete")
	}

	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&ActivityProfileModel{})
	if result.Error != nil {
		return errors.NewDatabaseError("failed to delete activity profile", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("activity profile not found")
	}

	return nil
}

// Count returns the number of stored activity profiles
func (r *ActivityProfileRepositoryAdapter) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&ActivityProfileModel{}).Count(&count).Error; err != nil {
		return 0, errors.NewDatabaseError("failed to count activity profiles", err)
	}
	return count, nil
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// dataToModel converts port data to database model
func (r *ActivityProfileRepositoryAdapter) dataToModel(data *ports.ActivityProfileData) *ActivityProfileModel {
	return &ActivityProfileModel{
		ID:          data.ID,
		Name:        data.Name,
		NameKey:     nameKey(data.Name),
		HotWeight:   data.HotWeight,
		ColdWeight:  data.ColdWeight,
		WindyWeight: data.WindyWeight,
		WetWeight:   data.WetWeight,
		Description: data.Description,
		Icon:        data.Icon,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

// modelToData converts database model to port data
func (r *ActivityProfileRepositoryAdapter) modelToData(model *ActivityProfileModel) *ports.ActivityProfileData {
	return &ports.ActivityProfileData{
		ID:          model.ID,
		Name:        model.Name,
		HotWeight:   model.HotWeight,
		ColdWeight:  model.ColdWeight,
		WindyWeight: model.WindyWeight,
		WetWeight:   model.WetWeight,
		Description: model.Description,
		Icon:        model.Icon,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}
