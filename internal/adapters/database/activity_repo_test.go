package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"climaterisk.app/internal/ports"
	"climaterisk.app/pkg/errors"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(&ActivityProfileModel{})
	require.NoError(t, err)

	return db
}

func newProfile(id, name string) *ports.ActivityProfileData {
	desc := "test profile"
	return &ports.ActivityProfileData{
		ID:          id,
		Name:        name,
		HotWeight:   0.9,
		ColdWeight:  0.8,
		WindyWeight: 0.4,
		WetWeight:   0.7,
		Description: &desc,
	}
}

func TestActivityProfileRepository_SaveAndFind(t *testing.T) {
	repo := NewActivityProfileRepositoryAdapter(setupTestDB(t))
	ctx := context.Background()

	profile := newProfile("0b7d4c4e-2f4a-4a55-9c8f-3f2f6d9e7a01", "Hiking")
	require.NoError(t, repo.Save(ctx, profile))
	assert.False(t, profile.CreatedAt.IsZero())

	byID, err := repo.FindByID(ctx, profile.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hiking", byID.Name)
	assert.Equal(t, 0.4, byID.WindyWeight)
	require.NotNil(t, byID.Description)
	assert.Equal(t, "test profile", *byID.Description)
	assert.Nil(t, byID.Icon)

	byName, err := repo.FindByName(ctx, "  HIKING ")
	require.NoError(t, err)
	assert.Equal(t, profile.ID, byName.ID)
}

func TestActivityProfileRepository_NotFound(t *testing.T) {
	repo := NewActivityProfileRepositoryAdapter(setupTestDB(t))
	ctx := context.Background()

	_, err := repo.FindByID(ctx, "missing")
	assert.True(t, errors.IsNotFoundError(err))

	_, err = repo.FindByName(ctx, "missing")
	assert.True(t, errors.IsNotFoundError(err))

	assert.True(t, errors.IsNotFoundError(repo.Delete(ctx, "missing")))
	assert.True(t, errors.IsNotFoundError(repo.Update(ctx, newProfile("missing", "Ghost"))))
}

func TestActivityProfileRepository_DuplicateName(t *testing.T) {
	repo := NewActivityProfileRepositoryAdapter(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, newProfile("a", "Wedding")))
	err := repo.Save(ctx, newProfile("b", "wedding"))

	assert.Error(t, err)
	assert.True(t, errors.IsAlreadyExistsError(err))
}

func TestActivityProfileRepository_ListOrderedByName(t *testing.T) {
	repo := NewActivityProfileRepositoryAdapter(setupTestDB(t))
	ctx := context.Background()

	for id, name := range map[string]string{"1": "wedding", "2": "Construction", "3": "Fishing"} {
		require.NoError(t, repo.Save(ctx, newProfile(id, name)))
	}

	profiles, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, profiles, 3)
	assert.Equal(t, "Construction", profiles[0].Name)
	assert.Equal(t, "Fishing", profiles[1].Name)
	assert.Equal(t, "wedding", profiles[2].Name)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestActivityProfileRepository_UpdateAndDelete(t *testing.T) {
	repo := NewActivityProfileRepositoryAdapter(setupTestDB(t))
	ctx := context.Background()

	profile := newProfile("p1", "Festival")
	require.NoError(t, repo.Save(ctx, profile))

	icon := "SnowIcon"
	profile.Name = "Music Festival"
	profile.WetWeight = 0
	profile.Description = nil
	profile.Icon = &icon
	require.NoError(t, repo.Update(ctx, profile))

	updated, err := repo.FindByName(ctx, "music festival")
	require.NoError(t, err)
	assert.Equal(t, "Music Festival", updated.Name)
	assert.Equal(t, 0.0, updated.WetWeight)
	assert.Nil(t, updated.Description)
	require.NotNil(t, updated.Icon)
	assert.Equal(t, "SnowIcon", *updated.Icon)

	require.NoError(t, repo.Delete(ctx, "p1"))
	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestActivityProfileRepository_ValidationErrors(t *testing.T) {
	repo := NewActivityProfileRepositoryAdapter(setupTestDB(t))
	ctx := context.Background()

	assert.True(t, errors.IsValidationError(repo.Save(ctx, nil)))
	assert.True(t, errors.IsValidationError(repo.Save(ctx, newProfile("", "NoID"))))
	assert.True(t, errors.IsValidationError(repo.Update(ctx, nil)))
	assert.True(t, errors.IsValidationError(repo.Delete(ctx, "")))
	_, err := repo.FindByID(ctx, "")
	assert.True(t, errors.IsValidationError(err))
	_, err = repo.FindByName(ctx, " ")
	assert.True(t, errors.IsValidationError(err))
}

var _ ports.ActivityProfileRepository = (*ActivityProfileRepositoryAdapter)(nil)
