package ports

import (
	"context"
	"time"
)

// ActivityProfileData represents activity profile data for persistence
type ActivityProfileData struct {
	ID          string
	Name        string
	HotWeight   float64
	ColdWeight  float64
	WindyWeight float64
	WetWeight   float64
	Description *string
	Icon        *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ActivityProfileRepository defines the contract for activity profile persistence
type ActivityProfileRepository interface {
	Save(ctx context.Context, profile *ActivityProfileData) error
	FindByID(ctx context.Context, id string) (*ActivityProfileData, error)
	FindByName(ctx context.Context, name string) (*ActivityProfileData, error)
	List(ctx context.Context) ([]*ActivityProfileData, error)
	Update(ctx context.Context, profile *ActivityProfileData) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}
