package domain

import (
	"context"
	"errors"
)

// ErrProfileNotFound is returned by ProfileRepository.Get when no profile
// exists for the user.
var ErrProfileNotFound = errors.New("profile not found")

// ProfileRepository is the storage contract for user profiles. Implementations
// must serialize read-modify-write sequences so concurrent handlers cannot
// lose updates.
type ProfileRepository interface {
	Get(ctx context.Context, userID int64) (*UserProfile, error)
	Put(ctx context.Context, profile *UserProfile) error
	Exists(ctx context.Context, userID int64) (bool, error)
}

// WeatherService looks up the current temperature for a city. ok is false
// when the upstream answered but no usable temperature was available; err is
// reserved for connectivity and authentication failures.
type WeatherService interface {
	CurrentTemperature(ctx context.Context, city string) (tempC float64, ok bool, err error)
}

// FoodService searches for a product by name. A nil product with nil error
// means nothing matched; err is reserved for connectivity failures.
type FoodService interface {
	FindProduct(ctx context.Context, name string) (*Product, error)
}
