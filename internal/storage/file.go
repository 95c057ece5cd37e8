package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/olegbarsukov/fitness-helper/internal/apperrors"
	"github.com/olegbarsukov/fitness-helper/internal/domain"
)

// fileRecord is the on-disk profile shape: one JSON object per user keyed by
// the decimal user id.
type fileRecord struct {
	Weight          *int    `json:"weight"`
	Height          *int    `json:"height"`
	Age             *int    `json:"age"`
	ActivityType    *string `json:"activity_type"`
	ActivityMinutes *int    `json:"activity_minutes"`
	City            *string `json:"city"`
	WaterGoal       int     `json:"water_goal"`
	CalorieGoal     int     `json:"calorie_goal"`
	LoggedWater     int     `json:"logged_water"`
	LoggedCalories  int     `json:"logged_calories"`
	BurnedCalories  int     `json:"burned_calories"`
}

// FileRepository keeps all profiles in memory and rewrites the whole backing
// JSON file on every mutation. The mutex guards the map and the snapshot
// write only; a Get-mutate-Put sequence additionally needs the caller's
// per-user lock (see dialogue.Engine).
type FileRepository struct {
	path     string
	mu       sync.Mutex
	profiles map[int64]*domain.UserProfile
}

// NewFileRepository opens the store at path, loading any existing snapshot.
// A missing file means an empty store.
func NewFileRepository(path string) (*FileRepository, error) {
	repo := &FileRepository{
		path:     path,
		profiles: make(map[int64]*domain.UserProfile),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return repo, nil
		}
		return nil, fmt.Errorf("failed to read users file: %w", err)
	}

	var records map[string]fileRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse users file: %w", err)
	}

	for key, rec := range records {
		userID, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid user id %q in users file: %w", key, err)
		}
		repo.profiles[userID] = fromRecord(userID, rec)
	}

	return repo, nil
}

// Get returns a copy of the stored profile.
func (r *FileRepository) Get(ctx context.Context, userID int64) (*domain.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	profile, ok := r.profiles[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return profile.Clone(), nil
}

// Put stores the profile and rewrites the snapshot file in full.
func (r *FileRepository) Put(ctx context.Context, profile *domain.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.profiles[profile.UserID] = profile.Clone()
	if err := r.save(); err != nil {
		return apperrors.NewStorageError(err)
	}
	return nil
}

// Exists reports whether a profile is stored for the user.
func (r *FileRepository) Exists(ctx context.Context, userID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.profiles[userID]
	return ok, nil
}

// save writes the whole store to a temp file and renames it into place.
// Caller must hold the mutex.
func (r *FileRepository) save() error {
	records := make(map[string]fileRecord, len(r.profiles))
	for userID, profile := range r.profiles {
		records[strconv.FormatInt(userID, 10)] = toRecord(profile)
	}

	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode users file: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), "users-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp users file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write users file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close users file: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace users file: %w", err)
	}
	return nil
}

func toRecord(p *domain.UserProfile) fileRecord {
	return fileRecord{
		Weight:          p.WeightKg,
		Height:          p.HeightCm,
		Age:             p.AgeYears,
		ActivityType:    p.ActivityType,
		ActivityMinutes: p.ActivityMinutes,
		City:            p.City,
		WaterGoal:       p.WaterGoalMl,
		CalorieGoal:     p.CalorieGoal,
		LoggedWater:     p.LoggedWaterMl,
		LoggedCalories:  p.LoggedCalories,
		BurnedCalories:  p.BurnedCalories,
	}
}

func fromRecord(userID int64, rec fileRecord) *domain.UserProfile {
	return &domain.UserProfile{
		UserID:          userID,
		WeightKg:        rec.Weight,
		HeightCm:        rec.Height,
		AgeYears:        rec.Age,
		ActivityType:    rec.ActivityType,
		ActivityMinutes: rec.ActivityMinutes,
		City:            rec.City,
		WaterGoalMl:     rec.WaterGoal,
		CalorieGoal:     rec.CalorieGoal,
		LoggedWaterMl:   rec.LoggedWater,
		LoggedCalories:  rec.LoggedCalories,
		BurnedCalories:  rec.BurnedCalories,
	}
}
