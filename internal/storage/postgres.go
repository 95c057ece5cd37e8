package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/olegbarsukov/fitness-helper/internal/config"
	"github.com/olegbarsukov/fitness-helper/internal/domain"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type profileRecord struct {
	gorm.Model
	UserID          int64 `gorm:"uniqueIndex"`
	WeightKg        *int
	HeightCm        *int
	AgeYears        *int
	ActivityType    *string
	ActivityMinutes *int
	City            *string
	WaterGoalMl     int
	CalorieGoal     int
	LoggedWaterMl   int
	LoggedCalories  int
	BurnedCalories  int
}

// PostgresRepository stores profiles in PostgreSQL via GORM. Selected with
// STORAGE=postgres for deployments that outgrow the flat file.
type PostgresRepository struct {
	db *gorm.DB
}

// NewPostgresRepository connects to the database and migrates the schema.
func NewPostgresRepository(cfg config.DBConfig) (*PostgresRepository, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&profileRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &PostgresRepository{db: db}, nil
}

func (r *PostgresRepository) Get(ctx context.Context, userID int64) (*domain.UserProfile, error) {
	var rec profileRecord
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return recordToProfile(&rec), nil
}

func (r *PostgresRepository) Put(ctx context.Context, profile *domain.UserProfile) error {
	var rec profileRecord
	err := r.db.WithContext(ctx).Where("user_id = ?", profile.UserID).First(&rec).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to load profile: %w", err)
	}

	applyProfile(&rec, profile)
	if err := r.db.WithContext(ctx).Save(&rec).Error; err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Exists(ctx context.Context, userID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&profileRecord{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to count profiles: %w", err)
	}
	return count > 0, nil
}

func applyProfile(rec *profileRecord, p *domain.UserProfile) {
	rec.UserID = p.UserID
	rec.WeightKg = p.WeightKg
	rec.HeightCm = p.HeightCm
	rec.AgeYears = p.AgeYears
	rec.ActivityType = p.ActivityType
	rec.ActivityMinutes = p.ActivityMinutes
	rec.City = p.City
	rec.WaterGoalMl = p.WaterGoalMl
	rec.CalorieGoal = p.CalorieGoal
	rec.LoggedWaterMl = p.LoggedWaterMl
	rec.LoggedCalories = p.LoggedCalories
	rec.BurnedCalories = p.BurnedCalories
}

func recordToProfile(rec *profileRecord) *domain.UserProfile {
	return (&domain.UserProfile{
		UserID:          rec.UserID,
		WeightKg:        rec.WeightKg,
		HeightCm:        rec.HeightCm,
		AgeYears:        rec.AgeYears,
		ActivityType:    rec.ActivityType,
		ActivityMinutes: rec.ActivityMinutes,
		City:            rec.City,
		WaterGoalMl:     rec.WaterGoalMl,
		CalorieGoal:     rec.CalorieGoal,
		LoggedWaterMl:   rec.LoggedWaterMl,
		LoggedCalories:  rec.LoggedCalories,
		BurnedCalories:  rec.BurnedCalories,
	}).Clone()
}
