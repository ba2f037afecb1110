package repository

import (
	"errors"
	"time"

	"github.com/veilmarket/auction-service/internal/domain"
	"github.com/veilmarket/auction-service/internal/infrastructure/postgres/mappers"
	"github.com/veilmarket/auction-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultPlatformRepository struct {
	DB *gorm.DB
}

func NewDefaultPlatformRepository(db *gorm.DB) *DefaultPlatformRepository {
	return &DefaultPlatformRepository{DB: db}
}

func (r *DefaultPlatformRepository) GetConfig() (*domain.PlatformConfig, error) {
	var config models.PlatformConfigModel
	if err := r.DB.First(&config, "id = 1").Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return mappers.ToDomainPlatformConfig(&config)
}

// EnsureConfig seeds the singleton row on first boot and is a no-op when a
// row already exists.
func (r *DefaultPlatformRepository) EnsureConfig(authorityID, feeCollectorID string) error {
	var count int64
	if err := r.DB.Model(&models.PlatformConfigModel{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	seed := domain.DefaultPlatformConfig(authorityID, feeCollectorID, time.Now().UTC())
	return r.DB.Create(mappers.ToGORMPlatformConfig(seed)).Error
}

// SaveConfig writes the singleton row only when the stored version still
// matches expectedVersion.
func (r *DefaultPlatformRepository) SaveConfig(config *domain.PlatformConfig, expectedVersion uint64) error {
	model := mappers.ToGORMPlatformConfig(config)
	// Select("*") forces zero-valued fields (Paused=false) to be written.
	result := r.DB.Model(&models.PlatformConfigModel{}).
		Where("id = 1 AND version = ?", expectedVersion).
		Select("*").
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Either the row is missing (first boot) or the version moved.
		var count int64
		if err := r.DB.Model(&models.PlatformConfigModel{}).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return r.DB.Create(model).Error
		}
		return domain.ErrInvalidParameter
	}
	return nil
}
