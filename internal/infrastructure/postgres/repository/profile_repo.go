package repository

import (
	"errors"
	"time"

	"github.com/veilmarket/auction-service/internal/domain"
	"github.com/veilmarket/auction-service/internal/infrastructure/postgres/mappers"
	"github.com/veilmarket/auction-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultProfileRepository struct {
	DB *gorm.DB
}

func NewDefaultProfileRepository(db *gorm.DB) *DefaultProfileRepository {
	return &DefaultProfileRepository{DB: db}
}

func (r *DefaultProfileRepository) GetProfile(userID string) (*domain.UserProfile, error) {
	var profile models.UserProfileModel
	if err := r.DB.First(&profile, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return mappers.ToDomainProfile(&profile), nil
}

func (r *DefaultProfileRepository) GetOrCreateProfile(userID string, now time.Time) (*domain.UserProfile, error) {
	profile, err := r.GetProfile(userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	profile = domain.NewUserProfile(userID, now)
	if err := r.DB.Create(mappers.ToGORMProfile(profile)).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

func (r *DefaultProfileRepository) SaveProfile(profile *domain.UserProfile) error {
	return r.DB.Save(mappers.ToGORMProfile(profile)).Error
}

func (r *DefaultProfileRepository) GetStake(userID string) (*domain.ReputationStake, error) {
	var stake models.ReputationStakeModel
	if err := r.DB.First(&stake, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return mappers.ToDomainStake(&stake), nil
}

func (r *DefaultProfileRepository) SaveStake(stake *domain.ReputationStake) error {
	return r.DB.Save(mappers.ToGORMStake(stake)).Error
}

type DefaultArbitratorRepository struct {
	DB *gorm.DB
}

func NewDefaultArbitratorRepository(db *gorm.DB) *DefaultArbitratorRepository {
	return &DefaultArbitratorRepository{DB: db}
}

func (r *DefaultArbitratorRepository) GetArbitrator(userID string) (*domain.ArbitratorRecord, error) {
	var record models.ArbitratorModel
	if err := r.DB.First(&record, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return mappers.ToDomainArbitrator(&record), nil
}

func (r *DefaultArbitratorRepository) GetOrCreateArbitrator(userID string, now time.Time) (*domain.ArbitratorRecord, error) {
	record, err := r.GetArbitrator(userID)
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	record = &domain.ArbitratorRecord{
		UserID:       userID,
		Active:       true,
		RegisteredAt: now,
	}
	if err := r.DB.Create(mappers.ToGORMArbitrator(record)).Error; err != nil {
		return nil, err
	}
	return record, nil
}

func (r *DefaultArbitratorRepository) SaveArbitrator(record *domain.ArbitratorRecord) error {
	return r.DB.Save(mappers.ToGORMArbitrator(record)).Error
}

func (r *DefaultArbitratorRepository) ListActiveArbitrators() ([]*domain.ArbitratorRecord, error) {
	var recordModels []models.ArbitratorModel
	if err := r.DB.Where("active = true").Find(&recordModels).Error; err != nil {
		return nil, err
	}

	records := make([]*domain.ArbitratorRecord, 0, len(recordModels))
	for i := range recordModels {
		records = append(records, mappers.ToDomainArbitrator(&recordModels[i]))
	}
	return records, nil
}
