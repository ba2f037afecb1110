package repository

import (
	"errors"
	"time"

	"github.com/veilmarket/auction-service/internal/domain"
	"github.com/veilmarket/auction-service/internal/infrastructure/postgres/mappers"
	"github.com/veilmarket/auction-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultBidRepository struct {
	DB *gorm.DB
}

func NewDefaultBidRepository(db *gorm.DB) *DefaultBidRepository {
	return &DefaultBidRepository{DB: db}
}

func (r *DefaultBidRepository) CreateBid(bid *domain.BidCommitment) error {
	bidModel := mappers.ToGORMBid(bid)
	return r.DB.Create(bidModel).Error
}

func (r *DefaultBidRepository) GetBid(auctionID, bidderID string) (*domain.BidCommitment, error) {
	var bid models.BidCommitmentModel
	if err := r.DB.First(&bid, "auction_id = ? AND bidder_id = ?", auctionID, bidderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return mappers.ToDomainBid(&bid), nil
}

func (r *DefaultBidRepository) MarkRevealed(bidID string, amount uint64) error {
	return r.DB.Model(&models.BidCommitmentModel{}).
		Where("id = ?", bidID).
		Updates(map[string]any{"revealed": true, "revealed_amount": amount}).Error
}

func (r *DefaultBidRepository) MarkCollateralReturned(bidID string) error {
	return r.DB.Model(&models.BidCommitmentModel{}).
		Where("id = ?", bidID).
		Update("collateral_returned", true).Error
}

func (r *DefaultBidRepository) CountUnreturned(auctionID string) (int64, error) {
	var count int64
	err := r.DB.Model(&models.BidCommitmentModel{}).
		Where("auction_id = ? AND collateral_returned = false", auctionID).
		Count(&count).Error
	return count, err
}

func (r *DefaultBidRepository) GetBidsByAuction(auctionID string) ([]*domain.BidCommitment, error) {
	var bidModels []models.BidCommitmentModel
	if err := r.DB.
		Where("auction_id = ?", auctionID).
		Order("submitted_at ASC").
		Find(&bidModels).Error; err != nil {
		return nil, err
	}

	bids := make([]*domain.BidCommitment, 0, len(bidModels))
	for i := range bidModels {
		bids = append(bids, mappers.ToDomainBid(&bidModels[i]))
	}
	return bids, nil
}

type DefaultCollateralRepository struct {
	DB *gorm.DB
}

func NewDefaultCollateralRepository(db *gorm.DB) *DefaultCollateralRepository {
	return &DefaultCollateralRepository{DB: db}
}

func (r *DefaultCollateralRepository) GetPool(auctionID string) (*domain.CollateralPool, error) {
	var pool models.CollateralPoolModel
	if err := r.DB.First(&pool, "auction_id = ?", auctionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return mappers.ToDomainCollateralPool(&pool), nil
}

func (r *DefaultCollateralRepository) GetOrCreatePool(auctionID string, now time.Time) (*domain.CollateralPool, error) {
	pool, err := r.GetPool(auctionID)
	if err == nil {
		return pool, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	pool = &domain.CollateralPool{AuctionID: auctionID, UpdatedAt: now}
	if err := r.DB.Create(mappers.ToGORMCollateralPool(pool)).Error; err != nil {
		return nil, err
	}
	return pool, nil
}

func (r *DefaultCollateralRepository) SavePool(pool *domain.CollateralPool) error {
	return r.DB.Save(mappers.ToGORMCollateralPool(pool)).Error
}
