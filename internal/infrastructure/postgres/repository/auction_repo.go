package repository

import (
	"errors"
	"time"

	"github.com/veilmarket/auction-service/internal/domain"
	"github.com/veilmarket/auction-service/internal/infrastructure/postgres/mappers"
	"github.com/veilmarket/auction-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultAuctionRepository struct {
	DB *gorm.DB
}

func NewDefaultAuctionRepository(db *gorm.DB) *DefaultAuctionRepository {
	return &DefaultAuctionRepository{DB: db}
}

func (r *DefaultAuctionRepository) CreateAuction(auction *domain.Auction) error {
	auctionModel := mappers.ToGORMAuction(auction)
	if err := r.DB.Create(auctionModel).Error; err != nil {
		return err
	}
	return nil
}

func (r *DefaultAuctionRepository) GetAuctionByID(auctionID string) (*domain.Auction, error) {
	var auction models.AuctionModel
	if err := r.DB.First(&auction, "id = ?", auctionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return mappers.ToDomainAuction(&auction)
}

func (r *DefaultAuctionRepository) UpdateAuction(auction *domain.Auction) error {
	auctionModel := mappers.ToGORMAuction(auction)
	return r.DB.Save(auctionModel).Error
}

func (r *DefaultAuctionRepository) UpdateAuctionStatus(auctionID string, status domain.AuctionStatus) error {
	return r.DB.Model(&models.AuctionModel{}).
		Where("id = ?", auctionID).
		Updates(map[string]any{"status": status, "updated_at": time.Now()}).Error
}

func (r *DefaultAuctionRepository) FindExpiredActiveAuctions(now time.Time) ([]*domain.Auction, error) {
	var auctionModels []models.AuctionModel
	if err := r.DB.
		Where("status = ? AND end_time <= ?", domain.AuctionActive, now).
		Find(&auctionModels).Error; err != nil {
		return nil, err
	}

	auctions := make([]*domain.Auction, 0, len(auctionModels))
	for i := range auctionModels {
		auction, err := mappers.ToDomainAuction(&auctionModels[i])
		if err != nil {
			return nil, err
		}
		auctions = append(auctions, auction)
	}
	return auctions, nil
}

func (r *DefaultAuctionRepository) FindUnrevealedPastDeadline(now time.Time) ([]*domain.Auction, error) {
	var auctionModels []models.AuctionModel
	if err := r.DB.
		Where("status = ? AND revealed_count = 0 AND end_time + (reveal_duration_ns / 1000 * interval '1 microsecond') <= ?",
			domain.AuctionRevealing, now).
		Find(&auctionModels).Error; err != nil {
		return nil, err
	}

	auctions := make([]*domain.Auction, 0, len(auctionModels))
	for i := range auctionModels {
		auction, err := mappers.ToDomainAuction(&auctionModels[i])
		if err != nil {
			return nil, err
		}
		auctions = append(auctions, auction)
	}
	return auctions, nil
}

func (r *DefaultAuctionRepository) GetAuctions(filter domain.AuctionFilter) ([]*domain.Auction, int64, error) {
	var auctionModels []models.AuctionModel
	var total int64

	query := r.DB.Model(&models.AuctionModel{})
	if filter.SellerID != nil {
		query = query.Where("seller_id = ?", *filter.SellerID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Asset != nil {
		query = query.Where("payment_asset = ?", *filter.Asset)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if err := query.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&auctionModels).Error; err != nil {
		return nil, 0, err
	}

	auctions := make([]*domain.Auction, 0, len(auctionModels))
	for i := range auctionModels {
		auction, err := mappers.ToDomainAuction(&auctionModels[i])
		if err != nil {
			return nil, 0, err
		}
		auctions = append(auctions, auction)
	}
	return auctions, total, nil
}
