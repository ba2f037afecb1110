package repository

import (
	"errors"
	"time"

	"github.com/veilmarket/auction-service/internal/domain"
	"github.com/veilmarket/auction-service/internal/infrastructure/postgres/mappers"
	"github.com/veilmarket/auction-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultEscrowRepository struct {
	DB *gorm.DB
}

func NewDefaultEscrowRepository(db *gorm.DB) *DefaultEscrowRepository {
	return &DefaultEscrowRepository{DB: db}
}

func (r *DefaultEscrowRepository) CreateEscrow(escrow *domain.Escrow) error {
	escrowModel := mappers.ToGORMEscrow(escrow)
	return r.DB.Create(escrowModel).Error
}

func (r *DefaultEscrowRepository) GetEscrowByID(escrowID string) (*domain.Escrow, error) {
	var escrow models.EscrowModel
	if err := r.DB.First(&escrow, "id = ?", escrowID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return mappers.ToDomainEscrow(&escrow)
}

func (r *DefaultEscrowRepository) GetEscrowByAuctionID(auctionID string) (*domain.Escrow, error) {
	var escrow models.EscrowModel
	if err := r.DB.First(&escrow, "auction_id = ?", auctionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return mappers.ToDomainEscrow(&escrow)
}

func (r *DefaultEscrowRepository) UpdateEscrow(escrow *domain.Escrow) error {
	return r.DB.Save(mappers.ToGORMEscrow(escrow)).Error
}

func (r *DefaultEscrowRepository) UpdateEscrowStatus(escrowID string, status domain.EscrowStatus) error {
	return r.DB.Model(&models.EscrowModel{}).
		Where("id = ?", escrowID).
		Update("status", status).Error
}

// AddSignature inserts the signature and bumps the collected counter in one
// transaction. The composite primary key makes repeat signatures a no-op.
func (r *DefaultEscrowRepository) AddSignature(escrowID, signerID string) (bool, error) {
	added := false
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&models.EscrowSignatureModel{
			EscrowID: escrowID,
			SignerID: signerID,
			SignedAt: time.Now(),
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		added = true
		return tx.Model(&models.EscrowModel{}).
			Where("id = ?", escrowID).
			Update("signatures_collected", gorm.Expr("signatures_collected + 1")).Error
	})
	return added, err
}
