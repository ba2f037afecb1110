package repository

import (
	"errors"

	"github.com/veilmarket/auction-service/internal/domain"
	"github.com/veilmarket/auction-service/internal/infrastructure/postgres/mappers"
	"github.com/veilmarket/auction-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultDisputeRepository struct {
	DB *gorm.DB
}

func NewDefaultDisputeRepository(db *gorm.DB) *DefaultDisputeRepository {
	return &DefaultDisputeRepository{DB: db}
}

func (r *DefaultDisputeRepository) CreateDispute(dispute *domain.Dispute) error {
	return r.DB.Create(mappers.ToGORMDispute(dispute)).Error
}

func (r *DefaultDisputeRepository) GetDisputeByID(disputeID string) (*domain.Dispute, error) {
	var dispute models.DisputeModel
	if err := r.DB.First(&dispute, "id = ?", disputeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return mappers.ToDomainDispute(&dispute), nil
}

func (r *DefaultDisputeRepository) GetOpenDisputeByAuctionID(auctionID string) (*domain.Dispute, error) {
	var dispute models.DisputeModel
	if err := r.DB.
		Where("auction_id = ? AND status NOT IN (?)", auctionID, []domain.DisputeStatus{
			domain.DisputeResolvedBuyer,
			domain.DisputeResolvedSeller,
			domain.DisputeResolvedPartial,
			domain.DisputeCancelled,
		}).
		First(&dispute).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return mappers.ToDomainDispute(&dispute), nil
}

func (r *DefaultDisputeRepository) UpdateDispute(dispute *domain.Dispute) error {
	return r.DB.Save(mappers.ToGORMDispute(dispute)).Error
}

func (r *DefaultDisputeRepository) AddEvidence(evidence *domain.Evidence) error {
	return r.DB.Create(mappers.ToGORMEvidence(evidence)).Error
}

func (r *DefaultDisputeRepository) CountEvidence(disputeID, submitterID string) (int64, error) {
	var count int64
	err := r.DB.Model(&models.EvidenceModel{}).
		Where("dispute_id = ? AND submitter_id = ?", disputeID, submitterID).
		Count(&count).Error
	return count, err
}

func (r *DefaultDisputeRepository) AddVote(vote *domain.DisputeVote) error {
	return r.DB.Create(mappers.ToGORMVote(vote)).Error
}

func (r *DefaultDisputeRepository) HasVoted(disputeID, arbitratorID string) (bool, error) {
	var count int64
	err := r.DB.Model(&models.DisputeVoteModel{}).
		Where("dispute_id = ? AND arbitrator_id = ?", disputeID, arbitratorID).
		Count(&count).Error
	return count > 0, err
}

func (r *DefaultDisputeRepository) GetDisputes(filter domain.DisputeFilter) ([]*domain.Dispute, int64, error) {
	var disputeModels []models.DisputeModel
	var total int64

	query := r.DB.Model(&models.DisputeModel{})
	if filter.AuctionID != nil {
		query = query.Where("auction_id = ?", *filter.AuctionID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.PartyID != nil {
		query = query.Where("buyer_id = ? OR seller_id = ?", *filter.PartyID, *filter.PartyID)
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
		Order("opened_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&disputeModels).Error; err != nil {
		return nil, 0, err
	}

	disputes := make([]*domain.Dispute, 0, len(disputeModels))
	for i := range disputeModels {
		disputes = append(disputes, mappers.ToDomainDispute(&disputeModels[i]))
	}
	return disputes, total, nil
}
