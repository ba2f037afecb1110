package mappers

import (
	"github.com/veilmarket/auction-service/internal/domain"
	"github.com/veilmarket/auction-service/internal/infrastructure/postgres/models"
)

func ToGORMDispute(dispute *domain.Dispute) *models.DisputeModel {
	model := &models.DisputeModel{
		ID:                 dispute.ID,
		AuctionID:          dispute.AuctionID,
		EscrowID:           dispute.EscrowID,
		BuyerID:            dispute.BuyerID,
		SellerID:           dispute.SellerID,
		RaisedBy:           dispute.RaisedBy,
		Reason:             dispute.Reason,
		Description:        dispute.Description,
		Status:             dispute.Status,
		Amount:             dispute.Amount,
		ArbitratorID:       dispute.ArbitratorID,
		RefundAmount:       dispute.RefundAmount,
		OpenedAt:           dispute.OpenedAt,
		LastActivity:       dispute.LastActivity,
		ResolvedAt:         dispute.ResolvedAt,
		EvidenceDeadline:   dispute.EvidenceDeadline,
		ResolutionDeadline: dispute.ResolutionDeadline,
		VotesCollected:     dispute.VotesCollected,
		VotesForBuyer:      dispute.VotesForBuyer,
		VotesForSeller:     dispute.VotesForSeller,
	}
	if dispute.Outcome != nil {
		model.OutcomeKind = string(dispute.Outcome.Kind)
		model.OutcomePercentage = dispute.Outcome.Percentage
	}
	return model
}

func ToDomainDispute(model *models.DisputeModel) *domain.Dispute {
	dispute := &domain.Dispute{
		ID:                 model.ID,
		AuctionID:          model.AuctionID,
		EscrowID:           model.EscrowID,
		BuyerID:            model.BuyerID,
		SellerID:           model.SellerID,
		RaisedBy:           model.RaisedBy,
		Reason:             model.Reason,
		Description:        model.Description,
		Status:             model.Status,
		Amount:             model.Amount,
		ArbitratorID:       model.ArbitratorID,
		RefundAmount:       model.RefundAmount,
		OpenedAt:           model.OpenedAt,
		LastActivity:       model.LastActivity,
		ResolvedAt:         model.ResolvedAt,
		EvidenceDeadline:   model.EvidenceDeadline,
		ResolutionDeadline: model.ResolutionDeadline,
		VotesCollected:     model.VotesCollected,
		VotesForBuyer:      model.VotesForBuyer,
		VotesForSeller:     model.VotesForSeller,
	}
	if model.OutcomeKind != "" {
		dispute.Outcome = &domain.DisputeOutcome{
			Kind:       domain.OutcomeKind(model.OutcomeKind),
			Percentage: model.OutcomePercentage,
		}
	}
	return dispute
}

func ToGORMEvidence(evidence *domain.Evidence) *models.EvidenceModel {
	return &models.EvidenceModel{
		ID:          evidence.ID,
		DisputeID:   evidence.DisputeID,
		SubmitterID: evidence.SubmitterID,
		Type:        evidence.Type,
		DataRef:     evidence.DataRef,
		SubmittedAt: evidence.SubmittedAt,
	}
}

func ToGORMVote(vote *domain.DisputeVote) *models.DisputeVoteModel {
	return &models.DisputeVoteModel{
		DisputeID:    vote.DisputeID,
		ArbitratorID: vote.ArbitratorID,
		ForBuyer:     vote.ForBuyer,
		Notes:        vote.Notes,
		VotedAt:      vote.VotedAt,
	}
}
