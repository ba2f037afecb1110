package usecase

import (
	"context"

	"github.com/jaevor/go-nanoid"
	"github.com/veilmarket/auction-service/internal/domain"
	disputedto "github.com/veilmarket/auction-service/internal/usecase/dto/dispute"
)

func (uc *DefaultDisputeUsecase) SubmitEvidence(ctx context.Context, input *disputedto.SubmitEvidenceInput) error {
	if err := uc.ensureNotPaused(); err != nil {
		return err
	}

	uc.Locks.Lock(input.DisputeID)
	defer uc.Locks.Unlock(input.DisputeID)

	dispute, err := uc.DisputeRepo.GetDisputeByID(input.DisputeID)
	if err != nil {
		return err
	}
	if input.SubmitterID != dispute.BuyerID && input.SubmitterID != dispute.SellerID {
		return domain.ErrNotAParty
	}
	now := uc.Clock.Now()
	if err := dispute.CanSubmitEvidence(now); err != nil {
		return err
	}

	count, err := uc.DisputeRepo.CountEvidence(dispute.ID, input.SubmitterID)
	if err != nil {
		return err
	}
	if count >= domain.MaxEvidencePerParty {
		return domain.ErrMaxEvidenceReached
	}

	idGenerator, err := nanoid.Standard(15)
	if err != nil {
		return err
	}
	evidence := &domain.Evidence{
		ID:          idGenerator(),
		DisputeID:   dispute.ID,
		SubmitterID: input.SubmitterID,
		Type:        input.Type,
		DataRef:     input.DataRef,
		SubmittedAt: now,
	}
	if err := uc.DisputeRepo.AddEvidence(evidence); err != nil {
		return err
	}

	if dispute.Status == domain.DisputeOpened {
		dispute.Status = domain.DisputeEvidenceSubmitted
	}
	dispute.LastActivity = now
	if err := uc.DisputeRepo.UpdateDispute(dispute); err != nil {
		return err
	}

	uc.Index.Append(ctx, "evidence_submitted", map[string]any{
		"dispute_id":   dispute.ID,
		"submitter_id": input.SubmitterID,
		"type":         string(input.Type),
	})

	return nil
}
