package usecase

import (
	"context"

	"github.com/veilmarket/auction-service/internal/domain"
	escrowdto "github.com/veilmarket/auction-service/internal/usecase/dto/escrow"
)

func (uc *DefaultEscrowUsecase) ConfirmDelivery(ctx context.Context, input *escrowdto.ConfirmDeliveryInput) error {
	if err := uc.ensureNotPaused(); err != nil {
		return err
	}

	uc.Locks.Lock(input.EscrowID)
	defer uc.Locks.Unlock(input.EscrowID)

	escrow, err := uc.EscrowRepo.GetEscrowByID(input.EscrowID)
	if err != nil {
		return err
	}
	if escrow.Status != domain.EscrowFunded {
		return domain.ErrInvalidEscrowState
	}
	if input.BuyerID != escrow.PayerID {
		return domain.ErrOnlyBuyerCanConfirm
	}
	if escrow.Conditions.DeliveryConfirmed {
		return domain.ErrDeliveryConfirmed
	}

	if len(input.Proof) > 0 {
		if err := uc.Verifier.Verify(ctx, escrow.AuctionID, input.Proof); err != nil {
			return domain.ErrInvalidDeliveryProof
		}
	}

	escrow.Conditions.DeliveryConfirmed = true
	if err := uc.EscrowRepo.UpdateEscrow(escrow); err != nil {
		return err
	}

	uc.Index.Append(ctx, "delivery_confirmed", map[string]any{
		"escrow_id":  escrow.ID,
		"auction_id": escrow.AuctionID,
	})

	return nil
}

// AddSignature records one release approval. A repeat signature from the
// same signer is a no-op.
func (uc *DefaultEscrowUsecase) AddSignature(ctx context.Context, input *escrowdto.AddSignatureInput) error {
	if err := uc.ensureNotPaused(); err != nil {
		return err
	}

	uc.Locks.Lock(input.EscrowID)
	defer uc.Locks.Unlock(input.EscrowID)

	escrow, err := uc.EscrowRepo.GetEscrowByID(input.EscrowID)
	if err != nil {
		return err
	}
	if escrow.Status != domain.EscrowFunded {
		return domain.ErrInvalidEscrowState
	}
	if !escrow.IsSigner(input.SignerID) {
		return domain.ErrInvalidSigner
	}

	added, err := uc.EscrowRepo.AddSignature(escrow.ID, input.SignerID)
	if err != nil {
		return err
	}
	if added {
		uc.Index.Append(ctx, "escrow_signed", map[string]any{
			"escrow_id": escrow.ID,
			"signer_id": input.SignerID,
		})
	}

	return nil
}
