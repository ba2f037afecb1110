package usecase

import (
	"context"
	"log/slog"

	"github.com/veilmarket/auction-service/internal/domain"
	publisher "github.com/veilmarket/auction-service/internal/infrastructure/kafka"
	escrowdto "github.com/veilmarket/auction-service/internal/usecase/dto/escrow"
)

// RefundEscrow returns the full payment to the buyer with no fee. Only the
// seller (voluntary refund) or the platform authority may trigger it outside
// a dispute.
func (uc *DefaultEscrowUsecase) RefundEscrow(ctx context.Context, input *escrowdto.RefundEscrowInput) error {
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

	config, err := uc.PlatformRepo.GetConfig()
	if err != nil {
		return err
	}
	if input.CallerID != escrow.BeneficiaryID && input.CallerID != config.AuthorityID {
		return domain.ErrInvalidAuthority
	}

	if err := uc.Rail.Transfer(ctx, escrowVault(escrow.ID), escrow.PayerID, escrow.Amount, escrow.PaymentAsset, "refund:"+escrow.ID); err != nil {
		uc.Metrics.OperationErrors.WithLabelValues("refund_escrow").Inc()
		return err
	}

	escrow.Status = domain.EscrowRefunded
	if err := uc.EscrowRepo.UpdateEscrow(escrow); err != nil {
		return err
	}

	go func(event publisher.EscrowEvent) {
		if err := uc.Publisher.PublishEscrow(event); err != nil {
			slog.Error("failed to publish kafka escrow event", "stage", "refunding", "error", err.Error())
		}
	}(publisher.EscrowEvent{
		EscrowID:  escrow.ID,
		AuctionID: escrow.AuctionID,
		PayerID:   escrow.PayerID,
		Status:    string(escrow.Status),
		Amount:    escrow.Amount,
		Asset:     escrow.PaymentAsset,
	})

	uc.Index.Append(ctx, "escrow_refunded", escrowdto.ToEscrowOutput(escrow))
	uc.Metrics.EscrowsRefundedTotal.WithLabelValues(string(escrow.SecurityLevel)).Inc()

	return nil
}
