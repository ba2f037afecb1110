package usecase

import (
	"context"
	"log/slog"

	"github.com/veilmarket/auction-service/internal/domain"
	publisher "github.com/veilmarket/auction-service/internal/infrastructure/kafka"
)

// MarkDisputed suspends a funded escrow while a dispute is open.
func (uc *DefaultEscrowUsecase) MarkDisputed(ctx context.Context, escrowID string) error {
	uc.Locks.Lock(escrowID)
	defer uc.Locks.Unlock(escrowID)

	escrow, err := uc.EscrowRepo.GetEscrowByID(escrowID)
	if err != nil {
		return err
	}
	if escrow.Status != domain.EscrowFunded {
		return domain.ErrInvalidEscrowState
	}
	return uc.EscrowRepo.UpdateEscrowStatus(escrowID, domain.EscrowDisputed)
}

// PayoutDispute executes the resolved outcome against a disputed escrow.
// Buyer-favoring outcomes carry no platform fee; any outcome that pays the
// seller deducts the fee first. On a split the seller absorbs the integer
// remainder of the division.
func (uc *DefaultEscrowUsecase) PayoutDispute(ctx context.Context, escrowID string, outcome domain.DisputeOutcome) (uint64, uint64, error) {
	uc.Locks.Lock(escrowID)
	defer uc.Locks.Unlock(escrowID)

	escrow, err := uc.EscrowRepo.GetEscrowByID(escrowID)
	if err != nil {
		return 0, 0, err
	}
	if escrow.Status != domain.EscrowDisputed {
		return 0, 0, domain.ErrInvalidEscrowState
	}

	config, err := uc.PlatformRepo.GetConfig()
	if err != nil {
		return 0, 0, err
	}

	var refund, fee, sellerAmount uint64
	finalStatus := domain.EscrowRefunded

	switch outcome.Kind {
	case domain.OutcomeFullRefund, domain.OutcomeReturnForRefund:
		refund = escrow.Amount

	case domain.OutcomeReleaseToSeller:
		fee = config.CalculateFee(escrow.Amount)
		sellerAmount = escrow.Amount - fee
		finalStatus = domain.EscrowReleased

	case domain.OutcomeSplitFault, domain.OutcomePartialRefund:
		percentage := uint64(50)
		if outcome.Kind == domain.OutcomePartialRefund {
			percentage = uint64(outcome.Percentage)
		}
		fee = config.CalculateFee(escrow.Amount)
		remainder := escrow.Amount - fee
		refund = remainder * percentage / 100
		sellerAmount = remainder - refund
		finalStatus = domain.EscrowReleased

	default:
		return 0, 0, domain.ErrInvalidParameter
	}

	if fee > 0 {
		if err := uc.Rail.Transfer(ctx, escrowVault(escrow.ID), config.FeeCollectorID, fee, escrow.PaymentAsset, "dispute-fee:"+escrow.ID); err != nil {
			return 0, 0, err
		}
	}
	if refund > 0 {
		if err := uc.Rail.Transfer(ctx, escrowVault(escrow.ID), escrow.PayerID, refund, escrow.PaymentAsset, "dispute-refund:"+escrow.ID); err != nil {
			return 0, 0, err
		}
	}
	if sellerAmount > 0 {
		if err := uc.Rail.Transfer(ctx, escrowVault(escrow.ID), escrow.BeneficiaryID, sellerAmount, escrow.PaymentAsset, "dispute-release:"+escrow.ID); err != nil {
			return 0, 0, err
		}
	}

	now := uc.Clock.Now()
	escrow.Status = finalStatus
	if finalStatus == domain.EscrowReleased {
		escrow.ReleasedAt = &now
	}
	if err := uc.EscrowRepo.UpdateEscrow(escrow); err != nil {
		return 0, 0, err
	}

	go func(event publisher.EscrowEvent) {
		if err := uc.Publisher.PublishEscrow(event); err != nil {
			slog.Error("failed to publish kafka escrow event", "stage", "dispute_payout", "error", err.Error())
		}
	}(publisher.EscrowEvent{
		EscrowID:  escrow.ID,
		AuctionID: escrow.AuctionID,
		PayerID:   escrow.PayerID,
		Status:    string(escrow.Status),
		Amount:    escrow.Amount,
		Fee:       fee,
		Asset:     escrow.PaymentAsset,
	})

	uc.Index.Append(ctx, "dispute_payout", map[string]any{
		"escrow_id":     escrow.ID,
		"outcome":       string(outcome.Kind),
		"refund":        refund,
		"fee":           fee,
		"seller_amount": sellerAmount,
	})
	uc.Metrics.PlatformFeeTotal.WithLabelValues(escrow.PaymentAsset).Add(float64(fee))

	return refund, fee, nil
}
