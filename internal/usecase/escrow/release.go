package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/veilmarket/auction-service/internal/domain"
	publisher "github.com/veilmarket/auction-service/internal/infrastructure/kafka"
	escrowdto "github.com/veilmarket/auction-service/internal/usecase/dto/escrow"
)

// ReleaseEscrow pays the seller once every release condition holds. The
// platform fee comes off the top; the seller receives the remainder.
func (uc *DefaultEscrowUsecase) ReleaseEscrow(ctx context.Context, input *escrowdto.ReleaseEscrowInput) error {
	if err := uc.ensureNotPaused(); err != nil {
		return err
	}

	uc.Locks.Lock(input.EscrowID)
	defer uc.Locks.Unlock(input.EscrowID)

	escrow, err := uc.EscrowRepo.GetEscrowByID(input.EscrowID)
	if err != nil {
		return err
	}
	if !escrow.IsSigner(input.CallerID) {
		return domain.ErrInvalidSigner
	}
	now := uc.Clock.Now()
	if err := escrow.CanRelease(now); err != nil {
		return err
	}

	config, err := uc.PlatformRepo.GetConfig()
	if err != nil {
		return err
	}
	fee := config.CalculateFee(escrow.Amount)
	sellerAmount, err := domain.CheckedSub(escrow.Amount, fee)
	if err != nil {
		return err
	}

	if fee > 0 {
		if err := uc.Rail.Transfer(ctx, escrowVault(escrow.ID), config.FeeCollectorID, fee, escrow.PaymentAsset, "fee:"+escrow.ID); err != nil {
			uc.Metrics.OperationErrors.WithLabelValues("release_escrow").Inc()
			return err
		}
	}
	if err := uc.Rail.Transfer(ctx, escrowVault(escrow.ID), escrow.BeneficiaryID, sellerAmount, escrow.PaymentAsset, "release:"+escrow.ID); err != nil {
		uc.Metrics.OperationErrors.WithLabelValues("release_escrow").Inc()
		return err
	}

	escrow.Status = domain.EscrowReleased
	escrow.ReleasedAt = &now
	if err := uc.EscrowRepo.UpdateEscrow(escrow); err != nil {
		return err
	}

	uc.updateProfilesAfterRelease(escrow, input.Rating, now)

	go func(event publisher.EscrowEvent) {
		if err := uc.Publisher.PublishEscrow(event); err != nil {
			slog.Error("failed to publish kafka escrow event", "stage", "releasing", "error", err.Error())
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

	uc.Index.Append(ctx, "escrow_released", escrowdto.ToEscrowOutput(escrow))
	uc.Metrics.EscrowsReleasedTotal.WithLabelValues(string(escrow.SecurityLevel)).Inc()
	uc.Metrics.SettlementAmountTotal.WithLabelValues(escrow.PaymentAsset).Add(float64(escrow.Amount))
	uc.Metrics.PlatformFeeTotal.WithLabelValues(escrow.PaymentAsset).Add(float64(fee))

	return nil
}

func (uc *DefaultEscrowUsecase) updateProfilesAfterRelease(escrow *domain.Escrow, rating *uint8, now time.Time) {
	seller, err := uc.ProfileRepo.GetOrCreateProfile(escrow.BeneficiaryID, now)
	if err != nil {
		slog.Error("failed to load seller profile", "user_id", escrow.BeneficiaryID, "error", err.Error())
		return
	}
	seller.UpdateAfterAuction(true, true, rating, escrow.Amount, now)
	if err := uc.ProfileRepo.SaveProfile(seller); err != nil {
		slog.Error("failed to save seller profile", "user_id", escrow.BeneficiaryID, "error", err.Error())
	}

	buyer, err := uc.ProfileRepo.GetOrCreateProfile(escrow.PayerID, now)
	if err != nil {
		slog.Error("failed to load buyer profile", "user_id", escrow.PayerID, "error", err.Error())
		return
	}
	buyer.UpdateAfterAuction(false, true, nil, escrow.Amount, now)
	if err := uc.ProfileRepo.SaveProfile(buyer); err != nil {
		slog.Error("failed to save buyer profile", "user_id", escrow.PayerID, "error", err.Error())
	}
}
