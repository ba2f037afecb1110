package usecase

import (
	"context"
	"log/slog"

	"github.com/jaevor/go-nanoid"
	"github.com/veilmarket/auction-service/internal/domain"
	publisher "github.com/veilmarket/auction-service/internal/infrastructure/kafka"
	auctiondto "github.com/veilmarket/auction-service/internal/usecase/dto/auction"
)

func (uc *DefaultAuctionUsecase) CreateAuction(ctx context.Context, input *auctiondto.CreateAuctionInput) (*auctiondto.AuctionOutput, error) {
	config, err := uc.PlatformRepo.GetConfig()
	if err != nil {
		return nil, err
	}
	if config.Paused {
		return nil, domain.ErrPlatformPaused
	}

	if err := config.ValidateAuctionParams(input.Duration, input.RevealDuration, input.BidCollateral, input.PaymentAsset); err != nil {
		return nil, err
	}
	if err := input.Product.Validate(); err != nil {
		return nil, err
	}
	if len(input.ReservePriceHash) != 32 {
		return nil, domain.ErrInvalidParameter
	}

	now := uc.Clock.Now()
	profile, err := uc.ProfileRepo.GetOrCreateProfile(input.SellerID, now)
	if err != nil {
		return nil, err
	}
	if profile.ReputationScore < config.MinSellerReputation {
		return nil, domain.ErrInsufficientReputation
	}

	idGenerator, err := nanoid.Standard(15)
	if err != nil {
		return nil, err
	}

	escrow := &domain.Escrow{
		ID:            idGenerator(),
		PaymentAsset:  input.PaymentAsset,
		BeneficiaryID: input.SellerID,
		Status:        domain.EscrowCreated,
		CreatedAt:     now,
	}

	auction := &domain.Auction{
		ID:               idGenerator(),
		SellerID:         input.SellerID,
		Product:          input.Product,
		Title:            input.Title,
		Description:      input.Description,
		ReservePriceHash: input.ReservePriceHash,
		StartTime:        now,
		EndTime:          now.Add(input.Duration),
		RevealDuration:   input.RevealDuration,
		Status:           domain.AuctionActive,
		PaymentAsset:     input.PaymentAsset,
		BidCollateral:    input.BidCollateral,
		MinBidIncrement:  input.MinBidIncrement,
		EscrowID:         escrow.ID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	escrow.AuctionID = auction.ID

	if err := uc.AuctionRepo.CreateAuction(auction); err != nil {
		return nil, err
	}
	if err := uc.EscrowRepo.CreateEscrow(escrow); err != nil {
		return nil, err
	}

	go func(event publisher.AuctionEvent) {
		if err := uc.Publisher.PublishAuction(event); err != nil {
			slog.Error("failed to publish kafka auction event", "stage", "creating", "error", err.Error())
		}
	}(publisher.AuctionEvent{
		AuctionID:    auction.ID,
		SellerID:     auction.SellerID,
		Status:       string(auction.Status),
		PaymentAsset: auction.PaymentAsset,
	})

	uc.Index.Append(ctx, "auction_created", auctiondto.ToAuctionOutput(auction))
	uc.Metrics.AuctionsCreatedTotal.WithLabelValues(string(auction.Product.Type), auction.PaymentAsset).Inc()

	return auctiondto.ToAuctionOutput(auction), nil
}
