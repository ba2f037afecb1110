package mappers

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/veilmarket/auction-service/internal/domain"
	"github.com/veilmarket/auction-service/internal/infrastructure/postgres/models"
)

func ToGORMProfile(profile *domain.UserProfile) *models.UserProfileModel {
	return &models.UserProfileModel{
		UserID:               profile.UserID,
		ReputationScore:      profile.ReputationScore,
		AuctionsAsSeller:     profile.AuctionsAsSeller,
		AuctionsAsBuyer:      profile.AuctionsAsBuyer,
		SuccessfulDeliveries: profile.SuccessfulDeliveries,
		DisputesAgainst:      profile.DisputesAgainst,
		DisputesRaised:       profile.DisputesRaised,
		DisputesWon:          profile.DisputesWon,
		TotalVolume:          profile.TotalVolume,
		AverageRating:        profile.AverageRating,
		RatingCount:          profile.RatingCount,
		KYCLevel:             profile.KYCLevel,
		StakedAmount:         profile.StakedAmount,
		CreatedAt:            profile.CreatedAt,
		LastActive:           profile.LastActive,
	}
}

func ToDomainProfile(model *models.UserProfileModel) *domain.UserProfile {
	return &domain.UserProfile{
		UserID:               model.UserID,
		ReputationScore:      model.ReputationScore,
		AuctionsAsSeller:     model.AuctionsAsSeller,
		AuctionsAsBuyer:      model.AuctionsAsBuyer,
		SuccessfulDeliveries: model.SuccessfulDeliveries,
		DisputesAgainst:      model.DisputesAgainst,
		DisputesRaised:       model.DisputesRaised,
		DisputesWon:          model.DisputesWon,
		TotalVolume:          model.TotalVolume,
		AverageRating:        model.AverageRating,
		RatingCount:          model.RatingCount,
		KYCLevel:             model.KYCLevel,
		StakedAmount:         model.StakedAmount,
		CreatedAt:            model.CreatedAt,
		LastActive:           model.LastActive,
	}
}

func ToGORMStake(stake *domain.ReputationStake) *models.ReputationStakeModel {
	return &models.ReputationStakeModel{
		UserID:           stake.UserID,
		Amount:           stake.Amount,
		LockUntil:        stake.LockUntil,
		LockedForDispute: stake.LockedForDispute,
	}
}

func ToDomainStake(model *models.ReputationStakeModel) *domain.ReputationStake {
	return &domain.ReputationStake{
		UserID:           model.UserID,
		Amount:           model.Amount,
		LockUntil:        model.LockUntil,
		LockedForDispute: model.LockedForDispute,
	}
}

func ToGORMArbitrator(record *domain.ArbitratorRecord) *models.ArbitratorModel {
	return &models.ArbitratorModel{
		UserID:             record.UserID,
		Active:             record.Active,
		CasesAssigned:      record.CasesAssigned,
		CasesResolved:      record.CasesResolved,
		AvgResolutionNs:    int64(record.AvgResolutionTime),
		FeesEarned:         record.FeesEarned,
		RegisteredAt:       record.RegisteredAt,
		LastCaseResolvedAt: record.LastCaseResolvedAt,
	}
}

func ToDomainArbitrator(model *models.ArbitratorModel) *domain.ArbitratorRecord {
	return &domain.ArbitratorRecord{
		UserID:             model.UserID,
		Active:             model.Active,
		CasesAssigned:      model.CasesAssigned,
		CasesResolved:      model.CasesResolved,
		AvgResolutionTime:  time.Duration(model.AvgResolutionNs),
		FeesEarned:         model.FeesEarned,
		RegisteredAt:       model.RegisteredAt,
		LastCaseResolvedAt: model.LastCaseResolvedAt,
	}
}

func ToGORMPlatformConfig(config *domain.PlatformConfig) *models.PlatformConfigModel {
	assets, _ := json.Marshal(config.SupportedAssets)
	arbitrators, _ := json.Marshal(config.Arbitrators)
	return &models.PlatformConfigModel{
		ID:                     1,
		FeeBps:                 config.FeeBps,
		MinBidCollateral:       config.MinBidCollateral,
		MaxBidCollateral:       config.MaxBidCollateral,
		MinSellerReputation:    config.MinSellerReputation,
		MinHighValueReputation: config.MinHighValueReputation,
		HighValueThreshold:     config.HighValueThreshold,
		Paused:                 config.Paused,
		SupportedAssets:        string(assets),
		Arbitrators:            string(arbitrators),
		FeeCollectorID:         config.FeeCollectorID,
		AuthorityID:            config.AuthorityID,
		Version:                config.Version,
		UpdatedAt:              config.UpdatedAt,
	}
}

func ToDomainPlatformConfig(model *models.PlatformConfigModel) (*domain.PlatformConfig, error) {
	var assets, arbitrators []string
	if err := json.Unmarshal([]byte(model.SupportedAssets), &assets); err != nil {
		return nil, fmt.Errorf("unmarshaling supported assets: %w", err)
	}
	if err := json.Unmarshal([]byte(model.Arbitrators), &arbitrators); err != nil {
		return nil, fmt.Errorf("unmarshaling arbitrators: %w", err)
	}
	return &domain.PlatformConfig{
		FeeBps:                 model.FeeBps,
		MinBidCollateral:       model.MinBidCollateral,
		MaxBidCollateral:       model.MaxBidCollateral,
		MinSellerReputation:    model.MinSellerReputation,
		MinHighValueReputation: model.MinHighValueReputation,
		HighValueThreshold:     model.HighValueThreshold,
		Paused:                 model.Paused,
		SupportedAssets:        assets,
		Arbitrators:            arbitrators,
		FeeCollectorID:         model.FeeCollectorID,
		AuthorityID:            model.AuthorityID,
		Version:                model.Version,
		UpdatedAt:              model.UpdatedAt,
	}, nil
}
