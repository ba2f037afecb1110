package mappers

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/veilmarket/auction-service/internal/domain"
	"github.com/veilmarket/auction-service/internal/infrastructure/postgres/models"
)

func ToGORMEscrow(escrow *domain.Escrow) *models.EscrowModel {
	signers, _ := json.Marshal(escrow.Conditions.Signers)
	return &models.EscrowModel{
		ID:                           escrow.ID,
		AuctionID:                    escrow.AuctionID,
		Amount:                       escrow.Amount,
		PaymentAsset:                 escrow.PaymentAsset,
		BeneficiaryID:                escrow.BeneficiaryID,
		PayerID:                      escrow.PayerID,
		SecurityLevel:                escrow.SecurityLevel,
		Status:                       escrow.Status,
		RequiresDeliveryConfirmation: escrow.Conditions.RequiresDeliveryConfirmation,
		DeliveryConfirmed:            escrow.Conditions.DeliveryConfirmed,
		TimeLockNs:                   int64(escrow.Conditions.TimeLockDuration),
		MultiSigThreshold:            escrow.Conditions.MultiSigThreshold,
		Signers:                      string(signers),
		SignaturesCollected:          escrow.Conditions.SignaturesCollected,
		ReleaseDeadline:              escrow.Conditions.ReleaseDeadline,
		CreatedAt:                    escrow.CreatedAt,
		ReleasedAt:                   escrow.ReleasedAt,
	}
}

func ToDomainEscrow(model *models.EscrowModel) (*domain.Escrow, error) {
	var signers []string
	if err := json.Unmarshal([]byte(model.Signers), &signers); err != nil {
		return nil, fmt.Errorf("unmarshaling signers for escrow %s: %w", model.ID, err)
	}
	return &domain.Escrow{
		ID:            model.ID,
		AuctionID:     model.AuctionID,
		Amount:        model.Amount,
		PaymentAsset:  model.PaymentAsset,
		BeneficiaryID: model.BeneficiaryID,
		PayerID:       model.PayerID,
		SecurityLevel: model.SecurityLevel,
		Conditions: domain.ReleaseConditions{
			RequiresDeliveryConfirmation: model.RequiresDeliveryConfirmation,
			DeliveryConfirmed:            model.DeliveryConfirmed,
			TimeLockDuration:             time.Duration(model.TimeLockNs),
			MultiSigThreshold:            model.MultiSigThreshold,
			Signers:                      signers,
			SignaturesCollected:          model.SignaturesCollected,
			ReleaseDeadline:              model.ReleaseDeadline,
		},
		Status:     model.Status,
		CreatedAt:  model.CreatedAt,
		ReleasedAt: model.ReleasedAt,
	}, nil
}
