package postgres

import (
	"log"

	"github.com/veilmarket/auction-service/internal/config"
	"github.com/veilmarket/auction-service/internal/infrastructure/postgres/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func MustInitDB(cfg *config.AuctionConfig) *gorm.DB {
	dsn := cfg.AuctionDB.Dsn
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	db.AutoMigrate(
		&models.AuctionModel{},
		&models.BidCommitmentModel{},
		&models.CollateralPoolModel{},
		&models.EscrowModel{},
		&models.EscrowSignatureModel{},
		&models.DisputeModel{},
		&models.EvidenceModel{},
		&models.DisputeVoteModel{},
		&models.UserProfileModel{},
		&models.ReputationStakeModel{},
		&models.ArbitratorModel{},
		&models.PlatformConfigModel{},
	)

	return db
}
