package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/veilmarket/auction-service/internal/client"
	"github.com/veilmarket/auction-service/internal/config"
	"github.com/veilmarket/auction-service/internal/delivery/httpapi"
	"github.com/veilmarket/auction-service/internal/domain"
	publisher "github.com/veilmarket/auction-service/internal/infrastructure/kafka"
	"github.com/veilmarket/auction-service/internal/infrastructure/metrics"
	"github.com/veilmarket/auction-service/internal/infrastructure/migrate"
	"github.com/veilmarket/auction-service/internal/infrastructure/postgres"
	"github.com/veilmarket/auction-service/internal/infrastructure/postgres/repository"
	"github.com/veilmarket/auction-service/internal/infrastructure/proof"
	"github.com/veilmarket/auction-service/internal/keylock"
	auctionuc "github.com/veilmarket/auction-service/internal/usecase/auction"
	disputeuc "github.com/veilmarket/auction-service/internal/usecase/dispute"
	escrowuc "github.com/veilmarket/auction-service/internal/usecase/escrow"
	platformuc "github.com/veilmarket/auction-service/internal/usecase/platform"
	reputationuc "github.com/veilmarket/auction-service/internal/usecase/reputation"
)

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()
	setupLogger(cfg.LogConfig)

	// Init database
	db := postgres.MustInitDB(cfg)

	if migrationsPath := os.Getenv("AUCTION_MIGRATIONS_PATH"); migrationsPath != "" {
		if err := migrate.RunMigrations(db, migrationsPath); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	// Kafka publishers and the append-only index log
	brokers := []string{fmt.Sprintf("%s:%s", cfg.KafkaService.Host, cfg.KafkaService.Port)}
	kafkaPublisher := publisher.NewKafkaPublisher(brokers, "auction-events")
	indexLog := publisher.NewIndexLog(brokers, "auction-index")

	// Payment rail client
	rail, err := client.NewHTTPPaymentRail(fmt.Sprintf("%s:%s", cfg.PaymentRail.Host, cfg.PaymentRail.Port))
	if err != nil {
		log.Fatalf("failed to init payment rail client: %v", err)
	}

	auctionMetrics := metrics.NewAuctionMetrics()
	clock := domain.RealClock{}
	locks := keylock.New()

	// Repos
	auctionRepo := repository.NewDefaultAuctionRepository(db)
	bidRepo := repository.NewDefaultBidRepository(db)
	collateralRepo := repository.NewDefaultCollateralRepository(db)
	escrowRepo := repository.NewDefaultEscrowRepository(db)
	disputeRepo := repository.NewDefaultDisputeRepository(db)
	profileRepo := repository.NewDefaultProfileRepository(db)
	arbitratorRepo := repository.NewDefaultArbitratorRepository(db)
	platformRepo := repository.NewDefaultPlatformRepository(db)

	if err := platformRepo.EnsureConfig(cfg.Platform.AuthorityID, cfg.Platform.FeeCollectorID); err != nil {
		log.Fatalf("failed to seed platform config: %v", err)
	}

	verifier := proof.NewKeccakVerifier(auctionRepo, bidRepo)

	// Usecases
	auctionUsecase := auctionuc.NewDefaultAuctionUsecase(
		auctionRepo,
		bidRepo,
		escrowRepo,
		collateralRepo,
		platformRepo,
		profileRepo,
		rail,
		kafkaPublisher,
		indexLog,
		auctionMetrics,
		clock,
		locks,
	)
	escrowUsecase := escrowuc.NewDefaultEscrowUsecase(
		escrowRepo,
		auctionRepo,
		bidRepo,
		collateralRepo,
		platformRepo,
		profileRepo,
		rail,
		verifier,
		kafkaPublisher,
		indexLog,
		auctionMetrics,
		clock,
		locks,
	)
	disputeUsecase := disputeuc.NewDefaultDisputeUsecase(
		disputeRepo,
		auctionRepo,
		escrowRepo,
		platformRepo,
		profileRepo,
		arbitratorRepo,
		escrowUsecase,
		rail,
		kafkaPublisher,
		indexLog,
		auctionMetrics,
		clock,
		locks,
	)
	reputationUsecase := reputationuc.NewDefaultReputationUsecase(
		profileRepo,
		platformRepo,
		rail,
		indexLog,
		auctionMetrics,
		clock,
		locks,
	)
	platformUsecase := platformuc.NewDefaultPlatformUsecase(platformRepo, indexLog, clock)

	// Periodic sweep of auctions past their bidding or reveal deadline
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()

		for range ticker.C {
			if err := auctionUsecase.SweepExpiredAuctions(context.Background()); err != nil {
				slog.Error("expired auction sweep failed", "error", err.Error())
			}
		}
	}()

	// Metrics endpoint
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		metricsAddr := fmt.Sprintf("%s:%s", cfg.MetricsServer.Host, cfg.MetricsServer.Port)
		slog.Info("metrics server listening", "addr", metricsAddr)
		if err := http.ListenAndServe(metricsAddr, mux); err != nil {
			slog.Error("metrics server stopped", "error", err.Error())
		}
	}()

	router := httpapi.SetupRouter(auctionUsecase, escrowUsecase, disputeUsecase, reputationUsecase, platformUsecase)

	addr := fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port)
	slog.Info("auction service listening", "addr", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("http server stopped: %v", err)
	}
}
