package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// AuctionMetrics holds all marketplace counters and histograms.
type AuctionMetrics struct {
	AuctionsCreatedTotal   prometheus.CounterVec
	AuctionsSettledTotal   prometheus.CounterVec
	AuctionsCancelledTotal prometheus.CounterVec
	AuctionsExpiredTotal   prometheus.CounterVec

	BidsSubmittedTotal prometheus.CounterVec
	BidsRevealedTotal  prometheus.CounterVec
	RevealRatio        prometheus.HistogramVec

	SettlementAmountTotal prometheus.CounterVec
	PlatformFeeTotal      prometheus.CounterVec
	CollateralForfeited   prometheus.CounterVec

	EscrowsFundedTotal   prometheus.CounterVec
	EscrowsReleasedTotal prometheus.CounterVec
	EscrowsRefundedTotal prometheus.CounterVec

	DisputesRaisedTotal   prometheus.CounterVec
	DisputesResolvedTotal prometheus.CounterVec
	DisputeResolutionTime prometheus.HistogramVec

	OperationDuration prometheus.HistogramVec
	OperationErrors   prometheus.CounterVec
}

func NewAuctionMetrics() *AuctionMetrics {
	return &AuctionMetrics{
		AuctionsCreatedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auctions_created_total",
				Help: "Total auctions created",
			},
			[]string{"product_type", "asset"},
		),

		AuctionsSettledTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auctions_settled_total",
				Help: "Total auctions settled with a winner",
			},
			[]string{"product_type", "asset"},
		),

		AuctionsCancelledTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auctions_cancelled_total",
				Help: "Total auctions cancelled by seller",
			},
			[]string{"product_type"},
		),

		AuctionsExpiredTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auctions_expired_total",
				Help: "Total auctions expired without settlement",
			},
			[]string{"reason"},
		),

		BidsSubmittedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bids_submitted_total",
				Help: "Total sealed bids committed",
			},
			[]string{"asset"},
		),

		BidsRevealedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bids_revealed_total",
				Help: "Total bids revealed in time",
			},
			[]string{"asset"},
		),

		RevealRatio: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "auction_reveal_ratio",
				Help:    "Revealed/committed ratio per settled auction",
				Buckets: prometheus.LinearBuckets(0, 0.1, 11),
			},
			[]string{"product_type"},
		),

		SettlementAmountTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "settlement_amount_cents_total",
				Help: "Total settled payment volume in cents",
			},
			[]string{"asset"},
		),

		PlatformFeeTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "platform_fee_cents_total",
				Help: "Total platform fees collected in cents",
			},
			[]string{"asset"},
		),

		CollateralForfeited: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "collateral_forfeited_cents_total",
				Help: "Collateral forfeited by unrevealed bids in cents",
			},
			[]string{"asset"},
		),

		EscrowsFundedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrows_funded_total",
				Help: "Total escrows funded by winners",
			},
			[]string{"security_level"},
		),

		EscrowsReleasedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrows_released_total",
				Help: "Total escrows released to sellers",
			},
			[]string{"security_level"},
		),

		EscrowsRefundedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrows_refunded_total",
				Help: "Total escrows refunded to buyers",
			},
			[]string{"security_level"},
		),

		DisputesRaisedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "disputes_raised_total",
				Help: "Total disputes opened",
			},
			[]string{"reason"},
		),

		DisputesResolvedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "disputes_resolved_total",
				Help: "Total disputes resolved",
			},
			[]string{"outcome"},
		),

		DisputeResolutionTime: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dispute_resolution_seconds",
				Help:    "Time from dispute open to resolution",
				Buckets: prometheus.ExponentialBuckets(3600, 2, 10),
			},
			[]string{"outcome"},
		),

		OperationDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "auction_operation_duration_seconds",
				Help:    "Usecase operation processing time",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),

		OperationErrors: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auction_operation_errors_total",
				Help: "Usecase operation failures",
			},
			[]string{"operation"},
		),
	}
}
