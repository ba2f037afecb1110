package httpapi

import (
	"github.com/gin-gonic/gin"

	auctionuc "github.com/veilmarket/auction-service/internal/usecase/auction"
	disputeuc "github.com/veilmarket/auction-service/internal/usecase/dispute"
	escrowuc "github.com/veilmarket/auction-service/internal/usecase/escrow"
	platformuc "github.com/veilmarket/auction-service/internal/usecase/platform"
	reputationuc "github.com/veilmarket/auction-service/internal/usecase/reputation"
)

// SetupRouter configures all Gin routes for the marketplace API.
func SetupRouter(
	auctionUsecase auctionuc.AuctionUsecase,
	escrowUsecase escrowuc.EscrowUsecase,
	disputeUsecase disputeuc.DisputeUsecase,
	reputationUsecase reputationuc.ReputationUsecase,
	platformUsecase platformuc.PlatformUsecase) *gin.Engine {

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLoggerMiddleware)

	auctionHandler := NewAuctionHandler(auctionUsecase)
	escrowHandler := NewEscrowHandler(escrowUsecase)
	disputeHandler := NewDisputeHandler(disputeUsecase)
	reputationHandler := NewReputationHandler(reputationUsecase)
	platformHandler := NewPlatformHandler(platformUsecase)

	auctions := router.Group("/auctions")
	{
		auctions.POST("", auctionHandler.CreateAuctionHandler)
		auctions.GET("", auctionHandler.ListAuctionsHandler)
		auctions.GET("/:auction_id", auctionHandler.GetAuctionHandler)
		auctions.POST("/:auction_id/bids", auctionHandler.SubmitBidHandler)
		auctions.POST("/:auction_id/reveals", auctionHandler.RevealBidHandler)
		auctions.POST("/:auction_id/settle", auctionHandler.SettleAuctionHandler)
		auctions.POST("/:auction_id/cancel", auctionHandler.CancelAuctionHandler)
		auctions.POST("/:auction_id/refunds", auctionHandler.ClaimRefundHandler)
		auctions.GET("/:auction_id/escrow", escrowHandler.GetEscrowByAuctionHandler)
		auctions.POST("/:auction_id/disputes", disputeHandler.RaiseDisputeHandler)
	}

	escrows := router.Group("/escrows")
	{
		escrows.GET("/:escrow_id", escrowHandler.GetEscrowHandler)
		escrows.POST("/:escrow_id/fund", escrowHandler.FundEscrowHandler)
		escrows.POST("/:escrow_id/confirm", escrowHandler.ConfirmDeliveryHandler)
		escrows.POST("/:escrow_id/signatures", escrowHandler.AddSignatureHandler)
		escrows.POST("/:escrow_id/release", escrowHandler.ReleaseEscrowHandler)
		escrows.POST("/:escrow_id/refund", escrowHandler.RefundEscrowHandler)
	}

	disputes := router.Group("/disputes")
	{
		disputes.GET("", disputeHandler.ListDisputesHandler)
		disputes.GET("/:dispute_id", disputeHandler.GetDisputeHandler)
		disputes.POST("/:dispute_id/evidence", disputeHandler.SubmitEvidenceHandler)
		disputes.POST("/:dispute_id/votes", disputeHandler.VoteHandler)
		disputes.POST("/:dispute_id/resolve", disputeHandler.ResolveDisputeHandler)
	}

	users := router.Group("/users")
	{
		users.GET("/:user_id/profile", reputationHandler.GetProfileHandler)
		users.GET("/:user_id/stake", reputationHandler.GetStakeHandler)
		users.PUT("/:user_id/kyc", reputationHandler.SetKYCHandler)
	}

	stakes := router.Group("/stakes")
	{
		stakes.POST("/deposit", reputationHandler.DepositStakeHandler)
		stakes.POST("/withdraw", reputationHandler.WithdrawStakeHandler)
		stakes.POST("/slash", reputationHandler.SlashStakeHandler)
	}

	platform := router.Group("/platform")
	{
		platform.GET("/config", platformHandler.GetConfigHandler)
		platform.PUT("/config", platformHandler.UpdateConfigHandler)
		platform.POST("/pause", platformHandler.PauseHandler)
		platform.POST("/unpause", platformHandler.UnpauseHandler)
	}

	return router
}
