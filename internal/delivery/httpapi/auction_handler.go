package httpapi

import (
	"encoding/hex"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/veilmarket/auction-service/internal/delivery/httpapi/dto"
	"github.com/veilmarket/auction-service/internal/domain"
	auctiondto "github.com/veilmarket/auction-service/internal/usecase/dto/auction"
	auctionuc "github.com/veilmarket/auction-service/internal/usecase/auction"
)

type AuctionHandler struct {
	usecase auctionuc.AuctionUsecase
}

func NewAuctionHandler(usecase auctionuc.AuctionUsecase) *AuctionHandler {
	return &AuctionHandler{usecase: usecase}
}

func toProductTerms(req dto.ProductTermsRequest) domain.ProductTerms {
	terms := domain.ProductTerms{Type: domain.ProductType(req.Type)}
	if req.NFT != nil {
		terms.NFT = &domain.NFTTerms{AssetRef: req.NFT.AssetRef}
	}
	if req.Shipping != nil {
		terms.Shipping = &domain.ShippingTerms{
			ShipsFrom:     req.Shipping.ShipsFrom,
			EstimatedDays: req.Shipping.EstimatedDays,
			Carriers:      req.Shipping.Carriers,
			International: req.Shipping.International,
		}
	}
	if req.Digital != nil {
		terms.Digital = &domain.DigitalTerms{
			Format:       req.Digital.Format,
			DeliveryRef:  req.Digital.DeliveryRef,
			MaxDownloads: req.Digital.MaxDownloads,
		}
	}
	if req.Service != nil {
		terms.Service = &domain.ServiceTerms{
			Description:   req.Service.Description,
			DurationHours: req.Service.DurationHours,
			Remote:        req.Service.Remote,
		}
	}
	return terms
}

// CreateAuctionHandler handles POST /auctions
func (h *AuctionHandler) CreateAuctionHandler(c *gin.Context) {
	var req dto.CreateAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}
	reserveHash, err := hex.DecodeString(req.ReservePriceHash)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reserve_price_hash must be hex"})
		return
	}

	output, err := h.usecase.CreateAuction(c.Request.Context(), &auctiondto.CreateAuctionInput{
		SellerID:         req.SellerID,
		Title:            req.Title,
		Description:      req.Description,
		Product:          toProductTerms(req.Product),
		ReservePriceHash: reserveHash,
		Duration:         time.Duration(req.DurationSeconds) * time.Second,
		RevealDuration:   time.Duration(req.RevealSeconds) * time.Second,
		PaymentAsset:     req.PaymentAsset,
		BidCollateral:    req.BidCollateral,
		MinBidIncrement:  req.MinBidIncrement,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, output)
}

// SubmitBidHandler handles POST /auctions/:auction_id/bids
func (h *AuctionHandler) SubmitBidHandler(c *gin.Context) {
	var req dto.SubmitBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}
	commitment, err := hex.DecodeString(req.CommitmentHash)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "commitment_hash must be hex"})
		return
	}
	proof, err := hex.DecodeString(req.ProofHash)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "proof_hash must be hex"})
		return
	}

	if err := h.usecase.SubmitBid(c.Request.Context(), &auctiondto.SubmitBidInput{
		AuctionID:      c.Param("auction_id"),
		BidderID:       req.BidderID,
		CommitmentHash: commitment,
		ProofHash:      proof,
	}); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "bid committed"})
}

// RevealBidHandler handles POST /auctions/:auction_id/reveals
func (h *AuctionHandler) RevealBidHandler(c *gin.Context) {
	var req dto.RevealBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}
	salt, err := hex.DecodeString(req.Salt)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "salt must be hex"})
		return
	}
	proof, err := hex.DecodeString(req.Proof)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "proof must be hex"})
		return
	}

	if err := h.usecase.RevealBid(c.Request.Context(), &auctiondto.RevealBidInput{
		AuctionID: c.Param("auction_id"),
		BidderID:  req.BidderID,
		Amount:    req.Amount,
		Salt:      salt,
		Proof:     proof,
	}); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "bid revealed"})
}

// SettleAuctionHandler handles POST /auctions/:auction_id/settle
func (h *AuctionHandler) SettleAuctionHandler(c *gin.Context) {
	output, err := h.usecase.SettleAuction(c.Request.Context(), c.Param("auction_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, output)
}

// CancelAuctionHandler handles POST /auctions/:auction_id/cancel
func (h *AuctionHandler) CancelAuctionHandler(c *gin.Context) {
	var req dto.CancelAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	if err := h.usecase.CancelAuction(c.Request.Context(), &auctiondto.CancelAuctionInput{
		AuctionID: c.Param("auction_id"),
		SellerID:  req.SellerID,
	}); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "auction cancelled"})
}

// ClaimRefundHandler handles POST /auctions/:auction_id/refunds
func (h *AuctionHandler) ClaimRefundHandler(c *gin.Context) {
	var req dto.ClaimRefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	if err := h.usecase.ClaimRefund(c.Request.Context(), &auctiondto.ClaimRefundInput{
		AuctionID: c.Param("auction_id"),
		BidderID:  req.BidderID,
	}); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "collateral refunded"})
}

// GetAuctionHandler handles GET /auctions/:auction_id
func (h *AuctionHandler) GetAuctionHandler(c *gin.Context) {
	output, err := h.usecase.GetAuctionByID(c.Param("auction_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, output)
}

// ListAuctionsHandler handles GET /auctions
func (h *AuctionHandler) ListAuctionsHandler(c *gin.Context) {
	var filter domain.AuctionFilter
	if sellerID := c.Query("seller_id"); sellerID != "" {
		filter.SellerID = &sellerID
	}
	if status := c.Query("status"); status != "" {
		filter.Status = &status
	}
	if asset := c.Query("asset"); asset != "" {
		filter.Asset = &asset
	}
	filter.Page = intQuery(c, "page", 1)
	filter.Limit = intQuery(c, "limit", 20)

	outputs, total, err := h.usecase.GetAuctions(filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"auctions": outputs, "total": total})
}
