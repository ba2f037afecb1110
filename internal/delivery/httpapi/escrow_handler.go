package httpapi

import (
	"encoding/hex"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/veilmarket/auction-service/internal/delivery/httpapi/dto"
	escrowdto "github.com/veilmarket/auction-service/internal/usecase/dto/escrow"
	escrowuc "github.com/veilmarket/auction-service/internal/usecase/escrow"
)

func intQuery(c *gin.Context, key string, fallback int) int {
	value, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return fallback
	}
	return value
}

type EscrowHandler struct {
	usecase escrowuc.EscrowUsecase
}

func NewEscrowHandler(usecase escrowuc.EscrowUsecase) *EscrowHandler {
	return &EscrowHandler{usecase: usecase}
}

// FundEscrowHandler handles POST /escrows/:escrow_id/fund
func (h *EscrowHandler) FundEscrowHandler(c *gin.Context) {
	var req dto.FundEscrowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	if err := h.usecase.FundEscrow(c.Request.Context(), &escrowdto.FundEscrowInput{
		EscrowID: c.Param("escrow_id"),
		PayerID:  req.PayerID,
	}); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "escrow funded"})
}

// ConfirmDeliveryHandler handles POST /escrows/:escrow_id/confirm
func (h *EscrowHandler) ConfirmDeliveryHandler(c *gin.Context) {
	var req dto.ConfirmDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}
	var proof []byte
	if req.Proof != "" {
		decoded, err := hex.DecodeString(req.Proof)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "proof must be hex"})
			return
		}
		proof = decoded
	}

	if err := h.usecase.ConfirmDelivery(c.Request.Context(), &escrowdto.ConfirmDeliveryInput{
		EscrowID: c.Param("escrow_id"),
		BuyerID:  req.BuyerID,
		Proof:    proof,
	}); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "delivery confirmed"})
}

// AddSignatureHandler handles POST /escrows/:escrow_id/signatures
func (h *EscrowHandler) AddSignatureHandler(c *gin.Context) {
	var req dto.AddSignatureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	if err := h.usecase.AddSignature(c.Request.Context(), &escrowdto.AddSignatureInput{
		EscrowID: c.Param("escrow_id"),
		SignerID: req.SignerID,
	}); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "signature recorded"})
}

// ReleaseEscrowHandler handles POST /escrows/:escrow_id/release
func (h *EscrowHandler) ReleaseEscrowHandler(c *gin.Context) {
	var req dto.ReleaseEscrowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	if err := h.usecase.ReleaseEscrow(c.Request.Context(), &escrowdto.ReleaseEscrowInput{
		EscrowID: c.Param("escrow_id"),
		CallerID: req.CallerID,
		Rating:   req.Rating,
	}); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "escrow released"})
}

// RefundEscrowHandler handles POST /escrows/:escrow_id/refund
func (h *EscrowHandler) RefundEscrowHandler(c *gin.Context) {
	var req dto.RefundEscrowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	if err := h.usecase.RefundEscrow(c.Request.Context(), &escrowdto.RefundEscrowInput{
		EscrowID: c.Param("escrow_id"),
		CallerID: req.CallerID,
	}); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "escrow refunded"})
}

// GetEscrowHandler handles GET /escrows/:escrow_id
func (h *EscrowHandler) GetEscrowHandler(c *gin.Context) {
	output, err := h.usecase.GetEscrowByID(c.Param("escrow_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, output)
}

// GetEscrowByAuctionHandler handles GET /auctions/:auction_id/escrow
func (h *EscrowHandler) GetEscrowByAuctionHandler(c *gin.Context) {
	output, err := h.usecase.GetEscrowByAuctionID(c.Param("auction_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, output)
}
