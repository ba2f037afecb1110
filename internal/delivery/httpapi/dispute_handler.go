package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/veilmarket/auction-service/internal/delivery/httpapi/dto"
	"github.com/veilmarket/auction-service/internal/domain"
	disputedto "github.com/veilmarket/auction-service/internal/usecase/dto/dispute"
	disputeuc "github.com/veilmarket/auction-service/internal/usecase/dispute"
)

type DisputeHandler struct {
	usecase disputeuc.DisputeUsecase
}

func NewDisputeHandler(usecase disputeuc.DisputeUsecase) *DisputeHandler {
	return &DisputeHandler{usecase: usecase}
}

// RaiseDisputeHandler handles POST /auctions/:auction_id/disputes
func (h *DisputeHandler) RaiseDisputeHandler(c *gin.Context) {
	var req dto.RaiseDisputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	output, err := h.usecase.RaiseDispute(c.Request.Context(), &disputedto.RaiseDisputeInput{
		AuctionID:   c.Param("auction_id"),
		RaisedBy:    req.RaisedBy,
		Reason:      domain.DisputeReason(req.Reason),
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, output)
}

// SubmitEvidenceHandler handles POST /disputes/:dispute_id/evidence
func (h *DisputeHandler) SubmitEvidenceHandler(c *gin.Context) {
	var req dto.SubmitEvidenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	if err := h.usecase.SubmitEvidence(c.Request.Context(), &disputedto.SubmitEvidenceInput{
		DisputeID:   c.Param("dispute_id"),
		SubmitterID: req.SubmitterID,
		Type:        domain.EvidenceType(req.Type),
		DataRef:     req.DataRef,
	}); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "evidence submitted"})
}

// VoteHandler handles POST /disputes/:dispute_id/votes
func (h *DisputeHandler) VoteHandler(c *gin.Context) {
	var req dto.VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ForBuyer == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	if err := h.usecase.Vote(c.Request.Context(), &disputedto.VoteInput{
		DisputeID:    c.Param("dispute_id"),
		ArbitratorID: req.ArbitratorID,
		ForBuyer:     *req.ForBuyer,
		Notes:        req.Notes,
	}); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "vote recorded"})
}

// ResolveDisputeHandler handles POST /disputes/:dispute_id/resolve
func (h *DisputeHandler) ResolveDisputeHandler(c *gin.Context) {
	if err := h.usecase.ResolveDispute(c.Request.Context(), c.Param("dispute_id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "dispute resolved"})
}

// GetDisputeHandler handles GET /disputes/:dispute_id
func (h *DisputeHandler) GetDisputeHandler(c *gin.Context) {
	output, err := h.usecase.GetDisputeByID(c.Param("dispute_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, output)
}

// ListDisputesHandler handles GET /disputes
func (h *DisputeHandler) ListDisputesHandler(c *gin.Context) {
	var filter domain.DisputeFilter
	if auctionID := c.Query("auction_id"); auctionID != "" {
		filter.AuctionID = &auctionID
	}
	if status := c.Query("status"); status != "" {
		filter.Status = &status
	}
	if partyID := c.Query("party_id"); partyID != "" {
		filter.PartyID = &partyID
	}
	filter.Page = intQuery(c, "page", 1)
	filter.Limit = intQuery(c, "limit", 20)

	outputs, total, err := h.usecase.GetDisputes(filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"disputes": outputs, "total": total})
}
