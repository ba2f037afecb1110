package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/veilmarket/auction-service/internal/delivery/httpapi/dto"
	"github.com/veilmarket/auction-service/internal/domain"
	platformuc "github.com/veilmarket/auction-service/internal/usecase/platform"
)

type PlatformHandler struct {
	usecase platformuc.PlatformUsecase
}

func NewPlatformHandler(usecase platformuc.PlatformUsecase) *PlatformHandler {
	return &PlatformHandler{usecase: usecase}
}

// GetConfigHandler handles GET /platform/config
func (h *PlatformHandler) GetConfigHandler(c *gin.Context) {
	config, err := h.usecase.GetConfig()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, config)
}

// UpdateConfigHandler handles PUT /platform/config
func (h *PlatformHandler) UpdateConfigHandler(c *gin.Context) {
	var req dto.UpdateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	updated := &domain.PlatformConfig{
		FeeBps:                 req.FeeBps,
		MinBidCollateral:       req.MinBidCollateral,
		MaxBidCollateral:       req.MaxBidCollateral,
		MinSellerReputation:    req.MinSellerReputation,
		MinHighValueReputation: req.MinHighValueReputation,
		HighValueThreshold:     req.HighValueThreshold,
		SupportedAssets:        req.SupportedAssets,
		Arbitrators:            req.Arbitrators,
		FeeCollectorID:         req.FeeCollectorID,
		AuthorityID:            req.AuthorityID,
	}
	if err := h.usecase.UpdateConfig(c.Request.Context(), req.CallerID, updated); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "config updated"})
}

// PauseHandler handles POST /platform/pause
func (h *PlatformHandler) PauseHandler(c *gin.Context) {
	var req dto.PauseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}
	if err := h.usecase.Pause(c.Request.Context(), req.CallerID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "paused"})
}

// UnpauseHandler handles POST /platform/unpause
func (h *PlatformHandler) UnpauseHandler(c *gin.Context) {
	var req dto.PauseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}
	if err := h.usecase.Unpause(c.Request.Context(), req.CallerID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "unpaused"})
}
