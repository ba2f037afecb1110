package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/veilmarket/auction-service/internal/delivery/httpapi/dto"
	"github.com/veilmarket/auction-service/internal/domain"
	reputationdto "github.com/veilmarket/auction-service/internal/usecase/dto/reputation"
	reputationuc "github.com/veilmarket/auction-service/internal/usecase/reputation"
)

type ReputationHandler struct {
	usecase reputationuc.ReputationUsecase
}

func NewReputationHandler(usecase reputationuc.ReputationUsecase) *ReputationHandler {
	return &ReputationHandler{usecase: usecase}
}

// GetProfileHandler handles GET /users/:user_id/profile
func (h *ReputationHandler) GetProfileHandler(c *gin.Context) {
	output, err := h.usecase.GetProfile(c.Param("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, output)
}

// GetStakeHandler handles GET /users/:user_id/stake
func (h *ReputationHandler) GetStakeHandler(c *gin.Context) {
	output, err := h.usecase.GetStake(c.Param("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, output)
}

// DepositStakeHandler handles POST /stakes/deposit
func (h *ReputationHandler) DepositStakeHandler(c *gin.Context) {
	var req dto.StakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	if err := h.usecase.DepositStake(c.Request.Context(), &reputationdto.DepositStakeInput{
		UserID: req.UserID,
		Amount: req.Amount,
		Asset:  req.Asset,
	}); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "stake deposited"})
}

// WithdrawStakeHandler handles POST /stakes/withdraw
func (h *ReputationHandler) WithdrawStakeHandler(c *gin.Context) {
	var req dto.StakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	if err := h.usecase.WithdrawStake(c.Request.Context(), &reputationdto.WithdrawStakeInput{
		UserID: req.UserID,
		Amount: req.Amount,
		Asset:  req.Asset,
	}); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "stake withdrawn"})
}

// SlashStakeHandler handles POST /stakes/slash
func (h *ReputationHandler) SlashStakeHandler(c *gin.Context) {
	var req dto.SlashStakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	slashed, err := h.usecase.SlashStake(c.Request.Context(), &reputationdto.SlashStakeInput{
		AuthorityID: req.AuthorityID,
		UserID:      req.UserID,
		Percentage:  req.Percentage,
		Asset:       req.Asset,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slashed_amount": slashed})
}

// SetKYCHandler handles PUT /users/:user_id/kyc
func (h *ReputationHandler) SetKYCHandler(c *gin.Context) {
	var req dto.SetKYCRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	if err := h.usecase.SetKYCLevel(c.Request.Context(), &reputationdto.SetKYCLevelInput{
		AuthorityID: req.AuthorityID,
		UserID:      c.Param("user_id"),
		Level:       domain.KYCLevel(req.Level),
	}); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "kyc level updated"})
}
