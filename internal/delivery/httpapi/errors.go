package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/veilmarket/auction-service/internal/domain"
)

// MapErrorToHTTP translates domain errors into HTTP status codes.
func MapErrorToHTTP(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, domain.ErrOnlySeller),
		errors.Is(err, domain.ErrOnlyBidder),
		errors.Is(err, domain.ErrOnlyArbitrator),
		errors.Is(err, domain.ErrOnlyBuyerCanConfirm),
		errors.Is(err, domain.ErrNotAParty),
		errors.Is(err, domain.ErrInvalidAuthority),
		errors.Is(err, domain.ErrInvalidSigner):
		return http.StatusForbidden

	case errors.Is(err, domain.ErrDuplicateBid),
		errors.Is(err, domain.ErrDisputeAlreadyExists),
		errors.Is(err, domain.ErrAlreadyVoted),
		errors.Is(err, domain.ErrBidAlreadyRevealed),
		errors.Is(err, domain.ErrAlreadyFunded),
		errors.Is(err, domain.ErrRefundAlreadyClaimed),
		errors.Is(err, domain.ErrDeliveryConfirmed):
		return http.StatusConflict

	case errors.Is(err, domain.ErrPlatformPaused),
		errors.Is(err, domain.ErrInvalidAuctionState),
		errors.Is(err, domain.ErrInvalidEscrowState),
		errors.Is(err, domain.ErrInvalidDisputeState),
		errors.Is(err, domain.ErrBiddingEnded),
		errors.Is(err, domain.ErrNotInRevealPhase),
		errors.Is(err, domain.ErrRevealDeadlinePassed),
		errors.Is(err, domain.ErrCannotSettleYet),
		errors.Is(err, domain.ErrNoBidsPlaced),
		errors.Is(err, domain.ErrCannotCancelWithBids),
		errors.Is(err, domain.ErrTimeLockNotExpired),
		errors.Is(err, domain.ErrDeliveryNotConfirmed),
		errors.Is(err, domain.ErrDisputeAlreadyResolved),
		errors.Is(err, domain.ErrCannotSubmitEvidence),
		errors.Is(err, domain.ErrEvidenceDeadlinePassed),
		errors.Is(err, domain.ErrWinnerCannotRefund),
		errors.Is(err, domain.ErrStakeLocked),
		errors.Is(err, domain.ErrInsufficientSignatures),
		errors.Is(err, domain.ErrInsufficientReputation),
		errors.Is(err, domain.ErrArbitratorOverloaded),
		errors.Is(err, domain.ErrMaxEvidenceReached):
		return http.StatusConflict

	case errors.Is(err, domain.ErrCommitmentMismatch),
		errors.Is(err, domain.ErrInvalidProof),
		errors.Is(err, domain.ErrInvalidDeliveryProof):
		return http.StatusUnprocessableEntity

	case errors.Is(err, domain.ErrDurationTooShort),
		errors.Is(err, domain.ErrDurationTooLong),
		errors.Is(err, domain.ErrCollateralTooLow),
		errors.Is(err, domain.ErrCollateralTooHigh),
		errors.Is(err, domain.ErrInvalidProductType),
		errors.Is(err, domain.ErrUnsupportedAsset),
		errors.Is(err, domain.ErrInvalidParameter),
		errors.Is(err, domain.ErrInvalidStakeAmount),
		errors.Is(err, domain.ErrAmountOverflow),
		errors.Is(err, domain.ErrAmountUnderflow):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	c.JSON(MapErrorToHTTP(err), gin.H{"error": err.Error()})
}
