package domain

import "errors"

// Validation errors. Raised before any state mutation.
var (
	ErrDurationTooShort   = errors.New("auction duration is too short")
	ErrDurationTooLong    = errors.New("auction duration is too long")
	ErrCollateralTooLow   = errors.New("bid collateral is too low")
	ErrCollateralTooHigh  = errors.New("bid collateral is too high")
	ErrInvalidProductType = errors.New("invalid product type")
	ErrUnsupportedAsset   = errors.New("payment asset not supported")
	ErrInvalidParameter   = errors.New("invalid parameter")
	ErrInvalidStakeAmount = errors.New("invalid stake amount")
)

// Authorization errors.
var (
	ErrOnlySeller          = errors.New("only seller can perform this action")
	ErrOnlyBidder          = errors.New("only bidder can reveal their bid")
	ErrOnlyArbitrator      = errors.New("only arbitrator can perform this action")
	ErrOnlyBuyerCanConfirm = errors.New("only buyer can confirm delivery")
	ErrNotAParty           = errors.New("not a party to this dispute")
	ErrInvalidAuthority    = errors.New("invalid authority")
	ErrInvalidSigner       = errors.New("invalid signer for escrow")
)

// State errors. Operation attempted outside its legal state or timing window.
var (
	ErrPlatformPaused         = errors.New("platform is paused")
	ErrInvalidAuctionState    = errors.New("invalid auction state")
	ErrInvalidEscrowState     = errors.New("invalid escrow state")
	ErrInvalidDisputeState    = errors.New("invalid dispute state")
	ErrBiddingEnded           = errors.New("bidding period has ended")
	ErrNotInRevealPhase       = errors.New("auction is not in reveal phase")
	ErrRevealDeadlinePassed   = errors.New("bid reveal deadline passed")
	ErrCannotSettleYet        = errors.New("auction cannot be settled yet")
	ErrNoBidsPlaced           = errors.New("no bids revealed on auction")
	ErrCannotCancelWithBids   = errors.New("cannot cancel auction with bids")
	ErrBidAlreadyRevealed     = errors.New("bid has already been revealed")
	ErrAlreadyFunded          = errors.New("escrow is already funded")
	ErrTimeLockNotExpired     = errors.New("escrow time-lock not expired")
	ErrDeliveryNotConfirmed   = errors.New("delivery not confirmed")
	ErrDeliveryConfirmed      = errors.New("delivery already confirmed")
	ErrDisputeAlreadyExists   = errors.New("dispute already exists for this auction")
	ErrDisputeAlreadyResolved = errors.New("dispute already resolved")
	ErrCannotSubmitEvidence   = errors.New("cannot submit evidence at this time")
	ErrEvidenceDeadlinePassed = errors.New("evidence submission deadline passed")
	ErrAlreadyVoted           = errors.New("arbitrator has already voted")
	ErrWinnerCannotRefund     = errors.New("winner cannot claim collateral refund")
	ErrRefundAlreadyClaimed   = errors.New("collateral refund already claimed")
	ErrStakeLocked            = errors.New("stake is locked")
)

// Integrity errors. Cryptographic checks failed.
var (
	ErrCommitmentMismatch   = errors.New("bid commitment does not match reveal")
	ErrInvalidProof         = errors.New("invalid proof")
	ErrInvalidDeliveryProof = errors.New("invalid delivery proof")
)

// Resource errors.
var (
	ErrDuplicateBid           = errors.New("bidder has already placed a bid")
	ErrInsufficientFunds      = errors.New("insufficient funds")
	ErrInsufficientSignatures = errors.New("insufficient signatures for release")
	ErrInsufficientReputation = errors.New("seller reputation too low")
	ErrMaxEvidenceReached     = errors.New("maximum evidence limit reached")
	ErrArbitratorOverloaded   = errors.New("arbitrator cannot take more cases")
	ErrAmountOverflow         = errors.New("monetary amount overflow")
	ErrAmountUnderflow        = errors.New("monetary amount underflow")
	ErrNotFound               = errors.New("entity not found")
)
