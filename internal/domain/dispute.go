package domain

import "time"

type DisputeStatus string

const (
	DisputeOpened            DisputeStatus = "OPENED"
	DisputeEvidenceSubmitted DisputeStatus = "EVIDENCE_SUBMITTED"
	DisputeUnderReview       DisputeStatus = "UNDER_REVIEW"
	DisputeAwaitingInfo      DisputeStatus = "AWAITING_INFO"
	DisputeResolvedBuyer     DisputeStatus = "RESOLVED_BUYER"
	DisputeResolvedSeller    DisputeStatus = "RESOLVED_SELLER"
	DisputeResolvedPartial   DisputeStatus = "RESOLVED_PARTIAL"
	DisputeCancelled         DisputeStatus = "CANCELLED"
	DisputeEscalated         DisputeStatus = "ESCALATED"
)

func (s DisputeStatus) Resolved() bool {
	switch s {
	case DisputeResolvedBuyer, DisputeResolvedSeller, DisputeResolvedPartial:
		return true
	}
	return false
}

type DisputeReason string

const (
	ReasonNonDelivery        DisputeReason = "NON_DELIVERY"
	ReasonNotAsDescribed     DisputeReason = "NOT_AS_DESCRIBED"
	ReasonDamagedInTransit   DisputeReason = "DAMAGED_IN_TRANSIT"
	ReasonCounterfeit        DisputeReason = "COUNTERFEIT"
	ReasonSellerNotShipping  DisputeReason = "SELLER_NOT_SHIPPING"
	ReasonFalseNonDelivery   DisputeReason = "FALSE_NON_DELIVERY"
	ReasonServiceNotProvided DisputeReason = "SERVICE_NOT_PROVIDED"
	ReasonDigitalAccess      DisputeReason = "DIGITAL_ACCESS_ISSUE"
	ReasonOther              DisputeReason = "OTHER"
)

type OutcomeKind string

const (
	OutcomeFullRefund      OutcomeKind = "FULL_REFUND"
	OutcomePartialRefund   OutcomeKind = "PARTIAL_REFUND"
	OutcomeReleaseToSeller OutcomeKind = "RELEASE_TO_SELLER"
	OutcomeReturnForRefund OutcomeKind = "RETURN_FOR_REFUND"
	OutcomeSplitFault      OutcomeKind = "SPLIT_FAULT"
)

// DisputeOutcome is a sum type; Percentage is only meaningful for
// OutcomePartialRefund.
type DisputeOutcome struct {
	Kind       OutcomeKind
	Percentage uint8
}

type EvidenceType string

const (
	EvidencePhoto      EvidenceType = "PHOTO"
	EvidenceVideo      EvidenceType = "VIDEO"
	EvidenceMessageLog EvidenceType = "MESSAGE_LOG"
	EvidenceTracking   EvidenceType = "TRACKING"
	EvidenceReceipt    EvidenceType = "RECEIPT"
	EvidenceExpert     EvidenceType = "EXPERT_OPINION"
	EvidenceOther      EvidenceType = "OTHER"
)

type Evidence struct {
	ID          string
	DisputeID   string
	SubmitterID string
	Type        EvidenceType
	DataRef     string // off-platform reference to the encrypted payload
	SubmittedAt time.Time
}

type DisputeVote struct {
	DisputeID    string
	ArbitratorID string
	ForBuyer     bool
	Notes        string
	VotedAt      time.Time
}

const (
	MaxEvidencePerParty = 10
	MinVotesToResolve   = 2
	EvidencePeriod      = 7 * 24 * time.Hour
	ResolutionPeriod    = 14 * 24 * time.Hour
)

type Dispute struct {
	ID                 string
	AuctionID          string
	EscrowID           string
	BuyerID            string
	SellerID           string
	RaisedBy           string
	Reason             DisputeReason
	Description        string
	Status             DisputeStatus
	Amount             uint64
	BuyerEvidence      []Evidence
	SellerEvidence     []Evidence
	ArbitratorID       string // arbitrator of record, set on first vote
	Outcome            *DisputeOutcome
	RefundAmount       uint64
	OpenedAt           time.Time
	LastActivity       time.Time
	ResolvedAt         *time.Time
	EvidenceDeadline   time.Time
	ResolutionDeadline time.Time
	VotesCollected     uint8
	VotesForBuyer      uint8
	VotesForSeller     uint8
}

func (d *Dispute) CanSubmitEvidence(now time.Time) error {
	switch d.Status {
	case DisputeOpened, DisputeEvidenceSubmitted, DisputeAwaitingInfo:
	default:
		return ErrCannotSubmitEvidence
	}
	if !now.Before(d.EvidenceDeadline) {
		return ErrEvidenceDeadlinePassed
	}
	return nil
}

// DetermineOutcome maps the vote tally to an outcome. A tie is a split.
func (d *Dispute) DetermineOutcome() DisputeOutcome {
	switch {
	case d.VotesForBuyer > d.VotesForSeller:
		return DisputeOutcome{Kind: OutcomeFullRefund}
	case d.VotesForSeller > d.VotesForBuyer:
		return DisputeOutcome{Kind: OutcomeReleaseToSeller}
	default:
		return DisputeOutcome{Kind: OutcomeSplitFault}
	}
}

type DisputeFilter struct {
	AuctionID *string
	Status    *string
	PartyID   *string
	Page      int
	Limit     int
}

type DisputeRepository interface {
	CreateDispute(dispute *Dispute) error
	GetDisputeByID(disputeID string) (*Dispute, error)
	GetOpenDisputeByAuctionID(auctionID string) (*Dispute, error)
	UpdateDispute(dispute *Dispute) error
	AddEvidence(evidence *Evidence) error
	CountEvidence(disputeID, submitterID string) (int64, error)
	AddVote(vote *DisputeVote) error
	HasVoted(disputeID, arbitratorID string) (bool, error)
	GetDisputes(filter DisputeFilter) ([]*Dispute, int64, error)
}
