package disputedto

import "github.com/veilmarket/auction-service/internal/domain"

type RaiseDisputeInput struct {
	AuctionID   string
	RaisedBy    string
	Reason      domain.DisputeReason
	Description string
}

type SubmitEvidenceInput struct {
	DisputeID   string
	SubmitterID string
	Type        domain.EvidenceType
	DataRef     string
}

type VoteInput struct {
	DisputeID    string
	ArbitratorID string
	ForBuyer     bool
	Notes        string
}
