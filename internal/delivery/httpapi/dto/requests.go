package dto

type ProductTermsRequest struct {
	Type     string                `json:"type" binding:"required"`
	NFT      *NFTTermsRequest      `json:"nft,omitempty"`
	Shipping *ShippingTermsRequest `json:"shipping,omitempty"`
	Digital  *DigitalTermsRequest  `json:"digital,omitempty"`
	Service  *ServiceTermsRequest  `json:"service,omitempty"`
}

type NFTTermsRequest struct {
	AssetRef string `json:"asset_ref"`
}

type ShippingTermsRequest struct {
	ShipsFrom     string   `json:"ships_from"`
	EstimatedDays uint8    `json:"estimated_days"`
	Carriers      []string `json:"carriers"`
	International bool     `json:"international"`
}

type DigitalTermsRequest struct {
	Format       string `json:"format"`
	DeliveryRef  string `json:"delivery_ref"`
	MaxDownloads uint8  `json:"max_downloads"`
}

type ServiceTermsRequest struct {
	Description   string `json:"description"`
	DurationHours uint32 `json:"duration_hours"`
	Remote        bool   `json:"remote"`
}

type CreateAuctionRequest struct {
	SellerID         string              `json:"seller_id" binding:"required"`
	Title            string              `json:"title" binding:"required"`
	Description      string              `json:"description"`
	Product          ProductTermsRequest `json:"product" binding:"required"`
	ReservePriceHash string              `json:"reserve_price_hash" binding:"required"` // hex
	DurationSeconds  int64               `json:"duration_seconds" binding:"required"`
	RevealSeconds    int64               `json:"reveal_seconds" binding:"required"`
	PaymentAsset     string              `json:"payment_asset" binding:"required"`
	BidCollateral    uint64              `json:"bid_collateral" binding:"required"`
	MinBidIncrement  uint64              `json:"min_bid_increment"`
}

type SubmitBidRequest struct {
	BidderID       string `json:"bidder_id" binding:"required"`
	CommitmentHash string `json:"commitment_hash" binding:"required"` // hex
	ProofHash      string `json:"proof_hash" binding:"required"`      // hex
}

type RevealBidRequest struct {
	BidderID string `json:"bidder_id" binding:"required"`
	Amount   uint64 `json:"amount" binding:"required"`
	Salt     string `json:"salt" binding:"required"`  // hex
	Proof    string `json:"proof" binding:"required"` // hex
}

type CancelAuctionRequest struct {
	SellerID string `json:"seller_id" binding:"required"`
}

type ClaimRefundRequest struct {
	BidderID string `json:"bidder_id" binding:"required"`
}

type FundEscrowRequest struct {
	PayerID string `json:"payer_id" binding:"required"`
}

type ConfirmDeliveryRequest struct {
	BuyerID string `json:"buyer_id" binding:"required"`
	Proof   string `json:"proof"` // hex
}

type AddSignatureRequest struct {
	SignerID string `json:"signer_id" binding:"required"`
}

type ReleaseEscrowRequest struct {
	CallerID string `json:"caller_id" binding:"required"`
	Rating   *uint8 `json:"rating,omitempty"`
}

type RefundEscrowRequest struct {
	CallerID string `json:"caller_id" binding:"required"`
}

type RaiseDisputeRequest struct {
	RaisedBy    string `json:"raised_by" binding:"required"`
	Reason      string `json:"reason" binding:"required"`
	Description string `json:"description"`
}

type SubmitEvidenceRequest struct {
	SubmitterID string `json:"submitter_id" binding:"required"`
	Type        string `json:"type" binding:"required"`
	DataRef     string `json:"data_ref" binding:"required"`
}

type VoteRequest struct {
	ArbitratorID string `json:"arbitrator_id" binding:"required"`
	ForBuyer     *bool  `json:"for_buyer" binding:"required"`
	Notes        string `json:"notes"`
}

type StakeRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Amount uint64 `json:"amount" binding:"required"`
	Asset  string `json:"asset" binding:"required"`
}

type SlashStakeRequest struct {
	AuthorityID string `json:"authority_id" binding:"required"`
	UserID      string `json:"user_id" binding:"required"`
	Percentage  uint8  `json:"percentage" binding:"required"`
	Asset       string `json:"asset" binding:"required"`
}

type SetKYCRequest struct {
	AuthorityID string `json:"authority_id" binding:"required"`
	Level       uint8  `json:"level"`
}

type UpdateConfigRequest struct {
	CallerID               string   `json:"caller_id" binding:"required"`
	FeeBps                 uint16   `json:"fee_bps"`
	MinBidCollateral       uint64   `json:"min_bid_collateral"`
	MaxBidCollateral       uint64   `json:"max_bid_collateral"`
	MinSellerReputation    uint16   `json:"min_seller_reputation"`
	MinHighValueReputation uint16   `json:"min_high_value_reputation"`
	HighValueThreshold     uint64   `json:"high_value_threshold"`
	SupportedAssets        []string `json:"supported_assets"`
	Arbitrators            []string `json:"arbitrators"`
	FeeCollectorID         string   `json:"fee_collector_id"`
	AuthorityID            string   `json:"authority_id"`
}

type PauseRequest struct {
	CallerID string `json:"caller_id" binding:"required"`
}
