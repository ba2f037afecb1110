package kafka

type AuctionEvent struct {
	AuctionID     string `json:"auction_id"`
	SellerID      string `json:"seller_id"`
	Status        string `json:"status"`
	BidCount      uint32 `json:"bid_count"`
	RevealedCount uint32 `json:"revealed_count"`
	WinnerID      string `json:"winner_id,omitempty"`
	PaymentAmount uint64 `json:"payment_amount,omitempty"`
	PaymentAsset  string `json:"payment_asset"`
}

type EscrowEvent struct {
	EscrowID  string `json:"escrow_id"`
	AuctionID string `json:"auction_id"`
	PayerID   string `json:"payer_id"`
	Status    string `json:"status"`
	Amount    uint64 `json:"amount"`
	Fee       uint64 `json:"fee"`
	Asset     string `json:"asset"`
}

type DisputeEvent struct {
	DisputeID string `json:"dispute_id"`
	AuctionID string `json:"auction_id"`
	EscrowID  string `json:"escrow_id"`
	RaisedBy  string `json:"raised_by"`
	Reason    string `json:"reason"`
	Status    string `json:"status"`
	Outcome   string `json:"outcome,omitempty"`
}
