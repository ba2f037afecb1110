package escrowdto

type FundEscrowInput struct {
	EscrowID string
	PayerID  string
}

type ConfirmDeliveryInput struct {
	EscrowID string
	BuyerID  string
	Proof    []byte
}

type AddSignatureInput struct {
	EscrowID string
	SignerID string
}

type ReleaseEscrowInput struct {
	EscrowID string
	CallerID string
	Rating   *uint8 // optional 0-50 seller rating from the buyer
}

type RefundEscrowInput struct {
	EscrowID string
	CallerID string
}
