package domain

import "time"

type AuctionStatus string

const (
	AuctionActive    AuctionStatus = "ACTIVE"
	AuctionRevealing AuctionStatus = "REVEALING"
	AuctionSettled   AuctionStatus = "SETTLED"
	AuctionCancelled AuctionStatus = "CANCELLED"
	AuctionExpired   AuctionStatus = "EXPIRED"
	AuctionDisputed  AuctionStatus = "DISPUTED"
)

type ProductType string

const (
	ProductNFT      ProductType = "NFT"
	ProductPhysical ProductType = "PHYSICAL"
	ProductDigital  ProductType = "DIGITAL"
	ProductService  ProductType = "SERVICE"
)

// ProductTerms is a tagged union keyed by Type. Exactly the variant matching
// Type must be present; validation is an exhaustive switch over the tag.
type ProductTerms struct {
	Type     ProductType
	NFT      *NFTTerms
	Shipping *ShippingTerms
	Digital  *DigitalTerms
	Service  *ServiceTerms
}

type NFTTerms struct {
	AssetRef string // transferable asset reference held until settlement
}

type ShippingTerms struct {
	ShipsFrom     string
	EstimatedDays uint8
	Carriers      []string
	International bool
}

type DigitalTerms struct {
	Format       string
	DeliveryRef  string // encrypted link handed to the winner
	MaxDownloads uint8
}

type ServiceTerms struct {
	Description        string
	DurationHours      uint32
	RedemptionDeadline time.Time
	Remote             bool
}

// Validate checks that the variant payload matches the product type tag.
func (p ProductTerms) Validate() error {
	switch p.Type {
	case ProductNFT:
		if p.NFT == nil || p.NFT.AssetRef == "" {
			return ErrInvalidProductType
		}
	case ProductPhysical:
		if p.Shipping == nil {
			return ErrInvalidProductType
		}
	case ProductDigital:
		if p.Digital == nil {
			return ErrInvalidProductType
		}
	case ProductService:
		if p.Service == nil {
			return ErrInvalidProductType
		}
	default:
		return ErrInvalidProductType
	}
	return nil
}

type Auction struct {
	ID                string
	SellerID          string
	Product           ProductTerms
	Title             string
	Description       string
	ReservePriceHash  []byte // keccak256(reserve_price || salt || seller)
	StartTime         time.Time
	EndTime           time.Time
	RevealDuration    time.Duration
	Status            AuctionStatus
	BidCount          uint32
	RevealedCount     uint32
	WinnerID          string // empty until a bid is revealed
	WinningAmount     uint64 // highest revealed amount
	SecondPrice       uint64 // second-highest revealed amount
	PaymentAsset      string
	BidCollateral     uint64
	MinBidIncrement   uint64
	EscrowID          string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (a *Auction) RevealDeadline() time.Time {
	return a.EndTime.Add(a.RevealDuration)
}

func (a *Auction) CanAcceptBids(now time.Time) bool {
	return a.Status == AuctionActive && !now.Before(a.StartTime) && now.Before(a.EndTime)
}

func (a *Auction) CanRevealBids(now time.Time) bool {
	return a.Status == AuctionRevealing && !now.Before(a.EndTime) && now.Before(a.RevealDeadline())
}

func (a *Auction) CanSettle(now time.Time) bool {
	return a.Status == AuctionRevealing && !now.Before(a.RevealDeadline())
}

// PaymentAmount is the second-price rule: the winner pays the second-highest
// revealed bid, or their own bid when nobody else revealed.
func (a *Auction) PaymentAmount() uint64 {
	if a.RevealedCount >= 2 {
		return a.SecondPrice
	}
	return a.WinningAmount
}

type AuctionFilter struct {
	SellerID *string
	Status   *string
	Asset    *string
	Page     int
	Limit    int
}

type AuctionRepository interface {
	CreateAuction(auction *Auction) error
	GetAuctionByID(auctionID string) (*Auction, error)
	UpdateAuction(auction *Auction) error
	UpdateAuctionStatus(auctionID string, status AuctionStatus) error
	FindExpiredActiveAuctions(now time.Time) ([]*Auction, error)
	FindUnrevealedPastDeadline(now time.Time) ([]*Auction, error)
	GetAuctions(filter AuctionFilter) ([]*Auction, int64, error)
}
