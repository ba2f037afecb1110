package domain

import "time"

type EscrowStatus string

const (
	EscrowCreated   EscrowStatus = "CREATED"
	EscrowFunded    EscrowStatus = "FUNDED"
	EscrowReleased  EscrowStatus = "RELEASED"
	EscrowRefunded  EscrowStatus = "REFUNDED"
	EscrowDisputed  EscrowStatus = "DISPUTED"
	EscrowCancelled EscrowStatus = "CANCELLED"
)

type SecurityLevel string

const (
	SecurityStandard SecurityLevel = "STANDARD"
	SecurityEnhanced SecurityLevel = "ENHANCED"
	SecurityMaximum  SecurityLevel = "MAXIMUM"
)

// Security tiers by escrowed value (cents): Standard up to $1,000, Enhanced
// up to $10,000, Maximum above.
const (
	standardTierCap = 100_000
	enhancedTierCap = 1_000_000
)

func SecurityLevelFor(amount uint64) SecurityLevel {
	switch {
	case amount <= standardTierCap:
		return SecurityStandard
	case amount <= enhancedTierCap:
		return SecurityEnhanced
	default:
		return SecurityMaximum
	}
}

// ReleaseTermsFor maps product type to escrow release conditions: NFTs
// release immediately, physical goods wait for confirmation plus a 30-day
// window, digital goods get a 24-hour inspection window, services wait for
// confirmation plus 14 days.
func ReleaseTermsFor(productType ProductType) (requiresConfirmation bool, timeLock time.Duration) {
	switch productType {
	case ProductPhysical:
		return true, 30 * 24 * time.Hour
	case ProductDigital:
		return false, 24 * time.Hour
	case ProductService:
		return true, 14 * 24 * time.Hour
	default:
		return false, 0
	}
}

// MultiSigThreshold maps a security level to the number of release
// signatures required.
func (l SecurityLevel) MultiSigThreshold() uint8 {
	switch l {
	case SecurityEnhanced:
		return 2
	case SecurityMaximum:
		return 3
	default:
		return 1
	}
}

type ReleaseConditions struct {
	RequiresDeliveryConfirmation bool
	DeliveryConfirmed            bool
	TimeLockDuration             time.Duration
	MultiSigThreshold            uint8
	Signers                      []string
	SignaturesCollected          uint8
	ReleaseDeadline              time.Time
}

type Escrow struct {
	ID            string
	AuctionID     string
	Amount        uint64 // set exactly once at funding
	PaymentAsset  string
	BeneficiaryID string // seller
	PayerID       string // winner, empty until funded
	SecurityLevel SecurityLevel
	Conditions    ReleaseConditions
	Status        EscrowStatus
	CreatedAt     time.Time
	ReleasedAt    *time.Time
}

func (e *Escrow) CanRelease(now time.Time) error {
	if e.Status != EscrowFunded {
		return ErrInvalidEscrowState
	}
	if now.Before(e.Conditions.ReleaseDeadline) {
		return ErrTimeLockNotExpired
	}
	if e.Conditions.SignaturesCollected < e.Conditions.MultiSigThreshold {
		return ErrInsufficientSignatures
	}
	if e.Conditions.RequiresDeliveryConfirmation && !e.Conditions.DeliveryConfirmed {
		return ErrDeliveryNotConfirmed
	}
	return nil
}

func (e *Escrow) IsSigner(signerID string) bool {
	for _, s := range e.Conditions.Signers {
		if s == signerID {
			return true
		}
	}
	return false
}

type EscrowRepository interface {
	CreateEscrow(escrow *Escrow) error
	GetEscrowByID(escrowID string) (*Escrow, error)
	GetEscrowByAuctionID(auctionID string) (*Escrow, error)
	UpdateEscrow(escrow *Escrow) error
	UpdateEscrowStatus(escrowID string, status EscrowStatus) error
	// AddSignature records one release signature per signer; the second
	// signature from the same signer is a no-op returning false.
	AddSignature(escrowID, signerID string) (bool, error)
}
