package domain

import "time"

const (
	MaxFeeBps           = 1000 // 10%
	MaxSupportedAssets  = 10
	MaxArbitrators      = 10
	MinAuctionDuration  = time.Hour
	MaxAuctionDuration  = 30 * 24 * time.Hour
	MinRevealDuration   = time.Hour
	MaxRevealDuration   = 7 * 24 * time.Hour
)

// PlatformConfig is a versioned singleton. Every admin update bumps Version
// so concurrent writers fail instead of silently racing.
type PlatformConfig struct {
	FeeBps                 uint16
	MinBidCollateral       uint64
	MaxBidCollateral       uint64
	MinSellerReputation    uint16
	MinHighValueReputation uint16
	HighValueThreshold     uint64
	Paused                 bool
	SupportedAssets        []string
	Arbitrators            []string
	FeeCollectorID         string
	AuthorityID            string
	Version                uint64
	UpdatedAt              time.Time
}

// DefaultPlatformConfig seeds the singleton on first boot. Fee is 2.5%.
func DefaultPlatformConfig(authorityID, feeCollectorID string, now time.Time) *PlatformConfig {
	return &PlatformConfig{
		FeeBps:                 250,
		MinBidCollateral:       1_000,
		MaxBidCollateral:       10_000_000,
		MinSellerReputation:    300,
		MinHighValueReputation: 700,
		HighValueThreshold:     1_000_000,
		SupportedAssets:        []string{"USDC"},
		Arbitrators:            []string{authorityID},
		FeeCollectorID:         feeCollectorID,
		AuthorityID:            authorityID,
		Version:                1,
		UpdatedAt:              now,
	}
}

func (c *PlatformConfig) IsArbitrator(userID string) bool {
	for _, id := range c.Arbitrators {
		if id == userID {
			return true
		}
	}
	return false
}

func (c *PlatformConfig) IsAssetSupported(asset string) bool {
	for _, a := range c.SupportedAssets {
		if a == asset {
			return true
		}
	}
	return false
}

// CalculateFee applies the platform take in basis points with integer
// truncation toward zero.
func (c *PlatformConfig) CalculateFee(amount uint64) uint64 {
	return amount * uint64(c.FeeBps) / 10000
}

func (c *PlatformConfig) ValidateAuctionParams(duration, revealDuration time.Duration, collateral uint64, asset string) error {
	if duration < MinAuctionDuration {
		return ErrDurationTooShort
	}
	if duration > MaxAuctionDuration {
		return ErrDurationTooLong
	}
	if revealDuration < MinRevealDuration {
		return ErrDurationTooShort
	}
	if revealDuration > MaxRevealDuration {
		return ErrDurationTooLong
	}
	if collateral < c.MinBidCollateral {
		return ErrCollateralTooLow
	}
	if collateral > c.MaxBidCollateral {
		return ErrCollateralTooHigh
	}
	if !c.IsAssetSupported(asset) {
		return ErrUnsupportedAsset
	}
	return nil
}

func (c *PlatformConfig) Validate() error {
	if c.FeeBps > MaxFeeBps {
		return ErrInvalidParameter
	}
	if c.MinBidCollateral > c.MaxBidCollateral {
		return ErrInvalidParameter
	}
	if len(c.SupportedAssets) == 0 || len(c.SupportedAssets) > MaxSupportedAssets {
		return ErrInvalidParameter
	}
	if len(c.Arbitrators) > MaxArbitrators {
		return ErrInvalidParameter
	}
	if c.FeeCollectorID == "" || c.AuthorityID == "" {
		return ErrInvalidParameter
	}
	return nil
}

type PlatformRepository interface {
	GetConfig() (*PlatformConfig, error)
	// SaveConfig persists with optimistic locking: the write succeeds only
	// when the stored Version matches expectedVersion.
	SaveConfig(config *PlatformConfig, expectedVersion uint64) error
}
