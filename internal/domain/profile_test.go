package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecalculateReputation(t *testing.T) {
	tests := []struct {
		name    string
		profile UserProfile
		want    uint16
	}{
		{
			name:    "no_activity_stays_neutral",
			profile: UserProfile{},
			want:    500,
		},
		{
			name: "perfect_seller_delivery_bonus",
			profile: UserProfile{
				AuctionsAsSeller:     10,
				SuccessfulDeliveries: 10,
			},
			want: 700,
		},
		{
			name: "volume_bonus_via_log",
			profile: UserProfile{
				AuctionsAsSeller:     10,
				SuccessfulDeliveries: 10,
				TotalVolume:          1_000_000, // log10 = 6 -> +60
			},
			want: 760,
		},
		{
			name: "disputes_drag_score_down",
			profile: UserProfile{
				AuctionsAsSeller:     10,
				SuccessfulDeliveries: 8,
				DisputesAgainst:      2,
			},
			want: 600,
		},
		{
			name: "buyer_only_gets_volume_bonus",
			profile: UserProfile{
				AuctionsAsBuyer: 5,
				TotalVolume:     100, // log10 = 2 -> +20
			},
			want: 520,
		},
		{
			name: "top_rating_adds_100",
			profile: UserProfile{
				AuctionsAsSeller:     1,
				SuccessfulDeliveries: 1,
				AverageRating:        50,
				RatingCount:          1,
			},
			want: 800,
		},
		{
			name: "bottom_rating_subtracts_100",
			profile: UserProfile{
				AuctionsAsBuyer: 1,
				AverageRating:   0,
				RatingCount:     1,
			},
			want: 400,
		},
		{
			name: "clamped_at_1000",
			profile: UserProfile{
				AuctionsAsSeller:     1,
				SuccessfulDeliveries: 5,
			},
			want: 1000,
		},
		{
			name: "clamped_at_0",
			profile: UserProfile{
				AuctionsAsBuyer: 1,
				DisputesAgainst: 2,
				AverageRating:   0,
				RatingCount:     1,
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.profile.Recalculate()
			assert.Equal(t, tt.want, tt.profile.ReputationScore)
		})
	}
}

func TestUpdateAfterAuctionFoldsRating(t *testing.T) {
	now := time.Now()
	profile := NewUserProfile("seller-1", now)

	rating := uint8(40)
	profile.UpdateAfterAuction(true, true, &rating, 10_000, now)

	assert.Equal(t, uint32(1), profile.AuctionsAsSeller)
	assert.Equal(t, uint32(1), profile.SuccessfulDeliveries)
	assert.Equal(t, uint64(10_000), profile.TotalVolume)
	assert.Equal(t, uint8(40), profile.AverageRating)
	assert.Equal(t, uint32(1), profile.RatingCount)
	// 500 base + 200 delivery + 40 volume + 60 rating
	assert.Equal(t, uint16(800), profile.ReputationScore)

	second := uint8(20)
	profile.UpdateAfterAuction(true, true, &second, 0, now)
	assert.Equal(t, uint8(30), profile.AverageRating)
	assert.Equal(t, uint32(2), profile.RatingCount)
}

func TestUpdateAfterAuctionAsBuyer(t *testing.T) {
	now := time.Now()
	profile := NewUserProfile("buyer-1", now)

	profile.UpdateAfterAuction(false, true, nil, 5_000, now)

	assert.Equal(t, uint32(1), profile.AuctionsAsBuyer)
	assert.Equal(t, uint32(0), profile.AuctionsAsSeller)
	assert.Equal(t, uint32(0), profile.SuccessfulDeliveries)
	assert.Equal(t, uint32(0), profile.RatingCount)
}

func TestCanSellHighValue(t *testing.T) {
	trusted := UserProfile{
		ReputationScore:  700,
		AuctionsAsSeller: 10,
		DisputesAgainst:  2,
		KYCLevel:         KYCEnhanced,
	}
	assert.True(t, trusted.CanSellHighValue())

	lowScore := trusted
	lowScore.ReputationScore = 699
	assert.False(t, lowScore.CanSellHighValue())

	fewSales := trusted
	fewSales.AuctionsAsSeller = 9
	assert.False(t, fewSales.CanSellHighValue())

	disputed := trusted
	disputed.DisputesAgainst = 3
	assert.False(t, disputed.CanSellHighValue())

	unverified := trusted
	unverified.KYCLevel = KYCBasic
	assert.False(t, unverified.CanSellHighValue())
}

func TestStakeWithdrawLock(t *testing.T) {
	now := time.Now()
	stake := ReputationStake{
		UserID:    "user-1",
		Amount:    10_000,
		LockUntil: now.Add(time.Hour),
	}

	assert.False(t, stake.CanWithdraw(now))
	assert.True(t, stake.CanWithdraw(now.Add(time.Hour)))

	stake.LockedForDispute = true
	assert.False(t, stake.CanWithdraw(now.Add(2*time.Hour)))
}

func TestStakeSlash(t *testing.T) {
	stake := ReputationStake{UserID: "user-1", Amount: 10_000}

	slashed := stake.Slash(25)
	assert.Equal(t, uint64(2_500), slashed)
	assert.Equal(t, uint64(7_500), stake.Amount)

	slashed = stake.Slash(100)
	assert.Equal(t, uint64(7_500), slashed)
	assert.Equal(t, uint64(0), stake.Amount)
}
