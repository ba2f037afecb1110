package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veilmarket/auction-service/internal/domain"
	"github.com/veilmarket/auction-service/internal/infrastructure/metrics"
	"github.com/veilmarket/auction-service/internal/keylock"
	reputationdto "github.com/veilmarket/auction-service/internal/usecase/dto/reputation"
)

var testMetrics = metrics.NewAuctionMetrics()

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type noopIndex struct{}

func (noopIndex) Append(ctx context.Context, eventType string, payload any) {}

type transfer struct {
	From   string
	To     string
	Amount uint64
}

type fakeRail struct {
	mu        sync.Mutex
	transfers []transfer
}

func (r *fakeRail) Transfer(ctx context.Context, fromAccount, toAccount string, amount uint64, asset, reference string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transfers = append(r.transfers, transfer{fromAccount, toAccount, amount})
	return nil
}

func (r *fakeRail) Balance(ctx context.Context, account, asset string) (uint64, error) {
	return 0, nil
}

func (r *fakeRail) ReceivedBy(account string) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	var total uint64
	for _, t := range r.transfers {
		if t.To == account {
			total += t.Amount
		}
	}
	return total
}

type memStore struct {
	mu       sync.Mutex
	profiles map[string]domain.UserProfile
	stakes   map[string]domain.ReputationStake
	config   domain.PlatformConfig
}

func newMemStore(config domain.PlatformConfig) *memStore {
	return &memStore{
		profiles: make(map[string]domain.UserProfile),
		stakes:   make(map[string]domain.ReputationStake),
		config:   config,
	}
}

func (s *memStore) GetProfile(userID string) (*domain.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	profile, ok := s.profiles[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := profile
	return &copied, nil
}

func (s *memStore) GetOrCreateProfile(userID string, now time.Time) (*domain.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	profile, ok := s.profiles[userID]
	if !ok {
		profile = *domain.NewUserProfile(userID, now)
		s.profiles[userID] = profile
	}
	copied := profile
	return &copied, nil
}

func (s *memStore) SaveProfile(profile *domain.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[profile.UserID] = *profile
	return nil
}

func (s *memStore) GetStake(userID string) (*domain.ReputationStake, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stake, ok := s.stakes[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := stake
	return &copied, nil
}

func (s *memStore) SaveStake(stake *domain.ReputationStake) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stakes[stake.UserID] = *stake
	return nil
}

func (s *memStore) GetConfig() (*domain.PlatformConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := s.config
	return &copied, nil
}

func (s *memStore) SaveConfig(config *domain.PlatformConfig, expectedVersion uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = *config
	return nil
}

type fixture struct {
	usecase *DefaultReputationUsecase
	store   *memStore
	rail    *fakeRail
	clock   *fakeClock
}

func newFixture() *fixture {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	store := newMemStore(domain.PlatformConfig{
		FeeBps:         250,
		FeeCollectorID: "fees",
		AuthorityID:    "authority",
		Version:        1,
	})
	rail := &fakeRail{}
	uc := NewDefaultReputationUsecase(store, store, rail, noopIndex{}, testMetrics, clock, keylock.New())
	return &fixture{usecase: uc, store: store, rail: rail, clock: clock}
}

func TestDepositStake(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	err := f.usecase.DepositStake(ctx, &reputationdto.DepositStakeInput{UserID: "user-1", Amount: 0, Asset: "USDC"})
	assert.ErrorIs(t, err, domain.ErrInvalidStakeAmount)

	err = f.usecase.DepositStake(ctx, &reputationdto.DepositStakeInput{UserID: "user-1", Amount: 5_000, Asset: "USDC"})
	require.NoError(t, err)

	stake, err := f.store.GetStake("user-1")
	require.NoError(t, err)
	assert.Equal(t, uint64(5_000), stake.Amount)
	assert.Equal(t, f.clock.Now().Add(domain.StakeLockPeriod), stake.LockUntil)
	assert.Equal(t, uint64(5_000), f.rail.ReceivedBy("stake:user-1"))

	profile, err := f.store.GetProfile("user-1")
	require.NoError(t, err)
	assert.Equal(t, uint64(5_000), profile.StakedAmount)

	// A second deposit accumulates and restarts the lock.
	f.clock.Advance(10 * 24 * time.Hour)
	err = f.usecase.DepositStake(ctx, &reputationdto.DepositStakeInput{UserID: "user-1", Amount: 1_000, Asset: "USDC"})
	require.NoError(t, err)

	stake, err = f.store.GetStake("user-1")
	require.NoError(t, err)
	assert.Equal(t, uint64(6_000), stake.Amount)
	assert.Equal(t, f.clock.Now().Add(domain.StakeLockPeriod), stake.LockUntil)
}

func TestWithdrawStake(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	err := f.usecase.WithdrawStake(ctx, &reputationdto.WithdrawStakeInput{UserID: "user-1", Amount: 100, Asset: "USDC"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, f.usecase.DepositStake(ctx, &reputationdto.DepositStakeInput{UserID: "user-1", Amount: 5_000, Asset: "USDC"}))

	err = f.usecase.WithdrawStake(ctx, &reputationdto.WithdrawStakeInput{UserID: "user-1", Amount: 1_000, Asset: "USDC"})
	assert.ErrorIs(t, err, domain.ErrStakeLocked)

	f.clock.Advance(domain.StakeLockPeriod)

	err = f.usecase.WithdrawStake(ctx, &reputationdto.WithdrawStakeInput{UserID: "user-1", Amount: 6_000, Asset: "USDC"})
	assert.ErrorIs(t, err, domain.ErrInvalidStakeAmount)

	err = f.usecase.WithdrawStake(ctx, &reputationdto.WithdrawStakeInput{UserID: "user-1", Amount: 2_000, Asset: "USDC"})
	require.NoError(t, err)

	stake, err := f.store.GetStake("user-1")
	require.NoError(t, err)
	assert.Equal(t, uint64(3_000), stake.Amount)
	assert.Equal(t, uint64(2_000), f.rail.ReceivedBy("user-1"))

	profile, err := f.store.GetProfile("user-1")
	require.NoError(t, err)
	assert.Equal(t, uint64(3_000), profile.StakedAmount)
}

func TestWithdrawStakeBlockedByDisputeLock(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	require.NoError(t, f.usecase.DepositStake(ctx, &reputationdto.DepositStakeInput{UserID: "user-1", Amount: 5_000, Asset: "USDC"}))
	f.clock.Advance(domain.StakeLockPeriod)

	stake, err := f.store.GetStake("user-1")
	require.NoError(t, err)
	stake.LockedForDispute = true
	require.NoError(t, f.store.SaveStake(stake))

	err = f.usecase.WithdrawStake(ctx, &reputationdto.WithdrawStakeInput{UserID: "user-1", Amount: 1_000, Asset: "USDC"})
	assert.ErrorIs(t, err, domain.ErrStakeLocked)
}

func TestSlashStake(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	require.NoError(t, f.usecase.DepositStake(ctx, &reputationdto.DepositStakeInput{UserID: "user-1", Amount: 5_000, Asset: "USDC"}))

	slash := func(authorityID string, percentage uint8) (uint64, error) {
		return f.usecase.SlashStake(ctx, &reputationdto.SlashStakeInput{
			AuthorityID: authorityID,
			UserID:      "user-1",
			Percentage:  percentage,
			Asset:       "USDC",
		})
	}

	_, err := slash("authority", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)
	_, err = slash("authority", 101)
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)
	_, err = slash("user-2", 50)
	assert.ErrorIs(t, err, domain.ErrInvalidAuthority)

	// Slashing requires the dispute force-lock.
	_, err = slash("authority", 50)
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)

	stake, err := f.store.GetStake("user-1")
	require.NoError(t, err)
	stake.LockedForDispute = true
	require.NoError(t, f.store.SaveStake(stake))

	slashed, err := slash("authority", 30)
	require.NoError(t, err)
	assert.Equal(t, uint64(1_500), slashed)
	assert.Equal(t, uint64(1_500), f.rail.ReceivedBy("fees"))

	stake, err = f.store.GetStake("user-1")
	require.NoError(t, err)
	assert.Equal(t, uint64(3_500), stake.Amount)
	assert.False(t, stake.LockedForDispute)

	profile, err := f.store.GetProfile("user-1")
	require.NoError(t, err)
	assert.Equal(t, uint64(3_500), profile.StakedAmount)
}

func TestSetKYCLevel(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	err := f.usecase.SetKYCLevel(ctx, &reputationdto.SetKYCLevelInput{AuthorityID: "user-2", UserID: "user-1", Level: domain.KYCEnhanced})
	assert.ErrorIs(t, err, domain.ErrInvalidAuthority)

	err = f.usecase.SetKYCLevel(ctx, &reputationdto.SetKYCLevelInput{AuthorityID: "authority", UserID: "user-1", Level: domain.KYCAccredited + 1})
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)

	err = f.usecase.SetKYCLevel(ctx, &reputationdto.SetKYCLevelInput{AuthorityID: "authority", UserID: "user-1", Level: domain.KYCEnhanced})
	require.NoError(t, err)

	profile, err := f.store.GetProfile("user-1")
	require.NoError(t, err)
	assert.Equal(t, domain.KYCEnhanced, profile.KYCLevel)
}
