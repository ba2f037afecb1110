package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/veilmarket/auction-service/internal/domain"
	publisher "github.com/veilmarket/auction-service/internal/infrastructure/kafka"
	"github.com/veilmarket/auction-service/internal/infrastructure/metrics"
	"github.com/veilmarket/auction-service/internal/keylock"
)

// Prometheus collectors register globally, so the test binary shares one set.
var testMetrics = metrics.NewAuctionMetrics()

// Broker is unreachable; publishes happen in goroutines and only log.
var testPublisher = publisher.NewKafkaPublisher([]string{"127.0.0.1:19092"}, "test-events")

// testProof stands in for a verifier-accepted proof blob.
var testProof = []byte{0x01}

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

type memAuctionRepo struct {
	mu       sync.Mutex
	auctions map[string]domain.Auction
}

func newMemAuctionRepo() *memAuctionRepo {
	return &memAuctionRepo{auctions: make(map[string]domain.Auction)}
}

func (r *memAuctionRepo) CreateAuction(auction *domain.Auction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.auctions[auction.ID] = *auction
	return nil
}

func (r *memAuctionRepo) GetAuctionByID(auctionID string) (*domain.Auction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	auction, ok := r.auctions[auctionID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := auction
	return &copied, nil
}

func (r *memAuctionRepo) UpdateAuction(auction *domain.Auction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.auctions[auction.ID] = *auction
	return nil
}

func (r *memAuctionRepo) UpdateAuctionStatus(auctionID string, status domain.AuctionStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	auction, ok := r.auctions[auctionID]
	if !ok {
		return domain.ErrNotFound
	}
	auction.Status = status
	r.auctions[auctionID] = auction
	return nil
}

func (r *memAuctionRepo) FindExpiredActiveAuctions(now time.Time) ([]*domain.Auction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var found []*domain.Auction
	for _, auction := range r.auctions {
		if auction.Status == domain.AuctionActive && !now.Before(auction.EndTime) {
			copied := auction
			found = append(found, &copied)
		}
	}
	return found, nil
}

func (r *memAuctionRepo) FindUnrevealedPastDeadline(now time.Time) ([]*domain.Auction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var found []*domain.Auction
	for _, auction := range r.auctions {
		if auction.Status == domain.AuctionRevealing && auction.RevealedCount == 0 && !now.Before(auction.RevealDeadline()) {
			copied := auction
			found = append(found, &copied)
		}
	}
	return found, nil
}

func (r *memAuctionRepo) GetAuctions(filter domain.AuctionFilter) ([]*domain.Auction, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var found []*domain.Auction
	for _, auction := range r.auctions {
		if filter.SellerID != nil && auction.SellerID != *filter.SellerID {
			continue
		}
		if filter.Status != nil && string(auction.Status) != *filter.Status {
			continue
		}
		copied := auction
		found = append(found, &copied)
	}
	return found, int64(len(found)), nil
}

type memBidRepo struct {
	mu   sync.Mutex
	bids map[string]domain.BidCommitment // keyed by auctionID+"/"+bidderID
}

func newMemBidRepo() *memBidRepo {
	return &memBidRepo{bids: make(map[string]domain.BidCommitment)}
}

func bidKey(auctionID, bidderID string) string {
	return auctionID + "/" + bidderID
}

func (r *memBidRepo) CreateBid(bid *domain.BidCommitment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bids[bidKey(bid.AuctionID, bid.BidderID)] = *bid
	return nil
}

func (r *memBidRepo) GetBid(auctionID, bidderID string) (*domain.BidCommitment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	bid, ok := r.bids[bidKey(auctionID, bidderID)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := bid
	return &copied, nil
}

func (r *memBidRepo) MarkRevealed(bidID string, amount uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, bid := range r.bids {
		if bid.ID == bidID {
			bid.Revealed = true
			bid.RevealedAmount = amount
			r.bids[key] = bid
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *memBidRepo) MarkCollateralReturned(bidID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, bid := range r.bids {
		if bid.ID == bidID {
			bid.CollateralReturned = true
			r.bids[key] = bid
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *memBidRepo) CountUnreturned(auctionID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, bid := range r.bids {
		if bid.AuctionID == auctionID && !bid.CollateralReturned {
			count++
		}
	}
	return count, nil
}

func (r *memBidRepo) GetBidsByAuction(auctionID string) ([]*domain.BidCommitment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var found []*domain.BidCommitment
	for _, bid := range r.bids {
		if bid.AuctionID == auctionID {
			copied := bid
			found = append(found, &copied)
		}
	}
	return found, nil
}

type memEscrowRepo struct {
	mu         sync.Mutex
	escrows    map[string]domain.Escrow
	signatures map[string]map[string]bool
}

func newMemEscrowRepo() *memEscrowRepo {
	return &memEscrowRepo{
		escrows:    make(map[string]domain.Escrow),
		signatures: make(map[string]map[string]bool),
	}
}

func (r *memEscrowRepo) CreateEscrow(escrow *domain.Escrow) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.escrows[escrow.ID] = *escrow
	return nil
}

func (r *memEscrowRepo) GetEscrowByID(escrowID string) (*domain.Escrow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	escrow, ok := r.escrows[escrowID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := escrow
	return &copied, nil
}

func (r *memEscrowRepo) GetEscrowByAuctionID(auctionID string) (*domain.Escrow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, escrow := range r.escrows {
		if escrow.AuctionID == auctionID {
			copied := escrow
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memEscrowRepo) UpdateEscrow(escrow *domain.Escrow) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.escrows[escrow.ID] = *escrow
	return nil
}

func (r *memEscrowRepo) UpdateEscrowStatus(escrowID string, status domain.EscrowStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	escrow, ok := r.escrows[escrowID]
	if !ok {
		return domain.ErrNotFound
	}
	escrow.Status = status
	r.escrows[escrowID] = escrow
	return nil
}

func (r *memEscrowRepo) AddSignature(escrowID, signerID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	escrow, ok := r.escrows[escrowID]
	if !ok {
		return false, domain.ErrNotFound
	}
	signed := r.signatures[escrowID]
	if signed == nil {
		signed = make(map[string]bool)
		r.signatures[escrowID] = signed
	}
	if signed[signerID] {
		return false, nil
	}
	signed[signerID] = true
	escrow.Conditions.SignaturesCollected++
	r.escrows[escrowID] = escrow
	return true, nil
}

type memCollateralRepo struct {
	mu    sync.Mutex
	pools map[string]domain.CollateralPool
}

func newMemCollateralRepo() *memCollateralRepo {
	return &memCollateralRepo{pools: make(map[string]domain.CollateralPool)}
}

func (r *memCollateralRepo) GetPool(auctionID string) (*domain.CollateralPool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	pool, ok := r.pools[auctionID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := pool
	return &copied, nil
}

func (r *memCollateralRepo) GetOrCreatePool(auctionID string, now time.Time) (*domain.CollateralPool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	pool, ok := r.pools[auctionID]
	if !ok {
		pool = domain.CollateralPool{AuctionID: auctionID, UpdatedAt: now}
		r.pools[auctionID] = pool
	}
	copied := pool
	return &copied, nil
}

func (r *memCollateralRepo) SavePool(pool *domain.CollateralPool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pools[pool.AuctionID] = *pool
	return nil
}

type memPlatformRepo struct {
	mu     sync.Mutex
	config domain.PlatformConfig
}

func newMemPlatformRepo(config domain.PlatformConfig) *memPlatformRepo {
	return &memPlatformRepo{config: config}
}

func (r *memPlatformRepo) GetConfig() (*domain.PlatformConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := r.config
	return &copied, nil
}

func (r *memPlatformRepo) SaveConfig(config *domain.PlatformConfig, expectedVersion uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.config.Version != expectedVersion {
		return domain.ErrInvalidParameter
	}
	r.config = *config
	return nil
}

func (r *memPlatformRepo) SetPaused(paused bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.config.Paused = paused
}

type memProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]domain.UserProfile
	stakes   map[string]domain.ReputationStake
}

func newMemProfileRepo() *memProfileRepo {
	return &memProfileRepo{
		profiles: make(map[string]domain.UserProfile),
		stakes:   make(map[string]domain.ReputationStake),
	}
}

func (r *memProfileRepo) GetProfile(userID string) (*domain.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	profile, ok := r.profiles[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := profile
	return &copied, nil
}

func (r *memProfileRepo) GetOrCreateProfile(userID string, now time.Time) (*domain.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	profile, ok := r.profiles[userID]
	if !ok {
		profile = *domain.NewUserProfile(userID, now)
		r.profiles[userID] = profile
	}
	copied := profile
	return &copied, nil
}

func (r *memProfileRepo) SaveProfile(profile *domain.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[profile.UserID] = *profile
	return nil
}

func (r *memProfileRepo) GetStake(userID string) (*domain.ReputationStake, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stake, ok := r.stakes[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := stake
	return &copied, nil
}

func (r *memProfileRepo) SaveStake(stake *domain.ReputationStake) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stakes[stake.UserID] = *stake
	return nil
}

type transfer struct {
	From      string
	To        string
	Amount    uint64
	Asset     string
	Reference string
}

type fakeRail struct {
	mu        sync.Mutex
	transfers []transfer
	failNext  error
}

func (r *fakeRail) Transfer(ctx context.Context, fromAccount, toAccount string, amount uint64, asset, reference string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failNext != nil {
		err := r.failNext
		r.failNext = nil
		return err
	}
	r.transfers = append(r.transfers, transfer{fromAccount, toAccount, amount, asset, reference})
	return nil
}

func (r *fakeRail) Balance(ctx context.Context, account, asset string) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var balance uint64
	for _, t := range r.transfers {
		if t.To == account && t.Asset == asset {
			balance += t.Amount
		}
		if t.From == account && t.Asset == asset {
			balance -= t.Amount
		}
	}
	return balance, nil
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

type fixture struct {
	usecase     *DefaultAuctionUsecase
	auctionRepo *memAuctionRepo
	bidRepo     *memBidRepo
	escrowRepo  *memEscrowRepo
	poolRepo    *memCollateralRepo
	platform    *memPlatformRepo
	profiles    *memProfileRepo
	rail        *fakeRail
	clock       *fakeClock
}

func testConfig() domain.PlatformConfig {
	return domain.PlatformConfig{
		FeeBps:              250,
		MinBidCollateral:    1_000,
		MaxBidCollateral:    10_000_000,
		MinSellerReputation: 300,
		SupportedAssets:     []string{"USDC"},
		Arbitrators:         []string{"arb-1", "arb-2", "arb-3"},
		FeeCollectorID:      "fees",
		AuthorityID:         "authority",
		Version:             1,
	}
}

func newFixture() *fixture {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	auctionRepo := newMemAuctionRepo()
	bidRepo := newMemBidRepo()
	escrowRepo := newMemEscrowRepo()
	poolRepo := newMemCollateralRepo()
	platform := newMemPlatformRepo(testConfig())
	profiles := newMemProfileRepo()
	rail := &fakeRail{}

	uc := NewDefaultAuctionUsecase(
		auctionRepo,
		bidRepo,
		escrowRepo,
		poolRepo,
		platform,
		profiles,
		rail,
		testPublisher,
		noopIndex{},
		testMetrics,
		clock,
		keylock.New(),
	)

	return &fixture{
		usecase:     uc,
		auctionRepo: auctionRepo,
		bidRepo:     bidRepo,
		escrowRepo:  escrowRepo,
		poolRepo:    poolRepo,
		platform:    platform,
		profiles:    profiles,
		rail:        rail,
		clock:       clock,
	}
}
