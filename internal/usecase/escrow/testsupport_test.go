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

var testMetrics = metrics.NewAuctionMetrics()

var testPublisher = publisher.NewKafkaPublisher([]string{"127.0.0.1:19092"}, "test-events")

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

type fakeVerifier struct {
	err error
}

func (v *fakeVerifier) Verify(ctx context.Context, auctionID string, proof []byte) error {
	return v.err
}

type transfer struct {
	From   string
	To     string
	Amount uint64
	Asset  string
}

type fakeRail struct {
	mu        sync.Mutex
	transfers []transfer
}

func (r *fakeRail) Transfer(ctx context.Context, fromAccount, toAccount string, amount uint64, asset, reference string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transfers = append(r.transfers, transfer{fromAccount, toAccount, amount, asset})
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

// memStore backs every repository interface the escrow usecase touches.
type memStore struct {
	mu         sync.Mutex
	auctions   map[string]domain.Auction
	bids       map[string]domain.BidCommitment
	escrows    map[string]domain.Escrow
	signatures map[string]map[string]bool
	pools      map[string]domain.CollateralPool
	profiles   map[string]domain.UserProfile
	stakes     map[string]domain.ReputationStake
	config     domain.PlatformConfig
}

func newMemStore(config domain.PlatformConfig) *memStore {
	return &memStore{
		auctions:   make(map[string]domain.Auction),
		bids:       make(map[string]domain.BidCommitment),
		escrows:    make(map[string]domain.Escrow),
		signatures: make(map[string]map[string]bool),
		pools:      make(map[string]domain.CollateralPool),
		profiles:   make(map[string]domain.UserProfile),
		stakes:     make(map[string]domain.ReputationStake),
		config:     config,
	}
}

func (s *memStore) CreateAuction(auction *domain.Auction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auctions[auction.ID] = *auction
	return nil
}

func (s *memStore) GetAuctionByID(auctionID string) (*domain.Auction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	auction, ok := s.auctions[auctionID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := auction
	return &copied, nil
}

func (s *memStore) UpdateAuction(auction *domain.Auction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auctions[auction.ID] = *auction
	return nil
}

func (s *memStore) UpdateAuctionStatus(auctionID string, status domain.AuctionStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	auction, ok := s.auctions[auctionID]
	if !ok {
		return domain.ErrNotFound
	}
	auction.Status = status
	s.auctions[auctionID] = auction
	return nil
}

func (s *memStore) FindExpiredActiveAuctions(now time.Time) ([]*domain.Auction, error) {
	return nil, nil
}

func (s *memStore) FindUnrevealedPastDeadline(now time.Time) ([]*domain.Auction, error) {
	return nil, nil
}

func (s *memStore) GetAuctions(filter domain.AuctionFilter) ([]*domain.Auction, int64, error) {
	return nil, 0, nil
}

func (s *memStore) CreateBid(bid *domain.BidCommitment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bids[bid.AuctionID+"/"+bid.BidderID] = *bid
	return nil
}

func (s *memStore) GetBid(auctionID, bidderID string) (*domain.BidCommitment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	bid, ok := s.bids[auctionID+"/"+bidderID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := bid
	return &copied, nil
}

func (s *memStore) MarkRevealed(bidID string, amount uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, bid := range s.bids {
		if bid.ID == bidID {
			bid.Revealed = true
			bid.RevealedAmount = amount
			s.bids[key] = bid
			return nil
		}
	}
	return domain.ErrNotFound
}

func (s *memStore) MarkCollateralReturned(bidID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, bid := range s.bids {
		if bid.ID == bidID {
			bid.CollateralReturned = true
			s.bids[key] = bid
			return nil
		}
	}
	return domain.ErrNotFound
}

func (s *memStore) CountUnreturned(auctionID string) (int64, error) {
	return 0, nil
}

func (s *memStore) GetBidsByAuction(auctionID string) ([]*domain.BidCommitment, error) {
	return nil, nil
}

func (s *memStore) CreateEscrow(escrow *domain.Escrow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.escrows[escrow.ID] = *escrow
	return nil
}

func (s *memStore) GetEscrowByID(escrowID string) (*domain.Escrow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	escrow, ok := s.escrows[escrowID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := escrow
	return &copied, nil
}

func (s *memStore) GetEscrowByAuctionID(auctionID string) (*domain.Escrow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, escrow := range s.escrows {
		if escrow.AuctionID == auctionID {
			copied := escrow
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *memStore) UpdateEscrow(escrow *domain.Escrow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.escrows[escrow.ID] = *escrow
	return nil
}

func (s *memStore) UpdateEscrowStatus(escrowID string, status domain.EscrowStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	escrow, ok := s.escrows[escrowID]
	if !ok {
		return domain.ErrNotFound
	}
	escrow.Status = status
	s.escrows[escrowID] = escrow
	return nil
}

func (s *memStore) AddSignature(escrowID, signerID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	escrow, ok := s.escrows[escrowID]
	if !ok {
		return false, domain.ErrNotFound
	}
	signed := s.signatures[escrowID]
	if signed == nil {
		signed = make(map[string]bool)
		s.signatures[escrowID] = signed
	}
	if signed[signerID] {
		return false, nil
	}
	signed[signerID] = true
	escrow.Conditions.SignaturesCollected++
	s.escrows[escrowID] = escrow
	return true, nil
}

func (s *memStore) GetPool(auctionID string) (*domain.CollateralPool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pool, ok := s.pools[auctionID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := pool
	return &copied, nil
}

func (s *memStore) GetOrCreatePool(auctionID string, now time.Time) (*domain.CollateralPool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pool, ok := s.pools[auctionID]
	if !ok {
		pool = domain.CollateralPool{AuctionID: auctionID, UpdatedAt: now}
		s.pools[auctionID] = pool
	}
	copied := pool
	return &copied, nil
}

func (s *memStore) SavePool(pool *domain.CollateralPool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pools[pool.AuctionID] = *pool
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
	if s.config.Version != expectedVersion {
		return domain.ErrInvalidParameter
	}
	s.config = *config
	return nil
}

func (s *memStore) setPaused(paused bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config.Paused = paused
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

type fixture struct {
	usecase  *DefaultEscrowUsecase
	store    *memStore
	rail     *fakeRail
	clock    *fakeClock
	verifier *fakeVerifier
}

func newFixture() *fixture {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	store := newMemStore(domain.PlatformConfig{
		FeeBps:          250,
		SupportedAssets: []string{"USDC"},
		FeeCollectorID:  "fees",
		AuthorityID:     "authority",
		Version:         1,
	})
	rail := &fakeRail{}
	verifier := &fakeVerifier{}

	uc := NewDefaultEscrowUsecase(
		store,
		store,
		store,
		store,
		store,
		store,
		rail,
		verifier,
		testPublisher,
		noopIndex{},
		testMetrics,
		clock,
		keylock.New(),
	)

	return &fixture{usecase: uc, store: store, rail: rail, clock: clock, verifier: verifier}
}

// seedSettledAuction plants a settled auction with a winner owing 6500 and
// the still-unfunded escrow opened alongside it.
func (f *fixture) seedSettledAuction() (auctionID, escrowID string) {
	now := f.clock.Now()
	auction := domain.Auction{
		ID:            "a-1",
		SellerID:      "seller-1",
		Product:       domain.ProductTerms{Type: domain.ProductPhysical, Shipping: &domain.ShippingTerms{ShipsFrom: "DE"}},
		Status:        domain.AuctionSettled,
		BidCount:      3,
		RevealedCount: 2,
		WinnerID:      "buyer-1",
		WinningAmount: 8_000,
		SecondPrice:   6_500,
		PaymentAsset:  "USDC",
		BidCollateral: 1_000,
		EscrowID:      "e-1",
	}
	f.store.CreateAuction(&auction)
	f.store.CreateBid(&domain.BidCommitment{
		ID:                  "bid-winner",
		AuctionID:           "a-1",
		BidderID:            "buyer-1",
		Revealed:            true,
		RevealedAmount:      8_000,
		CollateralDeposited: 1_000,
	})
	f.store.SavePool(&domain.CollateralPool{AuctionID: "a-1", TotalDeposited: 3_000, TotalRefunded: 2_000})
	f.store.CreateEscrow(&domain.Escrow{
		ID:            "e-1",
		AuctionID:     "a-1",
		PaymentAsset:  "USDC",
		BeneficiaryID: "seller-1",
		Status:        domain.EscrowCreated,
		CreatedAt:     now,
	})
	return "a-1", "e-1"
}
