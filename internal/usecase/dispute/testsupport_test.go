package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/veilmarket/auction-service/internal/domain"
	publisher "github.com/veilmarket/auction-service/internal/infrastructure/kafka"
	"github.com/veilmarket/auction-service/internal/infrastructure/metrics"
	"github.com/veilmarket/auction-service/internal/keylock"
	escrowuc "github.com/veilmarket/auction-service/internal/usecase/escrow"
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

type noopVerifier struct{}

func (noopVerifier) Verify(ctx context.Context, auctionID string, proof []byte) error {
	return nil
}

type transfer struct {
	From   string
	To     string
	Amount uint64
	Asset  string
}

type fakeRail struct {
	mu        sync.Mutex
	err       error
	transfers []transfer
}

func (r *fakeRail) setErr(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

func (r *fakeRail) Transfer(ctx context.Context, fromAccount, toAccount string, amount uint64, asset, reference string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
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

// memStore backs every repository the dispute flow touches, escrow payout
// included.
type memStore struct {
	mu          sync.Mutex
	auctions    map[string]domain.Auction
	escrows     map[string]domain.Escrow
	signatures  map[string]map[string]bool
	disputes    map[string]domain.Dispute
	evidence    map[string][]domain.Evidence
	votes       map[string]map[string]domain.DisputeVote
	profiles    map[string]domain.UserProfile
	stakes      map[string]domain.ReputationStake
	arbitrators map[string]domain.ArbitratorRecord
	config      domain.PlatformConfig
}

func newMemStore(config domain.PlatformConfig) *memStore {
	return &memStore{
		auctions:    make(map[string]domain.Auction),
		escrows:     make(map[string]domain.Escrow),
		signatures:  make(map[string]map[string]bool),
		disputes:    make(map[string]domain.Dispute),
		evidence:    make(map[string][]domain.Evidence),
		votes:       make(map[string]map[string]domain.DisputeVote),
		profiles:    make(map[string]domain.UserProfile),
		stakes:      make(map[string]domain.ReputationStake),
		arbitrators: make(map[string]domain.ArbitratorRecord),
		config:      config,
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

func (s *memStore) CreateBid(bid *domain.BidCommitment) error { return nil }

func (s *memStore) GetBid(auctionID, bidderID string) (*domain.BidCommitment, error) {
	return nil, domain.ErrNotFound
}

func (s *memStore) MarkRevealed(bidID string, amount uint64) error { return nil }

func (s *memStore) MarkCollateralReturned(bidID string) error { return nil }

func (s *memStore) CountUnreturned(auctionID string) (int64, error) { return 0, nil }

func (s *memStore) GetBidsByAuction(auctionID string) ([]*domain.BidCommitment, error) {
	return nil, nil
}

func (s *memStore) GetPool(auctionID string) (*domain.CollateralPool, error) {
	return nil, domain.ErrNotFound
}

func (s *memStore) GetOrCreatePool(auctionID string, now time.Time) (*domain.CollateralPool, error) {
	return &domain.CollateralPool{AuctionID: auctionID, UpdatedAt: now}, nil
}

func (s *memStore) SavePool(pool *domain.CollateralPool) error { return nil }

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

func (s *memStore) CreateDispute(dispute *domain.Dispute) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disputes[dispute.ID] = *dispute
	return nil
}

func (s *memStore) GetDisputeByID(disputeID string) (*domain.Dispute, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	dispute, ok := s.disputes[disputeID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := dispute
	return &copied, nil
}

func (s *memStore) GetOpenDisputeByAuctionID(auctionID string) (*domain.Dispute, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, dispute := range s.disputes {
		if dispute.AuctionID != auctionID {
			continue
		}
		if dispute.Status.Resolved() || dispute.Status == domain.DisputeCancelled {
			continue
		}
		copied := dispute
		return &copied, nil
	}
	return nil, domain.ErrNotFound
}

func (s *memStore) UpdateDispute(dispute *domain.Dispute) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disputes[dispute.ID] = *dispute
	return nil
}

func (s *memStore) AddEvidence(evidence *domain.Evidence) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evidence[evidence.DisputeID] = append(s.evidence[evidence.DisputeID], *evidence)
	return nil
}

func (s *memStore) CountEvidence(disputeID, submitterID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, e := range s.evidence[disputeID] {
		if e.SubmitterID == submitterID {
			count++
		}
	}
	return count, nil
}

func (s *memStore) AddVote(vote *domain.DisputeVote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	votes := s.votes[vote.DisputeID]
	if votes == nil {
		votes = make(map[string]domain.DisputeVote)
		s.votes[vote.DisputeID] = votes
	}
	votes[vote.ArbitratorID] = *vote
	return nil
}

func (s *memStore) HasVoted(disputeID, arbitratorID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.votes[disputeID][arbitratorID]
	return ok, nil
}

func (s *memStore) GetDisputes(filter domain.DisputeFilter) ([]*domain.Dispute, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Dispute
	for _, dispute := range s.disputes {
		copied := dispute
		out = append(out, &copied)
	}
	return out, int64(len(out)), nil
}

func (s *memStore) setPaused(paused bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config.Paused = paused
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

func (s *memStore) GetArbitrator(userID string) (*domain.ArbitratorRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.arbitrators[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := record
	return &copied, nil
}

func (s *memStore) GetOrCreateArbitrator(userID string, now time.Time) (*domain.ArbitratorRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.arbitrators[userID]
	if !ok {
		record = domain.ArbitratorRecord{UserID: userID, Active: true, RegisteredAt: now}
		s.arbitrators[userID] = record
	}
	copied := record
	return &copied, nil
}

func (s *memStore) SaveArbitrator(record *domain.ArbitratorRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.arbitrators[record.UserID] = *record
	return nil
}

func (s *memStore) ListActiveArbitrators() ([]*domain.ArbitratorRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.ArbitratorRecord
	for _, record := range s.arbitrators {
		if record.Active {
			copied := record
			out = append(out, &copied)
		}
	}
	return out, nil
}

type fixture struct {
	usecase *DefaultDisputeUsecase
	store   *memStore
	rail    *fakeRail
	clock   *fakeClock
}

// newFixture wires the dispute usecase over a real escrow usecase so
// resolution drives an actual payout.
func newFixture() *fixture {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	store := newMemStore(domain.PlatformConfig{
		FeeBps:          250,
		SupportedAssets: []string{"USDC"},
		Arbitrators:     []string{"arb-1", "arb-2", "arb-3"},
		FeeCollectorID:  "fees",
		AuthorityID:     "authority",
		Version:         1,
	})
	rail := &fakeRail{}
	locks := keylock.New()

	escrowUsecase := escrowuc.NewDefaultEscrowUsecase(
		store, store, store, store, store, store,
		rail, noopVerifier{}, testPublisher, noopIndex{}, testMetrics, clock, locks,
	)
	uc := NewDefaultDisputeUsecase(
		store, store, store, store, store, store,
		escrowUsecase, rail, testPublisher, noopIndex{}, testMetrics, clock, locks,
	)

	return &fixture{usecase: uc, store: store, rail: rail, clock: clock}
}

// seedFundedEscrow plants a settled auction with a funded escrow between
// seller-1 and buyer-1 over 6500.
func (f *fixture) seedFundedEscrow() (auctionID, escrowID string) {
	now := f.clock.Now()
	f.store.CreateAuction(&domain.Auction{
		ID:            "a-1",
		SellerID:      "seller-1",
		Status:        domain.AuctionSettled,
		WinnerID:      "buyer-1",
		WinningAmount: 8_000,
		SecondPrice:   6_500,
		RevealedCount: 2,
		PaymentAsset:  "USDC",
		EscrowID:      "e-1",
	})
	f.store.CreateEscrow(&domain.Escrow{
		ID:            "e-1",
		AuctionID:     "a-1",
		Amount:        6_500,
		PaymentAsset:  "USDC",
		BeneficiaryID: "seller-1",
		PayerID:       "buyer-1",
		SecurityLevel: domain.SecurityStandard,
		Conditions: domain.ReleaseConditions{
			RequiresDeliveryConfirmation: true,
			TimeLockDuration:             30 * 24 * time.Hour,
			MultiSigThreshold:            1,
			Signers:                      []string{"seller-1", "buyer-1", "authority"},
			ReleaseDeadline:              now.Add(30 * 24 * time.Hour),
		},
		Status:    domain.EscrowFunded,
		CreatedAt: now,
	})
	f.store.SaveStake(&domain.ReputationStake{UserID: "seller-1", Amount: 5_000})
	return "a-1", "e-1"
}
