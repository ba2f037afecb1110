package domain

import (
	"context"
	"time"
)

// PaymentRail moves funds between platform accounts. Escrow holds live on
// the rail under the escrow's own account ID.
type PaymentRail interface {
	Transfer(ctx context.Context, fromAccount, toAccount string, amount uint64, asset, reference string) error
	Balance(ctx context.Context, account, asset string) (uint64, error)
}

// ProofVerifier checks delivery proofs submitted by sellers. Implementations
// range from a hash check to an external attestation service.
type ProofVerifier interface {
	Verify(ctx context.Context, auctionID string, proof []byte) error
}

// IndexLog is a fire-and-forget append-only event log. Failures are logged
// and never block the operation that produced the event.
type IndexLog interface {
	Append(ctx context.Context, eventType string, payload any)
}

// Clock abstracts time for deadline checks so tests can pin the moment.
type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }
