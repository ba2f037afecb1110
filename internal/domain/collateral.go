package domain

import "time"

// CollateralPool tracks bid collateral held per auction. Deposits happen on
// commit, refunds on reveal or post-settlement claim, forfeits on failed
// reveal. Forfeited value flows to the fee collector.
type CollateralPool struct {
	AuctionID      string
	TotalDeposited uint64
	TotalRefunded  uint64
	TotalForfeited uint64
	UpdatedAt      time.Time
}

func (p *CollateralPool) Held() uint64 {
	return p.TotalDeposited - p.TotalRefunded - p.TotalForfeited
}

func (p *CollateralPool) Deposit(amount uint64) error {
	sum, err := CheckedAdd(p.TotalDeposited, amount)
	if err != nil {
		return err
	}
	p.TotalDeposited = sum
	return nil
}

func (p *CollateralPool) Refund(amount uint64) error {
	if amount > p.Held() {
		return ErrAmountUnderflow
	}
	p.TotalRefunded += amount
	return nil
}

func (p *CollateralPool) Forfeit(amount uint64) error {
	if amount > p.Held() {
		return ErrAmountUnderflow
	}
	p.TotalForfeited += amount
	return nil
}

type CollateralRepository interface {
	GetPool(auctionID string) (*CollateralPool, error)
	GetOrCreatePool(auctionID string, now time.Time) (*CollateralPool, error)
	SavePool(pool *CollateralPool) error
}
