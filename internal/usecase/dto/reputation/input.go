package reputationdto

import "github.com/veilmarket/auction-service/internal/domain"

type DepositStakeInput struct {
	UserID string
	Amount uint64
	Asset  string
}

type WithdrawStakeInput struct {
	UserID string
	Amount uint64
	Asset  string
}

type SlashStakeInput struct {
	AuthorityID string
	UserID      string
	Percentage  uint8
	Asset       string
}

type SetKYCLevelInput struct {
	AuthorityID string
	UserID      string
	Level       domain.KYCLevel
}
