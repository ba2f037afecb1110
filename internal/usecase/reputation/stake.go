package usecase

import (
	"context"
	"errors"

	"github.com/veilmarket/auction-service/internal/domain"
	reputationdto "github.com/veilmarket/auction-service/internal/usecase/dto/reputation"
)

// DepositStake locks funds for the minimum staking period. Every deposit
// restarts the lock.
func (uc *DefaultReputationUsecase) DepositStake(ctx context.Context, input *reputationdto.DepositStakeInput) error {
	if input.Amount == 0 {
		return domain.ErrInvalidStakeAmount
	}

	uc.Locks.Lock(input.UserID)
	defer uc.Locks.Unlock(input.UserID)

	if err := uc.Rail.Transfer(ctx, input.UserID, stakeVault(input.UserID), input.Amount, input.Asset, "stake-deposit:"+input.UserID); err != nil {
		return err
	}

	now := uc.Clock.Now()
	stake, err := uc.ProfileRepo.GetStake(input.UserID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		stake = &domain.ReputationStake{UserID: input.UserID}
	}

	total, err := domain.CheckedAdd(stake.Amount, input.Amount)
	if err != nil {
		return err
	}
	stake.Amount = total
	stake.LockUntil = now.Add(domain.StakeLockPeriod)
	if err := uc.ProfileRepo.SaveStake(stake); err != nil {
		return err
	}

	profile, err := uc.ProfileRepo.GetOrCreateProfile(input.UserID, now)
	if err != nil {
		return err
	}
	profile.StakedAmount = stake.Amount
	if err := uc.ProfileRepo.SaveProfile(profile); err != nil {
		return err
	}

	uc.Index.Append(ctx, "stake_deposited", reputationdto.ToStakeOutput(stake))

	return nil
}

func (uc *DefaultReputationUsecase) WithdrawStake(ctx context.Context, input *reputationdto.WithdrawStakeInput) error {
	uc.Locks.Lock(input.UserID)
	defer uc.Locks.Unlock(input.UserID)

	stake, err := uc.ProfileRepo.GetStake(input.UserID)
	if err != nil {
		return err
	}
	now := uc.Clock.Now()
	if !stake.CanWithdraw(now) {
		return domain.ErrStakeLocked
	}
	remaining, err := domain.CheckedSub(stake.Amount, input.Amount)
	if err != nil {
		return domain.ErrInvalidStakeAmount
	}

	if err := uc.Rail.Transfer(ctx, stakeVault(input.UserID), input.UserID, input.Amount, input.Asset, "stake-withdraw:"+input.UserID); err != nil {
		return err
	}

	stake.Amount = remaining
	if err := uc.ProfileRepo.SaveStake(stake); err != nil {
		return err
	}

	profile, err := uc.ProfileRepo.GetOrCreateProfile(input.UserID, now)
	if err != nil {
		return err
	}
	profile.StakedAmount = stake.Amount
	if err := uc.ProfileRepo.SaveProfile(profile); err != nil {
		return err
	}

	uc.Index.Append(ctx, "stake_withdrawn", reputationdto.ToStakeOutput(stake))

	return nil
}

// SlashStake burns part of a force-locked stake to the fee collector after
// a lost dispute. Authority only.
func (uc *DefaultReputationUsecase) SlashStake(ctx context.Context, input *reputationdto.SlashStakeInput) (uint64, error) {
	if input.Percentage == 0 || input.Percentage > 100 {
		return 0, domain.ErrInvalidParameter
	}

	config, err := uc.PlatformRepo.GetConfig()
	if err != nil {
		return 0, err
	}
	if input.AuthorityID != config.AuthorityID {
		return 0, domain.ErrInvalidAuthority
	}

	uc.Locks.Lock(input.UserID)
	defer uc.Locks.Unlock(input.UserID)

	stake, err := uc.ProfileRepo.GetStake(input.UserID)
	if err != nil {
		return 0, err
	}
	if !stake.LockedForDispute {
		return 0, domain.ErrInvalidParameter
	}

	slashed := stake.Slash(input.Percentage)
	if slashed > 0 {
		if err := uc.Rail.Transfer(ctx, stakeVault(input.UserID), config.FeeCollectorID, slashed, input.Asset, "stake-slash:"+input.UserID); err != nil {
			return 0, err
		}
	}
	stake.LockedForDispute = false
	if err := uc.ProfileRepo.SaveStake(stake); err != nil {
		return 0, err
	}

	now := uc.Clock.Now()
	profile, err := uc.ProfileRepo.GetOrCreateProfile(input.UserID, now)
	if err != nil {
		return 0, err
	}
	profile.StakedAmount = stake.Amount
	if err := uc.ProfileRepo.SaveProfile(profile); err != nil {
		return 0, err
	}

	uc.Index.Append(ctx, "stake_slashed", map[string]any{
		"user_id": input.UserID,
		"slashed": slashed,
	})

	return slashed, nil
}

func (uc *DefaultReputationUsecase) SetKYCLevel(ctx context.Context, input *reputationdto.SetKYCLevelInput) error {
	config, err := uc.PlatformRepo.GetConfig()
	if err != nil {
		return err
	}
	if input.AuthorityID != config.AuthorityID {
		return domain.ErrInvalidAuthority
	}
	if input.Level > domain.KYCAccredited {
		return domain.ErrInvalidParameter
	}

	uc.Locks.Lock(input.UserID)
	defer uc.Locks.Unlock(input.UserID)

	now := uc.Clock.Now()
	profile, err := uc.ProfileRepo.GetOrCreateProfile(input.UserID, now)
	if err != nil {
		return err
	}
	profile.KYCLevel = input.Level
	if err := uc.ProfileRepo.SaveProfile(profile); err != nil {
		return err
	}

	uc.Index.Append(ctx, "kyc_updated", map[string]any{
		"user_id": input.UserID,
		"level":   input.Level,
	})

	return nil
}
