package usecase

import (
	"context"

	"github.com/veilmarket/auction-service/internal/domain"
)

type PlatformUsecase interface {
	GetConfig() (*domain.PlatformConfig, error)
	UpdateConfig(ctx context.Context, callerID string, updated *domain.PlatformConfig) error
	Pause(ctx context.Context, callerID string) error
	Unpause(ctx context.Context, callerID string) error
}

type DefaultPlatformUsecase struct {
	PlatformRepo domain.PlatformRepository
	Index        domain.IndexLog
	Clock        domain.Clock
}

func NewDefaultPlatformUsecase(
	platformRepo domain.PlatformRepository,
	index domain.IndexLog,
	clock domain.Clock) *DefaultPlatformUsecase {

	return &DefaultPlatformUsecase{
		PlatformRepo: platformRepo,
		Index:        index,
		Clock:        clock,
	}
}

func (uc *DefaultPlatformUsecase) GetConfig() (*domain.PlatformConfig, error) {
	return uc.PlatformRepo.GetConfig()
}

// UpdateConfig replaces platform parameters. The version check makes
// concurrent admin updates fail loudly instead of last-write-wins.
func (uc *DefaultPlatformUsecase) UpdateConfig(ctx context.Context, callerID string, updated *domain.PlatformConfig) error {
	current, err := uc.PlatformRepo.GetConfig()
	if err != nil {
		return err
	}
	if callerID != current.AuthorityID {
		return domain.ErrInvalidAuthority
	}
	if err := updated.Validate(); err != nil {
		return err
	}

	updated.Version = current.Version + 1
	updated.UpdatedAt = uc.Clock.Now()
	if err := uc.PlatformRepo.SaveConfig(updated, current.Version); err != nil {
		return err
	}

	uc.Index.Append(ctx, "config_updated", map[string]any{
		"version": updated.Version,
		"fee_bps": updated.FeeBps,
		"paused":  updated.Paused,
	})

	return nil
}

func (uc *DefaultPlatformUsecase) Pause(ctx context.Context, callerID string) error {
	return uc.setPaused(ctx, callerID, true)
}

func (uc *DefaultPlatformUsecase) Unpause(ctx context.Context, callerID string) error {
	return uc.setPaused(ctx, callerID, false)
}

func (uc *DefaultPlatformUsecase) setPaused(ctx context.Context, callerID string, paused bool) error {
	current, err := uc.PlatformRepo.GetConfig()
	if err != nil {
		return err
	}
	if callerID != current.AuthorityID {
		return domain.ErrInvalidAuthority
	}
	if current.Paused == paused {
		return nil
	}

	current.Paused = paused
	current.Version++
	current.UpdatedAt = uc.Clock.Now()
	if err := uc.PlatformRepo.SaveConfig(current, current.Version-1); err != nil {
		return err
	}

	uc.Index.Append(ctx, "platform_paused", map[string]any{"paused": paused})

	return nil
}
