package ai

import (
	"context"

	"github.com/yann-lu/mind-balance/pkg/user"
)

type ConfigService interface {
	// ActiveConfig returns the caller's active configuration, or nil.
	ActiveConfig(ctx context.Context) (*Config, error)
	// SaveConfig validates, stores, and activates a configuration.
	SaveConfig(ctx context.Context, cfg Config) (Config, error)
	// DisableConfig deactivates the caller's configuration.
	DisableConfig(ctx context.Context) error
	// ActiveProvider builds a chat provider from the active configuration.
	// Returns ErrNoActiveConfig when there is none.
	ActiveProvider(ctx context.Context) (Provider, error)
}

type ConfigServiceImpl struct {
	repo    ConfigRepo
	factory *ProviderFactory
}

func NewConfigService(repo ConfigRepo, factory *ProviderFactory) *ConfigServiceImpl {
	return &ConfigServiceImpl{repo: repo, factory: factory}
}

func (s *ConfigServiceImpl) ActiveConfig(ctx context.Context) (*Config, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.FindActive(ctx, userId)
}

func (s *ConfigServiceImpl) SaveConfig(ctx context.Context, cfg Config) (Config, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Config{}, err
	}
	cfg.UserID = userId

	// reject unknown providers before persisting
	if _, err := s.factory.Build(cfg); err != nil {
		return Config{}, err
	}
	return s.repo.Upsert(ctx, cfg)
}

func (s *ConfigServiceImpl) DisableConfig(ctx context.Context) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return err
	}
	return s.repo.Deactivate(ctx, userId)
}

func (s *ConfigServiceImpl) ActiveProvider(ctx context.Context) (Provider, error) {
	cfg, err := s.ActiveConfig(ctx)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, ErrNoActiveConfig
	}
	return s.factory.Build(*cfg)
}
