package ai

import "context"

type StubConfigRepo struct {
	configs map[int]Config
	nextId  int
}

func NewStubConfigRepo() *StubConfigRepo {
	return &StubConfigRepo{configs: map[int]Config{}}
}

func (s *StubConfigRepo) FindActive(ctx context.Context, userId int) (*Config, error) {
	cfg, ok := s.configs[userId]
	if !ok || !cfg.IsActive {
		return nil, nil
	}
	return &cfg, nil
}

func (s *StubConfigRepo) Upsert(ctx context.Context, cfg Config) (Config, error) {
	s.nextId++
	cfg.ID = s.nextId
	cfg.IsActive = true
	s.configs[cfg.UserID] = cfg
	return cfg, nil
}

func (s *StubConfigRepo) Deactivate(ctx context.Context, userId int) error {
	if cfg, ok := s.configs[userId]; ok {
		cfg.IsActive = false
		s.configs[userId] = cfg
	}
	return nil
}
