package ai

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

type ConfigRepo interface {
	// FindActive returns the user's active configuration, or nil when none.
	FindActive(ctx context.Context, userId int) (*Config, error)
	// Upsert replaces the user's configurations with the given one and
	// marks it active.
	Upsert(ctx context.Context, cfg Config) (Config, error)
	// Deactivate clears the user's active configuration.
	Deactivate(ctx context.Context, userId int) error
}

type ConfigRepoImpl struct {
	db *sql.DB
}

func NewConfigRepo(db *sql.DB) *ConfigRepoImpl {
	return &ConfigRepoImpl{db: db}
}

func (c *ConfigRepoImpl) FindActive(ctx context.Context, userId int) (*Config, error) {
	query := `SELECT id, user_id, provider, api_key, COALESCE(api_base, ''), COALESCE(model, ''), is_active
			  FROM ai_configs WHERE user_id = ? AND is_active = 1`

	var cfg Config
	err := c.db.QueryRowContext(ctx, query, userId).Scan(
		&cfg.ID, &cfg.UserID, &cfg.Provider, &cfg.APIKey, &cfg.APIBase, &cfg.Model, &cfg.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		err := fmt.Errorf("could not find active AI config: %w", err)
		log.Error(err)
		return nil, err
	}
	return &cfg, nil
}

func (c *ConfigRepoImpl) Upsert(ctx context.Context, cfg Config) (Config, error) {
	// one configuration per user
	if _, err := c.db.ExecContext(ctx, `DELETE FROM ai_configs WHERE user_id = ?`, cfg.UserID); err != nil {
		err := fmt.Errorf("could not replace AI config: %w", err)
		log.Error(err)
		return Config{}, err
	}

	query := `INSERT INTO ai_configs (user_id, provider, api_key, api_base, model, is_active)
			  VALUES (?, ?, ?, ?, ?, 1)`
	result, err := c.db.ExecContext(ctx, query, cfg.UserID, cfg.Provider, cfg.APIKey, cfg.APIBase, cfg.Model)
	if err != nil {
		err := fmt.Errorf("could not store AI config: %w", err)
		log.Error(err)
		return Config{}, err
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		err := fmt.Errorf("could not retrieve last insert id: %w", err)
		log.Error(err)
		return Config{}, err
	}
	cfg.ID = int(lastInsertID)
	cfg.IsActive = true
	return cfg, nil
}

func (c *ConfigRepoImpl) Deactivate(ctx context.Context, userId int) error {
	if _, err := c.db.ExecContext(ctx, `UPDATE ai_configs SET is_active = 0 WHERE user_id = ?`, userId); err != nil {
		err := fmt.Errorf("could not deactivate AI config: %w", err)
		log.Error(err)
		return err
	}
	return nil
}
