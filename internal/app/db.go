package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"moto-repaint-backend/config"
	"moto-repaint-backend/internal/domain"
	"moto-repaint-backend/internal/handlers"
	"moto-repaint-backend/internal/storage"
)

// OpenStore connects to Postgres when DATABASE_URL is set and falls back to
// process memory otherwise.
func OpenStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (storage.Store, error) {
	if cfg.DatabaseURL == "" {
		log.Warn("DATABASE_URL is empty, using in-memory storage")
		return storage.NewMemory(), nil
	}
	pg, err := storage.OpenPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	log.Info("database connected")
	return pg, nil
}

// seedPriceList fills an empty price list with the defaults.
func seedPriceList(ctx context.Context, store storage.PriceList, log *zap.Logger) error {
	items, err := store.ListItems(ctx)
	if err != nil {
		return fmt.Errorf("count price list: %w", err)
	}
	if len(items) > 0 {
		return nil
	}
	if err := store.ReplaceItems(ctx, domain.DefaultPriceList()); err != nil {
		return fmt.Errorf("seed price list: %w", err)
	}
	log.Info("seeded default price list")
	return nil
}

// seedAdmin creates the first administrator when there are no users. Without
// a configured password a random one is generated and logged once.
func seedAdmin(ctx context.Context, store storage.Users, cfg *config.Config, log *zap.Logger) error {
	users, err := store.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if len(users) > 0 {
		return nil
	}

	password := cfg.AdminPassword
	generated := password == ""
	if generated {
		password = uuid.NewString()
	}
	hash, err := handlers.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	u := &domain.User{
		ID:           uuid.NewString(),
		Email:        cfg.AdminEmail,
		Name:         "Administrator",
		Role:         domain.RoleAdmin,
		CreatedAt:    time.Now().UTC(),
		PasswordHash: hash,
	}
	if err := store.CreateUser(ctx, u); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	if generated {
		log.Warn("created administrator with a generated password, change it from the console",
			zap.String("email", u.Email),
			zap.String("password", password),
		)
	} else {
		log.Info("created administrator", zap.String("email", u.Email))
	}
	return nil
}
