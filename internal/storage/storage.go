// Package storage persists the price list, back-office users, project
// requests, contact messages and site settings.
package storage

import (
	"context"
	"errors"

	"moto-repaint-backend/internal/domain"
)

var ErrNotFound = errors.New("not found")

// PriceList is the Catalog Source as seen by the public site and the
// management console.
type PriceList interface {
	ListItems(ctx context.Context) ([]domain.CatalogItem, error)
	GetItem(ctx context.Context, id int64) (*domain.CatalogItem, error)
	// CreateItem stores item and assigns its id when zero.
	CreateItem(ctx context.Context, item *domain.CatalogItem) error
	UpdateItem(ctx context.Context, item domain.CatalogItem) error
	DeleteItem(ctx context.Context, id int64) error
	// ReplaceItems swaps the whole price list, used by spreadsheet import.
	ReplaceItems(ctx context.Context, items []domain.CatalogItem) error
}

type Users interface {
	ListUsers(ctx context.Context) ([]*domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	CreateUser(ctx context.Context, u *domain.User) error
	UpdateUser(ctx context.Context, u *domain.User) error
	DeleteUser(ctx context.Context, id string) error
	SetPasswordHash(ctx context.Context, id, hash string) error
}

type Projects interface {
	CreateProject(ctx context.Context, p *domain.ProjectRequest) error
	ListProjects(ctx context.Context) ([]*domain.ProjectRequest, error)
	UpdateProjectStatus(ctx context.Context, id string, status domain.ProjectStatus) error
}

type Messages interface {
	CreateMessage(ctx context.Context, m *domain.ContactMessage) error
	ListMessages(ctx context.Context) ([]*domain.ContactMessage, error)
}

// SiteSettings is editable from the management console.
type SiteSettings struct {
	TelegramBotToken string `json:"telegramBotToken"`
	TelegramChatID   string `json:"telegramChatId"`
}

type Settings interface {
	LoadSettings(ctx context.Context) (*SiteSettings, error)
	SaveSettings(ctx context.Context, s *SiteSettings) error
}

// Store bundles every repository the handlers need.
type Store interface {
	PriceList
	Users
	Projects
	Messages
	Settings
	Close() error
}
