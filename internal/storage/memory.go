package storage

import (
	"context"
	"sort"
	"strings"
	"sync"

	"moto-repaint-backend/internal/domain"
)

// Memory keeps everything in process memory. It is used when no database is
// configured and by tests.
type Memory struct {
	mu       sync.RWMutex
	items    []domain.CatalogItem
	nextItem int64
	users    map[string]*domain.User
	projects []*domain.ProjectRequest
	messages []*domain.ContactMessage
	settings SiteSettings
}

func NewMemory() *Memory {
	return &Memory{
		nextItem: 1,
		users:    make(map[string]*domain.User),
	}
}

var _ Store = (*Memory)(nil)

func (m *Memory) Close() error { return nil }

// --- price list ---

func (m *Memory) ListItems(ctx context.Context) ([]domain.CatalogItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.CatalogItem, len(m.items))
	copy(out, m.items)
	return out, nil
}

func (m *Memory) GetItem(ctx context.Context, id int64) (*domain.CatalogItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	it := domain.FindItem(m.items, id)
	if it == nil {
		return nil, ErrNotFound
	}
	cp := *it
	return &cp, nil
}

func (m *Memory) CreateItem(ctx context.Context, item *domain.CatalogItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if item.ID == 0 {
		item.ID = m.nextItem
	}
	if domain.FindItem(m.items, item.ID) != nil {
		item.ID = m.nextItem
	}
	if item.ID >= m.nextItem {
		m.nextItem = item.ID + 1
	}
	m.items = append(m.items, *item)
	return nil
}

func (m *Memory) UpdateItem(ctx context.Context, item domain.CatalogItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.items {
		if m.items[i].ID == item.ID {
			m.items[i] = item
			return nil
		}
	}
	return ErrNotFound
}

func (m *Memory) DeleteItem(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.items {
		if m.items[i].ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *Memory) ReplaceItems(ctx context.Context, items []domain.CatalogItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items = make([]domain.CatalogItem, len(items))
	copy(m.items, items)
	m.nextItem = 1
	for _, it := range items {
		if it.ID >= m.nextItem {
			m.nextItem = it.ID + 1
		}
	}
	return nil
}

// --- users ---

func (m *Memory) ListUsers(ctx context.Context) ([]*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*domain.User, 0, len(m.users))
	for _, u := range m.users {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (m *Memory) GetUser(ctx context.Context, id string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *Memory) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) CreateUser(ctx context.Context, u *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *Memory) UpdateUser(ctx context.Context, u *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.users[u.ID]
	if !ok {
		return ErrNotFound
	}
	existing.Email = u.Email
	existing.Name = u.Name
	existing.Role = u.Role
	return nil
}

func (m *Memory) DeleteUser(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[id]; !ok {
		return ErrNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *Memory) SetPasswordHash(ctx context.Context, id, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return ErrNotFound
	}
	u.PasswordHash = hash
	return nil
}

// --- projects & messages ---

func (m *Memory) CreateProject(ctx context.Context, p *domain.ProjectRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *p
	cp.Items = append([]domain.CartLine(nil), p.Items...)
	m.projects = append(m.projects, &cp)
	return nil
}

// ListProjects returns the newest requests first.
func (m *Memory) ListProjects(ctx context.Context) ([]*domain.ProjectRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*domain.ProjectRequest, 0, len(m.projects))
	for i := len(m.projects) - 1; i >= 0; i-- {
		cp := *m.projects[i]
		out = append(out, &cp)
	}
	return out, nil
}

func (m *Memory) UpdateProjectStatus(ctx context.Context, id string, status domain.ProjectStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range m.projects {
		if p.ID == id {
			p.Status = status
			return nil
		}
	}
	return ErrNotFound
}

func (m *Memory) CreateMessage(ctx context.Context, msg *domain.ContactMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *msg
	m.messages = append(m.messages, &cp)
	return nil
}

func (m *Memory) ListMessages(ctx context.Context) ([]*domain.ContactMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*domain.ContactMessage, 0, len(m.messages))
	for i := len(m.messages) - 1; i >= 0; i-- {
		cp := *m.messages[i]
		out = append(out, &cp)
	}
	return out, nil
}

// --- settings ---

func (m *Memory) LoadSettings(ctx context.Context) (*SiteSettings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := m.settings
	return &s, nil
}

func (m *Memory) SaveSettings(ctx context.Context, s *SiteSettings) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.settings = *s
	return nil
}
