package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moto-repaint-backend/internal/domain"
)

func TestMemory_PriceListCRUD(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.ReplaceItems(ctx, domain.DefaultPriceList()))

	item := &domain.CatalogItem{Category: "parts", Name: "Fork repaint", Price: 250000}
	require.NoError(t, m.CreateItem(ctx, item))
	assert.Equal(t, int64(8), item.ID, "next id follows the largest existing id")

	got, err := m.GetItem(ctx, 8)
	require.NoError(t, err)
	assert.Equal(t, "Fork repaint", got.Name)

	got.Price = 300000
	require.NoError(t, m.UpdateItem(ctx, *got))
	again, _ := m.GetItem(ctx, 8)
	assert.Equal(t, int64(300000), again.Price)

	require.NoError(t, m.DeleteItem(ctx, 8))
	_, err = m.GetItem(ctx, 8)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, m.DeleteItem(ctx, 8), ErrNotFound)
	assert.ErrorIs(t, m.UpdateItem(ctx, domain.CatalogItem{ID: 99}), ErrNotFound)
}

func TestMemory_CreateItemAvoidsDuplicateID(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.CreateItem(ctx, &domain.CatalogItem{ID: 5, Name: "a"}))
	dup := &domain.CatalogItem{ID: 5, Name: "b"}
	require.NoError(t, m.CreateItem(ctx, dup))
	assert.Equal(t, int64(6), dup.ID)
}

func TestMemory_ListItemsReturnsCopy(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.ReplaceItems(ctx, domain.DefaultPriceList()))

	items, _ := m.ListItems(ctx)
	items[0].Name = "changed"

	fresh, _ := m.ListItems(ctx)
	assert.NotEqual(t, "changed", fresh[0].Name)
}

func TestMemory_Users(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	now := time.Now()

	require.NoError(t, m.CreateUser(ctx, &domain.User{ID: "b", Email: "B@example.com", Role: domain.RoleStaff, CreatedAt: now}))
	require.NoError(t, m.CreateUser(ctx, &domain.User{ID: "a", Email: "a@example.com", Role: domain.RoleAdmin, CreatedAt: now.Add(-time.Hour)}))

	users, err := m.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "a", users[0].ID, "oldest first")

	u, err := m.GetUserByEmail(ctx, "b@EXAMPLE.com")
	require.NoError(t, err)
	assert.Equal(t, "b", u.ID)

	require.NoError(t, m.SetPasswordHash(ctx, "b", "hash"))
	u, _ = m.GetUser(ctx, "b")
	assert.Equal(t, "hash", u.PasswordHash)

	u.Name = "Bob"
	require.NoError(t, m.UpdateUser(ctx, u))
	u, _ = m.GetUser(ctx, "b")
	assert.Equal(t, "Bob", u.Name)
	assert.Equal(t, "hash", u.PasswordHash, "update keeps the password hash")

	require.NoError(t, m.DeleteUser(ctx, "b"))
	_, err = m.GetUser(ctx, "b")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_ProjectsNewestFirst(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.CreateProject(ctx, &domain.ProjectRequest{ID: "p1", Status: domain.ProjectNew}))
	require.NoError(t, m.CreateProject(ctx, &domain.ProjectRequest{ID: "p2", Status: domain.ProjectNew}))

	list, err := m.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "p2", list[0].ID)

	require.NoError(t, m.UpdateProjectStatus(ctx, "p1", domain.ProjectQuoted))
	list, _ = m.ListProjects(ctx)
	assert.Equal(t, domain.ProjectQuoted, list[1].Status)
	assert.ErrorIs(t, m.UpdateProjectStatus(ctx, "nope", domain.ProjectDone), ErrNotFound)
}

func TestMemory_Settings(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	s, err := m.LoadSettings(ctx)
	require.NoError(t, err)
	assert.Empty(t, s.TelegramBotToken)

	require.NoError(t, m.SaveSettings(ctx, &SiteSettings{TelegramBotToken: "t", TelegramChatID: "42"}))
	s, _ = m.LoadSettings(ctx)
	assert.Equal(t, "42", s.TelegramChatID)
}
