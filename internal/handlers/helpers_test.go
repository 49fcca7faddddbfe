package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"moto-repaint-backend/internal/cartstore"
	"moto-repaint-backend/internal/content"
	"moto-repaint-backend/internal/domain"
	"moto-repaint-backend/internal/storage"
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "workshop-admin"
	staffEmail    = "staff@example.com"
	staffPassword = "workshop-staff"
)

type recordingNotifier struct {
	mu    sync.Mutex
	texts []string
}

func (n *recordingNotifier) Notify(_ context.Context, text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.texts = append(n.texts, text)
	return nil
}

func (n *recordingNotifier) sent() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.texts...)
}

type fixture struct {
	env      *Env
	store    *storage.Memory
	notifier *recordingNotifier
	handler  http.Handler
	adminID  string
	staffID  string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	store := storage.NewMemory()
	require.NoError(t, store.ReplaceItems(ctx, domain.DefaultPriceList()))

	f := &fixture{store: store, notifier: &recordingNotifier{}}
	f.adminID = addUser(t, store, "admin-1", adminEmail, adminPassword, domain.RoleAdmin)
	f.staffID = addUser(t, store, "staff-1", staffEmail, staffPassword, domain.RoleStaff)

	money, err := domain.NewPriceFormatter("id", "Rp")
	require.NoError(t, err)

	f.env = &Env{
		Store:            store,
		Carts:            cartstore.New(time.Hour, nil),
		Content:          content.NewProvider("", content.Default()),
		Money:            money,
		Notifier:         f.notifier,
		Log:              zap.NewNop(),
		UploadDir:        t.TempDir(),
		CarouselInterval: 10 * time.Millisecond,
		now:              func() time.Time { return time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC) },
	}
	f.handler = testRoutes(f.env)
	return f
}

func addUser(t *testing.T, store *storage.Memory, id, email, password string, role domain.Role) string {
	t.Helper()
	hash, err := HashPassword(password)
	require.NoError(t, err)
	require.NoError(t, store.CreateUser(context.Background(), &domain.User{
		ID:           id,
		Email:        email,
		Name:         id,
		Role:         role,
		CreatedAt:    time.Now(),
		PasswordHash: hash,
	}))
	return id
}

// testRoutes mirrors the patterns registered by the app package.
func testRoutes(e *Env) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/price-list", e.HandlePriceList)
	mux.HandleFunc("/api/cart", e.HandleCartCreate)
	mux.HandleFunc("/api/cart/{id}", e.HandleCart)
	mux.HandleFunc("/api/cart/{id}/items", e.HandleCartItems)
	mux.HandleFunc("/api/cart/{id}/items/{itemId}", e.HandleCartItem)
	mux.HandleFunc("/api/cart/{id}/checkout", e.HandleCartCheckout)
	mux.HandleFunc("/api/projects", e.HandleProjectCreate)
	mux.HandleFunc("/api/contact", e.HandleContact)
	mux.HandleFunc("/api/site", e.HandleSite)
	mux.HandleFunc("/api/testimonials/stream", e.HandleTestimonialStream)
	mux.HandleFunc("/api/testimonials/stream/{id}/{action}", e.HandleTestimonialControl)
	mux.HandleFunc("/api/admin/price-list", e.HandleAdminPriceList)
	mux.HandleFunc("/api/admin/price-list/import", e.HandleAdminPriceImport)
	mux.HandleFunc("/api/admin/price-list/{id}", e.HandleAdminPriceItem)
	mux.HandleFunc("/api/admin/users", e.HandleAdminUsers)
	mux.HandleFunc("/api/admin/users/{id}", e.HandleAdminUserDetail)
	mux.HandleFunc("/api/admin/users/{id}/password", e.HandleAdminUserPassword)
	mux.HandleFunc("/api/admin/projects", e.HandleAdminProjects)
	mux.HandleFunc("/api/admin/projects/{id}", e.HandleAdminProjectStatus)
	mux.HandleFunc("/api/admin/messages", e.HandleAdminMessages)
	mux.HandleFunc("/api/admin/settings", e.HandleAdminSettings)
	mux.HandleFunc("/api/admin/upload", e.HandleUpload)
	mux.Handle("/static/", Static())
	mux.HandleFunc("/price-list", e.HandlePriceListPage)
	mux.HandleFunc(DefaultProjectPath, e.HandleProjectNewPage)
	mux.HandleFunc("/{$}", e.HandleLanding)
	return mux
}

type credentials struct{ email, password string }

var (
	asAdmin = &credentials{adminEmail, adminPassword}
	asStaff = &credentials{staffEmail, staffPassword}
)

func (f *fixture) do(t *testing.T, method, path string, body any, who *credentials) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if who != nil {
		req.SetBasicAuth(who.email, who.password)
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func (f *fixture) newCart(t *testing.T) string {
	t.Helper()
	rec := f.do(t, http.MethodPost, "/api/cart", nil, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	return decode[cartView](t, rec).ID
}
