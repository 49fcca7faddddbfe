package content

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"moto-repaint-backend/internal/domain"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestDefault(t *testing.T) {
	s := Default()
	require.NotEmpty(t, s.Services)
	assert.Equal(t, domain.ServiceFullRepaint, s.Services[0].Kind)
	assert.Equal(t, "Full Repaint", s.Services[0].Title, "title falls back to the kind")
	assert.Equal(t, "spray-can", s.Services[0].Icon)
	assert.Equal(t, "Chrome & Metal", s.Services[3].Title)
	assert.Len(t, s.Testimonials, 3)

	photo, ok := s.FindPhoto("vespa-restoration")
	assert.True(t, ok)
	assert.Equal(t, "Vespa Super restoration", photo.Title)
	_, ok = s.FindPhoto("nope")
	assert.False(t, ok)
}

func TestParse_UnknownServiceKind(t *testing.T) {
	_, err := Parse([]byte("services:\n  - kind: hovercraft\n"))
	assert.ErrorContains(t, err, "unknown service kind")
}

func TestParse_UnknownField(t *testing.T) {
	_, err := Parse([]byte("heroo:\n  title: x\n"))
	assert.Error(t, err)
}

func TestParse_DuplicatePhoto(t *testing.T) {
	_, err := Parse([]byte("gallery:\n  - id: a\n  - id: a\n"))
	assert.ErrorIs(t, err, ErrDuplicatePhoto)
}

func TestService_JSONUsesKindKey(t *testing.T) {
	b, err := json.Marshal(Default().Services[1])
	require.NoError(t, err)
	assert.Contains(t, string(b), `"kind":"custom_graphics"`)
	assert.Contains(t, string(b), `"icon":"palette"`)
}

func TestLoad_EmptyPathUsesDefault(t *testing.T) {
	s, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Hero.Title, s.Hero.Title)
}

func TestProvider_ReloadKeepsPreviousOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte("hero:\n  title: First\n"), 0o644))

	site, err := Load(path)
	require.NoError(t, err)
	p := NewProvider(path, site)
	assert.Equal(t, "First", p.Get().Hero.Title)

	require.NoError(t, os.WriteFile(path, []byte("hero: [broken"), 0o644))
	assert.Error(t, p.Reload())
	assert.Equal(t, "First", p.Get().Hero.Title)

	require.NoError(t, os.WriteFile(path, []byte("hero:\n  title: Second\n"), 0o644))
	require.NoError(t, p.Reload())
	assert.Equal(t, "Second", p.Get().Hero.Title)
}

func TestProvider_WatchReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte("hero:\n  title: Before\n"), 0o644))
	site, err := Load(path)
	require.NoError(t, err)
	p := NewProvider(path, site)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Watch(ctx, zap.NewNop()) }()

	// give the watcher time to register
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("hero:\n  title: After\n"), 0o644))

	assert.Eventually(t, func() bool { return p.Get().Hero.Title == "After" }, 3*time.Second, 20*time.Millisecond)
	cancel()
	assert.NoError(t, <-done)
}

func TestProvider_WatchWithoutPathBlocksUntilDone(t *testing.T) {
	p := NewProvider("", Default())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, p.Watch(ctx, zap.NewNop()))
}
