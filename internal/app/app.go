package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"moto-repaint-backend/config"
	"moto-repaint-backend/internal/cartstore"
	"moto-repaint-backend/internal/content"
	"moto-repaint-backend/internal/domain"
	"moto-repaint-backend/internal/handlers"
	"moto-repaint-backend/internal/notify"
	"moto-repaint-backend/internal/storage"
)

const (
	shutdownTimeout = 10 * time.Second
	sweepEvery      = time.Minute
)

type App struct {
	cfg      *config.Config
	log      *zap.Logger
	store    storage.Store
	carts    *cartstore.Store
	content  *content.Provider
	notifier *notify.Telegram
	handler  http.Handler

	Env *handlers.Env
}

// New seeds an empty store and wires the handlers. The store stays owned by
// the caller.
func New(ctx context.Context, cfg *config.Config, store storage.Store, log *zap.Logger) (*App, error) {
	if err := seedPriceList(ctx, store, log); err != nil {
		return nil, err
	}
	if err := seedAdmin(ctx, store, cfg, log); err != nil {
		return nil, err
	}

	site, err := content.Load(cfg.ContentPath)
	if err != nil {
		return nil, fmt.Errorf("load site content: %w", err)
	}
	money, err := domain.NewPriceFormatter(cfg.SiteLocale, cfg.CurrencySymbol)
	if err != nil {
		return nil, err
	}

	carts := cartstore.New(cfg.CartTTL, log.Named("carts"))
	provider := content.NewProvider(cfg.ContentPath, site)
	tg := notify.NewTelegram(store, notify.Fallback{
		Token:  cfg.TelegramBotToken,
		ChatID: cfg.TelegramChatID,
	}, nil, log.Named("telegram"))

	env := &handlers.Env{
		Store:            store,
		Carts:            carts,
		Content:          provider,
		Money:            money,
		Notifier:         tg,
		Log:              log,
		UploadDir:        cfg.UploadDir,
		CarouselInterval: cfg.CarouselInterval,
	}

	mux := http.NewServeMux()
	registerRoutes(mux, env)

	return &App{
		cfg:      cfg,
		log:      log,
		store:    store,
		carts:    carts,
		content:  provider,
		notifier: tg,
		handler:  withRequestLog(log, mux),
		Env:      env,
	}, nil
}

func (a *App) Handler() http.Handler {
	return a.handler
}

// Run serves HTTP, sweeps abandoned carts and watches the content file until
// ctx is cancelled, then shuts the server down gracefully.
func (a *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:              a.cfg.Addr(),
		Handler:           a.handler,
		ReadHeaderTimeout: 10 * time.Second,
		// open event streams end with ctx instead of holding up Shutdown
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	g.Go(func() error {
		a.log.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.log.Info("shutting down")
		err := srv.Shutdown(shutdownCtx)
		a.notifier.Wait()
		return err
	})

	g.Go(func() error {
		return a.carts.Run(ctx, sweepEvery)
	})

	g.Go(func() error {
		return a.content.Watch(ctx, a.log.Named("content"))
	})

	return g.Wait()
}
