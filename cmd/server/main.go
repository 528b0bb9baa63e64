package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/p-n-ai/pai-notes/internal/analytics"
	"github.com/p-n-ai/pai-notes/internal/content"
	"github.com/p-n-ai/pai-notes/internal/page"
	"github.com/p-n-ai/pai-notes/internal/platform/cache"
	"github.com/p-n-ai/pai-notes/internal/platform/config"
	"github.com/p-n-ai/pai-notes/internal/platform/database"
	"github.com/p-n-ai/pai-notes/internal/platform/i18n"
	"github.com/p-n-ai/pai-notes/internal/platform/logging"
	"github.com/p-n-ai/pai-notes/internal/platform/markdown"
	"github.com/p-n-ai/pai-notes/internal/quiz"
	"github.com/p-n-ai/pai-notes/internal/server"
	"github.com/p-n-ai/pai-notes/internal/storage"
	"github.com/p-n-ai/pai-notes/internal/ui"
	"github.com/p-n-ai/pai-notes/internal/visitor"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(logging.New(os.Stdout, cfg.Log))

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	// Graceful shutdown on SIGTERM/SIGINT.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	app, err := setup(ctx, cfg)
	if err != nil {
		slog.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer app.close()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      app.server.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}

// app is the wired server plus whatever must be closed on exit.
type app struct {
	server  *server.Server
	closers []func()
	checks  map[string]server.Check
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// setup connects the backends, loads the content and builds the server.
func setup(ctx context.Context, cfg *config.Config) (*app, error) {
	a := &app{checks: make(map[string]server.Check)}
	fail := func(err error) (*app, error) {
		a.close()
		return nil, err
	}

	var db *database.DB
	if cfg.NeedsDatabase() {
		var err error
		db, err = database.New(ctx, cfg.Database.URL, cfg.Database.MaxConns, cfg.Database.MinConns)
		if err != nil {
			return fail(fmt.Errorf("connecting to database: %w", err))
		}
		a.closers = append(a.closers, db.Close)
		a.checks["database"] = db.HealthCheck

		if err := db.Migrate(ctx); err != nil {
			return fail(fmt.Errorf("migrating database: %w", err))
		}
		slog.Info("database ready")
	}

	store, err := newStore(ctx, cfg, db, a)
	if err != nil {
		return fail(err)
	}

	var events analytics.EventLogger = analytics.NopEventLogger{}
	if cfg.Events.Enabled {
		events = analytics.NewPostgresEventLogger(db.Pool)
	}

	source, err := newSource(cfg.Content)
	if err != nil {
		return fail(err)
	}
	ds := content.NewLoader(source, cfg.Content.Timeout).Load(ctx)

	tr := i18n.New(cfg.Site.Locale)
	md := markdown.New()

	legal, err := ui.LoadLegal(tr, md)
	if err != nil {
		return fail(err)
	}

	wallets := make([]ui.Wallet, 0, len(cfg.Site.DonationWallets))
	for _, w := range cfg.Site.DonationWallets {
		wallets = append(wallets, ui.Wallet{Network: w.Network, Address: w.Address})
	}
	donation := ui.NewDonation(tr, wallets)
	bank := quiz.NewBank(ds)

	renderer, err := page.New(page.Options{
		Title:      cfg.Site.Title,
		Dataset:    ds,
		Bank:       bank,
		Legal:      legal,
		Donation:   donation,
		Translator: tr,
		Markdown:   md,
	})
	if err != nil {
		return fail(fmt.Errorf("building page: %w", err))
	}

	a.server, err = server.New(server.Options{
		Dataset:     ds,
		Bank:        bank,
		Store:       store,
		Events:      events,
		Page:        renderer,
		Legal:       legal,
		Donation:    donation,
		Translator:  tr,
		MaxVisitors: visitor.DefaultMaxEntries,
		Checks:      a.checks,
	})
	if err != nil {
		return fail(err)
	}
	return a, nil
}

func newStore(ctx context.Context, cfg *config.Config, db *database.DB, a *app) (storage.Store, error) {
	switch cfg.Storage.Backend {
	case config.StorageRedis:
		c, err := cache.New(ctx, cfg.Cache.URL)
		if err != nil {
			return nil, fmt.Errorf("connecting to cache: %w", err)
		}
		a.closers = append(a.closers, func() { _ = c.Close() })
		a.checks["cache"] = c.HealthCheck
		slog.Info("storage backend", "backend", "redis", "ttl", cfg.Storage.TTL)
		return storage.NewRedisStore(c.Client, cfg.Storage.TTL), nil
	case config.StoragePostgres:
		slog.Info("storage backend", "backend", "postgres")
		return storage.NewPostgresStore(db.Pool)
	default:
		slog.Info("storage backend", "backend", "memory")
		return storage.NewMemoryStore(), nil
	}
}

// newSource picks where the content documents come from. A nil source serves
// the embedded dataset.
func newSource(cfg config.ContentConfig) (content.Source, error) {
	switch {
	case cfg.URL != "":
		src, err := content.NewHTTPSource(cfg.URL, &http.Client{Timeout: cfg.Timeout})
		if err != nil {
			return nil, fmt.Errorf("content source: %w", err)
		}
		return src, nil
	case cfg.Dir != "":
		return content.DirSource{FS: os.DirFS(cfg.Dir)}, nil
	default:
		return nil, nil
	}
}
