package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/HiteshJha1/telegram-keyword-bot/internal/config"
	"github.com/HiteshJha1/telegram-keyword-bot/internal/domain/model"
	"github.com/HiteshJha1/telegram-keyword-bot/internal/infra/telegram"
	"github.com/HiteshJha1/telegram-keyword-bot/internal/repo/snapshot"
	"github.com/HiteshJha1/telegram-keyword-bot/internal/services/access"
	"github.com/HiteshJha1/telegram-keyword-bot/internal/services/engine"
	"github.com/HiteshJha1/telegram-keyword-bot/internal/services/keywords"
	"github.com/HiteshJha1/telegram-keyword-bot/internal/services/mutes"
	"github.com/HiteshJha1/telegram-keyword-bot/internal/ui"
)

type App struct {
	cfg    config.Config
	logger *slog.Logger
	store  *snapshot.Store
	tg     *telegram.Client

	keywordService *keywords.Service
	accessService  *access.Service
	muteService    *mutes.Service
	engineService  *engine.Service
}

func New(cfg config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	store, err := snapshot.Open(cfg.StateFile, logger)
	if err != nil {
		return nil, fmt.Errorf("open state store: %w", err)
	}

	app := &App{
		cfg:    cfg,
		logger: logger,
		store:  store,
	}

	app.tg, err = telegram.NewClient(
		cfg.BotToken,
		time.Duration(cfg.PollTimeoutSeconds)*time.Second,
		logger,
		app.routeUpdate,
	)
	if err != nil {
		return nil, fmt.Errorf("create telegram client: %w", err)
	}

	app.keywordService = keywords.NewService(store)
	app.accessService = access.NewService(
		cfg.OwnerTGID,
		store,
		app.tg,
		access.ParseFailPolicy(cfg.AdminCheckFailPolicy),
		logger,
	)
	app.muteService = mutes.NewService(store, app.tg, cfg.SweepInterval, logger)
	app.engineService = engine.NewService(
		app.keywordService,
		app.accessService,
		app.muteService,
		app.tg,
		&chatNotifier{tg: app.tg},
		cfg.MuteDuration,
		logger,
	)

	return app, nil
}

// Run starts the expiry sweeper, the metrics endpoint when configured,
// and then blocks on the Telegram update loop until the context is done.
func (a *App) Run(ctx context.Context) error {
	go a.muteService.RunSweeper(ctx)
	if a.cfg.IsMetricsEnabled() {
		go a.serveMetrics(ctx)
	}
	return a.tg.Start(ctx)
}

func (a *App) serveMetrics(ctx context.Context) {
	router := chi.NewRouter()
	router.Handle("/metrics", promhttp.Handler())
	server := &http.Server{Addr: a.cfg.MetricsAddr, Handler: router}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	a.logger.Info("serving metrics", "addr", a.cfg.MetricsAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		a.logger.Error("metrics server", "error", err)
	}
}

// chatNotifier posts enforcement announcements into the location the
// offending message came from.
type chatNotifier struct {
	tg *telegram.Client
}

func (n *chatNotifier) NotifyMuted(ctx context.Context, msg model.InboundMessage, _ string, until time.Time) error {
	return n.tg.SendText(ctx, msg.ChatID, locationThreadID(msg.Location), ui.UserMuted(msg.Username, msg.UserID, until))
}

func (n *chatNotifier) NotifyMuteFailed(ctx context.Context, msg model.InboundMessage, _ string) error {
	return n.tg.SendText(ctx, msg.ChatID, locationThreadID(msg.Location), ui.MuteFailed(msg.Username, msg.UserID))
}
