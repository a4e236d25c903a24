package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	app "github.com/okian/scoutsim/internal/app"
	"github.com/okian/scoutsim/internal/config"
	"github.com/okian/scoutsim/internal/domain/ability"
	"github.com/okian/scoutsim/internal/domain/model"
	"github.com/okian/scoutsim/internal/domain/perception"
	"github.com/okian/scoutsim/internal/domain/session"
	"github.com/okian/scoutsim/internal/sim"
	"github.com/okian/scoutsim/pkg/logger"
	"github.com/okian/scoutsim/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	// Initialize logging
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			os.Stderr.WriteString("failed to sync logger: " + err.Error() + "\n")
		}
	}()

	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// Build the engine with any tuning overrides from config.
	engineOpts := []app.Option{
		app.WithLogger(log),
		app.WithHistoryShardCount(cfg.HistoryShardCount),
		app.WithDedupeWindow(cfg.DedupeWindow),
	}
	if noise := parseContextNoise(cfg.ContextNoise); len(noise) > 0 {
		engineOpts = append(engineOpts,
			app.WithPerceptionModel(perception.NewModel(perception.WithContextNoise(noise))))
	}
	if noise := parseContextNoise(cfg.AbilityContextNoise); len(noise) > 0 {
		engineOpts = append(engineOpts,
			app.WithEstimator(ability.NewEstimator(ability.WithContextNoise(noise))))
	}
	engine := app.New(engineOpts...)
	if err := engine.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start engine: " + err.Error() + "\n")
		return
	}
	defer engine.Stop()

	// Serve metrics and health alongside the simulation.
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	srv := &http.Server{
		Addr:              cfg.MetricsAddr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}
	go func() {
		log.Info(ctx, "starting metrics server", logger.String("addr", cfg.MetricsAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("metrics server failed: " + err.Error() + "\n")
		}
	}()

	runCfg := sim.Config{
		Seed:        cfg.Seed,
		Scouts:      cfg.ScoutCount,
		Players:     cfg.PlayerCount,
		Weeks:       cfg.Weeks,
		Workers:     cfg.WorkerCount,
		SessionOpts: sessionOptions(cfg),
	}
	report, err := sim.NewRunner(runCfg, engine).Run(ctx)
	if err != nil {
		log.Error(ctx, "simulation failed", logger.Error(err))
	} else {
		log.Info(ctx, "season report",
			logger.Int("observations", report.Observations),
			logger.Int("traitReveals", report.Reveals),
			logger.Int("scouts", len(report.Scouts)),
			logger.Int("players", report.Players),
		)
		if top, err := engine.History().MostObserved(ctx, 5); err == nil {
			for _, h := range top {
				log.Info(ctx, "most watched",
					logger.String("scoutID", h.ScoutID),
					logger.String("playerID", h.PlayerID),
					logger.Int("observations", h.Observations),
					logger.Int("distinctContexts", h.DistinctContexts()),
				)
			}
		}
	}

	// Keep serving metrics until a shutdown signal arrives.
	<-ctx.Done()
	log.Info(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}
	log.Info(ctx, "stopped")
}

// sessionOptions converts config overrides into session options.
func sessionOptions(cfg *config.Config) []session.Option {
	var opts []session.Option
	if budgets := parseTokenBudgets(cfg.SessionTokens); len(budgets) > 0 {
		opts = append(opts, session.WithTokenBudgets(budgets))
	}
	if ranges := parsePhaseRanges(cfg.PhaseRanges); len(ranges) > 0 {
		opts = append(opts, session.WithPhaseRanges(ranges))
	}
	return opts
}

// parseTokenBudgets maps mode names from config onto session modes. Unknown
// names are dropped.
func parseTokenBudgets(in map[string]int) map[session.Mode]int {
	if len(in) == 0 {
		return nil
	}
	byName := map[string]session.Mode{}
	for _, m := range []session.Mode{
		session.ModeFullObservation, session.ModeInvestigation,
		session.ModeAnalysis, session.ModeQuickInteraction,
	} {
		byName[m.String()] = m
	}
	out := map[session.Mode]int{}
	for name, tokens := range in {
		if m, ok := byName[name]; ok && tokens >= 0 {
			out[m] = tokens
		}
	}
	return out
}

// parsePhaseRanges maps mode names from config onto session modes. Unknown
// names and malformed ranges are dropped.
func parsePhaseRanges(in map[string][]int) map[session.Mode][2]int {
	if len(in) == 0 {
		return nil
	}
	byName := map[string]session.Mode{}
	for _, m := range []session.Mode{
		session.ModeFullObservation, session.ModeInvestigation,
		session.ModeAnalysis, session.ModeQuickInteraction,
	} {
		byName[m.String()] = m
	}
	out := map[session.Mode][2]int{}
	for name, bounds := range in {
		m, ok := byName[name]
		if !ok || len(bounds) != 2 || bounds[0] <= 0 || bounds[0] > bounds[1] {
			continue
		}
		out[m] = [2]int{bounds[0], bounds[1]}
	}
	return out
}

// parseContextNoise maps context names from config onto contexts. Unknown
// names are dropped.
func parseContextNoise(in map[string]float64) map[model.Context]float64 {
	if len(in) == 0 {
		return nil
	}
	byName := map[string]model.Context{}
	for _, c := range []model.Context{
		model.ContextLiveMatch, model.ContextVideoAnalysis,
		model.ContextTrainingGround, model.ContextYouthTournament,
		model.ContextAcademyVisit, model.ContextTrialMatch,
		model.ContextFollowUpVisit,
	} {
		byName[c.String()] = c
	}
	out := map[model.Context]float64{}
	for name, mult := range in {
		if c, ok := byName[name]; ok && mult > 0 {
			out[c] = mult
		}
	}
	return out
}
