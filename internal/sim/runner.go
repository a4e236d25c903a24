// Package sim exercises the observation engine end to end: it generates a
// deterministic ground-truth world, scripts a season of scouting sessions,
// and reports what the scouts came away believing. Two runs with the same
// config produce byte-identical reports, which is the engine's core
// guarantee and what Verify checks.
package sim

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"runtime"
	"sort"
	"sync"

	service "github.com/okian/scoutsim/internal/app"
	"github.com/okian/scoutsim/internal/domain/model"
	"github.com/okian/scoutsim/internal/domain/session"
	"github.com/okian/scoutsim/pkg/logger"
	"github.com/okian/scoutsim/pkg/rng"
)

// scoutSeedStride spaces per-scout RNG streams so concurrent scouts never
// share a draw sequence.
const scoutSeedStride = 1_000_003

// Config sizes one simulation run.
type Config struct {
	Seed    int64
	Scouts  int
	Players int
	Weeks   int
	Workers int
	Season  int

	// SessionOpts apply to every session the run books, e.g. token budget
	// or phase range overrides.
	SessionOpts []session.Option
}

// ScoutReport is the per-scout tally of one run.
type ScoutReport struct {
	ScoutID        string
	Sessions       int
	Observations   int
	Duplicates     int
	RevealedTraits int
	InsightPoints  int
	Tiers          map[session.Tier]int
}

// Report is the deterministic summary of one run.
type Report struct {
	Seed         int64
	Players      int
	Observations int
	Reveals      int
	Scouts       []ScoutReport
}

// Runner drives one simulated scouting season against an engine.
type Runner struct {
	engine *service.Engine
	cfg    Config
	logger logger.Logger
}

// NewRunner builds a runner. A nil engine gets a default one on Run.
func NewRunner(cfg Config, engine *service.Engine) *Runner {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Season <= 0 {
		cfg.Season = 1
	}
	return &Runner{engine: engine, cfg: cfg}
}

// Run plays every scout's season and aggregates the report. Scouts run
// concurrently on independent RNG streams; the report is ordered by scout ID
// so concurrency never leaks into the output.
func (r *Runner) Run(ctx context.Context) (Report, error) {
	if r.cfg.Scouts <= 0 || r.cfg.Players <= 0 || r.cfg.Weeks <= 0 {
		return Report{}, ErrEmptyWorld
	}
	if err := ctx.Err(); err != nil {
		return Report{}, fmt.Errorf("simulation cancelled: %w", err)
	}

	if r.logger == nil {
		r.logger = logger.Get().Named("sim")
	}
	if r.engine == nil {
		r.engine = service.New()
	}
	if err := r.engine.Start(ctx); err != nil {
		return Report{}, err
	}

	// The world is drawn from the base seed before any scout stream forks.
	worldSrc := rng.New(r.cfg.Seed)
	scouts := GenerateScouts(worldSrc, r.cfg.Scouts)
	players := GeneratePlayers(worldSrc, r.cfg.Players)

	r.logger.Info(ctx, "simulation starting",
		logger.Int("scouts", len(scouts)),
		logger.Int("players", len(players)),
		logger.Int("weeks", r.cfg.Weeks),
		logger.Int("workers", r.cfg.Workers),
	)

	reports := make([]ScoutReport, len(scouts))
	jobs := make(chan int)
	var wg sync.WaitGroup

	workers := r.cfg.Workers
	if workers > len(scouts) {
		workers = len(scouts)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				reports[i] = r.playSeason(ctx, scouts[i], players, r.cfg.Seed+int64(i+1)*scoutSeedStride)
			}
		}()
	}

	for i := range scouts {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return Report{}, fmt.Errorf("simulation cancelled: %w", ctx.Err())
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	sort.Slice(reports, func(i, j int) bool { return reports[i].ScoutID < reports[j].ScoutID })

	out := Report{Seed: r.cfg.Seed, Players: len(players), Scouts: reports}
	for _, sr := range reports {
		out.Observations += sr.Observations
		out.Reveals += sr.RevealedTraits
	}

	r.logger.Info(ctx, "simulation finished",
		logger.Int("observations", out.Observations),
		logger.Int("reveals", out.Reveals),
	)
	return out, nil
}

// playSeason runs one scout's full season on its own RNG stream.
func (r *Runner) playSeason(ctx context.Context, scout model.Scout, players []*model.GroundTruthPlayer, seed int64) ScoutReport {
	src := rng.New(seed)
	report := ScoutReport{
		ScoutID: scout.ID,
		Tiers:   make(map[session.Tier]int),
	}

	for week := 1; week <= r.cfg.Weeks; week++ {
		target := players[src.IntN(len(players))]
		s := playSession(src, script{
			scout:  scout,
			target: target,
			week:   week,
			season: r.cfg.Season,
			opts:   r.cfg.SessionOpts,
		}, r.engine.NewSession)
		report.Sessions++

		done, res := r.engine.CompleteSession(s)
		report.InsightPoints += res.InsightPoints
		report.Tiers[res.Tier]++

		obs, err := r.engine.Observe(ctx, src, service.ObserveRequest{
			Scout:   scout,
			Player:  target,
			Session: done,
		})
		switch {
		case errors.Is(err, service.ErrDuplicateObservation):
			report.Duplicates++
			continue
		case err != nil:
			r.logger.Warn(ctx, "observation failed",
				logger.String("scoutID", scout.ID),
				logger.String("playerID", target.ID),
				logger.Error(err),
			)
			continue
		}
		report.Observations++
		if obs.RevealedTrait != nil {
			report.RevealedTraits++
		}
	}
	return report
}

// Verify runs the same config twice on fresh engines and reports whether the
// two runs agree. Disagreement means a nondeterministic draw leaked in.
func Verify(ctx context.Context, cfg Config) error {
	first, err := NewRunner(cfg, nil).Run(ctx)
	if err != nil {
		return err
	}
	second, err := NewRunner(cfg, nil).Run(ctx)
	if err != nil {
		return err
	}
	if !reflect.DeepEqual(first, second) {
		return fmt.Errorf("%w: seed %d", ErrNondeterministic, cfg.Seed)
	}
	return nil
}
