// Package service wires the perception, ability and personality models
// together with the history store into the observation engine. Every random
// draw flows through the rng.Source handed to each call, so a run is fully
// reproducible from its seed.
package service

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	repository "github.com/okian/scoutsim/internal/adapters/repository"
	"github.com/okian/scoutsim/internal/domain/ability"
	"github.com/okian/scoutsim/internal/domain/dedupe"
	"github.com/okian/scoutsim/internal/domain/model"
	"github.com/okian/scoutsim/internal/domain/perception"
	"github.com/okian/scoutsim/internal/domain/personality"
	"github.com/okian/scoutsim/internal/domain/session"
	"github.com/okian/scoutsim/pkg/logger"
	"github.com/okian/scoutsim/pkg/metrics"
	"github.com/okian/scoutsim/pkg/rng"
)

// observationNamespace is the UUIDv5 namespace for observation identifiers.
// SHA1-derived IDs keep replays byte-identical where random UUIDs would not.
var observationNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("scoutsim/observation"))

// warmUpThreshold is the number of phases a focus allocation must be live
// before reads graduate from passive to focused quality.
const warmUpThreshold = 2

// Engine implements the observation pipeline over a shared history store.
type Engine struct {
	mu sync.RWMutex

	history repository.Store
	deduper dedupe.Deduper

	perception *perception.Model
	estimator  *ability.Estimator

	// Configuration
	shardCount   int
	dedupeWindow int

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithLogger sets a custom logger for the engine.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithHistory sets a pre-built history store, bypassing the default.
func WithHistory(store repository.Store) Option {
	return func(e *Engine) {
		if store != nil {
			e.history = store
		}
	}
}

// WithDeduper sets a pre-built deduper, bypassing the default.
func WithDeduper(d dedupe.Deduper) Option {
	return func(e *Engine) {
		if d != nil {
			e.deduper = d
		}
	}
}

// WithPerceptionModel sets a tuned perception model.
func WithPerceptionModel(m *perception.Model) Option {
	return func(e *Engine) {
		if m != nil {
			e.perception = m
		}
	}
}

// WithEstimator sets a tuned ability estimator.
func WithEstimator(est *ability.Estimator) Option {
	return func(e *Engine) {
		if est != nil {
			e.estimator = est
		}
	}
}

// WithHistoryShardCount sets the shard count of the default history store.
func WithHistoryShardCount(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.shardCount = n
		}
	}
}

// WithDedupeWindow sets the size of the default dedupe window.
func WithDedupeWindow(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.dedupeWindow = n
		}
	}
}

// New constructs an Engine with default configuration.
func New(opts ...Option) *Engine {
	e := &Engine{
		shardCount:   8,
		dedupeWindow: 100_000,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Start initializes the engine components not supplied via options.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.started {
		return nil
	}

	if e.logger == nil {
		e.logger = logger.Get()
	}

	if e.history == nil {
		e.history = repository.NewShardedStore(repository.WithShardCount(e.shardCount))
	}
	if e.deduper == nil {
		e.deduper = dedupe.New(dedupe.WithWindowSize(e.dedupeWindow))
	}
	if e.perception == nil {
		e.perception = perception.NewModel()
	}
	if e.estimator == nil {
		e.estimator = ability.NewEstimator()
	}

	e.started = true
	e.logger.Info(ctx, "observation engine started",
		logger.Int("historyShards", e.shardCount),
		logger.Int("dedupeWindow", e.dedupeWindow),
	)
	return nil
}

// Stop marks the engine stopped. The stores are in-memory and need no
// teardown beyond dropping references.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.started {
		return
	}
	e.started = false
	e.logger.Info(context.Background(), "observation engine stopped")
}

// History exposes the engine's history store for reporting.
func (e *Engine) History() repository.Store {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.history
}

// NewSession creates a session through the engine so the started-session
// metric is recorded alongside.
func (e *Engine) NewSession(cfg session.Config, src rng.Source, opts ...session.Option) session.Session {
	s := session.New(cfg, src, opts...)
	metrics.RecordSessionStarted(s.Mode.String())
	return s
}

// CompleteSession closes the session and builds its result, recording the
// outcome metrics. A session not in reflection passes through Complete as a
// no-op and the result reflects its unchanged state.
func (e *Engine) CompleteSession(s session.Session) (session.Session, session.Result) {
	done := session.Complete(s)
	res := session.BuildResult(done)
	if done.State == session.StateComplete {
		metrics.RecordSessionCompleted(string(res.Tier), res.InsightPoints)
		for _, h := range done.Hypotheses {
			if h.State.Terminal() {
				metrics.RecordHypothesisResolved(h.State.String())
			}
		}
	}
	return done, res
}

// ObserveRequest carries everything Observe needs for one player in one
// completed session.
type ObserveRequest struct {
	Scout   model.Scout
	Player  *model.GroundTruthPlayer
	Session session.Session
}

// Observe distills one player's showing in a session into an Observation:
// what the scout believes about the player's attributes, ability and
// personality after this sighting. The observation is folded into the
// scout/player history so later sightings sharpen.
//
// Duplicate observations (same scout, player, context, week and season)
// return ErrDuplicateObservation and leave the history untouched.
func (e *Engine) Observe(ctx context.Context, src rng.Source, req ObserveRequest) (model.Observation, error) {
	e.mu.RLock()
	started := e.started
	e.mu.RUnlock()
	if !started {
		return model.Observation{}, ErrNotStarted
	}
	if req.Player == nil || req.Player.ID == "" || req.Scout.ID == "" {
		return model.Observation{}, ErrInvalidRequest
	}

	start := time.Now()
	sess := req.Session

	id := observationID(req.Scout.ID, req.Player.ID, sess.Context, sess.Week, sess.Season)
	if e.deduper.SeenAndRecord(ctx, id) {
		metrics.RecordDuplicateObservation()
		e.logger.Debug(ctx, "duplicate observation skipped",
			logger.String("observationID", id),
			logger.String("scoutID", req.Scout.ID),
			logger.String("playerID", req.Player.ID),
		)
		return model.Observation{}, ErrDuplicateObservation
	}

	// Prior history feeds the observation-count and diversity terms; a
	// first sighting has none.
	hist, err := e.history.History(ctx, req.Scout.ID, req.Player.ID)
	if err != nil {
		hist = repository.History{}
	}
	obsCount := hist.Observations + 1
	distinct := hist.DistinctContexts()
	if _, ok := hist.Contexts[sess.Context]; !ok {
		distinct++
	}

	readings := e.readAttributes(src, req, obsCount, distinct)

	abilityReading := e.estimator.Estimate(src, ability.Input{
		TrueCurrent:       req.Player.CurrentAbility,
		TruePotential:     req.Player.PotentialAbility,
		Age:               req.Player.Age,
		CurrentJudgment:   req.Scout.CurrentAbilityJudgment,
		PotentialJudgment: req.Scout.PotentialJudgment,
		Observations:      obsCount,
		Context:           sess.Context,
	})

	obs := model.Observation{
		ID:         id,
		ScoutID:    req.Scout.ID,
		PlayerID:   req.Player.ID,
		Context:    sess.Context,
		Week:       sess.Week,
		Season:     sess.Season,
		Attributes: readings,
		Ability:    abilityReading,
		Notes:      strings.Join(sess.Notes, "\n"),
	}

	// Personality reveal draws only on traits this scout has not already
	// uncovered.
	if trait, ok := personality.Reveal(src, remainingTraits(req.Player.HiddenTraits, hist.RevealedTraits), req.Scout, e.focusLens(sess, req.Player.ID), sess.Context); ok {
		obs.RevealedTrait = &trait
		metrics.RecordPersonalityReveal()
	}

	if err := e.history.Record(ctx, obs); err != nil {
		// An unrecorded observation can be retried; release its ID.
		e.deduper.Unrecord(ctx, id)
		return model.Observation{}, err
	}

	metrics.RecordObservation(sess.Context.String())
	metrics.RecordAttributeReadings(len(readings))
	metrics.RecordObserveLatency(time.Since(start))

	e.logger.Debug(ctx, "observation recorded",
		logger.String("observationID", id),
		logger.String("scoutID", req.Scout.ID),
		logger.String("playerID", req.Player.ID),
		logger.String("context", sess.Context.String()),
		logger.Int("attributes", len(readings)),
		logger.Int("observations", obsCount),
	)
	return obs, nil
}

// readAttributes walks the session's phases and produces one reading per
// attribute the scout could see. Focused phases with a warmed-up allocation
// read at full quality; everything else reads passively.
func (e *Engine) readAttributes(src rng.Source, req ObserveRequest, obsCount, distinct int) []model.AttributeReading {
	sess := req.Session
	visible := make(perception.AttributeSet)
	focused := make(perception.AttributeSet)

	for _, ph := range sess.Phases {
		if ph.Index > sess.CurrentPhase && sess.State == session.StateActive {
			break // unplayed phases reveal nothing
		}
		events := eventsFor(ph.Events, req.Player.ID)
		set := e.perception.Visible(sess.Context, ph.Type, events, req.Scout.Skills)
		for a := range set {
			visible[a] = struct{}{}
			if e.focusCovers(sess, req.Player.ID, ph.Index) {
				focused[a] = struct{}{}
			}
		}
	}
	if len(visible) == 0 {
		visible = e.perception.VisiblePassive()
	}

	readings := make([]model.AttributeReading, 0, len(visible))
	for _, attr := range visible.Sorted() {
		in := perception.Input{
			TrueValue:        req.Player.Attribute(attr),
			Form:             req.Player.Form,
			Skill:            req.Scout.Skills.SkillFor(attr),
			Observations:     obsCount,
			DistinctContexts: distinct,
			Context:          sess.Context,
		}
		if focused.Contains(attr) && sess.WarmUp(req.Player.ID, e.focusLens(sess, req.Player.ID)) >= warmUpThreshold {
			readings = append(readings, e.perception.Read(src, attr, in))
		} else {
			readings = append(readings, e.perception.ReadPassive(src, attr, in))
		}
	}
	return readings
}

// focusCovers reports whether any focus allocation had the player covered
// during the given phase.
func (e *Engine) focusCovers(s session.Session, playerID string, phase int) bool {
	for _, a := range s.Allocations {
		if a.PlayerID != playerID {
			continue
		}
		if phase >= a.StartPhase && phase < a.StartPhase+a.PhasesActive {
			return true
		}
	}
	return false
}

// focusLens returns the lens of the player's most recent allocation, or the
// general lens when the player was never focused.
func (e *Engine) focusLens(s session.Session, playerID string) model.Lens {
	if a, ok := s.CurrentFocus(playerID); ok {
		return a.Lens
	}
	for i := len(s.Allocations) - 1; i >= 0; i-- {
		if s.Allocations[i].PlayerID == playerID {
			return s.Allocations[i].Lens
		}
	}
	return model.LensGeneral
}

// eventsFor filters phase events down to the observed player.
func eventsFor(events []model.PhaseEvent, playerID string) []model.PhaseEvent {
	out := make([]model.PhaseEvent, 0, len(events))
	for _, ev := range events {
		if ev.PlayerID == playerID {
			out = append(out, ev)
		}
	}
	return out
}

// remainingTraits returns hidden traits not yet revealed to this scout.
func remainingTraits(hidden, revealed []model.Trait) []model.Trait {
	if len(revealed) == 0 {
		return hidden
	}
	seen := make(map[model.Trait]struct{}, len(revealed))
	for _, t := range revealed {
		seen[t] = struct{}{}
	}
	out := make([]model.Trait, 0, len(hidden))
	for _, t := range hidden {
		if _, ok := seen[t]; !ok {
			out = append(out, t)
		}
	}
	return out
}

// observationID derives the deterministic identifier for one sighting.
func observationID(scoutID, playerID string, ctx model.Context, week, season int) string {
	name := strings.Join([]string{
		scoutID,
		playerID,
		ctx.String(),
		strconv.Itoa(week),
		strconv.Itoa(season),
	}, "|")
	return uuid.NewSHA1(observationNamespace, []byte(name)).String()
}
