package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"chopsticks/game"
	"chopsticks/meta"
	"chopsticks/searcher"
)

var ErrNotSimulated = errors.New("position was never reached")

type Option func(e *Engine)

// Engine builds the position graph from a start position and evaluates it.
type Engine struct {
	passes  int
	start   game.Position
	metrics searcher.MetricsCollector
	table   *searcher.Table
}

func WithPasses(passes int) Option {
	return func(e *Engine) {
		e.passes = passes
	}
}

func WithStart(start game.Position) Option {
	return func(e *Engine) {
		e.start = start.Ordered()
	}
}

func WithMetrics(metrics searcher.MetricsCollector) Option {
	return func(e *Engine) {
		if metrics != nil {
			e.metrics = metrics
		}
	}
}

func New(options ...Option) *Engine {
	e := &Engine{
		passes:  meta.DefaultPasses,
		start:   meta.StartPosition,
		metrics: searcher.NewMetricsCollector(),
	}
	for _, option := range options {
		option(e)
	}
	if e.passes <= 0 {
		panic("Must run at least one evaluation pass")
	}
	if !e.start.Valid() {
		panic(fmt.Sprintf("start position %v out of range", e.start))
	}
	return e
}

// Run builds a fresh table and evaluates it. The previous table, if any, is replaced.
func (e *Engine) Run(ctx context.Context) (searcher.Metric, error) {
	e.metrics.Start()
	table := searcher.NewTable()

	log.Info().Msgf("building graph from %v", e.start)
	searcher.NewBuilder(table, e.metrics).Build(e.start)

	log.Info().Msgf("running %d evaluation passes", e.passes)
	evaluator := searcher.NewEvaluator(
		searcher.WithPasses(e.passes),
		searcher.WithRoot(e.start),
		searcher.WithMetrics(e.metrics),
	)
	if err := evaluator.Run(ctx, table); err != nil {
		return e.metrics.Complete(), fmt.Errorf("failed to evaluate: %w", err)
	}
	e.table = table

	metric := e.metrics.Complete()
	log.Info().
		Int("records", metric.Records).
		Int("edges", metric.Edges).
		Dur("duration", metric.Duration).
		Msg("evaluation complete")
	return metric, nil
}

// Table returns the evaluated table, or nil before a successful Run.
func (e *Engine) Table() *searcher.Table {
	return e.table
}

func (e *Engine) Lookup(p game.Position) (searcher.RecordView, error) {
	if e.table == nil {
		return searcher.RecordView{}, fmt.Errorf("%w: %v (no table)", ErrNotSimulated, p)
	}
	view, ok := e.table.Lookup(p)
	if !ok {
		return view, fmt.Errorf("%w: %v", ErrNotSimulated, p.Ordered())
	}
	return view, nil
}
