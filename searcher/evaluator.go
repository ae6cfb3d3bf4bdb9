package searcher

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"

	"chopsticks/game"
	"chopsticks/meta"
)

// Evaluations are from the mover's perspective: Win is a forced win, Loss a forced loss.
const (
	Win  = 100.0
	Loss = -Win
)

var ErrRootNotSimulated = errors.New("root position was never built")

type Option func(e *Evaluator)

// Evaluator assigns a value to every reached record by repeating relaxation passes over the
// graph. The graph has cycles, so within a pass a record that is reached again before it is done
// answers with the value it kept from the previous pass.
type Evaluator struct {
	passes  int
	root    game.Position
	metrics MetricsCollector
}

func WithPasses(passes int) Option {
	return func(e *Evaluator) {
		e.passes = passes
	}
}

func WithRoot(root game.Position) Option {
	return func(e *Evaluator) {
		e.root = root.Ordered()
	}
}

func WithMetrics(metrics MetricsCollector) Option {
	return func(e *Evaluator) {
		if metrics != nil {
			e.metrics = metrics
		}
	}
}

func NewEvaluator(options ...Option) *Evaluator {
	e := &Evaluator{ // Default values
		passes:  meta.DefaultPasses,
		root:    meta.StartPosition,
		metrics: NewNoMetricsCollector(),
	}
	for _, option := range options {
		option(e)
	}
	if e.passes <= 0 {
		panic("Must run at least one evaluation pass")
	}
	return e
}

// Run evaluates the table in place. The context is checked between passes.
func (e *Evaluator) Run(ctx context.Context, t *Table) error {
	rootIndex, root := t.Find(e.root)
	if !root.Simulated {
		return fmt.Errorf("%w: %v", ErrRootNotSimulated, e.root)
	}

	reached := t.Simulated()
	for pass := 0; pass < e.passes; pass++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("stopped after %d of %d passes: %w", pass, e.passes, err)
		}

		e.reset(t)
		e.evaluate(t, rootIndex)
		// Records only reachable through a suppressed self-loop still get a value
		for _, i := range reached {
			e.evaluate(t, i)
		}
		e.metrics.AddPass()
	}

	log.Debug().
		Int("passes", e.passes).
		Float64("root", root.Evaluation).
		Msgf("evaluated %d records", len(reached))
	return nil
}

// reset clears the pass flags and pins the terminal positions. Evaluations are kept as the
// starting guess for the next pass.
func (e *Evaluator) reset(t *Table) {
	t.Each(func(_ Index, r *Record) {
		r.Evaluated = false
	})

	for i := 0; i <= game.MaxHand; i++ {
		for j := 0; j <= game.MaxHand; j++ {
			lost := t.At(IndexOf(game.NewPosition(0, 0, i, j)))
			lost.Evaluation = Loss
			lost.Evaluated = true

			won := t.At(IndexOf(game.NewPosition(i, j, 0, 0)))
			won.Evaluation = Win
			won.Evaluated = true
		}
	}
}

func (e *Evaluator) evaluate(t *Table, i Index) float64 {
	r := t.At(i)
	if r.Evaluated {
		return r.Evaluation
	}
	r.Evaluated = true

	m := len(r.Children)
	if m == 0 {
		r.Evaluation = 0
		return r.Evaluation
	}

	for _, child := range r.Children {
		e.evaluate(t, child)
	}

	// Lowest first: the worst position for the opponent is the best one for us
	slices.SortStableFunc(r.Children, func(a, b Index) int {
		return cmp.Compare(t.At(a).Evaluation, t.At(b).Evaluation)
	})

	best := t.At(r.Children[0]).Evaluation
	if math.Abs(best) == Win {
		r.Evaluation = -best
		return r.Evaluation
	}

	// Weighted average, the nth best child weighs 2(m-n)/(m(m+1))
	r.Evaluation = 0
	for n, child := range r.Children {
		weight := 2 * float64(m-n) / float64(m*(m+1))
		r.Evaluation += t.At(child).Evaluation * -weight
	}
	return r.Evaluation
}
