package searcher

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"chopsticks/game"
	"chopsticks/meta"
)

var (
	nodeA = IndexOf(game.NewPosition(2, 1, 1, 1))
	nodeB = IndexOf(game.NewPosition(1, 1, 2, 1))
	nodeC = IndexOf(game.NewPosition(1, 1, 2, 0))
)

// settled marks a record as already evaluated in the current pass.
func settled(table *Table, i Index, evaluation float64) {
	table.At(i).Evaluation = evaluation
	table.At(i).Evaluated = true
}

func TestEvaluate(t *testing.T) {
	e := NewEvaluator(WithPasses(1))

	t.Run("averaging children weighted by rank", func(t *testing.T) {
		table := NewTable()
		table.At(nodeA).Children = []Index{nodeB, nodeC}
		settled(table, nodeB, 30)
		settled(table, nodeC, -60)

		got := e.evaluate(table, nodeA)

		// Best child -60 weighs 2/3, worst child 30 weighs 1/3, both negated
		require.InDelta(t, 30.0, got, 1e-9)
		require.Equal(t, got, table.At(nodeA).Evaluation)
		require.Equal(t, []Index{nodeC, nodeB}, table.At(nodeA).Children, "Children should be sorted ascending")
	})

	t.Run("taking a forced win", func(t *testing.T) {
		table := NewTable()
		table.At(nodeA).Children = []Index{nodeB, nodeC}
		settled(table, nodeB, 20)
		settled(table, nodeC, Loss)

		require.Equal(t, Win, e.evaluate(table, nodeA))
	})

	t.Run("accepting a forced loss", func(t *testing.T) {
		table := NewTable()
		table.At(nodeA).Children = []Index{nodeB, nodeC}
		settled(table, nodeB, Win)
		settled(table, nodeC, Win)

		require.Equal(t, Loss, e.evaluate(table, nodeA))
	})

	t.Run("valuing childless records at zero", func(t *testing.T) {
		table := NewTable()
		table.At(nodeA).Evaluation = 55

		require.Zero(t, e.evaluate(table, nodeA))
		require.True(t, table.At(nodeA).Evaluated)
	})

	t.Run("answering from the current pass", func(t *testing.T) {
		table := NewTable()
		table.At(nodeA).Children = []Index{nodeB}
		settled(table, nodeA, 12)
		settled(table, nodeB, -90)

		require.Equal(t, 12.0, e.evaluate(table, nodeA), "An evaluated record should not be recomputed")
	})

	t.Run("breaking cycles with the previous value", func(t *testing.T) {
		table := NewTable()
		table.At(nodeA).Children = []Index{nodeB}
		table.At(nodeB).Children = []Index{nodeA}
		table.At(nodeA).Evaluation = 40 // Left over from an earlier pass

		got := e.evaluate(table, nodeA)

		require.Equal(t, -40.0, table.At(nodeB).Evaluation, "B should read A's previous value")
		require.Equal(t, 40.0, got)
	})
}

func evaluatedTable(t *testing.T, root game.Position, passes int) *Table {
	t.Helper()
	table := buildTable(root)
	err := NewEvaluator(WithRoot(root), WithPasses(passes)).Run(context.Background(), table)
	require.NoError(t, err)
	return table
}

func TestRun(t *testing.T) {
	t.Run("refusing an unbuilt table", func(t *testing.T) {
		err := NewEvaluator(WithPasses(1)).Run(context.Background(), NewTable())
		require.ErrorIs(t, err, ErrRootNotSimulated)
	})

	t.Run("panicking without passes", func(t *testing.T) {
		require.Panics(t, func() {
			NewEvaluator(WithPasses(0))
		})
	})

	t.Run("stopping when cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := NewEvaluator(WithPasses(10)).Run(ctx, buildTable(meta.StartPosition))
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("pinning terminal positions", func(t *testing.T) {
		table := evaluatedTable(t, meta.StartPosition, 20)
		for i := 0; i <= game.MaxHand; i++ {
			for j := 0; j <= game.MaxHand; j++ {
				if i != 0 || j != 0 {
					require.Equal(t, Loss, table.At(IndexOf(game.NewPosition(0, 0, i, j))).Evaluation)
					require.Equal(t, Win, table.At(IndexOf(game.NewPosition(i, j, 0, 0))).Evaluation)
				}
			}
		}
		table.Each(func(_ Index, r *Record) {
			if r.Simulated && r.Position.Lost() {
				require.Equal(t, Loss, r.Evaluation)
				require.Empty(t, r.Children)
			}
		})
	})

	t.Run("evaluating every reached record", func(t *testing.T) {
		table := evaluatedTable(t, meta.StartPosition, 20)
		table.Each(func(_ Index, r *Record) {
			if r.Simulated {
				require.True(t, r.Evaluated, "%v should be evaluated", r.Position)
				require.LessOrEqual(t, math.Abs(r.Evaluation), Win+1e-9, "%v out of range", r.Position)
			}
		})
	})

	t.Run("winning right away when the opponent can be finished", func(t *testing.T) {
		for _, passes := range []int{1, 2, 25} {
			table := evaluatedTable(t, meta.StartPosition, passes)
			finishing := 0
			table.Each(func(_ Index, r *Record) {
				if !r.Simulated {
					return
				}
				for _, child := range r.Children {
					if table.At(child).Position.Lost() {
						finishing++
						require.Equal(t, Win, r.Evaluation, "%v can win on the spot after %d passes", r.Position, passes)
						break
					}
				}
			})
			require.Positive(t, finishing)
		}
	})

	t.Run("valuing a hand-checked win", func(t *testing.T) {
		// 40 10: attacking with 4 busts the opponent's last hand
		root := game.NewPosition(4, 0, 1, 0)
		table := evaluatedTable(t, root, 5)
		_, r := table.Find(root)
		require.Equal(t, Win, r.Evaluation)
	})

	t.Run("staying in range as passes grow", func(t *testing.T) {
		n := evaluatedTable(t, meta.StartPosition, 30)
		more := evaluatedTable(t, meta.StartPosition, 31)
		for _, table := range []*Table{n, more} {
			table.Each(func(_ Index, r *Record) {
				if r.Simulated {
					require.LessOrEqual(t, math.Abs(r.Evaluation), Win+1e-9)
				}
			})
		}
	})

	t.Run("reproducing the opening value", func(t *testing.T) {
		first := evaluatedTable(t, meta.StartPosition, 40)
		second := evaluatedTable(t, meta.StartPosition, 40)

		_, a := first.Find(meta.StartPosition)
		_, b := second.Find(meta.StartPosition)
		require.Equal(t, a.Evaluation, b.Evaluation)
		require.Equal(t, first.records, second.records)
	})

	t.Run("counting passes", func(t *testing.T) {
		metrics := NewMetricsCollector()
		err := NewEvaluator(WithPasses(3), WithMetrics(metrics)).Run(context.Background(), buildTable(meta.StartPosition))
		require.NoError(t, err)
		require.Equal(t, 3, metrics.Complete().Passes)
	})
}
