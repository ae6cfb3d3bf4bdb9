package report

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"

	"chopsticks/game"
	"chopsticks/searcher"
)

// WriteTable prints every reached position in table order with its evaluation and, when it has
// moves, the child with the lowest evaluation.
func WriteTable(w io.Writer, t *searcher.Table) error {
	out := bufio.NewWriter(w)
	t.Each(func(i searcher.Index, r *searcher.Record) {
		if !r.Simulated {
			return
		}
		fmt.Fprintf(out, "%v : %s", r.Position, signed(r.Evaluation))
		if best, ok := t.BestChild(i); ok {
			child := t.At(best)
			fmt.Fprintf(out, " (%v : %s)", child.Position, signed(child.Evaluation))
		}
		fmt.Fprintln(out)
	})
	return out.Flush()
}

// WritePosition prints a single position with its children and parents.
func WritePosition(w io.Writer, view searcher.RecordView) error {
	out := bufio.NewWriter(w)
	fmt.Fprintf(out, "evaluation : %s\n\n", plain(view.Evaluation))

	fmt.Fprintf(out, "%d children :\n", len(view.Children))
	for _, child := range view.Children {
		writeNeighbor(out, child)
	}

	fmt.Fprintf(out, "\n%d parents :\n", len(view.Parents))
	for _, parent := range view.Parents {
		writeNeighbor(out, parent)
	}
	return out.Flush()
}

func writeNeighbor(out io.Writer, n searcher.Neighbor) {
	fmt.Fprintf(out, "%s (evaluation : %s, %d children)\n", spaced(n.Position), plain(n.Evaluation), n.Children)
}

// signed renders a fixed width evaluation with an explicit sign, e.g. "+  33.3333".
func signed(v float64) string {
	sign := "+"
	if v < 0 {
		sign = "-"
	}
	return fmt.Sprintf("%s%9.4f", sign, math.Abs(v))
}

// plain renders an evaluation with six significant digits, e.g. "100" or "-12.3457".
func plain(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

func spaced(p game.Position) string {
	return fmt.Sprintf("%d %d  %d %d", p.Current[0], p.Current[1], p.Next[0], p.Next[1])
}
