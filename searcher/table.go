package searcher

import (
	"fmt"

	"github.com/samber/lo"

	"chopsticks/game"
)

// Index addresses a record in a Table.
type Index int32

// NoParent marks the root of a build.
const NoParent Index = -1

// side is the number of values a single hand can take.
const side = game.MaxHand + 1

// Record is the stored state of one position. Children and Parents hold indices into the table
// that owns the record.
type Record struct {
	Position   game.Position
	Simulated  bool // Reached from the start position
	Evaluated  bool // Evaluated during the current pass
	Evaluation float64
	Children   []Index
	Parents    []Index
}

// Table is a dense store holding one record per possible position, reached or not.
type Table struct {
	records []Record
}

// NewTable allocates a table of unsimulated, unevaluated records.
func NewTable() *Table {
	return &Table{records: make([]Record, side*side*side*side)}
}

// IndexOf returns the slot of a position. The position is used as is, so callers normalize first.
func IndexOf(p game.Position) Index {
	if !p.Valid() {
		panic(fmt.Sprintf("position %v out of range", p))
	}
	return Index(((p.Current[0]*side+p.Current[1])*side+p.Next[0])*side + p.Next[1])
}

// Len returns the number of slots in the table.
func (t *Table) Len() int {
	return len(t.records)
}

// At returns the record at index i.
func (t *Table) At(i Index) *Record {
	return &t.records[i]
}

// Find normalizes p and returns its index and record.
func (t *Table) Find(p game.Position) (Index, *Record) {
	i := IndexOf(p.Ordered())
	return i, &t.records[i]
}

// Each calls f for every slot in index order.
func (t *Table) Each(f func(Index, *Record)) {
	for i := range t.records {
		f(Index(i), &t.records[i])
	}
}

// Simulated returns the indices of all reached records, in index order.
func (t *Table) Simulated() []Index {
	var reached []Index
	t.Each(func(i Index, r *Record) {
		if r.Simulated {
			reached = append(reached, i)
		}
	})
	return reached
}

// BestChild returns the child with the lowest evaluation, the first one on ties.
func (t *Table) BestChild(i Index) (Index, bool) {
	children := t.records[i].Children
	if len(children) == 0 {
		return NoParent, false
	}
	best := lo.MinBy(children, func(a, b Index) bool {
		return t.records[a].Evaluation < t.records[b].Evaluation
	})
	return best, true
}

// Neighbor is a read-only view of a record linked to the one being looked up.
type Neighbor struct {
	Position   game.Position
	Evaluation float64
	Children   int
}

// RecordView is a read-only view of a record and its links.
type RecordView struct {
	Position   game.Position
	Simulated  bool
	Evaluation float64
	Children   []Neighbor
	Parents    []Neighbor
}

// Lookup returns the view of p after normalization. ok is false when p was never reached; the
// view then only carries the position.
func (t *Table) Lookup(p game.Position) (view RecordView, ok bool) {
	_, r := t.Find(p)
	if !r.Simulated {
		return RecordView{Position: p.Ordered()}, false
	}
	return RecordView{
		Position:   r.Position,
		Simulated:  true,
		Evaluation: r.Evaluation,
		Children:   t.neighbors(r.Children),
		Parents:    t.neighbors(r.Parents),
	}, true
}

func (t *Table) neighbors(indices []Index) []Neighbor {
	return lo.Map(indices, func(i Index, _ int) Neighbor {
		r := &t.records[i]
		return Neighbor{
			Position:   r.Position,
			Evaluation: r.Evaluation,
			Children:   len(r.Children),
		}
	})
}
