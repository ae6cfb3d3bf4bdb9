package searcher

import (
	"github.com/rs/zerolog/log"

	"chopsticks/game"
	"chopsticks/utils"
)

// Builder explores every position reachable from a root and links parents to children inside a
// Table. The move graph has cycles; a record is expanded only on its first visit, later visits
// only add edges.
type Builder struct {
	table   *Table
	metrics MetricsCollector
}

func NewBuilder(table *Table, metrics MetricsCollector) *Builder {
	if metrics == nil {
		metrics = NewNoMetricsCollector()
	}
	return &Builder{table: table, metrics: metrics}
}

// Build populates the table from root.
func (b *Builder) Build(root game.Position) {
	b.visit(root, NoParent)

	log.Debug().
		Str("root", root.Ordered().String()).
		Int("records", len(b.table.Simulated())).
		Msg("built position graph")
}

func (b *Builder) visit(position game.Position, parent Index) {
	b.metrics.AddVisit()

	position.Order()
	index, record := b.table.Find(position)

	if parent != NoParent {
		parentRecord := b.table.At(parent)
		// A move that changed nothing hands the same hands back to the opponent; that is not an edge
		if parentRecord.Position.Turn() != position {
			b.link(parent, index)
		}
	}

	if record.Simulated {
		return
	}

	record.Simulated = true
	record.Position = position
	b.metrics.AddRecord()

	if position.Lost() {
		return
	}

	for _, move := range position.Candidates() {
		b.visit(position.Play(move), index)
	}
}

func (b *Builder) link(parent, child Index) {
	parentRecord := b.table.At(parent)
	childRecord := b.table.At(child)

	var added bool
	childRecord.Parents, added = utils.AppendUnique(childRecord.Parents, parent)
	parentRecord.Children, _ = utils.AppendUnique(parentRecord.Children, child)
	if added {
		b.metrics.AddEdge()
	}
}
