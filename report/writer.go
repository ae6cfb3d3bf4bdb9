package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"chopsticks/searcher"
)

// Writer exports an evaluated table as CSV files inside a timestamped directory.
type Writer struct {
	baseDir string
}

func NewWriter(root string) (*Writer, error) {
	// Create a subfolder named by current timestamp
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join(root, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

// WriteRecords writes one row per reached position.
func (w *Writer) WriteRecords(t *searcher.Table) error {
	path := filepath.Join(w.baseDir, "records.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	header := []string{"position", "evaluation", "children", "parents", "best"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write records header: %w", err)
	}

	for _, i := range t.Simulated() {
		r := t.At(i)
		best := ""
		if child, ok := t.BestChild(i); ok {
			best = t.At(child).Position.String()
		}
		row := []string{
			r.Position.String(),
			strconv.FormatFloat(r.Evaluation, 'f', -1, 64),
			strconv.Itoa(len(r.Children)),
			strconv.Itoa(len(r.Parents)),
			best,
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write record row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush records: %w", err)
	}
	return nil
}

// WriteEdges writes one row per parent to child link, children in their evaluated order.
func (w *Writer) WriteEdges(t *searcher.Table) error {
	path := filepath.Join(w.baseDir, "edges.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create edges file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	header := []string{"parent", "child", "rank"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write edges header: %w", err)
	}

	for _, i := range t.Simulated() {
		r := t.At(i)
		for rank, child := range r.Children {
			row := []string{
				r.Position.String(),
				t.At(child).Position.String(),
				strconv.Itoa(rank),
			}
			err = writer.Write(row)
			if err != nil {
				return fmt.Errorf("failed to write edge row: %w", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush edges: %w", err)
	}
	return nil
}
