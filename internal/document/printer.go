package document

import (
	"fmt"
	"io"
)

// Printer formats one document as a single output line.
type Printer interface {
	PrintDocument(d *Document) string
}

// SimplePrinter writes tab separated fields:
// id, center x, center y, width, height, rotation.
type SimplePrinter struct{}

func (SimplePrinter) PrintDocument(d *Document) string {
	return fmt.Sprintf("%s\t%.0f\t%.0f\t%.0f\t%.0f\t%.2f", d.ID, d.X, d.Y, d.Width, d.Height, d.Rotation)
}

// WriteAll writes one line per document using p.
func WriteAll(w io.Writer, docs []*Document, p Printer) error {
	for _, d := range docs {
		if _, err := fmt.Fprintln(w, p.PrintDocument(d)); err != nil {
			return fmt.Errorf("failed to write document %q: %w", d.ID, err)
		}
	}
	return nil
}
