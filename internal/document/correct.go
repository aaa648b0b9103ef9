package document

import (
	"fmt"
	"sort"

	"github.com/ironsheep/doccrop-mcp/internal/geometry"
)

// positionWindow is the number of neighbouring documents whose centers are
// combined into one corrected position.
const positionWindow = 3

// CorrectBatch returns a corrected copy of docs for a batch of similar scans.
//
// Every output document takes the same size: the quantile q of the sorted
// input widths and heights (index floor(n*q), clamped to n-1). Its center is
// the per-axis median of a window of three documents centered on it; the
// window is shifted inward at both ends of the batch. Outputs are unrotated
// and keep the input IDs.
//
// At least three documents and q in [0,1] are required, otherwise
// ErrInvalidArgument is returned.
func CorrectBatch(docs []*Document, q float64) ([]*Document, error) {
	n := len(docs)
	if n < positionWindow {
		return nil, fmt.Errorf("%w: need at least %d documents, got %d", ErrInvalidArgument, positionWindow, n)
	}
	if q < 0 || q > 1 {
		return nil, fmt.Errorf("%w: quantile %g outside [0,1]", ErrInvalidArgument, q)
	}

	widths := make([]float64, n)
	heights := make([]float64, n)
	for i, d := range docs {
		widths[i] = d.Width
		heights[i] = d.Height
	}
	sort.Float64s(widths)
	sort.Float64s(heights)

	idx := int(float64(n) * q)
	if idx > n-1 {
		idx = n - 1
	}
	width, height := widths[idx], heights[idx]

	out := make([]*Document, n)
	for i := range docs {
		start := i - positionWindow/2
		if start < 0 {
			start = 0
		}
		if start > n-positionWindow {
			start = n - positionWindow
		}
		window := docs[start : start+positionWindow]

		xs := make([]float64, positionWindow)
		ys := make([]float64, positionWindow)
		for j, d := range window {
			xs[j] = d.X
			ys[j] = d.Y
		}

		doc, err := New(geometry.Pt(median(xs), median(ys)), width, height)
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		doc.ID = docs[i].ID
		out[i] = doc
	}
	return out, nil
}

// CorrectBatchMedian is CorrectBatch with the median size.
func CorrectBatchMedian(docs []*Document) ([]*Document, error) {
	return CorrectBatch(docs, 0.5)
}

func median(values []float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	return sorted[len(sorted)/2]
}
