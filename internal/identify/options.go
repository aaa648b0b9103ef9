package identify

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/doccrop-mcp/internal/imaging"
	"github.com/ironsheep/doccrop-mcp/internal/metrics"
)

// Defaults for Settings.
const (
	DefaultWorkingSize          = 600
	DefaultMaxRetries           = 3
	DefaultLineIterations       = 5
	DefaultLineThresholdHigh    = 0.5
	DefaultLineThresholdLow     = 0.1
	DefaultColorThreshold       = 10
	DefaultNoisyLines           = 15
	DefaultMinIntersectionRatio = 0.3
)

// maxPadding bounds the padding in either direction, in pixels.
const maxPadding = 99

// Settings tunes an Identifier.
type Settings struct {
	// WorkingSize is the longest side of the image the search runs on.
	WorkingSize int `json:"working_size"`

	// MaxRetries is the number of attempts that may be used up before the
	// last result is returned as exhausted.
	MaxRetries int `json:"max_retries"`

	// LineIterations, LineThresholdHigh and LineThresholdLow drive the
	// Hough threshold search.
	LineIterations    int     `json:"line_iterations"`
	LineThresholdHigh float64 `json:"line_threshold_high"`
	LineThresholdLow  float64 `json:"line_threshold_low"`

	// ColorThreshold is the per channel tolerance used to decide that a
	// probe ray sees background.
	ColorThreshold int `json:"color_threshold"`

	// NoisyLines and MinIntersectionRatio decide when an edge map is noise.
	NoisyLines           int     `json:"noisy_lines"`
	MinIntersectionRatio float64 `json:"min_intersection_ratio"`

	// PaddingWidth and PaddingHeight are added to every document found.
	PaddingWidth  int `json:"padding_width"`
	PaddingHeight int `json:"padding_height"`
}

// DefaultSettings returns the settings used by New.
func DefaultSettings() Settings {
	return Settings{
		WorkingSize:          DefaultWorkingSize,
		MaxRetries:           DefaultMaxRetries,
		LineIterations:       DefaultLineIterations,
		LineThresholdHigh:    DefaultLineThresholdHigh,
		LineThresholdLow:     DefaultLineThresholdLow,
		ColorThreshold:       DefaultColorThreshold,
		NoisyLines:           DefaultNoisyLines,
		MinIntersectionRatio: DefaultMinIntersectionRatio,
	}
}

// Validate checks every field and returns ErrInvalidArgument for the first
// one out of range.
func (s Settings) Validate() error {
	switch {
	case s.WorkingSize < 1:
		return fmt.Errorf("%w: working size %d", ErrInvalidArgument, s.WorkingSize)
	case s.MaxRetries < 1:
		return fmt.Errorf("%w: max retries %d", ErrInvalidArgument, s.MaxRetries)
	case s.LineIterations < 1:
		return fmt.Errorf("%w: line iterations %d", ErrInvalidArgument, s.LineIterations)
	case s.LineThresholdLow <= 0 || s.LineThresholdHigh > 1 || s.LineThresholdLow > s.LineThresholdHigh:
		return fmt.Errorf("%w: line thresholds high=%g low=%g", ErrInvalidArgument, s.LineThresholdHigh, s.LineThresholdLow)
	case s.ColorThreshold < 0 || s.ColorThreshold > 255:
		return fmt.Errorf("%w: color threshold %d", ErrInvalidArgument, s.ColorThreshold)
	case s.NoisyLines < 0:
		return fmt.Errorf("%w: noisy lines %d", ErrInvalidArgument, s.NoisyLines)
	case s.MinIntersectionRatio < 0:
		return fmt.Errorf("%w: intersection ratio %g", ErrInvalidArgument, s.MinIntersectionRatio)
	}
	return nil
}

func clampPadding(v int) int {
	return max(-maxPadding, min(maxPadding, v))
}

// Option configures an Identifier.
type Option func(*Identifier)

// WithSettings replaces all settings at once. Padding is clamped as in
// WithPadding.
func WithSettings(s Settings) Option {
	return func(id *Identifier) {
		s.PaddingWidth = clampPadding(s.PaddingWidth)
		s.PaddingHeight = clampPadding(s.PaddingHeight)
		id.settings = s
	}
}

func WithWorkingSize(n int) Option {
	return func(id *Identifier) { id.settings.WorkingSize = n }
}

func WithMaxRetries(n int) Option {
	return func(id *Identifier) { id.settings.MaxRetries = n }
}

func WithLineIterations(n int) Option {
	return func(id *Identifier) { id.settings.LineIterations = n }
}

func WithLineThresholds(high, low float64) Option {
	return func(id *Identifier) {
		id.settings.LineThresholdHigh = high
		id.settings.LineThresholdLow = low
	}
}

func WithColorThreshold(n int) Option {
	return func(id *Identifier) { id.settings.ColorThreshold = n }
}

// WithNoiseLimits sets the line count above which, and the intersections
// per line ratio below which, an attempt is considered noisy.
func WithNoiseLimits(lines int, ratio float64) Option {
	return func(id *Identifier) {
		id.settings.NoisyLines = lines
		id.settings.MinIntersectionRatio = ratio
	}
}

// WithPadding sets the padding added to documents. Values are clamped to
// (-100, 100).
func WithPadding(width, height int) Option {
	return func(id *Identifier) {
		id.settings.PaddingWidth = clampPadding(width)
		id.settings.PaddingHeight = clampPadding(height)
	}
}

// WithEdgeDetector replaces the default low sensitivity Canny detector.
func WithEdgeDetector(d EdgeDetector) Option {
	return func(id *Identifier) { id.detector = d }
}

// WithMorphology sets the initial operator. The default is a closing with
// a 1 pixel square.
func WithMorphology(m Morphology) Option {
	return func(id *Identifier) { id.morph = m }
}

// WithReader sets where Load reads images from.
func WithReader(r imaging.Reader) Option {
	return func(id *Identifier) { id.reader = r }
}

func WithObserver(o Observer) Option {
	return func(id *Identifier) { id.AddObserver(o) }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(id *Identifier) { id.metrics = m }
}

func WithLogger(l *logrus.Entry) Option {
	return func(id *Identifier) { id.log = l }
}
