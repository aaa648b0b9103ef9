package identify

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/doccrop-mcp/internal/document"
	"github.com/ironsheep/doccrop-mcp/internal/geometry"
	"github.com/ironsheep/doccrop-mcp/internal/imaging"
	"github.com/ironsheep/doccrop-mcp/internal/metrics"
)

var (
	// ErrInvalidArgument is returned for out of range settings.
	ErrInvalidArgument = geometry.ErrInvalidArgument

	// ErrCancelled is returned when the context is done before a result is
	// available. The context error is wrapped alongside it.
	ErrCancelled = errors.New("identification cancelled")

	// ErrNoImage is returned by Identify before an image is set.
	ErrNoImage = errors.New("no image loaded")
)

func cancelled(err error) error {
	return fmt.Errorf("%w: %w", ErrCancelled, err)
}

// Result is the outcome of an identification.
type Result struct {
	Document *document.Document `json:"document"`

	// Attempts counts every morphology and edge detection pass, Reruns the
	// ones that did not use up a retry.
	Attempts int `json:"attempts"`
	Reruns   int `json:"reruns"`

	// Exhausted is set when no attempt was accepted. Document then holds
	// the last attempt's rectangle.
	Exhausted bool `json:"exhausted"`

	State       State   `json:"state"`
	ScaleFactor float64 `json:"scale_factor"`
	Morphology  string  `json:"morphology"`
}

// Identifier finds one document per image. It is not safe for concurrent
// use; batch processing uses one Identifier per worker.
type Identifier struct {
	settings  Settings
	reader    imaging.Reader
	detector  EdgeDetector
	morph     Morphology
	observers []Observer
	metrics   *metrics.Metrics
	log       *logrus.Entry

	id    string
	img   image.Image
	state State

	// Set by a completed Identify and used by Mark.
	working     image.Image
	scaleFactor float64
	last        *Result
}

// New returns an Identifier with DefaultSettings modified by opts.
func New(opts ...Option) (*Identifier, error) {
	id := &Identifier{
		settings: DefaultSettings(),
		reader:   imaging.FileReader,
		detector: imaging.NewCannyDetector(imaging.SensitivityLow),
		morph:    imaging.NewClosing(imaging.ShapeSquare, 1),
		log:      logrus.WithField("component", "identify"),
	}
	for _, opt := range opts {
		opt(id)
	}
	if err := id.settings.Validate(); err != nil {
		return nil, err
	}
	if id.detector == nil || id.morph == nil || id.reader == nil {
		return nil, fmt.Errorf("%w: nil detector, morphology or reader", ErrInvalidArgument)
	}
	return id, nil
}

func (id *Identifier) Settings() Settings         { return id.settings }
func (id *Identifier) State() State               { return id.state }
func (id *Identifier) Morphology() Morphology     { return id.morph }
func (id *Identifier) EdgeDetector() EdgeDetector { return id.detector }

// SetSettings validates and applies s. Padding is clamped.
func (id *Identifier) SetSettings(s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	s.PaddingWidth = clampPadding(s.PaddingWidth)
	s.PaddingHeight = clampPadding(s.PaddingHeight)
	id.settings = s
	return nil
}

// AddObserver registers o for every later event.
func (id *Identifier) AddObserver(o Observer) {
	if o != nil {
		id.observers = append(id.observers, o)
	}
}

func (id *Identifier) emit(e Event) {
	e.ID = id.id
	for _, o := range id.observers {
		o(e)
	}
}

// Load reads the image at path and makes it current. The path becomes the
// document ID.
func (id *Identifier) Load(path string) error {
	img, err := id.reader.Load(path)
	if err != nil {
		return fmt.Errorf("failed to read image %s: %w", path, err)
	}
	id.SetImage(img, path)
	return nil
}

// SetImage makes img current and forgets the previous result.
func (id *Identifier) SetImage(img image.Image, docID string) {
	id.img = img
	id.id = docID
	id.working = nil
	id.scaleFactor = 0
	id.last = nil
	id.state = StateLoaded
	id.emit(Event{Type: EventImageRead, Image: img})
}

// Identify returns the document found on the current image.
func (id *Identifier) Identify(ctx context.Context) (*document.Document, error) {
	res, err := id.IdentifyResult(ctx)
	if err != nil {
		return nil, err
	}
	return res.Document, nil
}

// Last returns the result of the latest completed identification, or nil.
func (id *Identifier) Last() *Result { return id.last }

// IdentifyResult runs the attempt loop on the current image.
func (id *Identifier) IdentifyResult(ctx context.Context) (*Result, error) {
	start := time.Now()
	res, err := id.identify(ctx)
	switch {
	case errors.Is(err, ErrCancelled):
		id.metrics.ObserveIdentification(metrics.OutcomeCancelled, start)
		id.log.WithField("id", id.id).Debug("identification cancelled")
	case err != nil:
		id.metrics.ObserveIdentification(metrics.OutcomeFailed, start)
	case res.Exhausted:
		id.metrics.ObserveIdentification(metrics.OutcomeExhausted, start)
	default:
		id.metrics.ObserveIdentification(metrics.OutcomeAccepted, start)
	}
	return res, err
}

func (id *Identifier) identify(ctx context.Context) (*Result, error) {
	if id.img == nil {
		return nil, ErrNoImage
	}
	if err := ctx.Err(); err != nil {
		return nil, cancelled(err)
	}

	b := id.img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("%w: empty image", ErrInvalidArgument)
	}
	scale := float64(id.settings.WorkingSize) / float64(max(b.Dx(), b.Dy()))
	working, err := imaging.ScaleImage(id.img, scale)
	if err != nil {
		return nil, err
	}
	id.state = StateScaled
	id.emit(Event{Type: EventImageScaled, Image: working})
	if err := ctx.Err(); err != nil {
		return nil, cancelled(err)
	}

	gray := imaging.ConvertToGrayScale(working)
	id.state = StateGrayscaled
	id.emit(Event{Type: EventImageGrayscaled, Image: gray})
	if err := ctx.Err(); err != nil {
		return nil, cancelled(err)
	}

	wb := working.Bounds()
	run := &attempt{
		morph: id.morph,
		high:  id.settings.LineThresholdHigh,
		scale: scale,
		srcW:  b.Dx(),
		srcH:  b.Dy(),
		workW: wb.Dx(),
		workH: wb.Dy(),
	}

	var (
		out      *outcome
		accepted bool
	)
	for run.tries < id.settings.MaxRetries {
		out, err = id.runAttempt(ctx, working, gray, run)
		if err != nil {
			return nil, err
		}
		if accepted = id.evaluate(out, run); accepted {
			break
		}
	}

	res := &Result{
		Document:    out.doc,
		Attempts:    run.runs,
		Reruns:      run.reruns,
		Exhausted:   !accepted,
		ScaleFactor: scale,
		Morphology:  fmt.Sprint(run.morph),
	}
	if accepted {
		res.State = StateAccepted
	} else {
		res.State = StateExhausted
		id.log.WithFields(logrus.Fields{
			"id":       id.id,
			"attempts": run.runs,
		}).Info("retries exhausted, returning last document")
	}

	id.state = res.State
	id.morph = run.morph
	id.working = working
	id.scaleFactor = scale
	id.last = res
	return res, nil
}
