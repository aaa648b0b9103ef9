// Package batch identifies documents on every image of a directory and
// smooths their positions across the batch.
package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ironsheep/doccrop-mcp/internal/document"
	"github.com/ironsheep/doccrop-mcp/internal/identify"
	"github.com/ironsheep/doccrop-mcp/internal/imaging"
	"github.com/ironsheep/doccrop-mcp/internal/metrics"
)

// OutputFile is the name of the report WriteReport creates.
const OutputFile = "DocCrop_out.txt"

// DefaultFileFilter lists the suffixes Collect accepts by default.
var DefaultFileFilter = []string{".png", ".jpg", ".jpeg", ".tif", ".tiff", ".bmp"}

// DocumentType tells whether scans hold one page or a spread.
type DocumentType int

const (
	SinglePage DocumentType = iota
	DoublePage
)

func (t DocumentType) String() string {
	if t == DoublePage {
		return "DOUBLE_PAGE"
	}
	return "SINGLE_PAGE"
}

// ParseDocumentType accepts the String forms, case insensitively.
func ParseDocumentType(s string) (DocumentType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "SINGLE_PAGE":
		return SinglePage, nil
	case "DOUBLE_PAGE":
		return DoublePage, nil
	}
	return SinglePage, fmt.Errorf("%w: document type %q", document.ErrInvalidArgument, s)
}

// Behavior tells how much the documents of a batch vary. Only SIMPLE
// batches are position corrected.
type Behavior int

const (
	Simple Behavior = iota
	Complex
)

func (b Behavior) String() string {
	if b == Complex {
		return "COMPLEX"
	}
	return "SIMPLE"
}

// ParseBehavior accepts the String forms, case insensitively.
func ParseBehavior(s string) (Behavior, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "SIMPLE":
		return Simple, nil
	case "COMPLEX":
		return Complex, nil
	}
	return Simple, fmt.Errorf("%w: behavior %q", document.ErrInvalidArgument, s)
}

// Settings describe a batch.
type Settings struct {
	PaddingWidth  int          `json:"padding_width"`
	PaddingHeight int          `json:"padding_height"`
	Type          DocumentType `json:"type"`
	Behavior      Behavior     `json:"behavior"`
	FileFilter    []string     `json:"file_filter"`
}

func DefaultSettings() Settings {
	return Settings{FileFilter: DefaultFileFilter}
}

// Collect returns the files of path accepted by filter. A directory yields
// its matching regular files in name order; a single file yields itself if
// it matches. dir is the directory the batch lives in.
func Collect(path string, filter []string) (files []string, dir string, err error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open batch: %w", err)
	}
	if !info.IsDir() {
		if matches(info.Name(), filter) {
			files = []string{path}
		}
		return files, filepath.Dir(path), nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read batch directory: %w", err)
	}
	for _, e := range entries {
		if e.Type().IsRegular() && matches(e.Name(), filter) {
			files = append(files, filepath.Join(path, e.Name()))
		}
	}
	return files, path, nil
}

func matches(name string, filter []string) bool {
	name = strings.ToLower(name)
	for _, suffix := range filter {
		if strings.HasSuffix(name, strings.ToLower(suffix)) {
			return true
		}
	}
	return false
}

// ProgressFunc is called after every file. doc is nil when the file failed.
type ProgressFunc func(done, total int, doc *document.Document)

// Failure records a file that could not be processed.
type Failure struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// Report is the result of a batch run.
type Report struct {
	RunID string `json:"run_id"`
	Dir   string `json:"dir,omitempty"`

	// Documents are the corrected documents when Corrected is set and the
	// raw ones otherwise. Raw keeps the identifier output in file order.
	Documents []*document.Document `json:"documents"`
	Raw       []*document.Document `json:"raw"`
	Corrected bool                 `json:"corrected"`

	Exhausted int       `json:"exhausted"`
	Failures  []Failure `json:"failures,omitempty"`
}

// Runner processes batches one file at a time with a fresh Identifier per
// file.
type Runner struct {
	settings Settings
	options  []identify.Option
	reader   imaging.Reader
	metrics  *metrics.Metrics
	progress ProgressFunc
	log      *logrus.Entry
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithIdentifyOptions are passed to every Identifier the runner creates.
// Padding from Settings takes precedence.
func WithIdentifyOptions(opts ...identify.Option) RunnerOption {
	return func(r *Runner) { r.options = append(r.options, opts...) }
}

func WithReader(reader imaging.Reader) RunnerOption {
	return func(r *Runner) { r.reader = reader }
}

func WithMetrics(m *metrics.Metrics) RunnerOption {
	return func(r *Runner) { r.metrics = m }
}

func WithProgress(fn ProgressFunc) RunnerOption {
	return func(r *Runner) { r.progress = fn }
}

func WithLogger(l *logrus.Entry) RunnerOption {
	return func(r *Runner) { r.log = l }
}

func NewRunner(s Settings, opts ...RunnerOption) *Runner {
	if s.FileFilter == nil {
		s.FileFilter = DefaultFileFilter
	}
	r := &Runner{
		settings: s,
		reader:   imaging.FileReader,
		progress: func(int, int, *document.Document) {},
		log:      logrus.WithField("component", "batch"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Runner) Settings() Settings { return r.settings }

// RunPath collects the files of path and runs them.
func (r *Runner) RunPath(ctx context.Context, path string) (*Report, error) {
	files, dir, err := Collect(path, r.settings.FileFilter)
	if err != nil {
		return nil, err
	}
	rep, err := r.Run(ctx, files)
	if err != nil {
		return nil, err
	}
	rep.Dir = dir
	return rep, nil
}

// Run identifies the document on every file. Files that cannot be read or
// identified are recorded as failures and skipped. Cancellation aborts the
// whole run with an error matching identify.ErrCancelled.
func (r *Runner) Run(ctx context.Context, files []string) (*Report, error) {
	rep := &Report{RunID: uuid.NewString()}
	log := r.log.WithFields(logrus.Fields{
		"run_id": rep.RunID,
		"files":  len(files),
	})
	log.Info("starting batch")

	for i, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", identify.ErrCancelled, err)
		}

		doc, exhausted, err := r.identify(ctx, log.WithField("file", path), path)
		switch {
		case errors.Is(err, identify.ErrCancelled):
			return nil, err
		case err != nil:
			log.WithError(err).WithField("file", path).Warn("skipping file")
			rep.Failures = append(rep.Failures, Failure{Path: path, Error: err.Error()})
			r.metrics.IncrementBatch(metrics.BatchFailed)
		case exhausted:
			rep.Exhausted++
			rep.Raw = append(rep.Raw, doc)
			r.metrics.IncrementBatch(metrics.BatchExhausted)
		default:
			rep.Raw = append(rep.Raw, doc)
			r.metrics.IncrementBatch(metrics.BatchOK)
		}
		r.progress(i+1, len(files), doc)
	}

	rep.Documents = rep.Raw
	if r.settings.Behavior == Simple && len(rep.Raw) >= 3 {
		corrected, err := document.CorrectBatchMedian(rep.Raw)
		if err != nil {
			return nil, err
		}
		rep.Documents = corrected
		rep.Corrected = true
	}

	log.WithFields(logrus.Fields{
		"documents": len(rep.Raw),
		"failures":  len(rep.Failures),
		"exhausted": rep.Exhausted,
		"corrected": rep.Corrected,
	}).Info("batch finished")
	return rep, nil
}

func (r *Runner) identify(ctx context.Context, log *logrus.Entry, path string) (*document.Document, bool, error) {
	opts := []identify.Option{
		identify.WithReader(r.reader),
		identify.WithMetrics(r.metrics),
		identify.WithLogger(log),
	}
	opts = append(opts, r.options...)
	opts = append(opts, identify.WithPadding(r.settings.PaddingWidth, r.settings.PaddingHeight))

	id, err := identify.New(opts...)
	if err != nil {
		return nil, false, err
	}
	if err := id.Load(path); err != nil {
		return nil, false, err
	}
	res, err := id.IdentifyResult(ctx)
	if err != nil {
		return nil, false, err
	}
	return res.Document, res.Exhausted, nil
}

// WriteReport writes the documents of rep to OutputFile in dir, one line
// per document, and returns the file path.
func WriteReport(rep *Report, dir string, p document.Printer) (path string, err error) {
	path = filepath.Join(dir, OutputFile)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create report: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close report: %w", cerr)
		}
	}()
	if err := document.WriteAll(f, rep.Documents, p); err != nil {
		return "", err
	}
	return path, nil
}
