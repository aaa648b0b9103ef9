package server

import (
	"context"
	"encoding/json"
	"fmt"
	"image/color"

	"github.com/ironsheep/doccrop-mcp/internal/batch"
	"github.com/ironsheep/doccrop-mcp/internal/document"
	"github.com/ironsheep/doccrop-mcp/internal/geometry"
	"github.com/ironsheep/doccrop-mcp/internal/identify"
	"github.com/ironsheep/doccrop-mcp/internal/imaging"
	"github.com/ironsheep/doccrop-mcp/internal/ocr"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "document_identify").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`

	// Meta carries the progress token of clients that want progress
	// notifications.
	Meta *struct {
		ProgressToken interface{} `json:"progressToken"`
	} `json:"_meta,omitempty"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	var progressToken interface{}
	if params.Meta != nil {
		progressToken = params.Meta.ProgressToken
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments, progressToken)
	if err != nil {
		s.log.WithError(err).WithField("tool", params.Name).Warn("tool failed")
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage, progressToken interface{}) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	// Document location
	case "document_identify":
		return s.handleDocumentIdentify(ctx, args)
	case "document_identify_batch":
		return s.handleDocumentIdentifyBatch(ctx, args, progressToken)
	case "document_correct_batch":
		return s.handleDocumentCorrectBatch(args)
	case "document_mark":
		return s.handleDocumentMark(ctx, args)
	case "document_crop":
		return s.handleDocumentCrop(ctx, args)
	case "document_ocr":
		return s.handleDocumentOCR(ctx, args)

	// Image helpers
	case "image_dimensions":
		return s.handleImageDimensions(args)
	case "image_border_color":
		return s.handleImageBorderColor(args)
	case "image_edge_detect":
		return s.handleImageEdgeDetect(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Document Handlers ===

type identifyArgs struct {
	Path           string  `json:"path"`
	WorkingSize    *int    `json:"working_size"`
	MaxRetries     *int    `json:"max_retries"`
	PaddingWidth   *int    `json:"padding_width"`
	PaddingHeight  *int    `json:"padding_height"`
	Morphology     string  `json:"morphology"`
	MorphologySize *int    `json:"morphology_size"`
	Sensitivity    string  `json:"sensitivity"`
	Color          string  `json:"color"`
	GridSpacing    int     `json:"grid_spacing"`
	Scale          float64 `json:"scale"`
	Language       string  `json:"language"`
}

// options turns the arguments into identifier options, applied after the
// configured ones.
func (a identifyArgs) options(cfg identify.Settings) ([]identify.Option, error) {
	var opts []identify.Option
	if a.WorkingSize != nil {
		opts = append(opts, identify.WithWorkingSize(*a.WorkingSize))
	}
	if a.MaxRetries != nil {
		opts = append(opts, identify.WithMaxRetries(*a.MaxRetries))
	}
	if a.PaddingWidth != nil || a.PaddingHeight != nil {
		w, h := cfg.PaddingWidth, cfg.PaddingHeight
		if a.PaddingWidth != nil {
			w = *a.PaddingWidth
		}
		if a.PaddingHeight != nil {
			h = *a.PaddingHeight
		}
		opts = append(opts, identify.WithPadding(w, h))
	}
	if a.Morphology != "" {
		kind, err := imaging.ParseMorphKind(a.Morphology)
		if err != nil {
			return nil, err
		}
		size := 1
		if a.MorphologySize != nil {
			size = *a.MorphologySize
		}
		if size < 0 {
			return nil, fmt.Errorf("morphology_size must be >= 0, got %d", size)
		}
		opts = append(opts, identify.WithMorphology(imaging.NewMorphology(kind, imaging.ShapeSquare, size)))
	}
	if a.Sensitivity != "" {
		level, err := parseSensitivity(a.Sensitivity)
		if err != nil {
			return nil, err
		}
		opts = append(opts, identify.WithEdgeDetector(imaging.NewCannyDetector(level)))
	}
	return opts, nil
}

func parseSensitivity(s string) (imaging.Sensitivity, error) {
	for _, level := range []imaging.Sensitivity{imaging.SensitivityLow, imaging.SensitivityMedium, imaging.SensitivityHigh} {
		if level.String() == s {
			return level, nil
		}
	}
	return imaging.SensitivityLow, fmt.Errorf("unknown sensitivity %q", s)
}

// newIdentifier builds an identifier reading through the server cache.
func (s *Server) newIdentifier(a identifyArgs) (*identify.Identifier, error) {
	extra, err := a.options(s.cfg.Identify)
	if err != nil {
		return nil, err
	}
	opts := []identify.Option{
		identify.WithSettings(s.cfg.Identify),
		identify.WithReader(s.cache),
		identify.WithMetrics(s.metrics),
		identify.WithLogger(s.log.WithField("path", a.Path)),
	}
	opts = append(opts, s.identify...)
	opts = append(opts, extra...)
	return identify.New(opts...)
}

// identifyResult is a document_identify response.
type identifyResult struct {
	*identify.Result
	Corners [4]geometry.Point `json:"corners"`
}

func newIdentifyResult(res *identify.Result) *identifyResult {
	return &identifyResult{Result: res, Corners: res.Document.Corners().Corners()}
}

// locate identifies the document of a.Path.
func (s *Server) locate(ctx context.Context, a identifyArgs) (*identify.Identifier, *identify.Result, error) {
	if a.Path == "" {
		return nil, nil, fmt.Errorf("path is required")
	}
	id, err := s.newIdentifier(a)
	if err != nil {
		return nil, nil, err
	}
	if err := id.Load(a.Path); err != nil {
		return nil, nil, err
	}
	res, err := id.IdentifyResult(ctx)
	if err != nil {
		return nil, nil, err
	}
	return id, res, nil
}

func (s *Server) handleDocumentIdentify(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a identifyArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	_, res, err := s.locate(ctx, a)
	if err != nil {
		return nil, err
	}
	return newIdentifyResult(res), nil
}

var gridColor = color.NRGBA{R: 0, G: 160, B: 255, A: 255}

type markResult struct {
	Document *document.Document  `json:"document"`
	Image    *imaging.CropResult `json:"image"`
}

func (s *Server) handleDocumentMark(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a identifyArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	c := identify.DefaultMarkColor
	if a.Color != "" {
		parsed, err := imaging.ParseColor(a.Color)
		if err != nil {
			return nil, err
		}
		c = parsed
	}

	id, res, err := s.locate(ctx, a)
	if err != nil {
		return nil, err
	}
	marked, err := id.Mark(c)
	if err != nil {
		return nil, err
	}
	if a.GridSpacing > 0 {
		if err := imaging.DrawGrid(marked, a.GridSpacing, res.ScaleFactor, gridColor); err != nil {
			return nil, err
		}
	}
	encoded, err := imaging.NewCropResult(marked)
	if err != nil {
		return nil, err
	}
	return &markResult{Document: res.Document, Image: encoded}, nil
}

type cropResult struct {
	Document *document.Document `json:"document"`
	*imaging.CropResult
}

func (s *Server) handleDocumentCrop(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a identifyArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	if a.Scale < 0 {
		return nil, fmt.Errorf("scale must be positive, got %g", a.Scale)
	}

	_, res, err := s.locate(ctx, a)
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	doc := res.Document
	cropped, err := imaging.CropRotated(img, doc.Center(), doc.Width, doc.Height, doc.Rotation, imaging.BorderColor(img))
	if err != nil {
		return nil, err
	}
	out := cropped
	if a.Scale != 1.0 {
		if out, err = imaging.ScaleImage(cropped, a.Scale); err != nil {
			return nil, err
		}
	}
	encoded, err := imaging.NewCropResult(out)
	if err != nil {
		return nil, err
	}
	return &cropResult{Document: doc, CropResult: encoded}, nil
}

type ocrResult struct {
	Document *document.Document `json:"document"`
	*ocr.Result
}

func (s *Server) handleDocumentOCR(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a identifyArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Language == "" {
		a.Language = s.cfg.OCRLanguage
	}

	_, res, err := s.locate(ctx, a)
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	text, err := ocr.ExtractDocumentText(img, res.Document, a.Language)
	if err != nil {
		return nil, err
	}
	return &ocrResult{Document: res.Document, Result: text}, nil
}

type batchArgs struct {
	Path          string   `json:"path"`
	FileFilter    []string `json:"file_filter"`
	Behavior      string   `json:"behavior"`
	PaddingWidth  *int     `json:"padding_width"`
	PaddingHeight *int     `json:"padding_height"`
	WriteReport   bool     `json:"write_report"`
}

type batchResult struct {
	*batch.Report
	ReportPath string `json:"report_path,omitempty"`
}

func (s *Server) handleDocumentIdentifyBatch(ctx context.Context, args json.RawMessage, progressToken interface{}) (interface{}, error) {
	var a batchArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}

	settings := s.cfg.Batch
	if a.FileFilter != nil {
		settings.FileFilter = a.FileFilter
	}
	if a.Behavior != "" {
		b, err := batch.ParseBehavior(a.Behavior)
		if err != nil {
			return nil, err
		}
		settings.Behavior = b
	}
	if a.PaddingWidth != nil {
		settings.PaddingWidth = *a.PaddingWidth
	}
	if a.PaddingHeight != nil {
		settings.PaddingHeight = *a.PaddingHeight
	}

	opts := append([]identify.Option{identify.WithSettings(s.cfg.Identify)}, s.identify...)
	runnerOpts := []batch.RunnerOption{
		batch.WithIdentifyOptions(opts...),
		batch.WithReader(s.cache),
		batch.WithMetrics(s.metrics),
		batch.WithLogger(s.log.WithField("batch", a.Path)),
	}
	if progressToken != nil {
		runnerOpts = append(runnerOpts, batch.WithProgress(func(done, total int, _ *document.Document) {
			s.notify("notifications/progress", map[string]interface{}{
				"progressToken": progressToken,
				"progress":      done,
				"total":         total,
			})
		}))
	}

	rep, err := batch.NewRunner(settings, runnerOpts...).RunPath(ctx, a.Path)
	if err != nil {
		return nil, err
	}
	// Scans are read once per batch; keep the cache from growing with them.
	for _, d := range rep.Raw {
		s.cache.Evict(d.ID)
	}

	out := &batchResult{Report: rep}
	if a.WriteReport {
		if out.ReportPath, err = batch.WriteReport(rep, rep.Dir, document.SimplePrinter{}); err != nil {
			return nil, err
		}
	}
	return out, nil
}

type correctArgs struct {
	Documents []*document.Document `json:"documents"`
	Quantile  *float64             `json:"quantile"`
}

func (s *Server) handleDocumentCorrectBatch(args json.RawMessage) (interface{}, error) {
	var a correctArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	q := 0.5
	if a.Quantile != nil {
		q = *a.Quantile
	}
	for i, d := range a.Documents {
		if d == nil {
			return nil, fmt.Errorf("document %d is null", i)
		}
	}
	docs, err := document.CorrectBatch(a.Documents, q)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"documents": docs}, nil
}

// === Image Helper Handlers ===

type pathArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageBorderColor(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.NewColorResult(imaging.BorderColor(img)), nil
}

type edgeDetectArgs struct {
	Path          string `json:"path"`
	ThresholdLow  int    `json:"threshold_low"`
	ThresholdHigh int    `json:"threshold_high"`
}

func (s *Server) handleImageEdgeDetect(args json.RawMessage) (interface{}, error) {
	var a edgeDetectArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.ThresholdLow == 0 {
		a.ThresholdLow = 50
	}
	if a.ThresholdHigh == 0 {
		a.ThresholdHigh = 150
	}
	if a.ThresholdLow > a.ThresholdHigh {
		return nil, fmt.Errorf("threshold_low %d above threshold_high %d", a.ThresholdLow, a.ThresholdHigh)
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.EdgeDetect(img, a.ThresholdLow, a.ThresholdHigh)
}
