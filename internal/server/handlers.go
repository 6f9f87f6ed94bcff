package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"

	"github.com/ironsheep/tablelines/internal/detection"
	"github.com/ironsheep/tablelines/internal/raster"
	"github.com/ironsheep/tablelines/internal/render"
)

// ErrUnknownTool is returned for tools/call requests naming no known tool.
var ErrUnknownTool = errors.New("unknown tool")

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "table_load", "table_detect_cells").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
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
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.logger.Warn("tool failed", "tool", params.Name, "error", err)
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
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	case "table_load":
		return s.handleTableLoad(args)
	case "table_detect_lines":
		return s.handleTableDetectLines(args)
	case "table_detect_cells":
		return s.handleTableDetectCells(args)
	case "table_overlay":
		return s.handleTableOverlay(args)
	case "table_export_cells":
		return s.handleTableExportCells(args)
	case "table_sequence":
		return s.handleTableSequence(args)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
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

// detectArgs holds the arguments shared by every detecting tool. Nil fields
// fall back to the server config.
type detectArgs struct {
	Path       string `json:"path"`
	LineWeight *int   `json:"line_weight"`
	Tolerance  *int   `json:"tolerance"`
	MergeGap   *int   `json:"merge_gap"`
	Threshold  *int   `json:"threshold"`
}

func (a detectArgs) detectionOptions(base detection.Options) detection.Options {
	if a.LineWeight != nil {
		base.LineWeight = *a.LineWeight
	}
	if a.Tolerance != nil {
		base.Tolerance = *a.Tolerance
	}
	if a.MergeGap != nil {
		base.MergeGap = *a.MergeGap
	}
	return base
}

func (a detectArgs) rasterOptions(base raster.Options) (raster.Options, error) {
	if a.Threshold == nil {
		return base, nil
	}
	if *a.Threshold < 0 || *a.Threshold > 255 {
		return base, fmt.Errorf("threshold %d outside 0..255", *a.Threshold)
	}
	base.Threshold = uint8(*a.Threshold)
	return base, nil
}

// detect loads the page named by a and runs the full pipeline on it.
func (s *Server) detect(a detectArgs) (image.Image, *raster.Gray, *detection.Result, error) {
	if a.Path == "" {
		return nil, nil, nil, fmt.Errorf("path is required")
	}
	ropts, err := a.rasterOptions(s.config.RasterOptions())
	if err != nil {
		return nil, nil, nil, err
	}
	p, err := detection.NewPipeline(a.detectionOptions(s.config.DetectionOptions()), detection.WithLogger(s.logger))
	if err != nil {
		return nil, nil, nil, err
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, nil, nil, err
	}
	r, err := raster.FromImage(img, ropts)
	if err != nil {
		return nil, nil, nil, err
	}
	res, err := p.Run(r)
	if err != nil {
		return nil, nil, nil, err
	}
	return img, r, res, nil
}

// === Page Handlers ===

type tableLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleTableLoad(args json.RawMessage) (interface{}, error) {
	var a tableLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return raster.LoadInfo(s.cache, a.Path)
}

// === Detection Handlers ===

type linesResult struct {
	Width      int                 `json:"width"`
	Height     int                 `json:"height"`
	Vertical   []detection.Segment `json:"vertical"`
	Horizontal []detection.Segment `json:"horizontal"`
}

func (s *Server) handleTableDetectLines(args json.RawMessage) (interface{}, error) {
	var a detectArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	ropts, err := a.rasterOptions(s.config.RasterOptions())
	if err != nil {
		return nil, err
	}
	p, err := detection.NewPipeline(a.detectionOptions(s.config.DetectionOptions()), detection.WithLogger(s.logger))
	if err != nil {
		return nil, err
	}

	r, err := s.cache.LoadRaster(a.Path, ropts)
	if err != nil {
		return nil, err
	}
	v, h, err := p.Lines(r)
	if err != nil {
		return nil, err
	}
	return &linesResult{Width: r.Width(), Height: r.Height(), Vertical: v, Horizontal: h}, nil
}

type tableDetectCellsArgs struct {
	detectArgs
	IncludeLines bool `json:"include_lines"`
}

type cellsResult struct {
	Width      int                 `json:"width"`
	Height     int                 `json:"height"`
	Count      int                 `json:"count"`
	Cells      []detection.Rect    `json:"cells"`
	Candidates int                 `json:"candidates"`
	ElapsedMS  int64               `json:"elapsed_ms"`
	Vertical   []detection.Segment `json:"vertical,omitempty"`
	Horizontal []detection.Segment `json:"horizontal,omitempty"`
	Validated  []detection.Rect    `json:"validated,omitempty"`
}

func (s *Server) handleTableDetectCells(args json.RawMessage) (interface{}, error) {
	var a tableDetectCellsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	_, _, res, err := s.detect(a.detectArgs)
	if err != nil {
		return nil, err
	}

	out := &cellsResult{
		Width:      res.Width,
		Height:     res.Height,
		Count:      len(res.Cells),
		Cells:      res.Cells,
		Candidates: res.Candidates,
		ElapsedMS:  res.Elapsed.Milliseconds(),
	}
	if a.IncludeLines {
		out.Vertical = res.Vertical
		out.Horizontal = res.Horizontal
		out.Validated = res.Validated
	}
	return out, nil
}

// === Rendering Handlers ===

type tableOverlayArgs struct {
	detectArgs
	Color     *string  `json:"color"`
	Thickness *int     `json:"thickness"`
	Fill      *float64 `json:"fill"`
}

type overlayResult struct {
	Width       int                `json:"width"`
	Height      int                `json:"height"`
	ImageBase64 string             `json:"image_base64"`
	MimeType    string             `json:"mime_type"`
	Cells       []render.CellColor `json:"cells"`
}

func (s *Server) handleTableOverlay(args json.RawMessage) (interface{}, error) {
	var a tableOverlayArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	opts := s.config.OverlayOptions()
	if a.Color != nil {
		opts.Color = *a.Color
	}
	if a.Thickness != nil {
		opts.Thickness = *a.Thickness
	}
	if a.Fill != nil {
		opts.Fill = *a.Fill
	}

	img, _, res, err := s.detect(a.detectArgs)
	if err != nil {
		return nil, err
	}
	ov, err := render.Overlay(img, res.Cells, opts)
	if err != nil {
		return nil, err
	}
	encoded, err := render.EncodePNGBase64(ov.Image)
	if err != nil {
		return nil, err
	}

	return &overlayResult{
		Width:       ov.Image.Bounds().Dx(),
		Height:      ov.Image.Bounds().Dy(),
		ImageBase64: encoded,
		MimeType:    "image/png",
		Cells:       ov.Cells,
	}, nil
}

type tableExportCellsArgs struct {
	detectArgs
	OutputDir string  `json:"output_dir"`
	Inset     *int    `json:"inset"`
	Scale     float64 `json:"scale"`
	Format    string  `json:"format"`
}

type exportResult struct {
	Count int                   `json:"count"`
	Cells []render.ExportedCell `json:"cells"`
}

func (s *Server) handleTableExportCells(args json.RawMessage) (interface{}, error) {
	var a tableExportCellsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.OutputDir == "" {
		return nil, fmt.Errorf("output_dir is required")
	}
	opts := s.config.ExportOptions()
	if a.Inset != nil {
		opts.Inset = *a.Inset
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	opts.Scale = a.Scale
	if a.Format != "" {
		opts.Ext = a.Format
	}

	img, _, res, err := s.detect(a.detectArgs)
	if err != nil {
		return nil, err
	}
	exported, err := render.ExportCells(img, res.Cells, a.OutputDir, opts)
	if err != nil {
		return nil, err
	}
	return &exportResult{Count: len(exported), Cells: exported}, nil
}

type tableSequenceArgs struct {
	detectArgs
	OutputDir string `json:"output_dir"`
}

type sequenceResult struct {
	Visible []detection.Rect `json:"visible"`
	Frames  []string         `json:"frames"`
}

func (s *Server) handleTableSequence(args json.RawMessage) (interface{}, error) {
	var a tableSequenceArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.OutputDir == "" {
		return nil, fmt.Errorf("output_dir is required")
	}

	_, r, res, err := s.detect(a.detectArgs)
	if err != nil {
		return nil, err
	}
	seq := render.Sequence(r, res.Cells, a.detectionOptions(s.config.DetectionOptions()).Tolerance)
	paths, err := render.SaveFrames(seq.Frames, a.OutputDir, s.config.Render.Format)
	if err != nil {
		return nil, err
	}
	return &sequenceResult{Visible: seq.Visible, Frames: paths}, nil
}
