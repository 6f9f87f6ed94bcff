package detection

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/ironsheep/tablelines/internal/raster"
)

// Result holds the output of every pipeline stage for one raster.
type Result struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	// ColumnGroups and RowGroups count the axis groups that passed the scan.
	ColumnGroups int `json:"column_groups"`
	RowGroups    int `json:"row_groups"`

	// Vertical and Horizontal are the filtered segments.
	Vertical   []Segment `json:"vertical"`
	Horizontal []Segment `json:"horizontal"`

	Candidates int    `json:"candidates"`
	Validated  []Rect `json:"validated"`

	// Cells are the resolved rectangles in resolution order.
	Cells []Rect `json:"cells"`

	Elapsed time.Duration `json:"elapsed_ns"`
}

// Pipeline runs the detection stages with a fixed set of options.
// It holds no per-run state and is safe for concurrent use.
type Pipeline struct {
	opts   Options
	logger *slog.Logger
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithLogger sets the logger used for per-stage debug output.
func WithLogger(l *slog.Logger) PipelineOption {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewPipeline validates opts and returns a Pipeline using them.
func NewPipeline(opts Options, options ...PipelineOption) (*Pipeline, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	p := &Pipeline{opts: opts, logger: slog.Default()}
	for _, o := range options {
		o(p)
	}
	return p, nil
}

// Options returns the options the pipeline was built with.
func (p *Pipeline) Options() Options {
	return p.opts
}

// Lines runs the scan, assembly and filter stages and returns the filtered
// vertical and horizontal segments.
func (p *Pipeline) Lines(r raster.Raster) (verticals, horizontals []Segment, err error) {
	res, err := p.lines(r)
	if err != nil {
		return nil, nil, err
	}
	return res.Vertical, res.Horizontal, nil
}

func (p *Pipeline) lines(r raster.Raster) (*Result, error) {
	if err := raster.Validate(r); err != nil {
		return nil, err
	}

	cols := ScanColumns(r, p.opts.LineWeight)
	rows := ScanRows(r, p.opts.LineWeight)

	verticals := FilterAdjacent(AssembleVertical(cols, p.opts))
	horizontals := FilterAdjacent(AssembleHorizontal(rows, p.opts))

	p.logger.Debug("lines detected",
		"width", r.Width(),
		"height", r.Height(),
		"column_groups", len(cols),
		"row_groups", len(rows),
		"vertical", len(verticals),
		"horizontal", len(horizontals))

	return &Result{
		Width:        r.Width(),
		Height:       r.Height(),
		ColumnGroups: len(cols),
		RowGroups:    len(rows),
		Vertical:     verticals,
		Horizontal:   horizontals,
	}, nil
}

// Run executes all six stages on r.
//
// The raster is never modified. Every returned cell is a validated candidate
// whose inset interior holds no foreground pixel.
func (p *Pipeline) Run(r raster.Raster) (*Result, error) {
	start := time.Now()

	res, err := p.lines(r)
	if err != nil {
		return nil, fmt.Errorf("failed to detect lines: %w", err)
	}

	candidates := GenerateCandidates(res.Vertical, res.Horizontal)
	res.Candidates = len(candidates)

	res.Validated = ValidateCandidates(candidates, res.Vertical, res.Horizontal, p.opts.Tolerance)
	res.Cells = Resolve(r, res.Validated, p.opts.Tolerance)
	res.Elapsed = time.Since(start)

	p.logger.Debug("cells detected",
		"candidates", res.Candidates,
		"validated", len(res.Validated),
		"cells", len(res.Cells),
		"elapsed", res.Elapsed)

	return res, nil
}

// DetectCells runs the pipeline with opts and returns only the cells.
func DetectCells(r raster.Raster, opts Options) ([]Rect, error) {
	p, err := NewPipeline(opts)
	if err != nil {
		return nil, err
	}
	res, err := p.Run(r)
	if err != nil {
		return nil, err
	}
	return res.Cells, nil
}
