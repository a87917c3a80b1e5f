package img2ascii

import (
	"fmt"
	"time"

	"github.com/wbrown/img2ascii/imageutil"
)

// DefaultResolution is the number of characters per output row.
const DefaultResolution = 128

// Renderer converts images to character grids. Its configuration is fixed
// at construction; the character index is supplied per call so one
// Renderer can serve many indexes.
type Renderer struct {
	// Resolution is the number of tiles (characters) per output row. It
	// must divide the padded image width.
	Resolution int

	// ParallelScoring scores tile rows on multiple goroutines.
	ParallelScoring bool

	stats RenderStats
}

// RenderStats describes the most recent successful Render call.
type RenderStats struct {
	PaddedWidth  int
	PaddedHeight int
	Rows         int
	Columns      int
	TileSide     int
	Duration     time.Duration
}

// Tiles returns the number of tiles scored.
func (s RenderStats) Tiles() int {
	return s.Rows * s.Columns
}

// RendererOption is a functional option for configuring a Renderer.
type RendererOption func(*Renderer)

// NewRenderer creates a new Renderer with the given options.
// Default values: Resolution=128, ParallelScoring=false.
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{
		Resolution: DefaultResolution,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// WithResolution sets the number of characters per output row.
func WithResolution(res int) RendererOption {
	return func(r *Renderer) {
		r.Resolution = res
	}
}

// WithParallelScoring enables concurrent tile scoring.
func WithParallelScoring(parallel bool) RendererOption {
	return func(r *Renderer) {
		r.ParallelScoring = parallel
	}
}

// Render pads buf to power-of-two dimensions, splits it into
// Resolution columns of square tiles and replaces every tile with the
// character of index whose normalized brightness is nearest to the tile's.
// The grid is indexed [row][col]. Nothing is returned on error.
func (r *Renderer) Render(buf *imageutil.PixelBuffer, index *CharIndex) ([][]rune, error) {
	if index == nil || index.Len() == 0 {
		return nil, ErrEmptyIndex
	}
	start := time.Now()

	padded, err := imageutil.Pad(buf)
	if err != nil {
		return nil, err
	}
	tiles, err := imageutil.Split(padded, r.Resolution)
	if err != nil {
		return nil, err
	}
	scores := imageutil.TileBrightness(tiles, r.ParallelScoring)

	grid := make([][]rune, len(scores))
	for row, rowScores := range scores {
		grid[row] = make([]rune, len(rowScores))
		for col, score := range rowScores {
			c, err := index.Nearest(score)
			if err != nil {
				return nil, err
			}
			grid[row][col] = c
		}
	}

	r.stats = RenderStats{
		PaddedWidth:  padded.Width(),
		PaddedHeight: padded.Height(),
		Rows:         len(grid),
		Columns:      r.Resolution,
		TileSide:     padded.Width() / r.Resolution,
		Duration:     time.Since(start),
	}
	Logger().Debug("rendered image",
		"width", buf.Width(), "height", buf.Height(),
		"padded", fmt.Sprintf("%dx%d", padded.Width(), padded.Height()),
		"grid", fmt.Sprintf("%dx%d", r.stats.Columns, r.stats.Rows),
		"tile", r.stats.TileSide,
		"duration", r.stats.Duration)
	return grid, nil
}

// Stats returns statistics for the last successful Render.
func (r *Renderer) Stats() RenderStats {
	return r.stats
}

// ResetStats clears the recorded statistics.
func (r *Renderer) ResetStats() {
	r.stats = RenderStats{}
}

// Render converts buf with a one-off renderer at the given resolution.
func Render(buf *imageutil.PixelBuffer, resolution int, index *CharIndex) ([][]rune, error) {
	return NewRenderer(WithResolution(resolution)).Render(buf, index)
}

// ResolutionRange returns the smallest and largest resolutions buf can be
// rendered at. The largest is one character per padded pixel column; the
// smallest keeps at least one tile row, and is never below 1.
func ResolutionRange(buf *imageutil.PixelBuffer) (lo, hi int, err error) {
	w, err := imageutil.NextPowerOfTwo(buf.Width())
	if err != nil {
		return 0, 0, err
	}
	h, err := imageutil.NextPowerOfTwo(buf.Height())
	if err != nil {
		return 0, 0, err
	}
	return max(1, w/h), w, nil
}

// StepResolution doubles (up) or halves the resolution cur, returning
// ErrResolutionLimit if the result would fall outside ResolutionRange.
func StepResolution(cur int, up bool, buf *imageutil.PixelBuffer) (int, error) {
	lo, hi, err := ResolutionRange(buf)
	if err != nil {
		return 0, err
	}
	next := cur / 2
	if up {
		next = cur * 2
	}
	if next < lo || next > hi {
		return cur, fmt.Errorf("%w: %d not in [%d, %d]", ErrResolutionLimit, next, lo, hi)
	}
	return next, nil
}
