package img2ascii

import (
	"errors"
	"reflect"
	"testing"

	"github.com/wbrown/img2ascii/imageutil"
)

// digitGlyphs makes '1' denser than '0', so bright tiles render as '1'.
func digitGlyphs() *stubGlyphs {
	return newStubGlyphs(map[rune]int{'0': 10, '1': 50})
}

func TestRendererDefaults(t *testing.T) {
	r := NewRenderer()
	if r.Resolution != DefaultResolution {
		t.Errorf("Resolution = %d, want %d", r.Resolution, DefaultResolution)
	}
	if r.ParallelScoring {
		t.Error("ParallelScoring should default to false")
	}

	r = NewRenderer(WithResolution(32), WithParallelScoring(true))
	if r.Resolution != 32 || !r.ParallelScoring {
		t.Errorf("options not applied: %+v", r)
	}
}

func TestRenderWhiteImage(t *testing.T) {
	idx := mustIndex(t, digitGlyphs(), '0', '1')
	buf := imageutil.CreateSolidImage(4, 4, imageutil.White)

	grid, err := Render(buf, 2, idx)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	want := [][]rune{{'1', '1'}, {'1', '1'}}
	if !reflect.DeepEqual(grid, want) {
		t.Errorf("Render = %q, want %q", grid, want)
	}
}

func TestRenderCheckerboard(t *testing.T) {
	idx := mustIndex(t, digitGlyphs(), '0', '1')
	buf := imageutil.CreateCheckerboardImage(8, 8, 4)

	grid, err := Render(buf, 2, idx)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	want := [][]rune{{'1', '0'}, {'0', '1'}}
	if !reflect.DeepEqual(grid, want) {
		t.Errorf("Render = %q, want %q", grid, want)
	}
}

func TestRenderPadsWithWhite(t *testing.T) {
	idx := mustIndex(t, digitGlyphs(), '0', '1')
	buf := imageutil.CreateSolidImage(3, 3, imageutil.RGB{})

	// 3x3 pads to 4x4 with the black block in the top-left corner.
	grid, err := Render(buf, 4, idx)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	want := [][]rune{
		[]rune("0001"),
		[]rune("0001"),
		[]rune("0001"),
		[]rune("1111"),
	}
	if !reflect.DeepEqual(grid, want) {
		t.Errorf("Render =\n%s\nwant\n%s", GridString(grid), GridString(want))
	}
}

func TestRenderGridShape(t *testing.T) {
	idx := mustIndex(t, digitGlyphs(), '0', '1')
	buf := imageutil.CreateGradientImage(100, 50)

	r := NewRenderer(WithResolution(16))
	grid, err := r.Render(buf, idx)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	// 100x50 pads to 128x64; 16 columns means 8px tiles and 8 rows.
	if len(grid) != 8 {
		t.Fatalf("got %d rows, want 8", len(grid))
	}
	for i, row := range grid {
		if len(row) != 16 {
			t.Errorf("row %d has %d columns, want 16", i, len(row))
		}
	}

	stats := r.Stats()
	want := RenderStats{PaddedWidth: 128, PaddedHeight: 64, Rows: 8, Columns: 16, TileSide: 8}
	stats.Duration = 0
	if stats != want {
		t.Errorf("Stats() = %+v, want %+v", stats, want)
	}
	if stats.Tiles() != 128 {
		t.Errorf("Tiles() = %d, want 128", stats.Tiles())
	}

	r.ResetStats()
	if r.Stats() != (RenderStats{}) {
		t.Errorf("ResetStats left %+v", r.Stats())
	}
}

func TestRenderParallelMatchesSerial(t *testing.T) {
	src := newStubGlyphs(map[rune]int{' ': 0, '.': 20, ':': 60, '*': 120, '#': 200})
	idx := mustIndex(t, src, ' ', '.', ':', '*', '#')
	buf := imageutil.CreateGradientImage(128, 96)

	serial, err := NewRenderer(WithResolution(32)).Render(buf, idx)
	if err != nil {
		t.Fatalf("serial Render failed: %v", err)
	}
	parallel, err := NewRenderer(WithResolution(32), WithParallelScoring(true)).Render(buf, idx)
	if err != nil {
		t.Fatalf("parallel Render failed: %v", err)
	}
	if !reflect.DeepEqual(serial, parallel) {
		t.Error("parallel scoring produced a different grid")
	}
}

func TestRenderErrors(t *testing.T) {
	idx := mustIndex(t, digitGlyphs(), '0', '1')
	buf := imageutil.CreateSolidImage(4, 4, imageutil.White)

	tests := []struct {
		name string
		res  int
	}{
		{"zero", 0},
		{"negative", -2},
		{"not a divisor", 3},
		{"wider than image", 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grid, err := Render(buf, tt.res, idx)
			if !errors.Is(err, imageutil.ErrInvalidResolution) {
				t.Errorf("got %v, want ErrInvalidResolution", err)
			}
			if grid != nil {
				t.Errorf("got partial grid %q", grid)
			}
		})
	}
}

func TestRenderEmptyIndex(t *testing.T) {
	idx := mustIndex(t, digitGlyphs(), '0')
	idx.Remove('0')
	buf := imageutil.CreateSolidImage(4, 4, imageutil.White)

	// The index is checked before tiling, so an invalid resolution does
	// not mask the empty index.
	r := NewRenderer(WithResolution(3))
	if _, err := r.Render(buf, idx); !errors.Is(err, ErrEmptyIndex) {
		t.Errorf("got %v, want ErrEmptyIndex", err)
	}
	if _, err := r.Render(buf, nil); !errors.Is(err, ErrEmptyIndex) {
		t.Errorf("nil index: got %v, want ErrEmptyIndex", err)
	}
	if r.Stats() != (RenderStats{}) {
		t.Errorf("failed render recorded stats %+v", r.Stats())
	}
}

func TestResolutionRange(t *testing.T) {
	tests := []struct {
		w, h   int
		lo, hi int
	}{
		{100, 50, 2, 128},
		{50, 100, 1, 64},
		{4, 4, 1, 4},
		{1, 1, 1, 1},
		{512, 8, 64, 512},
	}
	for _, tt := range tests {
		buf := imageutil.CreateSolidImage(tt.w, tt.h, imageutil.White)
		lo, hi, err := ResolutionRange(buf)
		if err != nil {
			t.Fatalf("ResolutionRange(%dx%d) failed: %v", tt.w, tt.h, err)
		}
		if lo != tt.lo || hi != tt.hi {
			t.Errorf("ResolutionRange(%dx%d) = [%d, %d], want [%d, %d]",
				tt.w, tt.h, lo, hi, tt.lo, tt.hi)
		}
	}
}

func TestStepResolution(t *testing.T) {
	buf := imageutil.CreateSolidImage(100, 50, imageutil.White) // range [2, 128]

	tests := []struct {
		cur     int
		up      bool
		want    int
		wantErr bool
	}{
		{64, true, 128, false},
		{128, true, 128, true},
		{4, false, 2, false},
		{2, false, 2, true},
		{16, false, 8, false},
	}
	for _, tt := range tests {
		got, err := StepResolution(tt.cur, tt.up, buf)
		if tt.wantErr {
			if !errors.Is(err, ErrResolutionLimit) {
				t.Errorf("StepResolution(%d, %v): got %v, want ErrResolutionLimit", tt.cur, tt.up, err)
			}
		} else if err != nil {
			t.Errorf("StepResolution(%d, %v) failed: %v", tt.cur, tt.up, err)
		}
		if got != tt.want {
			t.Errorf("StepResolution(%d, %v) = %d, want %d", tt.cur, tt.up, got, tt.want)
		}
	}
}
