package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/wbrown/img2ascii"
	"github.com/wbrown/img2ascii/imageutil"
)

// config is the parsed command line.
type config struct {
	imagePath  string
	outputPath string
	fontPath   string
	chars      string
	add        []string
	remove     []string
	resolution int
	resUp      int
	resDown    int
	maxWidth   int
	parallel   bool
	printChars bool
	dumpPadded string
	adjust     imageutil.Adjustments
}

// session owns the state of one conversion: the character index, the
// current resolution and the prepared image.
type session struct {
	cfg        config
	log        *slog.Logger
	index      *img2ascii.CharIndex
	resolution int
	image      *imageutil.PixelBuffer
}

// newSession builds the character index from the configured font, the
// initial character list and the add/remove specs.
func newSession(cfg config, log *slog.Logger) (*session, error) {
	src, err := img2ascii.OpenGlyphSource(cfg.fontPath)
	if err != nil {
		return nil, err
	}
	chars, err := parseCharList(cfg.chars)
	if err != nil {
		return nil, err
	}
	index, err := img2ascii.NewCharIndex(src, chars...)
	if err != nil {
		return nil, fmt.Errorf("failed to build character index: %w", err)
	}

	s := &session{
		cfg:        cfg,
		log:        log,
		index:      index,
		resolution: cfg.resolution,
	}
	if err := s.applyCharSpecs(cfg.add, cfg.remove); err != nil {
		return nil, err
	}
	return s, nil
}

// applyCharSpecs adds and then removes the characters named by the specs.
func (s *session) applyCharSpecs(add, remove []string) error {
	for _, spec := range add {
		r, err := parseCharSpec(spec)
		if err != nil {
			return err
		}
		if err := s.index.AddRange(r.lo, r.hi); err != nil {
			return fmt.Errorf("failed to add %q: %w", spec, err)
		}
	}
	for _, spec := range remove {
		r, err := parseCharSpec(spec)
		if err != nil {
			return err
		}
		s.index.RemoveRange(r.lo, r.hi)
	}
	s.log.Debug("character set ready", "chars", s.index.Len())
	return nil
}

// charsLine lists the working characters separated by spaces.
func (s *session) charsLine() string {
	var sb strings.Builder
	for i, c := range s.index.Chars() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteRune(c)
	}
	return sb.String()
}

// loadImage reads, optionally downsizes and adjusts the input image.
func (s *session) loadImage(path string) error {
	buf, err := imageutil.LoadImage(path)
	if err != nil {
		return err
	}
	s.log.Debug("loaded image", "path", path, "width", buf.Width(), "height", buf.Height())

	if s.cfg.maxWidth > 0 {
		buf, err = imageutil.ResizeToWidth(buf, s.cfg.maxWidth, imageutil.InterpolationArea)
		if err != nil {
			return err
		}
	}
	buf, err = s.cfg.adjust.Apply(buf)
	if err != nil {
		return err
	}
	s.image = buf
	return nil
}

// stepResolution moves the resolution n steps up or down, stopping with a
// warning at the edge of the supported range.
func (s *session) stepResolution(up bool, n int) error {
	if n <= 0 {
		return nil
	}
	for i := 0; i < n; i++ {
		next, err := img2ascii.StepResolution(s.resolution, up, s.image)
		if errors.Is(err, img2ascii.ErrResolutionLimit) {
			s.log.Warn("did not change resolution", "resolution", s.resolution, "err", err)
			return nil
		}
		if err != nil {
			return err
		}
		s.resolution = next
	}
	s.log.Info("resolution set", "resolution", s.resolution)
	return nil
}

// dumpPadded writes the padded input image, the canvas that gets tiled.
func (s *session) dumpPadded(path string) error {
	padded, err := imageutil.Pad(s.image)
	if err != nil {
		return err
	}
	return imageutil.SaveImage(padded, path)
}

// render converts the loaded image and writes the grid to w.
func (s *session) render(w io.Writer) error {
	r := img2ascii.NewRenderer(
		img2ascii.WithResolution(s.resolution),
		img2ascii.WithParallelScoring(s.cfg.parallel),
	)
	grid, err := r.Render(s.image, s.index)
	if err != nil {
		return err
	}
	stats := r.Stats()
	s.log.Debug("render complete",
		"tiles", stats.Tiles(), "tile_side", stats.TileSide, "duration", stats.Duration)
	return img2ascii.WriteGrid(w, grid)
}
