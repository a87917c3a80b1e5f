package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/codegangsta/cli"
	"github.com/wbrown/img2ascii"
)

// defaultRunes are printable ASCII followed by the block and box drawing
// characters.
func defaultRunes() []rune {
	runes := make([]rune, 0, 95+len(img2ascii.BlockRunes)+len(img2ascii.BoxRunes))
	for r := img2ascii.FirstPrintable; r <= img2ascii.LastPrintable; r++ {
		runes = append(runes, r)
	}
	runes = append(runes, img2ascii.BlockRunes...)
	return append(runes, img2ascii.BoxRunes...)
}

func main() {
	app := cli.NewApp()
	app.Name = "computeglyphs"
	app.Version = "0.1.0"
	app.Usage = "Pre-render the glyphs of a TrueType font into a .glyphs file."
	app.UsageText = "computeglyphs --font FONT.ttf --output FONT.glyphs"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "font,f",
			Usage: "Path to the input TrueType `FONT` (required)",
		},
		cli.StringFlag{
			Name:  "output,o",
			Usage: "Path to save the glyph data `FILE` (required)",
		},
	}
	app.Action = func(c *cli.Context) error {
		log := slog.New(slog.NewTextHandler(os.Stderr, nil))
		img2ascii.SetLogger(log)
		return run(c.String("font"), c.String("output"), log)
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(fontPath, outputPath string, log *slog.Logger) error {
	if fontPath == "" || outputPath == "" {
		return fmt.Errorf("both --font and --output are required")
	}

	log.Info("computing glyphs", "font", fontPath)
	src, err := img2ascii.LoadTrueTypeGlyphs(fontPath)
	if err != nil {
		return err
	}
	defer src.Close()

	set, err := img2ascii.ComputeGlyphSet(src, filepath.Base(fontPath), defaultRunes())
	if err != nil {
		return fmt.Errorf("failed to compute glyphs: %w", err)
	}
	log.Info("computed glyphs", "count", set.Len())

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := set.Save(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	if info, err := os.Stat(outputPath); err == nil {
		log.Info("saved glyph data", "path", outputPath, "kb", fmt.Sprintf("%.2f", float64(info.Size())/1024))
	}
	return nil
}
