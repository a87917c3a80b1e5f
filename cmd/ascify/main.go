package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/codegangsta/cli"
	"github.com/wbrown/img2ascii"
	"github.com/wbrown/img2ascii/imageutil"
)

func main() {
	app := cli.NewApp()
	app.Name = "ascify"
	app.Version = "0.1.0"
	app.Usage = "Convert an image into characters of matching brightness."
	app.UsageText = "ascify [options] IMAGE"
	app.Flags = flags()
	app.Action = func(c *cli.Context) error {
		log := newLogger(c.Bool("verbose"))
		img2ascii.SetLogger(log)
		return run(configFromContext(c), log, os.Stdout)
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func flags() []cli.Flag {
	return []cli.Flag{
		cli.IntFlag{
			Name:  "res,r",
			Usage: "`RES` characters per output row. Must divide the image width padded to a power of two.",
			Value: img2ascii.DefaultResolution,
		},
		cli.StringFlag{
			Name:  "chars",
			Usage: "Initial `CHARS` to draw with.",
			Value: string(img2ascii.DefaultChars),
		},
		cli.StringSliceFlag{
			Name:  "add,a",
			Usage: "Add characters by `SPEC`: a single character, a range like a-z, space or all. Repeatable.",
		},
		cli.StringSliceFlag{
			Name:  "remove,x",
			Usage: "Remove characters by `SPEC`, same syntax as --add. Applied after --add.",
		},
		cli.StringFlag{
			Name:  "font",
			Usage: "`FONT` file: TrueType (.ttf), OpenType (.otf, .ttc) or precomputed .glyphs. Defaults to the built-in 7x13 bitmap font.",
		},
		cli.IntFlag{
			Name:  "res-up",
			Usage: "Double the resolution `N` times.",
		},
		cli.IntFlag{
			Name:  "res-down",
			Usage: "Halve the resolution `N` times.",
		},
		cli.IntFlag{
			Name:  "max-width",
			Usage: "Shrink images wider than `WIDTH` pixels before converting.",
		},
		cli.Float64Flag{
			Name:  "gamma,g",
			Usage: "`GAMMA` = 1.0 gives the original image. Less than 1.0 darkens, greater lightens.",
			Value: 1.0,
		},
		cli.Float64Flag{
			Name:  "brightness,b",
			Usage: "`BRIGHTNESS` from -100 (black) to 100 (white); 0 gives the original image.",
		},
		cli.Float64Flag{
			Name:  "contrast,c",
			Usage: "`CONTRAST` from -100 (grey) to 100; 0 gives the original image.",
		},
		cli.Float64Flag{
			Name:  "sharpen,s",
			Usage: "`SIGMA` greater than 0 sharpens the image.",
		},
		cli.BoolFlag{
			Name:  "invert,i",
			Usage: "Inverts the image.",
		},
		cli.BoolFlag{
			Name:  "parallel,p",
			Usage: "Score tiles on all CPUs.",
		},
		cli.StringFlag{
			Name:  "output,o",
			Usage: "Write to `FILE` instead of stdout.",
		},
		cli.BoolFlag{
			Name:  "print-chars",
			Usage: "Print the working character set.",
		},
		cli.StringFlag{
			Name:  "dump-padded",
			Usage: "Save the padded input image to `FILE`.",
		},
		cli.BoolFlag{
			Name:  "verbose",
			Usage: "Log debug output to stderr.",
		},
	}
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func configFromContext(c *cli.Context) config {
	return config{
		imagePath:  c.Args().First(),
		outputPath: c.String("output"),
		fontPath:   c.String("font"),
		chars:      c.String("chars"),
		add:        c.StringSlice("add"),
		remove:     c.StringSlice("remove"),
		resolution: c.Int("res"),
		resUp:      c.Int("res-up"),
		resDown:    c.Int("res-down"),
		maxWidth:   c.Int("max-width"),
		parallel:   c.Bool("parallel"),
		printChars: c.Bool("print-chars"),
		dumpPadded: c.String("dump-padded"),
		adjust: imageutil.Adjustments{
			Gamma:      c.Float64("gamma"),
			Brightness: c.Float64("brightness"),
			Contrast:   c.Float64("contrast"),
			Sharpen:    c.Float64("sharpen"),
			Invert:     c.Bool("invert"),
		},
	}
}

// run executes one conversion. stdout receives the character grid unless
// an output file is configured.
func run(cfg config, log *slog.Logger, stdout io.Writer) error {
	s, err := newSession(cfg, log)
	if err != nil {
		return err
	}
	if cfg.printChars {
		fmt.Fprintln(stdout, s.charsLine())
	}
	if cfg.imagePath == "" {
		if cfg.printChars {
			return nil
		}
		return fmt.Errorf("no image given")
	}

	if err := s.loadImage(cfg.imagePath); err != nil {
		return err
	}
	if err := s.stepResolution(true, cfg.resUp); err != nil {
		return err
	}
	if err := s.stepResolution(false, cfg.resDown); err != nil {
		return err
	}
	if cfg.dumpPadded != "" {
		if err := s.dumpPadded(cfg.dumpPadded); err != nil {
			return err
		}
		log.Info("saved padded image", "path", cfg.dumpPadded)
	}

	if cfg.outputPath == "" {
		return s.render(stdout)
	}
	f, err := os.Create(cfg.outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := s.render(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
