// Command binstat prints byte statistics for a file and renders its views.
//
// Usage:
//
//	binstat [flags] file
//
// Without -out it prints a report for the selected range. With -out it also
// writes the overview, entropy, value histogram, pair histogram, point cloud
// and dot plot images into the given directory, photographing the point
// cloud from -yaw, -pitch and -zoom. -hex prints that many hex dump rows
// from the start of the selection. With -i it opens an interactive range browser.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/binvis/bytestats"
	"github.com/binvis/bytestats/render"
)

// config is the parsed command line.
type config struct {
	path        string
	start, end  float64
	dtype       bytestats.Dtype
	window      int
	overlap     bool
	out         string
	format      string
	size        int
	workers     int
	seed        uint64
	memory      int64
	hexRows     int
	yaw, pitch  int
	zoom        int
	interactive bool
}

func main() {
	var (
		start       = flag.Float64("start", 0, "selection start as a fraction of the file")
		end         = flag.Float64("end", 1, "selection end as a fraction of the file")
		dtype       = flag.String("dtype", "U8", "sample type: "+dtypeNames())
		window      = flag.Int("window", bytestats.DefaultWindowSize, "entropy window in bytes")
		overlap     = flag.Bool("overlap", true, "use overlapping triples for the point cloud")
		out         = flag.String("out", "", "directory to write view images into")
		format      = flag.String("format", "png", "image format: png, bmp or tiff")
		size        = flag.Int("size", 512, "view size in pixels")
		workers     = flag.Int("workers", 0, "worker goroutines (0 = all cores)")
		seed        = flag.Uint64("seed", 1, "dot plot sampling seed")
		memory      = flag.Int64("memory", 1<<30, "largest single result in bytes (0 = unlimited)")
		hexRows     = flag.Int("hex", 0, "hex dump rows to print from the selection start")
		yaw         = flag.Int("yaw", -30, "point cloud rotation about the vertical axis, degrees")
		pitch       = flag.Int("pitch", 20, "point cloud rotation about the horizontal axis, degrees")
		zoom        = flag.Int("zoom", 0, "point cloud zoom in wheel notches, negative zooms out")
		verbose     = flag.Bool("v", false, "debug logging")
		interactive = flag.Bool("i", false, "interactive range browser")
	)
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: binstat [flags] file")
		flag.PrintDefaults()
	}
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	bytestats.SetLogger(logger)

	cfg, err := newConfig(flag.Args(), *dtype, *format)
	if err == nil {
		cfg.start, cfg.end = *start, *end
		cfg.window = *window
		cfg.overlap = *overlap
		cfg.out = *out
		cfg.size = *size
		cfg.workers = *workers
		cfg.seed = *seed
		cfg.memory = *memory
		cfg.hexRows = *hexRows
		cfg.yaw, cfg.pitch, cfg.zoom = *yaw, *pitch, *zoom
		cfg.interactive = *interactive
		err = cfg.validate()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		flag.Usage()
		os.Exit(2)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}

func newConfig(args []string, dtype, format string) (*config, error) {
	if len(args) != 1 {
		return nil, errors.New("expected exactly one file")
	}
	dt := bytestats.ParseDtype(strings.ToUpper(dtype))
	if dt == bytestats.DtypeNone {
		return nil, fmt.Errorf("unknown dtype %q", dtype)
	}
	if _, err := render.FormatFromPath("x." + format); err != nil {
		return nil, err
	}
	return &config{path: args[0], dtype: dt, format: format}, nil
}

func (c *config) validate() error {
	if c.window <= 0 {
		return fmt.Errorf("window must be positive, got %d", c.window)
	}
	if c.size < 8 {
		return fmt.Errorf("size must be at least 8, got %d", c.size)
	}
	if _, err := bytestats.SelectRange(1, c.start, c.end); err != nil {
		return fmt.Errorf("selection: %w", err)
	}
	if c.hexRows < 0 {
		return fmt.Errorf("hex rows must not be negative, got %d", c.hexRows)
	}
	return nil
}

// wheelNotch is the wheel delta of one mouse wheel click.
const wheelNotch = 120

// camera returns the point cloud camera the flags describe.
func (c *config) camera() bytestats.Camera {
	cam := bytestats.NewCamera()
	cam.Drag(c.yaw, c.pitch)
	cam.Zoom(float32(c.zoom * wheelNotch))
	return cam
}

// newViewer returns a viewer over data with the configured selection.
func (c *config) newViewer(a *bytestats.Analyzer, data []byte, sel bytestats.Selection) *viewer {
	return &viewer{
		a:      a,
		data:   data,
		sel:    sel,
		dtype:  c.dtype,
		cfg:    c,
		layout: bytestats.OverviewOptions{ByteClasses: true, Hilbert: true},
		camera: c.camera(),
	}
}

func (c *config) analyzer() *bytestats.Analyzer {
	return bytestats.NewAnalyzer(
		bytestats.WithWorkers(c.workers),
		bytestats.WithCache(32, 512<<20),
		bytestats.WithMemoryBudget(c.memory),
	)
}

func run(cfg *config) error {
	data, err := os.ReadFile(cfg.path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	a := cfg.analyzer()
	defer a.Close()

	sel := bytestats.Selection{Upper: max(cfg.start, 0), Lower: min(cfg.end, 1)}
	if cfg.interactive {
		return runInteractive(cfg.newViewer(a, data, sel))
	}

	r, err := sel.Range(len(data))
	if err != nil {
		return err
	}
	rep, err := buildReport(a, cfg.path, data, r, cfg.dtype, cfg.window)
	if err != nil {
		return err
	}
	fmt.Print(rep.render(newPrinter()))
	if cfg.hexRows > 0 {
		fmt.Print("\n" + labelStyle.Render("hex") + "\n" + hexDump(data, r.Start, cfg.hexRows))
	}

	if cfg.out == "" {
		return nil
	}
	_, err = cfg.newViewer(a, data, sel).writeViews(cfg.out)
	return err
}

func dtypeNames() string {
	var names []string
	for _, dt := range bytestats.Dtypes() {
		names = append(names, dt.String())
	}
	return strings.Join(names, ", ")
}
