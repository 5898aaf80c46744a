package main

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/binvis/bytestats"
	"github.com/binvis/bytestats/render"
)

// view renders one image from the selected bytes.
type view struct {
	name  string
	build func(v *viewer) (image.Image, error)
}

var views = []view{
	{"overview", (*viewer).overview},
	{"entropy", (*viewer).entropy},
	{"histogram", (*viewer).histogram},
	{"pairs", (*viewer).pairs},
	{"cloud", (*viewer).cloud},
	{"dotplot", (*viewer).dotplot},
}

// viewer holds what every view needs.
type viewer struct {
	a      *bytestats.Analyzer
	data   []byte
	sel    bytestats.Selection
	dtype  bytestats.Dtype
	cfg    *config
	layout bytestats.OverviewOptions
	camera bytestats.Camera
}

func (v *viewer) selected() []byte {
	r, err := v.sel.Range(len(v.data))
	if err != nil {
		return nil
	}
	return r.Slice(v.data)
}

func (v *viewer) overview() (image.Image, error) {
	size := v.cfg.size
	o, err := bytestats.BuildOverview(v.data, max(size/8, 1), size, v.layout)
	if err != nil {
		return nil, err
	}
	img := render.Scale(render.OverviewImage(o), size/4, size)
	render.DrawSelection(img, v.sel)
	render.DrawBorder(img)
	return img, nil
}

func (v *viewer) entropy() (image.Image, error) {
	curve, err := v.a.Entropy(v.selected(), v.cfg.window)
	if err != nil {
		return nil, err
	}
	img := render.Plot(curve, v.cfg.size/4, v.cfg.size, render.PlotOptions{
		Max:   bytestats.MaxEntropy,
		Label: "H",
	})
	render.DrawBorder(img)
	return img, nil
}

// histogram plots the value histogram of the selection, buckets top to
// bottom, with the axis fitted to the data.
func (v *viewer) histogram() (image.Image, error) {
	h, err := v.a.Histogram1D(v.selected(), v.dtype)
	if err != nil {
		return nil, err
	}
	frac := h.Normalized()
	img := render.Plot(frac[:], v.cfg.size/4, v.cfg.size, render.PlotOptions{
		Normalize: true,
		Label:     "V",
	})
	render.DrawBorder(img)
	return img, nil
}

func (v *viewer) pairs() (image.Image, error) {
	h, err := v.a.Histogram2D(v.selected(), v.dtype)
	if err != nil {
		return nil, err
	}
	return render.Scale(render.Histogram2DImage(h, render.DefaultHeatmap()), v.cfg.size, v.cfg.size), nil
}

func (v *viewer) cloud() (image.Image, error) {
	h, err := v.a.Histogram3D(v.selected(), v.dtype, v.cfg.overlap)
	if err != nil {
		return nil, err
	}
	c, err := bytestats.PointCloud(h, bytestats.DefaultPointCloudOptions())
	if err != nil {
		return nil, err
	}
	return render.CloudImage(c, v.camera, v.cfg.size, v.cfg.size), nil
}

func (v *viewer) dotplot() (image.Image, error) {
	m, err := bytestats.DotPlot(v.selected(), bytestats.DotPlotOptions{
		Size: v.cfg.size,
		Rand: rand.New(rand.NewPCG(v.cfg.seed, v.cfg.seed)),
	})
	if err != nil {
		return nil, err
	}
	if m.Size == 0 {
		return image.NewGray(image.Rect(0, 0, 1, 1)), nil
	}
	return render.Scale(render.DotPlotImage(m), v.cfg.size, v.cfg.size), nil
}

// writeViews saves every view into dir and returns the written paths.
// A view refused for lack of memory is skipped with a warning.
func (v *viewer) writeViews(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	var paths []string
	for _, vw := range views {
		img, err := vw.build(v)
		if errors.Is(err, bytestats.ErrResourceExhausted) {
			slog.Warn("skipping view", "view", vw.name, "err", err)
			continue
		}
		if err != nil {
			return paths, fmt.Errorf("%s view: %w", vw.name, err)
		}

		path := filepath.Join(dir, vw.name+"."+v.cfg.format)
		if err := render.Save(path, img); err != nil {
			return paths, err
		}
		slog.Info("wrote view", "view", vw.name, "path", path)
		paths = append(paths, path)
	}
	return paths, nil
}
