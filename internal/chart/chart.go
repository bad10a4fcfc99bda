// Package chart renders the sin(x) chart served over HTTP and WebSocket.
package chart

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"evalgo.org/cookbook/internal/config"
)

// ErrInvalidRange is returned when a range is empty, reversed or not finite.
var ErrInvalidRange = errors.New("invalid range")

// View is the visible window of the chart.
type View struct {
	XMin, XMax float64
	YMin, YMax float64
}

// DefaultView shows x in [0,10] and y in [-1.2,1.2].
func DefaultView() View {
	return View{XMin: 0, XMax: 10, YMin: -1.2, YMax: 1.2}
}

// Validate checks both ranges.
func (v View) Validate() error {
	if err := checkRange(v.XMin, v.XMax); err != nil {
		return fmt.Errorf("x_range: %w", err)
	}
	if err := checkRange(v.YMin, v.YMax); err != nil {
		return fmt.Errorf("y_range: %w", err)
	}
	return nil
}

func checkRange(lo, hi float64) error {
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return fmt.Errorf("%w: bounds must be finite", ErrInvalidRange)
	}
	if lo >= hi {
		return fmt.Errorf("%w: %g must be less than %g", ErrInvalidRange, lo, hi)
	}
	if math.IsInf(hi-lo, 0) {
		return fmt.Errorf("%w: span of [%g, %g] overflows", ErrInvalidRange, lo, hi)
	}
	return nil
}

// WithRanges returns v with the given ranges applied. A nil range keeps the
// current one. A range must have exactly two elements.
func (v View) WithRanges(xRange, yRange []float64) (View, error) {
	next := v
	if xRange != nil {
		if len(xRange) != 2 {
			return v, fmt.Errorf("x_range: %w: expected two values", ErrInvalidRange)
		}
		next.XMin, next.XMax = xRange[0], xRange[1]
	}
	if yRange != nil {
		if len(yRange) != 2 {
			return v, fmt.Errorf("y_range: %w: expected two values", ErrInvalidRange)
		}
		next.YMin, next.YMax = yRange[0], yRange[1]
	}
	if err := next.Validate(); err != nil {
		return v, err
	}
	return next, nil
}

// Renderer draws PNG frames.
type Renderer struct {
	width   vg.Length
	height  vg.Length
	samples int
}

// NewRenderer creates a renderer from the plot configuration. Width and
// height are in inches.
func NewRenderer(cfg config.PlotConfig) *Renderer {
	r := &Renderer{
		width:   vg.Length(cfg.Width) * vg.Inch,
		height:  vg.Length(cfg.Height) * vg.Inch,
		samples: cfg.Samples,
	}
	if cfg.Width <= 0 {
		r.width = 6.4 * vg.Inch
	}
	if cfg.Height <= 0 {
		r.height = 4.8 * vg.Inch
	}
	if r.samples < 2 {
		r.samples = 100
	}
	return r
}

// Samples returns sin(x) evaluated at evenly spaced points across [xmin,xmax].
func Samples(xmin, xmax float64, n int) plotter.XYs {
	pts := make(plotter.XYs, n)
	step := (xmax - xmin) / float64(n-1)
	for i := range pts {
		x := xmin + float64(i)*step
		if i == n-1 {
			x = xmax
		}
		pts[i].X = x
		pts[i].Y = math.Sin(x)
	}
	return pts
}

// Render draws sin(x) over the view with a dashed zero line and returns PNG bytes.
func (r *Renderer) Render(v View) ([]byte, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}

	p := plot.New()
	p.X.Label.Text = "X-axis"
	p.Y.Label.Text = "Y-axis"
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(Samples(v.XMin, v.XMax, r.samples))
	if err != nil {
		return nil, fmt.Errorf("build line: %w", err)
	}
	line.Color = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	line.Width = vg.Points(1.5)
	p.Add(line)

	zero := plotter.NewFunction(func(float64) float64 { return 0 })
	zero.Color = color.Black
	zero.Width = vg.Points(1)
	zero.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	p.Add(zero)

	// limits are set after Add, which widens them to the data
	p.X.Min, p.X.Max = v.XMin, v.XMax
	p.Y.Min, p.Y.Max = v.YMin, v.YMax

	wt, err := p.WriterTo(r.width, r.height, "png")
	if err != nil {
		return nil, fmt.Errorf("create png writer: %w", err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderBase64 renders the view and encodes the PNG as standard base64.
func (r *Renderer) RenderBase64(v View) (string, error) {
	png, err := r.Render(v)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(png), nil
}
