package views

import (
	"bytes"
	"fmt"
	"image/color"
	"time"

	"github.com/shopspring/decimal"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

type Point struct {
	Date time.Time
	Rate decimal.Decimal
}

var deepSkyBlue = color.RGBA{R: 0x00, G: 0xbf, B: 0xff, A: 0xff}

const (
	chartWidth  = 8 * vg.Inch
	chartHeight = 5 * vg.Inch
)

// Chart draws points as a single line series labelled label and encodes the
// result as PNG. Points must be sorted by date.
func Chart(label string, points []Point) ([]byte, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("chart %s: no points", label)
	}

	xys := make(plotter.XYs, len(points))
	for i, p := range points {
		xys[i].X = float64(p.Date.Unix())
		xys[i].Y = p.Rate.InexactFloat64()
	}

	p := plot.New()
	p.Title.Text = label
	p.X.Label.Text = "Date"
	p.Y.Label.Text = "Rate"
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01-02"}
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, fmt.Errorf("chart %s: %w", label, err)
	}
	line.Color = deepSkyBlue
	line.Width = vg.Points(2)
	p.Add(line)
	p.Legend.Add(label, line)
	p.Legend.Top = true

	w, err := p.WriterTo(chartWidth, chartHeight, "png")
	if err != nil {
		return nil, fmt.Errorf("chart %s: %w", label, err)
	}
	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("chart %s: %w", label, err)
	}
	return buf.Bytes(), nil
}
