/*package plot draws figures of record table columns against time step.

Figures can be rendered natively to a single PNG, with one panel per
column, or handed to matplotlib through pyplot.
*/
package plot

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/phil-mansfield/weathering"
)

// Figure describes one panel: a table column plotted against step.
type Figure struct {
	Title  string
	Column string
	// Log plots log10 of the column. Every value must be positive.
	Log bool
}

const (
	PanelWidth  = 800
	PanelHeight = 300
)

// DefaultFigures are the panels drawn for a run: the quantities whose
// evolution the simulation exists to study.
func DefaultFigures() []Figure {
	return []Figure{
		{"Number of particles", weathering.ColCount, true},
		{"Specific surface area", weathering.ColSurfaceArea, true},
		{"Mean particle volume", weathering.ColMeanVolume, true},
	}
}

// RuntimeFigures are the panels used to study how long each step takes.
func RuntimeFigures() []Figure {
	return []Figure{
		{"Model creation time", weathering.ColCreation, false},
		{"Model calculation time", weathering.ColCalculation, false},
	}
}

// values returns the y values and axis label of fig.
func (fig *Figure) values(t weathering.Table) ([]float64, string, error) {
	ys, err := t.Column(fig.Column)
	if err != nil {
		return nil, "", err
	}
	if !fig.Log {
		return ys, fig.Column, nil
	}

	out := make([]float64, len(ys))
	for i, y := range ys {
		if y <= 0 {
			return nil, "", fmt.Errorf(
				"cannot take the log of %s = %g at step %d",
				fig.Column, y, t[i].Step,
			)
		}
		out[i] = math.Log10(y)
	}
	return out, "log10(" + fig.Column + ")", nil
}

func panel(t weathering.Table, fig *Figure) (image.Image, error) {
	if len(t) < 2 {
		return nil, fmt.Errorf("need at least two steps to plot, got %d",
			len(t))
	}
	ys, label, err := fig.values(t)
	if err != nil {
		return nil, err
	}

	graph := chart.Chart{
		Title:  fig.Title,
		Width:  PanelWidth,
		Height: PanelHeight,
		XAxis: chart.XAxis{
			Name:  "Time step",
			Style: chart.Style{FontSize: 10.0},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%d", int(v.(float64)))
			},
		},
		YAxis: chart.YAxis{
			Name:  label,
			Style: chart.Style{FontSize: 10.0},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    label,
				XValues: t.Steps(),
				YValues: ys,
				Style: chart.Style{
					StrokeColor: chart.ColorRed, StrokeWidth: 3.0,
				},
			},
		},
	}

	buf := &bytes.Buffer{}
	if err := graph.Render(chart.PNG, buf); err != nil {
		return nil, fmt.Errorf("rendering '%s': %w", fig.Title, err)
	}
	img, err := png.Decode(buf)
	if err != nil {
		return nil, fmt.Errorf("decoding '%s': %w", fig.Title, err)
	}
	return img, nil
}

// PNG renders figs as panels stacked top to bottom and writes them to w as
// one PNG image.
func PNG(w io.Writer, t weathering.Table, figs ...Figure) error {
	if len(figs) == 0 {
		figs = DefaultFigures()
	}

	out := image.NewRGBA(image.Rect(0, 0, PanelWidth, PanelHeight*len(figs)))
	for i := range figs {
		img, err := panel(t, &figs[i])
		if err != nil {
			return err
		}
		at := image.Pt(0, i*PanelHeight)
		draw.Draw(out, img.Bounds().Add(at), img, img.Bounds().Min, draw.Src)
	}

	return png.Encode(w, out)
}

// PNGFile is like PNG, but writes to the file fname.
func PNGFile(fname string, t weathering.Table, figs ...Figure) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	if err := PNG(f, t, figs...); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
