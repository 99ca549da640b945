package plot

import (
	"path/filepath"
	"strings"

	plt "github.com/phil-mansfield/pyplot"

	"github.com/phil-mansfield/weathering"
)

// FigureFile returns the file a matplotlib figure is saved to: the column
// name is inserted before the extension of fname, so that one fname can
// name a whole set of figures.
func FigureFile(fname string, fig *Figure) string {
	ext := filepath.Ext(fname)
	if ext == "" {
		ext = ".png"
	}
	return strings.TrimSuffix(fname, filepath.Ext(fname)) + "_" +
		fig.Column + ext
}

// Pyplot draws one matplotlib figure per element of figs and saves each to
// FigureFile(fname, fig). The figures are only drawn when the accumulated
// script is run by Execute, which requires python and matplotlib.
func Pyplot(fname string, t weathering.Table, figs ...Figure) error {
	if len(figs) == 0 {
		figs = DefaultFigures()
	}

	plt.Reset()
	for i := range figs {
		fig := &figs[i]
		ys, err := t.Column(fig.Column)
		if err != nil {
			return err
		}

		plt.Figure()
		plt.Plot(t.Steps(), ys, "o-r", plt.LW(2))
		plt.Title(fig.Title)
		plt.XLabel("Time step", plt.FontSize(16))
		plt.YLabel(fig.Column, plt.FontSize(16))
		if fig.Log {
			plt.YScale("log")
		}
		plt.SaveFig(FigureFile(fname, fig))
	}
	return nil
}

// Execute runs the figures accumulated by Pyplot.
func Execute() { plt.Execute() }
