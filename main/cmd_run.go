package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/phil-mansfield/weathering"
	"github.com/phil-mansfield/weathering/archive"
	"github.com/phil-mansfield/weathering/io"
	"github.com/phil-mansfield/weathering/model"
	"github.com/phil-mansfield/weathering/plot"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [config]",
		Short: "Run a simulation",
		Long: `Run a simulation described by a configuration file (gcfg, or YAML if the
file ends in .yaml/.yml) and/or flags. Flags override the file.

The record table is written to --output, or to stdout if it is not set.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			con, err := runConfig(cmd, args)
			if err != nil {
				return err
			}

			fg, err := NewFileGroup(&con.SharedConfig, cmd)
			if err != nil {
				return err
			}
			defer fg.Close()

			return runMain(cmd, con, fg.Logger())
		},
	}

	cmd.Flags().String("model", "", "Model: "+strings.Join(model.Names(), " or "))
	cmd.Flags().Float64("side1", 0, "First side length of the parent material")
	cmd.Flags().Float64("side2", 0, "Second side length of the parent material")
	cmd.Flags().Float64("side3", 0, "Third side length of the parent material")
	cmd.Flags().Float64("density", 0, "Density of the parent material")
	cmd.Flags().Int("steps", 0, "Number of time steps")
	cmd.Flags().Int64("seed", -1, "Random seed (negative seeds from the clock)")
	cmd.Flags().Int("max-count", weathering.DefaultMaxCount,
		"Largest population allowed (0 for no limit)")
	cmd.Flags().StringP("output", "o", "", "Record table output file")
	cmd.Flags().String("archive", "", "SQLite archive to append the run to")
	cmd.Flags().String("plot", "", "Figure file (.png, or .py for matplotlib)")
	cmd.Flags().String("profile", "", "Write a CPU profile to this file")
	cmd.Flags().BoolP("quiet", "q", false, "Do not report progress")

	return cmd
}

// runConfig builds the run configuration from an optional file and the
// flags that were explicitly set.
func runConfig(cmd *cobra.Command, args []string) (*io.RunConfig, error) {
	var con *io.RunConfig
	if len(args) == 1 {
		var err error
		if con, err = io.LoadRunConfig(args[0]); err != nil {
			return nil, err
		}
	} else {
		con = &io.DefaultRunWrapper().Weathering
	}

	flags := cmd.Flags()
	floats := map[string]*float64{
		"side1": &con.Side1, "side2": &con.Side2, "side3": &con.Side3,
		"density": &con.Density,
	}
	for name, ptr := range floats {
		if flags.Changed(name) {
			*ptr, _ = flags.GetFloat64(name)
		}
	}
	strs := map[string]*string{
		"model": &con.Model, "output": &con.Output, "archive": &con.Archive,
		"plot": &con.Plot, "profile": &con.ProfileFile,
		"log-level": &con.LogLevel, "log-file": &con.LogFile,
	}
	for name, ptr := range strs {
		if flags.Changed(name) {
			*ptr, _ = flags.GetString(name)
		}
	}
	if flags.Changed("steps") {
		con.Steps, _ = flags.GetInt("steps")
	}
	if flags.Changed("max-count") {
		con.MaxCount, _ = flags.GetInt("max-count")
	}
	if flags.Changed("seed") {
		con.Seed, _ = flags.GetInt64("seed")
	}

	if err := con.CheckInit(); err != nil {
		if len(args) == 1 {
			return nil, fmt.Errorf("%s: %w", args[0], err)
		}
		return nil, err
	}
	return con, nil
}

func runMain(cmd *cobra.Command, con *io.RunConfig, log *slog.Logger) error {
	parent, err := con.Parent()
	if err != nil {
		return err
	}
	src := con.Source()
	m, err := model.ByName(con.Model, src)
	if err != nil {
		return err
	}

	log.Info("starting simulation",
		"model", m.Name(), "steps", con.Steps, "seed", src.Seed(),
		"parent", parent.String(),
	)

	opts := []weathering.Option{
		weathering.Log(log), weathering.MaxCount(con.MaxCount),
	}
	if quiet, _ := cmd.Flags().GetBool("quiet"); !quiet {
		opts = append(opts, weathering.Observer(progress(log, con.Steps)))
	}

	start := time.Now()
	t, err := weathering.Run(m, parent, con.Steps, opts...)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}
	log.Info("simulation time", "elapsed", time.Since(start))

	hd := io.NewTableHeader(m.Name(), parent, int64(src.Seed()))
	if con.ValidOutput() {
		if err := io.WriteTableFile(con.Output, &hd, t); err != nil {
			return fmt.Errorf("failed to write table: %w", err)
		}
		log.Info("wrote table", "file", con.Output)
	} else if err := io.WriteTable(cmd.OutOrStdout(), &hd, t); err != nil {
		return fmt.Errorf("failed to write table: %w", err)
	}

	if con.ValidArchive() {
		id, err := archiveRun(cmd.Context(), con.Archive, &hd, t)
		if err != nil {
			return err
		}
		log.Info("archived run", "archive", con.Archive, "id", id)
	}

	if con.ValidPlot() {
		if err := writePlot(con.Plot, t, plot.DefaultFigures()); err != nil {
			return fmt.Errorf("failed to plot run: %w", err)
		}
		log.Info("wrote figure", "file", con.Plot)
	}

	return nil
}

// progress returns an observer which logs roughly ten progress lines over
// the course of a run.
func progress(log *slog.Logger, steps int) func(weathering.Record) {
	every := steps / 10
	if every < 1 {
		every = 1
	}
	return func(r weathering.Record) {
		if r.Step%every == 0 || r.Step == steps {
			log.Info("progress",
				"step", r.Step, "of", steps, "particles", r.Count)
		}
	}
}

func archiveRun(
	ctx context.Context, path string, hd *io.TableHeader, t weathering.Table,
) (int64, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := archive.Open(ctx, path)
	if err != nil {
		return 0, err
	}
	defer a.Close()

	id, err := a.Save(ctx, hd, t)
	if err != nil {
		return 0, fmt.Errorf("failed to archive run: %w", err)
	}
	return id, nil
}

// writePlot renders figs to fname. A .py fname draws the figures with
// matplotlib, one png per figure, instead of a single stacked png.
func writePlot(fname string, t weathering.Table, figs []plot.Figure) error {
	if strings.ToLower(filepath.Ext(fname)) != ".py" {
		return plot.PNGFile(fname, t, figs...)
	}

	base := strings.TrimSuffix(fname, filepath.Ext(fname)) + ".png"
	if err := plot.Pyplot(base, t, figs...); err != nil {
		return err
	}
	plot.Execute()
	return nil
}
