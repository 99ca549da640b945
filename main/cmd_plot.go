package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phil-mansfield/weathering/io"
	"github.com/phil-mansfield/weathering/plot"
)

func newPlotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plot <table>",
		Short: "Plot the columns of a record table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("output")
			runtime, _ := cmd.Flags().GetBool("runtime")
			cols, _ := cmd.Flags().GetStringSlice("column")
			logY, _ := cmd.Flags().GetBool("log")

			if out == "" {
				return fmt.Errorf("--output is required")
			}

			t, err := io.ReadTable(args[0])
			if err != nil {
				return fmt.Errorf("failed to read table: %w", err)
			}

			figs := plot.DefaultFigures()
			if runtime {
				figs = plot.RuntimeFigures()
			}
			if len(cols) > 0 {
				figs = figs[:0]
				for _, col := range cols {
					figs = append(figs, plot.Figure{
						Title: col, Column: col, Log: logY,
					})
				}
			}

			if err := writePlot(out, t, figs); err != nil {
				return fmt.Errorf("failed to plot %s: %w", args[0], err)
			}
			return nil
		},
	}

	cmd.Flags().StringP("output", "o", "", "Figure file (.png, or .py for matplotlib)")
	cmd.Flags().Bool("runtime", false, "Plot the step timing columns")
	cmd.Flags().StringSliceP("column", "c", nil, "Plot these columns instead")
	cmd.Flags().Bool("log", false, "Log y axis for --column figures")
	return cmd
}
