package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phil-mansfield/weathering"
	"github.com/phil-mansfield/weathering/analyze"
	"github.com/phil-mansfield/weathering/io"
)

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <table>",
		Short: "Fit exponential growth to columns of a record table",
		Long: `Fit y = y0 * (1 + r)^step to columns of a record table written by 'run'.

If a column cannot be fit, its raw values are printed instead so that the
growth can be inspected by eye.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cols, _ := cmd.Flags().GetStringSlice("column")

			fg, err := NewFileGroup(sharedFromFlags(cmd), cmd)
			if err != nil {
				return err
			}
			defer fg.Close()
			log := fg.Logger()

			t, err := io.ReadTable(args[0])
			if err != nil {
				return fmt.Errorf("failed to read table: %w", err)
			}

			out := cmd.OutOrStdout()
			for _, col := range cols {
				fit, err := analyze.FitColumn(t, col)
				if errors.Is(err, analyze.ErrFit) {
					log.Warn("exponential fit failed, printing raw values",
						"column", col, "error", err)
					ys, _ := t.Column(col)
					fmt.Fprintf(out, "%s: %v\n", col, ys)
					continue
				} else if err != nil {
					return err
				}

				fmt.Fprintf(out, "%s: %s\n", col, fit)
				fmt.Fprintf(out, "%s: doubling time %.4g steps\n",
					col, fit.DoublingTime())
			}
			return nil
		},
	}

	cmd.Flags().StringSliceP("column", "c",
		[]string{weathering.ColCount, weathering.ColCreation},
		"Columns to fit")
	return cmd
}
