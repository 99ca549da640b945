package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/phil-mansfield/weathering/archive"
	"github.com/phil-mansfield/weathering/io"
)

func newRunsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs <archive.db>",
		Short: "List, show, or delete archived runs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			show, _ := cmd.Flags().GetInt64("show")
			del, _ := cmd.Flags().GetInt64("delete")
			ctx := cmd.Context()

			if _, err := os.Stat(args[0]); err != nil {
				return fmt.Errorf("failed to open archive: %w", err)
			}
			a, err := archive.Open(ctx, args[0])
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()
			switch {
			case show > 0:
				run, t, err := a.Load(ctx, show)
				if err != nil {
					return err
				}
				return io.WriteTable(out, &run.TableHeader, t)
			case del > 0:
				if err := a.Delete(ctx, del); err != nil {
					return err
				}
				fmt.Fprintf(out, "Deleted run %d\n", del)
				return nil
			}

			runs, err := a.Runs(ctx)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs archived.")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tMODEL\tSTEPS\tSIDES\tDENSITY\tSEED\tCREATED")
			for _, run := range runs {
				fmt.Fprintf(w, "%d\t%s\t%d\t%gx%gx%g\t%g\t%d\t%s\n",
					run.ID, run.Model, run.Steps,
					run.Side1, run.Side2, run.Side3, run.Density, run.Seed,
					run.CreatedAt.Local().Format(time.DateTime),
				)
			}
			return w.Flush()
		},
	}

	cmd.Flags().Int64("show", 0, "Print the record table of this run")
	cmd.Flags().Int64("delete", 0, "Delete this run")
	cmd.MarkFlagsMutuallyExclusive("show", "delete")
	return cmd
}
