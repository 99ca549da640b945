package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phil-mansfield/weathering/io"
)

func newExampleConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "example-config",
		Short: "Print an example run configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			yamlOut, _ := cmd.Flags().GetBool("yaml")
			if yamlOut {
				fmt.Fprintln(cmd.OutOrStdout(), io.ExampleRunYAMLFile)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), io.ExampleRunFile)
			}
			return nil
		},
	}
	cmd.Flags().Bool("yaml", false, "Print the YAML form")
	return cmd
}
