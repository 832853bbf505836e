package main

import (
	"encoding/json"
	"fmt"

	"github.com/lukaszgryglicki/polyhedra4d/internal/cells"
	"github.com/spf13/cobra"
)

func newTableCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print or save the 600-cell cell -> vertex labels table as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tab, err := cells.Cell600Table()
			if err != nil {
				return err
			}
			data, err := json.Marshal(tab)
			if err != nil {
				return err
			}
			if out == "" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			}
			if err := writeFile(out, data); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d cells to %s\n", tab.Len(), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}
