package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newRowsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rows [file]",
		Short: "Print every row as a JSON array",
		Long: `Print every row as a JSON array, one per line.

Example:
  csvline rows data.csv
  cat data.csv | csvline rows --delimiter ';'`,
		Args: cobra.MaximumNArgs(1),
		RunE: runRows,
	}
}

func runRows(cmd *cobra.Command, args []string) error {
	r, closeFn, err := openReader(cmd, args)
	if err != nil {
		return err
	}
	defer closeFn()

	out := bufio.NewWriter(cmd.OutOrStdout())
	defer out.Flush()
	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)

	rows := 0
	for row, err := range r.All() {
		if err != nil {
			return fmt.Errorf("row %d: %w", rows+1, err)
		}
		if err := enc.Encode(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
		rows++
		if err := checkContext(cmd.Context(), rows); err != nil {
			return err
		}
	}
	return out.Flush()
}
