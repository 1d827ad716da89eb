package cmd

import (
	"fmt"

	"github.com/oleg578/linecsv"
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	checkCmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Validate a CSV file and report its size",
		Long: `Read the whole input and report how many rows it holds and the width
of the widest row. Fails on unterminated quotes, strict-mode violations and,
with --header, duplicate header names or rows that do not match the header.

Example:
  csvline check --header export.csv`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCheck,
	}
	checkCmd.Flags().Bool("header", false, "treat the first row as a header and validate every row against it")
	return checkCmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	s, err := settingsFrom(cmd)
	if err != nil {
		return err
	}
	r, closeFn, err := openReader(cmd, args)
	if err != nil {
		return err
	}
	defer closeFn()

	withHeader, _ := cmd.Flags().GetBool("header")

	rows, widest := 0, 0
	if withHeader {
		hr := linecsv.NewHeaderReader(r)
		header, err := hr.Header()
		if err != nil {
			return fmt.Errorf("header: %w", err)
		}
		widest = len(header)
		for _, err := range hr.All() {
			if err != nil {
				return fmt.Errorf("line %d: %w", r.Line(), err)
			}
			rows++
			if err := checkContext(cmd.Context(), rows); err != nil {
				return err
			}
		}
	} else {
		for row, err := range r.All() {
			if err != nil {
				return fmt.Errorf("line %d: %w", r.Line(), err)
			}
			rows++
			widest = max(widest, len(row))
			if err := checkContext(cmd.Context(), rows); err != nil {
				return err
			}
		}
	}

	s.logger.Info("check complete", "rows", rows, "lines", r.Line())
	fmt.Fprintf(cmd.OutOrStdout(), "rows: %d\nwidest: %d\n", rows, widest)
	return nil
}
