package cmd

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/oleg578/linecsv"
	"github.com/spf13/cobra"
)

func newRecordsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "records [file]",
		Short: "Print rows as JSON objects keyed by the header row",
		Long: `Treat the first row as field names and print every later row as a
JSON object. Keys keep header order. Duplicate header names and rows whose
width differs from the header are errors.

Example:
  csvline records people.csv`,
		Args: cobra.MaximumNArgs(1),
		RunE: runRecords,
	}
}

func runRecords(cmd *cobra.Command, args []string) error {
	r, closeFn, err := openReader(cmd, args)
	if err != nil {
		return err
	}
	defer closeFn()

	out := bufio.NewWriter(cmd.OutOrStdout())
	defer out.Flush()

	rows := 0
	for rec, err := range linecsv.NewHeaderReader(r).All() {
		if err != nil {
			return fmt.Errorf("record %d: %w", rows+1, err)
		}
		if err := writeRecord(out, rec); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
		rows++
		if err := checkContext(cmd.Context(), rows); err != nil {
			return err
		}
	}
	return out.Flush()
}

// writeRecord writes rec as a single-line JSON object in header order.
func writeRecord(w io.Writer, rec linecsv.Record) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	values := rec.Values()
	buf.WriteByte('{')
	for i, name := range rec.Header() {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := enc.Encode(name); err != nil {
			return err
		}
		buf.Truncate(buf.Len() - 1)
		buf.WriteByte(':')
		if err := enc.Encode(values[i]); err != nil {
			return err
		}
		buf.Truncate(buf.Len() - 1)
	}
	buf.WriteString("}\n")

	_, err := w.Write(buf.Bytes())
	return err
}
