package linecsv

import (
	"io"
	"iter"
	"log/slog"
	"strings"
)

const defaultBufferSize = 1 << 12 // 4096 bytes

// Reader assembles rows from a text stream. It pulls lines until every quote
// opened by the current row is closed, then hands the buffered text to the
// row parser.
type Reader struct {
	lines   *lineReader
	dialect Dialect
	parser  *rowParser

	// ReuseRecord indicates whether Read should reuse the backing array of the returned slice.
	ReuseRecord bool
	// FieldsPerRecord, when positive, requires each record to contain this many fields.
	// Zero or negative accepts rows of any width.
	FieldsPerRecord int
	// SkipEmptyLines drops rows whose raw text is nothing but a line terminator.
	SkipEmptyLines bool
	// Logger receives debug and warning events. Nil discards them.
	Logger *slog.Logger

	leftover  strings.Builder
	record    []string
	line      int
	rowLine   int
	finished  bool
	validated bool
}

// NewReader creates a Reader that consumes CSV text from r, panicking if r is
// nil. A nil d selects DefaultDialect. The dialect is copied; later changes
// to *d do not affect the Reader.
func NewReader(r io.Reader, d *Dialect) *Reader {
	if r == nil {
		panic("linecsv: reader source cannot be nil")
	}

	dialect := DefaultDialect()
	if d != nil {
		dialect = *d
	}

	rd := &Reader{
		lines:   newLineReader(r),
		dialect: dialect,
		record:  make([]string, 0, 16),
	}
	rd.parser = newRowParser(&rd.dialect)
	return rd
}

// Dialect returns the settings the Reader parses with.
func (r *Reader) Dialect() Dialect {
	return r.dialect
}

// Line returns the number of source lines consumed so far.
func (r *Reader) Line() int {
	return r.line
}

// Read returns the next row. io.EOF signals that no more rows remain. A
// *FieldCountError is returned together with the offending row and reading
// may continue; any other error ends the session and later calls return io.EOF.
func (r *Reader) Read() (dst []string, err error) {
	if r == nil || r.lines == nil || r.finished {
		return nil, io.EOF
	}
	if !r.validated {
		if err := r.dialect.Validate(); err != nil {
			r.finished = true
			return nil, err
		}
		r.validated = true
	}

	for {
		row, err := r.nextRow()
		if err != nil {
			r.finished = true
			return nil, err
		}
		if row.empty && r.SkipEmptyLines {
			continue
		}
		r.rowLine = row.startLine
		return r.buildRecord(row.startLine)
	}
}

type assembledRow struct {
	startLine int
	empty     bool
}

// nextRow pulls lines into the leftover buffer until the parser closes a row.
func (r *Reader) nextRow() (assembledRow, error) {
	r.leftover.Reset()
	startLine := r.line + 1
	pulled := 0

	for {
		ln, err := r.lines.next()
		if err == io.EOF {
			if r.leftover.Len() == 0 {
				return assembledRow{}, io.EOF
			}
			leftover := r.leftover.String()
			r.leftover.Reset()
			r.logger().Warn("unterminated quoted field at end of input",
				"line", startLine, "bytes", len(leftover))
			return assembledRow{}, &MalformedInputError{Line: startLine, Leftover: leftover}
		}
		if err != nil {
			return assembledRow{}, err
		}
		r.line++
		pulled++

		r.leftover.WriteString(ln.text)
		text := r.leftover.String()
		complete, err := r.parser.parse(text, !ln.terminated)
		if err != nil {
			if perr, ok := err.(*ParseError); ok {
				perr.Line += startLine
			}
			return assembledRow{}, err
		}
		if !complete {
			continue
		}

		if pulled > 1 {
			r.logger().Debug("assembled multi-line row", "line", startLine, "lines", pulled)
		}
		r.leftover.Reset()
		return assembledRow{
			startLine: startLine,
			empty:     pulled == 1 && isBareTerminator(text),
		}, nil
	}
}

// ReadAll exhausts the reader, repeatedly calling Read to collect records until io.EOF
// and returning the accumulated records slice plus the first non-EOF error encountered.
func (r *Reader) ReadAll() (records [][]string, err error) {
	for {
		record, err := r.Read()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		if r.ReuseRecord {
			record = append([]string(nil), record...)
		}
		records = append(records, record)
	}
}

// All returns an iterator over the remaining rows. Iteration stops after the
// first error, which is yielded with a nil row.
func (r *Reader) All() iter.Seq2[[]string, error] {
	return func(yield func([]string, error) bool) {
		for {
			record, err := r.Read()
			if err == io.EOF {
				return
			}
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(record, nil) {
				return
			}
		}
	}
}

// buildRecord materialises the parsed row, respecting ReuseRecord and FieldsPerRecord.
func (r *Reader) buildRecord(startLine int) ([]string, error) {
	if r.ReuseRecord {
		r.record = r.parser.record(r.record)
	} else {
		r.record = r.parser.record(nil)
	}

	if r.FieldsPerRecord > 0 && len(r.record) != r.FieldsPerRecord {
		return r.record, &FieldCountError{Line: startLine, Expected: r.FieldsPerRecord, Got: len(r.record)}
	}
	return r.record, nil
}

func (r *Reader) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return r.Logger
}

func isBareTerminator(text string) bool {
	switch text {
	case "\n", "\r", "\r\n", "\u2028", "\u2029", "\u0085":
		return true
	}
	return false
}
