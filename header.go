package linecsv

import (
	"io"
	"iter"
)

// HeaderReader treats the first row of a Reader as field names and returns
// every later row keyed by those names.
type HeaderReader struct {
	r *Reader

	header []string
	index  map[string]int
	err    error
	read   bool
}

// NewHeaderReader wraps r. The header is read on the first call to Header or Read.
func NewHeaderReader(r *Reader) *HeaderReader {
	if r == nil {
		panic("linecsv: header reader source cannot be nil")
	}
	return &HeaderReader{r: r}
}

// Header returns the field names. An empty source yields io.EOF; a repeated
// name yields a *DuplicateHeaderError. Both are returned on every later call.
func (h *HeaderReader) Header() ([]string, error) {
	if !h.read {
		h.read = true
		h.err = h.readHeader()
	}
	return h.header, h.err
}

func (h *HeaderReader) readHeader() error {
	row, err := h.r.Read()
	if err != nil {
		return err
	}

	header := append([]string(nil), row...)
	index := make(map[string]int, len(header))
	for i, name := range header {
		if _, ok := index[name]; ok {
			return &DuplicateHeaderError{Name: name, Column: i + 1}
		}
		index[name] = i
	}
	h.header = header
	h.index = index
	return nil
}

// Read returns the next data row. A row whose width differs from the header
// is reported with a *FieldCountError and an empty Record; the following
// call moves on to the next row.
func (h *HeaderReader) Read() (Record, error) {
	header, err := h.Header()
	if err != nil {
		return Record{}, err
	}

	row, err := h.r.Read()
	if err != nil {
		return Record{}, err
	}
	if len(row) != len(header) {
		return Record{}, &FieldCountError{Line: h.r.rowLine, Expected: len(header), Got: len(row)}
	}
	if h.r.ReuseRecord {
		row = append([]string(nil), row...)
	}
	return Record{header: header, index: h.index, values: row}, nil
}

// ReadAll collects the remaining records, stopping at the first error.
func (h *HeaderReader) ReadAll() ([]Record, error) {
	var records []Record
	for {
		rec, err := h.Read()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
}

// ReadAllMaps collects the remaining records as name to value maps.
func (h *HeaderReader) ReadAllMaps() ([]map[string]string, error) {
	records, err := h.ReadAll()
	if err != nil {
		return nil, err
	}
	out := make([]map[string]string, len(records))
	for i, rec := range records {
		out[i] = rec.Map()
	}
	return out, nil
}

// All returns an iterator over the remaining records. Iteration stops after
// the first error.
func (h *HeaderReader) All() iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		for {
			rec, err := h.Read()
			if err == io.EOF {
				return
			}
			if err != nil {
				yield(Record{}, err)
				return
			}
			if !yield(rec, nil) {
				return
			}
		}
	}
}

// Record is one data row associated with the header. Names keep header order.
type Record struct {
	header []string
	index  map[string]int
	values []string
}

// Get returns the value stored under name.
func (r Record) Get(name string) (string, bool) {
	i, ok := r.index[name]
	if !ok {
		return "", false
	}
	return r.values[i], true
}

// Header returns the field names in header order.
func (r Record) Header() []string { return r.header }

// Values returns the field values in header order.
func (r Record) Values() []string { return r.values }

// Len returns the number of fields.
func (r Record) Len() int { return len(r.values) }

// Map returns a fresh name to value map.
func (r Record) Map() map[string]string {
	m := make(map[string]string, len(r.header))
	for i, name := range r.header {
		m[name] = r.values[i]
	}
	return m
}
