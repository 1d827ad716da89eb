package linecsv

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHeaderReader(input string) *HeaderReader {
	return NewHeaderReader(NewReader(strings.NewReader(input), nil))
}

func TestHeaderReaderRecords(t *testing.T) {
	t.Parallel()

	h := newHeaderReader("name,age,city\nAlice,30,\"New York, NY\"\nBob,25,\"Los\nAngeles\"\n")

	header, err := h.Header()
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "age", "city"}, header)

	rec, err := h.Read()
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "age", "city"}, rec.Header())
	assert.Equal(t, []string{"Alice", "30", "New York, NY"}, rec.Values())
	assert.Equal(t, 3, rec.Len())

	city, ok := rec.Get("city")
	assert.True(t, ok)
	assert.Equal(t, "New York, NY", city)
	_, ok = rec.Get("zip")
	assert.False(t, ok)

	rec, err = h.Read()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"name": "Bob", "age": "25", "city": "Los\nAngeles"}, rec.Map())

	_, err = h.Read()
	assert.ErrorIs(t, err, io.EOF)
}

func TestHeaderReaderDuplicate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		dup    string
		column int
	}{
		{name: "adjacent", input: "a,a,b\n1,2,3\n", dup: "a", column: 2},
		{name: "firstFoundLeftToRight", input: "x,y,y,x\n", dup: "y", column: 3},
		{name: "emptyNames", input: ",b,\n", dup: "", column: 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			h := newHeaderReader(tc.input)
			_, err := h.Header()
			require.ErrorIs(t, err, ErrDuplicateHeader)

			var derr *DuplicateHeaderError
			require.ErrorAs(t, err, &derr)
			assert.Equal(t, tc.dup, derr.Name)
			assert.Equal(t, tc.column, derr.Column)

			_, err = h.Read()
			assert.ErrorIs(t, err, ErrDuplicateHeader, "duplicate header is reported on every call")
		})
	}
}

func TestHeaderReaderFieldCountMismatch(t *testing.T) {
	t.Parallel()

	h := newHeaderReader("a,b,c\n1,2\n4,5,6\n")

	_, err := h.Read()
	require.ErrorIs(t, err, ErrFieldCount)

	var ferr *FieldCountError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, 3, ferr.Expected)
	assert.Equal(t, 2, ferr.Got)
	assert.Equal(t, 2, ferr.Line)

	rec, err := h.Read()
	require.NoError(t, err)
	assert.Equal(t, []string{"4", "5", "6"}, rec.Values())
}

func TestHeaderReaderEmptyInput(t *testing.T) {
	t.Parallel()

	h := newHeaderReader("")
	_, err := h.Header()
	assert.ErrorIs(t, err, io.EOF)

	_, err = h.Read()
	assert.ErrorIs(t, err, io.EOF)

	maps, err := newHeaderReader("").ReadAllMaps()
	require.NoError(t, err)
	assert.Empty(t, maps)
}

func TestHeaderReaderHeaderOnly(t *testing.T) {
	t.Parallel()

	records, err := newHeaderReader("a,b\n").ReadAll()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestHeaderReaderReuseRecord(t *testing.T) {
	t.Parallel()

	r := NewReader(strings.NewReader("k,v\n1,one\n2,two\n"), nil)
	r.ReuseRecord = true

	records, err := NewHeaderReader(r).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"1", "one"}, records[0].Values())
	assert.Equal(t, []string{"2", "two"}, records[1].Values())
	assert.Equal(t, []string{"k", "v"}, records[1].Header())
}

func TestHeaderReaderReadAllMaps(t *testing.T) {
	t.Parallel()

	maps, err := newHeaderReader("a,b\n1,2\n3,4").ReadAllMaps()
	require.NoError(t, err)
	assert.Equal(t, []map[string]string{
		{"a": "1", "b": "2"},
		{"a": "3", "b": "4"},
	}, maps)

	_, err = newHeaderReader("a,b\n1,2\n3\n").ReadAllMaps()
	assert.ErrorIs(t, err, ErrFieldCount)
}

func TestHeaderReaderAll(t *testing.T) {
	t.Parallel()

	var names []string
	for rec, err := range newHeaderReader("id,name\n1,ann\n2,bo\n").All() {
		require.NoError(t, err)
		name, _ := rec.Get("name")
		names = append(names, name)
	}
	assert.Equal(t, []string{"ann", "bo"}, names)

	var errs []error
	for _, err := range newHeaderReader("id\n1,2\n3\n").All() {
		if err != nil {
			errs = append(errs, err)
		}
	}
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], ErrFieldCount)
}

func TestNewHeaderReaderNilPanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { NewHeaderReader(nil) })
}
