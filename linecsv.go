// # LineCSV: A Line-Oriented Streaming CSV Reader for Go
//
// LineCSV turns a stream of text into rows of fields one line at a time. It understands quoted fields that contain delimiters or span several lines, doubled-quote and backslash-style escapes, and six line terminators: \n, \r\n, \r, U+2028, U+2029 and U+0085.
//
// # Features
//
// - Pull-based `Reader` with a read-only `Dialect` (delimiter, optional quote, optional escape).
// - `HeaderReader` that treats the first row as field names, rejects duplicate names, and keys every later row by them.
// - Structured errors: `MalformedInputError`, `DuplicateHeaderError`, `FieldCountError` and `ParseError`, each matching a sentinel through `errors.Is`.
// - Optional strict mode that rejects stray quotes instead of keeping them as content.
// - Charset decoding via `NewDecodingReader`, backed by golang.org/x/text.
// - Range-over-func iterators (`Reader.All`, `HeaderReader.All`) next to the classic `Read`/`ReadAll` pair.
//
// # Getting Started
//
//	r := linecsv.NewReader(strings.NewReader("a,b\n1,2\n"), nil)
//	for row, err := range r.All() {
//		if err != nil {
//			return err
//		}
//		fmt.Println(row)
//	}
//
// Rows spanning several lines are reparsed from the start of the row each time a line is added. A Reader must not be shared between goroutines.
package linecsv
