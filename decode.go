package linecsv

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// NewDecodingReader returns a reader that decodes r from charset into UTF-8.
// Names follow the WHATWG encoding labels ("utf-8", "latin1", "windows-1252",
// "shift_jis", "utf-16le", ...). An empty name means UTF-8. A leading byte
// order mark is removed and, for UTF-16 input, selects the byte order.
// Invalid input sequences become U+FFFD.
func NewDecodingReader(r io.Reader, charset string) (io.Reader, error) {
	if r == nil {
		panic("linecsv: decoding source cannot be nil")
	}

	enc, err := lookupCharset(charset)
	if err != nil {
		return nil, err
	}
	return transform.NewReader(r, unicode.BOMOverride(enc.NewDecoder())), nil
}

func lookupCharset(name string) (encoding.Encoding, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return unicode.UTF8, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCharset, name)
	}
	return enc, nil
}
