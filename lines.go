package linecsv

import (
	"bufio"
	"io"
	"strings"
	"unicode/utf8"
)

const (
	lineSeparator      = '\u2028'
	paragraphSeparator = '\u2029'
	nextLine           = '\u0085'
)

// isTerminator reports whether r ends a line on its own. '\r' is included;
// callers handle the "\r\n" pair themselves.
func isTerminator(r rune) bool {
	switch r {
	case '\n', '\r', lineSeparator, paragraphSeparator, nextLine:
		return true
	}
	return false
}

// line is one terminator-delimited fragment of the source. The terminator,
// when present, is kept at the end of text.
type line struct {
	text       string
	terminated bool
}

// lineReader splits a character stream into lines. It is forward-only; a new
// lineReader over a fresh stream is the only way to start over.
type lineReader struct {
	src *bufio.Reader
	sb  strings.Builder
}

func newLineReader(r io.Reader) *lineReader {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReaderSize(r, defaultBufferSize)
	}
	return &lineReader{src: br}
}

// next returns the next line, or io.EOF once the stream is exhausted. A
// stream ending exactly on a terminator does not produce an empty last line.
func (l *lineReader) next() (line, error) {
	l.sb.Reset()
	for {
		c, size, err := l.src.ReadRune()
		if err != nil {
			if err == io.EOF && l.sb.Len() > 0 {
				return line{text: l.sb.String()}, nil
			}
			return line{}, err
		}

		if c == utf8.RuneError && size == 1 {
			// Keep undecodable bytes as they are.
			_ = l.src.UnreadRune()
			b, _ := l.src.ReadByte()
			l.sb.WriteByte(b)
			continue
		}

		l.sb.WriteRune(c)
		switch c {
		case '\n', lineSeparator, paragraphSeparator, nextLine:
			return line{text: l.sb.String(), terminated: true}, nil
		case '\r':
			peek, _, err := l.src.ReadRune()
			switch {
			case err == nil && peek == '\n':
				l.sb.WriteByte('\n')
			case err == nil:
				_ = l.src.UnreadRune()
			case err != io.EOF:
				return line{}, err
			}
			return line{text: l.sb.String(), terminated: true}, nil
		}
	}
}
