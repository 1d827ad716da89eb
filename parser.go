package linecsv

import (
	"strings"
	"unicode/utf8"
)

type parseState uint8

const (
	stateFieldStart parseState = iota
	stateUnquoted
	stateQuoted
	// stateQuotePendingClose follows a quote seen inside a quoted field: it is
	// either the first half of a doubled quote or the closing quote.
	stateQuotePendingClose
	// stateQuoteClosed holds content trailing a closing quote until the next
	// delimiter or terminator.
	stateQuoteClosed
)

// rowParser tokenizes one row out of raw text. It keeps no state between
// calls to parse beyond scratch buffers; every call starts from the first
// character of text.
type rowParser struct {
	dialect *Dialect

	dataBuf     []byte
	fieldBounds []int
}

func newRowParser(d *Dialect) *rowParser {
	return &rowParser{
		dialect:     d,
		dataBuf:     make([]byte, 0, 512),
		fieldBounds: make([]int, 0, 32),
	}
}

// parseRow tokenizes a row from text. It reports false when text ends inside
// a quoted field and more input must be appended before trying again.
func parseRow(text string, d *Dialect, final bool) ([]string, bool, error) {
	p := newRowParser(d)
	complete, err := p.parse(text, final)
	if err != nil || !complete {
		return nil, complete, err
	}
	return p.record(nil), true, nil
}

// parse runs the state machine over text. final tells the parser no more text
// can follow, so a quote at the very end closes its field. On a complete row
// the fields are available through record.
//
// A returned *ParseError carries a line offset relative to the start of text.
func (p *rowParser) parse(text string, final bool) (bool, error) {
	d := p.dialect
	p.dataBuf = p.dataBuf[:0]
	p.fieldBounds = p.fieldBounds[:0]

	state := stateFieldStart
	fieldStart := 0
	line, column := 0, 0

	for i := 0; i < len(text); {
		c, size := utf8.DecodeRuneInString(text[i:])
		raw := text[i : i+size]
		i += size
		column++

		switch state {
		case stateQuoted:
			switch {
			case d.escaping() && c == d.Escape:
				if i >= len(text) {
					return false, nil
				}
				nc, nsize := utf8.DecodeRuneInString(text[i:])
				p.dataBuf = append(p.dataBuf, text[i:i+nsize]...)
				i += nsize
				column++
				if endsLine(nc, text[i:]) {
					line++
					column = 0
				}
			case c == d.Quote:
				state = stateQuotePendingClose
			default:
				p.dataBuf = append(p.dataBuf, raw...)
				if endsLine(c, text[i:]) {
					line++
					column = 0
				}
			}
			continue

		case stateQuotePendingClose:
			if d.doubledQuote() && c == d.Quote {
				p.dataBuf = append(p.dataBuf, raw...)
				state = stateQuoted
				continue
			}
			state = stateQuoteClosed

		case stateFieldStart:
			if d.quoting() && c == d.Quote {
				state = stateQuoted
				continue
			}
		}

		switch {
		case c == d.Delimiter:
			p.fieldBounds = append(p.fieldBounds, fieldStart, len(p.dataBuf))
			fieldStart = len(p.dataBuf)
			state = stateFieldStart
		case isTerminator(c):
			// The row is complete; anything after the terminator belongs to
			// the next row.
			p.fieldBounds = append(p.fieldBounds, fieldStart, len(p.dataBuf))
			return true, nil
		default:
			if d.Strict {
				if state == stateQuoteClosed {
					return false, &ParseError{Line: line, Column: column, Err: ErrTrailingQuote}
				}
				if d.quoting() && c == d.Quote {
					return false, &ParseError{Line: line, Column: column, Err: ErrBareQuote}
				}
			}
			if state == stateFieldStart {
				state = stateUnquoted
			}
			p.dataBuf = append(p.dataBuf, raw...)
		}
	}

	switch state {
	case stateQuoted:
		return false, nil
	case stateQuotePendingClose:
		if !final {
			return false, nil
		}
	}
	p.fieldBounds = append(p.fieldBounds, fieldStart, len(p.dataBuf))
	return true, nil
}

// record maps the accumulated fieldBounds onto the data buffer. dst is reused
// when it has enough capacity.
func (p *rowParser) record(dst []string) []string {
	fieldCount := len(p.fieldBounds) / 2
	if cap(dst) < fieldCount {
		dst = make([]string, fieldCount)
	}
	dst = dst[:fieldCount]

	recordStr := string(p.dataBuf)
	for i := 0; i < fieldCount; i++ {
		dst[i] = recordStr[p.fieldBounds[2*i]:p.fieldBounds[2*i+1]]
	}
	return dst
}

// endsLine reports whether c, followed by rest, completes a line. A '\r'
// directly followed by '\n' does not; the '\n' does.
func endsLine(c rune, rest string) bool {
	if c == '\r' {
		return !strings.HasPrefix(rest, "\n")
	}
	return isTerminator(c)
}
