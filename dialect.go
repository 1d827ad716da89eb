package linecsv

import "fmt"

// Dialect describes how a CSV text is tokenized. It is copied into a Reader
// at construction and never modified afterwards.
type Dialect struct {
	// Delimiter separates fields within a row. Default is ','.
	Delimiter rune
	// Quote wraps fields that contain delimiters or line breaks. Zero disables quoting.
	Quote rune
	// Escape embeds a literal quote inside a quoted field. Zero disables escapes;
	// a value equal to Quote selects the doubled-quote convention.
	Escape rune
	// Strict rejects quotes inside unquoted fields and content after a closing quote.
	Strict bool
}

// DefaultDialect returns the comma-separated, double-quoted dialect with doubled-quote escapes.
func DefaultDialect() Dialect {
	return Dialect{
		Delimiter: ',',
		Quote:     '"',
		Escape:    '"',
	}
}

// Validate reports whether d can be used for parsing.
func (d Dialect) Validate() error {
	switch {
	case d.Delimiter == 0:
		return fmt.Errorf("%w: delimiter is not set", ErrInvalidDialect)
	case isTerminator(d.Delimiter):
		return fmt.Errorf("%w: delimiter %q is a line terminator", ErrInvalidDialect, d.Delimiter)
	case d.Quote != 0 && isTerminator(d.Quote):
		return fmt.Errorf("%w: quote %q is a line terminator", ErrInvalidDialect, d.Quote)
	case d.Escape != 0 && isTerminator(d.Escape):
		return fmt.Errorf("%w: escape %q is a line terminator", ErrInvalidDialect, d.Escape)
	case d.Delimiter == d.Quote:
		return fmt.Errorf("%w: delimiter and quote are both %q", ErrInvalidDialect, d.Delimiter)
	case d.Delimiter == d.Escape:
		return fmt.Errorf("%w: delimiter and escape are both %q", ErrInvalidDialect, d.Delimiter)
	case d.Escape != 0 && d.Quote == 0:
		return fmt.Errorf("%w: escape %q requires a quote character", ErrInvalidDialect, d.Escape)
	}
	return nil
}

func (d *Dialect) quoting() bool { return d.Quote != 0 }

// doubledQuote reports whether a repeated quote inside a quoted field is a literal quote.
func (d *Dialect) doubledQuote() bool { return d.Escape != 0 && d.Escape == d.Quote }

// escaping reports whether a distinct escape character is active.
func (d *Dialect) escaping() bool { return d.Escape != 0 && d.Escape != d.Quote }
