// 18 Oct 2026

package phylip

import "fmt"

// Kind says what sort of thing went wrong while parsing.
type Kind uint8

const (
	Syntax          Kind = iota + 1 // wrong number of sequences, short sequence
	Format                          // header could not be read
	LongSeq                         // more data than the header allows
	NonAligned                      // rows of an interleaved block differ in width
	IllegalChar                     // printable but not allowed by the table
	UnprintableChar                 // control or high byte not allowed by the table
	Length                          // interleaved blocks do not add up to the header length
	IO                              // the reader failed
)

var kindNames = [...]string{
	Syntax:          "syntax",
	Format:          "format",
	LongSeq:         "long sequence",
	NonAligned:      "non-aligned",
	IllegalChar:     "illegal character",
	UnprintableChar: "unprintable character",
	Length:          "length",
	IO:              "i/o",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ParseError is what the parsers return when the input is bad.
// Line is the physical line number when the error was found.
// Taxon counts from 1 and is zero if the error is not about one taxon.
// Err is set for IO errors and holds what the reader said.
type ParseError struct {
	Kind  Kind
	Msg   string
	Line  int64
	Taxon int
	Err   error
}

func (e *ParseError) Error() string {
	msg := e.Msg
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, msg)
	}
	return msg
}

func (e *ParseError) Unwrap() error { return e.Err }

// fail builds a ParseError at the current line.
func (c *Cursor) fail(kind Kind, taxon int, format string, args ...any) *ParseError {
	return &ParseError{
		Kind:  kind,
		Msg:   fmt.Sprintf(format, args...),
		Line:  c.lineno,
		Taxon: taxon,
	}
}
