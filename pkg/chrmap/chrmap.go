// 18 Oct 2026

// Package chrmap has the byte tables used when reading alignments.
// A Table says what to do with each input byte while parsing sequence
// data. A Map gives each byte a value, like the 4-bit nucleotide code or
// a flag saying the character means "missing".
// Everything is indexed directly by the raw byte, so there are no
// lookups beyond a single array access.
package chrmap

import (
	"fmt"

	"github.com/pkg/errors"
)

// Class is the outcome of looking a byte up in a Table.
type Class uint8

const (
	Strip      Class = iota // whitespace, counted and thrown away
	Accept                  // sequence data, copied verbatim
	Fatal                   // may never appear in sequence data
	SilentSkip              // dropped without being counted
)

func (c Class) String() string {
	switch c {
	case Strip:
		return "strip"
	case Accept:
		return "accept"
	case Fatal:
		return "fatal"
	case SilentSkip:
		return "silentskip"
	}
	return fmt.Sprintf("Class(%d)", uint8(c))
}

// Table classifies every possible input byte.
type Table [256]Class

// Classify is the whole classifier. It is table driven and knows
// nothing about alphabets.
func Classify(t *Table, c byte) Class { return t[c] }

const (
	white     = " \t\v\f\n"
	lineEnds  = "\r"
	gapsEtc   = "-?.*~"
	ntSyms    = "ACGTURYSWKMBDHVNXO"
	aaSyms    = "ACDEFGHIKLMNPQRSTVWYBZJXUO"
	ntExtra   = "-?."
	aaExtra   = "*-?."
	upperToLo = 'a' - 'A'
)

// mkTable starts with everything fatal and then opens up the
// characters we are told about. Letters are added in both cases.
func mkTable(accept, strip, silent string) Table {
	var t Table
	for i := range t {
		t[i] = Fatal
	}
	for _, c := range []byte(accept) {
		t[c] = Accept
		if 'A' <= c && c <= 'Z' {
			t[c+upperToLo] = Accept
		}
	}
	for _, c := range []byte(strip) {
		t[c] = Strip
	}
	for _, c := range []byte(silent) {
		t[c] = SilentSkip
	}
	return t
}

func alphabet() string {
	b := make([]byte, 0, 26)
	for c := byte('A'); c <= 'Z'; c++ {
		b = append(b, c)
	}
	return string(b)
}

var (
	// Fasta is the lenient table used by all the commands. Any letter
	// and the usual gap and missing symbols are allowed.
	Fasta = mkTable(alphabet()+gapsEtc, white, lineEnds)
	// NT only allows IUPAC nucleotide codes.
	NT = mkTable(ntSyms+ntExtra, white, lineEnds)
	// AA only allows amino acid codes.
	AA = mkTable(aaSyms+aaExtra, white, lineEnds)
)

// ByName returns one of the tables by the name used in the config
// file and on the command line.
func ByName(name string) (*Table, error) {
	switch name {
	case "", "fasta":
		return &Fasta, nil
	case "nt", "dna":
		return &NT, nil
	case "aa", "protein":
		return &AA, nil
	}
	return nil, errors.Errorf("unknown alphabet \"%s\", want fasta, nt or aa", name)
}
