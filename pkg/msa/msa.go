// 18 Oct 2026

// Package msa holds one multiple sequence alignment (a locus) and the
// things we do to it after it has been read: trimming ambiguous sites,
// dropping taxa with no data, gluing loci together.
//
// Organisation. The parser knows the number of taxa and the length
// before it reads any sequence data, so New allocates one big lump and
// hands out rows that point into it. Rows are filled in place.
package msa

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// DataType says whether we have nucleotides or amino acids.
type DataType uint8

const (
	DNA DataType = iota // default, as in the parser
	AA
)

func (d DataType) String() string {
	if d == AA {
		return "aa"
	}
	return "dna"
}

// taxon is one row, a label and its data.
type taxon struct {
	label string
	data  []byte
}

// Alignment is one locus. Every row has exactly Length bytes.
type Alignment struct {
	taxa       []taxon
	Length     int       // current number of sites
	OrigLength int       // number of sites before any trimming
	AmbSites   int       // set by CountAmbiguous and RemoveAmbiguous
	DType      DataType  //
	Freqs      []float64 // optional base frequencies, see BaseFreqs
}

// New returns an alignment with count rows of length bytes each.
// Labels are empty until SetLabel is called.
func New(count, length int) *Alignment {
	a := &Alignment{
		taxa:       make([]taxon, count),
		Length:     length,
		OrigLength: length,
	}
	lump := make([]byte, count*length)
	for i := range a.taxa {
		a.taxa[i].data = lump[i*length : (i+1)*length : (i+1)*length]
	}
	return a
}

// FromStrings builds an alignment from labels and sequences.
// It is mostly for tests and for building alignments by hand.
func FromStrings(labels, seqs []string) (*Alignment, error) {
	if len(labels) != len(seqs) {
		return nil, errors.Errorf("%d labels but %d sequences", len(labels), len(seqs))
	}
	if len(seqs) == 0 {
		return nil, errors.New("no sequences")
	}
	a := New(len(seqs), len(seqs[0]))
	for i, s := range seqs {
		if len(s) != a.Length {
			return nil, errors.Errorf("sequence %d (%s) has length %d, but the first has %d",
				i+1, labels[i], len(s), a.Length)
		}
		a.SetLabel(i, labels[i])
		copy(a.Row(i), s)
	}
	return a, nil
}

// Count returns the number of taxa.
func (a *Alignment) Count() int { return len(a.taxa) }

// Label returns the label of taxon i.
func (a *Alignment) Label(i int) string { return a.taxa[i].label }

// SetLabel sets the label of taxon i.
func (a *Alignment) SetLabel(i int, s string) { a.taxa[i].label = s }

// Row returns the data of taxon i. It is not a copy.
func (a *Alignment) Row(i int) []byte { return a.taxa[i].data }

// Labels returns a copy of the labels, in order.
func (a *Alignment) Labels() []string {
	r := make([]string, len(a.taxa))
	for i, t := range a.taxa {
		r[i] = t.label
	}
	return r
}

// Index returns the position of the first taxon with exactly this label,
// or -1.
func (a *Alignment) Index(label string) int {
	for i, t := range a.taxa {
		if t.label == label {
			return i
		}
	}
	return -1
}

// DupLabels returns labels that appear more than once, in order of
// their second appearance.
func (a *Alignment) DupLabels() []string {
	seen := make(map[string]bool, len(a.taxa))
	var dups []string
	for _, t := range a.taxa {
		if seen[t.label] {
			dups = append(dups, t.label)
		}
		seen[t.label] = true
	}
	return dups
}

// Subset returns a deep copy of the taxa for which keep is true.
// The result may have no taxa at all.
func (a *Alignment) Subset(keep []bool) *Alignment {
	n := 0
	for i := range a.taxa {
		if keep[i] {
			n++
		}
	}
	b := New(n, a.Length)
	b.OrigLength, b.DType = a.OrigLength, a.DType
	k := 0
	for i, t := range a.taxa {
		if keep[i] {
			b.taxa[k].label = t.label
			copy(b.taxa[k].data, t.data)
			k++
		}
	}
	return b
}

// Clone is a deep copy.
func (a *Alignment) Clone() *Alignment {
	keep := make([]bool, len(a.taxa))
	for i := range keep {
		keep[i] = true
	}
	b := a.Subset(keep)
	b.AmbSites = a.AmbSites
	if a.Freqs != nil {
		b.Freqs = append([]float64(nil), a.Freqs...)
	}
	return b
}

// String is for debugging. One taxon per line.
func (a *Alignment) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d %d\n", a.Count(), a.Length)
	for _, t := range a.taxa {
		fmt.Fprintf(&sb, "%s %s\n", t.label, t.data)
	}
	return sb.String()
}
