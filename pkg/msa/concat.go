// 18 Oct 2026

package msa

import (
	"bytes"
	"fmt"

	"github.com/pkg/errors"

	. "github.com/xflouris/bpp-tools/pkg/common"
)

// ConcatError says why loci could not be glued together.
// Locus is counted from 1 and is zero if no single locus is to blame.
type ConcatError struct {
	Locus int
	Msg   string
}

func (e *ConcatError) Error() string {
	if e.Locus > 0 {
		return fmt.Sprintf("alignment %d: %s", e.Locus, e.Msg)
	}
	return e.Msg
}

// Concat joins loci end to end into one alignment with exactly ntaxa
// rows. Rows are matched by exact label. The union of labels, in the
// order they are first seen, gives the rows of the result. Where a
// taxon is absent from a locus, its part of the row is filled with
// the missing character.
func Concat(loci []*Alignment, ntaxa int) (*Alignment, error) {
	var labels []string
	total := 0
	for i, l := range loci {
		if l.Count() > ntaxa {
			return nil, &ConcatError{i + 1, fmt.Sprintf("more than %d sequences", ntaxa)}
		}
		if d := l.DupLabels(); len(d) > 0 {
			return nil, &ConcatError{i + 1, fmt.Sprintf("label %s appears more than once", d[0])}
		}
		for _, t := range l.taxa {
			if !contains(labels, t.label) {
				if len(labels) == ntaxa {
					return nil, &ConcatError{0, fmt.Sprintf("more than %d sequences in full alignment", ntaxa)}
				}
				labels = append(labels, t.label)
			}
		}
		total += l.Length
	}
	if len(labels) != ntaxa {
		return nil, &ConcatError{0, fmt.Sprintf("only %d sequences in alignments, need %d", len(labels), ntaxa)}
	}

	c := New(ntaxa, total)
	if len(loci) > 0 {
		c.DType = loci[0].DType
	}
	for m, lab := range labels {
		c.taxa[m].label = lab
	}
	offset := 0
	for _, l := range loci {
		for m := range c.taxa {
			dst := c.taxa[m].data[offset : offset+l.Length]
			if j := l.Index(c.taxa[m].label); j == -1 {
				copy(dst, bytes.Repeat([]byte{MissingChar}, l.Length))
			} else {
				copy(dst, l.taxa[j].data)
			}
		}
		offset += l.Length
	}
	return c, nil
}

func contains(ss []string, s string) bool {
	for _, x := range ss {
		if x == s {
			return true
		}
	}
	return false
}

// Reorder puts the taxa in the order given by labels. Every label must
// be present and the number of labels must match the number of taxa.
func (a *Alignment) Reorder(labels []string) error {
	if len(labels) != len(a.taxa) {
		return errors.Errorf("have %d taxa but %d labels given", len(a.taxa), len(labels))
	}
	taxa := make([]taxon, len(labels))
	for i, lab := range labels {
		j := a.Index(lab)
		if j == -1 {
			return errors.Errorf("taxon %s not found in alignment", lab)
		}
		taxa[i] = a.taxa[j]
	}
	if d := (&Alignment{taxa: taxa}).DupLabels(); len(d) > 0 {
		return errors.Errorf("taxon %s given twice", d[0])
	}
	a.taxa = taxa
	return nil
}
