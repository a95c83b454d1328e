// 18 Oct 2026
// Removing sites and taxa from an alignment.

package msa

import (
	"github.com/pkg/errors"

	"github.com/xflouris/bpp-tools/pkg/chrmap"
	. "github.com/xflouris/bpp-tools/pkg/common"
)

var (
	ErrAllAmbiguous = errors.New("cannot remove ambiguous sites, all sites are ambiguous")
	ErrAllMissing   = errors.New("cannot remove missing sequences, all sequences consist of missing data")
)

// StablePartition moves the elements of s for which keep(i) is true to
// the front, in their original order, and the rest behind them, also
// in order. i is always the element's original index. scratch is
// working space and may be nil. It returns the number kept.
func StablePartition[T any](s []T, keep func(i int) bool, scratch []T) int {
	scratch = scratch[:0]
	n := 0
	for i, x := range s {
		if keep(i) {
			s[n] = x
			n++
		} else {
			scratch = append(scratch, x)
		}
	}
	copy(s[n:], scratch)
	return n
}

// markAmbiguous says which columns have at least one byte with a
// non-zero entry in m.
func (a *Alignment) markAmbiguous(m *chrmap.Map) (amb []bool, n int) {
	amb = make([]bool, a.Length)
	for i := 0; i < a.Length; i++ {
		var code uint32
		for _, t := range a.taxa {
			code |= m[t.data[i]]
		}
		if code != 0 {
			amb[i] = true
			n++
		}
	}
	return amb, n
}

// CountAmbiguous counts the sites where some taxon has a character
// with a non-zero entry in m and stores the result in AmbSites.
// Protein alignments are not checked and give zero.
func (a *Alignment) CountAmbiguous(m *chrmap.Map) int {
	a.AmbSites = 0
	if a.DType == AA {
		return 0
	}
	_, a.AmbSites = a.markAmbiguous(m)
	return a.AmbSites
}

// RemoveAmbiguous moves all the unambiguous sites to the left, keeping
// their order, and cuts the alignment down to them. It returns the
// number of sites removed. If every site is ambiguous the alignment is
// left alone and ErrAllAmbiguous comes back.
func (a *Alignment) RemoveAmbiguous() (int, error) {
	amb, n := a.markAmbiguous(&chrmap.Amb)
	a.AmbSites = n
	if n == 0 {
		return 0, nil
	}
	if n == a.Length {
		return 0, ErrAllAmbiguous
	}
	a.dropSites(func(i int) bool { return !amb[i] })
	return n, nil
}

// dropSites partitions every row with keep and trims Length.
func (a *Alignment) dropSites(keep func(i int) bool) {
	scratch := make([]byte, 0, a.Length)
	newLen := a.Length
	for k := range a.taxa {
		newLen = StablePartition(a.taxa[k].data, keep, scratch)
	}
	for k := range a.taxa {
		a.taxa[k].data = a.taxa[k].data[:newLen]
	}
	a.Length = newLen
}

func allMissing(s []byte, m *chrmap.Map) bool {
	for _, c := range s {
		if m[c] == 0 {
			return false
		}
	}
	return true
}

// RemoveMissing drops the taxa whose data are nothing but missing
// characters. Surviving taxa keep their order. It returns how many went.
// If that would be all of them, nothing is changed and ErrAllMissing
// is returned.
func (a *Alignment) RemoveMissing() (int, error) {
	m := &chrmap.NTMissing
	if a.DType == AA {
		m = &chrmap.AAMissing
	}
	missing := make([]bool, len(a.taxa))
	n := 0
	for i, t := range a.taxa {
		if allMissing(t.data, m) {
			missing[i] = true
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	if n == len(a.taxa) {
		return 0, ErrAllMissing
	}
	k := StablePartition(a.taxa, func(i int) bool { return !missing[i] }, nil)
	for i := k; i < len(a.taxa); i++ {
		a.taxa[i] = taxon{}
	}
	a.taxa = a.taxa[:k]
	return n, nil
}

// Squash removes every column in which taxon ref has a gap. This is
// what you want if ref is a reference sequence and you only care about
// its sites. It returns the number of columns removed.
func (a *Alignment) Squash(ref int) (int, error) {
	if ref < 0 || ref >= len(a.taxa) {
		return 0, errors.Errorf("reference taxon %d out of range, have %d taxa", ref+1, len(a.taxa))
	}
	refseq := a.taxa[ref].data
	n := 0
	for _, c := range refseq {
		if c == GapChar {
			n++
		}
	}
	if n == a.Length {
		return 0, errors.Errorf("reference taxon %s is nothing but gaps", a.taxa[ref].label)
	}
	if n == 0 {
		return 0, nil
	}
	mask := make([]bool, a.Length)
	for i, c := range refseq {
		mask[i] = c != GapChar
	}
	a.dropSites(func(i int) bool { return mask[i] })
	return n, nil
}
