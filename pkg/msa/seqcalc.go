// 18 Oct 2026
// Simple sums over an alignment. Counting symbols per site
// comes from the old seqgrp code.

package msa

import (
	"math"

	"github.com/andrew-torda/matrix"

	"github.com/xflouris/bpp-tools/pkg/chrmap"
)

const aaOrder = "ARNDCQEGHILKMFPSTWYV"

// Usage counts how many of each symbol appear at each site.
// counts.Mat looks like [number_of_symbols][length]. revmap[i] is the
// symbol counted in row i. Symbols are in byte order.
func (a *Alignment) Usage() (counts *matrix.FMatrix2d, revmap []byte) {
	var used [256]bool
	for _, t := range a.taxa {
		for _, c := range t.data {
			used[c] = true
		}
	}
	var mapping [256]uint8
	for i, u := range used {
		if u {
			mapping[i] = uint8(len(revmap))
			revmap = append(revmap, byte(i))
		}
	}
	counts = matrix.NewFMatrix2d(len(revmap), a.Length)
	for _, t := range a.taxa {
		for i, c := range t.data {
			counts.Mat[mapping[c]][i]++
		}
	}
	return counts, revmap
}

// BaseFreqs fills in and returns Freqs. For DNA there are four
// frequencies in ACGT order; an ambiguity code is shared evenly among
// the bases it could be, so N adds a quarter to each. For proteins there
// are twenty, in the usual ARNDCQEGHILKMFPSTWYV order, and anything else
// is ignored. If nothing is counted, all frequencies are equal.
func (a *Alignment) BaseFreqs() []float64 {
	var f []float64
	if a.DType == AA {
		f = make([]float64, len(aaOrder))
		var ndx [256]int
		for i := range ndx {
			ndx[i] = -1
		}
		for i, c := range []byte(aaOrder) {
			ndx[c], ndx[c+'a'-'A'] = i, i
		}
		for _, t := range a.taxa {
			for _, c := range t.data {
				if j := ndx[c]; j >= 0 {
					f[j]++
				}
			}
		}
	} else {
		f = make([]float64, 4)
		for _, t := range a.taxa {
			for _, c := range t.data {
				code := chrmap.NTCode[c]
				if code == 0 {
					continue
				}
				bases := chrmap.Bases(code)
				w := 1 / float64(len(bases))
				for _, b := range bases {
					f[b] += w
				}
			}
		}
	}
	normalise(f)
	a.Freqs = f
	return f
}

func normalise(f []float64) {
	var total float64
	for _, x := range f {
		total += x
	}
	if total == 0 {
		for i := range f {
			f[i] = 1 / float64(len(f))
		}
		return
	}
	for i := range f {
		f[i] /= total
	}
}

// SitePatterns collapses identical columns. It returns a new alignment
// with one column per distinct pattern, in order of first appearance,
// and the number of times each pattern was seen.
func (a *Alignment) SitePatterns() (*Alignment, []int) {
	seen := make(map[string]int)
	col := make([]byte, len(a.taxa))
	var first []int
	var weights []int
	for i := 0; i < a.Length; i++ {
		for k, t := range a.taxa {
			col[k] = t.data[i]
		}
		if j, ok := seen[string(col)]; ok {
			weights[j]++
			continue
		}
		seen[string(col)] = len(first)
		first = append(first, i)
		weights = append(weights, 1)
	}
	p := New(len(a.taxa), len(first))
	p.DType, p.OrigLength = a.DType, a.Length
	for k, t := range a.taxa {
		p.taxa[k].label = t.label
		for j, i := range first {
			p.taxa[k].data[j] = t.data[i]
		}
	}
	return p, weights
}

// GapFrac returns the fraction of gap characters at each site.
func (a *Alignment) GapFrac() []float32 {
	r := make([]float32, a.Length)
	if len(a.taxa) == 0 {
		return r
	}
	for _, t := range a.taxa {
		for i, c := range t.data {
			if c == '-' {
				r[i]++
			}
		}
	}
	n := float32(len(a.taxa))
	for i := range r {
		r[i] /= n
	}
	return r
}

// Entropy is the Shannon entropy of each site, from the counts made by
// Usage. Gaps are counted as a symbol like any other. The log base is
// the number of different symbols, so a result of 1 means maximally mixed.
func (a *Alignment) Entropy() []float32 {
	counts, revmap := a.Usage()
	r := make([]float32, a.Length)
	if len(revmap) < 2 || len(a.taxa) == 0 {
		return r
	}
	logfac := 1.0 / math.Log(float64(len(revmap)))
	n := float64(len(a.taxa))
	for i := 0; i < a.Length; i++ {
		var total float64
		for _, row := range counts.Mat {
			if row[i] == 0 {
				continue
			}
			f := float64(row[i]) / n
			total -= f * math.Log(f) * logfac
		}
		r[i] = float32(total)
	}
	return r
}
