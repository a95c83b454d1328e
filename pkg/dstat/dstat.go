// 18 Oct 2026

// Package dstat does the ABBA-BABA test for introgression. There are
// four taxa on the tree (((P1,P2),P3),O). A site where P2 and P3 share
// a base, different from P1 and O, is an ABBA site. A site where P1 and
// P3 share one is BABA. D = (ABBA - BABA) / (ABBA + BABA).
//
// Ambiguity codes are handled by looking at every way the four bases
// could be resolved. A site contributes the fraction of resolutions
// that are ABBA (or BABA). Every possible site is scored once, up
// front, into a table with 16 bits of index, four from each taxon.
package dstat

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/andrew-torda/matrix"
	"github.com/pkg/errors"

	"github.com/xflouris/bpp-tools/pkg/chrmap"
	"github.com/xflouris/bpp-tools/pkg/msa"
)

const (
	rowABBA = iota
	rowBABA
	rowPats
	nRow
)

const tableSize = 1 << 16

// Table has the precomputed ABBA and BABA scores for every site.
type Table struct {
	m *matrix.FMatrix2d
}

// siteScore tries every resolution of the four codes into bases.
func siteScore(s [4]uint32) (abba, baba float32, pats int) {
	var nabba, nbaba int
	for i0 := 0; i0 < 4; i0++ {
		for i1 := 0; i1 < 4; i1++ {
			for i2 := 0; i2 < 4; i2++ {
				for i3 := 0; i3 < 4; i3++ {
					if s[0]>>i0&1 == 0 || s[1]>>i1&1 == 0 || s[2]>>i2&1 == 0 || s[3]>>i3&1 == 0 {
						continue
					}
					pats++
					if i0 == i3 && i1 == i2 && i0 != i1 {
						nabba++
					}
					if i0 == i2 && i1 == i3 && i0 != i1 {
						nbaba++
					}
				}
			}
		}
	}
	if pats == 0 {
		return 0, 0, 0
	}
	return float32(nabba) / float32(pats), float32(nbaba) / float32(pats), pats
}

func index(s [4]uint32) int {
	return int(s[0] | s[1]<<4 | s[2]<<8 | s[3]<<12)
}

// NewTable scores every combination of four non-empty codes.
// Combinations with an empty code stay at zero.
func NewTable() *Table {
	t := &Table{m: matrix.NewFMatrix2d(nRow, tableSize)}
	var s [4]uint32
	for s[0] = 1; s[0] <= chrmap.AnyNt; s[0]++ {
		for s[1] = 1; s[1] <= chrmap.AnyNt; s[1]++ {
			for s[2] = 1; s[2] <= chrmap.AnyNt; s[2]++ {
				for s[3] = 1; s[3] <= chrmap.AnyNt; s[3]++ {
					abba, baba, pats := siteScore(s)
					i := index(s)
					t.m.Mat[rowABBA][i] = abba
					t.m.Mat[rowBABA][i] = baba
					t.m.Mat[rowPats][i] = float32(pats)
				}
			}
		}
	}
	return t
}

// Site looks up the scores for one column, given the four characters
// in the order P1, P2, P3, O. pats is the number of ways the column can
// be resolved into plain bases.
func (t *Table) Site(c0, c1, c2, c3 byte) (abba, baba float32, pats int) {
	i := index([4]uint32{chrmap.NTCode[c0], chrmap.NTCode[c1], chrmap.NTCode[c2], chrmap.NTCode[c3]})
	return t.m.Mat[rowABBA][i], t.m.Mat[rowBABA][i], int(t.m.Mat[rowPats][i])
}

// Result is what comes out of the test.
type Result struct {
	Taxa        [4]string // P1, P2, P3, O
	Sites       int       // columns looked at
	Informative int       // columns with some ABBA or BABA score
	ABBA, BABA  float64
	D           float64 // NaN if there are no informative sites
}

// Score adds up the site scores over an alignment of four taxa, which
// must be in the order P1, P2, P3, O.
func (t *Table) Score(a *msa.Alignment) (Result, error) {
	var r Result
	if a.Count() != 4 {
		return r, errors.Errorf("ABBA-BABA test requires exactly four taxa, have %d", a.Count())
	}
	if a.DType != msa.DNA {
		return r, errors.New("ABBA-BABA test needs nucleotide data")
	}
	for i := range r.Taxa {
		r.Taxa[i] = a.Label(i)
	}
	p1, p2, p3, o := a.Row(0), a.Row(1), a.Row(2), a.Row(3)
	for i := 0; i < a.Length; i++ {
		abba, baba, _ := t.Site(p1[i], p2[i], p3[i], o[i])
		if abba != 0 || baba != 0 {
			r.Informative++
		}
		r.ABBA += float64(abba)
		r.BABA += float64(baba)
	}
	r.Sites = a.Length
	r.D = math.NaN()
	if sum := r.ABBA + r.BABA; sum > 0 {
		r.D = (r.ABBA - r.BABA) / sum
	}
	return r, nil
}

// Split4 takes the comma separated taxa from the command line.
func Split4(s string) ([4]string, error) {
	var taxa [4]string
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return taxa, errors.New("ABBA-BABA test requires exactly four taxa")
	}
	for i, p := range parts {
		if p == "" {
			return taxa, errors.New("Erroneous format in --dstat (taxon missing)")
		}
		taxa[i] = p
	}
	return taxa, nil
}

// Run glues the loci together into one alignment of four taxa, puts
// the rows in the order of taxa and does the test.
func Run(loci []*msa.Alignment, taxa [4]string) (Result, error) {
	concat, err := msa.Concat(loci, 4)
	if err != nil {
		return Result{}, err
	}
	if err := concat.Reorder(taxa[:]); err != nil {
		return Result{}, errors.Wrap(err, "dstat")
	}
	return NewTable().Score(concat)
}

// Write prints the tree and the scores.
func (r Result) Write(w io.Writer) error {
	t := r.Taxa
	_, err := fmt.Fprintf(w, "Tree: (((%s,%s),%s),%s);\n"+
		"Testing introgression between %s and %s, and between %s and %s\n"+
		"sites: %d\ninformative: %d\nabba: %f\nbaba: %f\nD: %f\n",
		t[0], t[1], t[2], t[3], t[0], t[2], t[1], t[2],
		r.Sites, r.Informative, r.ABBA, r.BABA, r.D)
	return err
}
