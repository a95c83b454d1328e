// 18 Oct 2026

package phylip

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/xflouris/bpp-tools/pkg/chrmap"
	"github.com/xflouris/bpp-tools/pkg/msa"
)

const (
	prettyEvery = 10 // space before every prettyEvery'th column
	prettyPad   = 4  // spaces after the longest label
)

// Print writes a in plain sequential format, "count length" and then
// one "label data" line per taxon. It can be read back by
// ParseSequential.
func Print(w io.Writer, a *msa.Alignment) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d %d\n", a.Count(), a.Length)
	for i := 0; i < a.Count(); i++ {
		bw.WriteString(a.Label(i))
		bw.WriteByte(' ')
		bw.Write(a.Row(i))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// PrintPretty writes the loci the way bpp likes to see them. Labels
// are padded to the same width across all loci and the data are
// broken into groups of ten. After each locus comes a line of site
// pattern weights. If weights is nil, or weights[i] is nil, every
// column of locus i has weight one.
func PrintPretty(w io.Writer, loci []*msa.Alignment, weights [][]int) error {
	maxlen := 0
	for _, a := range loci {
		for i := 0; i < a.Count(); i++ {
			maxlen = max(maxlen, len(a.Label(i)))
		}
	}
	width := maxlen + prettyPad
	bw := bufio.NewWriter(w)
	for k, a := range loci {
		fmt.Fprintf(bw, "%d %d P\n", a.Count(), a.Length)
		for i := 0; i < a.Count(); i++ {
			fmt.Fprintf(bw, "%-*s", width, a.Label(i))
			for j, c := range a.Row(i) {
				if j%prettyEvery == 0 {
					bw.WriteByte(' ')
				}
				if a.DType == msa.DNA && chrmap.NTNormal[c] != 0 {
					c = byte(chrmap.NTNormal[c])
				}
				bw.WriteByte(c)
			}
			bw.WriteByte('\n')
		}
		var wt []int
		if k < len(weights) {
			wt = weights[k]
		}
		bw.WriteString(weightLine(wt, a.Length))
		bw.WriteString("\n\n")
	}
	return bw.Flush()
}

func weightLine(wt []int, length int) string {
	s := make([]string, length)
	for i := range s {
		if wt == nil {
			s[i] = "1"
		} else {
			s[i] = fmt.Sprint(wt[i])
		}
	}
	return strings.Join(s, " ")
}
