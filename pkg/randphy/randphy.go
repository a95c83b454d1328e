// 31 July 2020
// 18 Oct 2026 phylip instead of fasta, and it remembers what it wrote

package randphy

import (
	"bytes"
	"fmt"
	"io"
	"math/rand"
	"sync"

	"github.com/pkg/errors"

	"github.com/xflouris/bpp-tools/pkg/msa"
)

const (
	nPadWhite = 9  // For padding for adding whitespace to sequences
	dfltWidth = 60 // interleaved block width
)

// RandPhyArgs is the set of arguments passed to the main function
type RandPhyArgs struct {
	Iseed       int64     // random number seed
	Wrtr        io.Writer // where we write to
	Nloci       int       // number of alignments, written one after the other
	Ntaxa       int       // number of sequences in each alignment
	Len         int       // Length of sequences
	Width       int       // block width for interleaved output
	Interleaved bool      // one interleaved alignment instead of sequential loci
	NoGap       bool      // Do not add gaps
	Ambig       bool      // sprinkle in some ambiguity codes
	NoSpace     bool      // Do not add random white space
}

type letters []byte

func mkLetters(args *RandPhyArgs) letters {
	l := bytes.Repeat([]byte("ACGT"), 4)
	if args.Ambig {
		l = append(l, 'N', 'R', 'y')
	}
	if !args.NoGap {
		l = append(l, '-')
	}
	return l
}

// getseq returns a byte slice with a random sequence in it
func (l letters) getseq(seqlen int, rnd *rand.Rand) []byte {
	ret := make([]byte, seqlen)
	for i := range ret {
		ret[i] = l[rnd.Intn(len(l))]
	}
	return ret
}

// addInner is used by addspace to add a space or newline
func addInner(s []byte, n int, c byte, rnd *rand.Rand) []byte {
	for i := 0; i < n; i++ {
		s = append(s, 0)
		pos := rnd.Intn(len(s))
		copy(s[pos+1:], s[pos:])
		s[pos] = c
	}
	return s
}

// addspace is given a byte array and adds white characters at random
// positions. We flip a coin. Heads we don't add a newline. Tails we
// make about 1/9 of the added white space newlines.
func addspace(s []byte, newlines bool, rnd *rand.Rand) []byte {
	toAdd := len(s)/nPadWhite + 1
	nNL := 0 // Number of new lines to add
	if newlines && rnd.Intn(2) == 0 {
		nNL = toAdd/9 + 1
	}
	s = append(make([]byte, 0, len(s)+toAdd+nNL), s...)
	s = addInner(s, toAdd, ' ', rnd)
	return addInner(s, nNL, '\n', rnd)
}

// writer gets chunks of text and writes them. It remembers the first
// error, after which it just drains the channel.
func writer(c <-chan []byte, w io.Writer, wg *sync.WaitGroup, errp *error) {
	defer wg.Done()
	for b := range c {
		if *errp != nil {
			continue
		}
		if _, err := w.Write(b); err != nil {
			*errp = err
		}
	}
}

// label makes names like t01, t02 for the taxa.
func label(i, n int) string {
	return fmt.Sprintf("t%0*d", len(fmt.Sprint(n)), i+1)
}

// RandPhyMain writes random alignments to args.Wrtr. It returns the
// alignments it wrote, so tests can check what comes back from a parser.
func RandPhyMain(args *RandPhyArgs) ([]*msa.Alignment, error) {
	if args.Ntaxa < 1 || args.Len < 1 {
		return nil, errors.Errorf("need at least one taxon and one site, got %d and %d", args.Ntaxa, args.Len)
	}
	nloci := max(args.Nloci, 1)
	if args.Interleaved {
		nloci = 1
	}
	width := args.Width
	if width < 1 {
		width = dfltWidth
	}
	lets := mkLetters(args)
	rnd := rand.New(rand.NewSource(args.Iseed))
	spacernd := rand.New(rand.NewSource(args.Iseed + 1))

	var wg sync.WaitGroup
	var werr error
	sChan := make(chan []byte)
	wg.Add(1)
	go writer(sChan, args.Wrtr, &wg, &werr)

	var loci []*msa.Alignment
	for k := 0; k < nloci; k++ {
		a := msa.New(args.Ntaxa, args.Len)
		for i := 0; i < args.Ntaxa; i++ {
			a.SetLabel(i, label(i, args.Ntaxa))
			copy(a.Row(i), lets.getseq(args.Len, rnd))
		}
		loci = append(loci, a)
		if args.Interleaved {
			sendInterleaved(sChan, a, width, !args.NoSpace, spacernd)
		} else {
			sendSequential(sChan, a, !args.NoSpace, spacernd)
		}
	}
	close(sChan)
	wg.Wait()
	return loci, werr
}

func sendSequential(c chan<- []byte, a *msa.Alignment, space bool, rnd *rand.Rand) {
	c <- []byte(fmt.Sprintf("%d %d\n", a.Count(), a.Length))
	for i := 0; i < a.Count(); i++ {
		s := append([]byte(nil), a.Row(i)...)
		if space {
			s = addspace(s, true, rnd)
		}
		c <- []byte(a.Label(i) + " " + string(s) + "\n")
	}
	c <- []byte("\n")
}

func sendInterleaved(c chan<- []byte, a *msa.Alignment, width int, space bool, rnd *rand.Rand) {
	c <- []byte(fmt.Sprintf("%d %d I\n", a.Count(), a.Length))
	for start := 0; start < a.Length; start += width {
		end := min(start+width, a.Length)
		var b bytes.Buffer
		for i := 0; i < a.Count(); i++ {
			if start == 0 {
				fmt.Fprintf(&b, "%-10s ", a.Label(i))
			}
			s := append([]byte(nil), a.Row(i)[start:end]...)
			if space {
				s = addspace(s, false, rnd)
			}
			b.Write(s)
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
		c <- b.Bytes()
	}
}
