// 18 Oct 2026

package phylip

import (
	"io"

	"github.com/xflouris/bpp-tools/pkg/msa"
)

// blockLine puts one line of a block into row seqno, starting at
// offset. Lines with no sequence data on them are skipped. alnLen is
// the width of the block so far, or zero if this is the first row of
// the block. ok is false if we ran out of input. p is the line to
// start with and is nil at end of input.
func (c *Cursor) blockLine(a *msa.Alignment, p []byte, seqno, offset int, alnLen *int) (ok bool, err error) {
	for p != nil {
		label := a.Label(seqno)
		n, err := c.scan(p, a.Row(seqno)[offset:], seqno, label)
		if err != nil {
			return false, err
		}
		if n > 0 {
			if *alnLen == 0 {
				*alnLen = n
			} else if *alnLen != n {
				return false, c.fail(NonAligned, seqno+1,
					"Sequence %d (%.100s) data out of alignment", seqno+1, label)
			}
			return true, nil
		}
		if p, err = c.NextLine(); err != nil && err != io.EOF {
			return false, err
		}
	}
	return false, nil
}

// ParseInterleaved reads one alignment in interleaved format. The
// first block has a label at the start of each row. Later blocks are
// data only, one row per taxon in the same order, and are usually
// separated by blank lines. Like ParseSequential it returns io.EOF if
// there is no header to be found.
func ParseInterleaved(c *Cursor) (*msa.Alignment, error) {
	if err := c.skipBlank(); err != nil {
		return nil, err
	}
	count, length, err := c.parseHeader(true)
	if err != nil {
		return nil, err
	}
	a := msa.New(count, length)
	seqno, alnLen := 0, 0
	for seqno < count {
		p, err := c.NextLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if p = trimLeft(p); len(p) == 0 {
			continue
		}
		label, p := splitLabel(p)
		a.SetLabel(seqno, label)
		if p == nil { // label at the end of the line, keep looking
			p = []byte{}
		}
		ok, err := c.blockLine(a, p, seqno, 0, &alnLen)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		seqno++
	}
	if seqno != count {
		return nil, c.fail(Syntax, 0, "Found %d sequence(s) but expected %d", seqno, count)
	}

	sumlen := alnLen
	seqno, alnLen = 0, 0
	block := 2
	for {
		p, err := c.NextLine()
		if err != nil && err != io.EOF {
			return nil, err
		}
		ok, err := c.blockLine(a, p, seqno, sumlen, &alnLen)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if seqno = (seqno + 1) % count; seqno == 0 {
			sumlen += alnLen
			alnLen = 0
			block++
		}
	}
	if seqno != 0 {
		return nil, c.fail(Syntax, 0, "Found %d sequences in block %d but expected %d", seqno, block, count)
	}
	if sumlen != length {
		return nil, c.fail(Length, 0, "Sequence length is %d but expected %d", sumlen, length)
	}
	return a, nil
}
