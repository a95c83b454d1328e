// 18 Oct 2026

package phylip

import (
	"io"

	"github.com/xflouris/bpp-tools/pkg/msa"
)

// ParseSequential reads one alignment in sequential format, starting
// from the current line. Blank lines before the header are skipped. If
// there is no header before the end of input, it returns io.EOF.
// On success the cursor is left on the last line of sequence data.
func ParseSequential(c *Cursor) (*msa.Alignment, error) {
	if err := c.skipBlank(); err != nil {
		return nil, err
	}
	count, length, err := c.parseHeader(false)
	if err != nil {
		return nil, err
	}
	a := msa.New(count, length)
	seqno := 0
	for {
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
		if seqno == count { // guard, we return below once count is reached
			return nil, c.fail(Syntax, 0, "Found at least %d sequences but expected %d", seqno+1, count)
		}
		label, p := splitLabel(p)
		a.SetLabel(seqno, label)
		row := a.Row(seqno)
		j := 0
		for {
			n, err := c.scan(p, row[j:], seqno, label)
			if err != nil {
				return nil, err
			}
			if j += n; j == length {
				break
			}
			if p, err = c.NextLine(); err == io.EOF {
				return nil, c.fail(Syntax, seqno+1, "Sequence %d (%.100s) has %d characters but expected %d",
					seqno+1, label, j, length)
			} else if err != nil {
				return nil, err
			}
		}
		if seqno++; seqno == count {
			return a, nil
		}
	}
	return nil, c.fail(Syntax, 0, "Found %d sequence(s) but expected %d", seqno, count)
}
