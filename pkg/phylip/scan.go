// 18 Oct 2026

package phylip

import "github.com/xflouris/bpp-tools/pkg/chrmap"

// isSpace is the whitespace that separates labels, counts and data.
func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func isBlank(p []byte) bool {
	for _, c := range p {
		if !isSpace(c) {
			return false
		}
	}
	return true
}

func trimLeft(p []byte) []byte {
	for len(p) > 0 && isSpace(p[0]) {
		p = p[1:]
	}
	return p
}

// splitLabel takes the label from the front of a line that does not
// start with whitespace.
func splitLabel(p []byte) (string, []byte) {
	for i, c := range p {
		if isSpace(c) {
			return string(p[:i]), p[i:]
		}
	}
	return string(p), nil
}

// skipBlank moves the cursor forward until it sits on a line with
// something on it. It returns io.EOF if there is no such line.
func (c *Cursor) skipBlank() error {
	for isBlank(c.line) {
		if _, err := c.NextLine(); err != nil {
			return err
		}
	}
	return nil
}

// scan runs the bytes of p through the cursor's table and copies the
// accepted ones into dst. It returns how many were copied. Once dst
// is full, only whitespace may follow. An accepted byte that does not
// fit is a LongSeq error. seqno counts from 0.
func (c *Cursor) scan(p, dst []byte, seqno int, label string) (int, error) {
	n := 0
	for _, b := range p {
		switch chrmap.Classify(c.table, b) {
		case chrmap.Accept:
			if n == len(dst) {
				return n, c.fail(LongSeq, seqno+1,
					"Sequence %d (%.100s) longer than expected", seqno+1, label)
			}
			dst[n] = b
			n++
		case chrmap.Strip:
			c.stripped[b]++
			c.nStripped++
		case chrmap.SilentSkip:
		default:
			if b >= ' ' && b < 0x7f {
				return n, c.fail(IllegalChar, seqno+1,
					"illegal character '%c'", b)
			}
			return n, c.fail(UnprintableChar, seqno+1,
				"illegal unprintable character %#.2x (hexadecimal)", b)
		}
	}
	return n, nil
}
