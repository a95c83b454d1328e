// 18 Oct 2026

package phylip

import (
	"math"
	"strconv"
)

// scanInt reads an optionally signed decimal number after optional
// blanks, the way %d does in scanf. ok is false if there were no
// digits or the number does not fit in an int.
func scanInt(p []byte) (v int, rest []byte, ok bool) {
	i := 0
	for i < len(p) && (isSpace(p[i]) || p[i] == '\v' || p[i] == '\f') {
		i++
	}
	start := i
	if i < len(p) && (p[i] == '+' || p[i] == '-') {
		i++
	}
	digits := i
	for i < len(p) && p[i] >= '0' && p[i] <= '9' {
		i++
	}
	if i == digits {
		return 0, p, false
	}
	v, err := strconv.Atoi(string(p[start:i]))
	if err != nil {
		return 0, p, false
	}
	return v, p[i:], true
}

// parseHeader reads "count length" from the current line. Interleaved
// input may carry one more token, S or I, which is read and ignored.
func (c *Cursor) parseHeader(interleaved bool) (count, length int, err error) {
	p := c.line
	count, p, ok := scanInt(p)
	if !ok || count < 1 {
		return 0, 0, c.fail(Syntax, 0, "Invalid number of sequences in header")
	}
	length, p, ok = scanInt(p)
	if !ok || length < 1 {
		return 0, 0, c.fail(Syntax, 0, "Invalid sequence length in header")
	}
	if length > math.MaxInt/count {
		return 0, 0, c.fail(Syntax, 0, "Alignment of %d sequences of length %d is too big", count, length)
	}
	p = trimLeft(p)
	if len(p) == 0 {
		return count, length, nil
	}
	if !interleaved {
		return 0, 0, c.fail(Format, 0, "Invalid header line for a sequential alignment")
	}
	switch p[0] {
	case 'S', 's', 'I', 'i':
	default:
		return 0, 0, c.fail(Format, 0, "Invalid header line, expected S or I after the length")
	}
	if !isBlank(p[1:]) {
		return 0, 0, c.fail(Format, 0, "Invalid header line, junk after the S/I marker")
	}
	return count, length, nil
}
