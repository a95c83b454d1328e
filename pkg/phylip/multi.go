// 18 Oct 2026

package phylip

import (
	"io"

	"github.com/pkg/errors"

	"github.com/xflouris/bpp-tools/pkg/chrmap"
	"github.com/xflouris/bpp-tools/pkg/msa"
)

// ErrNoAlignment means the input had lines, but all of them were blank.
var ErrNoAlignment = errors.New("no alignment found")

// ParseMultiSequential reads sequential alignments, one after the
// other, until the end of input. Blank lines between them are allowed.
// If any alignment is bad, the error says which one and nothing else
// is returned.
func ParseMultiSequential(c *Cursor) ([]*msa.Alignment, error) {
	var loci []*msa.Alignment
	for {
		a, err := ParseSequential(c)
		if err == io.EOF && len(loci) == 0 {
			return nil, ErrNoAlignment
		}
		if err != nil {
			return nil, errors.Wrapf(err, "alignment %d", len(loci)+1)
		}
		loci = append(loci, a)
		for { // find the next header, if any
			p, err := c.NextLine()
			if err == io.EOF {
				return loci, nil
			}
			if err != nil {
				return nil, errors.Wrapf(err, "after alignment %d", len(loci))
			}
			if !isBlank(p) {
				break
			}
		}
	}
}

// Sniff reads the first header and says if it carries the interleaved
// S or I marker. The cursor is rewound to the start either way, so the
// source has to be able to seek. A header that is not valid at all is
// left for the parser to report.
func Sniff(c *Cursor) (interleaved bool, err error) {
	if err := c.skipBlank(); err == io.EOF {
		return false, ErrNoAlignment
	} else if err != nil {
		return false, err
	}
	if _, _, err := c.parseHeader(true); err == nil {
		_, _, serr := c.parseHeader(false)
		interleaved = serr != nil
	}
	return interleaved, c.Rewind()
}

// Parse reads everything from c. Interleaved input holds one alignment
// only.
func Parse(c *Cursor, interleaved bool) ([]*msa.Alignment, error) {
	if !interleaved {
		return ParseMultiSequential(c)
	}
	a, err := ParseInterleaved(c)
	if err == io.EOF {
		return nil, ErrNoAlignment
	}
	if err != nil {
		return nil, err
	}
	return []*msa.Alignment{a}, nil
}

// ReadFile opens fname, reads every alignment in it and closes it.
func ReadFile(fname string, table *chrmap.Table, interleaved bool) ([]*msa.Alignment, error) {
	c, err := Open(fname, table)
	if err != nil {
		return nil, err
	}
	loci, err := Parse(c, interleaved)
	if cerr := c.Close(); err == nil && cerr != nil {
		err = cerr
	}
	if err != nil {
		return nil, errors.Wrap(err, fname)
	}
	return loci, nil
}
