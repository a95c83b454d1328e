// 18 Oct 2026
// Reading lines. The parsers never look at the file directly. They
// ask the cursor for the next line and for the line it is sitting on.

package phylip

import (
	"bufio"
	"bytes"
	"io"
	"os"

	"github.com/edsrzf/mmap-go"
	"github.com/pkg/errors"

	"github.com/xflouris/bpp-tools/pkg/chrmap"
	"github.com/xflouris/bpp-tools/pkg/zwrap"
)

// LineAlloc is the size of a read chunk and the step by which the
// line buffer grows.
const LineAlloc = 2048

// ErrEmptyInput comes back from NewCursor and Open when there is not
// even one line to read.
var ErrEmptyInput = errors.New("empty input")

// Cursor sits on one line of input. It owns the line buffer and keeps
// count of lines read and of bytes thrown away while classifying.
type Cursor struct {
	src       io.Reader
	closer    io.Closer // nil if the caller owns the reader
	rdr       *bufio.Reader
	buf       []byte // grows, never shrinks
	line      []byte // current line, nil after EOF
	lineno    int64
	size      int64
	table     *chrmap.Table
	stripped  [256]int64
	nStripped int64
}

// NewCursor reads from r, using table to classify sequence bytes.
// A nil table means chrmap.Fasta. The first line is read straight away.
func NewCursor(r io.Reader, table *chrmap.Table) (*Cursor, error) {
	if table == nil {
		table = &chrmap.Fasta
	}
	c := &Cursor{
		src:   r,
		rdr:   bufio.NewReaderSize(r, LineAlloc),
		buf:   make([]byte, 0, LineAlloc),
		size:  -1,
		table: table,
	}
	if _, err := c.NextLine(); err != nil {
		if err == io.EOF {
			return nil, ErrEmptyInput
		}
		return nil, err
	}
	return c, nil
}

// mapped is a memory mapped file that looks like a file.
type mapped struct {
	*bytes.Reader
	m  mmap.MMap
	fp *os.File
}

func (m *mapped) Close() error {
	uerr := m.m.Unmap()
	if err := m.fp.Close(); err != nil {
		return err
	}
	return uerr
}

// Open opens fname for parsing. Regular files are memory mapped.
// Gzipped files are recognised and decompressed on the fly.
func Open(fname string, table *chrmap.Table) (*Cursor, error) {
	fp, err := os.Open(fname)
	if err != nil {
		return nil, errors.Wrap(err, "Unable to open file")
	}
	info, err := fp.Stat()
	if err != nil {
		fp.Close()
		return nil, errors.Wrapf(err, "stat %s", fname)
	}
	var src zwrap.ReadSeekCloser = fp
	if info.Mode().IsRegular() && info.Size() > 0 { // cannot map empty files
		if m, err := mmap.Map(fp, mmap.RDONLY, 0); err == nil {
			src = &mapped{Reader: bytes.NewReader(m), m: m, fp: fp}
		}
	}
	z, err := zwrap.WrapMaybe(src)
	if err != nil {
		src.Close()
		return nil, errors.Wrap(err, fname)
	}
	c, err := NewCursor(z, table)
	if err != nil {
		z.Close()
		return nil, errors.Wrap(err, fname)
	}
	c.closer = z
	c.size = info.Size()
	return c, nil
}

// grow makes room for n more bytes in the line buffer.
func (c *Cursor) grow(n int) {
	need := len(c.buf) + n
	if need <= cap(c.buf) {
		return
	}
	newcap := cap(c.buf)
	for newcap < need {
		newcap += LineAlloc
	}
	b := make([]byte, len(c.buf), newcap)
	copy(b, c.buf)
	c.buf = b
}

// NextLine reads the next line and makes it the current one. The
// newline is removed. A last line without a newline is returned as
// usual. At the end of input, it returns io.EOF and the current line
// becomes nil. The returned slice is only good until the next call.
func (c *Cursor) NextLine() ([]byte, error) {
	c.buf = c.buf[:0]
	for {
		chunk, err := c.rdr.ReadSlice('\n')
		if len(chunk) > 0 {
			c.grow(len(chunk))
			c.buf = append(c.buf, chunk...)
		}
		switch err {
		case nil:
			return c.setLine(c.buf[:len(c.buf)-1]), nil
		case bufio.ErrBufferFull:
			continue
		case io.EOF:
			if len(c.buf) == 0 {
				c.line = nil
				return nil, io.EOF
			}
			return c.setLine(c.buf), nil
		default:
			c.line = nil
			return nil, &ParseError{Kind: IO, Msg: "read failed", Line: c.lineno + 1, Err: err}
		}
	}
}

func (c *Cursor) setLine(b []byte) []byte {
	c.line = b
	c.lineno++
	return b
}

// Line is the line the cursor is sitting on.
func (c *Cursor) Line() []byte { return c.line }

// LineNo is the number of lines read so far, so it is the number of
// the current line.
func (c *Cursor) LineNo() int64 { return c.lineno }

// Stripped returns how often each byte value was thrown away as
// whitespace inside sequence data.
func (c *Cursor) Stripped() [256]int64 { return c.stripped }

// StrippedCount is the total of Stripped.
func (c *Cursor) StrippedCount() int64 { return c.nStripped }

// Size is the size of the file, or -1 if we do not know.
func (c *Cursor) Size() int64 { return c.size }

// Rewind goes back to the first line and clears the counters.
// It only works if the source can seek.
func (c *Cursor) Rewind() error {
	switch s := c.src.(type) {
	case *zwrap.FpGzip:
		if err := s.Rewind(); err != nil {
			return err
		}
	case io.Seeker:
		if _, err := s.Seek(0, io.SeekStart); err != nil {
			return errors.Wrap(err, "rewind")
		}
	default:
		return errors.New("rewind: input cannot seek")
	}
	c.rdr.Reset(c.src)
	c.lineno, c.nStripped = 0, 0
	c.stripped = [256]int64{}
	if _, err := c.NextLine(); err != nil {
		if err == io.EOF {
			return ErrEmptyInput
		}
		return err
	}
	return nil
}

// Close releases the file, the mapping and any decompressor. It does
// nothing for cursors made with NewCursor.
func (c *Cursor) Close() error {
	if c.closer == nil {
		return nil
	}
	err := c.closer.Close()
	c.closer = nil
	return err
}
