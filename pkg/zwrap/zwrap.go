// Package zwrap takes a file pointer and optionally wraps it so upon
// calling Close, the decompressor will be closed, followed by the
// underlying file.
// Alignment files from big runs are often gzipped, so the parser
// always goes through WrapMaybe. Decompression is done by pgzip, which
// reads ahead in the background.

package zwrap

import (
	"io"

	"github.com/klauspost/pgzip"
	"github.com/pkg/errors"
)

type FpGzip struct { // This is what we return.
	fp   io.ReadCloser
	zrdr *pgzip.Reader
}

// Close closes the decompressor, then the underlying backing readCloser.
func (fc *FpGzip) Close() error {
	if fc.zrdr == nil {
		return fc.fp.Close()
	}
	zerr := fc.zrdr.Close()
	ferr := fc.fp.Close()
	switch {
	case zerr != nil && ferr != nil:
		return errors.Wrap(ferr, zerr.Error())
	case zerr != nil:
		return errors.Wrap(zerr, "closing decompressor")
	}
	return ferr
}

// Read makes sure we read from the compressed stream and
// not the underlying file stream.
func (fc *FpGzip) Read(p []byte) (int, error) {
	if fc.zrdr != nil {
		return fc.zrdr.Read(p)
	}
	return fc.fp.Read(p)
}

// Compressed says if we are reading through a decompressor.
func (fc *FpGzip) Compressed() bool { return fc.zrdr != nil }

// Rewind goes back to the start of the data. The underlying source
// has to be able to seek. For compressed data, the decompressor is
// restarted.
func (fc *FpGzip) Rewind() error {
	s, ok := fc.fp.(io.Seeker)
	if !ok {
		return errors.New("rewind: source cannot seek")
	}
	if _, err := s.Seek(0, io.SeekStart); err != nil {
		return errors.Wrap(err, "rewind")
	}
	if fc.zrdr != nil {
		return errors.Wrap(fc.zrdr.Reset(fc.fp), "rewind")
	}
	return nil
}

// Wrap takes a source like a file pointer or http stream and wraps it
// so the correct Close and Read will be called.
func Wrap(fp io.ReadCloser) (*FpGzip, error) {
	var fpz FpGzip
	var err error
	fpz.fp = fp
	fpz.zrdr, err = pgzip.NewReader(fpz.fp)
	return &fpz, err
}

// ReadSeekCloser does not seem to be in the standard library
type ReadSeekCloser interface {
	io.Reader
	io.Seeker
	io.Closer
}

// WrapMaybe will decide if the underlying stream is compressed
// and wrap the file pointer if necessary.
func WrapMaybe(fpIn ReadSeekCloser) (*FpGzip, error) {
	if out, err := Wrap(fpIn); err == nil {
		return out, nil // It was compressed. Return compressed reader.
	}
	_, err := fpIn.Seek(0, io.SeekStart)
	r := &FpGzip{
		fp: fpIn, // Leave the zrdr implicitly nil
	}
	return r, errors.Wrap(err, "zwrap")
}
