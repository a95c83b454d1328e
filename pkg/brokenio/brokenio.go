// brokenio is a wrapper around an io.ReadCloser. It allows us to set
// rates of failed read operations, or to fail at a fixed point.
// Typical use: You get a file pointer or a reader from a compressed
// source. You write
// reader = brokenio.NewReader(reader) to wrap the old reader. Everything
// then functions as before, but with artificial errors.
// When we introduce an error, we return an error.
// When we introduce a failure on the first read, we return without an
// error. This is what one often sees on a zero length file.

package brokenio

import (
	"fmt"
	"io"
	"math/rand"
	"os"

	"github.com/pkg/errors"
)

// ErrBroken is what comes back when a read fails at a fixed offset.
var ErrBroken = errors.New("brokenio: artificial read failure")

// A BrknRdrClsr is modelled on the various Readers in the standard
// library, but with variables controlling the frequency of errors.
// These values are the fraction of time an error will take place,
// so a value of 0.05 means failure in 5% of the cases.
// If verbose is true, print out the amount of data when the file is closed.
type BrknRdrClsr struct {
	rdrOrig      io.ReadCloser // Wrapped reader
	rnd          *rand.Rand
	probZeroFile float32 // Probability of returning a zero length file
	probFail     float32
	fracFail     float32
	failAfter    int // fail once this many bytes are delivered, -1 for never
	nCalled      int
	nByte        int
	verbose      bool
	w            io.Writer // where verbose output goes
}

// SetVerbose sets the verbosity flag to true or false
func (r *BrknRdrClsr) SetVerbose(newV bool) { r.verbose = newV }

// SetOutput says where verbose messages go. Default is stdout.
func (r *BrknRdrClsr) SetOutput(w io.Writer) { r.w = w }

// SetFracFail sets the amount of the bytes which will be trashed
func (r *BrknRdrClsr) SetFracFail(frac float32) { r.fracFail = frac }

// SetProbZeroFile sets the rate at which we simply return 0 bytes on the
// first read. It must be a value from 0 to 1. We do not check if the
// argument is valid.
func (r *BrknRdrClsr) SetProbZeroFile(prob float32) { r.probZeroFile = prob }

// SetProbFail set the probability of a file reading failure.
// It must be between zero and 1.
func (r *BrknRdrClsr) SetProbFail(prob float32) { r.probFail = prob }

// SetFailAfter makes every read fail with ErrBroken once n bytes have
// been handed out. Reads are shortened so exactly n bytes get through.
func (r *BrknRdrClsr) SetFailAfter(n int) { r.failAfter = n }

// SetSeed makes the random failures repeatable.
func (r *BrknRdrClsr) SetSeed(seed int64) { r.rnd = rand.New(rand.NewSource(seed)) }

// NewReader returns a new Reader - a wrapper around the old one
func NewReader(rIn io.ReadCloser) *BrknRdrClsr {
	return &BrknRdrClsr{
		rdrOrig:   rIn,
		rnd:       rand.New(rand.NewSource(1)),
		fracFail:  0.5,
		failAfter: -1,
	}
}

// trashSlice wipes out the second part of a slice.
// The amount to wipe out is given by a fraction, so 0.3
// will wipe out the second 30 % of a slice
func trashSlice(p []byte, frac float32) (int, error) {
	nkeep := int(float32(len(p)) * (1. - frac))
	if nkeep == len(p) {
		return nkeep, nil
	}
	err := errors.Errorf("randomly wiped out last %d of %d", len(p)-nkeep, len(p))
	clear(p[nkeep:])
	return nkeep, err
}

// Read wraps the original reader and sums up the amount of data that
// has gone through. It generates an error with a probability given by probFail.
// On the first call, we might return zero data to simulate a zero length file
// which is a rather common occurrence.
func (r *BrknRdrClsr) Read(p []byte) (n int, err error) {
	if len(p) == 0 {
		return 0, nil
	}
	if r.nCalled == 0 && r.probZeroFile > 0 {
		if r.rnd.Float32() < r.probZeroFile {
			return 0, io.EOF
		}
	}
	if r.failAfter >= 0 {
		left := r.failAfter - r.nByte
		if left <= 0 {
			return 0, ErrBroken
		}
		if len(p) > left {
			p = p[:left]
		}
	}
	n, err = r.rdrOrig.Read(p)
	r.nCalled++
	r.nByte += n
	if r.probFail > 0 && r.fracFail > 0 && r.rnd.Float32() < r.probFail {
		return trashSlice(p[:n], r.fracFail)
	}
	return n, err
}

// Close wraps the original Close method.
func (r *BrknRdrClsr) Close() error {
	if r.verbose {
		w := r.w
		if w == nil {
			w = os.Stdout
		}
		fmt.Fprintln(w, "Closing", r.nCalled, "calls and", r.nByte, "bytes")
	}
	return r.rdrOrig.Close()
}
