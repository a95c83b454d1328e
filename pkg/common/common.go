// 29 Apr 2020
// 18 Oct 2026 moved out of pkg/seq for the phylip tools

package common

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

const (
	ExitSuccess = iota
	ExitFailure
	ExitUsageError
)

const (
	GapChar     byte = '-' // a minus sign is always used for gaps
	MissingChar byte = '?' // fills taxa absent from a locus
)

// ProgName and Version go into the header and -version output.
const (
	ProgName = "bpp-tools"
	Version  = "v0.1.0"
)

// WrtTemp writes a string to a temporary file and returns
// the filename. It is used all over the place in testing.
func WrtTemp(s string) (string, error) {
	f_tmp, err := os.CreateTemp("", "_del_me_testing")
	if err != nil {
		return "", errors.New("tempfile fail")
	}

	if _, err := io.WriteString(f_tmp, s); err != nil {
		return "", errors.Errorf("writing string to temp file %v", f_tmp.Name())
	}
	name := f_tmp.Name()
	f_tmp.Close()
	return name, nil
}
