// 18 Oct 2026

// Package explode writes each locus of a multi-locus file to a file of
// its own. The files are called out.0, out.1 and so on.
package explode

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/xflouris/bpp-tools/pkg/msa"
	"github.com/xflouris/bpp-tools/pkg/phylip"
)

// Names returns the file names for n loci.
func Names(out string, n int) []string {
	r := make([]string, n)
	for i := range r {
		r[i] = fmt.Sprintf("%s.%d", out, i)
	}
	return r
}

func writeOne(fname string, a *msa.Alignment) error {
	fp, err := os.Create(fname)
	if err != nil {
		return err
	}
	if err := phylip.Print(fp, a); err != nil {
		fp.Close()
		return errors.Wrap(err, fname)
	}
	return errors.Wrap(fp.Close(), fname)
}

// Explode writes the loci, at most jobs files at a time. jobs < 1 means
// no limit. It returns the names of the files. If anything goes wrong,
// it stops starting new files and returns the first error.
func Explode(ctx context.Context, loci []*msa.Alignment, out string, jobs int) ([]string, error) {
	names := Names(out, len(loci))
	g, ctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for i, a := range loci {
		if ctx.Err() != nil {
			break
		}
		i, a := i, a // per-iteration copies; go.mod targets go 1.21
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return writeOne(names[i], a)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return names, nil
}
