// 18 Oct 2026

// Package bpptools is everything the bpp-tools command does after the
// command line has been read.
package bpptools

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/pkg/errors"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/xflouris/bpp-tools/pkg/arch"
	"github.com/xflouris/bpp-tools/pkg/chrmap"
	. "github.com/xflouris/bpp-tools/pkg/common"
	"github.com/xflouris/bpp-tools/pkg/config"
	"github.com/xflouris/bpp-tools/pkg/dstat"
	"github.com/xflouris/bpp-tools/pkg/explode"
	"github.com/xflouris/bpp-tools/pkg/extract"
	"github.com/xflouris/bpp-tools/pkg/msa"
	"github.com/xflouris/bpp-tools/pkg/phylip"
	"github.com/xflouris/bpp-tools/pkg/plot"
)

// Args is the command line. The flag names are in cmd/bpp-tools.
type Args struct {
	MsaFile     string
	Out         string
	Explode     bool
	Extract     string
	Remove      string
	Dstat       string
	Plot        string
	Help        bool
	Version     bool
	Arch        bool
	Quiet       bool
	Verbose     bool
	Trim        bool
	Prune       bool
	Pretty      bool
	Compress    bool
	Squash      string
	Alphabet    string
	Interleaved bool
	Jobs        int
	Stdout      io.Writer // nil means os.Stdout
	Stderr      io.Writer // nil means os.Stderr
	Usage       func()    // prints the flags for -help
}

// Apply fills in from c everything that was not given on the command
// line. set has the names of the flags that were given.
func (a *Args) Apply(c config.Config, set map[string]bool) {
	if !set["out"] {
		a.Out = c.Out
	}
	if !set["quiet"] {
		a.Quiet = c.Quiet
	}
	if !set["alphabet"] {
		a.Alphabet = c.Alphabet
	}
	if !set["interleaved"] {
		a.Interleaved = c.Interleaved
	}
	if !set["jobs"] {
		a.Jobs = c.Jobs
	}
	if !set["pretty"] {
		a.Pretty = c.Pretty
	}
	if !set["trim"] {
		a.Trim = c.TrimAmbiguous
	}
	if !set["prune"] {
		a.Prune = c.PruneMissing
	}
}

// nCommands counts the things we were asked to do. Only one is allowed.
func (a *Args) nCommands() int {
	n := 0
	for _, b := range []bool{a.Help, a.Version, a.Arch, a.Explode,
		a.Extract != "", a.Remove != "", a.Dstat != "", a.Plot != ""} {
		if b {
			n++
		}
	}
	return n
}

const noneMsg = `For help, please enter: %s -help

Example commands:

%[1]s -explode -msa FILENAME -out FILENAME
%[1]s -extract CSV -msa FILENAME -out FILENAME
%[1]s -remove CSV -msa FILENAME -out FILENAME
%[1]s -dstat CSV -msa FILENAME
%[1]s -plot PNGFILE -msa FILENAME
%[1]s -trim -prune -pretty -msa FILENAME -out FILENAME

`

// MyMain is the top level main, after parsing the command line.
// It returns the exit code.
func MyMain(ctx context.Context, a *Args, level log.Level) int {
	stdout, stderr := a.Stdout, a.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	if a.Verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(stderr, log.Options{Prefix: ProgName, Level: level})

	if a.nCommands() > 1 {
		logger.Error("More than one command specified")
		return ExitUsageError
	}
	if !a.Quiet || a.Version {
		color.New(color.Bold).Fprintln(stdout, arch.Header())
		fmt.Fprint(stdout, "https://github.com/xflouris/bpp-tools\n\n")
	}
	logger.Debug("cpu", "features", strings.Join(arch.Features(), " "))

	switch {
	case a.Help:
		if a.Usage != nil {
			a.Usage()
		}
		return ExitSuccess
	case a.Version:
		return ExitSuccess
	case a.Arch:
		if err := arch.Report(stdout); err != nil {
			logger.Error(err)
			return ExitFailure
		}
		return ExitSuccess
	}
	if a.MsaFile == "" {
		if a.nCommands() > 0 {
			logger.Error("an alignment is needed, use -msa FILENAME")
			return ExitUsageError
		}
		if !a.Quiet {
			fmt.Fprintf(stderr, noneMsg, ProgName)
		}
		return ExitSuccess
	}

	r := runner{Args: a, stdout: stdout, log: logger}
	if err := r.run(ctx); err != nil {
		logger.Error(err)
		return ExitFailure
	}
	logger.Debug("done", "memory", r.p.Sprintf("%d", arch.MemUsed()))
	return ExitSuccess
}

// runner carries what the commands need.
type runner struct {
	*Args
	stdout io.Writer
	log    *log.Logger
	p      *message.Printer
}

func (r *runner) run(ctx context.Context) error {
	r.p = message.NewPrinter(language.English)
	loci, err := r.read()
	if err != nil {
		return err
	}
	switch {
	case r.Explode:
		return r.explode(ctx, loci)
	case r.Dstat != "":
		return r.dstat(loci)
	case r.Plot != "":
		return r.plot(loci)
	case r.Extract != "":
		return r.filter(loci, r.Extract, extract.Extract)
	case r.Remove != "":
		return r.filter(loci, r.Remove, extract.Remove)
	}
	if err := r.transform(loci); err != nil {
		return err
	}
	return r.write(loci)
}

// read gets the alignments and says how big they are. Without
// -interleaved, the first header decides.
func (r *runner) read() ([]*msa.Alignment, error) {
	table, err := chrmap.ByName(r.Alphabet)
	if err != nil {
		return nil, err
	}
	c, err := phylip.Open(r.MsaFile, table)
	if err != nil {
		return nil, err
	}
	defer c.Close()
	interleaved := r.Interleaved
	if !interleaved {
		if interleaved, err = phylip.Sniff(c); err != nil {
			return nil, errors.Wrap(err, r.MsaFile)
		}
		if interleaved {
			r.log.Info("header marks an interleaved alignment", "file", r.MsaFile)
		}
	}
	loci, err := phylip.Parse(c, interleaved)
	if err != nil {
		return nil, errors.Wrap(err, r.MsaFile)
	}
	sites := 0
	for _, a := range loci {
		if table == &chrmap.AA {
			a.DType = msa.AA
		}
		sites += a.Length
	}
	r.log.Info("read", "file", r.MsaFile, "loci", r.p.Sprintf("%d", len(loci)),
		"sites", r.p.Sprintf("%d", sites))
	r.log.Debug("input", "bytes", r.p.Sprintf("%d", c.Size()), "lines", r.p.Sprintf("%d", c.LineNo()),
		"stripped", r.p.Sprintf("%d", c.StrippedCount()))
	if r.log.GetLevel() <= log.DebugLevel {
		for i, a := range loci {
			r.log.Debug("locus", "n", i+1, "taxa", a.Count(), "sites", a.Length,
				"freqs", fmt.Sprintf("%.3f", a.BaseFreqs()))
		}
	}
	return loci, nil
}

// transform does the optional trimming and pruning, in place.
func (r *runner) transform(loci []*msa.Alignment) error {
	for i, a := range loci {
		if r.Squash != "" {
			ref := a.Index(r.Squash)
			if ref == -1 {
				n, err := strconv.Atoi(r.Squash)
				if err != nil {
					return errors.Errorf("alignment %d: could not find %q amongst sequences", i+1, r.Squash)
				}
				ref = n - 1
			}
			n, err := a.Squash(ref)
			if err != nil {
				return errors.Wrapf(err, "alignment %d", i+1)
			}
			r.log.Debug("squash", "alignment", i+1, "removed", n)
		}
		if r.Trim {
			n, err := a.RemoveAmbiguous()
			if err != nil {
				return errors.Wrapf(err, "alignment %d", i+1)
			}
			r.log.Debug("trim", "alignment", i+1, "removed", n, "length", a.Length)
		}
		if r.Prune {
			n, err := a.RemoveMissing()
			if err != nil {
				return errors.Wrapf(err, "alignment %d", i+1)
			}
			if n > 0 {
				r.log.Info("pruned", "alignment", i+1, "taxa", n)
			}
		}
	}
	return nil
}

// create opens the output file, or gives back stdout if there is none.
func (r *runner) create() (io.Writer, func() error, error) {
	if r.Out == "" {
		return r.stdout, func() error { return nil }, nil
	}
	fp, err := os.Create(r.Out)
	if err != nil {
		return nil, nil, err
	}
	return fp, fp.Close, nil
}

func (r *runner) write(loci []*msa.Alignment) error {
	w, closer, err := r.create()
	if err != nil {
		return err
	}
	if r.Compress && !r.Pretty {
		r.log.Warn("-compress only works with -pretty, ignoring it")
	}
	switch {
	case r.Pretty && r.Compress:
		weights := make([][]int, len(loci))
		for i, a := range loci {
			loci[i], weights[i] = a.SitePatterns()
		}
		err = phylip.PrintPretty(w, loci, weights)
	case r.Pretty:
		err = phylip.PrintPretty(w, loci, nil)
	default:
		for _, a := range loci {
			if err = phylip.Print(w, a); err != nil {
				break
			}
		}
	}
	if cerr := closer(); err == nil {
		err = cerr
	}
	return errors.Wrap(err, "writing output")
}

func (r *runner) explode(ctx context.Context, loci []*msa.Alignment) error {
	out := r.Out
	if out == "" {
		out = r.MsaFile
	}
	names, err := explode.Explode(ctx, loci, out, r.Jobs)
	if err != nil {
		return errors.Wrap(err, "explode")
	}
	r.log.Info("wrote", "files", r.p.Sprintf("%d", len(names)), "first", names[0])
	return nil
}

func (r *runner) filter(loci []*msa.Alignment, csv string,
	f func([]*msa.Alignment, *extract.Matcher) []*msa.Alignment) error {
	m, err := extract.Parse(csv)
	if err != nil {
		return err
	}
	kept := f(loci, m)
	r.log.Info("kept", "loci", len(kept), "of", len(loci))
	if err := r.transform(kept); err != nil {
		return err
	}
	return r.write(kept)
}

func (r *runner) dstat(loci []*msa.Alignment) error {
	taxa, err := dstat.Split4(r.Dstat)
	if err != nil {
		return err
	}
	res, err := dstat.Run(loci, taxa)
	if err != nil {
		return err
	}
	color.New(color.FgCyan, color.Bold).Fprintln(r.stdout, "ABBA-BABA test")
	return res.Write(r.stdout)
}

func (r *runner) plot(loci []*msa.Alignment) error {
	if len(loci) > 1 {
		r.log.Warn("only the first alignment is drawn", "alignments", len(loci))
	}
	a := loci[0]
	if err := r.transform(loci[:1]); err != nil {
		return err
	}
	fp, err := os.Create(r.Plot)
	if err != nil {
		return err
	}
	n, err := plot.WritePNG(fp, a, plot.Dflt)
	if cerr := fp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	if n < a.Length {
		r.log.Warn("alignment cut short in picture", "drawn", n, "sites", a.Length)
	}
	return nil
}
