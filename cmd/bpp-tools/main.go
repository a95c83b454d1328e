// 18 Oct 2026

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/xflouris/bpp-tools/pkg/bpptools"
	. "github.com/xflouris/bpp-tools/pkg/common"
	"github.com/xflouris/bpp-tools/pkg/config"
)

func main() {
	f := flag.NewFlagSet(ProgName, flag.ExitOnError)
	var args bpptools.Args
	var cfgFile string
	f.StringVar(&args.MsaFile, "msa", "", "input alignments in phylip format")
	f.StringVar(&args.Out, "out", "", "output file, default stdout")
	f.BoolVar(&args.Explode, "explode", false, "write each locus to its own file")
	f.StringVar(&args.Extract, "extract", "", "comma separated taxa to keep")
	f.StringVar(&args.Remove, "remove", "", "comma separated taxa to remove")
	f.StringVar(&args.Dstat, "dstat", "", "four comma separated taxa for the ABBA-BABA test")
	f.StringVar(&args.Plot, "plot", "", "draw the first alignment to this png file")
	f.BoolVar(&args.Help, "help", false, "print this help")
	f.BoolVar(&args.Version, "version", false, "print the version and stop")
	f.BoolVar(&args.Arch, "arch", false, "print machine details")
	f.BoolVar(&args.Quiet, "quiet", false, "only errors")
	f.BoolVar(&args.Verbose, "v", false, "verbose, log at debug level")
	f.BoolVar(&args.Trim, "trim", false, "remove sites with ambiguity codes")
	f.BoolVar(&args.Prune, "prune", false, "remove taxa with only missing data")
	f.BoolVar(&args.Pretty, "pretty", false, "blocked output with pattern weights")
	f.BoolVar(&args.Compress, "compress", false, "with -pretty, collapse identical sites")
	f.StringVar(&args.Squash, "squash", "", "remove columns with gaps in this sequence (label or number)")
	f.StringVar(&args.Alphabet, "alphabet", "fasta", "characters to accept: fasta, nt or aa")
	f.BoolVar(&args.Interleaved, "interleaved", false, "input is one interleaved alignment")
	f.IntVar(&args.Jobs, "jobs", 0, "files written at once by -explode")
	f.StringVar(&cfgFile, "config", "", "yaml settings file")
	if err := f.Parse(os.Args[1:]); err != nil {
		fmt.Fprintln(f.Output(), err)
		os.Exit(ExitUsageError)
	}
	if f.NArg() != 0 {
		fmt.Fprintln(f.Output(), "Unexpected arguments:", f.Args())
		f.Usage()
		os.Exit(ExitUsageError)
	}
	args.Usage = f.PrintDefaults

	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitUsageError)
	}
	set := make(map[string]bool)
	f.Visit(func(fl *flag.Flag) { set[fl.Name] = true })
	args.Apply(cfg, set)
	if set["quiet"] {
		cfg.Quiet = args.Quiet
	}
	level, err := cfg.Level()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitUsageError)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := bpptools.MyMain(ctx, &args, level)
	stop()
	os.Exit(code)
}
