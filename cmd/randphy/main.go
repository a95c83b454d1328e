// 31 July 2020

package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	. "github.com/xflouris/bpp-tools/pkg/common"
	"github.com/xflouris/bpp-tools/pkg/randphy"
)

func main() {
	f := flag.NewFlagSet("randphy", flag.ExitOnError)
	const iseed int64 = 1637
	var args randphy.RandPhyArgs

	f.IntVar(&args.Nloci, "n", 1, "number of loci")
	f.BoolVar(&args.Interleaved, "i", false, "interleaved output")
	f.IntVar(&args.Width, "w", 60, "interleaved block width")
	f.BoolVar(&args.NoGap, "g", false, "do not put gaps in sequences")
	f.BoolVar(&args.Ambig, "a", false, "add ambiguity codes")
	f.BoolVar(&args.NoSpace, "s", false, "no random white space")
	f.Int64Var(&args.Iseed, "r", iseed, "random number seed")
	if err := f.Parse(os.Args[1:]); err != nil {
		fmt.Fprintln(f.Output(), err)
		os.Exit(ExitUsageError)
	}
	if f.NArg() != 3 {
		fmt.Fprintln(f.Output(), "Too few args\nrandphy [..] file ntaxa length")
		f.Usage()
		os.Exit(ExitUsageError)
	}

	fname := f.Args()[0]
	if fname == "-" || fname == "" {
		args.Wrtr = os.Stdout
	} else {
		ft, err := os.Create(fname)
		if err != nil {
			fmt.Fprintln(os.Stderr, "File for output:", err)
			os.Exit(ExitFailure)
		}
		defer ft.Close()
		args.Wrtr = ft
	}

	const emsg = "Failed converting %s to positive integer\n"
	if n, err := strconv.ParseUint(f.Args()[1], 10, 32); err != nil {
		fmt.Fprintf(os.Stderr, emsg, f.Args()[1])
		os.Exit(ExitFailure)
	} else {
		args.Ntaxa = int(n)
	}
	if n, err := strconv.ParseUint(f.Args()[2], 10, 32); err != nil {
		fmt.Fprintf(os.Stderr, emsg, f.Args()[2])
		os.Exit(ExitFailure)
	} else {
		args.Len = int(n)
	}
	if _, err := randphy.RandPhyMain(&args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitFailure)
	}
}
