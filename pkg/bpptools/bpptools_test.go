package bpptools_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	. "github.com/xflouris/bpp-tools/pkg/bpptools"
	. "github.com/xflouris/bpp-tools/pkg/common"
	"github.com/xflouris/bpp-tools/pkg/config"
	"github.com/xflouris/bpp-tools/pkg/phylip"
)

const twoLoci = `3 6
a ACGTNA
b ACGTAA
c ACGTAC

2 4
a AAAA
b CCCC
`

// run writes the input to a file, sets up args and returns what came
// out on stdout and stderr.
func run(t *testing.T, input string, a Args) (int, string, string) {
	t.Helper()
	if input != "" {
		fname, err := WrtTemp(input)
		if err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() { os.Remove(fname) })
		a.MsaFile = fname
	}
	var stdout, stderr bytes.Buffer
	a.Stdout, a.Stderr = &stdout, &stderr
	a.Quiet = true
	code := MyMain(context.Background(), &a, log.ErrorLevel)
	return code, stdout.String(), stderr.String()
}

func TestTwoCommands(t *testing.T) {
	code, _, stderr := run(t, twoLoci, Args{Explode: true, Dstat: "a,b,c,d"})
	if code != ExitUsageError {
		t.Error("exit code", code)
	}
	if !strings.Contains(stderr, "More than one command specified") {
		t.Error("stderr was", stderr)
	}
}

func TestNoCommand(t *testing.T) {
	var stderr bytes.Buffer
	a := Args{Stdout: new(bytes.Buffer), Stderr: &stderr}
	if code := MyMain(context.Background(), &a, log.InfoLevel); code != ExitSuccess {
		t.Error("exit code", code)
	}
	if !strings.Contains(stderr.String(), "Example commands") {
		t.Error("no help, got", stderr.String())
	}
	if code, _, _ := run(t, "", Args{Explode: true}); code != ExitUsageError {
		t.Error("explode without -msa gave", code)
	}
}

func TestVersion(t *testing.T) {
	code, stdout, _ := run(t, "", Args{Version: true})
	if code != ExitSuccess || !strings.Contains(stdout, Version) {
		t.Error(code, stdout)
	}
	code, stdout, _ = run(t, "", Args{Arch: true})
	if code != ExitSuccess || !strings.Contains(stdout, "Detected CPU features") {
		t.Error(code, stdout)
	}
}

func TestMissingFile(t *testing.T) {
	a := Args{MsaFile: filepath.Join(t.TempDir(), "not_there")}
	if code, _, _ := run(t, "", a); code != ExitFailure {
		t.Error("exit code", code)
	}
	if code, _, _ := run(t, "2 3\na ACG\nb AC\n", Args{}); code != ExitFailure {
		t.Error("bad alignment gave", code)
	}
}

func TestConvert(t *testing.T) {
	tests := []struct {
		name  string
		input string
		args  Args
		want  string
	}{
		{"plain", twoLoci, Args{},
			"3 6\na ACGTNA\nb ACGTAA\nc ACGTAC\n2 4\na AAAA\nb CCCC\n"},
		{"trim", twoLoci, Args{Trim: true},
			"3 5\na ACGTA\nb ACGTA\nc ACGTC\n2 4\na AAAA\nb CCCC\n"},
		{"prune", "3 2\na AC\nb ?-\nc GT\n", Args{Prune: true},
			"2 2\na AC\nc GT\n"},
		{"squash number", "2 4\na ACGT\nb A--T\n", Args{Squash: "2"},
			"2 2\na AT\nb AT\n"},
		{"squash label", "2 4\na ACGT\nb A--T\n", Args{Squash: "b"},
			"2 2\na AT\nb AT\n"},
		{"compress", "2 4\na AAAC\nb AAAG\n", Args{Pretty: true, Compress: true},
			"2 2 P\na     AC\nb     AG\n3 1\n\n"},
		{"extract", twoLoci, Args{Extract: "a,c"},
			"2 6\na ACGTNA\nc ACGTAC\n1 4\na AAAA\n"},
		{"remove", twoLoci, Args{Remove: "b"},
			"2 6\na ACGTNA\nc ACGTAC\n1 4\na AAAA\n"},
		{"remove two", twoLoci, Args{Remove: "a,c"},
			"1 6\nb ACGTAA\n1 4\nb CCCC\n"},
	}
	for _, x := range tests {
		code, stdout, stderr := run(t, x.input, x.args)
		if code != ExitSuccess {
			t.Errorf("%s: exit code %d, %s", x.name, code, stderr)
			continue
		}
		if diff := cmp.Diff(x.want, stdout); diff != "" {
			t.Errorf("%s: %s", x.name, diff)
		}
	}
}

func TestSquashBad(t *testing.T) {
	for _, s := range []string{"nobody", "3", "0"} {
		if code, _, _ := run(t, "2 4\na ACGT\nb A--T\n", Args{Squash: s}); code != ExitFailure {
			t.Errorf("squash %s gave %d", s, code)
		}
	}
}

func TestOutFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.phy")
	code, stdout, _ := run(t, twoLoci, Args{Out: out, Pretty: true})
	if code != ExitSuccess || stdout != "" {
		t.Fatal(code, stdout)
	}
	loci, err := phylip.ReadFile(out, nil, false)
	if err == nil {
		t.Error("pretty output has weight lines, should not read as plain phylip", len(loci))
	}
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(b), "3 6 P\na    ") {
		t.Errorf("got %q", b)
	}
}

func TestDstat(t *testing.T) {
	input := "4 3\nP1 AAA\nP2 CCC\nP3 CAC\nO ACA\n"
	code, stdout, stderr := run(t, input, Args{Dstat: "P1,P2,P3,O"})
	if code != ExitSuccess {
		t.Fatal(code, stderr)
	}
	for _, s := range []string{"Tree: (((P1,P2),P3),O);", "informative: 3", "D: 0.333333"} {
		if !strings.Contains(stdout, s) {
			t.Errorf("missing %q in\n%s", s, stdout)
		}
	}
	if code, _, _ := run(t, input, Args{Dstat: "P1,P2,P3"}); code != ExitFailure {
		t.Error("three taxa gave", code)
	}
}

func TestExplode(t *testing.T) {
	out := filepath.Join(t.TempDir(), "locus")
	if code, _, stderr := run(t, twoLoci, Args{Explode: true, Out: out, Jobs: 2}); code != ExitSuccess {
		t.Fatal(code, stderr)
	}
	for i, n := range []int{3, 2} {
		loci, err := phylip.ReadFile(out+"."+string(rune('0'+i)), nil, false)
		if err != nil {
			t.Fatal(err)
		}
		if len(loci) != 1 || loci[0].Count() != n {
			t.Errorf("file %d: %d loci", i, len(loci))
		}
	}
}

func TestPlot(t *testing.T) {
	png := filepath.Join(t.TempDir(), "aln.png")
	if code, _, stderr := run(t, twoLoci, Args{Plot: png}); code != ExitSuccess {
		t.Fatal(code, stderr)
	}
	b, err := os.ReadFile(png)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(b, []byte("\x89PNG")) {
		t.Error("not a png")
	}
}

func TestApply(t *testing.T) {
	c := config.Default()
	c.Out, c.Jobs, c.Pretty, c.Alphabet = "x.phy", 3, true, "nt"
	a := Args{Out: "y.phy", Alphabet: "fasta"}
	a.Apply(c, map[string]bool{"out": true})
	if a.Out != "y.phy" || a.Jobs != 3 || !a.Pretty || a.Alphabet != "nt" {
		t.Errorf("got %+v", a)
	}
}

func TestInterleavedInput(t *testing.T) {
	input := "2 6 I\nhuman ACG\nchimp ACC\n\nTAA\nTAT\n"
	want := "2 6\nhuman ACGTAA\nchimp ACCTAT\n"
	for _, a := range []Args{{}, {Interleaved: true}} {
		code, stdout, stderr := run(t, input, a)
		if code != ExitSuccess {
			t.Fatal(code, stderr)
		}
		if diff := cmp.Diff(want, stdout); diff != "" {
			t.Error(diff)
		}
	}
}

func TestVerbose(t *testing.T) {
	code, _, stderr := run(t, twoLoci, Args{Verbose: true})
	if code != ExitSuccess {
		t.Fatal(code, stderr)
	}
	for _, s := range []string{"features", "stripped", "freqs"} {
		if !strings.Contains(stderr, s) {
			t.Errorf("no %q in debug output\n%s", s, stderr)
		}
	}
	if _, _, stderr = run(t, twoLoci, Args{}); strings.Contains(stderr, "freqs") {
		t.Error("debug output without -v")
	}
}
