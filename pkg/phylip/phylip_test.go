package phylip_test

import (
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"

	"github.com/xflouris/bpp-tools/pkg/chrmap"
	"github.com/xflouris/bpp-tools/pkg/msa"
	. "github.com/xflouris/bpp-tools/pkg/phylip"
)

func cursor(t *testing.T, s string, table *chrmap.Table) *Cursor {
	t.Helper()
	c, err := NewCursor(strings.NewReader(s), table)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func rows(a *msa.Alignment) []string {
	r := make([]string, a.Count())
	for i := range r {
		r[i] = string(a.Row(i))
	}
	return r
}

// wantKind checks that err is a ParseError of the right sort.
func wantKind(t *testing.T, err error, kind Kind) *ParseError {
	t.Helper()
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("wanted a %s ParseError, got %v", kind, err)
	}
	if perr.Kind != kind {
		t.Fatalf("wanted kind %s, got %s (%s)", kind, perr.Kind, perr)
	}
	return perr
}

func TestSequentialSimple(t *testing.T) {
	s := "4 6\nA ACGTAC\nB ACGTAC\nC ACGTAC\nD ACGTAC\n"
	a, err := ParseSequential(cursor(t, s, nil))
	if err != nil {
		t.Fatal(err)
	}
	if a.Count() != 4 || a.Length != 6 {
		t.Fatal("shape", a.Count(), a.Length)
	}
	if diff := cmp.Diff([]string{"A", "B", "C", "D"}, a.Labels()); diff != "" {
		t.Error(diff)
	}
	for i, r := range rows(a) {
		if r != "ACGTAC" {
			t.Error("row", i, r)
		}
	}
}

// Data spread over lines, blank lines between taxa, DOS line ends and
// white space after the last base of a taxon.
func TestSequentialMessy(t *testing.T) {
	s := "\n  \n2 8\r\n\n  A ACGT\r\n ACGT\r\n\r\nB\tAC GT\r\nACGT \t\r\n"
	c := cursor(t, s, nil)
	a, err := ParseSequential(c)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"ACGTACGT", "ACGTACGT"}, rows(a)); diff != "" {
		t.Error(diff)
	}
	if diff := cmp.Diff([]string{"A", "B"}, a.Labels()); diff != "" {
		t.Error(diff)
	}
	st := c.Stripped()
	if st[' '] != 4 || st['\t'] != 2 || c.StrippedCount() != 6 {
		t.Error("stripped spaces", st[' '], "tabs", st['\t'], "total", c.StrippedCount())
	}
	if st['\r'] != 0 {
		t.Error("carriage returns should not be counted")
	}
	if c.LineNo() != 9 {
		t.Error("cursor left on line", c.LineNo())
	}
}

func TestHeaderErrors(t *testing.T) {
	tests := []struct {
		in   string
		kind Kind
		msg  string
	}{
		{"abc 6\nA ACGTAC\n", Syntax, "Invalid number of sequences in header"},
		{"0 6\n", Syntax, "Invalid number of sequences in header"},
		{"-2 6\n", Syntax, "Invalid number of sequences in header"},
		{"2\n", Syntax, "Invalid sequence length in header"},
		{"2 x\n", Syntax, "Invalid sequence length in header"},
		{"2 0\n", Syntax, "Invalid sequence length in header"},
		{"99999999999999999999 4\n", Syntax, "Invalid number of sequences in header"},
		{"2 6 I\n", Format, ""},
		{"2 6 S\n", Format, ""},
		{"4 4611686018427387904\nA AC\n", Syntax, "Alignment of 4 sequences of length 4611686018427387904 is too big"},
	}
	for _, x := range tests {
		_, err := ParseSequential(cursor(t, x.in, nil))
		perr := wantKind(t, err, x.kind)
		if x.msg != "" && perr.Msg != x.msg {
			t.Errorf("%q: got message %q", x.in, perr.Msg)
		}
		if perr.Line != 1 {
			t.Errorf("%q: error on line %d", x.in, perr.Line)
		}
	}
}

func TestInterleavedHeader(t *testing.T) {
	good := []string{"2 4\n", "2 4 I\n", "2 4 i \n", "2 4 S\n", "2 4\ts\n", "+2 4\n"}
	for _, h := range good {
		a, err := ParseInterleaved(cursor(t, h+"a AC\nb AC\n\nGT\nGT\n", nil))
		if err != nil {
			t.Errorf("%q: %v", h, err)
			continue
		}
		if diff := cmp.Diff([]string{"ACGT", "ACGT"}, rows(a)); diff != "" {
			t.Error(diff)
		}
	}
	for _, h := range []string{"2 4 X\n", "2 4 I x\n", "2 4 II\n"} {
		_, err := ParseInterleaved(cursor(t, h+"a AC\nb AC\n\nGT\nGT\n", nil))
		wantKind(t, err, Format)
	}
}

func TestShortSequence(t *testing.T) {
	s := "2 10\nfirst ACGTACGTAC\nsecond ACGTACG\n"
	_, err := ParseSequential(cursor(t, s, nil))
	perr := wantKind(t, err, Syntax)
	if perr.Taxon != 2 {
		t.Error("taxon", perr.Taxon)
	}
	if !strings.Contains(perr.Msg, "Sequence 2 (second) has 7 characters but expected 10") {
		t.Error("message", perr.Msg)
	}
}

func TestLongSequence(t *testing.T) {
	tests := []struct {
		in    string
		taxon int
	}{
		{"2 6\nA ACGTACGGGG\nB ACGTAC\n", 1},
		{"2 6\nA ACG\nTAC G\nB ACGTAC\n", 1},
		{"2 6\nA ACGTAC\nB ACGTAC-\n", 2},
	}
	for _, x := range tests {
		_, err := ParseSequential(cursor(t, x.in, nil))
		perr := wantKind(t, err, LongSeq)
		if perr.Taxon != x.taxon {
			t.Errorf("%q: taxon %d", x.in, perr.Taxon)
		}
	}
	a, err := ParseSequential(cursor(t, "1 4\nA ACGT \t \r\n", nil))
	if err != nil || string(a.Row(0)) != "ACGT" {
		t.Error("white space after the data should be fine", err)
	}
}

func TestTooFewSequences(t *testing.T) {
	_, err := ParseSequential(cursor(t, "3 4\nA ACGT\nB ACGT\n\n", nil))
	perr := wantKind(t, err, Syntax)
	if perr.Msg != "Found 2 sequence(s) but expected 3" {
		t.Error(perr.Msg)
	}
}

func TestIllegalCharacters(t *testing.T) {
	tests := []struct {
		in    string
		table *chrmap.Table
		kind  Kind
		msg   string
	}{
		{"1 4\nA AC1T\n", &chrmap.Fasta, IllegalChar, "illegal character '1'"},
		{"1 4\nA AC\x01T\n", &chrmap.Fasta, UnprintableChar,
			"illegal unprintable character 0x01 (hexadecimal)"},
		{"1 4\nA AC\n\xe9T\n", &chrmap.Fasta, UnprintableChar,
			"illegal unprintable character 0xe9 (hexadecimal)"},
		{"1 4\nA ACZT\n", &chrmap.NT, IllegalChar, "illegal character 'Z'"},
		{"1 4\nA AC*T\n", &chrmap.NT, IllegalChar, "illegal character '*'"},
	}
	for _, x := range tests {
		_, err := ParseSequential(cursor(t, x.in, x.table))
		perr := wantKind(t, err, x.kind)
		if perr.Msg != x.msg {
			t.Errorf("got %q want %q", perr.Msg, x.msg)
		}
		if perr.Taxon != 1 {
			t.Error("taxon", perr.Taxon)
		}
	}
	if _, err := ParseSequential(cursor(t, "1 4\nA ACZT\n", &chrmap.AA)); err != nil {
		t.Error("protein table should take Z", err)
	}
	_, err := ParseSequential(cursor(t, "1 4\nA AC1T\n", nil))
	if want := "line 2: illegal character '1'"; err == nil || err.Error() != want {
		t.Errorf("got %v want %s", err, want)
	}
}

func TestInterleaved(t *testing.T) {
	s := "3 12\n" +
		"A  ACGTA\nB  ACGTA\nC  ACGTA\n\n" +
		"CCCCC\nGG GGG\nTTTTT\n\n\n" +
		"AC\nAC\n  AC\n"
	a, err := ParseInterleaved(cursor(t, s, nil))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"ACGTACCCCCAC", "ACGTAGGGGGAC", "ACGTATTTTTAC"}
	if diff := cmp.Diff(want, rows(a)); diff != "" {
		t.Error(diff)
	}
}

// A label on a line by itself, with the data for the first block on
// the next line.
func TestInterleavedLabelAlone(t *testing.T) {
	s := "2 4\nA\nAC\nB AC\nGT\nGT\n"
	a, err := ParseInterleaved(cursor(t, s, nil))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"ACGT", "ACGT"}, rows(a)); diff != "" {
		t.Error(diff)
	}
}

func TestInterleavedErrors(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		kind  Kind
		taxon int
		msg   string
	}{
		{"ragged first block", "3 10\nA ACGTA\nB ACGT\nC ACGTA\n", NonAligned, 2,
			"Sequence 2 (B) data out of alignment"},
		{"ragged second block", "2 10\nA ACGTA\nB ACGTA\n\nACGTA\nACG\n", NonAligned, 2, ""},
		{"short block", "3 10\nA ACGTA\nB ACGTA\nC ACGTA\n\nCCCCC\nGGGGG\n", Syntax, 0,
			"Found 2 sequences in block 2 but expected 3"},
		{"too short", "2 10\nA ACGTA\nB ACGTA\n", Length, 0,
			"Sequence length is 5 but expected 10"},
		{"too long", "2 4\nA ACG\nB ACG\n\nAC\nAC\n", LongSeq, 1,
			"Sequence 1 (A) longer than expected"},
		{"missing taxa", "3 4\nA ACGT\nB ACGT\n", Syntax, 0,
			"Found 2 sequence(s) but expected 3"},
	}
	for _, x := range tests {
		_, err := ParseInterleaved(cursor(t, x.in, nil))
		var perr *ParseError
		if !errors.As(err, &perr) || perr.Kind != x.kind {
			t.Errorf("%s: wanted %s, got %v", x.name, x.kind, err)
			continue
		}
		if perr.Taxon != x.taxon {
			t.Errorf("%s: taxon %d", x.name, perr.Taxon)
		}
		if x.msg != "" && perr.Msg != x.msg {
			t.Errorf("%s: message %q", x.name, perr.Msg)
		}
	}
}

func TestMulti(t *testing.T) {
	s := "2 4\nA ACGT\nB ACGT\n\n\n3 2\nx AC\ny AC\nz AC\n1 3\nq TTT"
	loci, err := ParseMultiSequential(cursor(t, s, nil))
	if err != nil {
		t.Fatal(err)
	}
	if len(loci) != 3 {
		t.Fatal("got", len(loci), "loci")
	}
	if diff := cmp.Diff([]string{"x", "y", "z"}, loci[1].Labels()); diff != "" {
		t.Error(diff)
	}
	if string(loci[2].Row(0)) != "TTT" {
		t.Error("last locus", loci[2])
	}
}

func TestMultiFailsWhole(t *testing.T) {
	s := "2 4\nA ACGT\nB ACGT\n\n2 4\nx AC\n"
	loci, err := ParseMultiSequential(cursor(t, s, nil))
	if loci != nil {
		t.Error("partial result returned")
	}
	wantKind(t, err, Syntax)
	if !strings.HasPrefix(err.Error(), "alignment 2: ") {
		t.Error("error does not name the locus:", err)
	}
}

func TestNoAlignment(t *testing.T) {
	if _, err := NewCursor(strings.NewReader(""), nil); !errors.Is(err, ErrEmptyInput) {
		t.Error("empty input gave", err)
	}
	_, err := ParseMultiSequential(cursor(t, "\n  \n\t\n", nil))
	if !errors.Is(err, ErrNoAlignment) {
		t.Error("blank input gave", err)
	}
}

func TestLongLine(t *testing.T) {
	n := 3*LineAlloc + 17
	seq := strings.Repeat("ACGT", n/4+1)[:n]
	s := "2 " + strconv.Itoa(n) + "\nfirst " + seq + "\nsecond " + seq + "\n"
	a, err := ParseSequential(cursor(t, s, &chrmap.NT))
	if err != nil {
		t.Fatal(err)
	}
	if string(a.Row(1)) != seq {
		t.Error("long line mangled")
	}
}
