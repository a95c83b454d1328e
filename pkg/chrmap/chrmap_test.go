package chrmap_test

import (
	"testing"

	. "github.com/xflouris/bpp-tools/pkg/chrmap"
)

func TestClassifyFasta(t *testing.T) {
	cases := []struct {
		c    byte
		want Class
	}{
		{'A', Accept}, {'a', Accept}, {'z', Accept}, {'-', Accept},
		{'?', Accept}, {'.', Accept}, {' ', Strip}, {'\t', Strip},
		{'\r', SilentSkip}, {'1', Fatal}, {'#', Fatal}, {0, Fatal},
		{0x07, Fatal}, {200, Fatal},
	}
	for _, x := range cases {
		if got := Classify(&Fasta, x.c); got != x.want {
			t.Errorf("byte %#x got %v want %v", x.c, got, x.want)
		}
	}
}

func TestClassifyStrict(t *testing.T) {
	if Classify(&NT, 'E') != Fatal {
		t.Error("E should not be a nucleotide")
	}
	if Classify(&NT, 'r') != Accept {
		t.Error("r is an IUPAC code")
	}
	if Classify(&AA, 'E') != Accept || Classify(&AA, '*') != Accept {
		t.Error("E and * are fine for proteins")
	}
}

func TestByName(t *testing.T) {
	for _, s := range []string{"", "fasta", "nt", "dna", "aa", "protein"} {
		if _, err := ByName(s); err != nil {
			t.Error(s, err)
		}
	}
	if _, err := ByName("nexus"); err == nil {
		t.Error("unknown alphabet accepted")
	}
}

func TestNTCode(t *testing.T) {
	if NTCode['r'] != BitA|BitG {
		t.Error("R should be A or G, got", NTCode['r'])
	}
	if NTCode['U'] != BitT || NTCode['-'] != AnyNt {
		t.Error("U or gap mapped wrongly")
	}
	if got := Bases(NTCode['B']); len(got) != 3 || got[0] != 1 {
		t.Error("B should be CGT, got", got)
	}
}

func TestAmbMissing(t *testing.T) {
	for _, c := range []byte("ACGTUacgtu") {
		if Amb[c] != 0 {
			t.Errorf("%c is not ambiguous", c)
		}
	}
	for _, c := range []byte("NRY-?") {
		if Amb[c] == 0 {
			t.Errorf("%c is ambiguous", c)
		}
	}
	if NTMissing['A'] != 0 || NTMissing['n'] == 0 || AAMissing['x'] == 0 {
		t.Error("missing tables broken")
	}
	if NTNormal['u'] != 'T' || NTNormal['c'] != 'C' {
		t.Error("NTNormal should upper case and turn U into T")
	}
}
