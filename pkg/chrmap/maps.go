// 18 Oct 2026

package chrmap

// Map gives a value to each byte. Zero means "nothing special".
type Map [256]uint32

// Nucleotide bits. An ambiguity code is the OR of the bases it stands for.
const (
	BitA   uint32 = 1
	BitC   uint32 = 2
	BitG   uint32 = 4
	BitT   uint32 = 8
	AnyNt         = BitA | BitC | BitG | BitT
	nNtBit        = 4
)

// NTCode maps nucleotide symbols to 4-bit codes.
var NTCode = caseFold(Map{
	'A': BitA, 'C': BitC, 'G': BitG, 'T': BitT, 'U': BitT,
	'R': BitA | BitG, 'Y': BitC | BitT, 'S': BitC | BitG,
	'W': BitA | BitT, 'K': BitG | BitT, 'M': BitA | BitC,
	'B': BitC | BitG | BitT, 'D': BitA | BitG | BitT,
	'H': BitA | BitC | BitT, 'V': BitA | BitC | BitG,
	'N': AnyNt, 'X': AnyNt, 'O': AnyNt, '?': AnyNt, '-': AnyNt,
})

// Amb marks every byte that is not an unambiguous base.
var Amb = mkAmb()

// NTMissing marks characters meaning "no data" in nucleotide alignments.
var NTMissing = Map{'N': 1, 'n': 1, '?': 1, '-': 1}

// AAMissing is the same for amino acids.
var AAMissing = Map{'X': 1, 'x': 1, '?': 1, '-': 1}

// NTNormal is for printing. Lower case becomes upper case and U
// becomes T. Bytes with no entry are not nucleotides.
var NTNormal = caseFold(Map{
	'-': '-', '?': '?',
	'A': 'A', 'B': 'B', 'C': 'C', 'D': 'D', 'G': 'G', 'H': 'H',
	'K': 'K', 'M': 'M', 'N': 'N', 'O': 'O', 'R': 'R', 'S': 'S',
	'T': 'T', 'U': 'T', 'V': 'V', 'W': 'W', 'X': 'X', 'Y': 'Y',
})

// caseFold copies upper case entries to lower case.
func caseFold(m Map) Map {
	for c := 'A'; c <= 'Z'; c++ {
		if m[c] != 0 {
			m[c+upperToLo] = m[c]
		}
	}
	return m
}

func mkAmb() Map {
	var m Map
	for i := range m {
		m[i] = 1
	}
	for _, c := range []byte("ACGTUacgtu") {
		m[c] = 0
	}
	return m
}

// Bases returns the unambiguous bases in a 4-bit code, in ACGT order.
func Bases(code uint32) []int {
	var r []int
	for i := 0; i < nNtBit; i++ {
		if code&(1<<i) != 0 {
			r = append(r, i)
		}
	}
	return r
}
