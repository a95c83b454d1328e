// Parsing speed on generated alignments.
// go test -bench Parse -benchmem
package phylip_test

import (
	"bytes"
	"testing"

	"github.com/xflouris/bpp-tools/pkg/chrmap"
	. "github.com/xflouris/bpp-tools/pkg/phylip"
	"github.com/xflouris/bpp-tools/pkg/randphy"
)

func genPhy(b *testing.B, interleaved, nospace bool) []byte {
	var buf bytes.Buffer
	nloci := 200
	if interleaved {
		nloci = 1
	}
	args := randphy.RandPhyArgs{Iseed: 1637, Wrtr: &buf, Nloci: nloci, Ntaxa: 20,
		Len: 2000, Width: 60, Interleaved: interleaved, NoSpace: nospace}
	if _, err := randphy.RandPhyMain(&args); err != nil {
		b.Fatal(err)
	}
	return buf.Bytes()
}

func benchParse(b *testing.B, interleaved, nospace bool, table *chrmap.Table) {
	data := genPhy(b, interleaved, nospace)
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c, err := NewCursor(bytes.NewReader(data), table)
		if err != nil {
			b.Fatal(err)
		}
		if interleaved {
			_, err = ParseInterleaved(c)
		} else {
			_, err = ParseMultiSequential(c)
		}
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParseSequential(b *testing.B)      { benchParse(b, false, true, nil) }
func BenchmarkParseSequentialWhite(b *testing.B) { benchParse(b, false, false, nil) }
func BenchmarkParseSequentialNT(b *testing.B)    { benchParse(b, false, true, &chrmap.NT) }
func BenchmarkParseInterleaved(b *testing.B)     { benchParse(b, true, false, nil) }
