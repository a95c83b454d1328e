package plot_test

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/xflouris/bpp-tools/pkg/msa"
	"github.com/xflouris/bpp-tools/pkg/plot"
)

func TestDraw(t *testing.T) {
	a, err := msa.FromStrings([]string{"human", "chimp"}, []string{"ACGT-N", "ACGTTN"})
	if err != nil {
		t.Fatal(err)
	}
	opt := plot.Dflt
	img, n, err := plot.Draw(a, opt)
	if err != nil {
		t.Fatal(err)
	}
	if n != 6 {
		t.Error("drew", n, "sites")
	}
	b := img.Bounds()
	if b.Dy() < 2*opt.CellH+2*opt.TrackH {
		t.Error("picture too short", b)
	}
	opt.MaxCols = 3
	if _, n, _ = plot.Draw(a, opt); n != 3 {
		t.Error("MaxCols ignored, drew", n)
	}
}

func TestWritePNG(t *testing.T) {
	a, _ := msa.FromStrings([]string{"x", "y", "z"}, []string{"AC", "AG", "A-"})
	var buf bytes.Buffer
	if _, err := plot.WritePNG(&buf, a, plot.Dflt); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal("not a png", err)
	}
	if img.Bounds().Dx() == 0 {
		t.Error("empty picture")
	}
	bad := plot.Dflt
	bad.CellW = 0
	if _, err := plot.WritePNG(&buf, a, bad); err == nil {
		t.Error("zero cell width accepted")
	}
}
