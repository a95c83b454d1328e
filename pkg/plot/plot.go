// 18 Oct 2026

// Package plot draws an alignment as a PNG. Each residue is a small
// coloured box, taxa are rows, and labels are written on the left.
// Under the alignment there are two tracks, the entropy of each site
// and the fraction of gaps.
package plot

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"github.com/pkg/errors"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/xflouris/bpp-tools/pkg/msa"
)

// Options control the size of things, in pixels.
type Options struct {
	CellW, CellH int     // size of one residue
	TrackH       int     // height of the entropy and gap tracks
	FontSize     float64 // points, at 72 dpi
	MaxCols      int     // sites after this are not drawn
}

// Dflt is what the command line uses.
var Dflt = Options{CellW: 4, CellH: 12, TrackH: 40, FontSize: 10, MaxCols: 5000}

const margin = 4

var (
	bg       = color.RGBA{0xff, 0xff, 0xff, 0xff}
	ink      = color.RGBA{0x20, 0x20, 0x20, 0xff}
	other    = color.RGBA{0xb0, 0xb0, 0xb0, 0xff}
	entColor = color.RGBA{0x60, 0x40, 0xa0, 0xff}
	gapColor = color.RGBA{0x70, 0x70, 0x70, 0xff}
)

// Residue colours. Anything not listed is grey, gaps are left blank.
var palette = map[byte]color.RGBA{
	'A': {0x40, 0xa0, 0x40, 0xff},
	'C': {0x30, 0x60, 0xd0, 0xff},
	'G': {0xf0, 0xa0, 0x20, 0xff},
	'T': {0xd0, 0x30, 0x30, 0xff},
	'U': {0xd0, 0x30, 0x30, 0xff},
	'-': bg,
}

var monoFont *truetype.Font

func loadFont() (*truetype.Font, error) {
	if monoFont != nil {
		return monoFont, nil
	}
	f, err := freetype.ParseFont(gomono.TTF)
	if err != nil {
		return nil, errors.Wrap(err, "plot: font")
	}
	monoFont = f
	return f, nil
}

func cellColour(c byte) color.RGBA {
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	if col, ok := palette[c]; ok {
		return col
	}
	return other
}

func fill(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	draw.Draw(img, r, &image.Uniform{c}, image.Point{}, draw.Src)
}

// Draw makes the picture. It returns the image and the number of sites
// drawn, which is less than the alignment length if MaxCols cut it off.
func Draw(a *msa.Alignment, opt Options) (*image.RGBA, int, error) {
	if a.Count() == 0 || a.Length == 0 {
		return nil, 0, errors.New("plot: nothing to draw")
	}
	if opt.CellW < 1 || opt.CellH < 1 || opt.FontSize <= 0 {
		return nil, 0, errors.Errorf("plot: bad sizes %+v", opt)
	}
	f, err := loadFont()
	if err != nil {
		return nil, 0, err
	}
	ncol := a.Length
	if opt.MaxCols > 0 && ncol > opt.MaxCols {
		ncol = opt.MaxCols
	}
	longest := 0
	for _, l := range a.Labels() {
		longest = max(longest, len(l))
	}
	charW := int(opt.FontSize*0.6 + 0.5) // go mono advance is 0.6 em
	labelW := longest*charW + 2*margin
	alnH := a.Count() * opt.CellH
	width := labelW + ncol*opt.CellW + margin
	height := margin + alnH + 2*(opt.TrackH+margin) + margin

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	fill(img, img.Bounds(), bg)

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(f)
	ctx.SetFontSize(opt.FontSize)
	ctx.SetClip(img.Bounds())
	ctx.SetDst(img)
	ctx.SetSrc(&image.Uniform{ink})

	for i := 0; i < a.Count(); i++ {
		y0 := margin + i*opt.CellH
		baseline := y0 + (opt.CellH+int(opt.FontSize*0.7))/2
		if _, err := ctx.DrawString(a.Label(i), freetype.Pt(margin, baseline)); err != nil {
			return nil, 0, errors.Wrap(err, "plot: label")
		}
		for j, c := range a.Row(i)[:ncol] {
			x0 := labelW + j*opt.CellW
			fill(img, image.Rect(x0, y0, x0+opt.CellW, y0+opt.CellH), cellColour(c))
		}
	}

	top := margin + alnH + margin
	track(img, a.Entropy()[:ncol], labelW, top, opt, entColor)
	top += opt.TrackH + margin
	track(img, a.GapFrac()[:ncol], labelW, top, opt, gapColor)
	return img, ncol, nil
}

// track draws a bar graph of values between 0 and 1.
func track(img *image.RGBA, v []float32, x, top int, opt Options, c color.RGBA) {
	bottom := top + opt.TrackH
	for j, f := range v {
		f = min(max(f, 0), 1)
		h := int(f*float32(opt.TrackH) + 0.5)
		x0 := x + j*opt.CellW
		fill(img, image.Rect(x0, bottom-h, x0+opt.CellW, bottom), c)
	}
}

// WritePNG draws a and encodes it to w.
func WritePNG(w io.Writer, a *msa.Alignment, opt Options) (int, error) {
	img, n, err := Draw(a, opt)
	if err != nil {
		return 0, err
	}
	return n, errors.Wrap(png.Encode(w, img), "plot")
}
