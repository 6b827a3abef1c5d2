// Package export renders a persisted board document to a PNG image.
package export

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/inkboard/inkboard/backend-go/internal/board"
)

// bezierCircle approximates a quarter circle with one cubic bezier.
const bezierCircle = 0.5522847498

const exportPadding = 24.0

var noteFills = []color.RGBA{
	{R: 0xff, G: 0xf3, B: 0xa3, A: 0xff},
	{R: 0xc8, G: 0xf0, B: 0xb4, A: 0xff},
	{R: 0xb4, G: 0xdc, B: 0xf5, A: 0xff},
	{R: 0xf5, G: 0xc8, B: 0xdc, A: 0xff},
	{R: 0xe6, G: 0xd2, B: 0xfa, A: 0xff},
}

// view maps world coordinates into the output image.
type view struct {
	scale float64
	ox    float64
	oy    float64
}

func (v view) pt(x, y float64) fixed.Point26_6 {
	return fixed.Point26_6{
		X: fixed.Int26_6((x*v.scale + v.ox) * 64),
		Y: fixed.Int26_6((y*v.scale + v.oy) * 64),
	}
}

// Rasterize renders the document into a white-backed RGBA image of the given
// size, fitting all content with padding. An empty board renders blank.
func Rasterize(f board.File, w, h int) (*image.RGBA, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", w, h)
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}

	v := fitContent(f, w, h)

	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	filler := rasterx.NewFiller(w, h, scanner)
	dasher := rasterx.NewDasher(w, h, scanner)

	for _, n := range f.NoteCards {
		drawNote(filler, v, n)
	}
	for _, r := range f.Objects {
		if err := drawObject(dasher, scanner, v, r); err != nil {
			return nil, err
		}
	}
	if err := drawText(img, v, f.Objects); err != nil {
		return nil, err
	}

	return img, nil
}

// EncodePNG rasterizes and writes the PNG stream.
func EncodePNG(out io.Writer, f board.File, w, h int) error {
	img, err := Rasterize(f, w, h)
	if err != nil {
		return err
	}
	if err := png.Encode(out, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// fitContent computes the world-to-image transform that fits the content
// bounds into the image with padding. Empty content maps identity, centred.
func fitContent(f board.File, w, h int) view {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	grow := func(x, y float64) {
		minX = math.Min(minX, x)
		minY = math.Min(minY, y)
		maxX = math.Max(maxX, x)
		maxY = math.Max(maxY, y)
	}

	for _, r := range f.Objects {
		switch r.Kind {
		case "stroke":
			for _, p := range r.Points {
				grow(p.X-r.Width/2, p.Y-r.Width/2)
				grow(p.X+r.Width/2, p.Y+r.Width/2)
			}
		case "line":
			grow(r.X, r.Y)
			grow(r.X2, r.Y2)
		case "rect":
			grow(r.X, r.Y)
			grow(r.X+r.W, r.Y+r.H)
		case "ellipse":
			grow(r.X-r.RX, r.Y-r.RY)
			grow(r.X+r.RX, r.Y+r.RY)
		case "text":
			grow(r.X, r.Y)
			grow(r.X+float64(len(r.Content))*r.FontSize, r.Y+2*r.FontSize)
		}
	}
	for _, n := range f.NoteCards {
		grow(n.X, n.Y)
		grow(n.X+n.W, n.Y+n.H)
	}

	if math.IsInf(minX, 1) {
		return view{scale: 1}
	}

	cw, ch := maxX-minX, maxY-minY
	if cw <= 0 {
		cw = 1
	}
	if ch <= 0 {
		ch = 1
	}
	scale := math.Min(
		(float64(w)-2*exportPadding)/cw,
		(float64(h)-2*exportPadding)/ch,
	)
	scale = math.Min(scale, 4)
	if scale <= 0 {
		scale = 0.01
	}

	return view{
		scale: scale,
		ox:    (float64(w) - cw*scale) / 2 - minX*scale,
		oy:    (float64(h) - ch*scale) / 2 - minY*scale,
	}
}

func drawObject(d *rasterx.Dasher, scanner *rasterx.ScannerGV, v view, r board.ObjectRecord) error {
	c, err := parseHexColor(r.Color, r.Opacity)
	if err != nil {
		return err
	}

	width := fixed.Int26_6(math.Max(r.Width*v.scale, 0.5) * 64)

	switch r.Kind {
	case "stroke":
		if len(r.Points) < 2 {
			return nil
		}
		scanner.SetColor(c)
		d.SetStroke(width, 4<<6, rasterx.RoundCap, rasterx.RoundCap, rasterx.RoundGap, rasterx.Round, nil, 0)
		d.Start(v.pt(r.Points[0].X, r.Points[0].Y))
		for _, p := range r.Points[1:] {
			d.Line(v.pt(p.X, p.Y))
		}
		d.Stop(false)
		d.Draw()
		d.Clear()

	case "line":
		scanner.SetColor(c)
		d.SetStroke(width, 4<<6, rasterx.RoundCap, rasterx.RoundCap, rasterx.RoundGap, rasterx.Round, nil, 0)
		d.Start(v.pt(r.X, r.Y))
		d.Line(v.pt(r.X2, r.Y2))
		d.Stop(false)
		d.Draw()
		d.Clear()

	case "rect":
		x, y, rw, rh := r.X, r.Y, r.W, r.H
		if rw < 0 {
			x, rw = x+rw, -rw
		}
		if rh < 0 {
			y, rh = y+rh, -rh
		}
		scanner.SetColor(c)
		d.SetStroke(width, 4<<6, rasterx.RoundCap, rasterx.RoundCap, rasterx.RoundGap, rasterx.Round, nil, 0)
		d.Start(v.pt(x, y))
		d.Line(v.pt(x+rw, y))
		d.Line(v.pt(x+rw, y+rh))
		d.Line(v.pt(x, y+rh))
		d.Stop(true)
		d.Draw()
		d.Clear()

	case "ellipse":
		scanner.SetColor(c)
		d.SetStroke(width, 4<<6, rasterx.RoundCap, rasterx.RoundCap, rasterx.RoundGap, rasterx.Round, nil, 0)
		ellipsePath(d, v, r.X, r.Y, r.RX, r.RY)
		d.Draw()
		d.Clear()
	}
	return nil
}

// ellipsePath traces an ellipse as four cubic bezier quarters.
func ellipsePath(p rasterx.Adder, v view, cx, cy, rx, ry float64) {
	kx, ky := rx*bezierCircle, ry*bezierCircle
	p.Start(v.pt(cx+rx, cy))
	p.CubeBezier(v.pt(cx+rx, cy+ky), v.pt(cx+kx, cy+ry), v.pt(cx, cy+ry))
	p.CubeBezier(v.pt(cx-kx, cy+ry), v.pt(cx-rx, cy+ky), v.pt(cx-rx, cy))
	p.CubeBezier(v.pt(cx-rx, cy-ky), v.pt(cx-kx, cy-ry), v.pt(cx, cy-ry))
	p.CubeBezier(v.pt(cx+kx, cy-ry), v.pt(cx+rx, cy-ky), v.pt(cx+rx, cy))
	p.Stop(true)
}

func drawNote(filler *rasterx.Filler, v view, n board.NoteRecord) {
	fill := noteFills[((n.ColorIndex%len(noteFills))+len(noteFills))%len(noteFills)]
	filler.SetColor(fill)
	filler.Start(v.pt(n.X, n.Y))
	filler.Line(v.pt(n.X+n.W, n.Y))
	filler.Line(v.pt(n.X+n.W, n.Y+n.H))
	filler.Line(v.pt(n.X, n.Y+n.H))
	filler.Stop(true)
	filler.Draw()
	filler.Clear()
}

// drawText renders text objects with the bundled regular face, one face per
// distinct pixel size.
func drawText(img *image.RGBA, v view, records []board.ObjectRecord) error {
	parsed, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return fmt.Errorf("parse font: %w", err)
	}

	faces := map[float64]font.Face{}
	for _, r := range records {
		if r.Kind != "text" || r.Content == "" {
			continue
		}
		size := r.FontSize * v.scale
		if size < 4 {
			size = 4
		}
		face, ok := faces[size]
		if !ok {
			face, err = opentype.NewFace(parsed, &opentype.FaceOptions{
				Size: size, DPI: 72, Hinting: font.HintingFull,
			})
			if err != nil {
				return fmt.Errorf("create face: %w", err)
			}
			faces[size] = face
		}

		c, err := parseHexColor(r.Color, 0)
		if err != nil {
			return err
		}
		drawer := font.Drawer{Dst: img, Src: image.NewUniform(c), Face: face}
		lineHeight := 1.35 * r.FontSize * v.scale
		for i, line := range strings.Split(r.Content, "\n") {
			drawer.Dot = fixed.Point26_6{
				X: fixed.Int26_6((r.X*v.scale + v.ox) * 64),
				Y: fixed.Int26_6((r.Y*v.scale + v.oy + float64(i)*lineHeight + r.FontSize*v.scale) * 64),
			}
			drawer.DrawString(line)
		}
	}
	return nil
}

// parseHexColor parses #rgb and #rrggbb, applying an opacity multiplier
// (zero means opaque).
func parseHexColor(s string, opacity float64) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	n, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	c := color.RGBA{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n), A: 0xff}
	if opacity > 0 && opacity < 1 {
		c.A = uint8(opacity * 255)
		c.R = uint8(float64(c.R) * opacity)
		c.G = uint8(float64(c.G) * opacity)
		c.B = uint8(float64(c.B) * opacity)
	}
	return c, nil
}
