package stage

import (
	"image"
	"image/draw"
	"math"

	"github.com/anthonynsimon/bild/blur"
	"golang.org/x/image/vector"
)

// RoundedPatch describes a generated background: a rounded rectangle with an
// optional border, optionally softened with a gaussian blur.
type RoundedPatch struct {
	Radius      float32
	BorderWidth float32
	Fill        Color
	Border      Color
	Blur        float32
	// extra inset beyond the corner, reserved as padding
	Padding float32
}

// GenerateRoundedPatch rasterizes the shape into a small image and slices it
// into a nine patch whose insets cover the corners.
func GenerateRoundedPatch(rp RoundedPatch) *NinePatch {
	corner := int(math.Ceil(float64(rp.Radius + rp.BorderWidth + rp.Blur*2)))
	corner = max(corner, 1)
	size := corner*2 + 2 // two pixels of stretchable middle

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	full := float32(size)

	if rp.BorderWidth > 0 && rp.Border.A > 0 {
		fillRoundedRect(img, 0, 0, full, full, rp.Radius, rp.Border)
		inner := max(0, rp.Radius-rp.BorderWidth)
		bw := rp.BorderWidth
		fillRoundedRect(img, bw, bw, full-bw*2, full-bw*2, inner, rp.Fill)
	} else {
		fillRoundedRect(img, 0, 0, full, full, rp.Radius, rp.Fill)
	}

	if rp.Blur > 0 {
		img = blur.Gaussian(img, float64(rp.Blur))
	}

	patch := NewNinePatch(img, corner, corner, corner, corner)
	pad := rp.Padding
	patch.Left += pad
	patch.Right += pad
	patch.Top += pad
	patch.Bottom += pad
	return patch
}

// based on gio/op/clip/shapes.go
// based on https://pomax.github.io/bezierinfo/#circles_cubic
func fillRoundedRect(dst *image.RGBA, x, y, w, h, radius float32, c Color) {
	if w <= 0 || h <= 0 {
		return
	}
	b := dst.Bounds()
	p := vector.NewRasterizer(b.Dx(), b.Dy())
	p.DrawOp = draw.Over

	const q = 4 * (math.Sqrt2 - 1) / 3
	const iq = 1 - q

	r := min(radius, w/2, h/2)
	wx := x
	n := y
	e := x + w
	s := y + h

	p.MoveTo(wx+r, n)
	p.LineTo(e-r, n) // N
	p.CubeTo(        // NE
		e-r*iq, n,
		e, n+r*iq,
		e, n+r)
	p.LineTo(e, s-r) // E
	p.CubeTo(        // SE
		e, s-r*iq,
		e-r*iq, s,
		e-r, s)
	p.LineTo(wx+r, s) // S
	p.CubeTo(         // SW
		wx+r*iq, s,
		wx, s-r*iq,
		wx, s-r)
	p.LineTo(wx, n+r) // W
	p.CubeTo(         // NW
		wx, n+r*iq,
		wx+r*iq, n,
		wx+r, n)
	p.ClosePath()

	p.Draw(dst, b, image.NewUniform(c), image.Point{})
}
