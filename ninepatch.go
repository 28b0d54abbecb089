package stage

import (
	"image"
)

// nine patch slots, row by row
const (
	patchTopLeft = iota
	patchTop
	patchTopRight
	patchLeft
	patchCenter
	patchRight
	patchBottomLeft
	patchBottom
	patchBottomRight
)

// NinePatch stretches a bordered image over any rectangle: corners are drawn
// as is, edges stretch along one axis and the centre along both.
//
// A nil *NinePatch is valid and draws nothing with zero insets, so optional
// style parts can be left out.
type NinePatch struct {
	patches [9]TextureRegion

	Left, Right, Top, Bottom float32

	// size of the centre slice in source pixels
	middleWidth, middleHeight float32
}

// NewNinePatch slices src into nine regions. The insets are in source pixels.
func NewNinePatch(src image.Image, left, right, top, bottom int) *NinePatch {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	cw := max(0, w-left-right)
	ch := max(0, h-top-bottom)

	cols := [3][2]int{{0, left}, {left, cw}, {w - right, right}}
	rows := [3][2]int{{0, top}, {top, ch}, {h - bottom, bottom}}

	p := &NinePatch{
		Left:         float32(left),
		Right:        float32(right),
		Top:          float32(top),
		Bottom:       float32(bottom),
		middleWidth:  float32(cw),
		middleHeight: float32(ch),
	}
	for r, row := range rows {
		for c, col := range cols {
			if col[1] <= 0 || row[1] <= 0 {
				continue
			}
			p.patches[r*3+c] = NewTextureRegion(src, image.Rect(col[0], row[0], col[0]+col[1], row[0]+row[1]))
		}
	}
	return p
}

// NewColorPatch is a solid patch. Its insets only reserve space (padding for
// backgrounds, width for cursors).
func NewColorPatch(c Color, left, right, top, bottom float32) *NinePatch {
	p := &NinePatch{Left: left, Right: right, Top: top, Bottom: bottom}
	for i := range p.patches {
		p.patches[i] = ColorRegion(c)
	}
	return p
}

func (p *NinePatch) LeftWidth() float32 {
	if p == nil {
		return 0
	}
	return p.Left
}

func (p *NinePatch) RightWidth() float32 {
	if p == nil {
		return 0
	}
	return p.Right
}

func (p *NinePatch) TopHeight() float32 {
	if p == nil {
		return 0
	}
	return p.Top
}

func (p *NinePatch) BottomHeight() float32 {
	if p == nil {
		return 0
	}
	return p.Bottom
}

func (p *NinePatch) TotalWidth() float32 {
	if p == nil {
		return 0
	}
	return p.Left + p.middleWidth + p.Right
}

func (p *NinePatch) TotalHeight() float32 {
	if p == nil {
		return 0
	}
	return p.Top + p.middleHeight + p.Bottom
}

// Draw fills the rectangle. When it is smaller than the corners, the corners
// are squeezed to half the size each.
func (p *NinePatch) Draw(b *Batch, x, y, w, h float32) {
	if p == nil || w <= 0 || h <= 0 {
		return
	}

	if p.isSolid() {
		b.Draw(p.patches[patchCenter], x, y, w, h)
		return
	}

	l, r, t, bt := p.Left, p.Right, p.Top, p.Bottom
	if l+r > w {
		l, r = w/2, w/2
	}
	if t+bt > h {
		t, bt = h/2, h/2
	}
	cw := w - l - r
	ch := h - t - bt

	xs := [3][2]float32{{x, l}, {x + l, cw}, {x + w - r, r}}
	ys := [3][2]float32{{y, t}, {y + t, ch}, {y + h - bt, bt}}

	for row, ry := range ys {
		for col, cx := range xs {
			region := p.patches[row*3+col]
			if region.IsZero() {
				continue
			}
			b.Draw(region, cx[0], ry[0], cx[1], ry[1])
		}
	}
}

// solid patches draw as a single rectangle
func (p *NinePatch) isSolid() bool {
	c := p.patches[patchCenter]
	if c.Image != 0 {
		return false
	}
	for _, region := range p.patches {
		if region != c {
			return false
		}
	}
	return true
}
