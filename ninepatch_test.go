package stage

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilNinePatch(t *testing.T) {
	var p *NinePatch
	assert.Zero(t, p.LeftWidth())
	assert.Zero(t, p.RightWidth())
	assert.Zero(t, p.TopHeight())
	assert.Zero(t, p.BottomHeight())
	assert.Zero(t, p.TotalWidth())
	assert.Zero(t, p.TotalHeight())

	b := NewBatch()
	p.Draw(b, 0, 0, 10, 10)
	assert.Empty(t, b.End())
}

func TestColorPatchDrawsOnce(t *testing.T) {
	red := Color{R: 255, A: 255}
	p := NewColorPatch(red, 1, 2, 3, 4)
	assert.Equal(t, float32(3), p.TotalWidth())
	assert.Equal(t, float32(7), p.TotalHeight())

	b := NewBatch()
	p.Draw(b, 5, 5, 20, 10)
	ss := b.End()
	require.Len(t, ss, 1)
	assert.Equal(t, RectXYWH(5, 5, 20, 10), ss[0].Rect)
	assert.Equal(t, red, ss[0].Color)
}

func TestImagePatchSlices(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 10, 8))
	p := NewNinePatch(src, 2, 3, 1, 2)
	assert.Equal(t, float32(10), p.TotalWidth())
	assert.Equal(t, float32(8), p.TotalHeight())

	b := NewBatch()
	p.Draw(b, 0, 0, 100, 50)
	ss := b.End()
	require.Len(t, ss, 9)

	want := []Rect{
		RectXYWH(0, 0, 2, 1), RectXYWH(2, 0, 95, 1), RectXYWH(97, 0, 3, 1),
		RectXYWH(0, 1, 2, 47), RectXYWH(2, 1, 95, 47), RectXYWH(97, 1, 3, 47),
		RectXYWH(0, 48, 2, 2), RectXYWH(2, 48, 95, 2), RectXYWH(97, 48, 3, 2),
	}
	for i, s := range ss {
		assert.Equal(t, want[i], s.Rect, "slice %d", i)
		assert.NotZero(t, s.ImageId)
	}
	assert.Equal(t, 5, p.patches[patchCenter].Width)
	assert.Equal(t, 5, p.patches[patchCenter].Height)
}

func TestImagePatchSqueezesCorners(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 12, 12))
	p := NewNinePatch(src, 4, 4, 4, 4)

	b := NewBatch()
	p.Draw(b, 0, 0, 6, 6)
	ss := b.End()
	// no room for the middle row and column
	require.Len(t, ss, 4)
	assert.Equal(t, RectXYWH(3, 3, 3, 3), ss[3].Rect)
}

func TestGenerateRoundedPatch(t *testing.T) {
	fill := Color{R: 250, G: 250, B: 250, A: 255}
	p := GenerateRoundedPatch(RoundedPatch{Radius: 4, BorderWidth: 1, Fill: fill, Border: Color{A: 255}, Padding: 2})
	assert.Equal(t, float32(5+2), p.LeftWidth())
	assert.Equal(t, float32(5+2), p.TopHeight())

	center := LookupImage(p.patches[patchCenter].Image)
	require.NotNil(t, center)
	c := center.RGBAAt(0, 0)
	assert.Equal(t, uint8(250), c.R)
	assert.Equal(t, uint8(255), c.A)

	corner := LookupImage(p.patches[patchTopLeft].Image)
	assert.Less(t, corner.RGBAAt(0, 0).A, uint8(255), "corner pixel is outside the rounding")

	soft := GenerateRoundedPatch(RoundedPatch{Radius: 2, Fill: fill, Blur: 2})
	assert.Equal(t, float32(6), soft.LeftWidth())
}
