package stage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func goRegular(t *testing.T, size float32) *Font {
	t.Helper()
	regular, _ := UseGoFonts()
	f, err := NewFont(regular, size)
	require.NoError(t, err)
	return f
}

func TestUseGoFonts(t *testing.T) {
	regular, mono := UseGoFonts()
	require.NotZero(t, regular)
	require.NotZero(t, mono)
	assert.NotEqual(t, regular, mono)

	again, _ := UseGoFonts()
	assert.Equal(t, regular, again, "registered once")

	face := GetFace(regular)
	assert.Greater(t, face.InvUPM, float32(0))
	assert.Greater(t, face.Ascender, float32(0))
	assert.Less(t, face.Descender, float32(0))
	assert.NotZero(t, LookupFamily(face.Family))
}

func TestUseFontBytes(t *testing.T) {
	ids, err := UseFontBytes(goregular.TTF)
	require.NoError(t, err)
	require.Len(t, ids, 1)
	assert.NotNil(t, ParsedFace(ids[0]))

	_, err = UseFontBytes([]byte("not a font"))
	assert.Error(t, err)
}

func TestNewFontUnknown(t *testing.T) {
	_, err := NewFont(0, 12)
	assert.ErrorIs(t, err, ErrFontNotFound)
	_, err = NewFont(1<<20, 12)
	assert.ErrorIs(t, err, ErrFontNotFound)
}

func TestFontMetrics(t *testing.T) {
	f := goRegular(t, 20)
	assert.Equal(t, float32(20), f.Size())
	assert.Greater(t, f.Ascent(), float32(10))
	assert.Less(t, f.Descent(), float32(0))
	assert.GreaterOrEqual(t, f.LineHeight(), f.Ascent()-f.Descent())

	small := goRegular(t, 10)
	assert.InDelta(t, f.Ascent()/2, small.Ascent(), 0.001)
}

func TestContainsCharacter(t *testing.T) {
	f := goRegular(t, 16)
	assert.True(t, f.ContainsCharacter('a'))
	assert.True(t, f.ContainsCharacter('é'))
	assert.False(t, f.ContainsCharacter('\b'))
	assert.False(t, f.ContainsCharacter(0x7f))
	assert.False(t, f.ContainsCharacter('\n'))
	assert.False(t, f.ContainsCharacter('中'))
}

func TestGlyphPositions(t *testing.T) {
	f := goRegular(t, 16)
	text := []rune("Hi there")

	advances, positions := f.ComputeGlyphAdvancesAndPositions(text, nil, nil)
	require.Len(t, advances, len(text)+1)
	require.Len(t, positions, len(text)+1)
	assert.Zero(t, positions[0])
	assert.Zero(t, advances[len(text)])
	for i := range text {
		assert.Greater(t, advances[i], float32(0), "advance %d", i)
		assert.InDelta(t, positions[i]+advances[i], positions[i+1], 0.001)
	}
	assert.InDelta(t, positions[len(text)], f.Bounds(text).Width, 0.001)
	assert.Equal(t, f.Ascent(), f.Bounds(text).Height)

	// the slices are reused
	advances, positions = f.ComputeGlyphAdvancesAndPositions([]rune("ab"), advances[:0], positions[:0])
	assert.Len(t, advances, 3)
	assert.Len(t, positions, 3)

	_, positions = f.ComputeGlyphAdvancesAndPositions(nil, nil, nil)
	assert.Equal(t, []float32{0}, positions)
}

func TestFontDrawRange(t *testing.T) {
	f := goRegular(t, 16)
	text := []rune("a b")
	_, positions := f.ComputeGlyphAdvancesAndPositions(text, nil, nil)

	b := NewBatch()
	f.Draw(b, text, 4, 20, 0, 10)
	ss := b.End()
	// end is clamped to the text
	require.Len(t, ss, 3)
	assert.Equal(t, Vec2{4, 20}, ss[0].Rect.Origin)
	assert.InDelta(t, 4+positions[2], ss[2].Rect.Origin[0], 0.001)
	assert.Equal(t, float32(16), ss[2].Rect.Size[1])

	b.Begin()
	f.Draw(b, text, 0, 0, 2, 3)
	assert.Len(t, b.End(), 1)
}

func TestGlyphOutline(t *testing.T) {
	regular, _ := UseGoFonts()
	face := ParsedFace(regular)
	require.NotNil(t, face)
	gid, ok := face.NominalGlyph('O')
	require.True(t, ok)
	assert.NotEmpty(t, GlyphOutline(regular, gid).Segments)
	assert.Empty(t, GlyphOutline(0, gid).Segments)
}
