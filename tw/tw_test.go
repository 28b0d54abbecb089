package tw

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.hasen.dev/stage"
)

func TestTFS(t *testing.T) {
	regular, _ := stage.UseGoFonts()
	font, err := stage.NewFont(regular, 14)
	require.NoError(t, err)

	s := TFS(Font(font), FontColor(0, 0, 0, 1), Background(4, 0, 0, 100, 1), CursorColor(0, 100, 50, 1))
	assert.Equal(t, font, s.Font)
	assert.Equal(t, stage.Color{A: 0xff}, s.FontColor)
	require.NotNil(t, s.Background)
	assert.Equal(t, float32(4), s.Background.LeftWidth())
	assert.Equal(t, float32(8), s.Background.TotalHeight())
	require.NotNil(t, s.Cursor)
	assert.Equal(t, float32(2), s.Cursor.TotalWidth())
	assert.True(t, s.Selection.IsZero())
}

func TestTFSDefaults(t *testing.T) {
	s := TFS()
	assert.Equal(t, stage.White, s.FontColor)
	assert.Nil(t, s.Background)
	assert.Nil(t, s.Cursor)
}

func TestTFSWCopies(t *testing.T) {
	base := TFS(CursorColor(0, 0, 0, 1), SelectionColor(210, 80, 60, 0.5))
	plain := TFSW(base, Compose(NoCursor, NoBackground))

	assert.NotNil(t, base.Cursor)
	assert.Nil(t, plain.Cursor)
	assert.Equal(t, base.Selection, plain.Selection)
	assert.False(t, plain.Selection.IsZero())
}

func TestRoundedBackground(t *testing.T) {
	s := TFS(RoundedBackground(stage.RoundedPatch{Radius: 3, Fill: stage.White, Padding: 2}))
	require.NotNil(t, s.Background)
	// corner of 3 plus 2 of padding
	assert.Equal(t, float32(5), s.Background.LeftWidth())
}

func TestPatchOptions(t *testing.T) {
	bg := stage.NewColorPatch(stage.White, 3, 3, 1, 1)
	caret := stage.NewColorPatch(stage.Color{A: 0xff}, 0, 2, 0, 0)
	sel := stage.ColorRegion(stage.Color{B: 0xff, A: 0x80})

	s := TFS(BackgroundPatch(bg), Cursor(caret), Selection(sel))
	assert.Same(t, bg, s.Background)
	assert.Same(t, caret, s.Cursor)
	assert.Equal(t, sel, s.Selection)

	s = TFSW(s, BackgroundPatch(nil))
	assert.Nil(t, s.Background)
	assert.Equal(t, float32(0), s.Background.LeftWidth())
}
