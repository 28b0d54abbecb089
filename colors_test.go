package stage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#fff", White},
		{"#102030", Color{R: 0x10, G: 0x20, B: 0x30, A: 0xff}},
		{" #10203040 ", Color{R: 0x10, G: 0x20, B: 0x30, A: 0x40}},
		{"hsla(0, 0, 100, 1)", White},
		{"hsla(0, 100, 50, 0.5)", Color{R: 0xff, A: 0x7f}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseColorErrors(t *testing.T) {
	for _, in := range []string{"", "red", "#12", "#zzzzzz", "hsla(1, 2, 3)", "hsla(a, b, c, d)"} {
		_, err := ParseColor(in)
		assert.ErrorIs(t, err, ErrBadColor, "input %q", in)
	}
}

func TestTintAndAlpha(t *testing.T) {
	c := Color{R: 200, G: 100, B: 50, A: 255}
	assert.Equal(t, c, Tint(c, White))
	assert.Equal(t, Color{}, Tint(c, Color{}))
	assert.Equal(t, uint8(127), MulAlpha(c, 0.5).A)
	assert.Equal(t, c, MulAlpha(c, 3))
	assert.Equal(t, uint8(0), MulAlpha(c, -1).A)
}
