package textbuf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZeroValue(t *testing.T) {
	var b Buffer
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, "", b.String())

	b.Insert(0, 'h', 'i')
	assert.Equal(t, "hi", b.String())
}

func TestInsertDelete(t *testing.T) {
	tests := []struct {
		name string
		edit func(b *Buffer)
		want string
	}{
		{"append", func(b *Buffer) { b.Insert(5, '!') }, "Hello!"},
		{"prepend", func(b *Buffer) { b.Insert(0, '>', ' ') }, "> Hello"},
		{"middle", func(b *Buffer) { b.Insert(2, 'X') }, "HeXllo"},
		{"past end clamps", func(b *Buffer) { b.Insert(99, '.') }, "Hello."},
		{"negative clamps", func(b *Buffer) { b.Insert(-3, '.') }, ".Hello"},
		{"delete range", func(b *Buffer) { b.Delete(1, 4) }, "Ho"},
		{"delete inverted", func(b *Buffer) { b.Delete(4, 1) }, "Hello"},
		{"delete clamps", func(b *Buffer) { b.Delete(3, 50) }, "Hel"},
		{"insert then delete elsewhere", func(b *Buffer) {
			b.Insert(5, ' ', 'w')
			b.Delete(0, 1)
		}, "ello w"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New("Hello")
			tt.edit(b)
			assert.Equal(t, tt.want, b.String())
			assert.Equal(t, len([]rune(tt.want)), b.Len())
		})
	}
}

func TestTypingAndBackspacing(t *testing.T) {
	b := New("ab")
	cursor := 1
	for _, r := range "xyz" {
		b.Insert(cursor, r)
		cursor++
	}
	require.Equal(t, "axyzb", b.String())

	for range 3 {
		b.Delete(cursor-1, cursor)
		cursor--
	}
	assert.Equal(t, "ab", b.String())
	assert.Equal(t, 1, cursor)
}

func TestGrowth(t *testing.T) {
	var b Buffer
	var want strings.Builder
	for i := range 1000 {
		r := rune('a' + i%26)
		b.Insert(b.Len()/2, r)
		s := []rune(want.String())
		mid := len(s) / 2
		want.Reset()
		want.WriteString(string(s[:mid]) + string(r) + string(s[mid:]))
	}
	assert.Equal(t, want.String(), b.String())
}

func TestAppendRangeAcrossGap(t *testing.T) {
	b := New("0123456789")
	b.Insert(5, 'x') // gap now sits right after 'x'
	assert.Equal(t, "34x56", b.Slice(3, 8))
	assert.Equal(t, 'x', b.At(5))
	assert.Equal(t, '9', b.At(10))

	dst := []rune("pre:")
	assert.Equal(t, "pre:01234x56789", string(b.AppendRunes(dst)))
}

func TestMultibyte(t *testing.T) {
	b := New("héllo")
	b.Delete(1, 2)
	b.Insert(1, '日', '本')
	assert.Equal(t, "h日本llo", b.String())
	assert.Equal(t, 6, b.Len())
}

func TestResetReusesStorage(t *testing.T) {
	b := New("a long enough piece of text")
	b.Reset("short")
	assert.Equal(t, "short", b.String())
	b.Insert(5, '!')
	assert.Equal(t, "short!", b.String())
}
