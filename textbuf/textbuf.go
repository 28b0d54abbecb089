package textbuf

import (
	g "go.hasen.dev/generic"
)

// Buffer is a gap buffer of runes. Inserting or deleting at the same place
// repeatedly (typing, backspacing) only moves the gap once, so edits near the
// cursor are O(1) amortized.
//
// The zero value is an empty buffer ready to use.
type Buffer struct {
	data     []rune
	gapStart int
	gapEnd   int
}

const minGrow = 32

func New(text string) *Buffer {
	var b Buffer
	b.Reset(text)
	return &b
}

// Reset replaces the whole content, keeping the allocated storage if it fits.
func (b *Buffer) Reset(text string) {
	runes := []rune(text)
	if cap(b.data) < len(runes)+minGrow {
		b.data = make([]rune, len(runes)+minGrow)
	} else {
		b.data = b.data[:cap(b.data)]
	}
	copy(b.data, runes)
	b.gapStart = len(runes)
	b.gapEnd = len(b.data)
}

func (b *Buffer) Len() int {
	return len(b.data) - b.gapLen()
}

func (b *Buffer) gapLen() int {
	return b.gapEnd - b.gapStart
}

func (b *Buffer) clamp(pos int) int {
	g.Clamp(0, &pos, b.Len())
	return pos
}

// moveGap places the gap so that it starts at pos.
func (b *Buffer) moveGap(pos int) {
	switch {
	case pos < b.gapStart:
		n := b.gapStart - pos
		copy(b.data[b.gapEnd-n:b.gapEnd], b.data[pos:b.gapStart])
		b.gapStart -= n
		b.gapEnd -= n
	case pos > b.gapStart:
		n := pos - b.gapStart
		copy(b.data[b.gapStart:b.gapStart+n], b.data[b.gapEnd:b.gapEnd+n])
		b.gapStart += n
		b.gapEnd += n
	}
}

// ensureGap makes the gap at least n runes wide. Storage doubles so a run of
// single-rune inserts stays amortized O(1).
func (b *Buffer) ensureGap(n int) {
	if b.gapLen() >= n {
		return
	}
	size := max(2*len(b.data), len(b.data)+n, minGrow)
	data := make([]rune, size)
	copy(data, b.data[:b.gapStart])
	tail := len(b.data) - b.gapEnd
	copy(data[size-tail:], b.data[b.gapEnd:])
	b.gapEnd = size - tail
	b.data = data
}

// Insert puts runes at pos (clamped to [0, Len()]).
func (b *Buffer) Insert(pos int, runes ...rune) {
	if len(runes) == 0 {
		return
	}
	pos = b.clamp(pos)
	b.ensureGap(len(runes))
	b.moveGap(pos)
	copy(b.data[b.gapStart:], runes)
	b.gapStart += len(runes)
}

// Delete removes the runes in [from, to). Out of range bounds are clamped and
// an empty or inverted range does nothing. Returns the number removed.
func (b *Buffer) Delete(from, to int) int {
	from = b.clamp(from)
	to = b.clamp(to)
	if to <= from {
		return 0
	}
	b.moveGap(from)
	b.gapEnd += to - from
	return to - from
}

func (b *Buffer) At(i int) rune {
	if i < b.gapStart {
		return b.data[i]
	}
	return b.data[i+b.gapLen()]
}

// AppendRange appends the runes in [from, to) to dst.
func (b *Buffer) AppendRange(dst []rune, from, to int) []rune {
	from = b.clamp(from)
	to = b.clamp(to)
	if to <= from {
		return dst
	}
	if from < b.gapStart {
		dst = append(dst, b.data[from:min(to, b.gapStart)]...)
	}
	if to > b.gapStart {
		gl := b.gapLen()
		dst = append(dst, b.data[max(from, b.gapStart)+gl:to+gl]...)
	}
	return dst
}

// AppendRunes appends the whole content to dst.
func (b *Buffer) AppendRunes(dst []rune) []rune {
	return b.AppendRange(dst, 0, b.Len())
}

func (b *Buffer) Slice(from, to int) string {
	return string(b.AppendRange(nil, from, to))
}

func (b *Buffer) String() string {
	return b.Slice(0, b.Len())
}
