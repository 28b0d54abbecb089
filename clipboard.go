package stage

import (
	"sync"
	"time"
)

// Clipboard is the system clipboard as seen by widgets.
type Clipboard interface {
	// Contents returns the current text, or false when there is none.
	Contents() (string, bool)
	SetContents(text string)
}

// MemoryClipboard keeps the contents in process. Hosts that bridge to the
// system clipboard refresh it before delivering paste shortcuts.
type MemoryClipboard struct {
	mu   sync.Mutex
	text string
	set  bool

	// OnSet, when not nil, is called after every SetContents so hosts can
	// forward writes to the system.
	OnSet func(text string)
}

func (c *MemoryClipboard) Contents() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text, c.set
}

func (c *MemoryClipboard) SetContents(text string) {
	c.mu.Lock()
	c.text = text
	c.set = true
	onSet := c.OnSet
	c.mu.Unlock()
	if onSet != nil {
		onSet(text)
	}
}

// Refresh replaces the contents without calling OnSet; used when the system
// clipboard is read.
func (c *MemoryClipboard) Refresh(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.text = text
	c.set = true
}

var defaultClipboard = &MemoryClipboard{}

// DefaultClipboard is shared by widgets that were not given one explicitly.
// The Gio host bridges it to the system clipboard.
func DefaultClipboard() *MemoryClipboard {
	return defaultClipboard
}

const DefaultPasteTimeout = 500 * time.Millisecond

// PendingPaste holds a paste shortcut while the host reads the system
// clipboard. A read that is not answered within Timeout (DefaultPasteTimeout
// when zero) is dropped, so late or unrelated clipboard data never turns into
// a paste.
type PendingPaste struct {
	Timeout time.Duration

	mods    Modifiers
	at      time.Time
	pending bool
}

// Request records a paste shortcut pressed with mods at now.
func (p *PendingPaste) Request(mods Modifiers, now time.Time) {
	p.mods = mods
	p.at = now
	p.pending = true
}

// Take returns the modifiers of a live request and clears it. ok is false
// when nothing is waiting or the request expired.
func (p *PendingPaste) Take(now time.Time) (mods Modifiers, ok bool) {
	p.Expire(now)
	if !p.pending {
		return ModNone, false
	}
	p.pending = false
	return p.mods, true
}

// Expire drops a request older than the timeout; hosts call it every frame.
func (p *PendingPaste) Expire(now time.Time) {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultPasteTimeout
	}
	if p.pending && now.Sub(p.at) > timeout {
		p.pending = false
	}
}

// Cancel drops any waiting request.
func (p *PendingPaste) Cancel() {
	p.pending = false
}

func (p *PendingPaste) Pending() bool {
	return p.pending
}
