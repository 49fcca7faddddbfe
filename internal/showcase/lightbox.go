// Package showcase holds the state machines behind the gallery lightbox and
// the testimonial carousel.
package showcase

// ScrollLock is the page-level scrolling switch the lightbox toggles.
type ScrollLock interface {
	LockScroll()
	UnlockScroll()
}

// PageScroll is a ScrollLock that only records the state, used by
// server-rendered pages to mark the body as non-scrollable.
type PageScroll struct {
	locked bool
}

func (p *PageScroll) LockScroll()   { p.locked = true }
func (p *PageScroll) UnlockScroll() { p.locked = false }

// Locked reports whether scrolling is currently suppressed.
func (p *PageScroll) Locked() bool { return p.locked }

// Lightbox is either closed or open on one selected item.
type Lightbox[T any] struct {
	scroll   ScrollLock
	selected *T
}

// NewLightbox returns a closed lightbox bound to a scroll lock.
func NewLightbox[T any](scroll ScrollLock) *Lightbox[T] {
	return &Lightbox[T]{scroll: scroll}
}

// Open selects item and suppresses background scrolling. Opening an already
// open lightbox swaps the selection.
func (l *Lightbox[T]) Open(item T) {
	if l.selected == nil && l.scroll != nil {
		l.scroll.LockScroll()
	}
	l.selected = &item
}

// Close clears the selection and restores scrolling.
func (l *Lightbox[T]) Close() {
	if l.selected == nil {
		return
	}
	l.selected = nil
	if l.scroll != nil {
		l.scroll.UnlockScroll()
	}
}

// IsOpen reports whether an item is selected.
func (l *Lightbox[T]) IsOpen() bool {
	return l.selected != nil
}

// Selected returns the open item.
func (l *Lightbox[T]) Selected() (T, bool) {
	if l.selected == nil {
		var zero T
		return zero, false
	}
	return *l.selected, true
}
