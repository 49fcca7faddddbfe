package showcase

import (
	"sync"
	"time"
)

// Carousel rotates through n slides. While autoplay is on, a timer advances
// the active slide every interval. Manual navigation turns autoplay off and
// cancels the timer; only SetAutoplay(true) turns it back on.
//
// OnChange is called outside the carousel lock, from the timer goroutine or
// from the goroutine doing manual navigation. It must not call back into the
// carousel.
type Carousel struct {
	mu       sync.Mutex
	n        int
	active   int
	autoplay bool
	started  bool
	closed   bool
	interval time.Duration
	onChange func(index int)
	timer    *timerLoop
}

// CarouselOptions configures a carousel. A zero Interval disables the timer;
// Tick can still be used to advance.
type CarouselOptions struct {
	Interval time.Duration
	OnChange func(index int)
}

type timerLoop struct {
	stop chan struct{}
	done chan struct{}
}

func (t *timerLoop) halt() {
	if t == nil {
		return
	}
	close(t.stop)
	<-t.done
}

// NewCarousel returns a carousel on slide 0 with autoplay on. The timer does
// not run until Start.
func NewCarousel(n int, opts CarouselOptions) *Carousel {
	if n < 0 {
		n = 0
	}
	return &Carousel{
		n:        n,
		autoplay: true,
		interval: opts.Interval,
		onChange: opts.OnChange,
	}
}

// Start launches the autoplay timer.
func (c *Carousel) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.started = true
	c.startTimerLocked()
}

// Close cancels the timer. No OnChange call happens after Close returns,
// except from manual navigation racing with it.
func (c *Carousel) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	t := c.detachTimerLocked()
	c.mu.Unlock()
	t.halt()
}

// Tick advances one slide the way the timer does. It does nothing while
// autoplay is off.
func (c *Carousel) Tick() bool {
	c.mu.Lock()
	if c.closed || !c.autoplay || c.n == 0 {
		c.mu.Unlock()
		return false
	}
	idx := c.stepLocked(1)
	c.mu.Unlock()
	c.notify(idx)
	return true
}

// Next moves forward one slide and stops autoplay.
func (c *Carousel) Next() {
	c.navigate(func() int { return c.stepLocked(1) })
}

// Prev moves back one slide and stops autoplay.
func (c *Carousel) Prev() {
	c.navigate(func() int { return c.stepLocked(-1) })
}

// GoTo jumps to slide i and stops autoplay. Out of range indexes are ignored.
func (c *Carousel) GoTo(i int) bool {
	c.mu.Lock()
	ok := i >= 0 && i < c.n
	c.mu.Unlock()
	if !ok {
		return false
	}
	c.navigate(func() int {
		c.active = i
		return i
	})
	return true
}

// SetAutoplay switches autoplay. Turning it off cancels a running timer.
func (c *Carousel) SetAutoplay(on bool) {
	c.mu.Lock()
	if c.closed || c.autoplay == on {
		c.mu.Unlock()
		return
	}
	c.autoplay = on
	if on {
		c.startTimerLocked()
		c.mu.Unlock()
		return
	}
	t := c.detachTimerLocked()
	c.mu.Unlock()
	t.halt()
}

// Active is the index of the slide on show.
func (c *Carousel) Active() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// Autoplay reports whether the timer may advance slides.
func (c *Carousel) Autoplay() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.autoplay
}

// Len is the number of slides.
func (c *Carousel) Len() int {
	return c.n
}

func (c *Carousel) navigate(move func() int) {
	c.mu.Lock()
	if c.closed || c.n == 0 {
		c.mu.Unlock()
		return
	}
	c.autoplay = false
	t := c.detachTimerLocked()
	idx := move()
	c.mu.Unlock()
	t.halt()
	c.notify(idx)
}

func (c *Carousel) stepLocked(delta int) int {
	c.active = ((c.active+delta)%c.n + c.n) % c.n
	return c.active
}

func (c *Carousel) notify(idx int) {
	if c.onChange != nil {
		c.onChange(idx)
	}
}

func (c *Carousel) startTimerLocked() {
	if !c.started || c.closed || !c.autoplay || c.interval <= 0 || c.n == 0 || c.timer != nil {
		return
	}
	t := &timerLoop{stop: make(chan struct{}), done: make(chan struct{})}
	c.timer = t
	go c.run(t)
}

func (c *Carousel) detachTimerLocked() *timerLoop {
	t := c.timer
	c.timer = nil
	return t
}

func (c *Carousel) run(t *timerLoop) {
	defer close(t.done)
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-t.stop:
			return
		case <-ticker.C:
			c.mu.Lock()
			if c.timer != t || !c.autoplay {
				c.mu.Unlock()
				return
			}
			idx := c.stepLocked(1)
			c.mu.Unlock()
			c.notify(idx)
		}
	}
}
