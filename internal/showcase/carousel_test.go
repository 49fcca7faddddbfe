package showcase

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestCarousel_TicksWrapAround(t *testing.T) {
	c := NewCarousel(2, CarouselOptions{})
	defer c.Close()

	for i := 0; i < 3; i++ {
		require.True(t, c.Tick())
	}
	assert.Equal(t, 3%2, c.Active())
	assert.True(t, c.Autoplay())
}

func TestCarousel_ManualNavigationStopsAutoplay(t *testing.T) {
	c := NewCarousel(4, CarouselOptions{})
	defer c.Close()

	c.Tick()
	c.Next()
	assert.Equal(t, 2, c.Active())
	assert.False(t, c.Autoplay())

	assert.False(t, c.Tick())
	assert.Equal(t, 2, c.Active())

	c.SetAutoplay(true)
	assert.True(t, c.Tick())
	assert.Equal(t, 3, c.Active())
}

func TestCarousel_PrevWrapsToLast(t *testing.T) {
	c := NewCarousel(3, CarouselOptions{})
	defer c.Close()

	c.Prev()
	assert.Equal(t, 2, c.Active())
	assert.False(t, c.Autoplay())
}

func TestCarousel_GoTo(t *testing.T) {
	c := NewCarousel(3, CarouselOptions{})
	defer c.Close()

	assert.False(t, c.GoTo(7))
	assert.True(t, c.Autoplay(), "ignored jump keeps autoplay")

	assert.True(t, c.GoTo(1))
	assert.Equal(t, 1, c.Active())
	assert.False(t, c.Autoplay())
}

func TestCarousel_EmptyNeverAdvances(t *testing.T) {
	c := NewCarousel(0, CarouselOptions{Interval: time.Millisecond})
	c.Start()
	defer c.Close()

	assert.False(t, c.Tick())
	c.Next()
	assert.Equal(t, 0, c.Active())
}

func TestCarousel_TimerAdvances(t *testing.T) {
	changes := make(chan int, 16)
	c := NewCarousel(3, CarouselOptions{
		Interval: 5 * time.Millisecond,
		OnChange: func(i int) {
			select {
			case changes <- i:
			default:
			}
		},
	})
	c.Start()
	defer c.Close()

	for want := 1; want <= 3; want++ {
		select {
		case got := <-changes:
			assert.Equal(t, want%3, got)
		case <-time.After(time.Second):
			t.Fatalf("timer did not advance to slide %d", want%3)
		}
	}
}

func TestCarousel_NextCancelsTimer(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	c := NewCarousel(5, CarouselOptions{
		Interval: 2 * time.Millisecond,
		OnChange: func(int) {
			mu.Lock()
			calls++
			mu.Unlock()
		},
	})
	c.Start()
	defer c.Close()

	c.Next()
	mu.Lock()
	after := calls
	mu.Unlock()
	active := c.Active()

	time.Sleep(20 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, after, calls, "no automatic advance after manual navigation")
	assert.Equal(t, active, c.Active())
}

func TestCarousel_NoCallbacksAfterClose(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	c := NewCarousel(3, CarouselOptions{
		Interval: time.Millisecond,
		OnChange: func(int) {
			mu.Lock()
			calls++
			mu.Unlock()
		},
	})
	c.Start()
	time.Sleep(5 * time.Millisecond)
	c.Close()

	mu.Lock()
	before := calls
	mu.Unlock()
	time.Sleep(10 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, before, calls)

	assert.False(t, c.Tick())
	c.Close()
}
