package watcher

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncer_FiresOnceAfterDelay(t *testing.T) {
	var called atomic.Int32
	delay := 50 * time.Millisecond
	d := NewDebouncer(delay, func(path string) {
		assert.Equal(t, "/src/main.go", path)
		called.Add(1)
	})

	d.Add("/src/main.go")
	assert.True(t, d.IsPending("/src/main.go"))
	assert.Equal(t, delay, d.GetDelay())

	assert.Eventually(t, func() bool { return called.Load() == 1 }, time.Second, 10*time.Millisecond)
	assert.False(t, d.IsPending("/src/main.go"))
}

func TestDebouncer_CoalescesRapidEvents(t *testing.T) {
	var called atomic.Int32
	d := NewDebouncer(80*time.Millisecond, func(string) { called.Add(1) })

	for i := 0; i < 5; i++ {
		d.Add("/src/main.go")
		time.Sleep(20 * time.Millisecond)
	}

	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, int32(1), called.Load())
}

func TestDebouncer_TracksPathsIndependently(t *testing.T) {
	var mu sync.Mutex
	seen := map[string]int{}
	d := NewDebouncer(30*time.Millisecond, func(path string) {
		mu.Lock()
		seen[path]++
		mu.Unlock()
	})

	d.Add("a.go")
	d.Add("b.go")
	d.Add("c.go")
	assert.Equal(t, 3, d.PendingCount())

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) == 3
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, map[string]int{"a.go": 1, "b.go": 1, "c.go": 1}, seen)
}

func TestDebouncer_Cancel(t *testing.T) {
	var called atomic.Int32
	d := NewDebouncer(50*time.Millisecond, func(string) { called.Add(1) })

	d.Add("a.go")
	d.Add("b.go")
	d.Cancel("a.go")
	d.Cancel("never-added.go")
	assert.Equal(t, 1, d.PendingCount())

	d.CancelAll()
	assert.Zero(t, d.PendingCount())

	time.Sleep(120 * time.Millisecond)
	assert.Zero(t, called.Load())
}

func TestDebouncer_NilCallback(t *testing.T) {
	d := NewDebouncer(10*time.Millisecond, nil)
	d.Add("a.go")
	assert.Eventually(t, func() bool { return d.PendingCount() == 0 }, time.Second, 5*time.Millisecond)
}

func TestDebouncer_ConcurrentAccess(t *testing.T) {
	var called atomic.Int32
	d := NewDebouncer(20*time.Millisecond, func(string) { called.Add(1) })

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				d.Add("shared.go")
				_ = d.PendingCount()
			}
		}()
	}
	wg.Wait()

	assert.Eventually(t, func() bool { return d.PendingCount() == 0 }, time.Second, 5*time.Millisecond)
	assert.GreaterOrEqual(t, called.Load(), int32(1))
}
