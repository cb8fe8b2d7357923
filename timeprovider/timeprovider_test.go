package timeprovider

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSystem_Now(t *testing.T) {
	before := time.Now()
	now := System{}.Now()
	after := time.Now()

	assert.False(t, now.Before(before))
	assert.False(t, now.After(after))
}

func TestManual_SetAndAdvance(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := NewManual(start)

	assert.Equal(t, start, clock.Now())

	next := clock.Advance(90 * time.Second)
	assert.Equal(t, start.Add(90*time.Second), next)
	assert.Equal(t, next, clock.Now())

	later := start.Add(time.Hour)
	clock.Set(later)
	assert.Equal(t, later, clock.Now())
}

func TestManual_ConcurrentAdvance(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := NewManual(start)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			clock.Advance(time.Millisecond)
			_ = clock.Now()
		}()
	}
	wg.Wait()

	assert.Equal(t, start.Add(50*time.Millisecond), clock.Now())
}
