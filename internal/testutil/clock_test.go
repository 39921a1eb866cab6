package testutil

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStepClock_Next(t *testing.T) {
	start := time.Date(2015, 6, 15, 14, 9, 0, 0, time.UTC)
	c := NewStepClock(start, time.Second)

	assert.Equal(t, start, c.Next())
	assert.Equal(t, start.Add(time.Second), c.Next())
	assert.Equal(t, start.Add(2*time.Second), c.Next())
}

func TestStepClock_Reset(t *testing.T) {
	start := time.Date(2015, 6, 15, 14, 9, 0, 0, time.UTC)
	c := NewStepClock(start, time.Minute)
	c.Next()
	c.Next()

	c.Reset()

	assert.Equal(t, start, c.Next())
}

func TestStepClock_Concurrent(t *testing.T) {
	start := time.Date(2015, 6, 15, 0, 0, 0, 0, time.UTC)
	c := NewStepClock(start, time.Second)

	const workers, calls = 10, 100
	var wg sync.WaitGroup
	seen := make(chan time.Time, workers*calls)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < calls; j++ {
				seen <- c.Next()
			}
		}()
	}
	wg.Wait()
	close(seen)

	unique := make(map[time.Time]bool)
	for ts := range seen {
		unique[ts] = true
	}
	assert.Len(t, unique, workers*calls)
}
