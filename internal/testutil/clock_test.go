package testutil

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStepClock_StartsAtEpoch(t *testing.T) {
	clock := NewStepClock(time.Millisecond)
	assert.Equal(t, Epoch, clock.Now())
}

func TestStepClock_AdvancesByStep(t *testing.T) {
	clock := NewStepClock(5 * time.Millisecond)

	start := clock.Now()
	clock.Now()
	end := clock.Now()

	assert.Equal(t, 10*time.Millisecond, end.Sub(start))
	assert.Equal(t, int64(3), clock.Calls())
}

func TestStepClock_Reset(t *testing.T) {
	clock := NewStepClock(time.Second)
	clock.Now()
	clock.Now()

	clock.Reset()

	assert.Equal(t, int64(0), clock.Calls())
	assert.Equal(t, Epoch, clock.Now())
}

func TestStepClock_ConcurrentUse(t *testing.T) {
	clock := NewStepClock(time.Millisecond)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			clock.Now()
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(50), clock.Calls())
}

func TestFixedIDGenerator(t *testing.T) {
	gen := NewFixedIDGenerator("req-1")
	assert.Equal(t, "req-1", gen.Generate())
	assert.Equal(t, "req-1", gen.Generate())

	assert.Equal(t, "test-request", NewFixedIDGenerator("").Generate())
}
