package concurrent

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoroutinePoolSchedule(t *testing.T) {
	p := NewGoroutinePool(4, 2)
	defer p.Close()
	p.Spawn(2)

	var (
		wg    sync.WaitGroup
		count atomic.Int64
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		require.NoError(t, p.Schedule(func() {
			defer wg.Done()
			count.Add(1)
		}))
	}
	wg.Wait()
	assert.Equal(t, int64(50), count.Load())
}

func TestGoroutinePoolScheduleTimeout(t *testing.T) {
	p := NewGoroutinePool(1, 0)

	release := make(chan struct{})
	started := make(chan struct{})
	require.NoError(t, p.Schedule(func() {
		close(started)
		<-release
	}))
	<-started

	err := p.ScheduleTimeout(10*time.Millisecond, func() {})
	assert.ErrorIs(t, err, ErrScheduleTimeout)

	close(release)
	p.Close()
	p.Close()
	assert.ErrorIs(t, p.Schedule(func() {}), ErrPoolClosed)
}
