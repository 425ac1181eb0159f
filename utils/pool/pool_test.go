package pool

import (
	"sync/atomic"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool(t *testing.T) {
	t.Parallel()

	var jobCount int32
	p := NewPool(10, func(int) error {
		atomic.AddInt32(&jobCount, 1)
		return nil
	})

	cc := make(chan int)
	go func() {
		for i := 0; i < 10; i++ {
			cc <- i
		}
		close(cc)
	}()
	p.Work(cc)

	require.NoError(t, p.Wait())
	assert.Equal(t, int32(10), atomic.LoadInt32(&jobCount))
}

func TestRun_ConcurrencyLimit(t *testing.T) {
	t.Parallel()

	var running, peak int32
	err := Run(50, 3, func(int) error {
		cur := atomic.AddInt32(&running, 1)
		for {
			old := atomic.LoadInt32(&peak)
			if cur <= old || atomic.CompareAndSwapInt32(&peak, old, cur) {
				break
			}
		}
		atomic.AddInt32(&running, -1)
		return nil
	})
	require.NoError(t, err)
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(3))
}

func TestRun_ReturnsLowestIndexError(t *testing.T) {
	t.Parallel()

	err := Run(20, 4, func(index int) error {
		if index%5 == 3 {
			return errors.Errorf("job %d failed", index)
		}
		return nil
	})
	require.Error(t, err)
	assert.Equal(t, "job 3 failed", err.Error())
}

func TestRun_NoJobs(t *testing.T) {
	t.Parallel()

	assert.NoError(t, Run(0, 0, func(int) error { return errors.New("never") }))
}
