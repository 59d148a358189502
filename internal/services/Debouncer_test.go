package services

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncer_RunsLastTriggerOnly(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	var last atomic.Int32
	var runs atomic.Int32

	for i := int32(1); i <= 5; i++ {
		d.Trigger(func() {
			runs.Add(1)
			last.Store(i)
		})
	}

	assert.Eventually(t, func() bool { return runs.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), runs.Load())
	assert.Equal(t, int32(5), last.Load())
}

func TestDebouncer_Cancel(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var runs atomic.Int32
	d.Trigger(func() { runs.Add(1) })
	d.Cancel()

	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, runs.Load())
}
