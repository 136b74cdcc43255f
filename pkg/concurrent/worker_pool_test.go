package concurrent

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapKeepsJobOrder(t *testing.T) {
	jobs := make([]int, 100)
	for i := range jobs {
		jobs[i] = i
	}

	var calls atomic.Int64
	out := Map(jobs, 8, func(job int) int {
		calls.Add(1)
		return job * job
	})

	assert.Equal(t, int64(100), calls.Load())
	for i, v := range out {
		assert.Equal(t, i*i, v)
	}
}

func TestMapEmpty(t *testing.T) {
	out := Map([]string{}, 4, func(job string) int { return len(job) })
	assert.Empty(t, out)
}

func TestWorkerPool(t *testing.T) {
	wp := NewWorkerPool[string, int](0, 3)
	wp.Start(func(job string) int { return len(job) })
	wp.AddJob(0, "a")
	wp.AddJob(1, "bb")
	wp.AddJob(2, "ccc")
	wp.Close()
	wp.Wait()

	got := map[int]int{}
	for res := range wp.CollectResults() {
		got[res.ID] = res.Value
	}
	assert.Equal(t, map[int]int{0: 1, 1: 2, 2: 3}, got)
}
