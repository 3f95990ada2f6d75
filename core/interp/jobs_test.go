package interp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJobTable(t *testing.T) {
	jobs := NewJobTable(4)
	assert.Equal(t, 0, jobs.Len())

	assert.True(t, jobs.Add(100))
	assert.True(t, jobs.Add(200))
	assert.True(t, jobs.Add(300))

	assert.True(t, jobs.Has(200))
	assert.False(t, jobs.Has(400))
	assert.Equal(t, []int{100, 200, 300}, jobs.Pids())

	assert.True(t, jobs.Remove(200))
	assert.False(t, jobs.Remove(200))
	assert.Equal(t, []int{100, 300}, jobs.Pids())
}

func TestJobTableBounded(t *testing.T) {
	jobs := NewJobTable(2)
	assert.True(t, jobs.Add(1))
	assert.True(t, jobs.Add(2))
	assert.False(t, jobs.Add(3), "table at capacity must refuse new pids")
	assert.Equal(t, 2, jobs.Len())

	// Freeing a slot makes room again.
	assert.True(t, jobs.Remove(1))
	assert.True(t, jobs.Add(3))
}

func TestJobTablePidsIsACopy(t *testing.T) {
	jobs := NewJobTable(4)
	jobs.Add(1)
	jobs.Add(2)

	pids := jobs.Pids()
	pids[0] = 99
	assert.Equal(t, []int{1, 2}, jobs.Pids())
}
