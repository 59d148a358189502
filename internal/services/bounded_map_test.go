package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoundedMap_EvictsLeastRecentlyUsed(t *testing.T) {
	m := newBoundedMap[int](2)
	m.put("a", 1)
	m.put("b", 2)
	_, _ = m.get("a")
	m.put("c", 3)

	_, ok := m.get("b")
	assert.False(t, ok)
	v, ok := m.get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Equal(t, 2, m.len())
}

func TestBoundedMap_GetOrCreate(t *testing.T) {
	m := newBoundedMap[int](1)
	created := 0
	create := func() int { created++; return created }

	assert.Equal(t, 1, m.getOrCreate("a", create))
	assert.Equal(t, 1, m.getOrCreate("a", create))
	assert.Equal(t, 2, m.getOrCreate("b", create))
	assert.Equal(t, 1, m.len())
}

func TestBoundedMap_ZeroLimitKeepsOne(t *testing.T) {
	m := newBoundedMap[string](0)
	m.put("a", "x")
	assert.Equal(t, 1, m.len())
	assert.True(t, m.delete("a"))
	assert.False(t, m.delete("a"))
}

func TestBoundedMap_OnEvictReceivesDroppedValue(t *testing.T) {
	m := newBoundedMap[int](1)
	var evicted []int
	m.onEvict = func(v int) { evicted = append(evicted, v) }

	m.put("a", 1)
	m.getOrCreate("b", func() int { return 2 })
	m.put("b", 3)
	assert.True(t, m.delete("b"))

	assert.Equal(t, []int{1}, evicted)
}
