package utilities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewID_UniqueAndFixedLength(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewID()
		assert.Len(t, id, 27)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestNewRequestID_Unique(t *testing.T) {
	a := NewRequestID()
	b := NewRequestID()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}
