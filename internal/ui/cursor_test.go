package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCursorClamps(t *testing.T) {
	var c Cursor
	assert.Equal(t, -1, c.At(0))

	c.Move(5, 3)
	assert.Equal(t, 2, c.Index)

	c.Move(-10, 3)
	assert.Equal(t, 0, c.Index)

	c.Index = 9
	assert.Equal(t, 1, c.At(2))

	c.Reset()
	assert.Equal(t, 0, c.At(4))
}

func TestLayoutContentHeight(t *testing.T) {
	l := NewLayout(80, 24)
	assert.Equal(t, 22, l.ContentHeight())
	assert.Equal(t, 0, NewLayout(80, 1).ContentHeight())
}
