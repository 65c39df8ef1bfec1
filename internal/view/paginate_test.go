package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func TestPaginateTotals(t *testing.T) {
	tests := []struct {
		n, size       int
		pages, lastLen int
	}{
		{0, 50, 0, 0},
		{1, 50, 1, 1},
		{50, 50, 1, 50},
		{51, 50, 2, 1},
		{120, 50, 3, 20},
		{100, 50, 2, 50},
	}
	for _, tt := range tests {
		p := Paginate(seq(tt.n), 1, tt.size)
		assert.Equal(t, tt.n, p.Total)
		assert.Equal(t, tt.pages, p.TotalPages, "n=%d", tt.n)
		if tt.pages > 0 {
			last := Paginate(seq(tt.n), tt.pages, tt.size)
			assert.Len(t, last.Items, tt.lastLen, "n=%d", tt.n)
			assert.False(t, last.HasNext)
		}
	}
}

func TestPaginateSlicesAndFlags(t *testing.T) {
	p := Paginate(seq(120), 2, 50)
	assert.Equal(t, 50, p.Items[0])
	assert.Len(t, p.Items, 50)
	assert.True(t, p.HasPrev)
	assert.True(t, p.HasNext)

	first := Paginate(seq(120), 1, 50)
	assert.False(t, first.HasPrev)
}

func TestPaginateDoesNotClamp(t *testing.T) {
	beyond := Paginate(seq(10), 5, 50)
	assert.Empty(t, beyond.Items)
	assert.Equal(t, 5, beyond.Page)
	assert.Equal(t, 1, beyond.TotalPages)

	zero := Paginate(seq(10), 0, 50)
	assert.Empty(t, zero.Items)
}

func TestPaginateDefaultSize(t *testing.T) {
	p := Paginate(seq(75), 1, 0)
	assert.Len(t, p.Items, DefaultPageSize)
}
