package ui

// Cursor is a row index into a list whose length changes between
// renders. It is clamped lazily against the current length.
type Cursor struct {
	Index int
}

// Move shifts the cursor by delta within [0, n).
func (c *Cursor) Move(delta, n int) {
	c.Index = clamp(c.Index+delta, n)
}

// At returns the cursor clamped to a list of length n, or -1 when the
// list is empty.
func (c Cursor) At(n int) int {
	if n == 0 {
		return -1
	}
	return clamp(c.Index, n)
}

// Reset moves the cursor to the first row.
func (c *Cursor) Reset() { c.Index = 0 }

func clamp(i, n int) int {
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}
