// Package cursor provides a reusable cursor for scrollable lists.
package cursor

// Cursor tracks a position and scroll offset inside a list. The list
// length and viewport height are passed to methods rather than stored,
// since they can change between updates.
type Cursor struct {
	pos    int
	offset int
}

// Pos returns the current cursor position.
func (c Cursor) Pos() int {
	return c.pos
}

// Offset returns the first visible item index.
func (c Cursor) Offset() int {
	return c.offset
}

// Move moves the cursor by delta positions, clamping to valid bounds
// and adjusting the offset so the cursor stays visible. No-op when the
// list is empty.
func (c *Cursor) Move(delta, listLen, height int) {
	if listLen == 0 {
		return
	}
	c.pos = clamp(c.pos+delta, listLen-1)
	c.ensureVisible(listLen, height)
}

// Jump sets the cursor to an absolute position, clamped to bounds.
func (c *Cursor) Jump(pos, listLen, height int) {
	if listLen == 0 {
		return
	}
	c.pos = clamp(pos, listLen-1)
	c.ensureVisible(listLen, height)
}

// Clamp re-clamps the cursor after the list shrank or grew.
func (c *Cursor) Clamp(listLen, height int) {
	if listLen == 0 {
		c.pos = 0
		c.offset = 0
		return
	}
	c.pos = clamp(c.pos, listLen-1)
	c.ensureVisible(listLen, height)
}

func (c *Cursor) ensureVisible(listLen, height int) {
	if height <= 0 {
		c.offset = 0
		return
	}
	if c.pos < c.offset {
		c.offset = c.pos
	}
	if c.pos >= c.offset+height {
		c.offset = c.pos - height + 1
	}
	maxOffset := listLen - height
	if maxOffset < 0 {
		maxOffset = 0
	}
	if c.offset > maxOffset {
		c.offset = maxOffset
	}
}

func clamp(v, maximum int) int {
	if v < 0 {
		return 0
	}
	if v > maximum {
		return maximum
	}
	return v
}
