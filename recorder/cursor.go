package recorder

// Cursor remembers the sample touched last so the next search can start next
// to it. It is a hint only: a stale cursor costs time, never correctness. The
// zero value is unset and makes searches start at the head.
//
// A Cursor is mutated by every search that uses it, so it must not be shared
// between goroutines.
type Cursor struct {
	idx int
	set bool
}

func (c *Cursor) Reset() {
	c.idx, c.set = 0, false
}

func (c *Cursor) Valid() bool {
	return c.set
}

// Index returns the remembered position, or -1 when unset.
func (c *Cursor) Index() int {
	if !c.set {
		return -1
	}

	return c.idx
}

func (c *Cursor) start(n int) int {
	if !c.set || c.idx < 0 {
		return 0
	}

	if c.idx >= n {
		return n - 1
	}

	return c.idx
}

func (c *Cursor) moveTo(idx int) {
	c.idx, c.set = idx, true
}
