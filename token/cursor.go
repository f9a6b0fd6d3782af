package token

// Cursor reads a tree sequence left to right. Mark and Rewind support the
// speculative matching that sequences and enum variants need; everything
// else is a straight forward walk.
type Cursor struct {
	trees []Tree
	next  int
}

func NewCursor(trees []Tree) *Cursor {
	return &Cursor{trees: trees}
}

func (c *Cursor) Done() bool {
	return c.next >= len(c.trees)
}

// Peek returns the next tree without consuming it, or nil at the end.
func (c *Cursor) Peek() *Tree {
	if c.Done() {
		return nil
	}
	return &c.trees[c.next]
}

// Next consumes and returns the next tree, or nil at the end.
func (c *Cursor) Next() *Tree {
	if c.Done() {
		return nil
	}
	t := &c.trees[c.next]
	c.next++
	return t
}

func (c *Cursor) Mark() int {
	return c.next
}

func (c *Cursor) Rewind(mark int) {
	c.next = mark
}

// Since returns the trees consumed after the given mark.
func (c *Cursor) Since(mark int) []Tree {
	return c.trees[mark:c.next]
}

// Pos reports the position of the next tree. At the end it falls back to
// the last tree so errors still point into the input.
func (c *Cursor) Pos() Pos {
	if c.next < len(c.trees) {
		return c.trees[c.next].Pos()
	}
	if n := len(c.trees); n > 0 {
		return c.trees[n-1].Pos()
	}
	return Pos{Line: 1, Col: 1}
}
