package cursor

import "testing"

func TestMoveClampsToBounds(t *testing.T) {
	var c Cursor

	c.Move(-3, 10, 5)
	if c.Pos() != 0 {
		t.Errorf("Pos = %d, want 0", c.Pos())
	}

	c.Move(20, 10, 5)
	if c.Pos() != 9 {
		t.Errorf("Pos = %d, want 9", c.Pos())
	}
}

func TestMoveEmptyListIsNoop(t *testing.T) {
	var c Cursor
	c.Move(1, 0, 5)
	if c.Pos() != 0 || c.Offset() != 0 {
		t.Errorf("Pos=%d Offset=%d, want 0,0", c.Pos(), c.Offset())
	}
}

func TestOffsetFollowsCursor(t *testing.T) {
	var c Cursor

	c.Jump(7, 10, 5)
	if c.Offset() != 3 {
		t.Errorf("Offset = %d, want 3", c.Offset())
	}

	c.Jump(1, 10, 5)
	if c.Offset() != 1 {
		t.Errorf("Offset = %d, want 1", c.Offset())
	}
}

func TestClampAfterListShrinks(t *testing.T) {
	var c Cursor
	c.Jump(9, 10, 5)

	c.Clamp(3, 5)
	if c.Pos() != 2 {
		t.Errorf("Pos = %d, want 2", c.Pos())
	}
	if c.Offset() != 0 {
		t.Errorf("Offset = %d, want 0", c.Offset())
	}
}
