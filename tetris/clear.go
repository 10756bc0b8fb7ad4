package tetris

// ClearRows removes every full row of the board and collapses the cells above
// them. A cell on row y falls one row for each cleared row below it.
//
// The new positions are computed from the board as it was before the clear and
// written to a new set of cells, which then replaces the old one. Rows above the
// board are never full.
func ClearRows(b *Board) int {
	var full []int
	for y := range Height {
		if rowFull(b, y) {
			full = append(full, y)
		}
	}
	if len(full) == 0 {
		return 0
	}

	collapsed := NewBoard()
	b.Each(func(p Point, c Color) bool {
		drop := 0
		for _, y := range full {
			if y == p.Y {
				return true
			}
			if y > p.Y {
				drop++
			}
		}
		collapsed.Set(p.X, p.Y+drop, c)
		return true
	})
	b.locked = collapsed.locked

	return len(full)
}

func rowFull(b *Board, y int) bool {
	for x := range Width {
		if !b.Occupied(x, y) {
			return false
		}
	}
	return true
}
