package tetris

// kicks are the offsets tried, in order, when a rotation doesn't fit where it
// is. The first one that fits wins, so the order decides ties.
var kicks = []Point{
	{0, 0},
	{1, 0},
	{-1, 0},
	{2, 0},
	{-2, 0},
	{0, -1},
	{0, -2},
}

// IsValid reports whether the piece can be where it is. Every cell must be
// inside the columns and above the floor, and cells on the board must not
// overlap locked cells. Cells above the board are only checked on X.
func IsValid(p Piece, b *Board) bool {
	for _, c := range p.Cells() {
		if c.X < 0 || c.X >= Width || c.Y >= Height {
			return false
		}
		if c.Y >= 0 && b.Occupied(c.X, c.Y) {
			return false
		}
	}
	return true
}

// TryRotate turns the piece to its next rotation state, wall kicking it when
// needed. When no kick fits, the untouched piece is returned with ok false.
func TryRotate(p Piece, b *Board) (rotated Piece, ok bool) {
	r := p.Rotated()
	for _, k := range kicks {
		if test := r.Moved(k.X, k.Y); IsValid(test, b) {
			return test, true
		}
	}
	return p, false
}

// dropDistance returns how many rows the piece can fall before it's grounded.
func dropDistance(p Piece, b *Board) int {
	d := 0
	for IsValid(p.Moved(0, d+1), b) {
		d++
	}
	return d
}

func isGrounded(p Piece, b *Board) bool {
	return !IsValid(p.Moved(0, 1), b)
}
