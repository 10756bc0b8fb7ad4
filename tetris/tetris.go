// Package tetris contains the logic of the game: the shape catalog, the board of
// locked cells, collision and wall kicks, line clears, scoring and the frame driven
// Session state machine.
//
// Coordinates follow the playfield the way it's drawn:
//
//	.	0 1 2 3 4 5 6 7 8 9		X grows to the right
//	0	. . . . . . . . . .		Y grows downwards, row 0 is the top
//	1	. . . . . . . . . .		and row 19 the bottom. Negative rows
//	...							are the spawn buffer above the board.
//	19	. . . . . . . . . .
package tetris

import "github.com/kamstrup/intmap"

const (
	Width  = 10
	Height = 20
)

// Point is a cell position on the board.
type Point struct {
	X, Y int
}

// Color is the RGB color a cell is rendered with.
type Color struct {
	R, G, B uint8
}

// Cell is either Empty or Filled with a color.
type Cell struct {
	color  Color
	filled bool
}

// Empty is the cell with nothing locked in it.
var Empty = Cell{}

func Filled(c Color) Cell { return Cell{color: c, filled: true} }

func (c Cell) IsFilled() bool { return c.filled }

// Color returns the color of a filled cell. ok is false for Empty.
func (c Cell) Color() (color Color, ok bool) { return c.color, c.filled }

// cellKey packs a board position into a single integer so locked cells can
// live in an integer keyed map.
type cellKey int64

func keyOf(x, y int) cellKey {
	return cellKey(int64(y)<<32 | int64(uint32(int32(x))))
}

func (k cellKey) point() Point {
	return Point{X: int(int32(uint32(k))), Y: int(int64(k) >> 32)}
}

// Board is the set of locked cells. It is the only source of truth for
// occupancy; Grid() derives the rendered view from it.
type Board struct {
	locked *intmap.Map[cellKey, Color]
}

func NewBoard() *Board {
	return &Board{locked: intmap.New[cellKey, Color](Width * Height)}
}

// Set locks a cell. Columns outside the board are ignored, rows are not: a
// cell locked above the board is how a lost game looks.
func (b *Board) Set(x, y int, c Color) {
	if x < 0 || x >= Width {
		return
	}
	b.locked.Put(keyOf(x, y), c)
}

func (b *Board) Occupied(x, y int) bool {
	return b.locked.Has(keyOf(x, y))
}

func (b *Board) At(x, y int) Cell {
	if c, ok := b.locked.Get(keyOf(x, y)); ok {
		return Filled(c)
	}
	return Empty
}

// Len returns the number of locked cells.
func (b *Board) Len() int { return b.locked.Len() }

// Each calls f for every locked cell until f returns false. Order is unspecified.
func (b *Board) Each(f func(Point, Color) bool) {
	b.locked.ForEach(func(k cellKey, c Color) bool {
		return f(k.point(), c)
	})
}

// Cells returns a copy of the locked cells.
func (b *Board) Cells() map[Point]Color {
	cells := make(map[Point]Color, b.Len())
	b.Each(func(p Point, c Color) bool {
		cells[p] = c
		return true
	})
	return cells
}

func (b *Board) Clone() *Board {
	clone := NewBoard()
	b.Each(func(p Point, c Color) bool {
		clone.Set(p.X, p.Y, c)
		return true
	})
	return clone
}

// Grid renders the visible part of the board. Cells above row 0 are left out.
func (b *Board) Grid() [Height][Width]Cell {
	var grid [Height][Width]Cell
	b.Each(func(p Point, c Color) bool {
		if p.Y >= 0 && p.Y < Height {
			grid[p.Y][p.X] = Filled(c)
		}
		return true
	})
	return grid
}

// lock copies the piece cells into the board.
func (b *Board) lock(p Piece) {
	c := p.Shape.Color()
	for _, cell := range p.Cells() {
		b.Set(cell.X, cell.Y, c)
	}
}

// CheckLost reports whether any locked cell sits above the board.
func CheckLost(b *Board) bool {
	lost := false
	b.Each(func(p Point, _ Color) bool {
		lost = p.Y < 0
		return !lost
	})
	return lost
}
