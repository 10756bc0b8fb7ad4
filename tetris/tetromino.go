package tetris

import (
	"fmt"
	"math/rand/v2"
)

type Shape string

const (
	S Shape = "S"
	Z Shape = "Z"
	I Shape = "I"
	O Shape = "O"
	J Shape = "J"
	L Shape = "L"
	T Shape = "T"
)

// Shapes lists the seven tetrominoes in catalog order.
var Shapes = []Shape{S, Z, I, O, J, L, T}

// canvasOrigin is subtracted from a canvas column/row to get the offset
// against the piece anchor.
var canvasOrigin = Point{X: 2, Y: 4}

type tetromino struct {
	color     Color
	rotations [][]Point
}

var catalog = map[Shape]*tetromino{}

func init() {
	for shape, def := range map[Shape]struct {
		color    Color
		canvases [][5]string
	}{
		S: {Color{0, 255, 0}, sCanvases},
		Z: {Color{255, 0, 0}, zCanvases},
		I: {Color{0, 255, 255}, iCanvases},
		O: {Color{255, 255, 0}, oCanvases},
		J: {Color{255, 165, 0}, jCanvases},
		L: {Color{0, 0, 255}, lCanvases},
		T: {Color{128, 0, 128}, tCanvases},
	} {
		t := &tetromino{color: def.color}
		for _, c := range def.canvases {
			t.rotations = append(t.rotations, parseCanvas(c))
		}
		catalog[shape] = t
	}
}

// parseCanvas turns a 5x5 canvas into the offsets of its filled cells.
func parseCanvas(canvas [5]string) []Point {
	var cells []Point
	for row, line := range canvas {
		if len(line) != 5 {
			panic(fmt.Sprintf("canvas row %q is not 5 wide", line))
		}
		for col, c := range line {
			if c == '0' {
				cells = append(cells, Point{X: col - canvasOrigin.X, Y: row - canvasOrigin.Y})
			}
		}
	}
	return cells
}

// Rotations returns the number of rotation states of the shape.
func (s Shape) Rotations() int { return len(catalog[s].rotations) }

func (s Shape) Color() Color { return catalog[s].color }

// Cells returns the offsets of the filled cells for a rotation. The rotation
// is normalised so any integer is accepted.
func (s Shape) Cells(rotation int) []Point {
	r := catalog[s].rotations
	return r[mod(rotation, len(r))]
}

// RandomShape draws one of the seven shapes with equal probability. Repeats
// are possible, there's no bag.
func RandomShape(r *rand.Rand) Shape {
	return Shapes[r.IntN(len(Shapes))]
}

func mod(a, n int) int {
	return ((a % n) + n) % n
}

// SpawnPoint is where every new piece appears.
var SpawnPoint = Point{X: 5, Y: 0}

// Piece is a falling tetromino. It's a value: moving or rotating returns a new Piece.
type Piece struct {
	Shape    Shape
	X, Y     int
	Rotation int
}

// Spawn returns a new piece of the given shape at the spawn point.
// With the anchor on row 0 every cell starts above the board.
func Spawn(s Shape) Piece {
	return Piece{Shape: s, X: SpawnPoint.X, Y: SpawnPoint.Y}
}

// Cells returns the absolute position of the piece cells.
func (p Piece) Cells() []Point {
	offsets := p.Shape.Cells(p.Rotation)
	cells := make([]Point, len(offsets))
	for i, o := range offsets {
		cells[i] = Point{X: p.X + o.X, Y: p.Y + o.Y}
	}
	return cells
}

func (p Piece) Moved(dx, dy int) Piece {
	p.X += dx
	p.Y += dy
	return p
}

// Rotated returns the piece turned to its next rotation state.
func (p Piece) Rotated() Piece {
	p.Rotation = mod(p.Rotation+1, p.Shape.Rotations())
	return p
}

/*
.	S				.	rotated
.	. . . . .		.	. . . . .
.	. . . . .		.	. . 0 . .
.	. . 0 0 .		.	. . 0 0 .
.	. 0 0 . .		.	. . . 0 .
.	. . . . .		.	. . . . .
*/
var sCanvases = [][5]string{
	{
		".....",
		".....",
		"..00.",
		".00..",
		".....",
	},
	{
		".....",
		"..0..",
		"..00.",
		"...0.",
		".....",
	},
}

var zCanvases = [][5]string{
	{
		".....",
		".....",
		".00..",
		"..00.",
		".....",
	},
	{
		".....",
		"..0..",
		".00..",
		".0...",
		".....",
	},
}

/*
The I starts flat, so a fresh I lies three rows above the anchor.

.	0 1 2 3 4 5 6 7 8 9
-3	. . . 0 0 0 0 . . .		anchor at (5, 0)
*/
var iCanvases = [][5]string{
	{
		".....",
		"0000.",
		".....",
		".....",
		".....",
	},
	{
		"..0..",
		"..0..",
		"..0..",
		"..0..",
		".....",
	},
}

// The O has a single rotation state.
var oCanvases = [][5]string{
	{
		".....",
		".....",
		".00..",
		".00..",
		".....",
	},
}

var jCanvases = [][5]string{
	{
		".....",
		".0...",
		".000.",
		".....",
		".....",
	},
	{
		".....",
		"..00.",
		"..0..",
		"..0..",
		".....",
	},
	{
		".....",
		".....",
		".000.",
		"...0.",
		".....",
	},
	{
		".....",
		"..0..",
		"..0..",
		".00..",
		".....",
	},
}

var lCanvases = [][5]string{
	{
		".....",
		"...0.",
		".000.",
		".....",
		".....",
	},
	{
		".....",
		"..0..",
		"..0..",
		"..00.",
		".....",
	},
	{
		".....",
		".....",
		".000.",
		".0...",
		".....",
	},
	{
		".....",
		".00..",
		"..0..",
		"..0..",
		".....",
	},
}

var tCanvases = [][5]string{
	{
		".....",
		"..0..",
		".000.",
		".....",
		".....",
	},
	{
		".....",
		"..0..",
		"..00.",
		"..0..",
		".....",
	},
	{
		".....",
		".....",
		".000.",
		"..0..",
		".....",
	},
	{
		".....",
		"..0..",
		".00..",
		"..0..",
		".....",
	},
}
