package terminal

import (
	"io"
	"log/slog"
	"reflect"
	"strings"
	"testing"
	"tetrisgo/tetris"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func emptyBoard() [tetris.Height][tetris.Width]string {
	want := [tetris.Height][tetris.Width]string{}
	for y := range want {
		for x := range want[y] {
			want[y][x] = emptyCell
		}
	}
	return want
}

// testSnapshot has a J falling at the top of the board and a red cell in the
// bottom left corner.
//
// .	0 1 2 3 4 5 6 7 8 9
// 0	. . . . J . . . . .
// 1	. . . . J J J . . .
// 18	. . . . G . . . . .
// 19	R . . . G G G . . .
func testSnapshot() *tetris.Snapshot {
	b := tetris.NewBoard()
	b.Set(0, 19, tetris.Z.Color())
	p := tetris.Piece{Shape: tetris.J, X: 5, Y: 3}
	return &tetris.Snapshot{
		Grid:       b.Grid(),
		Piece:      p.Cells(),
		PieceColor: tetris.J.Color(),
		Ghost:      p.Moved(0, 18).Cells(),
		Next:       tetris.O,
		Score:      120,
		HighScore:  3400,
		Lines:      2,
	}
}

func TestBoard(t *testing.T) {
	j := cell(tetris.J.Color())

	t.Run("with ghost", func(t *testing.T) {
		want := emptyBoard()
		want[19][0] = cell(tetris.Z.Color())
		want[0][4], want[1][4], want[1][5], want[1][6] = j, j, j, j
		want[18][4], want[19][4], want[19][5], want[19][6] = ghostCell, ghostCell, ghostCell, ghostCell
		got := board(&templateData{Snapshot: testSnapshot()})
		if !reflect.DeepEqual(got, want) {
			t.Errorf("want %v, got %v", want, got)
		}
	})

	t.Run("without ghost", func(t *testing.T) {
		want := emptyBoard()
		want[19][0] = cell(tetris.Z.Color())
		want[0][4], want[1][4], want[1][5], want[1][6] = j, j, j, j
		got := board(&templateData{Snapshot: testSnapshot(), NoGhost: true})
		if !reflect.DeepEqual(got, want) {
			t.Errorf("want %v, got %v", want, got)
		}
	})

	t.Run("cells above the board are hidden", func(t *testing.T) {
		s := testSnapshot()
		s.Piece = tetris.Spawn(tetris.J).Cells()
		s.Ghost = nil
		want := emptyBoard()
		want[19][0] = cell(tetris.Z.Color())
		got := board(&templateData{Snapshot: s})
		if !reflect.DeepEqual(got, want) {
			t.Errorf("want %v, got %v", want, got)
		}
	})

	t.Run("board with nil snapshot returns empty spaces", func(t *testing.T) {
		if got := board(nil); !reflect.DeepEqual(got, emptyBoard()) {
			t.Errorf("want an empty board, got %v", got)
		}
	})
}

func TestNextPiece(t *testing.T) {
	tests := []struct {
		shape tetris.Shape
		want  []string
	}{
		{tetris.J, []string{
			cell(tetris.J.Color()) + "      ",
			strings.Repeat(cell(tetris.J.Color()), 3) + "  ",
		}},
		{tetris.O, []string{
			strings.Repeat(cell(tetris.O.Color()), 2) + "    ",
			strings.Repeat(cell(tetris.O.Color()), 2) + "    ",
		}},
		{tetris.I, []string{
			"        ",
			strings.Repeat(cell(tetris.I.Color()), 4),
		}},
	}
	for _, tt := range tests {
		t.Run(string(tt.shape), func(t *testing.T) {
			s := testSnapshot()
			s.Next = tt.shape
			got := nextPiece(&templateData{Snapshot: s})
			if !reflect.DeepEqual(tt.want, got) {
				t.Errorf("want %q, got %q", tt.want, got)
			}
		})
	}
	t.Run("nextPiece with nil snapshot returns empty spaces", func(t *testing.T) {
		want := []string{"        ", "        "}
		if got := nextPiece(nil); !reflect.DeepEqual(got, want) {
			t.Errorf("want %q, got %q", want, got)
		}
	})
}

func TestGame(t *testing.T) {
	w := &strings.Builder{}
	r, err := New(w, discard, false)
	if err != nil {
		t.Fatalf("unable to create renderer: %v", err)
	}
	s := testSnapshot()
	s.SpeedUp = true
	r.Game(s)
	out := w.String()

	if !strings.HasPrefix(out, resetPos) {
		t.Errorf("wanted the frame to start at the top left corner")
	}
	if got := strings.Count(out, "\r\n"); got != tetris.Height+2 {
		t.Errorf("wanted %d lines, got %d", tetris.Height+2, got)
	}
	if strings.Count(out, "\n") != strings.Count(out, "\r\n") {
		t.Errorf("wanted every new line to carry a carriage return")
	}
	for _, want := range []string{"Score       120", "High score  3400", "Lines       2", "Speed up!", "\033[1mTerminal Tetris\033[0m"} {
		if !strings.Contains(out, want) {
			t.Errorf("wanted the frame to contain %q", want)
		}
	}

	w.Reset()
	s.SpeedUp = false
	r.Game(s)
	if strings.Contains(w.String(), "Speed up!") {
		t.Errorf("wanted no speed up notice")
	}
}

func TestMenu(t *testing.T) {
	m := Menu{
		Title:    "Paused",
		Lines:    []string{"Score 100"},
		Options:  []string{"Continue", "Quit"},
		Selected: 1,
	}
	rows := menuRows(m)
	if len(rows) != 9 {
		t.Fatalf("wanted 9 rows, got %d: %q", len(rows), rows)
	}
	for _, row := range rows {
		if len(row) != menuInner+2 {
			t.Errorf("wanted every row %d wide, got %d: %q", menuInner+2, len(row), row)
		}
	}
	if !strings.Contains(rows[5], " Continue ") || strings.Contains(rows[5], ">") {
		t.Errorf("wanted an unselected Continue, got %q", rows[5])
	}
	if !strings.Contains(rows[6], "> Quit <") {
		t.Errorf("wanted a selected Quit, got %q", rows[6])
	}

	w := &strings.Builder{}
	r, err := New(w, discard, false)
	if err != nil {
		t.Fatalf("unable to create renderer: %v", err)
	}
	r.Menu(m)
	if !strings.HasPrefix(w.String(), "\033[5;2H+---") {
		t.Errorf("wanted the menu drawn from row 5, got %q", w.String()[:20])
	}
}

func TestBoxLine(t *testing.T) {
	got := boxLine("ab")
	want := "|" + strings.Repeat(" ", 18) + "ab" + strings.Repeat(" ", 18) + "|"
	if got != want {
		t.Errorf("want %q, got %q", want, got)
	}
	if got := boxLine(strings.Repeat("x", 50)); len(got) != menuInner+2 {
		t.Errorf("wanted long lines to be cut, got %q", got)
	}
}
