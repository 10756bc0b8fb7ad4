// Package terminal draws the game and its menus on an ANSI terminal.
package terminal

import (
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"tetrisgo/tetris"
	"text/template"
)

const (
	resetPos    = "\033[H"        // Reset cursor position to 0,0
	clearScreen = "\033[2J\033[H" // Clear the screen and reset the cursor
	eraseLine   = "\033[K"        // Erase from the cursor to the end of the line

	emptyCell = "  "
	ghostCell = "[]"

	// HideCursor clears the screen before a game client starts, ShowCursor
	// brings the cursor back under the board once it's done.
	HideCursor = "\033[2J\033[?25l"
	ShowCursor = "\033[23;0H\n\r\033[?25h"

	menuTop   = 5
	menuLeft  = 2
	menuInner = 38
)

//go:embed "layout.tmpl"
var layout string

type templateData struct {
	*tetris.Snapshot
	NoGhost bool
}

// Renderer writes frames to a terminal in raw mode.
type Renderer struct {
	writer   io.Writer
	logger   *slog.Logger
	template *template.Template
	noGhost  bool
}

func New(w io.Writer, l *slog.Logger, noGhost bool) (*Renderer, error) {
	tmpl, err := loadTemplate()
	if err != nil {
		return nil, fmt.Errorf("failed to load template: %w", err)
	}
	return &Renderer{writer: w, logger: l, template: tmpl, noGhost: noGhost}, nil
}

// Game draws a frame of the session.
func (r *Renderer) Game(s *tetris.Snapshot) {
	var b strings.Builder
	if err := r.template.Execute(&b, &templateData{Snapshot: s, NoGhost: r.noGhost}); err != nil {
		r.logger.Error("unable to execute template", slog.String("error", err.Error()))
		return
	}
	// we use the console raw so new lines don't automatically transform into carriage return.
	// every line also erases what a previous frame left after it.
	fmt.Fprint(r.writer, resetPos+strings.ReplaceAll(b.String(), "\n", eraseLine+"\r\n"))
}

// Menu is a boxed list of options drawn over the game.
type Menu struct {
	Title    string
	Lines    []string
	Options  []string
	Selected int
}

func (r *Renderer) Menu(m Menu) {
	for i, row := range menuRows(m) {
		fmt.Fprintf(r.writer, "\033[%d;%dH%s", menuTop+i, menuLeft, row)
	}
}

func (r *Renderer) Clear() { fmt.Fprint(r.writer, clearScreen) }

func loadTemplate() (*template.Template, error) {
	funcMap := template.FuncMap{
		"board":     board,
		"nextPiece": nextPiece,
	}

	l := strings.ReplaceAll(layout, "Terminal Tetris", "\033[1mTerminal Tetris\033[0m")
	return template.New("layout").Funcs(funcMap).Parse(l)
}

func cell(c tetris.Color) string {
	return fmt.Sprintf("\x1b[7m\x1b[38;2;%d;%d;%dm[]\x1b[0m", c.R, c.G, c.B)
}

func board(td *templateData) [tetris.Height][tetris.Width]string {
	rendered := [tetris.Height][tetris.Width]string{}
	if td == nil || td.Snapshot == nil {
		for y := range rendered {
			for x := range rendered[y] {
				rendered[y][x] = emptyCell
			}
		}
		return rendered
	}

	for y, row := range td.Grid {
		for x, c := range row {
			rendered[y][x] = emptyCell
			if color, ok := c.Color(); ok {
				rendered[y][x] = cell(color)
			}
		}
	}

	visible := func(p tetris.Point) bool {
		return p.X >= 0 && p.X < tetris.Width && p.Y >= 0 && p.Y < tetris.Height
	}
	if !td.NoGhost {
		for _, p := range td.Ghost {
			if visible(p) {
				rendered[p.Y][p.X] = ghostCell
			}
		}
	}
	for _, p := range td.Piece {
		if visible(p) {
			rendered[p.Y][p.X] = cell(td.PieceColor)
		}
	}
	return rendered
}

// nextPiece renders the next shape in a 4x2 box, resting on its bottom row.
func nextPiece(td *templateData) []string {
	rows := [2][4]string{}
	for y := range rows {
		for x := range rows[y] {
			rows[y][x] = emptyCell
		}
	}
	if td != nil && td.Snapshot != nil && td.Next != "" {
		cells := td.Next.Cells(0)
		minX, maxY := cells[0].X, cells[0].Y
		for _, p := range cells {
			minX = min(minX, p.X)
			maxY = max(maxY, p.Y)
		}
		for _, p := range cells {
			x, y := p.X-minX, p.Y-maxY+1
			if x >= 0 && x < 4 && y >= 0 && y < 2 {
				rows[y][x] = cell(td.Next.Color())
			}
		}
	}
	return []string{strings.Join(rows[0][:], ""), strings.Join(rows[1][:], "")}
}

func menuRows(m Menu) []string {
	border := "+" + strings.Repeat("-", menuInner) + "+"
	rows := []string{border, boxLine(m.Title), boxLine("")}
	for _, l := range m.Lines {
		rows = append(rows, boxLine(l))
	}
	if len(m.Lines) > 0 {
		rows = append(rows, boxLine(""))
	}
	for i, o := range m.Options {
		if i == m.Selected {
			o = "> " + o + " <"
		}
		rows = append(rows, boxLine(o))
	}
	return append(rows, boxLine(""), border)
}

// boxLine centres s between the box borders.
func boxLine(s string) string {
	if len(s) > menuInner {
		s = s[:menuInner]
	}
	left := (menuInner - len(s)) / 2
	right := menuInner - len(s) - left
	return "|" + strings.Repeat(" ", left) + s + strings.Repeat(" ", right) + "|"
}
