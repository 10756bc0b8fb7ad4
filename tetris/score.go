package tetris

var linePoints = [...]int{0, 100, 300, 500, 800}

// Points returns the score for clearing the given number of rows with a single lock.
func Points(rows int) int {
	if rows < 0 || rows >= len(linePoints) {
		return 0
	}
	return linePoints[rows]
}
