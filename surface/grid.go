package surface

import "github.com/phroun/vtsurface/escape"

// grid is one screen's worth of cells: a plain, resizable matrix with
// a scroll region and tab stops. Grounded on the teacher's buffer.go
// screen [][]Cell field, split out of the monolithic Buffer into its
// own type so primary and alternate screens can each own one.
type grid struct {
	cols, rows int
	cells      [][]Cell
	tabStops   []bool
	scrollTop  int // inclusive, 0-based
	scrollBot  int // inclusive, 0-based
}

func newGrid(cols, rows int) *grid {
	g := &grid{cols: cols, rows: rows, scrollTop: 0, scrollBot: rows - 1}
	g.cells = make([][]Cell, rows)
	for i := range g.cells {
		g.cells[i] = newBlankRow(cols, escape.ColorSpec{})
	}
	g.resetTabStops()
	return g
}

func newBlankRow(cols int, bg escape.ColorSpec) []Cell {
	row := make([]Cell, cols)
	for i := range row {
		row[i] = blank(bg)
	}
	return row
}

func (g *grid) resetTabStops() {
	g.tabStops = make([]bool, g.cols)
	for i := 0; i < g.cols; i += 8 {
		g.tabStops[i] = true
	}
}

func (g *grid) clearTabStop(col int) {
	if col >= 0 && col < len(g.tabStops) {
		g.tabStops[col] = false
	}
}

func (g *grid) clearAllTabStops() {
	for i := range g.tabStops {
		g.tabStops[i] = false
	}
}

func (g *grid) setTabStop(col int) {
	if col >= 0 && col < len(g.tabStops) {
		g.tabStops[col] = true
	}
}

// nextTabStop returns the column to jump to from col, or g.cols-1 if
// none remain on the line.
func (g *grid) nextTabStop(col int) int {
	for c := col + 1; c < g.cols; c++ {
		if c < len(g.tabStops) && g.tabStops[c] {
			return c
		}
	}
	return g.cols - 1
}

// resize grows or shrinks the grid in place, preserving the top-left
// content and clamping the scroll region back to the full screen —
// DEC terminals reset the scroll region on resize, which the teacher's
// buffer.go mirrors in its own resize path.
func (g *grid) resize(cols, rows int, bg escape.ColorSpec) {
	newCells := make([][]Cell, rows)
	for r := 0; r < rows; r++ {
		if r < len(g.cells) {
			row := g.cells[r]
			newRow := make([]Cell, cols)
			copy(newRow, row)
			for c := len(row); c < cols; c++ {
				newRow[c] = blank(bg)
			}
			newCells[r] = newRow
		} else {
			newCells[r] = newBlankRow(cols, bg)
		}
	}
	g.cells = newCells
	g.cols, g.rows = cols, rows
	g.scrollTop, g.scrollBot = 0, rows-1
	g.resetTabStops()
}

func (g *grid) setScrollRegion(top, bottom int) {
	if top < 0 {
		top = 0
	}
	if bottom >= g.rows {
		bottom = g.rows - 1
	}
	if top >= bottom {
		g.scrollTop, g.scrollBot = 0, g.rows-1
		return
	}
	g.scrollTop, g.scrollBot = top, bottom
}

// scrollUp shifts the scroll region up by n lines, pushing rows off
// the top into scrollback (if non-nil) and filling the bottom with bg.
func (g *grid) scrollUp(n int, bg escape.ColorSpec, sb *scrollback) {
	if n <= 0 {
		return
	}
	region := g.scrollBot - g.scrollTop + 1
	if n > region {
		n = region
	}
	for i := 0; i < n; i++ {
		if sb != nil && g.scrollTop == 0 {
			sb.push(g.cells[g.scrollTop])
		}
		copy(g.cells[g.scrollTop:g.scrollBot], g.cells[g.scrollTop+1:g.scrollBot+1])
		g.cells[g.scrollBot] = newBlankRow(g.cols, bg)
	}
}

// scrollDown shifts the scroll region down by n lines (DECSTBM reverse
// scroll / RI at the top margin).
func (g *grid) scrollDown(n int, bg escape.ColorSpec) {
	if n <= 0 {
		return
	}
	region := g.scrollBot - g.scrollTop + 1
	if n > region {
		n = region
	}
	for i := 0; i < n; i++ {
		copy(g.cells[g.scrollTop+1:g.scrollBot+1], g.cells[g.scrollTop:g.scrollBot])
		g.cells[g.scrollTop] = newBlankRow(g.cols, bg)
	}
}

func (g *grid) insertLines(row, n int, bg escape.ColorSpec) {
	if row < g.scrollTop || row > g.scrollBot {
		return
	}
	region := g.scrollBot - row + 1
	if n > region {
		n = region
	}
	for i := 0; i < n; i++ {
		copy(g.cells[row+1:g.scrollBot+1], g.cells[row:g.scrollBot])
		g.cells[row] = newBlankRow(g.cols, bg)
	}
}

func (g *grid) deleteLines(row, n int, bg escape.ColorSpec) {
	if row < g.scrollTop || row > g.scrollBot {
		return
	}
	region := g.scrollBot - row + 1
	if n > region {
		n = region
	}
	for i := 0; i < n; i++ {
		copy(g.cells[row:g.scrollBot], g.cells[row+1:g.scrollBot+1])
		g.cells[g.scrollBot] = newBlankRow(g.cols, bg)
	}
}

func (g *grid) insertChars(row, col, n int, bg escape.ColorSpec) {
	if row < 0 || row >= g.rows {
		return
	}
	line := g.cells[row]
	if n > g.cols-col {
		n = g.cols - col
	}
	if n <= 0 {
		return
	}
	copy(line[col+n:], line[col:g.cols-n])
	for i := col; i < col+n; i++ {
		line[i] = blank(bg)
	}
}

func (g *grid) deleteChars(row, col, n int, bg escape.ColorSpec) {
	if row < 0 || row >= g.rows {
		return
	}
	line := g.cells[row]
	if n > g.cols-col {
		n = g.cols - col
	}
	if n <= 0 {
		return
	}
	copy(line[col:g.cols-n], line[col+n:])
	for i := g.cols - n; i < g.cols; i++ {
		line[i] = blank(bg)
	}
}

func (g *grid) eraseLine(row, from, to int, bg escape.ColorSpec) {
	if row < 0 || row >= g.rows {
		return
	}
	if from < 0 {
		from = 0
	}
	if to >= g.cols {
		to = g.cols - 1
	}
	for c := from; c <= to; c++ {
		g.cells[row][c] = blank(bg)
	}
}
