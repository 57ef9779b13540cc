// Package cellbuf is a 2D grid of styled terminal cells. The diagram
// canvas draws grid dots, routed edges and node boxes into one buffer and
// renders it as a single layer.
//
// Cells carry a StyleKey; the mapping to lipgloss styles is supplied at
// render time so the buffer knows nothing about the color scheme.
// All runes are assumed to be one column wide.
package cellbuf

// StyleKey identifies a visual style.
type StyleKey int

// Cell is one character and its style.
type Cell struct {
	Ch    rune
	Style StyleKey
}

// Buffer is a W×H grid of cells, addressed [row][col].
type Buffer struct {
	W, H  int
	Cells [][]Cell
}

// New creates a buffer of spaces in style bg. Negative sizes are treated
// as zero.
func New(w, h int, bg StyleKey) *Buffer {
	w, h = max(w, 0), max(h, 0)
	b := &Buffer{W: w, H: h, Cells: make([][]Cell, h)}
	for y := range b.Cells {
		b.Cells[y] = make([]Cell, w)
	}
	b.Fill(bg)
	return b
}

// InBounds reports whether (x, y) is inside the buffer.
func (b *Buffer) InBounds(x, y int) bool {
	return x >= 0 && x < b.W && y >= 0 && y < b.H
}

// At returns the cell at (x, y) and whether it exists.
func (b *Buffer) At(x, y int) (Cell, bool) {
	if !b.InBounds(x, y) {
		return Cell{}, false
	}
	return b.Cells[y][x], true
}

// Set writes one cell. Writes outside the buffer are dropped.
func (b *Buffer) Set(x, y int, ch rune, style StyleKey) {
	if b.InBounds(x, y) {
		b.Cells[y][x] = Cell{Ch: ch, Style: style}
	}
}

// SetString writes s from (x, y) rightwards, one rune per column, and
// returns the number of columns advanced.
func (b *Buffer) SetString(x, y int, s string, style StyleKey) int {
	n := 0
	for _, ch := range s {
		b.Set(x+n, y, ch, style)
		n++
	}
	return n
}

// Fill resets every cell to a space in style.
func (b *Buffer) Fill(style StyleKey) {
	b.FillRect(0, 0, b.W, b.H, ' ', style)
}

// FillRect sets every cell of the w×h rectangle at (x, y) to ch.
func (b *Buffer) FillRect(x, y, w, h int, ch rune, style StyleKey) {
	for r := max(y, 0); r < min(y+h, b.H); r++ {
		for c := max(x, 0); c < min(x+w, b.W); c++ {
			b.Cells[r][c] = Cell{Ch: ch, Style: style}
		}
	}
}

// BoxRunes are the characters of a rectangular frame.
type BoxRunes struct {
	TL, TR, BL, BR rune
	H, V           rune
}

// Frames used for node shapes.
var (
	FrameSquare  = BoxRunes{'┌', '┐', '└', '┘', '─', '│'}
	FrameRounded = BoxRunes{'╭', '╮', '╰', '╯', '─', '│'}
	FrameDouble  = BoxRunes{'╔', '╗', '╚', '╝', '═', '║'}
	FrameHeavy   = BoxRunes{'┏', '┓', '┗', '┛', '━', '┃'}
	FrameDashed  = BoxRunes{'┌', '┐', '└', '┘', '╌', '╎'}
)

// Box draws a frame of w×h cells at (x, y) and fills its interior with
// spaces in fill. Boxes smaller than 2×2 draw nothing.
func (b *Buffer) Box(x, y, w, h int, f BoxRunes, border, fill StyleKey) {
	if w < 2 || h < 2 {
		return
	}
	b.FillRect(x+1, y+1, w-2, h-2, ' ', fill)
	b.Frame(x, y, w, h, f, border)
}

// Frame draws only the outline of a w×h box, leaving the interior as is.
func (b *Buffer) Frame(x, y, w, h int, f BoxRunes, border StyleKey) {
	if w < 2 || h < 2 {
		return
	}
	for i := 1; i < w-1; i++ {
		b.Set(x+i, y, f.H, border)
		b.Set(x+i, y+h-1, f.H, border)
	}
	for j := 1; j < h-1; j++ {
		b.Set(x, y+j, f.V, border)
		b.Set(x+w-1, y+j, f.V, border)
	}
	b.Set(x, y, f.TL, border)
	b.Set(x+w-1, y, f.TR, border)
	b.Set(x, y+h-1, f.BL, border)
	b.Set(x+w-1, y+h-1, f.BR, border)
}
