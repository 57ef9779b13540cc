package cellbuf

import (
	"strings"

	"charm.land/lipgloss/v2"
)

// Render turns the buffer into a styled string with rows joined by "\n".
// Adjacent cells sharing a style are rendered as one run; styles missing
// from the map render unstyled. An empty buffer renders as "".
func (b *Buffer) Render(styles map[StyleKey]lipgloss.Style) string {
	if b.W == 0 || b.H == 0 {
		return ""
	}
	lines := make([]string, b.H)
	run := make([]rune, 0, b.W)
	for y, row := range b.Cells {
		var sb strings.Builder
		flush := func(style StyleKey) {
			if len(run) == 0 {
				return
			}
			if s, ok := styles[style]; ok {
				sb.WriteString(s.Render(string(run)))
			} else {
				sb.WriteString(string(run))
			}
			run = run[:0]
		}
		cur := row[0].Style
		for _, cell := range row {
			if cell.Style != cur {
				flush(cur)
				cur = cell.Style
			}
			run = append(run, cell.Ch)
		}
		flush(cur)
		lines[y] = sb.String()
	}
	return strings.Join(lines, "\n")
}

// String renders the buffer without styles.
func (b *Buffer) String() string { return b.Render(nil) }
