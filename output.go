package img2ascii

import (
	"bufio"
	"io"
	"strings"
)

// WriteGrid writes grid to w as text, one newline-terminated line per row.
func WriteGrid(w io.Writer, grid [][]rune) error {
	bw := bufio.NewWriter(w)
	for _, row := range grid {
		for _, c := range row {
			if _, err := bw.WriteRune(c); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// GridString returns the text WriteGrid would produce.
func GridString(grid [][]rune) string {
	var sb strings.Builder
	for _, row := range grid {
		sb.WriteString(string(row))
		sb.WriteByte('\n')
	}
	return sb.String()
}
