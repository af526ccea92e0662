package versions

import (
	"fmt"
	"strings"
)

const (
	// listThreshold is the entry count up to which entries print one per line.
	listThreshold = 25
	maxColumns    = 8
	indentWidth   = 4
)

// formatColumns renders entries with the current one marked. Short lists
// print one entry per line, longer ones as a grid filled in column-major
// order: rowSize = ceil(n/maxCols) rows, entry i at row i%rowSize, column
// i/rowSize. Missing trailing cells in the last column are absent, not
// padded.
func formatColumns(entries []string, current string, maxCols, indent int) string {
	marked := make([]string, len(entries))
	for i, entry := range entries {
		prefix := "  "
		if entry == current {
			prefix = "* "
		}

		marked[i] = prefix + entry
	}

	pad := strings.Repeat(" ", indent)

	var out strings.Builder

	if len(marked) <= listThreshold {
		for _, entry := range marked {
			out.WriteString(pad + entry + "\n")
		}

		return out.String()
	}

	rowSize := (len(marked) + maxCols - 1) / maxCols

	colSize := maxCols
	if len(marked) < maxCols {
		colSize = len(marked)
	}

	widths := make([]int, colSize)
	for col := 0; col < colSize; col++ {
		for row := 0; row < rowSize; row++ {
			i := col*rowSize + row
			if i >= len(marked) {
				break
			}

			if len(marked[i]) > widths[col] {
				widths[col] = len(marked[i])
			}
		}
	}

	for row := 0; row < rowSize; row++ {
		line := pad

		for col := 0; col < colSize; col++ {
			i := col*rowSize + row
			if i >= len(marked) {
				continue
			}

			line += fmt.Sprintf("%-*s", widths[col]+2, marked[i])
		}

		out.WriteString(strings.TrimRight(line, " ") + "\n")
	}

	return out.String()
}
