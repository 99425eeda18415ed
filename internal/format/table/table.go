package table

import (
	"strings"

	"github.com/muesli/reflow/ansi"
)

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Format returns the rows padded according to the widest entry in each
// column. Widths are measured after stripping ANSI sequences, so styled
// cells align with plain ones.
func Format(rows [][]string, alignments []Alignment) []string {
	if len(rows) == 0 {
		return nil
	}
	colCount := len(rows[0])
	widths := make([]int, colCount)
	for _, row := range rows {
		for c, cell := range row {
			if c >= colCount {
				break
			}
			width := cellWidth(cell)
			if width > widths[c] {
				widths[c] = width
			}
		}
	}
	out := make([]string, len(rows))
	for i, row := range rows {
		var b strings.Builder
		for c, cell := range row {
			if c >= colCount {
				break
			}
			if c > 0 {
				b.WriteString("  ")
			}
			pad := widths[c] - cellWidth(cell)
			if pad < 0 {
				pad = 0
			}
			if c < len(alignments) && alignments[c] == AlignRight {
				writeSpaces(&b, pad)
				b.WriteString(cell)
			} else {
				b.WriteString(cell)
				writeSpaces(&b, pad)
			}
		}
		out[i] = b.String()
	}
	return out
}

// FormatWithHeader prepends a header row and pads it together with the
// data rows so all columns line up.
func FormatWithHeader(header []string, rows [][]string, alignments []Alignment) []string {
	all := make([][]string, 0, len(rows)+1)
	all = append(all, header)
	all = append(all, rows...)
	return Format(all, alignments)
}

func cellWidth(text string) int {
	return ansi.PrintableRuneWidth(text)
}

func writeSpaces(b *strings.Builder, count int) {
	for i := 0; i < count; i++ {
		b.WriteByte(' ')
	}
}
