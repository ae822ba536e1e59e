package postprocess

import (
	"strings"

	"github.com/tidwall/gjson"
)

// Tablify interprets text as JSON, extracts the array of flat records at
// path (gjson syntax, e.g. "aggregations.hist.buckets") and renders them as
// an aligned text table. Column order follows the first record's key order.
// When the path does not resolve to an array of records the text passes
// through unchanged.
func Tablify(text, path string) string {
	records := gjson.Get(text, path)
	if !records.IsArray() {
		return text
	}

	var columns []string
	rows := make([][]string, 0, 8)
	records.ForEach(func(_, rec gjson.Result) bool {
		if !rec.IsObject() {
			return true
		}
		if columns == nil {
			rec.ForEach(func(key, _ gjson.Result) bool {
				columns = append(columns, key.String())
				return true
			})
		}
		row := make([]string, len(columns))
		for i, col := range columns {
			row[i] = rec.Get(col).String()
		}
		rows = append(rows, row)
		return true
	})
	if len(columns) == 0 {
		return text
	}
	return renderTable(columns, rows)
}

func renderTable(columns []string, rows [][]string) string {
	widths := make([]int, len(columns))
	for i, c := range columns {
		widths[i] = len(c)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var b strings.Builder
	writeRow := func(cells []string) {
		b.WriteString("|")
		for i, cell := range cells {
			b.WriteString(" ")
			b.WriteString(cell)
			b.WriteString(strings.Repeat(" ", widths[i]-len(cell)))
			b.WriteString(" |")
		}
		b.WriteString("\n")
	}

	writeRow(columns)
	b.WriteString("|")
	for _, w := range widths {
		b.WriteString(strings.Repeat("-", w+2))
		b.WriteString("|")
	}
	b.WriteString("\n")
	for _, row := range rows {
		writeRow(row)
	}
	return strings.TrimSuffix(b.String(), "\n")
}
