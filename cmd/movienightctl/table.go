package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// column is one column of a CLI listing. Numeric columns sit on the right.
type column struct {
	title   string
	numeric bool
}

var (
	tallyColumns = []column{
		{title: "#", numeric: true},
		{title: "Type"},
		{title: "Media"},
		{title: "Votes", numeric: true},
	}
	favoriteColumns = []column{
		{title: "Title"},
		{title: "Type"},
		{title: "Media"},
		{title: "Added by"},
		{title: "Rating", numeric: true},
		{title: "Added"},
	}
)

// renderTable draws rows under columns. Short rows are padded with blanks and
// header titles keep their case.
func renderTable(columns []column, rows [][]string) string {
	if len(columns) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Header = text.FormatDefault

	header := make(table.Row, 0, len(columns))
	configs := make([]table.ColumnConfig, 0, len(columns))
	for i, c := range columns {
		header = append(header, c.title)
		align := text.AlignLeft
		if c.numeric {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{Number: i + 1, Align: align, AlignHeader: text.AlignLeft})
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	for _, row := range rows {
		r := make(table.Row, len(columns))
		for i := range r {
			r[i] = ""
			if i < len(row) {
				r[i] = row[i]
			}
		}
		tw.AppendRow(r)
	}
	return tw.Render()
}
