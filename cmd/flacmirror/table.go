package main

import (
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"flacmirror/internal/dispatch"
)

func renderTable(headers []string, rows [][]string) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, len(row))
		for i, cell := range row {
			r[i] = cell
		}
		tw.AppendRow(r)
	}

	configs := []table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
	}
	if len(headers) == 2 {
		configs = append(configs, table.ColumnConfig{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft})
	}
	tw.SetColumnConfigs(configs)
	return tw.Render()
}

func renderSummary(result dispatch.Result, upToDate, orphansRemoved int, elapsed time.Duration) string {
	rows := [][]string{
		{"Converted", strconv.Itoa(result.Converted)},
		{"Up to date", strconv.Itoa(upToDate)},
		{"Failed", strconv.Itoa(result.Failed)},
		{"Aborted", strconv.Itoa(result.Aborted)},
		{"Orphans removed", strconv.Itoa(orphansRemoved)},
		{"Elapsed", elapsed.Round(time.Second).String()},
	}
	return renderTable([]string{"Result", "Count"}, rows)
}
