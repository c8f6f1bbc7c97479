package main

import (
	"sort"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"snapsort/internal/batch"
	"snapsort/internal/outcome"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

// renderSummary lists per-status counts, then the reasons behind skips and
// failures.
func renderSummary(summary batch.Summary, unreadableDirs int64) string {
	rows := make([][]string, 0, len(outcome.Statuses)+len(summary.ByReason)+1)
	for _, status := range outcome.Statuses {
		n := summary.Count(status)
		if n == 0 {
			continue
		}
		rows = append(rows, []string{statusLabel(status), "", strconv.FormatInt(n, 10)})
	}

	reasons := make([]string, 0, len(summary.ByReason))
	for reason := range summary.ByReason {
		if reason != outcome.ReasonNone {
			reasons = append(reasons, string(reason))
		}
	}
	sort.Strings(reasons)
	for _, reason := range reasons {
		rows = append(rows, []string{"", reason, strconv.FormatInt(summary.ByReason[outcome.Reason(reason)], 10)})
	}
	if unreadableDirs > 0 {
		rows = append(rows, []string{"", string(outcome.ReasonScanSubtreeUnreadable), strconv.FormatInt(unreadableDirs, 10)})
	}

	return renderTable(
		[]string{"Outcome", "Reason", "Files"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight},
	)
}

func statusLabel(status outcome.Status) string {
	return cases.Title(language.Und).String(string(status))
}

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := range columns {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := range columns {
			if i < len(row) {
				r[i] = row[i]
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := range columns {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}
