package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/wonny/pulseboard/backend/internal/contracts"
	"github.com/wonny/pulseboard/backend/internal/pipeline"
)

// ═══════════════════════════════════════════════════════════
// Common Formatting Utilities
// 모든 커맨드가 동일한 출력 포맷을 사용하도록 통일
// ═══════════════════════════════════════════════════════════

const (
	doubleRule = "═══════════════════════════════════════════════════════════"
	singleRule = "───────────────────────────────────────────────────────────"
)

// PrintHeader prints a titled section header
func PrintHeader(w io.Writer, title string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, doubleRule)
	fmt.Fprintf(w, "  %s\n", title)
	fmt.Fprintln(w, singleRule)
}

// PrintSeparator prints a visual separator
func PrintSeparator(w io.Writer) {
	fmt.Fprintln(w, singleRule)
}

// PrintSuccess prints a success message
func PrintSuccess(w io.Writer, message string) {
	fmt.Fprintf(w, "✅ %s\n", message)
}

// PrintWarning prints a warning message
func PrintWarning(w io.Writer, message string) {
	fmt.Fprintf(w, "⚠️  %s\n", message)
}

// PrintError prints an error message
func PrintError(w io.Writer, message string) {
	fmt.Fprintf(w, "❌ %s\n", message)
}

// PrintKeyValue prints key-value pairs
func PrintKeyValue(w io.Writer, key string, value string, keyWidth int) {
	fmt.Fprintf(w, "   %-*s : %s\n", keyWidth, key, value)
}

// PrintList prints a bulleted list
func PrintList(w io.Writer, items []string) {
	for _, item := range items {
		fmt.Fprintf(w, "   • %s\n", item)
	}
}

// PrintTableHeader prints a table header
func PrintTableHeader(w io.Writer, columns []string, widths []int) {
	PrintTableRow(w, columns, widths)

	totalWidth := 0
	for i, width := range widths {
		totalWidth += width
		if i < len(widths)-1 {
			totalWidth += 2 // spacing
		}
	}
	fmt.Fprintln(w, strings.Repeat("─", totalWidth))
}

// PrintTableRow prints a table row
func PrintTableRow(w io.Writer, values []string, widths []int) {
	for i, val := range values {
		fmt.Fprintf(w, "%-*s", widths[i], val)
		if i < len(values)-1 {
			fmt.Fprint(w, "  ")
		}
	}
	fmt.Fprintln(w)
}

// PrintDatasetStatuses prints one row per dataset in the report
func PrintDatasetStatuses(w io.Writer, statuses []pipeline.DatasetStatus) {
	widths := []int{20, 11, 6, 7, 30}
	PrintTableHeader(w, []string{"DATASET", "DOMAIN", "ROWS", "READY", "MISSING"}, widths)
	for _, ds := range statuses {
		ready := "yes"
		if !ds.Ready {
			ready = "no"
		}
		PrintTableRow(w, []string{
			ds.ID,
			string(ds.Domain),
			strconv.Itoa(ds.Rows),
			ready,
			strings.Join(ds.Missing, ", "),
		}, widths)
	}
}

// PrintInsights prints ranked insights with their supporting facts
func PrintInsights(w io.Writer, insights []contracts.Insight) {
	if len(insights) == 0 {
		fmt.Fprintln(w, "   (no insights fired)")
		return
	}
	for i, in := range insights {
		fmt.Fprintf(w, "%d. [%s/%s] %s\n", i+1, in.Severity, in.Priority, in.Title)
		fmt.Fprintf(w, "   %s\n", in.Message)
		if in.RecommendedAction != "" {
			fmt.Fprintf(w, "   → %s\n", in.RecommendedAction)
		}
		for _, f := range in.Facts {
			PrintKeyValue(w, f.Label, f.Value, 28)
		}
	}
}

// PrintReport prints a human-readable analysis report
func PrintReport(w io.Writer, r *pipeline.Report) {
	PrintHeader(w, "Pulseboard Analysis")
	PrintKeyValue(w, "Report ID", r.ID, 12)
	PrintKeyValue(w, "Generated", r.GeneratedAt.Format("2006-01-02 15:04:05"), 12)
	PrintSeparator(w)

	PrintDatasetStatuses(w, r.Datasets)

	PrintHeader(w, "Top Insights")
	PrintInsights(w, r.Insights.Top)

	if extra := len(r.Insights.All) - len(r.Insights.Top); extra > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "   (+%d more, use --json or --limit to see all)\n", extra)
	}
	fmt.Fprintln(w, doubleRule)
}
