// Package stats contains ranking statistics and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"
)

const sparkChars = " .:-=+*#%@"

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values. Values are
// scaled from zero so that empty buckets stay blank.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	maxVal := 0.0
	for _, v := range values {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal <= 0 {
		return strings.Repeat(string(sparkChars[0]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		idx := int(math.Ceil(v / maxVal * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderReport prints the ranking report with automatic plot width.
func RenderReport(w io.Writer, r Report) error {
	return RenderReportWithSize(w, r, 0, 10, false)
}

// RenderReportWithSize prints the category tables and, for the repeats and
// direction groups, a plot of each category's share along the ranking.
// totalWidth <= 0 uses the terminal width; height <= 0 skips the plots.
func RenderReportWithSize(w io.Writer, r Report, totalWidth, height int, useColor bool) error {
	if r.Total == 0 {
		_, err := fmt.Fprintln(w, "No ranked sequences found.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Ranking Report"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Sequences: %d (easiest first)\n\n", r.Total); err != nil {
		return err
	}
	for _, g := range r.Groups {
		if err := RenderGroupTable(w, g, r.Total); err != nil {
			return err
		}
	}
	if height <= 0 {
		return nil
	}
	for _, title := range []string{GroupRepeats, GroupDirection} {
		g, ok := r.Group(title)
		if !ok {
			continue
		}
		if err := RenderGroupCurves(w, g, r.Total, totalWidth, height, useColor); err != nil {
			return err
		}
	}
	return nil
}

// RenderGroupTable prints one group as a table of categories.
func RenderGroupTable(w io.Writer, g Group, total int) error {
	if _, err := fmt.Fprintln(w, g.Title); err != nil {
		return err
	}
	if len(g.Categories) == 0 {
		if _, err := fmt.Fprintln(w, "No classified sequences."); err != nil {
			return err
		}
	} else {
		headers := []string{"Category", "Count", "Share", "Mean rank", "Distribution"}
		rows := make([][]string, 0, len(g.Categories))
		for _, c := range g.Categories {
			rows = append(rows, []string{
				c.Name,
				fmt.Sprintf("%d", c.Count),
				formatPct(share(c.Count, total)),
				formatPct(c.MeanRank),
				"|" + Sparkline(c.Histogram) + "|",
			})
		}
		rightAlign := map[int]bool{1: true, 2: true, 3: true}
		for _, line := range formatTable(headers, rows, rightAlign) {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	if g.Unclassified > 0 {
		if _, err := fmt.Fprintf(w, "Unclassified: %d\n", g.Unclassified); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderGroupCurves plots the share of each category per rank bucket.
func RenderGroupCurves(w io.Writer, g Group, total, totalWidth, height int, useColor bool) error {
	if len(g.Categories) == 0 || total == 0 {
		return nil
	}
	series := make([]Series, 0, len(g.Categories))
	for _, c := range g.Categories {
		values := make([]float64, len(c.Histogram))
		for i, v := range c.Histogram {
			values[i] = v / float64(c.Count) * 100
		}
		series = append(series, Series{Name: c.Name, Values: MovingAverage(values, 2)})
	}
	width := 0
	if totalWidth > 0 {
		width = PlotWidthFor(totalWidth)
	}
	return PlotSeriesWithColor(w, g.Title+" along the ranking", series, width, height, useColor)
}

func share(count, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}

func formatPct(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}
