package ingest

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/jonesrussell/tourcrawl/internal/pipeline"
)

// renderReport prints the run statistics as tables.
func renderReport(out io.Writer, report pipeline.Report) {
	summary := table.NewWriter()
	summary.SetOutputMirror(out)
	summary.SetStyle(table.StyleLight)
	summary.SetTitle("Run Summary")
	summary.AppendRows([]table.Row{
		{"Duration", fmt.Sprintf("%.2fs", report.DurationSeconds)},
		{"Items processed", report.Validation.Processed},
		{"Items validated", report.Validation.Validated},
		{"Items rejected", report.Validation.Rejected},
		{"Unique items", report.Dedup.UniqueItems},
		{"Duplicates found", report.Dedup.DuplicatesFound},
		{"Geocoded", report.Geocoding.Resolved},
		{"Geocoding cache hits", report.Geocoding.CacheHits},
		{"Items saved", report.Persistence.Persisted},
		{"Save errors", report.Persistence.Failures},
		{"Total counted", report.TotalItems},
	})
	summary.Render()

	renderCounts(out, "Categories", report.Categories)
	renderCounts(out, "Regions", report.Regions)
	renderCounts(out, "Cities", report.Cities)
	renderCounts(out, "Price Types", report.PriceTypes)
}

// renderCounts prints one breakdown table, largest counts first.
func renderCounts(out io.Writer, title string, counts map[string]int64) {
	if len(counts) == 0 {
		return
	}

	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.SetTitle(title)
	t.AppendHeader(table.Row{"Name", "Count"})
	for _, key := range keys {
		t.AppendRow(table.Row{key, counts[key]})
	}
	t.Render()
}

// writeReport saves the report as a timestamped JSON file.
func writeReport(dir string, report pipeline.Report) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf("crawler_stats_%s.json", time.Now().Format("20060102_150405")))

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}

	return path, nil
}
