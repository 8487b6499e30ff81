package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"file-integrity/core/reconcile"
	"file-integrity/core/report"
	"file-integrity/feature/integrity"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
)

// Output formats accepted by --format.
const (
	formatCSV   = "csv"
	formatJSON  = "json"
	formatTable = "table"
)

// resolveFormat picks the output format. Without --format, files get CSV and
// terminals get a table.
func resolveFormat(format, output string) (string, error) {
	switch format {
	case formatCSV, formatJSON, formatTable:
		return format, nil
	case "":
		if output == "" && isTerminal(os.Stdout) {
			return formatTable, nil
		}
		return formatCSV, nil
	default:
		return "", fmt.Errorf("unknown format %q (want csv, json or table)", format)
	}
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func renderFingerprints(w io.Writer, format string, result *integrity.GenerateResult) error {
	switch format {
	case formatJSON:
		return writeJSON(w, result)
	case formatTable:
		rows := make([][]string, 0, len(result.Fingerprints))
		for _, r := range result.Fingerprints {
			rows = append(rows, []string{r.Name, r.Digest})
		}
		_, err := fmt.Fprintln(w, renderTable(report.FingerprintHeader, rows, nil))
		return err
	default:
		return report.WriteFingerprints(w, result.Set)
	}
}

func renderComparison(w io.Writer, format string, result *integrity.CompareResult) error {
	switch format {
	case formatJSON:
		return writeJSON(w, result)
	case formatTable:
		rows := make([][]string, 0, len(result.Results))
		for _, r := range result.Results {
			rows = append(rows, []string{r.Name, shortDigest(r.BaselineDigest), shortDigest(r.CurrentDigest), string(r.Status)})
		}
		if _, err := fmt.Fprintln(w, renderTable(report.ComparisonHeader, rows, nil)); err != nil {
			return err
		}
		_, err := fmt.Fprintln(w, summaryLine(result.Summary))
		return err
	default:
		return report.WriteComparison(w, result.Results)
	}
}

func summaryLine(s reconcile.Summary) string {
	return fmt.Sprintf("%d files: %d unchanged, %d modified, %d new, %d missing",
		s.Total, s.Unchanged, s.Modified, s.New, s.Missing)
}

// shortDigest abbreviates a digest for terminal tables. Absent digests render as "-".
func shortDigest(d *string) string {
	if d == nil {
		return "-"
	}
	if len(*d) > 16 {
		return (*d)[:16] + "…"
	}
	return *d
}

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{Number: i + 1, Align: align, AlignHeader: text.AlignLeft})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeOutput renders into path, or stdout when path is empty. Files are
// replaced atomically so a failed run never leaves a truncated report.
func writeOutput(path string, render func(io.Writer) error) error {
	if path == "" || path == "-" {
		return render(os.Stdout)
	}

	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return err
	}
	return writeFileAtomic(path, buf.Bytes())
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	base := strings.TrimPrefix(filepath.Base(path), ".")
	tmp, err := os.CreateTemp(dir, "."+base+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	// CreateTemp uses 0600, reports are meant to be shared
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to set file mode: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
