package adapters

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"crate-licenses/internal/types"
)

const markdownReportName = ".license_report.md"
const jsonReportName = ".license_report.json"

type OutputFileAdapter struct {
	Dir string
}

func NewOutputFileAdapter(dir string) OutputFileAdapter {
	return OutputFileAdapter{Dir: dir}
}

// WriteMarkdown renders one bullet line per report. Reports are sorted
// by crate name because the builder collects them in completion order.
func (a OutputFileAdapter) WriteMarkdown(reports []types.LicenseReport) (string, error) {
	path, err := a.ensurePath(markdownReportName)
	if err != nil {
		return "", err
	}
	ordered := sortedReports(reports)

	var b strings.Builder
	b.WriteString("# License Report\n")
	b.WriteString("This report lists direct dependencies (only from Cargo.toml) and their matched licenses.\n\n")
	for _, report := range ordered {
		fmt.Fprintf(&b, "- **%s** (version: `%s`) → *%s*\n",
			report.CrateName, report.MatchedVersion, report.License)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write markdown report").
			WithCause(err)
	}
	return path, nil
}

// WriteJSON renders the report set as a pretty-printed JSON array.
func (a OutputFileAdapter) WriteJSON(reports []types.LicenseReport) (string, error) {
	path, err := a.ensurePath(jsonReportName)
	if err != nil {
		return "", err
	}
	ordered := sortedReports(reports)
	data, err := json.MarshalIndent(ordered, "", "  ")
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to marshal json report").
			WithCause(err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write json report").
			WithCause(err)
	}
	return path, nil
}

func (a OutputFileAdapter) ensurePath(name string) (string, error) {
	dir := a.Dir
	if strings.TrimSpace(dir) == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create output directory").
			WithCause(err)
	}
	return filepath.Join(dir, name), nil
}

func sortedReports(reports []types.LicenseReport) []types.LicenseReport {
	ordered := make([]types.LicenseReport, 0, len(reports))
	ordered = append(ordered, reports...)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].CrateName != ordered[j].CrateName {
			return ordered[i].CrateName < ordered[j].CrateName
		}
		return ordered[i].MatchedVersion < ordered[j].MatchedVersion
	})
	return ordered
}
