package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/moamenhredeen/oasprobe/internal/models"
)

// Format represents the output format type
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// Layout selects the columns of a tabular report
type Layout string

const (
	LayoutFull   Layout = "full"
	LayoutSimple Layout = "simple"
)

// FullHeader is the header row of the full layout
var FullHeader = []string{"Method", "URL", "Path Parameters", "Query Parameters", "Response Status", "Response Body"}

// SimpleHeader is the header row of the simple layout
var SimpleHeader = []string{"Method", "URL", "Version", "Status Code", "Response Body"}

// ExportReport writes the report to filePath (stdout when empty)
func ExportReport(report *models.Report, format Format, layout Layout, filePath string) error {
	w, closer, err := getWriter(filePath)
	if err != nil {
		return err
	}
	return writeAndClose(w, closer, report, format, layout)
}

// writeAndClose writes the report and closes the destination; a close
// failure is reported when the write itself succeeded
func writeAndClose(w io.Writer, closer io.Closer, report *models.Report, format Format, layout Layout) (err error) {
	if closer != nil {
		defer func() {
			if cerr := closer.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("failed to close output file: %w", cerr)
			}
		}()
	}
	return WriteReport(w, report, format, layout)
}

// WriteReport writes the report to w
func WriteReport(w io.Writer, report *models.Report, format Format, layout Layout) error {
	switch format {
	case FormatJSON:
		return exportJSON(w, report)
	case FormatCSV:
		return exportCSV(w, report, layout)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// getWriter returns an io.Writer for output (stdout or file)
func getWriter(filePath string) (io.Writer, io.Closer, error) {
	if filePath == "" {
		return os.Stdout, nil, nil
	}

	f, err := os.Create(filePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f, nil
}

func exportJSON(w io.Writer, report *models.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func exportCSV(w io.Writer, report *models.Report, layout Layout) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header, row := FullHeader, fullRow
	if layout == LayoutSimple {
		header, row = SimpleHeader, simpleRow
	}

	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range report.Results {
		if err := cw.Write(row(r)); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// fullRow renders a result; FETCH rows carry N/A instead of parameter maps
func fullRow(r models.ExecutionResult) []string {
	pathParams, queryParams := models.NotApplicable, models.NotApplicable
	if !r.IsFetchFailure() {
		pathParams = r.PathParams.JSON()
		queryParams = r.QueryParams.JSON()
	}
	return []string{r.Method, r.URL, pathParams, queryParams, r.Status.String(), r.Body}
}

func simpleRow(r models.ExecutionResult) []string {
	version := r.Version
	if r.IsFetchFailure() {
		version = models.NotApplicable
	}
	return []string{r.Method, r.URL, version, r.Status.String(), r.Body}
}

// ParseFormat parses a string into a Format, returning error if invalid
func ParseFormat(s string) (Format, error) {
	switch s {
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("invalid format '%s': must be 'json' or 'csv'", s)
	}
}

// ParseLayout parses a string into a Layout, returning error if invalid
func ParseLayout(s string) (Layout, error) {
	switch s {
	case "full":
		return LayoutFull, nil
	case "simple":
		return LayoutSimple, nil
	default:
		return "", fmt.Errorf("invalid layout '%s': must be 'full' or 'simple'", s)
	}
}
