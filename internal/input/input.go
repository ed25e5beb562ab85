// Package input reads the list of document URLs to probe.
package input

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadURLs reads a CSV table with a header row and returns the first
// column of every following row. Blank rows are skipped.
func ReadURLs(r io.Reader) ([]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	if _, err := cr.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading header: %w", err)
	}

	var urls []string
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row: %w", err)
		}
		if len(record) == 0 {
			continue
		}
		url := strings.TrimSpace(record[0])
		if url == "" {
			continue
		}
		urls = append(urls, url)
	}
	return urls, nil
}

// ReadURLsFile reads URLs from the CSV file at path
func ReadURLsFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	return ReadURLs(f)
}
