/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/moamenhredeen/oasprobe/internal/models"
	"github.com/moamenhredeen/oasprobe/internal/prober"
)

var (
	isTTY = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

	// Color helpers
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan, color.Bold).SprintFunc()
	white  = color.New(color.FgWhite, color.Bold).SprintFunc()
)

// consoleProgress renders probe events on stdout
type consoleProgress struct {
	verbose bool
	s       *spinner.Spinner
	probed  int
}

func newConsoleProgress(verbose bool) *consoleProgress {
	return &consoleProgress{verbose: verbose}
}

func (c *consoleProgress) handle(event prober.ProbeEvent) {
	prefix := fmt.Sprintf("[%d/%d]", event.Index+1, event.Total)

	switch event.Type {
	case prober.EventDocumentFetched:
		doc := event.Document
		fmt.Printf("%s %s %s (%d operations)\n", prefix, cyan("→"), event.SourceURL, doc.OperationCount())
		c.probed = 0
		if isTTY && doc.OperationCount() > 0 {
			c.s = spinner.New(spinner.CharSets[14], 100*time.Millisecond)
			c.s.Suffix = fmt.Sprintf(" %s probing 0/%d", prefix, doc.OperationCount())
			c.s.Start()
		}

	case prober.EventOperationProbed, prober.EventFailureRecorded:
		if event.Operation == nil {
			fmt.Printf("%s %s %s - %s\n", prefix, red("✗"), event.SourceURL, event.Result.Body)
			return
		}

		c.probed++
		total := event.Document.OperationCount()
		if c.s != nil {
			c.s.Suffix = fmt.Sprintf(" %s probing %d/%d", prefix, c.probed, total)
		}
		if c.verbose {
			c.printRow(*event.Result)
		}
		if c.probed == total && c.s != nil {
			c.s.Stop()
			c.s = nil
		}
	}
}

func (c *consoleProgress) printRow(r models.ExecutionResult) {
	if c.s != nil {
		c.s.Stop()
		defer c.s.Start()
	}

	status := r.Status.String()
	switch {
	case r.Status.IsError():
		fmt.Printf("    %s %-7s %s - %s\n", red("✗"), r.Method, r.URL, r.Body)
		return
	case r.Status.Code < 300:
		status = green(status)
	case r.Status.Code < 500:
		status = yellow(status)
	default:
		status = red(status)
	}
	fmt.Printf("    %s %-7s %s\n", status, r.Method, r.URL)
}

func (c *consoleProgress) stop() {
	if c.s != nil {
		c.s.Stop()
		c.s = nil
	}
}

func displaySummary(report *models.Report, outputPath string) {
	fmt.Println()
	fmt.Printf("%s\n", white("=== Probe Summary ==="))
	fmt.Printf("Rows:            %d\n", report.TotalRows)
	fmt.Printf("Probed:          %d\n", report.Probed)
	if report.Failed > 0 {
		fmt.Printf("Request errors:  %s\n", red(report.Failed))
	} else {
		fmt.Printf("Request errors:  %s\n", green("0"))
	}
	if report.FetchFailures > 0 {
		fmt.Printf("Fetch failures:  %s\n", red(report.FetchFailures))
	} else {
		fmt.Printf("Fetch failures:  %s\n", green("0"))
	}
	if outputPath != "" {
		fmt.Printf("\nResults saved to %s\n", outputPath)
	}
}
