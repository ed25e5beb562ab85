/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/moamenhredeen/oasprobe/internal/config"
	"github.com/moamenhredeen/oasprobe/internal/generator"
	"github.com/moamenhredeen/oasprobe/internal/input"
	"github.com/moamenhredeen/oasprobe/internal/logger"
	"github.com/moamenhredeen/oasprobe/internal/output"
	"github.com/moamenhredeen/oasprobe/internal/parser"
	"github.com/moamenhredeen/oasprobe/internal/prober"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// stdoutPath selects stdout as the report destination
const stdoutPath = "-"

func runProbe(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		viper.Set("input", args[0])
	}

	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}
	defer log.Sync()

	urls, err := input.ReadURLsFile(cfg.Input)
	if err != nil {
		return err
	}
	log.Info("starting run",
		zap.String("input", cfg.Input),
		zap.Int("documents", len(urls)),
		zap.Duration("timeout", cfg.Timeout),
		zap.Duration("fetch_timeout", cfg.FetchTimeout),
	)

	format, err := output.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}
	layout, err := output.ParseLayout(cfg.Layout)
	if err != nil {
		return err
	}

	p := prober.NewProber(
		parser.NewFetcher(cfg.FetchTimeout).SetMaxSize(cfg.MaxDocSize),
		prober.NewRequestBuilder(newGenerator(cfg.Seed), cfg.Scheme),
		prober.NewExecutor(cfg.Timeout).SetMaxBodySize(cfg.MaxBodySize),
	)

	// Setup context with signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			log.Warn("run interrupted, writing partial results")
			cancel()
		case <-ctx.Done():
		}
	}()

	outputPath := cfg.Output
	toStdout := outputPath == stdoutPath || outputPath == ""
	if toStdout {
		outputPath = ""
	}

	observer := logger.NewObserver(log)
	var progress *consoleProgress
	if !toStdout {
		progress = newConsoleProgress(cfg.Verbose)
	}
	onEvent := func(event prober.ProbeEvent) {
		observer.Handle(event)
		if progress != nil {
			progress.handle(event)
		}
	}

	report := p.ProbeDocuments(ctx, urls, onEvent)
	if progress != nil {
		progress.stop()
	}

	if err := output.ExportReport(report, format, layout, outputPath); err != nil {
		return fmt.Errorf("exporting results: %w", err)
	}
	log.Info("run finished",
		zap.Int("rows", report.TotalRows),
		zap.Int("request_errors", report.Failed),
		zap.Int("fetch_failures", report.FetchFailures),
	)

	if !toStdout {
		displaySummary(report, outputPath)
	}
	return nil
}

func newGenerator(seed int64) *generator.Generator {
	if seed == 0 {
		return generator.NewGenerator()
	}
	return generator.NewSeeded(seed)
}
