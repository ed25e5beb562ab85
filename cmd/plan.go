/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"

	"github.com/moamenhredeen/oasprobe/internal/config"
	"github.com/moamenhredeen/oasprobe/internal/parser"
	"github.com/moamenhredeen/oasprobe/internal/prober"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// planCmd represents the plan command
var planCmd = &cobra.Command{
	Use:   "plan [document-url]",
	Short: "Show the requests a probe would send, without sending them",
	Long: `Fetch a single Swagger/OpenAPI document and print every operation with the
URL it would be probed at. No request is sent to the described API.`,
	Args: cobra.ExactArgs(1),
	RunE: runPlan,
}

func runPlan(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.FetchTimeout)
	defer cancel()

	doc, err := parser.NewFetcher(cfg.FetchTimeout).SetMaxSize(cfg.MaxDocSize).Fetch(ctx, args[0])
	if err != nil {
		return err
	}

	builder := prober.NewRequestBuilder(newGenerator(cfg.Seed), cfg.Scheme)
	fmt.Printf("%s\n", white(fmt.Sprintf("=== %s (%d operations) ===", args[0], doc.OperationCount())))
	for _, op := range doc.Operations() {
		req := builder.BuildRequest(doc, op)
		fmt.Printf("%-7s %s\n", req.Method, req.URL)
		if cfg.Verbose {
			fmt.Printf("        path:  %s\n", req.PathParams.JSON())
			fmt.Printf("        query: %s\n", req.QueryParams.JSON())
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(planCmd)
}
