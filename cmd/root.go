/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/moamenhredeen/oasprobe/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "oasprobe [swagger-urls-csv]",
	Short: "Unauthenticated API prober driven by Swagger/OpenAPI documents",
	Long: `oasprobe reads a list of Swagger/OpenAPI document URLs, discovers every
declared operation, fills its path and query parameters with generated values
and sends the request without any credentials.

Every attempt is recorded as one row of the report, failures included.`,
	Args:          cobra.MaximumNArgs(1),
	RunE:          runProbe,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	cobra.OnInitialize(func() {
		config.SetDefaults(viper.GetViper())
		config.BindEnv(viper.GetViper())
		if err := config.ReadFile(viper.GetViper()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	})
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringP("input", "i", "swagger_urls.csv", "CSV file listing one document URL per row (header row skipped)")
	flags.StringP("output", "o", "api_test_results.csv", "Report file, '-' for stdout")
	flags.StringP("format", "f", "csv", "Report format: csv, json")
	flags.String("layout", "full", "CSV columns: full, simple")
	flags.String("scheme", "https", "Scheme used to reach probed endpoints")
	flags.Duration("timeout", 30*time.Second, "Per-request timeout for endpoint probes")
	flags.Duration("fetch-timeout", 30*time.Second, "Timeout for downloading each document")
	flags.Int64("max-body-size", 1<<20, "Bytes of each response body kept in the report")
	flags.Int64("max-document-size", 10<<20, "Largest document accepted, in bytes")
	flags.Int64("seed", 0, "Seed for value generation, 0 picks a random seed")
	flags.String("log-level", "info", "Log level: debug, info, warn, error")
	flags.String("log-format", "console", "Log format: console, json")
	flags.BoolP("verbose", "v", false, "Show every probed operation")

	viper.BindPFlag("input", flags.Lookup("input"))
	viper.BindPFlag("output", flags.Lookup("output"))
	viper.BindPFlag("format", flags.Lookup("format"))
	viper.BindPFlag("layout", flags.Lookup("layout"))
	viper.BindPFlag("scheme", flags.Lookup("scheme"))
	viper.BindPFlag("timeout", flags.Lookup("timeout"))
	viper.BindPFlag("fetch_timeout", flags.Lookup("fetch-timeout"))
	viper.BindPFlag("max_body_size", flags.Lookup("max-body-size"))
	viper.BindPFlag("max_document_size", flags.Lookup("max-document-size"))
	viper.BindPFlag("seed", flags.Lookup("seed"))
	viper.BindPFlag("log.level", flags.Lookup("log-level"))
	viper.BindPFlag("log.format", flags.Lookup("log-format"))
	viper.BindPFlag("verbose", flags.Lookup("verbose"))
}
