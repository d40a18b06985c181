// Package cmd implements the command-line interface for hubfilter.
// It wires configuration loading, registry fetching, filtering, and
// YAML report writing into a single pipeline command.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ajxudir/hubfilter/pkg/config"
	"github.com/ajxudir/hubfilter/pkg/errors"
	"github.com/ajxudir/hubfilter/pkg/inventory"
	"github.com/ajxudir/hubfilter/pkg/output"
	"github.com/ajxudir/hubfilter/pkg/registry"
	"github.com/ajxudir/hubfilter/pkg/software"
	"github.com/ajxudir/hubfilter/pkg/verbose"
	"github.com/ajxudir/hubfilter/pkg/warnings"
)

var exitFunc = os.Exit
var verboseFlag bool

var (
	allowedFileFlag string
	allFileFlag     string
)

// newClientFunc builds the registry client. Tests swap it to point the
// pipeline at an httptest server.
var newClientFunc = func() registry.Client {
	return registry.NewHubClient()
}

var rootCmd = &cobra.Command{
	Use:   "hubfilter CONFIG",
	Short: "Docker Hub repository and tag filter",
	Long: `Fetch repositories and tags from Docker Hub, filter them against
configured rules, and write the results as YAML reports.`,
	Args: cobra.ExactArgs(1),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verboseFlag {
			verbose.Enable()
		}
	},
	RunE:          runFilter,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits with appropriate code:
//   - 0: Success
//   - 2: Fetch or write failure
//   - 3: Configuration error
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		code := errors.GetExitCode(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		verbose.Infof("Exit code %d: %v", code, err)
		exitFunc(code)
	}
}

// ExecuteTest runs the root command for testing (returns error instead of exiting).
//
// Unlike Execute(), this function returns the error directly without calling
// os.Exit, making it suitable for use in test suites.
//
// Returns:
//   - error: Command execution error, or nil on success
func ExecuteTest() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "Enable verbose debug output")

	rootCmd.Flags().StringVar(&allowedFileFlag, "allowed", output.DefaultAllowedFile, "Output file for the filtered repository list")
	rootCmd.Flags().StringVar(&allFileFlag, "all", output.DefaultAllFile, "Output file for the unfiltered repository list")

	rootCmd.AddCommand(versionCmd)
}

// runFilter executes the full pipeline for one configuration file.
//
// It performs the following operations:
//   - Step 1: Loads and validates the YAML configuration
//   - Step 2: Fetches and filters every configured namespace
//   - Step 3: Aggregates the results by software label
//   - Step 4: Writes the three YAML reports
//   - Step 5: Prints unknown-label diagnostics after the reports exist
//
// Parameters:
//   - cmd: Cobra command instance
//   - args: Positional arguments; args[0] is the config file path
//
// Returns:
//   - error: Configuration, fetch, or write error; nil on success
func runFilter(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(args[0])
	if err != nil {
		return err
	}

	client := newClientFunc()
	inv, err := inventory.Build(context.Background(), client, cfg)
	if err != nil {
		return err
	}

	agg := software.Aggregate(inv, cfg)

	files := []struct {
		path string
		doc  *output.Document
	}{
		{allowedFileFlag, output.AllowedReposDocument(agg)},
		{allFileFlag, output.AllReposDocument(inv)},
		{output.DefaultBySoftwareFile, output.BySoftwareDocument(agg)},
	}
	for _, f := range files {
		if err := output.WriteFile(f.path, f.doc); err != nil {
			return err
		}
	}

	// Diagnostics print only after all reports are on disk, so a noisy
	// config never suppresses the output files.
	for _, ref := range agg.UnknownRefs {
		warnings.Warnf("unknown software reference %q has no entry in the software section", ref)
	}

	if verbose.IsEnabled() {
		output.PrintSummary(cmd.OutOrStdout(), inv, agg)
	}

	return nil
}
