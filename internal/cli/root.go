// Package cli defines the photolab command tree. Each command file wires
// itself onto the root in init; main calls Execute.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/photolab-studio/photolab/internal/batch"
)

var rootCmd = &cobra.Command{
	Use:           "photolab",
	Short:         "Metadata-preserving crop, resize and convert toolkit",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the command tree.
func Execute(version string) error {
	rootCmd.Version = version
	return rootCmd.Execute()
}

// resolverFor maps the --on-conflict flag to a fixed resolver.
func resolverFor(policy string) (batch.ConflictResolver, error) {
	switch policy {
	case "duplicate":
		return batch.DecisionPolicy(batch.DecisionDuplicate), nil
	case "replace":
		return batch.DecisionPolicy(batch.DecisionReplace), nil
	case "cancel":
		return batch.DecisionPolicy(batch.DecisionCancel), nil
	}
	return nil, fmt.Errorf("unknown conflict policy %q (want duplicate, replace or cancel)", policy)
}

// printReport lists a batch outcome and returns an error when any item
// failed, so the process exits nonzero.
func printReport(cmd *cobra.Command, report batch.Report) error {
	for _, path := range report.Written {
		cmd.Printf("wrote %s\n", path)
	}
	for _, path := range report.Skipped {
		cmd.Printf("skipped %s\n", path)
	}
	for _, item := range report.Errors {
		cmd.PrintErrf("failed %s\n", item.Error())
	}
	if report.Canceled {
		cmd.PrintErrln("batch canceled")
	}
	if len(report.Errors) > 0 {
		return fmt.Errorf("%d of %d items failed", len(report.Errors),
			len(report.Written)+len(report.Skipped)+len(report.Errors))
	}
	return nil
}
