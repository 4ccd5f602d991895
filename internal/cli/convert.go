package cli

import (
	"github.com/spf13/cobra"

	"github.com/photolab-studio/photolab/internal/batch"
	"github.com/photolab-studio/photolab/internal/codec"
)

var convertCmd = &cobra.Command{
	Use:   "convert [files...]",
	Short: "Re-encode images in another format",
	Long: `Convert every file to the target format. Files already in the target
format are skipped. Without --out the converted file is written next to
its source.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

var convertFlags struct {
	to         string
	outDir     string
	onConflict string
}

func init() {
	f := convertCmd.Flags()
	f.StringVar(&convertFlags.to, "to", "", "Target format: jpg, png, heic, ico or pdf")
	f.StringVar(&convertFlags.outDir, "out", "", "Destination directory (default: next to each source)")
	f.StringVar(&convertFlags.onConflict, "on-conflict", "duplicate", "Name collision policy: duplicate, replace or cancel")
	convertCmd.MarkFlagRequired("to")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	format, err := codec.Normalize(convertFlags.to)
	if err != nil {
		return err
	}
	resolver, err := resolverFor(convertFlags.onConflict)
	if err != nil {
		return err
	}

	c := &batch.Coordinator{Resolver: resolver}
	return printReport(cmd, c.Convert(args, convertFlags.outDir, format))
}
