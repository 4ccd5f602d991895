package cli

import (
	"github.com/spf13/cobra"

	"github.com/photolab-studio/photolab/internal/fileinfo"
)

var infoCmd = &cobra.Command{
	Use:   "info [files...]",
	Short: "Show dimensions, size and capture time",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	var firstErr error
	for _, path := range args {
		info, err := fileinfo.Probe(path)
		if err != nil {
			cmd.PrintErrf("%s: %v\n", path, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		cmd.Printf("%-30s %5dx%-5d %8d bytes  %s\n",
			info.Name, info.Width, info.Height, info.Size,
			info.Taken.Format("2006-01-02 15:04:05"))
	}
	return firstErr
}
