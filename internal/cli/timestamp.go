package cli

import (
	"github.com/spf13/cobra"

	"github.com/photolab-studio/photolab/internal/batch"
	"github.com/photolab-studio/photolab/internal/exiftool"
)

var timestampCmd = &cobra.Command{
	Use:   "timestamp [files...]",
	Short: "Rewrite file timestamps with exiftool",
	Long: `Derive each file's base timestamp from its metadata (file modification
time when no capture date exists), substitute the given components, and
stamp the file with exiftool. Unset components keep their base value; a
substituted day is clamped to the month's length. With --out the files
are copied there first and the copies are stamped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTimestamp,
}

var timestampFlags struct {
	year, month, day     int
	hour, minute, second int
	outDir               string
	onConflict           string
}

func init() {
	f := timestampCmd.Flags()
	f.IntVar(&timestampFlags.year, "year", 0, "Replace the year")
	f.IntVar(&timestampFlags.month, "month", 0, "Replace the month (1-12)")
	f.IntVar(&timestampFlags.day, "day", 0, "Replace the day of month")
	f.IntVar(&timestampFlags.hour, "hour", 0, "Replace the hour (0-23)")
	f.IntVar(&timestampFlags.minute, "minute", 0, "Replace the minute")
	f.IntVar(&timestampFlags.second, "second", 0, "Replace the second")
	f.StringVar(&timestampFlags.outDir, "out", "", "Copy files here and stamp the copies")
	f.StringVar(&timestampFlags.onConflict, "on-conflict", "duplicate", "Name collision policy: duplicate, replace or cancel")
	rootCmd.AddCommand(timestampCmd)
}

func runTimestamp(cmd *cobra.Command, args []string) error {
	resolver, err := resolverFor(timestampFlags.onConflict)
	if err != nil {
		return err
	}

	// Only flags the user actually passed become substitutions.
	var comps batch.TimestampComponents
	if cmd.Flags().Changed("year") {
		comps.Year = &timestampFlags.year
	}
	if cmd.Flags().Changed("month") {
		comps.Month = &timestampFlags.month
	}
	if cmd.Flags().Changed("day") {
		comps.Day = &timestampFlags.day
	}
	if cmd.Flags().Changed("hour") {
		comps.Hour = &timestampFlags.hour
	}
	if cmd.Flags().Changed("minute") {
		comps.Minute = &timestampFlags.minute
	}
	if cmd.Flags().Changed("second") {
		comps.Second = &timestampFlags.second
	}

	c := &batch.Coordinator{Resolver: resolver}
	report := c.ApplyTimestamps(args, timestampFlags.outDir, comps, exiftool.NewCommandRunner())
	return printReport(cmd, report)
}
