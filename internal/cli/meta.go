package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/photolab-studio/photolab/internal/codec"
	"github.com/photolab-studio/photolab/internal/compositor"
	"github.com/photolab-studio/photolab/internal/exiftool"
	"github.com/photolab-studio/photolab/internal/metadata"
)

var metaCmd = &cobra.Command{
	Use:   "meta",
	Short: "Inspect and edit image metadata",
}

var metaShowCmd = &cobra.Command{
	Use:   "show [file]",
	Short: "List metadata entries",
	Args:  cobra.ExactArgs(1),
	RunE:  runMetaShow,
}

var metaSetCmd = &cobra.Command{
	Use:   "set [file] [key=value...]",
	Short: "Edit metadata fields and save the file in place",
	Long: `Set fields by key. Values are parsed against the field's existing
shape (numbers, rationals, sequences); an empty value clears the field.
Prefix a key with "info:" to address a container text field instead of
an image tag.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runMetaSet,
}

var metaCopyCmd = &cobra.Command{
	Use:   "copy [source] [targets...]",
	Short: "Copy metadata from one image onto others",
	Long: `Snapshot the source's metadata and merge it onto each target: matching
fields are overwritten, target-only fields are cleared, source-only
fields are added. Fields that cannot be duplicated are skipped.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runMetaCopy,
}

var metaDateCmd = &cobra.Command{
	Use:   "date [file] [timestamp]",
	Short: "Rewrite the capture date, keeping each field's time of day",
	Long: `Set the date part of DateTime, DateTimeOriginal and DateTimeDigitized
to the date of the given "YYYY:MM:DD HH:MM:SS" timestamp. Fields that
already have a value keep their time of day; missing fields are added
with the full timestamp.`,
	Args: cobra.ExactArgs(2),
	RunE: runMetaDate,
}

var metaNoTool bool

func init() {
	for _, c := range []*cobra.Command{metaSetCmd, metaCopyCmd, metaDateCmd} {
		c.Flags().BoolVar(&metaNoTool, "no-exiftool", false, "Skip the exiftool timestamp pass after saving")
	}
	metaCmd.AddCommand(metaShowCmd)
	metaCmd.AddCommand(metaSetCmd)
	metaCmd.AddCommand(metaCopyCmd)
	metaCmd.AddCommand(metaDateCmd)
	rootCmd.AddCommand(metaCmd)
}

func timestampTool() exiftool.Runner {
	if metaNoTool {
		return nil
	}
	return exiftool.NewCommandRunner()
}

func runMetaShow(cmd *cobra.Command, args []string) error {
	file, err := codec.Open(args[0])
	if err != nil {
		return err
	}
	for i := range file.Entries {
		entry := &file.Entries[i]
		cmd.Printf("%-4s %-28s %s\n", entry.Source, entry.Key, entry.DisplayValue())
	}
	return nil
}

func runMetaSet(cmd *cobra.Command, args []string) error {
	path := args[0]
	file, err := codec.Open(path)
	if err != nil {
		return err
	}

	for _, assignment := range args[1:] {
		key, value, ok := strings.Cut(assignment, "=")
		if !ok {
			return fmt.Errorf("expected key=value, got %q", assignment)
		}
		source := metadata.SourceExif
		if rest, found := strings.CutPrefix(key, "info:"); found {
			source, key = metadata.SourceInfo, rest
		}

		entry := findEntry(file.Entries, source, key)
		if entry == nil {
			return fmt.Errorf("%s has no %s field %q", path, source, key)
		}
		if err := entry.UpdateFromString(value); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}

	return compositor.SaveMetadata(path, file.Entries, timestampTool())
}

func runMetaCopy(cmd *cobra.Command, args []string) error {
	source, err := codec.Open(args[0])
	if err != nil {
		return err
	}
	snapshot, dropped, err := metadata.Snapshot(source.Entries)
	if err != nil {
		return err
	}
	if dropped {
		cmd.PrintErrln("some fields could not be copied and were skipped")
	}

	for _, target := range args[1:] {
		file, err := codec.Open(target)
		if err != nil {
			return err
		}
		merged := metadata.Merge(file.Entries, snapshot)
		if err := compositor.SaveMetadata(target, merged, timestampTool()); err != nil {
			return err
		}
		cmd.Printf("wrote %s\n", target)
	}
	return nil
}

func runMetaDate(cmd *cobra.Command, args []string) error {
	path := args[0]
	file, err := codec.Open(path)
	if err != nil {
		return err
	}
	entries, err := metadata.SetDatetimeEntries(file.Entries, args[1])
	if err != nil {
		return err
	}
	return compositor.SaveMetadata(path, entries, timestampTool())
}

func findEntry(entries []metadata.Entry, source metadata.Source, key string) *metadata.Entry {
	for i := range entries {
		if entries[i].Source == source && strings.EqualFold(entries[i].Key, key) {
			return &entries[i]
		}
	}
	return nil
}
