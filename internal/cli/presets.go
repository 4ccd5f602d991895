package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/photolab-studio/photolab/internal/preset"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "Manage named crop sizes",
}

var presetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored presets",
	Args:  cobra.NoArgs,
	RunE:  runPresetsList,
}

var presetsAddCmd = &cobra.Command{
	Use:   "add [name] [width] [height]",
	Short: "Add a preset",
	Args:  cobra.ExactArgs(3),
	RunE:  runPresetsAdd,
}

var presetsRemoveCmd = &cobra.Command{
	Use:   "remove [name]",
	Short: "Remove a preset",
	Args:  cobra.ExactArgs(1),
	RunE:  runPresetsRemove,
}

func init() {
	presetsCmd.AddCommand(presetsListCmd)
	presetsCmd.AddCommand(presetsAddCmd)
	presetsCmd.AddCommand(presetsRemoveCmd)
	rootCmd.AddCommand(presetsCmd)
}

func presetStore() (*preset.Store, error) {
	path, err := preset.DefaultPath()
	if err != nil {
		return nil, err
	}
	return preset.NewStore(path), nil
}

func runPresetsList(cmd *cobra.Command, args []string) error {
	store, err := presetStore()
	if err != nil {
		return err
	}
	presets, err := store.Load()
	if err != nil {
		return err
	}
	for _, p := range presets {
		cmd.Printf("%-20s %dx%d\n", p.Name, p.Width, p.Height)
	}
	return nil
}

func runPresetsAdd(cmd *cobra.Command, args []string) error {
	name := args[0]
	width, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("width: %w", err)
	}
	height, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("height: %w", err)
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("preset size %dx%d: both dimensions must be positive", width, height)
	}

	store, err := presetStore()
	if err != nil {
		return err
	}
	presets, err := store.Load()
	if err != nil {
		return err
	}
	if _, exists := preset.Find(presets, name); exists {
		return fmt.Errorf("a preset named %q already exists", name)
	}
	presets = append(presets, preset.Preset{Name: name, Width: width, Height: height})
	return store.Save(presets)
}

func runPresetsRemove(cmd *cobra.Command, args []string) error {
	store, err := presetStore()
	if err != nil {
		return err
	}
	presets, err := store.Load()
	if err != nil {
		return err
	}

	kept := presets[:0]
	removed := false
	for _, p := range presets {
		if !removed && strings.EqualFold(p.Name, args[0]) {
			removed = true
			continue
		}
		kept = append(kept, p)
	}
	if !removed {
		return fmt.Errorf("no preset named %q", args[0])
	}
	return store.Save(kept)
}
