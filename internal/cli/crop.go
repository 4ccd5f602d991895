package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/photolab-studio/photolab/internal/batch"
	"github.com/photolab-studio/photolab/internal/compositor"
	"github.com/photolab-studio/photolab/internal/geometry"
	"github.com/photolab-studio/photolab/internal/preset"
)

var cropCmd = &cobra.Command{
	Use:   "crop [files...]",
	Short: "Crop and resize images to a target size",
	Long: `Crop every file to the target size. Cover mode fills the target and
crops the overflow; pad mode letterboxes onto a neutral background.
Without --out files are replaced in place.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCrop,
}

var cropFlags struct {
	width, height    int
	presetName       string
	mode             string
	anchorX, anchorY string
	offsetX, offsetY int
	outDir           string
	onConflict       string
}

func init() {
	f := cropCmd.Flags()
	f.IntVar(&cropFlags.width, "width", 0, "Target width in pixels")
	f.IntVar(&cropFlags.height, "height", 0, "Target height in pixels")
	f.StringVar(&cropFlags.presetName, "preset", "", "Use a named crop preset instead of --width/--height")
	f.StringVar(&cropFlags.mode, "mode", "cover", "Fit mode: cover or pad")
	f.StringVar(&cropFlags.anchorX, "anchor-x", "center", "Horizontal anchor: left, center or right")
	f.StringVar(&cropFlags.anchorY, "anchor-y", "center", "Vertical anchor: top, center or bottom")
	f.IntVar(&cropFlags.offsetX, "offset-x", 0, "Horizontal offset from the anchored position")
	f.IntVar(&cropFlags.offsetY, "offset-y", 0, "Vertical offset from the anchored position")
	f.StringVar(&cropFlags.outDir, "out", "", "Destination directory (default: replace in place)")
	f.StringVar(&cropFlags.onConflict, "on-conflict", "duplicate", "Name collision policy: duplicate, replace or cancel")
	rootCmd.AddCommand(cropCmd)
}

func runCrop(cmd *cobra.Command, args []string) error {
	width, height := cropFlags.width, cropFlags.height
	if cropFlags.presetName != "" {
		path, err := preset.DefaultPath()
		if err != nil {
			return err
		}
		presets, err := preset.NewStore(path).Load()
		if err != nil {
			return err
		}
		p, ok := preset.Find(presets, cropFlags.presetName)
		if !ok {
			return fmt.Errorf("no preset named %q", cropFlags.presetName)
		}
		width, height = p.Width, p.Height
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("target size %dx%d: both dimensions must be positive", width, height)
	}

	mode, err := geometry.ParseFitMode(cropFlags.mode)
	if err != nil {
		return err
	}
	anchorX, err := geometry.ParseAnchor(cropFlags.anchorX)
	if err != nil {
		return err
	}
	anchorY, err := geometry.ParseAnchor(cropFlags.anchorY)
	if err != nil {
		return err
	}
	resolver, err := resolverFor(cropFlags.onConflict)
	if err != nil {
		return err
	}

	c := &batch.Coordinator{Resolver: resolver}
	report := c.Crop(args, cropFlags.outDir, compositor.CropSpec{
		TargetW: width, TargetH: height,
		Mode:    mode,
		AnchorX: anchorX, AnchorY: anchorY,
		OffsetX: cropFlags.offsetX, OffsetY: cropFlags.offsetY,
	})
	return printReport(cmd, report)
}
