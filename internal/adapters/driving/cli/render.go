package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	sdfxgeom "github.com/bauwerk-labs/talk2bim/internal/adapters/driven/geometry/sdfx"
	"github.com/bauwerk-labs/talk2bim/internal/core/ports/driving"
	"github.com/bauwerk-labs/talk2bim/internal/core/services"
)

var (
	renderModel   string
	renderOut     string
	renderTypes   []string
	renderTotal   int
	renderPerType int
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Produce a bounded 3D preview of the loaded model",
	Long: `Deterministically samples geometry-bearing elements under the render
caps, extracts proxy meshes and frames a camera box. With --out the
scene is written as JSON for the browser viewer; without it only the
sampling stats are printed.`,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderModel, "model", "m", "", "model file (defaults to the last loaded model)")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "write the scene as JSON to this file")
	renderCmd.Flags().StringSliceVar(&renderTypes, "types", nil, "restrict sampling to these IFC types")
	renderCmd.Flags().IntVar(&renderTotal, "total", 0, "total render cap (0 = configured default)")
	renderCmd.Flags().IntVar(&renderPerType, "per-type", 0, "per-type render cap (0 = configured default)")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	if _, err := ensureSession(cmd, renderModel); err != nil {
		return err
	}
	src, ok := sessionService.Source()
	if !ok {
		return errors.New("no model source available")
	}

	// Proxy geometry needs the source's placement chain.
	placements, ok := src.(sdfxgeom.PlacementResolver)
	if !ok {
		return errors.New("model source does not expose placements")
	}

	renderer := services.NewRenderer(sdfxgeom.New(placements), cfgStore)
	result, err := renderer.Render(src, driving.RenderOptions{
		Types:      renderTypes,
		TotalCap:   renderTotal,
		PerTypeCap: renderPerType,
	})
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	cmd.Printf("Candidates: %d, attempted: %d, rendered: %d\n",
		result.Stats.Candidates, result.Stats.Attempted, result.Stats.Rendered)
	if result.Camera != nil {
		cmd.Printf("Camera box: min %v, max %v\n", result.Camera.Min, result.Camera.Max)
	}

	if renderOut == "" {
		return nil
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding scene: %w", err)
	}
	if err := os.WriteFile(renderOut, data, 0644); err != nil {
		return fmt.Errorf("writing scene: %w", err)
	}
	cmd.Printf("Scene written to %s (%d meshes)\n", renderOut, len(result.Meshes))
	return nil
}
