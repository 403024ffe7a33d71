package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/VoBaNguyen/qaconf/pkg/orchestrator"
	"github.com/VoBaNguyen/qaconf/pkg/render"
	"github.com/VoBaNguyen/qaconf/pkg/schema"
)

var (
	renderRenderer string
	renderOut      string
	renderWidth    int
)

var renderCmd = &cobra.Command{
	Use:   "render [document]",
	Short: "Render a static snapshot of a session",
	Long: `Render loads the schema document, opens a session in its initial state and
writes a one-shot snapshot of it. Interactive renderers cannot be used here;
the default is the plain text renderer.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderRenderer, "renderer", "r", "text", "Snapshot renderer name")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "Write output to file instead of stdout")
	renderCmd.Flags().IntVarP(&renderWidth, "width", "w", 0, "Target output width in columns")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	o := orchestrator.New(orchestrator.WithLogger(newLogger(cmd)))

	out, err := o.RenderSnapshot(cmd.Context(), orchestrator.Request{
		Source:   schema.SourceFromFile(args[0]),
		Renderer: renderRenderer,
		Options:  render.Options{Width: renderWidth},
	})
	if err != nil {
		return err
	}

	if renderOut == "" {
		_, err = cmd.OutOrStdout().Write(out)
		return err
	}
	if err := os.WriteFile(renderOut, out, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", renderOut, err)
	}
	return nil
}
