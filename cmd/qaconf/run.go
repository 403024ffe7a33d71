package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/VoBaNguyen/qaconf/pkg/orchestrator"
	"github.com/VoBaNguyen/qaconf/pkg/packaging"
	"github.com/VoBaNguyen/qaconf/pkg/schema"
)

var runCmd = &cobra.Command{
	Use:   "run [document]",
	Short: "Open a configuration session in an interactive renderer",
	Long: `Run loads the schema document, opens a session and drives the chosen
interactive renderer. Created package manifests land in the output directory
and are recorded in the history database, which also feeds the compare action.`,
	Args: cobra.ExactArgs(1),
	RunE: runSession,
}

func init() {
	runCmd.Flags().StringP("renderer", "r", "", "Renderer name (wizard, accordion, sidebar, dashboard)")
	runCmd.Flags().StringP("output-dir", "o", "", "Directory for created package manifests")
	runCmd.Flags().String("history", "", "Path to the package history database")
	viper.BindPFlag("renderer", runCmd.Flags().Lookup("renderer"))
	viper.BindPFlag("output_dir", runCmd.Flags().Lookup("output-dir"))
	viper.BindPFlag("history", runCmd.Flags().Lookup("history"))
	rootCmd.AddCommand(runCmd)
}

func runSession(cmd *cobra.Command, args []string) error {
	logger := newLogger(cmd)

	history, err := packaging.OpenHistory(viper.GetString("history"))
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer history.Close()

	outDir := viper.GetString("output_dir")
	creator := packaging.NewDirCreator(outDir, packaging.WithHistory(history))
	comparer := packaging.NewManifestComparer(history)

	o := orchestrator.New(
		orchestrator.WithCollaborators(creator, comparer, history),
		orchestrator.WithLogger(logger),
	)

	logger.Debug("starting session", "document", args[0], "renderer", viper.GetString("renderer"), "output_dir", outDir)
	return o.Run(cmd.Context(), orchestrator.Request{
		Source:   schema.SourceFromFile(args[0]),
		Renderer: viper.GetString("renderer"),
	})
}
