package main

import (
	"github.com/spf13/cobra"

	"github.com/VoBaNguyen/qaconf/pkg/orchestrator"
	"github.com/VoBaNguyen/qaconf/pkg/schema"
)

var validateCmd = &cobra.Command{
	Use:   "validate [document]",
	Short: "Check a schema document without opening a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		o := orchestrator.New(orchestrator.WithLogger(newLogger(cmd)))
		if err := o.Validate(cmd.Context(), schema.SourceFromFile(args[0])); err != nil {
			return err
		}
		cmd.Printf("%s: ok\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
