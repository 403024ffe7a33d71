// qaconf drives validated, navigable configuration sessions for the QA
// packaging workflow: declare the session in YAML/JSON/HCL, walk it in a
// terminal renderer, and gate package creation/comparison on completeness.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:           "qaconf",
	Short:         "Settings-workflow engine for QA package configuration",
	SilenceUsage:  true,
	SilenceErrors: false,
	Long: `qaconf models a QA package configuration session: a declarative schema
document becomes a live session of sections and validated fields, navigated
through a wizard, accordion, sidebar or dashboard renderer. Creating and
comparing packages stays locked until the required sections are complete.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("config", "", "Config file (default ./qaconf.yaml)")
}

// initConfig wires viper: explicit --config file, otherwise an optional
// qaconf.yaml in the working directory, with QACONF_* env overrides.
func initConfig(cmd *cobra.Command) error {
	viper.SetDefault("renderer", "wizard")
	viper.SetDefault("output_dir", "qa-packages")
	viper.SetDefault("history", "qaconf.db")

	if cfgFile, _ := cmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	} else {
		viper.SetConfigName("qaconf")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if err := viper.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return fmt.Errorf("read config: %w", err)
			}
		}
	}

	viper.SetEnvPrefix("QACONF")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	return nil
}

// newLogger builds the process logger; --verbose switches to debug level.
func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelInfo
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
