package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/VoBaNguyen/qaconf/pkg/packaging"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List previously created packages, newest first",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().String("history", "", "Path to the package history database")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	path := viper.GetString("history")
	if flagPath, _ := cmd.Flags().GetString("history"); flagPath != "" {
		path = flagPath
	}
	history, err := packaging.OpenHistory(path)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer history.Close()

	entries, err := history.List(cmd.Context())
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		cmd.Println("no packages recorded")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSESSION\tTECHLIB\tCREATED\tMANIFEST")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			e.ID, e.SessionID, e.Techlib, e.CreatedAt.Format("2006-01-02 15:04:05"), e.ManifestPath)
	}
	return w.Flush()
}
