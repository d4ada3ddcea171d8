package main

import (
	"github.com/aretw0/testwrap/internal/cli"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the runs recorded with --record",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _ := cmd.Flags().GetString("store")
		return cli.ShowHistory(cmd.Context(), cmd.OutOrStdout(), store)
	},
}

func init() {
	historyCmd.Flags().String("store", "", "History location (path or redis:// URL)")
	_ = historyCmd.MarkFlagRequired("store")
	rootCmd.AddCommand(historyCmd)
}
