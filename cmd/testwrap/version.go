package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/testwrap"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of testwrap",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "testwrap version %s\n", strings.TrimSpace(testwrap.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
