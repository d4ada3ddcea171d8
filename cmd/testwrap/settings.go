package main

import (
	"github.com/aretw0/testwrap/internal/cli"
	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Inspect and edit a settings location",
	Long: `A settings location is a file path, file:// URL or redis://host:port/db?key=name URL
holding one serialized key/value mapping.`,
}

var settingsGetCmd = &cobra.Command{
	Use:   "get KEY",
	Short: "Print one value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.SettingsGet(cmd.Context(), cmd.OutOrStdout(), settingsFile(cmd), args[0])
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set KEY=VALUE...",
	Short: "Set values and save the mapping",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.SettingsSet(cmd.Context(), settingsFile(cmd), args)
	},
}

var settingsUnsetCmd = &cobra.Command{
	Use:   "unset KEY...",
	Short: "Remove keys and save the mapping",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.SettingsUnset(cmd.Context(), settingsFile(cmd), args)
	},
}

var settingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print every entry",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.SettingsList(cmd.Context(), cmd.OutOrStdout(), settingsFile(cmd))
	},
}

func settingsFile(cmd *cobra.Command) string {
	loc, _ := cmd.Flags().GetString("file")
	return loc
}

func init() {
	settingsCmd.PersistentFlags().String("file", "", "Settings location")
	_ = settingsCmd.MarkPersistentFlagRequired("file")

	settingsCmd.AddCommand(settingsGetCmd, settingsSetCmd, settingsUnsetCmd, settingsListCmd)
	rootCmd.AddCommand(settingsCmd)
}
