package main

import (
	"fmt"
	"os"

	"github.com/aretw0/testwrap/internal/cli"
	"github.com/spf13/cobra"
)

// exitCode is set by the command that ran and used as the process exit status.
var exitCode = cli.ExitPass

var rootCmd = &cobra.Command{
	Use:   "testwrap [flags] CMD [ARGS...]",
	Short: "Run a test command in a scratch directory and check its results",
	Long: `testwrap runs CMD in a fresh temporary working directory seeded from --testenv-dir,
checks its exit code, then validates output files: existence, absence and a diff
against --baseline-dir. Exit status is 0 when every check passed and 1 otherwise.

--diff-compare, --files-exist, --files-dont-exist, --clean-output-paths,
--pre-command and --post-command take every argument up to the next flag;
end them with -- before CMD:

  testwrap --files-exist out.txt log.txt -- ./test.sh`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		opts, err := buildRunOptions(cmd.Flags(), args)
		if err != nil {
			fail(err)
			return
		}

		ctx, stop := cli.SignalContext(cmd.Context())
		defer stop()

		exitCode = cli.Execute(ctx, opts)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	rootCmd.SetArgs(expandMultiValue(rootCmd.Flags(), os.Args[1:]))
	if err := rootCmd.Execute(); err != nil {
		fail(err)
	}
	os.Exit(exitCode)
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	exitCode = cli.ExitFail
}

func init() {
	// Flags stop at the wrapped command so its own flags pass through untouched.
	rootCmd.Flags().SetInterspersed(false)
	addRunFlags(rootCmd.Flags())
}
