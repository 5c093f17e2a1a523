package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bbuhlig/ruffwrap/internal/model"
)

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// NewRootCommand creates and configures the root cobra command.
// This is the entry point for the entire CLI application.
//
// Flag parsing is disabled: the wrapped tool's own options must flow
// through untouched, so the argument router partitions argv itself
// inside runWrap. Cobra contributes the help text and the execution
// shell.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ruffwrap [--mode=<mode>] [--mode-require] [--verbose] [--version] [--help] [passthrough_args]",
		Short: "Ruff wrapper for version pinning and batch processing",
		Long: `ruffwrap wraps the Ruff tool so that Ruff configuration can pin the
Ruff version to run and define batch modes bundling multiple Ruff
commands. Sentinel tokens planted in Ruff configuration drive both.

Without --mode (Single mode), the __RUFFWRAP_EXEC__ sentinel selects the
Ruff executable, which then runs once with all passthrough arguments.

With --mode=MODENAME (Batch mode), the mode's command sequence runs
against the file paths passed on the command line, stopping at the first
failing command. A mode is defined either by activating a built-in
definition via __RUFFWRAP_MODE_<modename>_STANDARD_DEFINITION__ (for
hook, hook-fix, verify, enroll) or by __RUFFWRAP_MODE_<modename>_CMD_<n>__
sentinels listing arbitrary Ruff commands in order. An undefined mode is
a silent no-op unless --mode-require is set.

In Batch mode the path list may start with a literal "--" to guard
against misspelled options being treated as paths; any argument before
the "--" is an error. When invoked under a name other than ruffwrap,
prefix each option word with "ruffwrap-" (e.g. --ruffwrap-mode=hook).

Environment:
  RUFFWRAP_EXEC  default Ruff executable (default /usr/bin/ruff)
  RUFFWRAP_SKIP  if set, skip sentinel processing and force Single mode`,

		// SilenceUsage prevents cobra from printing usage on every error.
		// We handle error output ourselves for cleaner UX.
		SilenceUsage: true,

		// SilenceErrors prevents cobra from printing errors automatically.
		// Execute formats them with printError.
		SilenceErrors: true,

		// The router recognizes --version itself, printing the bare
		// version string the way the wrapped tool's callers expect.
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		DisableFlagParsing: true,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runWrap(cmd, args)
		},
	}

	return rootCmd
}

// Execute runs the root command and handles exit codes.
// This is the main entry point called from main.go.
//
// It inspects errors returned by the command and translates them into OS
// exit codes. CLIError types carry their own exit codes; other errors
// default to exit code 1.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		if cliErr, ok := err.(*model.CLIError); ok {
			printError(cliErr.Message, cliErr.Err)
			os.Exit(int(cliErr.Code))
		}

		printError(err.Error(), nil)
		os.Exit(int(model.ExitGeneralError))
	}
}

// printError outputs an error message to stderr. Stdout stays reserved
// for the wrapped tool's output.
func printError(message string, underlying error) {
	if underlying != nil {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", message, underlying)
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", message)
	}
}
