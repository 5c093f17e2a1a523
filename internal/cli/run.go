package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/bbuhlig/ruffwrap/internal/config"
	"github.com/bbuhlig/ruffwrap/internal/executor"
	"github.com/bbuhlig/ruffwrap/internal/mode"
	"github.com/bbuhlig/ruffwrap/internal/model"
	"github.com/bbuhlig/ruffwrap/internal/sentinel"
)

// runWrap is the orchestration for a wrapper invocation:
// snapshot the environment, route the arguments, mine sentinels from the
// tool's configuration, resolve the plan, execute it.
func runWrap(cmd *cobra.Command, argv []string) error {
	env, err := config.Snapshot(os.Args[0])
	if err != nil {
		return err
	}

	inv, err := ParseInvocation(argv, env.InvokedAs)
	if err != nil {
		return err
	}

	if inv.ShowHelp {
		return cmd.Help()
	}
	if inv.ShowVersion {
		fmt.Fprintln(cmd.OutOrStdout(), Version)
		return nil
	}

	logger := newLogger(inv.Verbosity)

	// Skip forces Single mode; otherwise the absence of a mode name does.
	single := env.SkipSet() || inv.Mode == ""

	// Batch argument errors are detected before anything runs, including
	// the configuration probe.
	var paths []string
	if !single {
		paths, err = BatchPaths(inv.Mode, inv.Remainder)
		if err != nil {
			return err
		}
	}

	var table []model.Sentinel
	if env.SkipSet() {
		logger.Debug("skip flag set, bypassing sentinel processing")
	} else {
		table, err = sentinel.NewLoader(logger).Load(cmd.Context(), env.ExecArgv())
		if err != nil {
			return err
		}
	}

	plan, err := mode.NewResolver().Resolve(mode.Request{
		Mode:        inv.Mode,
		ModeRequire: inv.ModeRequire,
		Env:         env,
	}, table)
	if err != nil {
		return err
	}
	// Skip ignores the requested mode entirely; downstream of resolution
	// only the plan's own mode matters.
	if plan.Single() {
		single = true
	}

	exe := executor.New(logger, nil)
	if single {
		return exe.RunSingle(cmd.Context(), plan.Exec, inv.Remainder)
	}

	if !plan.Defined {
		logger.Info("mode not defined, nothing to do", "mode", inv.Mode)
		return nil
	}
	return exe.RunPlan(cmd.Context(), plan, paths)
}

// newLogger builds the stderr logger for this invocation. Verbosity is a
// counter: at one --verbose each spawned command is echoed, at two the
// sentinel loading internals are too.
func newLogger(verbosity int) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case verbosity >= 2:
		level = slog.LevelDebug
	case verbosity == 1:
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
