// Package executor runs resolved plans against the wrapped executable.
//
// Execution is strictly sequential and fail-fast: commands run one at a
// time, each to completion, and the first non-zero exit status stops the
// sequence and becomes the invocation's exit status. A logical AND of
// command successes, with no retries and no parallelism.
package executor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"

	"github.com/bbuhlig/ruffwrap/internal/model"
)

// Runner spawns one command and blocks until it exits. The returned
// error is nil on exit status zero, a *model.CLIError carrying the exit
// status otherwise.
type Runner interface {
	Run(ctx context.Context, argv []string) error
}

// Executor sequences command execution for a single invocation.
type Executor struct {
	logger *slog.Logger
	runner Runner
}

// New creates an Executor. A nil runner selects the real process
// spawner; tests pass a fake.
func New(logger *slog.Logger, runner Runner) *Executor {
	if runner == nil {
		runner = &execRunner{}
	}
	return &Executor{logger: logger, runner: runner}
}

// RunSingle performs a Single-mode invocation: the resolved executable
// run exactly once with the raw passthrough arguments.
func (e *Executor) RunSingle(ctx context.Context, execArgv, passthrough []string) error {
	argv := join(execArgv, passthrough, nil)
	e.logger.Info("exec", "cmd", model.FormatArgv(argv))
	return e.runner.Run(ctx, argv)
}

// RunPlan executes a batch plan: each command in order, the executable
// followed by the command's fixed arguments and then the path list.
// The first failing command aborts the remainder and its status is
// returned; an empty plan succeeds having run nothing.
func (e *Executor) RunPlan(ctx context.Context, plan model.ModePlan, paths []string) error {
	total := len(plan.Commands)
	for i, cmd := range plan.Commands {
		argv := join(plan.Exec, cmd.Args, paths)
		e.logger.Info("exec", "cmd", model.FormatArgv(argv),
			"mode", plan.Mode, "step", i+1, "total", total)

		if err := e.runner.Run(ctx, argv); err != nil {
			e.logger.Warn("batch stopped",
				"mode", plan.Mode, "step", i+1, "total", total)
			return err
		}
	}
	return nil
}

// join builds a fresh argv from the executable prefix and up to two
// argument groups, avoiding append aliasing against the plan's slices.
func join(execArgv, args, paths []string) []string {
	argv := make([]string, 0, len(execArgv)+len(args)+len(paths))
	argv = append(argv, execArgv...)
	argv = append(argv, args...)
	argv = append(argv, paths...)
	return argv
}

// execRunner is the production Runner: it spawns the process with the
// wrapper's stdio so the wrapped tool's diagnostics reach the user
// directly.
type execRunner struct{}

// Run executes argv and maps the outcome onto CLIErrors: the child's own
// exit status when it ran and failed, ExitExecFailure when it could not
// be spawned at all.
func (r *execRunner) Run(ctx context.Context, argv []string) error {
	// #nosec G204 -- argv comes from mined configuration and routed paths,
	// assembled by the resolver rather than taken verbatim from input.
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		return model.WrapCLIError(model.ExitCode(code),
			fmt.Sprintf("%s exited with status %d", model.FormatArgv(argv), code), err)
	}
	return model.WrapCLIError(model.ExitExecFailure,
		fmt.Sprintf("error executing %s", model.FormatArgv(argv)), err)
}
