// Package model defines the domain types for the ruffwrap CLI.
//
// All entities here are value-like and owned by a single invocation's
// control flow: a Sentinel table extracted from configuration text, the
// ModePlan resolved from it, and the InvocationArgs parsed from argv.
// Nothing is shared between invocations and nothing is persisted.
package model

import (
	"fmt"
	"strings"
)

// SentinelKind identifies which family of marker token a Sentinel was
// extracted from.
type SentinelKind string

const (
	// SentinelExec is the global executable override token
	// (__RUFFWRAP_EXEC__<path>).
	SentinelExec SentinelKind = "exec"

	// SentinelStandard activates a built-in batch mode definition
	// (__RUFFWRAP_MODE_<modename>_STANDARD_DEFINITION__).
	SentinelStandard SentinelKind = "mode-standard"

	// SentinelCmd contributes one command to a user-defined batch sequence
	// (__RUFFWRAP_MODE_<modename>_CMD_<n>__<command>).
	SentinelCmd SentinelKind = "mode-cmd"
)

// String returns the string representation of SentinelKind.
func (k SentinelKind) String() string {
	return string(k)
}

// Sentinel is a single marker token mined from configuration text.
// The zero Index is meaningful for SentinelCmd (sequence position 0);
// for other kinds Index is unused.
type Sentinel struct {
	// Kind is the token family this sentinel belongs to.
	Kind SentinelKind

	// Mode is the batch mode name the sentinel applies to.
	// Empty for SentinelExec.
	Mode string

	// Index is the ordering key of a SentinelCmd entry. Indices are sort
	// keys only; they need not be contiguous.
	Index int

	// Args is the shell-word-split value attached to the token: the
	// executable argv for SentinelExec, or the command arguments for
	// SentinelCmd. Empty for SentinelStandard.
	Args []string
}

// StandardMode enumerates the batch mode names with built-in command
// sequences. Any other mode name can only be defined through CMD sentinels.
type StandardMode string

const (
	// StandardHook runs the formatter then a no-fix lint check. Intended
	// for git pre-commit hooks and run-on-save actions.
	StandardHook StandardMode = "hook"

	// StandardHookFix runs the formatter then an auto-fixing lint check.
	StandardHookFix StandardMode = "hook-fix"

	// StandardVerify confirms the formatter would change nothing and the
	// linter reports no violations. Intended for CI.
	StandardVerify StandardMode = "verify"

	// StandardEnroll applies formatting and auto-fixes broadly to bring a
	// codebase into compliance.
	StandardEnroll StandardMode = "enroll"
)

// String returns the string representation of StandardMode.
func (m StandardMode) String() string {
	return string(m)
}

// IsValid checks whether the StandardMode value names one of the built-in
// definitions.
func (m StandardMode) IsValid() bool {
	switch m {
	case StandardHook, StandardHookFix, StandardVerify, StandardEnroll:
		return true
	default:
		return false
	}
}

// CommandSource records where a plan command came from: the built-in
// standard table or a user-defined CMD sentinel sequence.
type CommandSource string

const (
	// SourceStandard marks commands expanded from a built-in definition.
	SourceStandard CommandSource = "standard"

	// SourceUserDefined marks commands assembled from CMD sentinels.
	SourceUserDefined CommandSource = "user-defined"
)

// Command is one step of a resolved batch plan: a fixed argument list for
// the wrapped executable, to which the executor appends the path list.
type Command struct {
	// Args are the wrapped-tool arguments, e.g. ["check", "--no-fix"].
	Args []string

	// Source tags whether the command came from a standard definition or
	// a user-defined sequence.
	Source CommandSource
}

// ModePlan is the resolved execution plan for one invocation. It is
// constructed once by the resolver and not mutated afterwards.
type ModePlan struct {
	// Mode is the requested batch mode name. Empty for Single mode.
	Mode string

	// Exec is the resolved executable argv prefix. Usually a single
	// element, but an override like "uvx ruff" resolves to two.
	Exec []string

	// Defined reports whether the requested mode had any definition.
	// A defined mode may still have zero commands.
	Defined bool

	// Commands is the ordered batch command sequence. Nil in Single mode
	// and for undefined modes.
	Commands []Command
}

// Single reports whether the plan represents Single mode: run the
// executable exactly once with the raw passthrough arguments.
func (p *ModePlan) Single() bool {
	return p.Mode == ""
}

// InvocationArgs is the parsed command-line state for one invocation,
// constructed once from raw argv by the argument router.
type InvocationArgs struct {
	// Mode is the requested batch mode name, empty when no --mode was given.
	Mode string

	// ModeRequire makes an undefined mode a failure instead of a no-op.
	ModeRequire bool

	// Verbosity counts repeated --verbose occurrences.
	Verbosity int

	// ShowVersion is set by --version.
	ShowVersion bool

	// ShowHelp is set by --help.
	ShowHelp bool

	// Remainder holds every token not consumed as a wrapper option, in
	// original order. A literal "--" and anything after it is preserved
	// verbatim; interpretation depends on the selected mode.
	Remainder []string
}

// ExitCode defines the CLI exit codes. The values for batch argument
// errors and spawn failures are part of the tool's compatibility surface
// and must not change.
type ExitCode int

const (
	// ExitSuccess indicates all commands succeeded, or a zero-command no-op.
	ExitSuccess ExitCode = 0

	// ExitGeneralError covers unspecified failures, including a mode that
	// is required but undefined and sentinel loading failures.
	ExitGeneralError ExitCode = 1

	// ExitUsageError indicates a wrapper argument could not be parsed.
	ExitUsageError ExitCode = 2

	// ExitBatchArgs indicates a batch-mode passthrough token appeared
	// before the "--" path separator.
	ExitBatchArgs ExitCode = 3

	// ExitExecFailure indicates the wrapped executable could not be
	// spawned at all.
	ExitExecFailure ExitCode = 200
)

// CLIError is a custom error type that carries an exit code.
// The cli layer translates it into the process exit status.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}

// FormatArgv renders an argv slice for log output. Arguments containing
// whitespace or quotes are re-quoted so the echoed command can be pasted
// back into a shell.
func FormatArgv(argv []string) string {
	parts := make([]string, len(argv))
	for i, a := range argv {
		if strings.ContainsAny(a, " \t'\"") {
			parts[i] = fmt.Sprintf("%q", a)
		} else {
			parts[i] = a
		}
	}
	return strings.Join(parts, " ")
}
