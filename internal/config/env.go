// Package config captures the process environment into an explicit
// snapshot struct.
//
// Mode resolution is a pure function of (CLI args, environment snapshot,
// sentinel table); nothing downstream of Snapshot reads the environment
// ad hoc. The snapshot is assembled with koanf: a confmap provider for
// defaults layered under an env provider for RUFFWRAP_-prefixed
// variables.
package config

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/shlex"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"

	"github.com/bbuhlig/ruffwrap/internal/model"
)

// DefaultExecPath is the executable used when RUFFWRAP_EXEC is unset and
// nothing better is found on PATH.
const DefaultExecPath = "/usr/bin/ruff"

// envPrefix selects which environment variables feed the snapshot.
const envPrefix = "RUFFWRAP_"

// Env is an immutable snapshot of the environment state the wrapper
// consumes, taken once per invocation.
type Env struct {
	// Exec is the default executable invocation: a path, or a multi-word
	// command like "uvx ruff". An EXEC sentinel overrides it unless Skip
	// is set.
	Exec string `koanf:"exec"`

	// Skip holds the raw RUFFWRAP_SKIP value. A non-empty value bypasses
	// sentinel processing entirely and forces Single mode.
	Skip string `koanf:"skip"`

	// InvokedAs is the name the wrapper was invoked under. When it is not
	// "ruffwrap", wrapper options are only recognized with the ruffwrap-
	// prefix (the alternate entry form used when shadowing the real tool).
	InvokedAs string `koanf:"invoked_as"`
}

// SkipSet reports whether sentinel processing is bypassed. An empty
// RUFFWRAP_SKIP value counts as unset.
func (e Env) SkipSet() bool {
	return e.Skip != ""
}

// ExecArgv splits the default executable invocation into argv elements.
// A value that fails shell-word splitting is used whole rather than
// dropped, so the spawn failure surfaces with the real path in the error.
func (e Env) ExecArgv() []string {
	args, err := shlex.Split(e.Exec)
	if err != nil || len(args) == 0 {
		return []string{e.Exec}
	}
	return args
}

// Snapshot reads the environment once and returns the resulting Env.
// argv0 supplies the invocation name when RUFFWRAP_INVOKED_AS is unset.
//
// Layering order: defaults, then RUFFWRAP_-prefixed environment
// variables. When no RUFFWRAP_EXEC override exists and the default path
// is absent, the executable is discovered on PATH instead.
func Snapshot(argv0 string) (Env, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"exec":       DefaultExecPath,
		"skip":       "",
		"invoked_as": "",
	}, "."), nil); err != nil {
		return Env{}, model.WrapCLIError(model.ExitGeneralError, "failed to load defaults", err)
	}

	// RUFFWRAP_EXEC -> exec, RUFFWRAP_INVOKED_AS -> invoked_as, etc.
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return Env{}, model.WrapCLIError(model.ExitGeneralError, "failed to load environment", err)
	}

	var e Env
	if err := k.Unmarshal("", &e); err != nil {
		return Env{}, model.WrapCLIError(model.ExitGeneralError, "unable to decode environment", err)
	}

	if e.InvokedAs == "" {
		e.InvokedAs = filepath.Base(argv0)
	}

	// Still on the default (no env override): fall back to PATH discovery
	// when the default executable does not exist on this machine.
	if e.Exec == DefaultExecPath {
		if _, err := os.Stat(DefaultExecPath); err != nil {
			e.Exec = discoverExec(exec.LookPath)
		}
	}

	return e, nil
}

// discoverExec finds a usable tool invocation on PATH: the tool itself,
// or the uvx launcher run against it. Falls back to the default path when
// neither is found so the eventual spawn error names a concrete file.
func discoverExec(lookPath func(string) (string, error)) string {
	if p, err := lookPath("ruff"); err == nil {
		return p
	}
	if p, err := lookPath("uvx"); err == nil {
		return p + " ruff"
	}
	return DefaultExecPath
}
