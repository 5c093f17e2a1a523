package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestStandardMode_IsValid verifies that exactly the four built-in mode
// names validate, and arbitrary names do not.
func TestStandardMode_IsValid(t *testing.T) {
	for _, m := range []StandardMode{StandardHook, StandardHookFix, StandardVerify, StandardEnroll} {
		assert.True(t, m.IsValid(), "built-in mode %q should be valid", m)
	}

	assert.False(t, StandardMode("custom").IsValid())
	assert.False(t, StandardMode("").IsValid())
	assert.False(t, StandardMode("Hook").IsValid(), "mode names are case sensitive")
}

// TestModePlan_Single verifies the Single-mode discriminator: a plan with
// no mode name is Single, a plan with one is Batch.
func TestModePlan_Single(t *testing.T) {
	single := &ModePlan{Exec: []string{"/usr/bin/ruff"}}
	assert.True(t, single.Single())

	batch := &ModePlan{Mode: "hook", Exec: []string{"/usr/bin/ruff"}, Defined: true}
	assert.False(t, batch.Single())
}

// TestCLIError_ErrorAndUnwrap verifies error message formatting and that
// wrapped errors are reachable via errors.Is.
func TestCLIError_ErrorAndUnwrap(t *testing.T) {
	plain := NewCLIError(ExitUsageError, "unrecognized option --frobnicate")
	assert.Equal(t, "unrecognized option --frobnicate", plain.Error())
	assert.Nil(t, plain.Unwrap())

	underlying := errors.New("exec format error")
	wrapped := WrapCLIError(ExitExecFailure, "failed to execute /usr/bin/ruff", underlying)
	assert.Equal(t, "failed to execute /usr/bin/ruff: exec format error", wrapped.Error())
	require.ErrorIs(t, wrapped, underlying)
	assert.Equal(t, ExitExecFailure, wrapped.Code)
}

// TestFormatArgv verifies that plain words join with spaces and that
// arguments with embedded whitespace are quoted.
func TestFormatArgv(t *testing.T) {
	assert.Equal(t, "/usr/bin/ruff check --no-fix a.py",
		FormatArgv([]string{"/usr/bin/ruff", "check", "--no-fix", "a.py"}))

	got := FormatArgv([]string{"ruff", "--config", "cache-dir = '/dev/null'"})
	assert.Equal(t, `ruff --config "cache-dir = '/dev/null'"`, got)
}
