package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bbuhlig/ruffwrap/internal/model"
)

// TestParseInvocation_WrapperOptions verifies recognition of every
// wrapper option under the primary invocation name.
func TestParseInvocation_WrapperOptions(t *testing.T) {
	inv, err := ParseInvocation(
		[]string{"--mode=hook", "--mode-require", "--verbose", "--verbose", "a.py"},
		PrimaryName)

	require.NoError(t, err)
	assert.Equal(t, "hook", inv.Mode)
	assert.True(t, inv.ModeRequire)
	assert.Equal(t, 2, inv.Verbosity, "--verbose is a repeatable counter")
	assert.Equal(t, []string{"a.py"}, inv.Remainder)
}

// TestParseInvocation_ModeValueForms verifies both --mode=x and
// --mode x spellings, and the usage errors for a missing value.
func TestParseInvocation_ModeValueForms(t *testing.T) {
	inv, err := ParseInvocation([]string{"--mode", "verify", "src/"}, PrimaryName)
	require.NoError(t, err)
	assert.Equal(t, "verify", inv.Mode)
	assert.Equal(t, []string{"src/"}, inv.Remainder)

	_, err = ParseInvocation([]string{"--mode"}, PrimaryName)
	var cliErr *model.CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, model.ExitUsageError, cliErr.Code)

	_, err = ParseInvocation([]string{"--mode="}, PrimaryName)
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, model.ExitUsageError, cliErr.Code)
}

// TestParseInvocation_UnknownOptionsPassThrough verifies that tokens the
// wrapper does not recognize are forwarded, not rejected: they may be
// options of the wrapped tool.
func TestParseInvocation_UnknownOptionsPassThrough(t *testing.T) {
	inv, err := ParseInvocation(
		[]string{"check", "--statistics", "--exit-zero", "src/"}, PrimaryName)

	require.NoError(t, err)
	assert.Empty(t, inv.Mode)
	assert.Equal(t, []string{"check", "--statistics", "--exit-zero", "src/"}, inv.Remainder)
}

// TestParseInvocation_AliasPrefix verifies the alternate entry form:
// invoked under another name, only ruffwrap-prefixed options are wrapper
// options and the unprefixed spellings pass through to the tool.
func TestParseInvocation_AliasPrefix(t *testing.T) {
	inv, err := ParseInvocation(
		[]string{"--ruffwrap-mode=enroll", "--ruffwrap-verbose", "--verbose", "a.py"},
		"ruff")

	require.NoError(t, err)
	assert.Equal(t, "enroll", inv.Mode)
	assert.Equal(t, 1, inv.Verbosity)
	assert.Equal(t, []string{"--verbose", "a.py"}, inv.Remainder,
		"unprefixed options belong to the wrapped tool")
}

// TestParseInvocation_PrefixedFormNotRecognizedUnderPrimaryName verifies
// that the alias spellings are inert under the primary invocation name.
func TestParseInvocation_PrefixedFormNotRecognizedUnderPrimaryName(t *testing.T) {
	inv, err := ParseInvocation([]string{"--ruffwrap-mode=hook"}, PrimaryName)

	require.NoError(t, err)
	assert.Empty(t, inv.Mode)
	assert.Equal(t, []string{"--ruffwrap-mode=hook"}, inv.Remainder)
}

// TestParseInvocation_SeparatorStopsRouting verifies that nothing after a
// literal "--" is interpreted, even exact wrapper option spellings.
func TestParseInvocation_SeparatorStopsRouting(t *testing.T) {
	inv, err := ParseInvocation(
		[]string{"--mode=hook", "--", "--mode-require", "--verbose"}, PrimaryName)

	require.NoError(t, err)
	assert.Equal(t, "hook", inv.Mode)
	assert.False(t, inv.ModeRequire)
	assert.Zero(t, inv.Verbosity)
	assert.Equal(t, []string{"--", "--mode-require", "--verbose"}, inv.Remainder)
}

// TestParseInvocation_VersionAndHelp verifies the two informational
// flags.
func TestParseInvocation_VersionAndHelp(t *testing.T) {
	inv, err := ParseInvocation([]string{"--version"}, PrimaryName)
	require.NoError(t, err)
	assert.True(t, inv.ShowVersion)

	inv, err = ParseInvocation([]string{"--help"}, PrimaryName)
	require.NoError(t, err)
	assert.True(t, inv.ShowHelp)
}

// TestBatchPaths_SeparatorRule verifies the separator semantics: tokens
// before "--" error, tokens after it are paths unconditionally, and
// without a "--" everything is a path.
func TestBatchPaths_SeparatorRule(t *testing.T) {
	// [A, B, --, C, D] where A and B are not wrapper options: error
	// before anything executes.
	_, err := BatchPaths("hook", []string{"--fix", "--quiet", "--", "c.py", "d.py"})
	var cliErr *model.CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, model.ExitBatchArgs, cliErr.Code)
	assert.Contains(t, cliErr.Message, "--fix --quiet")

	// [--, C, D]: C and D are paths.
	paths, err := BatchPaths("hook", []string{"--", "c.py", "d.py"})
	require.NoError(t, err)
	assert.Equal(t, []string{"c.py", "d.py"}, paths)

	// No separator: everything is a path.
	paths, err = BatchPaths("hook", []string{"c.py", "d.py"})
	require.NoError(t, err)
	assert.Equal(t, []string{"c.py", "d.py"}, paths)
}

// TestBatchPaths_FlagLikeTokensAfterSeparator verifies that even
// option-looking tokens after "--" are treated as paths.
func TestBatchPaths_FlagLikeTokensAfterSeparator(t *testing.T) {
	paths, err := BatchPaths("hook", []string{"--", "--weird-file-name", "a.py"})

	require.NoError(t, err)
	assert.Equal(t, []string{"--weird-file-name", "a.py"}, paths)
}

// TestBatchPaths_Empty verifies that an empty remainder is an empty path
// list, with or without the separator.
func TestBatchPaths_Empty(t *testing.T) {
	paths, err := BatchPaths("hook", nil)
	require.NoError(t, err)
	assert.Empty(t, paths)

	paths, err = BatchPaths("hook", []string{"--"})
	require.NoError(t, err)
	assert.Empty(t, paths)
}
