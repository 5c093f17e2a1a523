// Package sentinel extracts ruffwrap marker tokens from Ruff configuration.
//
// Sentinels are specially formatted entries planted in Ruff configuration
// (typically in the linter builtins list) that ruffwrap mines to decide
// which Ruff executable to run and which command sequences make up a named
// batch mode:
//
//	__RUFFWRAP_EXEC__<path>
//	__RUFFWRAP_MODE_<modename>_STANDARD_DEFINITION__
//	__RUFFWRAP_MODE_<modename>_CMD_<n>__<command>
//
// The Scanner is a pure function over configuration text. The Loader
// obtains that text by asking the Ruff executable itself to dump its
// effective settings, so configuration discovery (pyproject.toml vs
// ruff.toml, directory hierarchy, extends chains) stays Ruff's problem.
package sentinel
