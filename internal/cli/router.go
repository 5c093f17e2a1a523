// Package cli implements the ruffwrap command surface.
//
// Unlike a subcommand-style tool, ruffwrap mirrors the CLI shape of the
// tool it wraps: a flat argument list where a handful of wrapper options
// are picked out and everything else is forwarded. Cobra provides the
// command shell (help text, version, error-to-exit-code translation)
// with flag parsing disabled; the router in this file owns argv.
package cli

import (
	"fmt"
	"strings"

	"github.com/bbuhlig/ruffwrap/internal/model"
)

// PrimaryName is the canonical invocation name. Under any other name
// (the alternate entry form, typically a shim named after the wrapped
// tool) wrapper options require the "ruffwrap-" alias prefix so they
// cannot collide with the tool's own options.
const PrimaryName = "ruffwrap"

// aliasPrefix is prepended to each wrapper option word in the alternate
// entry form: --mode becomes --ruffwrap-mode.
const aliasPrefix = "ruffwrap-"

// ParseInvocation partitions raw arguments (without argv[0]) into wrapper
// options and the passthrough remainder.
//
// Wrapper options may appear anywhere before a literal "--"; from the
// first "--" on, every token (including the "--" itself) lands in the
// remainder untouched. Unrecognized option-like tokens are not an error
// here: they belong to the wrapped tool and pass through. Whether the
// remainder is passed through verbatim or interpreted as a batch path
// list is decided later, once the mode is known.
func ParseInvocation(argv []string, invokedAs string) (*model.InvocationArgs, error) {
	prefix := ""
	if invokedAs != PrimaryName {
		prefix = aliasPrefix
	}

	inv := &model.InvocationArgs{}
	routing := true

	for i := 0; i < len(argv); i++ {
		tok := argv[i]

		if routing && tok == "--" {
			routing = false
			inv.Remainder = append(inv.Remainder, tok)
			continue
		}
		if !routing {
			inv.Remainder = append(inv.Remainder, tok)
			continue
		}

		name, value, hasValue := splitOption(tok, prefix)
		switch name {
		case "mode":
			if !hasValue {
				// Separate-token form: --mode hook
				i++
				if i >= len(argv) {
					return nil, model.NewCLIError(model.ExitUsageError,
						fmt.Sprintf("option --%smode requires a value", prefix))
				}
				value = argv[i]
			}
			if value == "" {
				return nil, model.NewCLIError(model.ExitUsageError,
					fmt.Sprintf("option --%smode requires a non-empty value", prefix))
			}
			inv.Mode = value
		case "mode-require":
			inv.ModeRequire = true
		case "verbose":
			inv.Verbosity++
		case "version":
			inv.ShowVersion = true
		case "help":
			inv.ShowHelp = true
		default:
			inv.Remainder = append(inv.Remainder, tok)
		}
	}

	return inv, nil
}

// splitOption extracts the wrapper option name from a token, stripping
// the alias prefix for the alternate entry form. Returns an empty name
// for tokens that are not recognized wrapper options. The "=value" form
// is split off; hasValue distinguishes "--mode=" from a bare "--mode".
func splitOption(tok, prefix string) (name, value string, hasValue bool) {
	body, ok := strings.CutPrefix(tok, "--"+prefix)
	if !ok {
		return "", "", false
	}

	body, value, hasValue = strings.Cut(body, "=")
	switch body {
	case "mode", "mode-require", "verbose", "version", "help":
		// mode-require, verbose, version and help take no value; a token
		// like --verbose=2 is not a wrapper option and passes through.
		if hasValue && body != "mode" {
			return "", "", false
		}
		return body, value, hasValue
	default:
		return "", "", false
	}
}

// BatchPaths interprets the remainder as a batch-mode path list,
// enforcing the separator rule: an optional leading "--" marks the start
// of the paths, any token before it is an error, and every token after
// it is a path unconditionally. With no "--" present all remainder
// tokens are paths.
func BatchPaths(mode string, remainder []string) ([]string, error) {
	for i, tok := range remainder {
		if tok == "--" {
			if i > 0 {
				return nil, model.NewCLIError(model.ExitBatchArgs,
					fmt.Sprintf("bad %s mode args before path separator: %s",
						mode, strings.Join(remainder[:i], " ")))
			}
			return remainder[1:], nil
		}
	}
	return remainder, nil
}
