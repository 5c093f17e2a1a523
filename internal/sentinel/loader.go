package sentinel

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/bbuhlig/ruffwrap/internal/model"
)

// noFilesMarker appears on Ruff's stderr when it was pointed at a location
// with nothing to lint. In that case there is no configuration to mine and
// the invocation degrades to defaults instead of failing.
const noFilesMarker = "No files found under the given path"

// builtinsHeader opens the settings section that carries the planted
// sentinel tokens.
const builtinsHeader = "linter.builtins = ["

// settingsArgs are appended to the executable argv to dump effective
// settings. The include/exclude overrides confine the dump to the current
// directory and the cache settings keep the probe from touching or
// creating a Ruff cache.
var settingsArgs = []string{
	"check",
	"--show-settings",
	"--config", "include = [ '*', '.*' ]",
	"--config", "exclude = [ '*/*' ]",
	"--config", "cache-dir = '/dev/null'",
	"--no-cache",
}

// captureFunc runs an argv and returns its stdout and stderr. It is a
// function field on Loader so tests can substitute a fake without
// spawning processes.
type captureFunc func(ctx context.Context, argv []string) (stdout, stderr string, err error)

// Loader obtains configuration text from the Ruff executable and scans it
// for sentinels.
type Loader struct {
	logger  *slog.Logger
	scanner *Scanner
	capture captureFunc
}

// NewLoader creates a Loader that spawns the real executable.
func NewLoader(logger *slog.Logger) *Loader {
	return &Loader{
		logger:  logger,
		scanner: NewScanner(),
		capture: captureOutput,
	}
}

// Load runs the given executable argv with the settings-dump arguments,
// extracts the builtins block from its output, and returns the sentinels
// found there.
//
// A Ruff failure caused by having no files to inspect yields an empty
// table and no error. Any other failure is fatal: without the settings
// dump there is no way to honor planted sentinels, and silently ignoring
// a broken configuration would run the wrong executable.
func (l *Loader) Load(ctx context.Context, execArgv []string) ([]model.Sentinel, error) {
	argv := make([]string, 0, len(execArgv)+len(settingsArgs))
	argv = append(argv, execArgv...)
	argv = append(argv, settingsArgs...)

	l.logger.Debug("loading sentinels", "cmd", model.FormatArgv(argv))

	stdout, stderr, err := l.capture(ctx, argv)
	if err != nil {
		if strings.Contains(stderr, noFilesMarker) {
			l.logger.Debug("no files to inspect, skipping sentinel processing")
			return nil, nil
		}
		msg := fmt.Sprintf("%s %s failed", execArgv[0], "check --show-settings")
		if s := strings.TrimSpace(stderr); s != "" {
			msg = fmt.Sprintf("%s: %s", msg, s)
		}
		return nil, model.WrapCLIError(model.ExitGeneralError, msg, err)
	}

	table := l.scanner.Scan(ExtractBuiltinsBlock(stdout))
	l.logger.Debug("sentinel scan complete", "count", len(table))
	return table, nil
}

// ExtractBuiltinsBlock returns the lines of the settings dump between the
// "linter.builtins = [" header and the closing bracket. Sentinels are only
// honored inside this block; tokens elsewhere in the dump (or in the
// absence of the header) are ignored.
func ExtractBuiltinsBlock(output string) string {
	var block []string
	inBlock := false

	for _, line := range strings.Split(output, "\n") {
		if !inBlock {
			if strings.HasPrefix(line, builtinsHeader) {
				inBlock = true
				// An empty list renders on one line: "linter.builtins = []".
				if strings.HasSuffix(strings.TrimRight(line, " \t"), "]") {
					break
				}
			}
			continue
		}
		if strings.HasSuffix(strings.TrimRight(line, " \t"), "]") {
			break
		}
		block = append(block, line)
	}

	return strings.Join(block, "\n")
}

// captureOutput executes an argv and collects stdout and stderr
// separately, so stderr can be inspected for the no-files marker and
// included in error messages.
func captureOutput(ctx context.Context, argv []string) (string, string, error) {
	// #nosec G204 -- argv is assembled from configuration and internal
	// constants, not raw user input.
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}
