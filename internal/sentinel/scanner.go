package sentinel

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/google/shlex"

	"github.com/bbuhlig/ruffwrap/internal/model"
)

// Token patterns, matched one candidate per line. The mode name accepts
// alphanumerics, hyphens and underscores; the CMD index must be a
// non-negative integer. Values run to the end of the (cleaned) line.
var (
	execPattern     = regexp.MustCompile(`__RUFFWRAP_EXEC__(.+)$`)
	standardPattern = regexp.MustCompile(`__RUFFWRAP_MODE_([A-Za-z0-9_-]+)_STANDARD_DEFINITION__`)
	cmdPattern      = regexp.MustCompile(`__RUFFWRAP_MODE_([A-Za-z0-9_-]+)_CMD_([0-9]+)__(.*)$`)
)

// Scanner extracts sentinels from configuration text. It is stateless;
// the struct exists as a receiver to mirror the other component types and
// to leave room for future options (e.g. custom token prefixes).
type Scanner struct{}

// NewScanner creates a new sentinel Scanner.
func NewScanner() *Scanner {
	return &Scanner{}
}

// Scan mines the given configuration text for sentinel tokens and returns
// them in document order. Document order matters to the resolver: when
// several EXEC sentinels are present, the last one wins.
//
// Scan never fails. Sentinel-like tokens that do not parse (empty mode
// name, non-numeric index, unbalanced quoting in the command text) are
// skipped, and text with no tokens at all yields an empty table.
func (s *Scanner) Scan(text string) []model.Sentinel {
	var found []model.Sentinel

	for _, line := range strings.Split(text, "\n") {
		if sent, ok := scanLine(line); ok {
			found = append(found, sent)
		}
	}
	return found
}

// scanLine tries each token pattern against a single cleaned line, first
// match wins. At most one sentinel is extracted per line, which matches
// how the tokens appear in Ruff's settings output (one builtins entry per
// line).
func scanLine(raw string) (model.Sentinel, bool) {
	line := cleanEntry(raw)

	if m := execPattern.FindStringSubmatch(line); m != nil {
		args, ok := splitWords(m[1])
		if !ok || len(args) == 0 {
			return model.Sentinel{}, false
		}
		return model.Sentinel{Kind: model.SentinelExec, Args: args}, true
	}

	if m := standardPattern.FindStringSubmatch(line); m != nil {
		return model.Sentinel{Kind: model.SentinelStandard, Mode: m[1]}, true
	}

	if m := cmdPattern.FindStringSubmatch(line); m != nil {
		// The index pattern only admits digits, but an absurdly long run
		// of them still overflows; treat that as malformed too.
		idx, err := strconv.Atoi(m[2])
		if err != nil {
			return model.Sentinel{}, false
		}
		args, ok := splitWords(m[3])
		if !ok {
			return model.Sentinel{}, false
		}
		return model.Sentinel{Kind: model.SentinelCmd, Mode: m[1], Index: idx, Args: args}, true
	}

	return model.Sentinel{}, false
}

// cleanEntry strips the decoration a configuration list adds around an
// entry: indentation, a trailing comma, and one pair of matching quotes
// enclosing the whole entry. Quotes inside the value are left alone so
// shell-quoted command arguments survive.
func cleanEntry(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimSuffix(s, ",")
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		s = s[1 : len(s)-1]
	}
	return s
}

// splitWords splits sentinel value text into shell words. Returns
// ok=false when the value contains unbalanced quoting.
func splitWords(value string) ([]string, bool) {
	args, err := shlex.Split(strings.TrimSpace(value))
	if err != nil {
		return nil, false
	}
	return args, true
}
