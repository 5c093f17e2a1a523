// Package mode resolves a requested mode name and a sentinel table into
// an execution plan.
//
// Resolution is a pure function: the same request and sentinel table
// always produce the same ModePlan. All environment state arrives through
// the config.Env snapshot embedded in the Request.
package mode

import (
	"fmt"
	"sort"

	"github.com/bbuhlig/ruffwrap/internal/config"
	"github.com/bbuhlig/ruffwrap/internal/model"
)

// standardDefinitions holds the built-in command sequences activated by a
// STANDARD_DEFINITION sentinel. The sequences are fixed; sites that want
// different commands define the mode with CMD sentinels instead.
var standardDefinitions = map[model.StandardMode][][]string{
	model.StandardHook:    {{"format"}, {"check", "--no-fix"}},
	model.StandardHookFix: {{"format"}, {"check", "--fix"}},
	model.StandardVerify:  {{"format", "--check"}, {"check", "--no-fix"}},
	model.StandardEnroll:  {{"format"}, {"check", "--fix"}},
}

// Request carries everything resolution depends on besides the sentinel
// table itself.
type Request struct {
	// Mode is the requested batch mode name; empty selects Single mode.
	Mode string

	// ModeRequire turns an undefined mode into a failure.
	ModeRequire bool

	// Env is the environment snapshot for this invocation.
	Env config.Env
}

// Resolver turns (request, sentinel table) pairs into ModePlans.
// It is stateless; the struct exists as a receiver so callers hold a
// component rather than free functions, and to allow future options.
type Resolver struct{}

// NewResolver creates a new mode Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve produces the execution plan for one invocation.
//
// Executable resolution applies to every plan: with the skip flag set the
// environment default is used unconditionally; otherwise the last EXEC
// sentinel in the table wins, falling back to the environment default.
//
// The skip flag also forces Single mode, ignoring any requested mode
// name. Otherwise an empty mode name selects Single mode, and a named
// mode resolves to a batch plan: a STANDARD_DEFINITION sentinel expands
// the built-in sequence, else CMD sentinels assemble a user-defined one,
// else the mode is undefined. An undefined mode is an error only under
// ModeRequire; without it the plan is an empty, deliberate no-op.
func (r *Resolver) Resolve(req Request, table []model.Sentinel) (model.ModePlan, error) {
	if req.Env.SkipSet() {
		return model.ModePlan{Exec: req.Env.ExecArgv()}, nil
	}

	execArgv := req.Env.ExecArgv()
	for _, s := range table {
		if s.Kind == model.SentinelExec {
			execArgv = s.Args
		}
	}

	if req.Mode == "" {
		return model.ModePlan{Exec: execArgv}, nil
	}

	return r.resolveBatch(req, table, execArgv)
}

// resolveBatch builds the plan for a named mode. When both a standard
// activation and CMD sentinels exist for the same name, the standard
// definition wins: activating a built-in recipe is an explicit opt-in,
// and stray CMD entries are ignored.
func (r *Resolver) resolveBatch(req Request, table []model.Sentinel, execArgv []string) (model.ModePlan, error) {
	plan := model.ModePlan{Mode: req.Mode, Exec: execArgv}

	if hasStandard(table, req.Mode) {
		plan.Defined = true
		// A standard activation for a name without a built-in definition
		// defines the mode with zero commands: the invocation succeeds
		// without running anything.
		for _, args := range standardDefinitions[model.StandardMode(req.Mode)] {
			plan.Commands = append(plan.Commands, model.Command{
				Args:   append([]string(nil), args...),
				Source: model.SourceStandard,
			})
		}
		return plan, nil
	}

	if cmds := userCommands(table, req.Mode); cmds != nil {
		plan.Defined = true
		plan.Commands = cmds
		return plan, nil
	}

	if req.ModeRequire {
		return model.ModePlan{}, model.NewCLIError(model.ExitGeneralError,
			fmt.Sprintf("mode %q undefined; mode-require set, failing", req.Mode))
	}
	return plan, nil
}

// hasStandard reports whether the table activates a standard definition
// for the given mode name.
func hasStandard(table []model.Sentinel, mode string) bool {
	for _, s := range table {
		if s.Kind == model.SentinelStandard && s.Mode == mode {
			return true
		}
	}
	return false
}

// userCommands assembles the user-defined sequence for a mode from its
// CMD sentinels, ordered ascending by index. Indices need not be
// contiguous; a repeated index keeps the last occurrence. Returns nil
// when the table has no CMD sentinels for the mode.
func userCommands(table []model.Sentinel, mode string) []model.Command {
	byIndex := make(map[int][]string)
	for _, s := range table {
		if s.Kind == model.SentinelCmd && s.Mode == mode {
			byIndex[s.Index] = s.Args
		}
	}
	if len(byIndex) == 0 {
		return nil
	}

	indices := make([]int, 0, len(byIndex))
	for idx := range byIndex {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	cmds := make([]model.Command, 0, len(indices))
	for _, idx := range indices {
		cmds = append(cmds, model.Command{
			Args:   append([]string(nil), byIndex[idx]...),
			Source: model.SourceUserDefined,
		})
	}
	return cmds
}
