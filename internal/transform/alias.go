package transform

import (
	"github.com/vk/graphene/internal/program"
)

// Alias returns a rewrite that replaces every step called name with a copy
// of steps. The aliased step's own arguments are dropped.
func Alias(name string, steps program.Program) Func {
	expansion := steps.Clone()
	return func(prog program.Program) program.Program {
		out := make(program.Program, 0, len(prog))
		for _, s := range prog {
			if s.Name != name {
				out = append(out, s)
				continue
			}
			out = append(out, expansion.Clone()...)
		}
		return out
	}
}

// LegacyAlias returns a rewrite that renames every step called name to
// target and fills missing positional arguments from defaults. Arguments the
// caller supplied win at each position; a nil argument counts as missing.
func LegacyAlias(name, target string, defaults []any) Func {
	defs := make([]any, len(defaults))
	copy(defs, defaults)
	return func(prog program.Program) program.Program {
		out := make(program.Program, len(prog))
		for i, s := range prog {
			if s.Name != name {
				out[i] = s
				continue
			}
			out[i] = program.Step{Name: target, Args: mergeArgs(s.Args, defs)}
		}
		return out
	}
}

func mergeArgs(args, defaults []any) []any {
	n := len(args)
	if len(defaults) > n {
		n = len(defaults)
	}
	out := make([]any, n)
	for i := range out {
		if i < len(args) && args[i] != nil {
			out[i] = args[i]
		} else if i < len(defaults) {
			out[i] = defaults[i]
		}
	}
	return out
}
