// Package flagx helps components that parse only a subset of the process
// arguments coexist on one command line (e.g. the config loader next to a
// subcommand's own flags).
package flagx

import "strings"

// FilterArgs returns the arguments belonging to the flags named in allowed,
// dropping everything else. Both "-f value" and "-f=value" forms are kept.
//
// A value following an allowed flag is retained unless it looks like another
// flag itself.
func FilterArgs(args []string, allowed []string) []string {
	keep := make(map[string]bool, len(allowed))
	for _, name := range allowed {
		keep[name] = true
	}

	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			continue
		}
		if name, _, found := strings.Cut(arg, "="); found {
			if keep[name] {
				out = append(out, arg)
			}
			continue
		}
		if !keep[arg] {
			continue
		}
		out = append(out, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			out = append(out, args[i+1])
			i++
		}
	}
	return out
}
