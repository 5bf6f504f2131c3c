package flagx

import "strings"

// ConfigFile extracts the value of the -c/-config flag from args, returning
// "" when neither is present. Both "-c path" and "--config=path" forms are
// recognized, so the config loader can find its optional JSON file without
// disturbing the rest of the command line.
func ConfigFile(args []string) string {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		name, value, hasValue := strings.Cut(arg, "=")
		switch name {
		case "-c", "--c", "-config", "--config":
		default:
			continue
		}
		if hasValue {
			return value
		}
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			return args[i+1]
		}
	}
	return ""
}
