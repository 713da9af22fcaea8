// Package flagx lets several packages parse their own subset of os.Args
// without tripping over each other's flags.
package flagx

import (
	"flag"
	"os"
	"slices"
	"strings"
)

// FilterArgs keeps only the flags named in allowed, together with their
// values. Both "-k value" and "-k=value" are recognised. A value that starts
// with "-" is treated as the next flag, not as a value.
func FilterArgs(args []string, allowed []string) []string {
	out := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if name, _, ok := strings.Cut(arg, "="); ok && strings.HasPrefix(arg, "-") {
			if slices.Contains(allowed, name) {
				out = append(out, arg)
			}
			continue
		}

		if !slices.Contains(allowed, arg) {
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

// JsonConfigFlags returns the config file path given with -c or -config,
// or "" when neither is set.
func JsonConfigFlags() string {
	var path string

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "path to config file")
	fs.StringVar(&path, "c", "", "path to config file (short)")
	_ = fs.Parse(FilterArgs(os.Args[1:], []string{"-c", "-config"}))

	return path
}
