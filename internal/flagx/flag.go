// Package flagx narrows os.Args down to the flags a component owns, so that
// several flag sets can coexist in one binary.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// FilterArgs keeps only the flags listed in valueFlags together with their
// values. Both "-d file.db" and "-d=file.db" forms are recognized.
func FilterArgs(args []string, valueFlags []string) []string {
	return FilterArgsWithBool(args, valueFlags, nil)
}

// FilterArgsWithBool is FilterArgs for flag sets that also carry boolean
// switches. A switch never consumes the following token, so "-o notes.txt"
// keeps "-o" and leaves "notes.txt" alone.
func FilterArgsWithBool(args []string, valueFlags, boolFlags []string) []string {
	takesValue := make(map[string]bool, len(valueFlags)+len(boolFlags))
	for _, f := range valueFlags {
		takesValue[f] = true
	}
	for _, f := range boolFlags {
		takesValue[f] = false
	}

	filtered := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if name, _, ok := strings.Cut(arg, "="); ok && strings.HasPrefix(arg, "-") {
			if _, known := takesValue[name]; known {
				filtered = append(filtered, arg)
			}
			continue
		}

		hasValue, known := takesValue[arg]
		if !known {
			continue
		}
		filtered = append(filtered, arg)
		if hasValue && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

// JsonConfigFlags returns the config file path given with -c or -config, or
// an empty string. Other arguments are ignored.
func JsonConfigFlags() string {
	return jsonConfigPath(os.Args[1:])
}

func jsonConfigPath(args []string) string {
	var path string

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "path to config file")
	fs.StringVar(&path, "c", "", "path to config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"-c", "-config"}))

	return path
}
