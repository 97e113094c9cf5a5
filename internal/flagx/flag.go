// Package flagx helps several independent flag sets share os.Args.
//
// Each configuration layer parses only the flags it owns; FilterArgs strips
// everything else so a flag.FlagSet never fails on a flag defined elsewhere.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// FilterArgs returns the subset of args made of the allowed flags and their
// values, in their original order.
//
// Recognised forms are "-f value", "-f=value" and "--f=value". A flag listed
// in boolFlags never consumes the following argument, so "-debug feed" keeps
// "feed" out of the result.
func FilterArgs(args []string, allowedFlags []string, boolFlags ...string) []string {
	allowed := make(map[string]bool, len(allowedFlags)+len(boolFlags))
	for _, f := range allowedFlags {
		allowed[f] = false
	}
	for _, f := range boolFlags {
		allowed[f] = true
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			continue
		}

		if name, _, ok := strings.Cut(arg, "="); ok {
			if _, known := allowed[name]; known {
				filtered = append(filtered, arg)
			}
			continue
		}

		isBool, known := allowed[arg]
		if !known {
			continue
		}
		filtered = append(filtered, arg)
		if !isBool && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

// ConfigFileFlag returns the config file path given with -c or -config, or
// an empty string when neither is present.
func ConfigFileFlag() string {
	var path string

	args := FilterArgs(os.Args[1:], []string{"-c", "-config"})

	fs := flag.NewFlagSet("config-file", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "path to config file")
	fs.StringVar(&path, "c", "", "path to config file (short)")
	_ = fs.Parse(args)

	return path
}
