// Package commandline contains helper types for collecting repeatable
// command-line arguments, adapted here to implement pflag.Value so
// cmd/xbgen can register them directly on a cobra command's flag set.
package commandline

import "strings"

// Strings collects a repeatable command-line option's values, in the
// order given, used by cmd/xbgen's "--namespace-map uri=pkg" flag
// (§6.4): each occurrence appends one "k=v" entry, parsed by the
// caller after flag parsing completes.
type Strings []string

func (s *Strings) String() string {
	return strings.Join(*s, ",")
}

func (s *Strings) Set(val string) error {
	*s = append(*s, val)
	return nil
}

// Type satisfies pflag.Value, naming the flag's value kind in --help
// output.
func (s *Strings) Type() string {
	return "stringArray"
}
