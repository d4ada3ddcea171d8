package domain

import "strings"

// Tokenize whitespace-splits every element of a command list and flattens the result,
// so a single configuration string can carry several arguments without a shell.
func Tokenize(args []string) []string {
	var out []string
	for _, arg := range args {
		out = append(out, strings.Fields(arg)...)
	}
	return out
}
