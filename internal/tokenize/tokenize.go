// Package tokenize segments raw command-line arguments into option tokens
// using the option names a model declares.
package tokenize

import (
	"strings"

	"github.com/ggoodman/cmdbind/binding"
)

// EndOfOptions stops option processing; every later argument is passed on
// as a literal token, which the binder reports as an unknown option.
const EndOfOptions = "--"

// Lookup reports whether name is a declared option and whether it consumes a
// value.
type Lookup func(name string) (takesValue bool, ok bool)

// Tokenize turns args into tokens. It understands separate values (-i 3),
// attached values (-y1, resolved to the longest declared prefix) and equals
// values (-bigint=7). Only options taking a value match by prefix. An option
// directly followed by EndOfOptions gets no value. Arguments matching no
// option become value-less tokens named after the argument itself.
func Tokenize(args []string, lookup Lookup) []binding.Token {
	tokens := make([]binding.Token, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if arg == EndOfOptions {
			for _, rest := range args[i+1:] {
				tokens = append(tokens, binding.Literal(rest))
			}
			break
		}

		if takesValue, ok := lookup(arg); ok {
			switch {
			case !takesValue:
				tokens = append(tokens, binding.Flag(arg))
			case i+1 < len(args) && args[i+1] != EndOfOptions:
				tokens = append(tokens, binding.Pair(arg, args[i+1]))
				i++
			default:
				tokens = append(tokens, binding.Flag(arg))
			}
			continue
		}

		if eq := strings.IndexByte(arg, '='); eq > 0 {
			if _, ok := lookup(arg[:eq]); ok {
				tokens = append(tokens, binding.Pair(arg[:eq], arg[eq+1:]))
				continue
			}
		}

		if name, ok := longestPrefix(arg, lookup); ok {
			tokens = append(tokens, binding.Pair(name, arg[len(name):]))
			continue
		}

		tokens = append(tokens, binding.Flag(arg))
	}
	return tokens
}

func longestPrefix(arg string, lookup Lookup) (string, bool) {
	for n := len(arg) - 1; n > 0; n-- {
		if takesValue, ok := lookup(arg[:n]); ok && takesValue {
			return arg[:n], true
		}
	}
	return "", false
}
