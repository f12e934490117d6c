package binding

// Token is one option occurrence of a fully segmented command line.
type Token struct {
	Name string
	// Value is the raw value; meaningful only when HasValue is set.
	Value    string
	HasValue bool
	// Literal marks an argument that follows the end of options. It never
	// resolves to an option, even when Name matches one.
	Literal bool
}

// Flag returns a token carrying no value.
func Flag(name string) Token { return Token{Name: name} }

// Pair returns a token carrying value.
func Pair(name, value string) Token { return Token{Name: name, Value: value, HasValue: true} }

// Literal returns a token for an argument that must not be read as an option.
func Literal(arg string) Token { return Token{Name: arg, Literal: true} }
