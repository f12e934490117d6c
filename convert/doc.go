// Package convert turns raw command-line strings into typed values.
//
// A Registry resolves converters by Go type. The built-in set covers bool,
// the signed and unsigned integer widths, float32/float64, string and
// *big.Int, plus pointers to those (the boxed forms). Callers layer their own
// converters on top with With:
//
//	reg := convert.New(convert.With(time.ParseDuration))
//
// Default returns the shared built-in registry; it is never mutated.
package convert
