// Package cmdbind binds command-line arguments to declarative contract types.
//
// A contract is a struct whose tagged func fields describe accessors:
//
//	type Objects struct {
//		Count func() *int32                  `option:"-c,--count"`
//		Names func() []string                `option:"-n"`
//		Map   func() map[int]float64         `option:"-map"`
//		Set   func() option.SortedSet[int16] `option:"-set"`
//	}
//
//	cmd, err := cmdbind.Populate[Objects]("-c", "3", "-n", "a", "-map", "1=2.0")
//
// cmdbind synthesizes the accessors, converts each token with a
// convert.Registry and keeps every option's value in its own slot. Primitive
// accessors start at their zero value; pointer, big integer and composite
// accessors start nil.
//
// A CommandLine is not safe for concurrent use.
package cmdbind
