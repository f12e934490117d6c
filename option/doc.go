// Package option defines the vocabulary shared by the model builder, the
// conversion registry and the binder: semantic kinds, resolved option
// specifications, the SortedSet container and the typed error reported by
// every stage.
//
// Contract types are plain Go structs. Exported func-typed fields with no
// parameters and a single result are accessors; the engine fills them with
// closures reading from per-option value slots:
//
//	type Primitives struct {
//		ABoolean func() bool  `option:"-b"`
//		AnInt    func() int32 `option:"-i,--int"`
//	}
//
// Tagged non-func fields behave like constants initialised by the prototype
// the caller passes in. Scalars may not be bound that way; composite fields
// are accepted but reject any write.
package option
