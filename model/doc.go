// Package model builds option specifications from contract struct types.
//
// A contract is inspected once per Builder and the compiled result is kept in
// a bounded LRU cache keyed by reflect.Type. Each Build call then binds the
// compiled specs to the prototype it was given, capturing the containers of
// composite value fields.
//
// Validation runs during compilation:
//   - accessor members (func fields) are always valid;
//   - scalar value fields fail with option.ErrInvalidAnnotationPlacement;
//   - composite value fields compile, and the binder later rejects writes;
//   - names shared by two members fail with option.ErrNamingConflict.
package model
