// Package binding synthesizes command instances from contract models and
// binds token streams to them.
//
// Every option owns one value slot. Accessor fields of the instance are
// closures that read their slot, so the instance always reflects the last
// successful writes. Value fields keep the container captured from the
// prototype and reject writes with option.ErrInvalidAnnotationPlacement.
//
// An Instance is not safe for concurrent use; callers serialize Bind calls.
package binding
