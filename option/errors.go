package option

import (
	"errors"
	"fmt"
	"strconv"
)

// Code classifies an *Error.
type Code int

const (
	CodeNamingConflict Code = iota + 1
	CodeInvalidAnnotationPlacement
	CodeUnknownOption
	CodeConversion
	CodeUnsupportedType
	CodeInvalidOptionName
)

var (
	// ErrNamingConflict is matched by errors for option names declared by
	// more than one member of a contract.
	ErrNamingConflict = errors.New("naming conflict")

	// ErrInvalidAnnotationPlacement is matched by errors for option tags on
	// members that cannot back a writable option slot.
	ErrInvalidAnnotationPlacement = errors.New("invalid annotation placement")

	// ErrUnknownOption is matched by bind errors for names no option declares.
	ErrUnknownOption = errors.New("unknown option")

	// ErrConversion is matched by bind errors for values that do not convert
	// to the option's type.
	ErrConversion = errors.New("conversion error")

	// ErrUnsupportedType is matched by errors for members whose type has no
	// semantic kind and no registered converter.
	ErrUnsupportedType = errors.New("unsupported option type")

	// ErrInvalidOptionName is matched by errors for empty or malformed names.
	ErrInvalidOptionName = errors.New("invalid option name")
)

// PlacementMessage is the fixed text of errors raised for option tags on
// scalar contract fields and for writes to captured composite fields.
const PlacementMessage = "invalid option tag on contract field"

func (c Code) String() string {
	switch c {
	case CodeNamingConflict:
		return "NAMING_CONFLICT"
	case CodeInvalidAnnotationPlacement:
		return "INVALID_ANNOTATION_PLACEMENT"
	case CodeUnknownOption:
		return "UNKNOWN_OPTION"
	case CodeConversion:
		return "CONVERSION_ERROR"
	case CodeUnsupportedType:
		return "UNSUPPORTED_TYPE"
	case CodeInvalidOptionName:
		return "INVALID_OPTION_NAME"
	}
	return "UNKNOWN_CODE(" + strconv.Itoa(int(c)) + ")"
}

func (c Code) sentinel() error {
	switch c {
	case CodeNamingConflict:
		return ErrNamingConflict
	case CodeInvalidAnnotationPlacement:
		return ErrInvalidAnnotationPlacement
	case CodeUnknownOption:
		return ErrUnknownOption
	case CodeConversion:
		return ErrConversion
	case CodeUnsupportedType:
		return ErrUnsupportedType
	case CodeInvalidOptionName:
		return ErrInvalidOptionName
	}
	return nil
}

// Error is the typed error raised while building a contract model or binding
// tokens to an instance. errors.Is matches the sentinel of its Code.
type Error struct {
	Code Code
	// Member is the contract member involved, if any.
	Member string
	// Other is the second member of a naming conflict.
	Other string
	// Option is the option name involved.
	Option string
	// Token is the offending raw value.
	Token string
	// Target describes the conversion target type.
	Target string
	// Err is the underlying failure, if any.
	Err error
}

func (e *Error) Error() string {
	switch e.Code {
	case CodeNamingConflict:
		return fmt.Sprintf("option name %q is declared by both %s and %s", e.Option, e.Other, e.Member)
	case CodeInvalidAnnotationPlacement:
		if e.Err != nil {
			return PlacementMessage + ": " + e.Err.Error()
		}
		return PlacementMessage
	case CodeUnknownOption:
		return "unknown option " + strconv.Quote(e.Option)
	case CodeConversion:
		msg := fmt.Sprintf("invalid value %q for option %s: cannot convert to %s", e.Token, e.Option, e.Target)
		if e.Err != nil {
			msg += ": " + e.Err.Error()
		}
		return msg
	case CodeUnsupportedType:
		msg := "unsupported option type on " + e.Member
		if e.Target != "" {
			msg += " (" + e.Target + ")"
		}
		if e.Err != nil {
			msg += ": " + e.Err.Error()
		}
		return msg
	case CodeInvalidOptionName:
		if e.Option == "" {
			return "option tag on " + e.Member + " declares no names"
		}
		return "invalid option name " + strconv.Quote(e.Option) + " on " + e.Member
	}
	return e.Code.String()
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	s := e.Code.sentinel()
	return s != nil && target == s
}

// CodeOf returns the Code of the first *Error in err's chain, or 0.
func CodeOf(err error) Code {
	var oe *Error
	if errors.As(err, &oe) {
		return oe.Code
	}
	return 0
}
