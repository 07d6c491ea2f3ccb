package castform

import "github.com/castform/castform/format"

// Kind identifies the concrete runtime type a field's raw value is cast to.
// The zero value is KindString, matching the schema default.
type Kind int

const (
	KindString Kind = iota
	KindInteger
	KindFloat
	KindDecimal
	KindBool
	KindDate
	KindTime
	KindEnum
	KindMap
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindDecimal:
		return "decimal"
	case KindBool:
		return "boolean"
	case KindDate:
		return "date"
	case KindTime:
		return "time"
	case KindEnum:
		return "enum"
	case KindMap:
		return "map"
	case KindArray:
		return "array"
	default:
		return "unknown"
	}
}

// Atom is the engine's canonical symbol representation. Enum values cast to
// Atom, and input maps may key fields by Atom instead of string. When both a
// string key and an Atom key are present for the same logical field, the
// string key wins.
type Atom string

// UnknownPolicy controls how input keys absent from the schema are handled.
type UnknownPolicy int

const (
	UnknownStrip  UnknownPolicy = iota // Drop unknown keys (default).
	UnknownStrict                      // Reject unknown keys with an error.
)

type validateOpt struct {
	patterns format.Registry
	unknown  UnknownPolicy
}

// Option adjusts a single Validate call.
type Option func(*validateOpt)

// WithPatterns injects the pattern registry consulted by Format constraints.
// Defaults to format.Default() when unset.
func WithPatterns(reg format.Registry) Option {
	return func(o *validateOpt) { o.patterns = reg }
}

// WithUnknownStrict rejects input keys that are not declared in the schema.
func WithUnknownStrict() Option {
	return func(o *validateOpt) { o.unknown = UnknownStrict }
}

func buildOptions(opts []Option) validateOpt {
	o := validateOpt{patterns: format.Default(), unknown: UnknownStrip}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
