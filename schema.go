package castform

import "sort"

// Definition is the authoring form of a schema: a mapping from field name to
// its rule set. The builder in dsl/ is sugar that produces a Definition; the
// engine itself only ever consumes the compiled Schema.
type Definition map[string]Rules

// Rules is the declarative rule set for one field.
type Rules struct {
	// Type selects the concrete runtime type. Zero value is KindString.
	Type Kind
	// Required marks the field as mandatory.
	Required bool
	// Elem declares the element rule set for KindArray fields.
	Elem *Rules
	// Values lists the allowed values for KindEnum fields (strings or Atoms).
	Values []any
	// Properties declares the nested schema for KindMap fields, or for the
	// map elements of a KindArray field when Elem is omitted.
	Properties Definition
	// Constraints run in declared order after a successful cast.
	Constraints []Constraint
}

type constraintOp int

const (
	opIs constraintOp = iota
	opEqualTo
	opNotEqualTo
	opMin
	opMax
	opGreaterThan
	opLessThan
	opGreaterThanOrEqualTo
	opLessThanOrEqualTo
	opEquals
	opIncluded
	opExcluded
	opSubset
	opFormat
	opTrim
	opSquish
)

// Constraint is one member of the closed set of per-field validation rules.
// Construct values via the exported constructors below. A constraint that
// does not apply to the field's resolved type is silently ignored.
type Constraint struct {
	op  constraintOp
	arg any
	set []any
}

// Is checks numeric equality on number fields and exact rune length on
// string fields.
func Is(n any) Constraint { return Constraint{op: opIs, arg: n} }

// EqualTo checks numeric equality on number fields.
func EqualTo(n any) Constraint { return Constraint{op: opEqualTo, arg: n} }

// NotEqualTo checks numeric inequality on number fields.
func NotEqualTo(n any) Constraint { return Constraint{op: opNotEqualTo, arg: n} }

// Min checks a lower bound on number fields and a minimum rune length on
// string fields.
func Min(n any) Constraint { return Constraint{op: opMin, arg: n} }

// Max checks an upper bound on number fields and a maximum rune length on
// string fields.
func Max(n any) Constraint { return Constraint{op: opMax, arg: n} }

// GreaterThan checks a strict lower bound on number fields.
func GreaterThan(n any) Constraint { return Constraint{op: opGreaterThan, arg: n} }

// LessThan checks a strict upper bound on number fields.
func LessThan(n any) Constraint { return Constraint{op: opLessThan, arg: n} }

// GreaterThanOrEqualTo checks an inclusive lower bound on number fields.
func GreaterThanOrEqualTo(n any) Constraint { return Constraint{op: opGreaterThanOrEqualTo, arg: n} }

// LessThanOrEqualTo checks an inclusive upper bound on number fields.
func LessThanOrEqualTo(n any) Constraint { return Constraint{op: opLessThanOrEqualTo, arg: n} }

// Equals checks that the cast value equals the given value.
func Equals(v any) Constraint { return Constraint{op: opEquals, arg: v} }

// Included checks that the cast value is a member of the given set.
func Included(values ...any) Constraint { return Constraint{op: opIncluded, set: values} }

// Excluded checks that the cast value is not a member of the given set.
func Excluded(values ...any) Constraint { return Constraint{op: opExcluded, set: values} }

// Subset checks that every element of an array field is a member of the
// given set.
func Subset(values ...any) Constraint { return Constraint{op: opSubset, set: values} }

// Format checks a string field against the named pattern from the registry
// supplied at validation time (built-ins: uuid, email, password, url).
func Format(name string) Constraint { return Constraint{op: opFormat, arg: name} }

// Trim strips surrounding whitespace from a string field before length and
// format constraints observe the value.
func Trim() Constraint { return Constraint{op: opTrim} }

// Squish trims a string field and collapses internal whitespace runs to a
// single space before length and format constraints observe the value.
func Squish() Constraint { return Constraint{op: opSquish} }

// Schema is the compiled form of a Definition. Field types are resolved and
// constraint checks compiled exactly once; the value is immutable afterwards
// and safe for concurrent Validate calls.
type Schema struct {
	fields map[string]*field
	keys   []string
}

// field is the compiled rule set for one field.
type field struct {
	name     string
	kind     Kind
	required bool
	elem     *field  // array element
	values   []Atom  // enum membership
	props    *Schema // nested schema for map fields
	trim     bool
	squish   bool
	checks   []check
}

// FieldNames returns the declared field names in sorted order.
func (s *Schema) FieldNames() []string {
	return append([]string(nil), s.keys...)
}

// Compile resolves a Definition into a Schema. A malformed declaration
// (empty enum values, Properties on a scalar field, a non-numeric bound on a
// numeric constraint) returns a *SchemaError.
func Compile(def Definition) (*Schema, error) {
	return compileDef(def, "")
}

// MustCompile is Compile that panics on error, for schemas declared as
// package-level values.
func MustCompile(def Definition) *Schema {
	s, err := Compile(def)
	if err != nil {
		panic(err)
	}
	return s
}

func compileDef(def Definition, base string) (*Schema, error) {
	s := &Schema{fields: make(map[string]*field, len(def)), keys: make([]string, 0, len(def))}
	for name := range def {
		s.keys = append(s.keys, name)
	}
	sort.Strings(s.keys)
	for _, name := range s.keys {
		f, err := compileField(base+"/"+escapePointer(name), name, def[name])
		if err != nil {
			return nil, err
		}
		s.fields[name] = f
	}
	return s, nil
}

func compileField(path, name string, r Rules) (*field, error) {
	f := &field{name: name, kind: r.Type, required: r.Required}

	switch r.Type {
	case KindEnum:
		if len(r.Values) == 0 {
			return nil, schemaErrf(path, "enum requires a non-empty values list")
		}
		f.values = make([]Atom, 0, len(r.Values))
		for _, v := range r.Values {
			switch av := v.(type) {
			case Atom:
				f.values = append(f.values, av)
			case string:
				f.values = append(f.values, Atom(av))
			default:
				return nil, schemaErrf(path, "enum value %v is not a string", v)
			}
		}
	case KindMap:
		if r.Elem != nil {
			return nil, schemaErrf(path, "elem only applies to array fields")
		}
		if r.Properties != nil {
			props, err := compileDef(r.Properties, path)
			if err != nil {
				return nil, err
			}
			f.props = props
		}
	case KindArray:
		er := r.Elem
		if er == nil {
			if r.Properties != nil {
				er = &Rules{Type: KindMap, Properties: r.Properties}
			} else {
				er = &Rules{}
			}
		} else if r.Properties != nil {
			if er.Type != KindMap || er.Properties != nil {
				return nil, schemaErrf(path, "properties requires a map element")
			}
			elem := *er
			elem.Properties = r.Properties
			er = &elem
		}
		ef, err := compileField(path, "", *er)
		if err != nil {
			return nil, err
		}
		f.elem = ef
	default:
		if r.Properties != nil {
			return nil, schemaErrf(path, "properties only applies to map and array-of-map fields, not %s", r.Type)
		}
		if r.Elem != nil {
			return nil, schemaErrf(path, "elem only applies to array fields, not %s", r.Type)
		}
		if len(r.Values) != 0 {
			return nil, schemaErrf(path, "values only applies to enum fields, not %s", r.Type)
		}
	}

	for _, c := range r.Constraints {
		if err := f.compileConstraint(path, c); err != nil {
			return nil, err
		}
	}
	return f, nil
}
