package dsl

import (
	"github.com/castform/castform"
)

// StringBuilder assembles rules for a string field.
type StringBuilder struct{ r castform.Rules }

// String starts a string field (the schema default kind).
func String() *StringBuilder { return &StringBuilder{} }

func (b *StringBuilder) add(c castform.Constraint) *StringBuilder {
	b.r.Constraints = append(b.r.Constraints, c)
	return b
}

// Trim strips surrounding whitespace before other constraints run.
func (b *StringBuilder) Trim() *StringBuilder { return b.add(castform.Trim()) }

// Squish trims and collapses internal whitespace before other constraints run.
func (b *StringBuilder) Squish() *StringBuilder { return b.add(castform.Squish()) }

// Is requires an exact rune length.
func (b *StringBuilder) Is(n int) *StringBuilder { return b.add(castform.Is(n)) }

// Min requires a minimum rune length.
func (b *StringBuilder) Min(n int) *StringBuilder { return b.add(castform.Min(n)) }

// Max requires a maximum rune length.
func (b *StringBuilder) Max(n int) *StringBuilder { return b.add(castform.Max(n)) }

// Format matches the value against a named registry pattern.
func (b *StringBuilder) Format(name string) *StringBuilder { return b.add(castform.Format(name)) }

// Equals requires the exact value.
func (b *StringBuilder) Equals(v string) *StringBuilder { return b.add(castform.Equals(v)) }

// Included requires membership in the given set.
func (b *StringBuilder) Included(values ...string) *StringBuilder {
	return b.add(castform.Included(anySlice(values)...))
}

// Excluded rejects membership in the given set.
func (b *StringBuilder) Excluded(values ...string) *StringBuilder {
	return b.add(castform.Excluded(anySlice(values)...))
}

func (b *StringBuilder) Rules() castform.Rules { return b.r }

// NumberBuilder assembles rules for an integer, float, or decimal field.
// Bounds accept any numeric value (or numeric string for decimals); a bound
// the field kind cannot represent fails compilation.
type NumberBuilder struct{ r castform.Rules }

// Integer starts an integer field.
func Integer() *NumberBuilder { return &NumberBuilder{r: castform.Rules{Type: castform.KindInteger}} }

// Float starts a float field.
func Float() *NumberBuilder { return &NumberBuilder{r: castform.Rules{Type: castform.KindFloat}} }

// Decimal starts an arbitrary-precision decimal field.
func Decimal() *NumberBuilder { return &NumberBuilder{r: castform.Rules{Type: castform.KindDecimal}} }

func (b *NumberBuilder) add(c castform.Constraint) *NumberBuilder {
	b.r.Constraints = append(b.r.Constraints, c)
	return b
}

func (b *NumberBuilder) Is(n any) *NumberBuilder         { return b.add(castform.Is(n)) }
func (b *NumberBuilder) EqualTo(n any) *NumberBuilder    { return b.add(castform.EqualTo(n)) }
func (b *NumberBuilder) NotEqualTo(n any) *NumberBuilder { return b.add(castform.NotEqualTo(n)) }
func (b *NumberBuilder) Min(n any) *NumberBuilder        { return b.add(castform.Min(n)) }
func (b *NumberBuilder) Max(n any) *NumberBuilder        { return b.add(castform.Max(n)) }
func (b *NumberBuilder) GreaterThan(n any) *NumberBuilder {
	return b.add(castform.GreaterThan(n))
}
func (b *NumberBuilder) LessThan(n any) *NumberBuilder { return b.add(castform.LessThan(n)) }
func (b *NumberBuilder) GreaterThanOrEqualTo(n any) *NumberBuilder {
	return b.add(castform.GreaterThanOrEqualTo(n))
}
func (b *NumberBuilder) LessThanOrEqualTo(n any) *NumberBuilder {
	return b.add(castform.LessThanOrEqualTo(n))
}
func (b *NumberBuilder) Included(values ...any) *NumberBuilder {
	return b.add(castform.Included(values...))
}
func (b *NumberBuilder) Excluded(values ...any) *NumberBuilder {
	return b.add(castform.Excluded(values...))
}

func (b *NumberBuilder) Rules() castform.Rules { return b.r }

// ValueBuilder assembles rules for bool, date, and time fields.
type ValueBuilder struct{ r castform.Rules }

// Bool starts a boolean field.
func Bool() *ValueBuilder { return &ValueBuilder{r: castform.Rules{Type: castform.KindBool}} }

// Date starts a date field (wire format 2006-01-02).
func Date() *ValueBuilder { return &ValueBuilder{r: castform.Rules{Type: castform.KindDate}} }

// Time starts a time field (wire format 15:04:05).
func Time() *ValueBuilder { return &ValueBuilder{r: castform.Rules{Type: castform.KindTime}} }

func (b *ValueBuilder) add(c castform.Constraint) *ValueBuilder {
	b.r.Constraints = append(b.r.Constraints, c)
	return b
}

func (b *ValueBuilder) Equals(v any) *ValueBuilder { return b.add(castform.Equals(v)) }
func (b *ValueBuilder) Included(values ...any) *ValueBuilder {
	return b.add(castform.Included(values...))
}
func (b *ValueBuilder) Excluded(values ...any) *ValueBuilder {
	return b.add(castform.Excluded(values...))
}

func (b *ValueBuilder) Rules() castform.Rules { return b.r }

// EnumBuilder assembles rules for an enum field over a closed value set.
type EnumBuilder struct{ r castform.Rules }

// Enum starts an enum field allowing exactly the given values.
func Enum(values ...string) *EnumBuilder {
	return &EnumBuilder{r: castform.Rules{Type: castform.KindEnum, Values: anySlice(values)}}
}

func (b *EnumBuilder) Equals(v string) *EnumBuilder {
	b.r.Constraints = append(b.r.Constraints, castform.Equals(v))
	return b
}

func (b *EnumBuilder) Rules() castform.Rules { return b.r }

// MapBuilder assembles rules for a map field.
type MapBuilder struct{ r castform.Rules }

// Map starts an untyped map field: values pass through after key normalization.
func Map() *MapBuilder { return &MapBuilder{r: castform.Rules{Type: castform.KindMap}} }

// objectDefiner is satisfied by the object builder at any point in its
// field-chaining sequence.
type objectDefiner interface {
	Definition() castform.Definition
}

// MapOf starts a map field whose entries are validated against the nested
// builder's schema.
func MapOf(props objectDefiner) *MapBuilder {
	return &MapBuilder{r: castform.Rules{Type: castform.KindMap, Properties: props.Definition()}}
}

func (b *MapBuilder) Rules() castform.Rules { return b.r }

// ArrayBuilder assembles rules for a homogeneous array field.
type ArrayBuilder struct{ r castform.Rules }

// Array starts an array field whose elements follow the given rule builder.
func Array(elem FieldBuilder) *ArrayBuilder {
	er := elem.Rules()
	return &ArrayBuilder{r: castform.Rules{Type: castform.KindArray, Elem: &er}}
}

// ArrayOf starts an array-of-map field whose elements are validated against
// the nested builder's schema.
func ArrayOf(props objectDefiner) *ArrayBuilder {
	return &ArrayBuilder{r: castform.Rules{Type: castform.KindArray, Properties: props.Definition()}}
}

// Subset requires every element to be a member of the given set.
func (b *ArrayBuilder) Subset(values ...any) *ArrayBuilder {
	b.r.Constraints = append(b.r.Constraints, castform.Subset(values...))
	return b
}

func (b *ArrayBuilder) Rules() castform.Rules { return b.r }

func anySlice[T any](in []T) []any {
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}
