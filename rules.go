package castform

import (
	"fmt"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/castform/castform/format"
	"github.com/castform/castform/i18n"
	"github.com/shopspring/decimal"
)

// check is one compiled constraint evaluator. It receives the cast (and, for
// strings, normalized) value. A non-nil *Error is a per-field validation
// failure; a non-nil error is fatal (an unresolvable format pattern) and
// aborts the whole call.
type check func(v any, reg format.Registry) (*Error, error)

func newError(code string, params map[string]any) Error {
	return Error{Code: code, Message: i18n.T(code, stringifyParams(params)), Params: params}
}

func stringifyParams(params map[string]any) map[string]string {
	if len(params) == 0 {
		return nil
	}
	out := make(map[string]string, len(params))
	for k, v := range params {
		out[k] = renderParam(v)
	}
	return out
}

func renderParam(v any) string {
	switch n := v.(type) {
	case string:
		return n
	case Atom:
		return string(n)
	case int:
		return strconv.Itoa(n)
	case int64:
		return strconv.FormatInt(n, 10)
	case float64:
		return strconv.FormatFloat(n, 'g', -1, 64)
	case decimal.Decimal:
		return n.String()
	default:
		return fmt.Sprint(v)
	}
}

func isNumericKind(k Kind) bool {
	return k == KindInteger || k == KindFloat || k == KindDecimal
}

// compileConstraint resolves one constraint against the field's kind.
// Constraints that do not apply to the resolved type are silently ignored,
// preserving the permissive behavior of loosely-typed schema declarations.
func (f *field) compileConstraint(path string, c Constraint) error {
	switch c.op {
	case opTrim:
		if f.kind == KindString {
			f.trim = true
		}
	case opSquish:
		if f.kind == KindString {
			f.squish = true
		}
	case opIs:
		if isNumericKind(f.kind) {
			return f.addNumericCheck(path, CodeEqualTo, c.arg, func(c int) bool { return c == 0 })
		}
		if f.kind == KindString {
			return f.addLengthCheck(path, CodeWrongLength, c.arg, func(l, n int) bool { return l == n })
		}
	case opEqualTo:
		if isNumericKind(f.kind) {
			return f.addNumericCheck(path, CodeEqualTo, c.arg, func(c int) bool { return c == 0 })
		}
	case opNotEqualTo:
		if isNumericKind(f.kind) {
			return f.addNumericCheck(path, CodeNotEqualTo, c.arg, func(c int) bool { return c != 0 })
		}
	case opMin:
		if isNumericKind(f.kind) {
			return f.addNumericCheck(path, CodeGreaterThanOrEqual, c.arg, func(c int) bool { return c >= 0 })
		}
		if f.kind == KindString {
			return f.addLengthCheck(path, CodeTooShort, c.arg, func(l, n int) bool { return l >= n })
		}
	case opMax:
		if isNumericKind(f.kind) {
			return f.addNumericCheck(path, CodeLessThanOrEqual, c.arg, func(c int) bool { return c <= 0 })
		}
		if f.kind == KindString {
			return f.addLengthCheck(path, CodeTooLong, c.arg, func(l, n int) bool { return l <= n })
		}
	case opGreaterThan:
		if isNumericKind(f.kind) {
			return f.addNumericCheck(path, CodeGreaterThan, c.arg, func(c int) bool { return c > 0 })
		}
	case opLessThan:
		if isNumericKind(f.kind) {
			return f.addNumericCheck(path, CodeLessThan, c.arg, func(c int) bool { return c < 0 })
		}
	case opGreaterThanOrEqualTo:
		if isNumericKind(f.kind) {
			return f.addNumericCheck(path, CodeGreaterThanOrEqual, c.arg, func(c int) bool { return c >= 0 })
		}
	case opLessThanOrEqualTo:
		if isNumericKind(f.kind) {
			return f.addNumericCheck(path, CodeLessThanOrEqual, c.arg, func(c int) bool { return c <= 0 })
		}
	case opEquals:
		if f.kind == KindMap || f.kind == KindArray {
			return nil
		}
		return f.addEqualsCheck(path, c.arg)
	case opIncluded:
		if f.kind == KindMap || f.kind == KindArray {
			return nil
		}
		return f.addMembershipCheck(path, CodeInclusion, c.set, true)
	case opExcluded:
		if f.kind == KindMap || f.kind == KindArray {
			return nil
		}
		return f.addMembershipCheck(path, CodeExclusion, c.set, false)
	case opSubset:
		if f.kind == KindArray {
			return f.addSubsetCheck(path, c.set)
		}
	case opFormat:
		if f.kind == KindString {
			return f.addFormatCheck(path, c.arg)
		}
	}
	return nil
}

// addNumericCheck compiles one comparison constraint. The bound is coerced to
// the field's numeric type up front so a bad bound is a SchemaError, not a
// runtime surprise. pass receives the sign of value.Cmp(bound).
func (f *field) addNumericCheck(path, code string, arg any, pass func(cmp int) bool) error {
	bound, ok := f.cast(arg)
	if !ok {
		return schemaErrf(path, "constraint bound %v is not a valid %s", arg, f.kind)
	}
	kind := f.kind
	f.checks = append(f.checks, func(v any, _ format.Registry) (*Error, error) {
		c, ok := compareNumeric(kind, v, bound)
		if !ok || pass(c) {
			return nil, nil
		}
		return errPtr(code, map[string]any{"number": bound}), nil
	})
	return nil
}

func (f *field) addLengthCheck(path, code string, arg any, pass func(length, n int) bool) error {
	raw, ok := castInt(arg)
	if !ok {
		return schemaErrf(path, "length bound %v is not an integer", arg)
	}
	n := int(raw.(int64))
	f.checks = append(f.checks, func(v any, _ format.Registry) (*Error, error) {
		s, ok := v.(string)
		if !ok || pass(utf8.RuneCountInString(s), n) {
			return nil, nil
		}
		return errPtr(code, map[string]any{"count": n}), nil
	})
	return nil
}

func (f *field) addEqualsCheck(path string, arg any) error {
	want, ok := f.cast(arg)
	if !ok {
		return schemaErrf(path, "equals value %v is not a valid %s", arg, f.kind)
	}
	kind := f.kind
	f.checks = append(f.checks, func(v any, _ format.Registry) (*Error, error) {
		if valueEqual(kind, v, want) {
			return nil, nil
		}
		return errPtr(CodeEqualTo, map[string]any{"value": want}), nil
	})
	return nil
}

func (f *field) addMembershipCheck(path, code string, set []any, wantMember bool) error {
	members, err := f.castSet(path, set)
	if err != nil {
		return err
	}
	kind := f.kind
	f.checks = append(f.checks, func(v any, _ format.Registry) (*Error, error) {
		if containsValue(kind, members, v) == wantMember {
			return nil, nil
		}
		return errPtr(code, map[string]any{"values": members}), nil
	})
	return nil
}

func (f *field) addSubsetCheck(path string, set []any) error {
	members, err := f.elem.castSet(path, set)
	if err != nil {
		return err
	}
	kind := f.elem.kind
	f.checks = append(f.checks, func(v any, _ format.Registry) (*Error, error) {
		elems, ok := v.([]any)
		if !ok {
			return nil, nil
		}
		for _, el := range elems {
			if el == nil {
				continue
			}
			if !containsValue(kind, members, el) {
				return errPtr(CodeSubset, map[string]any{"values": members}), nil
			}
		}
		return nil, nil
	})
	return nil
}

func (f *field) addFormatCheck(path string, arg any) error {
	name, ok := arg.(string)
	if !ok || name == "" {
		return schemaErrf(path, "format requires a pattern name, got %v", arg)
	}
	f.checks = append(f.checks, func(v any, reg format.Registry) (*Error, error) {
		s, ok := v.(string)
		if !ok {
			return nil, nil
		}
		re, err := reg.Resolve(name)
		if err != nil {
			return nil, &SchemaError{Field: path, Reason: "unresolvable format pattern", Cause: err}
		}
		if re.MatchString(s) {
			return nil, nil
		}
		return errPtr(CodeFormat, map[string]any{"format": name}), nil
	})
	return nil
}

// castSet coerces every member of a constraint set through the field's cast,
// so runtime membership checks compare like with like.
func (f *field) castSet(path string, set []any) ([]any, error) {
	members := make([]any, len(set))
	for i, v := range set {
		m, ok := f.cast(v)
		if !ok {
			return nil, schemaErrf(path, "set member %v is not a valid %s", v, f.kind)
		}
		members[i] = m
	}
	return members, nil
}

func errPtr(code string, params map[string]any) *Error {
	e := newError(code, params)
	return &e
}

func compareNumeric(kind Kind, v, bound any) (int, bool) {
	switch kind {
	case KindInteger:
		a, ok1 := v.(int64)
		b, ok2 := bound.(int64)
		if !ok1 || !ok2 {
			return 0, false
		}
		switch {
		case a < b:
			return -1, true
		case a > b:
			return 1, true
		}
		return 0, true
	case KindFloat:
		a, ok1 := v.(float64)
		b, ok2 := bound.(float64)
		if !ok1 || !ok2 {
			return 0, false
		}
		switch {
		case a < b:
			return -1, true
		case a > b:
			return 1, true
		}
		return 0, true
	case KindDecimal:
		a, ok1 := v.(decimal.Decimal)
		b, ok2 := bound.(decimal.Decimal)
		if !ok1 || !ok2 {
			return 0, false
		}
		return a.Cmp(b), true
	}
	return 0, false
}

func valueEqual(kind Kind, a, b any) bool {
	if isNumericKind(kind) {
		c, ok := compareNumeric(kind, a, b)
		return ok && c == 0
	}
	if at, ok := a.(time.Time); ok {
		bt, ok := b.(time.Time)
		return ok && at.Equal(bt)
	}
	return a == b
}

func containsValue(kind Kind, members []any, v any) bool {
	for _, m := range members {
		if valueEqual(kind, v, m) {
			return true
		}
	}
	return false
}
