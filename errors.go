package castform

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Error codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalid            = "invalid"
	CodeRequired           = "required"
	CodeWrongLength        = "wrong_length"
	CodeTooShort           = "too_short"
	CodeTooLong            = "too_long"
	CodeEqualTo            = "equal_to"
	CodeNotEqualTo         = "not_equal_to"
	CodeGreaterThan        = "greater_than"
	CodeGreaterThanOrEqual = "greater_than_or_equal_to"
	CodeLessThan           = "less_than"
	CodeLessThanOrEqual    = "less_than_or_equal_to"
	CodeInclusion          = "inclusion"
	CodeExclusion          = "exclusion"
	CodeSubset             = "subset"
	CodeFormat             = "format"
	CodeUnknownKey         = "unknown_key"
)

// Error is a single field-level validation failure.
type Error struct {
	Code    string // One of the codes listed above.
	Message string
	// Params carries structured parameters (e.g., {"count": 4}) so a
	// translation layer can localize the failure without parsing prose.
	Params map[string]any
}

// FieldErrors holds the errors recorded for one field. Exactly one of the
// three members is populated: Errs for scalar fields, Tree for map fields,
// Items for array-of-map fields. A nil entry in Items marks a valid element.
type FieldErrors struct {
	Errs  []Error
	Tree  *ErrorTree
	Items []*ErrorTree
}

// ErrorTree aggregates per-field errors, mirroring the schema's structural
// shape. It implements error so Validate can return it directly.
type ErrorTree struct {
	Fields map[string]*FieldErrors
}

func newErrorTree() *ErrorTree { return &ErrorTree{Fields: map[string]*FieldErrors{}} }

// Empty reports whether the tree holds no errors at any depth.
func (t *ErrorTree) Empty() bool {
	return t == nil || len(t.Fields) == 0
}

func (t *ErrorTree) add(field string, e Error) {
	fe := t.Fields[field]
	if fe == nil {
		fe = &FieldErrors{}
		t.Fields[field] = fe
	}
	fe.Errs = append(fe.Errs, e)
}

func (t *ErrorTree) setTree(field string, sub *ErrorTree) {
	t.Fields[field] = &FieldErrors{Tree: sub}
}

func (t *ErrorTree) setItems(field string, items []*ErrorTree) {
	t.Fields[field] = &FieldErrors{Items: items}
}

// Error summarizes the first few leaf errors as "code at /path".
func (t *ErrorTree) Error() string {
	if t.Empty() {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := 0
	t.walk("", func(path string, e Error) {
		if n < maxShown {
			if n > 0 {
				b.WriteString("; ")
			}
			fmt.Fprintf(b, "%s at %s", e.Code, path)
		}
		n++
	})
	if n > maxShown {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// walk visits every leaf error in sorted field order, passing the JSON
// Pointer path of the owning field.
func (t *ErrorTree) walk(base string, fn func(path string, e Error)) {
	if t == nil {
		return
	}
	names := make([]string, 0, len(t.Fields))
	for name := range t.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fe := t.Fields[name]
		path := base + "/" + escapePointer(name)
		switch {
		case fe.Tree != nil:
			fe.Tree.walk(path, fn)
		case fe.Items != nil:
			for i, item := range fe.Items {
				if item == nil {
					continue
				}
				item.walk(path+"/"+strconv.Itoa(i), fn)
			}
		default:
			for _, e := range fe.Errs {
				fn(path, e)
			}
		}
	}
}

// RenderFunc renders one leaf error for the field at the given JSON Pointer path.
type RenderFunc func(path string, e Error) string

// Render maps fn over every leaf error, grouping rendered messages by the
// owning field's JSON Pointer path (for example /dogs/1/age).
func (t *ErrorTree) Render(fn RenderFunc) map[string][]string {
	out := map[string][]string{}
	t.walk("", func(path string, e Error) {
		out[path] = append(out[path], fn(path, e))
	})
	return out
}

// Messages renders every leaf using the error's own message.
func (t *ErrorTree) Messages() map[string][]string {
	return t.Render(func(_ string, e Error) string { return e.Message })
}

// MessageMap produces the nested rendering of the tree: field names map to
// message lists, nested trees to nested maps, and array-of-map entries to a
// positional slice where valid elements appear as empty maps.
func (t *ErrorTree) MessageMap() map[string]any {
	out := make(map[string]any, len(t.Fields))
	for name, fe := range t.Fields {
		switch {
		case fe.Tree != nil:
			out[name] = fe.Tree.MessageMap()
		case fe.Items != nil:
			items := make([]any, len(fe.Items))
			for i, item := range fe.Items {
				if item == nil {
					items[i] = map[string]any{}
					continue
				}
				items[i] = item.MessageMap()
			}
			out[name] = items
		default:
			msgs := make([]string, len(fe.Errs))
			for i, e := range fe.Errs {
				msgs[i] = e.Message
			}
			out[name] = msgs
		}
	}
	return out
}

// AsTree extracts an *ErrorTree from an error using errors.As internally.
func AsTree(err error) (*ErrorTree, bool) {
	if err == nil {
		return nil, false
	}
	var t *ErrorTree
	if errors.As(err, &t) {
		return t, true
	}
	return nil, false
}

// escapePointer escapes '~' -> '~0' and '/' -> '~1' per RFC 6901.
func escapePointer(name string) string {
	return strings.ReplaceAll(strings.ReplaceAll(name, "~", "~0"), "/", "~1")
}

// SchemaError reports a malformed schema declaration: a programming mistake in
// the schema itself, never bad input. It is returned by Compile (and by
// Validate when a Format constraint names a pattern the registry cannot
// resolve) and is deliberately distinct from the validation ErrorTree.
type SchemaError struct {
	Field  string // JSON Pointer to the offending field ("" for the schema root).
	Reason string
	Cause  error
}

func (e *SchemaError) Error() string {
	if e.Field == "" {
		return "castform: schema: " + e.Reason
	}
	return "castform: schema: " + e.Field + ": " + e.Reason
}

func (e *SchemaError) Unwrap() error { return e.Cause }

// AsSchemaError extracts a *SchemaError from an error using errors.As internally.
func AsSchemaError(err error) (*SchemaError, bool) {
	if err == nil {
		return nil, false
	}
	var se *SchemaError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

func schemaErrf(field, fstr string, args ...any) *SchemaError {
	return &SchemaError{Field: field, Reason: fmt.Sprintf(fstr, args...)}
}
