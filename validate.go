package castform

import (
	"context"
	"fmt"
	"strings"
)

// Validate walks the schema against the input map and returns the typed
// changes on success. On validation failure the returned error is an
// *ErrorTree mirroring the schema's shape (extract it with AsTree); a
// *SchemaError escapes only for programmer mistakes such as an unresolvable
// format pattern.
//
// Input maps may be map[string]any, map[Atom]any, or map[any]any; a string
// key takes precedence over an Atom key for the same logical field. A field
// explicitly present with a nil value is retained as nil in the changes; an
// absent optional field is simply omitted.
//
// The engine is pure: the schema and input are never mutated, and concurrent
// Validate calls on the same Schema are safe.
func (s *Schema) Validate(ctx context.Context, input any, opts ...Option) (map[string]any, error) {
	o := buildOptions(opts)
	if !isMapInput(input) {
		return nil, fmt.Errorf("castform: input must be a map, got %T", input)
	}
	changes, tree, err := s.run(ctx, input, o)
	if err != nil {
		return nil, err
	}
	if !tree.Empty() {
		return nil, tree
	}
	return changes, nil
}

// run executes one engine invocation: cast, required check, constraints, and
// nested recursion, in that order. Each recursive call gets a fresh changes
// map and error tree; sub-results are merged bottom-up.
func (s *Schema) run(ctx context.Context, input any, o validateOpt) (map[string]any, *ErrorTree, error) {
	changes := make(map[string]any, len(s.keys))
	tree := newErrorTree()

	// Cast every field present in the input.
	for _, name := range s.keys {
		f := s.fields[name]
		v, present := lookup(input, name)
		if !present {
			continue
		}
		if v == nil {
			changes[name] = nil
			continue
		}
		cv, ok := f.cast(v)
		if !ok {
			tree.add(name, newError(CodeInvalid, nil))
			continue
		}
		if f.kind == KindString {
			sv := cv.(string)
			if f.squish {
				sv = strings.Join(strings.Fields(sv), " ")
			} else if f.trim {
				sv = strings.TrimSpace(sv)
			}
			cv = sv
		}
		changes[name] = cv
	}

	// Required fields must have made it into changes.
	for _, name := range s.keys {
		if !s.fields[name].required {
			continue
		}
		if _, ok := changes[name]; !ok {
			tree.add(name, newError(CodeRequired, nil))
		}
	}

	// Constraints on scalar fields, recursion into nested structures. An
	// explicit null skips both.
	for _, name := range s.keys {
		f := s.fields[name]
		cv, ok := changes[name]
		if !ok || cv == nil {
			continue
		}
		switch {
		case f.kind == KindMap && f.props != nil:
			sub, subTree, err := f.props.run(ctx, cv, o)
			if err != nil {
				return nil, nil, err
			}
			if subTree.Empty() {
				changes[name] = sub
			} else {
				delete(changes, name)
				tree.setTree(name, subTree)
			}
		case f.kind == KindArray && f.elem.kind == KindMap && f.elem.props != nil:
			elems := cv.([]any)
			typed := make([]any, len(elems))
			items := make([]*ErrorTree, len(elems))
			invalid := false
			for i, el := range elems {
				if el == nil {
					continue
				}
				sub, st, err := f.elem.props.run(ctx, el, o)
				if err != nil {
					return nil, nil, err
				}
				if st.Empty() {
					typed[i] = sub
				} else {
					items[i] = st
					invalid = true
				}
			}
			if invalid {
				delete(changes, name)
				tree.setItems(name, items)
			} else {
				changes[name] = typed
			}
		default:
			for _, chk := range f.checks {
				e, err := chk(cv, o.patterns)
				if err != nil {
					return nil, nil, err
				}
				if e != nil {
					tree.add(name, *e)
				}
			}
		}
	}

	if o.unknown == UnknownStrict {
		for _, k := range inputKeys(input) {
			if _, known := s.fields[k]; !known {
				tree.add(k, newError(CodeUnknownKey, nil))
			}
		}
	}
	return changes, tree, nil
}
