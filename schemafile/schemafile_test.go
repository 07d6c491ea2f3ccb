package schemafile_test

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/castform/castform"
	"github.com/castform/castform/schemafile"
)

const userYAML = `
name:
  type: string
  required: true
  squish: true
  min: 2
age:
  type: integer
  greater_than_or_equal_to: 0
role:
  type: enum
  values: [admin, user]
email:
  format: email
dogs:
  type: array
  properties:
    name: {type: string, required: true}
    age:  {type: integer, min: 0}
tags:
  type: array
  elem: {type: string}
  subset: [a, b, c]
`

func TestLoad_FullDocument(t *testing.T) {
	s, err := schemafile.Load([]byte(userYAML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	changes, err := s.Validate(context.Background(), map[string]any{
		"name":  "  Jane   Doe ",
		"age":   3,
		"role":  "admin",
		"email": "jane@example.com",
		"dogs":  []any{map[string]any{"name": "Rex", "age": "2"}},
		"tags":  []any{"a", "b"},
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if changes["name"] != "Jane Doe" || changes["age"] != int64(3) {
		t.Fatalf("unexpected changes: %#v", changes)
	}
	if changes["role"] != castform.Atom("admin") {
		t.Fatalf("expected Atom role, got %#v", changes["role"])
	}

	_, err = s.Validate(context.Background(), map[string]any{
		"name": "J",
		"dogs": []any{map[string]any{"age": -1}},
	})
	tree, ok := castform.AsTree(err)
	if !ok {
		t.Fatalf("expected error tree, got %v", err)
	}
	got := tree.MessageMap()
	want := map[string]any{
		"name": []string{"should be at least 2 character(s)"},
		"dogs": []any{map[string]any{
			"name": []string{"can't be blank"},
			"age":  []string{"must be greater than or equal to 0"},
		}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestLoad_UnknownType(t *testing.T) {
	_, err := schemafile.Load([]byte("x: {type: varchar}\n"))
	if err == nil {
		t.Fatalf("expected error for unknown type")
	}
}

func TestLoad_SchemaErrorPropagates(t *testing.T) {
	_, err := schemafile.Load([]byte("role: {type: enum}\n"))
	if _, ok := castform.AsSchemaError(err); !ok {
		t.Fatalf("expected SchemaError, got %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.yaml")
	if err := os.WriteFile(path, []byte("name: {required: true}\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	s, err := schemafile.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if _, err := s.Validate(context.Background(), map[string]any{}); err == nil {
		t.Fatalf("expected required failure")
	}

	if _, err := schemafile.LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
