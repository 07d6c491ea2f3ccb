package dsl_test

import (
	"context"
	"reflect"
	"testing"

	"github.com/castform/castform"
	"github.com/castform/castform/dsl"
)

func TestObject_BuildsWorkingSchema(t *testing.T) {
	s := dsl.Object().
		Field("name", dsl.String().Squish().Is(4)).Required().
		Field("age", dsl.Integer().GreaterThanOrEqualTo(0)).
		MustBuild()

	changes, err := s.Validate(context.Background(), map[string]any{"name": " Jane ", "age": "3"})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if changes["name"] != "Jane" || changes["age"] != int64(3) {
		t.Fatalf("unexpected changes: %#v", changes)
	}

	_, err = s.Validate(context.Background(), map[string]any{"age": -1})
	tree, ok := castform.AsTree(err)
	if !ok {
		t.Fatalf("expected error tree, got %v", err)
	}
	got := tree.MessageMap()
	want := map[string]any{
		"name": []string{"can't be blank"},
		"age":  []string{"must be greater than or equal to 0"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestNestedBuilders(t *testing.T) {
	s := dsl.Object().
		Field("home", dsl.MapOf(dsl.Object().
			Field("city", dsl.String().Min(1)).Required())).
		Field("dogs", dsl.ArrayOf(dsl.Object().
			Field("name", dsl.String()).
			Field("age", dsl.Integer()))).
		Field("tags", dsl.Array(dsl.String()).Subset("a", "b", "c")).
		MustBuild()

	changes, err := s.Validate(context.Background(), map[string]any{
		"home": map[string]any{"city": "Kyoto"},
		"dogs": []any{map[string]any{"name": "Rex", "age": 2}},
		"tags": []any{"a", "c"},
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	home := changes["home"].(map[string]any)
	if home["city"] != "Kyoto" {
		t.Fatalf("unexpected nested changes: %#v", changes)
	}

	_, err = s.Validate(context.Background(), map[string]any{
		"dogs": []any{map[string]any{"age": "old"}},
	})
	tree, ok := castform.AsTree(err)
	if !ok {
		t.Fatalf("expected error tree, got %v", err)
	}
	if tree.Fields["dogs"].Items[0] == nil {
		t.Fatalf("expected error tree for first element")
	}
}

func TestEnumAndValueBuilders(t *testing.T) {
	s := dsl.Object().
		Field("role", dsl.Enum("admin", "user")).
		Field("active", dsl.Bool()).
		Field("born", dsl.Date()).
		MustBuild()

	changes, err := s.Validate(context.Background(), map[string]any{
		"role":   "user",
		"active": "true",
		"born":   "2001-09-09",
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if changes["role"] != castform.Atom("user") || changes["active"] != true {
		t.Fatalf("unexpected changes: %#v", changes)
	}
}

func TestBuild_SurfacesSchemaErrors(t *testing.T) {
	_, err := dsl.Object().
		Field("n", dsl.Integer().Min("low")).
		Build()
	if _, ok := castform.AsSchemaError(err); !ok {
		t.Fatalf("expected SchemaError, got %v", err)
	}
}

func TestDefinition_ReturnsCopy(t *testing.T) {
	b := dsl.Object().Field("a", dsl.String()).Optional()
	def := b.Definition()
	def["b"] = castform.Rules{}
	if len(b.Definition()) != 1 {
		t.Fatalf("mutating the returned definition must not affect the builder")
	}
}
