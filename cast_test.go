package castform_test

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/castform/castform"
)

func TestCast_IntegerFromLooseInput(t *testing.T) {
	s := castform.MustCompile(castform.Definition{"n": {Type: castform.KindInteger}})

	for _, tc := range []struct {
		in   any
		want int64
	}{
		{42, 42},
		{"42", 42},
		{float64(42), 42},
		{json.Number("42"), 42},
		{json.Number("42.0"), 42},
		{int32(-7), -7},
	} {
		changes := mustValidate(t, s, map[string]any{"n": tc.in})
		if changes["n"] != tc.want {
			t.Fatalf("cast %#v: expected %d, got %#v", tc.in, tc.want, changes["n"])
		}
	}

	for _, bad := range []any{"42.5", "abc", 42.5, json.Number("4e-2"), true} {
		tree := mustFail(t, s, map[string]any{"n": bad})
		if tree.Fields["n"].Errs[0].Code != castform.CodeInvalid {
			t.Fatalf("cast %#v: expected invalid, got %v", bad, tree)
		}
	}
}

func TestCast_FloatFromLooseInput(t *testing.T) {
	s := castform.MustCompile(castform.Definition{"x": {Type: castform.KindFloat}})
	for _, tc := range []struct {
		in   any
		want float64
	}{
		{1.5, 1.5},
		{"1.5", 1.5},
		{3, 3},
		{json.Number("2.25"), 2.25},
	} {
		changes := mustValidate(t, s, map[string]any{"x": tc.in})
		if changes["x"] != tc.want {
			t.Fatalf("cast %#v: expected %v, got %#v", tc.in, tc.want, changes["x"])
		}
	}
	mustFail(t, s, map[string]any{"x": "one point five"})
}

func TestCast_Decimal(t *testing.T) {
	s := castform.MustCompile(castform.Definition{"price": {Type: castform.KindDecimal}})
	changes := mustValidate(t, s, map[string]any{"price": json.Number("19.99")})
	d, ok := changes["price"].(decimal.Decimal)
	if !ok {
		t.Fatalf("expected decimal.Decimal, got %T", changes["price"])
	}
	if want := decimal.RequireFromString("19.99"); !d.Equal(want) {
		t.Fatalf("expected %v, got %v", want, d)
	}
	mustFail(t, s, map[string]any{"price": "19,99"})
}

func TestCast_DecimalComparisonKeepsPrecision(t *testing.T) {
	s := castform.MustCompile(castform.Definition{
		"price": {Type: castform.KindDecimal, Constraints: []castform.Constraint{castform.GreaterThan("1.50")}},
	})
	mustValidate(t, s, map[string]any{"price": "1.51"})
	tree := mustFail(t, s, map[string]any{"price": "1.50"})
	if tree.Fields["price"].Errs[0].Code != castform.CodeGreaterThan {
		t.Fatalf("expected greater_than failure, got %v", tree)
	}
}

func TestCast_BoolFromStrings(t *testing.T) {
	s := castform.MustCompile(castform.Definition{"ok": {Type: castform.KindBool}})
	for in, want := range map[string]bool{"true": true, "1": true, "false": false, "0": false} {
		changes := mustValidate(t, s, map[string]any{"ok": in})
		if changes["ok"] != want {
			t.Fatalf("cast %q: expected %v, got %v", in, want, changes["ok"])
		}
	}
	mustFail(t, s, map[string]any{"ok": "yes"})
}

func TestCast_DateAndTime(t *testing.T) {
	s := castform.MustCompile(castform.Definition{
		"born": {Type: castform.KindDate},
		"at":   {Type: castform.KindTime},
	})
	changes := mustValidate(t, s, map[string]any{"born": "1985-04-12", "at": "13:37:01"})

	born := changes["born"].(time.Time)
	if born.Year() != 1985 || born.Month() != time.April || born.Day() != 12 {
		t.Fatalf("unexpected date: %v", born)
	}
	at := changes["at"].(time.Time)
	if at.Hour() != 13 || at.Minute() != 37 || at.Second() != 1 {
		t.Fatalf("unexpected time: %v", at)
	}

	// A time.Time date input is truncated to midnight.
	stamp := time.Date(2020, 6, 1, 15, 4, 5, 0, time.UTC)
	changes = mustValidate(t, s, map[string]any{"born": stamp})
	if got := changes["born"].(time.Time); got.Hour() != 0 || got.Day() != 1 {
		t.Fatalf("expected midnight truncation, got %v", got)
	}

	mustFail(t, s, map[string]any{"born": "12.04.1985"})
	mustFail(t, s, map[string]any{"at": "quarter past nine"})
}

func TestCast_UntypedMapNormalizesKeys(t *testing.T) {
	s := castform.MustCompile(castform.Definition{"meta": {Type: castform.KindMap}})
	changes := mustValidate(t, s, map[string]any{"meta": map[any]any{
		castform.Atom("a"): 1,
		"b":                2,
	}})
	want := map[string]any{"a": 1, "b": 2}
	if !reflect.DeepEqual(changes["meta"], want) {
		t.Fatalf("expected %v, got %v", want, changes["meta"])
	}

	mustFail(t, s, map[string]any{"meta": "not a map"})
}

func TestCast_TypedSliceInput(t *testing.T) {
	s := castform.MustCompile(castform.Definition{
		"tags": {Type: castform.KindArray, Elem: &castform.Rules{Type: castform.KindString}},
	})
	changes := mustValidate(t, s, map[string]any{"tags": []string{"a", "b"}})
	want := []any{"a", "b"}
	if !reflect.DeepEqual(changes["tags"], want) {
		t.Fatalf("expected %v, got %v", want, changes["tags"])
	}
}

func TestCast_StringRejectsNonStrings(t *testing.T) {
	s := castform.MustCompile(castform.Definition{"name": {}})
	mustFail(t, s, map[string]any{"name": 1})
	mustFail(t, s, map[string]any{"name": true})
}
