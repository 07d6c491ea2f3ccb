package recase_test

import (
	"reflect"
	"testing"

	"github.com/castform/castform/recase"
)

func TestToSnake(t *testing.T) {
	cases := map[string]string{
		"firstName": "first_name",
		"FirstName": "first_name",
		"userID":    "user_id",
		"HTTPCode":  "http_code",
		"already":   "already",
		"a":         "a",
	}
	for in, want := range cases {
		if got := recase.ToSnake(in); got != want {
			t.Fatalf("ToSnake(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestToCamel(t *testing.T) {
	cases := map[string]string{
		"first_name": "firstName",
		"user_id":    "userId",
		"already":    "already",
		"_private":   "_private",
	}
	for in, want := range cases {
		if got := recase.ToCamel(in); got != want {
			t.Fatalf("ToCamel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSnakeKeys_Deep(t *testing.T) {
	in := map[string]any{
		"firstName": "Jane",
		"homeTown":  map[string]any{"zipCode": "12345"},
		"petList":   []any{map[string]any{"petName": "Rex"}},
	}
	want := map[string]any{
		"first_name": "Jane",
		"home_town":  map[string]any{"zip_code": "12345"},
		"pet_list":   []any{map[string]any{"pet_name": "Rex"}},
	}
	if got := recase.SnakeKeys(in); !reflect.DeepEqual(got, want) {
		t.Fatalf("SnakeKeys = %#v, want %#v", got, want)
	}
	// Input is left untouched.
	if _, ok := in["firstName"]; !ok {
		t.Fatalf("input map was mutated")
	}
}

func TestCamelKeys_Deep(t *testing.T) {
	in := map[string]any{"first_name": map[string]any{"nick_name": "J"}}
	want := map[string]any{"firstName": map[string]any{"nickName": "J"}}
	if got := recase.CamelKeys(in); !reflect.DeepEqual(got, want) {
		t.Fatalf("CamelKeys = %#v, want %#v", got, want)
	}
}
