package castform

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Bind decodes a validated changes map into target, which must be a pointer
// to a struct. Field names match `json` tags first, falling back to the
// struct field name. Typed values produced by Validate (int64, float64,
// decimal.Decimal, time.Time, Atom) decode into fields of the corresponding
// or convertible types.
func Bind(changes map[string]any, target any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  target,
		TagName: "json",
	})
	if err != nil {
		return fmt.Errorf("castform: bind: %w", err)
	}
	if err := dec.Decode(changes); err != nil {
		return fmt.Errorf("castform: bind: %w", err)
	}
	return nil
}
