package castform

import (
	"bytes"
	"fmt"
	"io"

	gojson "github.com/goccy/go-json"
)

// FromJSON decodes a JSON object into the map form Validate accepts. Numbers
// decode as json.Number so integer and decimal fields cast without float64
// precision loss.
func FromJSON(data []byte) (map[string]any, error) {
	return DecodeJSON(bytes.NewReader(data))
}

// DecodeJSON is FromJSON over an io.Reader (for example an HTTP request body).
func DecodeJSON(r io.Reader) (map[string]any, error) {
	dec := gojson.NewDecoder(r)
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("castform: decode json: %w", err)
	}
	return m, nil
}
