package castform

import (
	"encoding/json"
	"math"
	"reflect"
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// dateLayout and the time layouts are the wire formats accepted for the Date
// and Time kinds. time.Time values pass through unchanged (Date truncates to
// midnight), so a successful validation output re-validates to itself.
const dateLayout = "2006-01-02"

var timeLayouts = []string{"15:04:05", "15:04"}

// lookup fetches the raw value for a logical field name. Input maps may key
// by string or Atom; the string key wins when both are present.
func lookup(input any, name string) (any, bool) {
	switch m := input.(type) {
	case map[string]any:
		v, ok := m[name]
		return v, ok
	case map[Atom]any:
		v, ok := m[Atom(name)]
		return v, ok
	case map[any]any:
		if v, ok := m[name]; ok {
			return v, true
		}
		v, ok := m[Atom(name)]
		return v, ok
	}
	return nil, false
}

func isMapInput(v any) bool {
	switch v.(type) {
	case map[string]any, map[Atom]any, map[any]any:
		return true
	}
	return false
}

// inputKeys lists the string rendering of every key in the input map, sorted
// for deterministic unknown-key reporting.
func inputKeys(input any) []string {
	seen := map[string]struct{}{}
	switch m := input.(type) {
	case map[string]any:
		for k := range m {
			seen[k] = struct{}{}
		}
	case map[Atom]any:
		for k := range m {
			seen[string(k)] = struct{}{}
		}
	case map[any]any:
		for k := range m {
			switch kk := k.(type) {
			case string:
				seen[kk] = struct{}{}
			case Atom:
				seen[string(kk)] = struct{}{}
			}
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// normalizeMap converts any accepted map form to map[string]any. Atom keys
// are stringified; when a string key and an Atom key collide, the string key
// wins. Keys of any other type reject the whole value.
func normalizeMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[Atom]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[string(k)] = val
		}
		return out, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			if kk, ok := k.(Atom); ok {
				if _, taken := m[string(kk)]; taken {
					continue
				}
				out[string(kk)] = val
			}
		}
		for k, val := range m {
			switch kk := k.(type) {
			case string:
				out[kk] = val
			case Atom:
				// handled above
			default:
				return nil, false
			}
		}
		return out, true
	}
	return nil, false
}

// cast coerces a non-nil raw value into the field's concrete type.
func (f *field) cast(v any) (any, bool) {
	switch f.kind {
	case KindString:
		s, ok := v.(string)
		return s, ok
	case KindInteger:
		return castInt(v)
	case KindFloat:
		return castFloat(v)
	case KindDecimal:
		return castDecimal(v)
	case KindBool:
		return castBool(v)
	case KindDate:
		return castDate(v)
	case KindTime:
		return castTime(v)
	case KindEnum:
		return f.castEnum(v)
	case KindMap:
		return f.castMap(v)
	case KindArray:
		return f.castArray(v)
	}
	return nil, false
}

func castInt(v any) (any, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), n <= math.MaxInt64
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), n <= math.MaxInt64
	case float32:
		return floatToInt(float64(n))
	case float64:
		return floatToInt(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		if fv, err := n.Float64(); err == nil {
			return floatToInt(fv)
		}
		return nil, false
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		return i, err == nil
	}
	return nil, false
}

func floatToInt(f float64) (any, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return nil, false
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return nil, false
	}
	return int64(f), true
}

func castFloat(v any) (any, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		fv, err := n.Float64()
		return fv, err == nil
	case string:
		fv, err := strconv.ParseFloat(n, 64)
		return fv, err == nil
	}
	return nil, false
}

func castDecimal(v any) (any, bool) {
	switch n := v.(type) {
	case decimal.Decimal:
		return n, true
	case string:
		d, err := decimal.NewFromString(n)
		return d, err == nil
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		return d, err == nil
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int32:
		return decimal.NewFromInt32(n), true
	case int64:
		return decimal.NewFromInt(n), true
	case float32:
		return decimal.NewFromFloat32(n), true
	case float64:
		return decimal.NewFromFloat(n), true
	}
	return nil, false
}

func castBool(v any) (any, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		switch b {
		case "true", "1":
			return true, true
		case "false", "0":
			return false, true
		}
	}
	return nil, false
}

func castDate(v any) (any, bool) {
	switch d := v.(type) {
	case time.Time:
		y, m, day := d.Date()
		return time.Date(y, m, day, 0, 0, 0, 0, d.Location()), true
	case string:
		t, err := time.Parse(dateLayout, d)
		return t, err == nil
	}
	return nil, false
}

func castTime(v any) (any, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		for _, layout := range timeLayouts {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed, true
			}
		}
	}
	return nil, false
}

func (f *field) castEnum(v any) (any, bool) {
	var a Atom
	switch s := v.(type) {
	case Atom:
		a = s
	case string:
		a = Atom(s)
	default:
		return nil, false
	}
	for _, allowed := range f.values {
		if a == allowed {
			return a, true
		}
	}
	return nil, false
}

// castMap keeps the raw map form when nested properties will recurse into it;
// an untyped map is normalized to map[string]any immediately.
func (f *field) castMap(v any) (any, bool) {
	if f.props != nil {
		if !isMapInput(v) {
			return nil, false
		}
		return v, true
	}
	return normalizeMap(v)
}

func (f *field) castArray(v any) (any, bool) {
	elems, ok := sliceElems(v)
	if !ok {
		return nil, false
	}
	out := make([]any, len(elems))
	for i, el := range elems {
		if el == nil {
			out[i] = nil
			continue
		}
		cv, ok := f.elem.cast(el)
		if !ok {
			return nil, false
		}
		out[i] = cv
	}
	return out, true
}

func sliceElems(v any) ([]any, bool) {
	if s, ok := v.([]any); ok {
		return s, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
