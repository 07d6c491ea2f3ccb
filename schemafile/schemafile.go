// Package schemafile loads castform schema definitions from YAML documents,
// so schemas can live in configuration next to the services that use them.
//
// A document maps field names to rule sets:
//
//	name:
//	  type: string
//	  required: true
//	  squish: true
//	  is: 4
//	dogs:
//	  type: array
//	  properties:
//	    name: {type: string, required: true}
//	    age:  {type: integer, min: 0}
package schemafile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/castform/castform"
)

type fieldDef struct {
	Type       string               `yaml:"type"`
	Required   bool                 `yaml:"required"`
	Elem       *fieldDef            `yaml:"elem"`
	Values     []string             `yaml:"values"`
	Properties map[string]*fieldDef `yaml:"properties"`

	Trim   bool   `yaml:"trim"`
	Squish bool   `yaml:"squish"`
	Format string `yaml:"format"`

	Is                   any   `yaml:"is"`
	EqualTo              any   `yaml:"equal_to"`
	NotEqualTo           any   `yaml:"not_equal_to"`
	Min                  any   `yaml:"min"`
	Max                  any   `yaml:"max"`
	GreaterThan          any   `yaml:"greater_than"`
	LessThan             any   `yaml:"less_than"`
	GreaterThanOrEqualTo any   `yaml:"greater_than_or_equal_to"`
	LessThanOrEqualTo    any   `yaml:"less_than_or_equal_to"`
	Equals               any   `yaml:"equals"`
	Included             []any `yaml:"included"`
	Excluded             []any `yaml:"excluded"`
	Subset               []any `yaml:"subset"`
}

var kinds = map[string]castform.Kind{
	"":        castform.KindString,
	"string":  castform.KindString,
	"integer": castform.KindInteger,
	"float":   castform.KindFloat,
	"decimal": castform.KindDecimal,
	"boolean": castform.KindBool,
	"bool":    castform.KindBool,
	"date":    castform.KindDate,
	"time":    castform.KindTime,
	"enum":    castform.KindEnum,
	"map":     castform.KindMap,
	"array":   castform.KindArray,
}

// Definition parses a YAML document into the schema authoring form.
func Definition(data []byte) (castform.Definition, error) {
	var doc map[string]*fieldDef
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("schemafile: parse yaml: %w", err)
	}
	def := make(castform.Definition, len(doc))
	for name, fd := range doc {
		if fd == nil {
			fd = &fieldDef{}
		}
		r, err := fd.rules(name)
		if err != nil {
			return nil, err
		}
		def[name] = r
	}
	return def, nil
}

// Load parses and compiles a YAML schema document.
func Load(data []byte) (*castform.Schema, error) {
	def, err := Definition(data)
	if err != nil {
		return nil, err
	}
	return castform.Compile(def)
}

// LoadFile reads and compiles a YAML schema file.
func LoadFile(path string) (*castform.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schemafile: read %s: %w", path, err)
	}
	return Load(data)
}

func (d *fieldDef) rules(name string) (castform.Rules, error) {
	kind, ok := kinds[d.Type]
	if !ok {
		return castform.Rules{}, fmt.Errorf("schemafile: field %s: unknown type %q", name, d.Type)
	}
	r := castform.Rules{Type: kind, Required: d.Required}

	if len(d.Values) > 0 {
		r.Values = make([]any, len(d.Values))
		for i, v := range d.Values {
			r.Values[i] = v
		}
	}
	if d.Elem != nil {
		er, err := d.Elem.rules(name)
		if err != nil {
			return castform.Rules{}, err
		}
		r.Elem = &er
	}
	if d.Properties != nil {
		props := make(castform.Definition, len(d.Properties))
		for pname, pd := range d.Properties {
			if pd == nil {
				pd = &fieldDef{}
			}
			pr, err := pd.rules(name + "." + pname)
			if err != nil {
				return castform.Rules{}, err
			}
			props[pname] = pr
		}
		r.Properties = props
	}

	// Normalization first, then bounds, membership, and format, matching the
	// order the engine evaluates them.
	if d.Trim {
		r.Constraints = append(r.Constraints, castform.Trim())
	}
	if d.Squish {
		r.Constraints = append(r.Constraints, castform.Squish())
	}
	if d.Is != nil {
		r.Constraints = append(r.Constraints, castform.Is(d.Is))
	}
	if d.EqualTo != nil {
		r.Constraints = append(r.Constraints, castform.EqualTo(d.EqualTo))
	}
	if d.NotEqualTo != nil {
		r.Constraints = append(r.Constraints, castform.NotEqualTo(d.NotEqualTo))
	}
	if d.Min != nil {
		r.Constraints = append(r.Constraints, castform.Min(d.Min))
	}
	if d.Max != nil {
		r.Constraints = append(r.Constraints, castform.Max(d.Max))
	}
	if d.GreaterThan != nil {
		r.Constraints = append(r.Constraints, castform.GreaterThan(d.GreaterThan))
	}
	if d.LessThan != nil {
		r.Constraints = append(r.Constraints, castform.LessThan(d.LessThan))
	}
	if d.GreaterThanOrEqualTo != nil {
		r.Constraints = append(r.Constraints, castform.GreaterThanOrEqualTo(d.GreaterThanOrEqualTo))
	}
	if d.LessThanOrEqualTo != nil {
		r.Constraints = append(r.Constraints, castform.LessThanOrEqualTo(d.LessThanOrEqualTo))
	}
	if d.Equals != nil {
		r.Constraints = append(r.Constraints, castform.Equals(d.Equals))
	}
	if len(d.Included) > 0 {
		r.Constraints = append(r.Constraints, castform.Included(d.Included...))
	}
	if len(d.Excluded) > 0 {
		r.Constraints = append(r.Constraints, castform.Excluded(d.Excluded...))
	}
	if len(d.Subset) > 0 {
		r.Constraints = append(r.Constraints, castform.Subset(d.Subset...))
	}
	if d.Format != "" {
		r.Constraints = append(r.Constraints, castform.Format(d.Format))
	}
	return r, nil
}
