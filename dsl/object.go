// Package dsl provides a fluent builder for authoring castform schemas. It is
// purely syntactic convenience: Build hands the assembled Definition to
// castform.Compile, and the engine never sees the builder itself.
package dsl

import (
	"github.com/castform/castform"
)

// FieldBuilder assembles the rule set for a single field.
type FieldBuilder interface {
	Rules() castform.Rules
}

type objectBuilder struct {
	def castform.Definition
}

type fieldStep struct {
	b    *objectBuilder
	name string
}

// Object creates a new schema builder.
func Object() *objectBuilder {
	return &objectBuilder{def: castform.Definition{}}
}

// Field registers a field with its rule builder.
func (b *objectBuilder) Field(name string, fb FieldBuilder) *fieldStep {
	b.def[name] = fb.Rules()
	return &fieldStep{b: b, name: name}
}

// Require marks one or more fields as required.
func (b *objectBuilder) Require(names ...string) *objectBuilder {
	for _, n := range names {
		r := b.def[n]
		r.Required = true
		b.def[n] = r
	}
	return b
}

// Definition returns the assembled authoring form.
func (b *objectBuilder) Definition() castform.Definition {
	def := make(castform.Definition, len(b.def))
	for k, v := range b.def {
		def[k] = v
	}
	return def
}

// Build compiles the assembled definition.
func (b *objectBuilder) Build() (*castform.Schema, error) {
	return castform.Compile(b.def)
}

// MustBuild is Build that panics on a SchemaError, for package-level schemas.
func (b *objectBuilder) MustBuild() *castform.Schema {
	return castform.MustCompile(b.def)
}

// Required marks the current field as required and returns the builder.
func (f *fieldStep) Required() *objectBuilder {
	return f.b.Require(f.name)
}

// Optional marks the current field as optional (the default) and returns the builder.
func (f *fieldStep) Optional() *objectBuilder {
	r := f.b.def[f.name]
	r.Required = false
	f.b.def[f.name] = r
	return f.b
}

func (f *fieldStep) Field(name string, fb FieldBuilder) *fieldStep { return f.b.Field(name, fb) }
func (f *fieldStep) Definition() castform.Definition               { return f.b.Definition() }
func (f *fieldStep) Build() (*castform.Schema, error)              { return f.b.Build() }
func (f *fieldStep) MustBuild() *castform.Schema                   { return f.b.MustBuild() }
