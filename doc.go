// Package castform validates untrusted, loosely-typed map input (HTTP request
// parameters, decoded JSON, YAML) against a declarative schema, producing
// either a strongly-typed map or a structured error tree that mirrors the
// schema's shape.
//
// Design policy:
//   - Keep only public APIs in the root package.
//   - Place the builder DSL under dsl/, message rendering under i18n/, pattern
//     configuration under format/, HTTP glue under middleware/, and the CLI
//     under cmd/castform.
//   - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	s := castform.MustCompile(castform.Definition{
//		"name": {Type: castform.KindString, Required: true, Constraints: []castform.Constraint{castform.Squish(), castform.Min(2)}},
//		"age":  {Type: castform.KindInteger, Constraints: []castform.Constraint{castform.GreaterThanOrEqualTo(0)}},
//	})
//
//	changes, err := s.Validate(ctx, input)
//	if tree, ok := castform.AsTree(err); ok {
//		respond(tree.MessageMap())
//	}
package castform
