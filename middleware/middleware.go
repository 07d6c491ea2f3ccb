// Package middleware adapts castform validation to net/http JSON boundaries:
// the wrapped handler only runs when the request body passed the schema, and
// the typed changes travel in the request context.
package middleware

import (
	"context"
	"net/http"

	gojson "github.com/goccy/go-json"

	"github.com/castform/castform"
)

// ctxKeyChanges is a typed context key for storing the validated changes.
type ctxKeyChanges struct{}

// ContextWithChanges attaches validated changes to the context.
func ContextWithChanges(ctx context.Context, changes map[string]any) context.Context {
	return context.WithValue(ctx, ctxKeyChanges{}, changes)
}

// ChangesFromContext retrieves the validated changes stored by ValidateJSON.
func ChangesFromContext(ctx context.Context) (map[string]any, bool) {
	v, ok := ctx.Value(ctxKeyChanges{}).(map[string]any)
	return v, ok
}

// ErrorPayload shapes an error tree for JSON responses.
func ErrorPayload(tree *castform.ErrorTree) map[string]any {
	return map[string]any{"errors": tree.MessageMap()}
}

// ValidateJSON decodes the request body as JSON, validates it against s, and
// invokes next with the typed changes stored in the request context. A body
// that fails validation is answered with 422 and the rendered error tree; a
// body that is not a JSON object with 400.
func ValidateJSON(s *castform.Schema, next http.Handler, opts ...castform.Option) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		input, err := castform.DecodeJSON(r.Body)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "malformed JSON body"})
			return
		}
		changes, err := s.Validate(r.Context(), input, opts...)
		if err != nil {
			if tree, ok := castform.AsTree(err); ok {
				writeJSON(w, http.StatusUnprocessableEntity, ErrorPayload(tree))
				return
			}
			// SchemaError or unresolvable pattern: a server-side mistake.
			writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "schema configuration error"})
			return
		}
		next.ServeHTTP(w, r.WithContext(ContextWithChanges(r.Context(), changes)))
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = gojson.NewEncoder(w).Encode(payload)
}
