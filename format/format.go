// Package format resolves named patterns for Format constraints. The engine
// depends only on the Registry interface; callers may swap in their own
// resolver or extend the built-in defaults from configuration.
package format

import (
	"fmt"
	"os"
	"regexp"
	"sync"

	"gopkg.in/yaml.v3"
)

// Registry resolves a pattern name to a compiled regular expression.
type Registry interface {
	Resolve(name string) (*regexp.Regexp, error)
}

// Built-in pattern names.
const (
	UUID     = "uuid"
	Email    = "email"
	Password = "password"
	URL      = "url"
)

// Default pattern sources. RE2 has no lookahead, so the password pattern
// checks printable characters and minimum length only; callers wanting
// character-class composition rules should register their own pattern.
var defaultPatterns = map[string]string{
	UUID:     `^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`,
	Email:    `^[^\s@]+@[^\s@]+\.[^\s@]+$`,
	Password: `^[\x21-\x7e]{8,}$`,
	URL:      `^https?://[^\s/$.?#][^\s]*$`,
}

type registry struct {
	mu       sync.RWMutex
	patterns map[string]*regexp.Regexp
}

func (r *registry) Resolve(name string) (*regexp.Regexp, error) {
	r.mu.RLock()
	re, ok := r.patterns[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("format: unknown pattern %q", name)
	}
	return re, nil
}

var defaultOnce = sync.OnceValue(func() Registry {
	reg, err := New(nil)
	if err != nil {
		// Built-in sources are constants; compilation cannot fail.
		panic(err)
	}
	return reg
})

// Default returns the registry holding only the built-in patterns.
func Default() Registry { return defaultOnce() }

// New compiles a registry from the given name->pattern sources layered over
// the built-in defaults. Caller-supplied entries override built-ins of the
// same name.
func New(patterns map[string]string) (Registry, error) {
	r := &registry{patterns: make(map[string]*regexp.Regexp, len(defaultPatterns)+len(patterns))}
	for name, src := range defaultPatterns {
		re, err := regexp.Compile(src)
		if err != nil {
			return nil, fmt.Errorf("format: compile %q: %w", name, err)
		}
		r.patterns[name] = re
	}
	for name, src := range patterns {
		re, err := regexp.Compile(src)
		if err != nil {
			return nil, fmt.Errorf("format: compile %q: %w", name, err)
		}
		r.patterns[name] = re
	}
	return r, nil
}

// LoadYAML builds a registry from a YAML document mapping pattern names to
// regular expression sources, layered over the built-in defaults.
func LoadYAML(data []byte) (Registry, error) {
	var patterns map[string]string
	if err := yaml.Unmarshal(data, &patterns); err != nil {
		return nil, fmt.Errorf("format: parse yaml: %w", err)
	}
	return New(patterns)
}

// LoadFile reads a YAML pattern file and builds a registry from it.
func LoadFile(path string) (Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("format: read %s: %w", path, err)
	}
	return LoadYAML(data)
}
