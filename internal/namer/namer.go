package namer

import (
	"fmt"
	"regexp"
	"strings"
)

// placeholderPattern matches `{name}` and `{name:0Nd}` placeholders.
// Group 1 is the placeholder name, group 2 the optional zero-pad width.
var placeholderPattern = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)(?::0([1-9][0-9]*)d)?\}`)

// UnresolvedPlaceholderError reports a placeholder that has no binding in
// the effective context. It indicates a mismatch between the template and
// the context supplied by the caller; it is never retried.
type UnresolvedPlaceholderError struct {
	Placeholder string
	Template    string
}

// Error implements the error interface.
func (e *UnresolvedPlaceholderError) Error() string {
	return fmt.Sprintf("unresolved placeholder %q in template %q", e.Placeholder, e.Template)
}

// Namer resolves path templates against a base context plus a stack of
// scoped overlays. It performs no file-system access; its only mutable
// state is the overlay stack.
type Namer struct {
	base     map[string]any
	overlays []map[string]any
}

// New creates a Namer with the given base context. The base map is copied,
// so later mutation by the caller does not leak into the Namer.
func New(base map[string]any) *Namer {
	ctx := make(map[string]any, len(base))
	for k, v := range base {
		ctx[k] = v
	}
	return &Namer{base: ctx}
}

// PushContext overlays extra bindings on top of the current context and
// returns a restore function that reverts the context to exactly its prior
// state. The restore function is safe to call from a defer, including when
// Resolve failed inside the scope. Overlays stack; the innermost binding
// wins on key collision. An empty overlay is a valid no-op scope.
func (n *Namer) PushContext(extra map[string]any) (restore func()) {
	overlay := make(map[string]any, len(extra))
	for k, v := range extra {
		overlay[k] = v
	}
	n.overlays = append(n.overlays, overlay)

	depth := len(n.overlays)
	return func() {
		if len(n.overlays) < depth {
			// Restore already ran, or scopes were released out of order.
			return
		}
		n.overlays = n.overlays[:depth-1]
	}
}

// lookup finds the binding for a placeholder name, innermost overlay first.
func (n *Namer) lookup(name string) (any, bool) {
	for i := len(n.overlays) - 1; i >= 0; i-- {
		if v, ok := n.overlays[i][name]; ok {
			return v, true
		}
	}
	v, ok := n.base[name]
	return v, ok
}

// Resolve substitutes every placeholder in template from the effective
// context. It returns an *UnresolvedPlaceholderError when any placeholder
// has no binding; it never returns a partially substituted string.
func (n *Namer) Resolve(template string) (string, error) {
	matches := placeholderPattern.FindAllStringSubmatchIndex(template, -1)
	if len(matches) == 0 {
		return template, nil
	}

	var sb strings.Builder
	last := 0
	for _, m := range matches {
		sb.WriteString(template[last:m[0]])
		last = m[1]

		name := template[m[2]:m[3]]
		value, ok := n.lookup(name)
		if !ok {
			return "", &UnresolvedPlaceholderError{Placeholder: name, Template: template}
		}

		var width string
		if m[4] != -1 {
			width = template[m[4]:m[5]]
		}
		formatted, err := formatValue(name, value, width)
		if err != nil {
			return "", err
		}
		sb.WriteString(formatted)
	}
	sb.WriteString(template[last:])

	return sb.String(), nil
}

// formatValue renders a context value, zero-padding integral values when the
// placeholder declared a width.
func formatValue(name string, value any, width string) (string, error) {
	if width == "" {
		return fmt.Sprintf("%v", value), nil
	}

	var num int64
	switch v := value.(type) {
	case int:
		num = int64(v)
	case int8:
		num = int64(v)
	case int16:
		num = int64(v)
	case int32:
		num = int64(v)
	case int64:
		num = v
	case uint:
		num = int64(v)
	case uint8:
		num = int64(v)
	case uint16:
		num = int64(v)
	case uint32:
		num = int64(v)
	case uint64:
		num = int64(v)
	default:
		return "", fmt.Errorf("placeholder %q: cannot zero-pad non-integer value of type %T", name, value)
	}

	return fmt.Sprintf("%0"+width+"d", num), nil
}
