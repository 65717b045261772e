package assets

import (
	"fmt"
	"log/slog"
)

// Handler reads and writes one kind of typed data artifact at a concrete
// file-system path.
type Handler interface {
	Read(path string) (any, error)
	Write(path string, data any) error
}

// Decoder is the capability interface for handlers that can additionally
// decode a document into a caller-supplied typed target.
type Decoder interface {
	ReadInto(path string, out any) error
}

// UnknownHandlerError reports a handler name that has no registration. It
// surfaces at construction time, not at use time.
type UnknownHandlerError struct {
	Name string
}

// Error implements the error interface.
func (e *UnknownHandlerError) Error() string {
	return fmt.Sprintf("no asset handler registered under name %q", e.Name)
}

// Registry holds the asset handlers for a single application instance.
type Registry struct {
	handlers map[string]Handler
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register adds a handler under the given name. Registering a duplicate
// name is a programmer error and panics.
func (r *Registry) Register(name string, h Handler) {
	if _, exists := r.handlers[name]; exists {
		panic(fmt.Sprintf("asset handler with name '%s' already registered", name))
	}
	slog.Debug("Registering asset handler.", "name", name)
	r.handlers[name] = h
}

// Handler returns the handler registered under name, or an
// *UnknownHandlerError.
func (r *Registry) Handler(name string) (Handler, error) {
	h, ok := r.handlers[name]
	if !ok {
		return nil, &UnknownHandlerError{Name: name}
	}
	return h, nil
}

// Builtin returns a Registry populated with the handlers compiled into
// simfetch.
func Builtin() *Registry {
	r := NewRegistry()
	r.Register("config_json", &JSONHandler{})
	r.Register("text_ps", &TextPowerSpectrumHandler{})
	return r
}
