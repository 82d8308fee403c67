package dispatch

import (
	"context"
	"fmt"
)

// HandlerFunc is a stateless function from one specific request type to its
// declared result type. Exactly one handler is registered per request type.
type HandlerFunc[Rq Request, R any] func(ctx context.Context, request Rq) (R, error)

// handlerFunc is the type-erased form stored in the registry.
type handlerFunc func(ctx context.Context, request Request) (any, error)

// handlerEntry holds the type-erased handler and the request kind it serves.
type handlerEntry struct {
	kind   Kind
	handle handlerFunc
}

// Config is the explicit, inspectable registration step executed once at
// startup. Handlers and behaviors are added to it, then Build returns an
// immutable Dispatcher. Registration errors (duplicate handlers, invalid
// kinds) surface here, never at dispatch time. Config is not safe for
// concurrent use; Build the Dispatcher before serving traffic.
type Config struct {
	handlers  map[string]handlerEntry
	behaviors []behaviorEntry
	identity  IdentityProvider
}

// NewConfig creates an empty registration step.
func NewConfig() *Config {
	return &Config{
		handlers: make(map[string]handlerEntry),
	}
}

// RegisterHandler registers the single handler for the request type Rq.
// The request kind is read from a zero value of Rq, so request types must be
// declared on value (non-pointer) types. Registering a second handler for the
// same request type is a configuration error surfaced immediately.
func RegisterHandler[Rq Request, R any](cfg *Config, handle HandlerFunc[Rq, R]) error {
	if handle == nil {
		return ErrNilHandler
	}

	var zeroRequest Rq
	requestType := zeroRequest.RequestType()
	kind := zeroRequest.RequestKind()

	if kind != KindCommand && kind != KindQuery {
		return fmt.Errorf("request type %q: %w", requestType, ErrInvalidRequestKind)
	}

	if _, exists := cfg.handlers[requestType]; exists {
		return &DuplicateHandlerError{RequestType: requestType}
	}

	cfg.handlers[requestType] = handlerEntry{
		kind: kind,
		handle: func(ctx context.Context, request Request) (any, error) {
			return handle(ctx, request.(Rq))
		},
	}

	return nil
}

// MustRegisterHandler registers a handler and panics on configuration errors.
// Intended for startup wiring where a registration failure must abort the process.
func MustRegisterHandler[Rq Request, R any](cfg *Config, handle HandlerFunc[Rq, R]) {
	if err := RegisterHandler(cfg, handle); err != nil {
		panic(err)
	}
}

// AddBehavior appends a behavior applying to every request. The first-added
// behavior becomes the outermost wrapper of the chain.
func (cfg *Config) AddBehavior(behavior Behavior) {
	cfg.behaviors = append(cfg.behaviors, behaviorEntry{behavior: behavior})
}

// AddBehaviorFor appends a behavior applying only to requests accepted by the filter.
func (cfg *Config) AddBehaviorFor(filter RequestFilter, behavior Behavior) {
	cfg.behaviors = append(cfg.behaviors, behaviorEntry{behavior: behavior, filter: filter})
}

// WithIdentityProvider sets the provider used to attach caller identity to
// each DispatchContext.
func (cfg *Config) WithIdentityProvider(identity IdentityProvider) {
	cfg.identity = identity
}

// Build seals the configuration into an immutable Dispatcher. The returned
// Dispatcher holds its own copies of the registries and is safe for
// concurrent dispatches without locking.
func (cfg *Config) Build() (*Dispatcher, error) {
	handlers := make(map[string]handlerEntry, len(cfg.handlers))
	for requestType, entry := range cfg.handlers {
		handlers[requestType] = entry
	}

	behaviors := make([]behaviorEntry, len(cfg.behaviors))
	copy(behaviors, cfg.behaviors)

	return &Dispatcher{
		handlers:  handlers,
		behaviors: behaviors,
		identity:  cfg.identity,
	}, nil
}
