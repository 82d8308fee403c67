package dispatch

// Kind classifies a request type as state-changing or read-only.
// The classification is a property of the request type, fixed at definition
// time, never inferred at dispatch time from observed behavior.
type Kind int

const (
	// KindCommand marks a state-changing request, routed through the TransactionBehavior.
	KindCommand Kind = iota + 1

	// KindQuery marks a read-only request, bypassing transactions entirely.
	KindQuery
)

// String returns the lowercase name of the kind for logs and metric labels.
func (k Kind) String() string {
	switch k {
	case KindCommand:
		return "command"
	case KindQuery:
		return "query"
	default:
		return "unknown"
	}
}

// Request represents the contract for all operations flowing through the pipeline.
// Each request is an immutable value carrying all parameters needed for one
// operation. RequestType identifies the request's runtime type for handler
// resolution, validator lookup, and observability instrumentation; it must be
// unique per request type. RequestKind declares whether the request is a
// Command or a Query.
type Request interface {
	RequestType() string
	RequestKind() Kind
}

// CommandRequest is an embeddable marker that declares a request type as a Command.
//
//	type CreateProduct struct {
//		dispatch.CommandRequest
//		Name string
//	}
type CommandRequest struct{}

// RequestKind implements the Request interface for commands.
func (CommandRequest) RequestKind() Kind {
	return KindCommand
}

// QueryRequest is an embeddable marker that declares a request type as a Query.
type QueryRequest struct{}

// RequestKind implements the Request interface for queries.
func (QueryRequest) RequestKind() Kind {
	return KindQuery
}
