package dispatch_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediatorkit/dispatch-pipeline-go/dispatch"
)

type createThing struct {
	dispatch.CommandRequest
	Name string
}

func (createThing) RequestType() string { return "CreateThing" }

type createThingResult struct {
	ID string
}

type getThing struct {
	dispatch.QueryRequest
	ID string
}

func (getThing) RequestType() string { return "GetThing" }

type thingView struct {
	ID   string
	Name string
}

func Test_Config_RegisterHandler_Duplicate(t *testing.T) {
	// arrange
	cfg := dispatch.NewConfig()

	firstErr := dispatch.RegisterHandler(cfg, func(_ context.Context, _ createThing) (createThingResult, error) {
		return createThingResult{}, nil
	})
	require.NoError(t, firstErr, "Should register first handler")

	// act
	secondErr := dispatch.RegisterHandler(cfg, func(_ context.Context, _ createThing) (createThingResult, error) {
		return createThingResult{}, nil
	})

	// assert
	var duplicateErr *dispatch.DuplicateHandlerError
	require.ErrorAs(t, secondErr, &duplicateErr, "Should reject duplicate registration")
	assert.Equal(t, "CreateThing", duplicateErr.RequestType, "Should name the request type")
}

func Test_Config_RegisterHandler_NilHandler(t *testing.T) {
	// arrange
	cfg := dispatch.NewConfig()

	// act
	err := dispatch.RegisterHandler[createThing, createThingResult](cfg, nil)

	// assert
	assert.ErrorIs(t, err, dispatch.ErrNilHandler, "Should reject nil handler")
}

func Test_Dispatcher_Dispatch_Success(t *testing.T) {
	// arrange
	cfg := dispatch.NewConfig()
	dispatch.MustRegisterHandler(cfg, func(_ context.Context, cmd createThing) (createThingResult, error) {
		return createThingResult{ID: "42"}, nil
	})

	dispatcher, err := cfg.Build()
	require.NoError(t, err, "Should build dispatcher")

	// act
	result, dispatchErr := dispatch.Dispatch[createThingResult](context.Background(), dispatcher, createThing{Name: "Widget"})

	// assert
	assert.NoError(t, dispatchErr, "Should dispatch successfully")
	assert.Equal(t, createThingResult{ID: "42"}, result, "Should return the handler result")
}

func Test_Dispatcher_Dispatch_HandlerNotFound(t *testing.T) {
	// arrange
	cfg := dispatch.NewConfig()
	dispatcher, err := cfg.Build()
	require.NoError(t, err, "Should build dispatcher")

	// act
	_, dispatchErr := dispatcher.Dispatch(context.Background(), getThing{ID: "1"})

	// assert
	var notFoundErr *dispatch.HandlerNotFoundError
	require.ErrorAs(t, dispatchErr, &notFoundErr, "Should fail with HandlerNotFoundError")
	assert.Equal(t, "GetThing", notFoundErr.RequestType, "Should name the unresolved request type")
}

func Test_Dispatcher_Dispatch_NilRequest(t *testing.T) {
	// arrange
	cfg := dispatch.NewConfig()
	dispatcher, err := cfg.Build()
	require.NoError(t, err, "Should build dispatcher")

	// act
	_, dispatchErr := dispatcher.Dispatch(context.Background(), nil)

	// assert
	assert.ErrorIs(t, dispatchErr, dispatch.ErrNilRequest, "Should reject nil request")
}

func Test_Dispatcher_Dispatch_UnexpectedResultType(t *testing.T) {
	// arrange
	cfg := dispatch.NewConfig()
	dispatch.MustRegisterHandler(cfg, func(_ context.Context, _ getThing) (thingView, error) {
		return thingView{ID: "1"}, nil
	})

	dispatcher, err := cfg.Build()
	require.NoError(t, err, "Should build dispatcher")

	// act
	_, dispatchErr := dispatch.Dispatch[createThingResult](context.Background(), dispatcher, getThing{ID: "1"})

	// assert
	var typeErr *dispatch.UnexpectedResultTypeError
	require.ErrorAs(t, dispatchErr, &typeErr, "Should fail with UnexpectedResultTypeError")
	assert.Equal(t, "GetThing", typeErr.RequestType, "Should name the request type")
}

func Test_Dispatcher_Dispatch_BehaviorOrder(t *testing.T) {
	// arrange
	var trace []string

	tracingBehavior := func(name string) dispatch.Behavior {
		return dispatch.BehaviorFunc(func(
			ctx context.Context,
			_ *dispatch.DispatchContext,
			_ dispatch.Request,
			next dispatch.Next,
		) (any, error) {
			trace = append(trace, name+"-pre")
			result, err := next(ctx)
			trace = append(trace, name+"-post")
			return result, err
		})
	}

	cfg := dispatch.NewConfig()
	dispatch.MustRegisterHandler(cfg, func(_ context.Context, _ createThing) (createThingResult, error) {
		trace = append(trace, "handler")
		return createThingResult{}, nil
	})
	cfg.AddBehavior(tracingBehavior("A"))
	cfg.AddBehavior(tracingBehavior("B"))
	cfg.AddBehavior(tracingBehavior("C"))

	dispatcher, err := cfg.Build()
	require.NoError(t, err, "Should build dispatcher")

	// act
	_, dispatchErr := dispatcher.Dispatch(context.Background(), createThing{Name: "Widget"})

	// assert
	assert.NoError(t, dispatchErr, "Should dispatch successfully")
	assert.Equal(t,
		[]string{"A-pre", "B-pre", "C-pre", "handler", "C-post", "B-post", "A-post"},
		trace,
		"Pre-logic should run in registration order, post-logic in exact reverse")
}

func Test_Dispatcher_Dispatch_FilteredBehavior(t *testing.T) {
	// arrange
	var commandTrace []string

	commandOnly := func(request dispatch.Request) bool {
		return request.RequestKind() == dispatch.KindCommand
	}

	cfg := dispatch.NewConfig()
	dispatch.MustRegisterHandler(cfg, func(_ context.Context, _ createThing) (createThingResult, error) {
		return createThingResult{}, nil
	})
	dispatch.MustRegisterHandler(cfg, func(_ context.Context, _ getThing) (thingView, error) {
		return thingView{}, nil
	})
	cfg.AddBehaviorFor(commandOnly, dispatch.BehaviorFunc(func(
		ctx context.Context,
		_ *dispatch.DispatchContext,
		request dispatch.Request,
		next dispatch.Next,
	) (any, error) {
		commandTrace = append(commandTrace, request.RequestType())
		return next(ctx)
	}))

	dispatcher, err := cfg.Build()
	require.NoError(t, err, "Should build dispatcher")

	// act
	_, commandErr := dispatcher.Dispatch(context.Background(), createThing{Name: "Widget"})
	_, queryErr := dispatcher.Dispatch(context.Background(), getThing{ID: "1"})

	// assert
	assert.NoError(t, commandErr, "Should dispatch command")
	assert.NoError(t, queryErr, "Should dispatch query")
	assert.Equal(t, []string{"CreateThing"}, commandTrace, "Filtered behavior should only see commands")
}

func Test_Dispatcher_Dispatch_ErrorPropagatesUnchanged(t *testing.T) {
	// arrange
	handlerErr := errors.New("storage unavailable")

	cfg := dispatch.NewConfig()
	dispatch.MustRegisterHandler(cfg, func(_ context.Context, _ createThing) (createThingResult, error) {
		return createThingResult{}, handlerErr
	})
	cfg.AddBehavior(dispatch.BehaviorFunc(func(
		ctx context.Context,
		_ *dispatch.DispatchContext,
		_ dispatch.Request,
		next dispatch.Next,
	) (any, error) {
		return next(ctx)
	}))

	dispatcher, err := cfg.Build()
	require.NoError(t, err, "Should build dispatcher")

	// act
	_, dispatchErr := dispatcher.Dispatch(context.Background(), createThing{Name: "Widget"})

	// assert
	assert.ErrorIs(t, dispatchErr, handlerErr, "Behaviors must propagate the original error unchanged")
}

func Test_Dispatcher_Dispatch_NestedDispatchReusesCorrelation(t *testing.T) {
	// arrange
	var outerCorrelation, innerCorrelation uuid.UUID

	var dispatcher *dispatch.Dispatcher

	cfg := dispatch.NewConfig()
	dispatch.MustRegisterHandler(cfg, func(ctx context.Context, _ getThing) (thingView, error) {
		dctx, ok := dispatch.DispatchContextFrom(ctx)
		if ok {
			innerCorrelation = dctx.CorrelationID()
		}
		return thingView{}, nil
	})
	dispatch.MustRegisterHandler(cfg, func(ctx context.Context, _ createThing) (createThingResult, error) {
		dctx, ok := dispatch.DispatchContextFrom(ctx)
		if ok {
			outerCorrelation = dctx.CorrelationID()
		}
		_, err := dispatch.Dispatch[thingView](ctx, dispatcher, getThing{ID: "1"})
		return createThingResult{}, err
	})

	dispatcher, buildErr := cfg.Build()
	require.NoError(t, buildErr, "Should build dispatcher")

	// act
	_, dispatchErr := dispatcher.Dispatch(context.Background(), createThing{Name: "Widget"})

	// assert
	assert.NoError(t, dispatchErr, "Should dispatch nested request")
	assert.NotEqual(t, uuid.Nil, outerCorrelation, "Outer dispatch should carry a correlation identifier")
	assert.Equal(t, outerCorrelation, innerCorrelation, "Nested dispatch should reuse the outer correlation identifier")
}

func Test_Dispatcher_Dispatch_SeededCorrelationIsReused(t *testing.T) {
	// arrange
	seeded := uuid.New()
	var observed uuid.UUID

	cfg := dispatch.NewConfig()
	dispatch.MustRegisterHandler(cfg, func(ctx context.Context, _ getThing) (thingView, error) {
		if dctx, ok := dispatch.DispatchContextFrom(ctx); ok {
			observed = dctx.CorrelationID()
		}
		return thingView{}, nil
	})

	dispatcher, err := cfg.Build()
	require.NoError(t, err, "Should build dispatcher")

	ctx := dispatch.WithCorrelationID(context.Background(), seeded)

	// act
	_, dispatchErr := dispatcher.Dispatch(ctx, getThing{ID: "1"})

	// assert
	assert.NoError(t, dispatchErr, "Should dispatch successfully")
	assert.Equal(t, seeded, observed, "Should reuse the externally seeded correlation identifier")
}

func Test_Dispatcher_Dispatch_ConcurrentDispatches(t *testing.T) {
	// arrange
	cfg := dispatch.NewConfig()
	dispatch.MustRegisterHandler(cfg, func(_ context.Context, cmd createThing) (createThingResult, error) {
		return createThingResult{ID: cmd.Name}, nil
	})
	dispatch.MustRegisterHandler(cfg, func(_ context.Context, query getThing) (thingView, error) {
		return thingView{ID: query.ID}, nil
	})

	dispatcher, err := cfg.Build()
	require.NoError(t, err, "Should build dispatcher")

	const dispatchesPerKind = 50

	// act
	var wg sync.WaitGroup
	errs := make(chan error, dispatchesPerKind*2)

	for i := 0; i < dispatchesPerKind; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, dispatchErr := dispatch.Dispatch[createThingResult](context.Background(), dispatcher, createThing{Name: "Widget"})
			errs <- dispatchErr
		}()
		go func() {
			defer wg.Done()
			_, dispatchErr := dispatch.Dispatch[thingView](context.Background(), dispatcher, getThing{ID: "1"})
			errs <- dispatchErr
		}()
	}
	wg.Wait()
	close(errs)

	// assert
	for dispatchErr := range errs {
		assert.NoError(t, dispatchErr, "Concurrent dispatches against the shared registry should succeed")
	}
}
