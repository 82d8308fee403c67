package shell

import (
	"time"

	"github.com/mediatorkit/dispatch-pipeline-go/dispatch"
	"github.com/mediatorkit/dispatch-pipeline-go/example/features/command/changeproductprice"
	"github.com/mediatorkit/dispatch-pipeline-go/example/features/command/createproduct"
	"github.com/mediatorkit/dispatch-pipeline-go/example/features/query/productbyid"
	"github.com/mediatorkit/dispatch-pipeline-go/example/features/query/productsincatalog"
)

const defaultSlowThreshold = 500 * time.Millisecond

// Dependencies bundles the infrastructure the product catalog dispatcher
// is wired with. Every field is optional except Store; nil observability
// dependencies simply disable the corresponding instrumentation.
type Dependencies struct {
	Store              ProductStore
	TransactionManager dispatch.TransactionManager
	Logger             dispatch.Logger
	ContextualLogger   dispatch.ContextualLogger
	Metrics            dispatch.MetricsCollector
	Tracing            dispatch.TracingCollector
}

// BuildDispatcher wires the product catalog handlers, validators and the
// standard behavior chain into a ready-to-use dispatcher.
//
// Behavior order is logging, performance, validation, transaction: logging
// observes the full pipeline, performance times everything below it,
// validation rejects before a unit of work is ever opened.
func BuildDispatcher(deps Dependencies) (*dispatch.Dispatcher, error) {
	cfg := dispatch.NewConfig()
	cfg.WithIdentityProvider(NewContextIdentityProvider())

	if err := registerHandlers(cfg, deps.Store); err != nil {
		return nil, err
	}

	loggingBehavior, err := dispatch.NewLoggingBehavior(
		dispatch.WithLogger(deps.Logger),
		dispatch.WithContextualLogger(deps.ContextualLogger),
		dispatch.WithTracing(deps.Tracing),
		dispatch.WithSlowThreshold(defaultSlowThreshold),
	)
	if err != nil {
		return nil, err
	}

	performanceBehavior, err := dispatch.NewPerformanceBehavior(
		dispatch.WithPerformanceMetrics(deps.Metrics),
		dispatch.WithPerformanceLogger(deps.Logger),
		dispatch.WithPerformanceContextualLogger(deps.ContextualLogger),
	)
	if err != nil {
		return nil, err
	}

	validationBehavior, err := dispatch.NewValidationBehavior(
		dispatch.WithValidationMetrics(deps.Metrics),
	)
	if err != nil {
		return nil, err
	}

	dispatch.RegisterValidator(validationBehavior, createproduct.ValidateCommand)
	dispatch.RegisterValidator(validationBehavior, changeproductprice.ValidateCommand)

	cfg.AddBehavior(loggingBehavior)
	cfg.AddBehavior(performanceBehavior)
	cfg.AddBehavior(validationBehavior)

	if deps.TransactionManager != nil {
		transactionBehavior, tbErr := dispatch.NewTransactionBehavior(
			deps.TransactionManager,
			dispatch.WithTransactionLogger(deps.Logger),
			dispatch.WithTransactionContextualLogger(deps.ContextualLogger),
			dispatch.WithTransactionMetrics(deps.Metrics),
			dispatch.WithCommandJournaling(),
		)
		if tbErr != nil {
			return nil, tbErr
		}

		cfg.AddBehavior(transactionBehavior)
	}

	return cfg.Build()
}

func registerHandlers(cfg *dispatch.Config, store ProductStore) error {
	if err := dispatch.RegisterHandler(cfg, createproduct.NewCommandHandler(store).Handle); err != nil {
		return err
	}

	if err := dispatch.RegisterHandler(cfg, changeproductprice.NewCommandHandler(store).Handle); err != nil {
		return err
	}

	if err := dispatch.RegisterHandler(cfg, productbyid.NewQueryHandler(store).Handle); err != nil {
		return err
	}

	return dispatch.RegisterHandler(cfg, productsincatalog.NewQueryHandler(store).Handle)
}
