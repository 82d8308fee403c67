package createproduct_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediatorkit/dispatch-pipeline-go/dispatch"
	"github.com/mediatorkit/dispatch-pipeline-go/example/features/command/createproduct"
	"github.com/mediatorkit/dispatch-pipeline-go/example/shared/core"
	"github.com/mediatorkit/dispatch-pipeline-go/example/shared/shell"
)

func setupTestEnvironment(t *testing.T) (*dispatch.Dispatcher, *shell.InMemoryProductStore, *shell.InMemoryTransactionManager) {
	t.Helper()

	store := shell.NewInMemoryProductStore()
	manager := shell.NewInMemoryTransactionManager(store)

	dispatcher, err := shell.BuildDispatcher(shell.Dependencies{
		Store:              store,
		TransactionManager: manager,
	})
	require.NoError(t, err)

	return dispatcher, store, manager
}

func Test_CommandHandler_Handle_Success(t *testing.T) {
	// setup
	dispatcher, store, manager := setupTestEnvironment(t)

	fakeClock := time.Unix(0, 0).UTC()
	productID := uuid.New()

	// act
	createCmd := createproduct.BuildCommand(productID, "Walnut Desk", 49900, fakeClock.Add(time.Hour))
	result, err := dispatch.Dispatch[createproduct.Result](context.Background(), dispatcher, createCmd)

	// assert
	assert.NoError(t, err, "Should successfully create the product")
	assert.Equal(t, productID, result.ProductID)

	product, err := store.ByID(context.Background(), productID)
	require.NoError(t, err)
	assert.Equal(t, "Walnut Desk", product.Name)
	assert.Equal(t, int64(49900), product.PriceCents)

	journal := manager.Journal()
	require.Len(t, journal, 1, "Committed command should be journaled")
	assert.Equal(t, "CreateProduct", journal[0].RequestType)
}

func Test_CommandHandler_Handle_DuplicateProduct_RollsBack(t *testing.T) {
	// setup
	dispatcher, store, manager := setupTestEnvironment(t)

	fakeClock := time.Unix(0, 0).UTC()
	productID := uuid.New()

	// arrange
	createCmd := createproduct.BuildCommand(productID, "Walnut Desk", 49900, fakeClock)
	_, err := dispatch.Dispatch[createproduct.Result](context.Background(), dispatcher, createCmd)
	require.NoError(t, err, "Should successfully create the product first time")

	// act
	duplicateCmd := createproduct.BuildCommand(productID, "Oak Desk", 39900, fakeClock.Add(time.Hour))
	_, err = dispatch.Dispatch[createproduct.Result](context.Background(), dispatcher, duplicateCmd)

	// assert
	assert.ErrorIs(t, err, core.ErrProductAlreadyExists)

	product, storeErr := store.ByID(context.Background(), productID)
	require.NoError(t, storeErr)
	assert.Equal(t, "Walnut Desk", product.Name, "Rolled back command should not change the catalog")

	assert.Len(t, manager.Journal(), 1, "Rolled back command should not be journaled")
}

func Test_CommandHandler_Handle_ValidationRejection(t *testing.T) {
	// setup
	dispatcher, store, manager := setupTestEnvironment(t)

	// act
	invalidCmd := createproduct.BuildCommand(uuid.Nil, "", -100, time.Now())
	_, err := dispatch.Dispatch[createproduct.Result](context.Background(), dispatcher, invalidCmd)

	// assert
	var validationErr *dispatch.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.NotEmpty(t, validationErr.FailuresFor("productId"))
	assert.NotEmpty(t, validationErr.FailuresFor("name"))
	assert.NotEmpty(t, validationErr.FailuresFor("priceCents"))

	all, storeErr := store.All(context.Background())
	require.NoError(t, storeErr)
	assert.Empty(t, all, "Rejected command should not reach the store")
	assert.Empty(t, manager.Journal(), "Rejected command should not open a unit of work")
}
