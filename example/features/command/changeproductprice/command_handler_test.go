package changeproductprice_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediatorkit/dispatch-pipeline-go/dispatch"
	"github.com/mediatorkit/dispatch-pipeline-go/example/features/command/changeproductprice"
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

func createProduct(t *testing.T, dispatcher *dispatch.Dispatcher, productID uuid.UUID, priceCents int64) {
	t.Helper()

	cmd := createproduct.BuildCommand(productID, "Walnut Desk", priceCents, time.Unix(0, 0).UTC())
	_, err := dispatch.Dispatch[createproduct.Result](context.Background(), dispatcher, cmd)
	require.NoError(t, err)
}

func Test_CommandHandler_Handle_Success(t *testing.T) {
	// setup
	dispatcher, store, manager := setupTestEnvironment(t)

	productID := uuid.New()
	createProduct(t, dispatcher, productID, 49900)

	// act
	changeCmd := changeproductprice.BuildCommand(productID, 44900, time.Unix(0, 0).UTC().Add(time.Hour))
	result, err := dispatch.Dispatch[changeproductprice.Result](context.Background(), dispatcher, changeCmd)

	// assert
	assert.NoError(t, err, "Should successfully change the product price")
	assert.Equal(t, int64(49900), result.OldPriceCents)
	assert.Equal(t, int64(44900), result.NewPriceCents)

	product, storeErr := store.ByID(context.Background(), productID)
	require.NoError(t, storeErr)
	assert.Equal(t, int64(44900), product.PriceCents)

	journal := manager.Journal()
	require.Len(t, journal, 2)
	assert.Equal(t, "ChangeProductPrice", journal[1].RequestType)
}

func Test_CommandHandler_Handle_UnknownProduct_RollsBack(t *testing.T) {
	// setup
	dispatcher, _, manager := setupTestEnvironment(t)

	// act
	changeCmd := changeproductprice.BuildCommand(uuid.New(), 44900, time.Now())
	_, err := dispatch.Dispatch[changeproductprice.Result](context.Background(), dispatcher, changeCmd)

	// assert
	assert.ErrorIs(t, err, core.ErrProductNotFound)
	assert.Empty(t, manager.Journal(), "Failed command should not be journaled")
}

func Test_CommandHandler_Handle_ValidationRejection(t *testing.T) {
	// setup
	dispatcher, store, _ := setupTestEnvironment(t)

	productID := uuid.New()
	createProduct(t, dispatcher, productID, 49900)

	// act
	invalidCmd := changeproductprice.BuildCommand(productID, 0, time.Now())
	_, err := dispatch.Dispatch[changeproductprice.Result](context.Background(), dispatcher, invalidCmd)

	// assert
	var validationErr *dispatch.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.NotEmpty(t, validationErr.FailuresFor("newPriceCents"))

	product, storeErr := store.ByID(context.Background(), productID)
	require.NoError(t, storeErr)
	assert.Equal(t, int64(49900), product.PriceCents, "Rejected command should not change the price")
}
