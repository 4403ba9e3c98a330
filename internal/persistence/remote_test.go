package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/luisherrera/shopdesk-backend/pkg/db/models"
	"github.com/luisherrera/shopdesk-backend/pkg/enums"
)

func newRemoteDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:remote_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Client{}, &models.Order{}))
	return db
}

func testOrder(orderID, shopID string) models.Order {
	return models.Order{
		OrderID:    orderID,
		ShopID:     shopID,
		ClientName: "Maribel",
		Agent:      "KY",
		Date:       time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Location:   "Manila",
		Price:      decimal.NewFromInt(100),
		Status:     enums.OrderStatusPending,
	}
}

func TestRemoteCRUD(t *testing.T) {
	ctx := context.Background()
	remote, err := NewRemote[models.Order](newRemoteDB(t), nil, "order_id", 450)
	require.NoError(t, err)

	require.NoError(t, remote.Create(ctx, testOrder("OR00001", "S-001")))

	exists, err := remote.Exists(ctx, "OR00001")
	require.NoError(t, err)
	assert.True(t, exists)

	edited := testOrder("OR00001", "S-001")
	edited.Location = "Cebu"
	require.NoError(t, remote.Update(ctx, edited))

	recs, err := remote.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Cebu", recs[0].Location)

	require.NoError(t, remote.Delete(ctx, "OR00001"))
	exists, err = remote.Exists(ctx, "OR00001")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRemoteListAllOrdersByKey(t *testing.T) {
	ctx := context.Background()
	remote, err := NewRemote[models.Order](newRemoteDB(t), nil, "order_id", 450)
	require.NoError(t, err)

	require.NoError(t, remote.Create(ctx, testOrder("OR00003", "S-001")))
	require.NoError(t, remote.Create(ctx, testOrder("OR00001", "S-001")))
	require.NoError(t, remote.Create(ctx, testOrder("OR00002", "S-002")))

	recs, err := remote.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, "OR00001", recs[0].OrderID)
	assert.Equal(t, "OR00003", recs[2].OrderID)
}

func TestRemoteBatchOps(t *testing.T) {
	ctx := context.Background()
	remote, err := NewRemote[models.Order](newRemoteDB(t), nil, "order_id", 450)
	require.NoError(t, err)

	batch := []models.Order{
		testOrder("OR00001", "S-001"),
		testOrder("OR00002", "S-001"),
		testOrder("OR00003", "S-002"),
	}
	require.NoError(t, remote.BatchCreate(ctx, batch))

	byShop, err := remote.ListByShop(ctx, "S-001")
	require.NoError(t, err)
	assert.Len(t, byShop, 2)

	require.NoError(t, remote.BatchDelete(ctx, []string{"OR00001", "OR00003"}))

	recs, err := remote.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "OR00002", recs[0].OrderID)
}

func TestRemoteMaxBatch(t *testing.T) {
	remote, err := NewRemote[models.Order](newRemoteDB(t), nil, "order_id", 450)
	require.NoError(t, err)
	assert.Equal(t, 450, remote.MaxBatch())
}

func TestRemoteRequiresKeyColumn(t *testing.T) {
	_, err := NewRemote[models.Order](newRemoteDB(t), nil, "", 450)
	assert.Error(t, err)

	_, err = NewRemote[models.Order](nil, nil, "order_id", 450)
	assert.Error(t, err)
}
