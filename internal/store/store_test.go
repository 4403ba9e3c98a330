package store

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luisherrera/shopdesk-backend/internal/persistence"
	"github.com/luisherrera/shopdesk-backend/pkg/db/models"
	"github.com/luisherrera/shopdesk-backend/pkg/enums"
	pkgerrors "github.com/luisherrera/shopdesk-backend/pkg/errors"
)

// fakeCollection is an in-memory Collection used to exercise the store
// without a datasource. It counts batch commits so chunking is observable.
type fakeCollection[T persistence.Record] struct {
	mu           sync.Mutex
	recs         []T
	maxBatch     int
	batchCreates int
	batchDeletes int
	failDelete   map[string]bool
}

func newFake[T persistence.Record](maxBatch int) *fakeCollection[T] {
	return &fakeCollection[T]{maxBatch: maxBatch}
}

func (f *fakeCollection[T]) Create(_ context.Context, rec T) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recs = append(f.recs, rec)
	return nil
}

func (f *fakeCollection[T]) Update(_ context.Context, rec T) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.recs {
		if f.recs[i].RecordID() == rec.RecordID() {
			f.recs[i] = rec
			return nil
		}
	}
	return fmt.Errorf("record %s not found", rec.RecordID())
}

func (f *fakeCollection[T]) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failDelete[id] {
		return fmt.Errorf("delete %s refused", id)
	}
	kept := f.recs[:0]
	for _, rec := range f.recs {
		if rec.RecordID() != id {
			kept = append(kept, rec)
		}
	}
	f.recs = kept
	return nil
}

func (f *fakeCollection[T]) BatchCreate(_ context.Context, recs []T) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.batchCreates++
	f.recs = append(f.recs, recs...)
	return nil
}

func (f *fakeCollection[T]) BatchDelete(_ context.Context, ids []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.batchDeletes++
	gone := make(map[string]bool, len(ids))
	for _, id := range ids {
		gone[id] = true
	}
	kept := f.recs[:0]
	for _, rec := range f.recs {
		if !gone[rec.RecordID()] {
			kept = append(kept, rec)
		}
	}
	f.recs = kept
	return nil
}

func (f *fakeCollection[T]) ListAll(_ context.Context) ([]T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]T(nil), f.recs...), nil
}

func (f *fakeCollection[T]) ListByShop(_ context.Context, shopID string) ([]T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []T
	for _, rec := range f.recs {
		if rec.ShopRef() == shopID {
			matched = append(matched, rec)
		}
	}
	return matched, nil
}

func (f *fakeCollection[T]) Exists(_ context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rec := range f.recs {
		if rec.RecordID() == id {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCollection[T]) MaxBatch() int {
	return f.maxBatch
}

func (f *fakeCollection[T]) Subscribe(ctx context.Context, onSnapshot func([]T), _ func(error)) (func(), error) {
	recs, _ := f.ListAll(ctx)
	onSnapshot(recs)
	return func() {}, nil
}

type testFixture struct {
	store       *Store
	clients     *fakeCollection[models.Client]
	orders      *fakeCollection[models.Order]
	deposits    *fakeCollection[models.Deposit]
	withdrawals *fakeCollection[models.Withdrawal]
	requests    *fakeCollection[models.OrderRequest]
}

func newTestStore(t *testing.T, maxBatch int) testFixture {
	t.Helper()
	fx := testFixture{
		clients:     newFake[models.Client](maxBatch),
		orders:      newFake[models.Order](maxBatch),
		deposits:    newFake[models.Deposit](maxBatch),
		withdrawals: newFake[models.Withdrawal](maxBatch),
		requests:    newFake[models.OrderRequest](maxBatch),
	}
	s, err := New(Params{
		Clients:     fx.clients,
		Orders:      fx.orders,
		Deposits:    fx.deposits,
		Withdrawals: fx.withdrawals,
		Requests:    fx.requests,
	})
	require.NoError(t, err)
	require.NoError(t, s.Start(context.Background()))
	t.Cleanup(s.Stop)
	fx.store = s
	return fx
}

func activeClient(shopID, name, agent string) models.Client {
	return models.Client{
		ShopID:     shopID,
		ClientName: name,
		Agent:      agent,
		KYCDate:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Status:     enums.ClientStatusActive,
	}
}

func pendingOrder(shopID string) models.Order {
	return models.Order{
		ShopID:   shopID,
		Date:     time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Location: "Manila",
		Price:    decimal.NewFromInt(100),
		Status:   enums.OrderStatusPending,
	}
}

func cryptoDeposit(shopID string) models.Deposit {
	return models.Deposit{
		ShopID:      shopID,
		Date:        time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Amount:      decimal.NewFromInt(50),
		PaymentMode: enums.PaymentModeCrypto,
	}
}

func TestFilterUniqueClientsScreensImportRows(t *testing.T) {
	fx := newTestStore(t, 450)
	ctx := context.Background()

	_, err := fx.store.AddClient(ctx, activeClient("S-001", "Maribel", "KY"))
	require.NoError(t, err)

	rows := []models.Client{
		activeClient("S-001", "Impostor", "KY"),
		activeClient("S-002", "Rodrigo", "LOVELY"),
		activeClient("S-002", "Repeat", "LOVELY"),
		activeClient("S-003", "Cheska", "KY"),
	}
	unique, duplicates := fx.store.FilterUniqueClients(rows)

	assert.Equal(t, []string{"S-001", "S-002"}, duplicates)
	require.Len(t, unique, 2)
	assert.Equal(t, "Rodrigo", unique[0].ClientName)
	assert.Equal(t, "S-003", unique[1].ShopID)

	require.NoError(t, fx.store.BulkAddClients(ctx, unique))

	perShop := map[string]int{}
	names := map[string]string{}
	for _, c := range fx.store.Clients() {
		perShop[c.ShopID]++
		names[c.ShopID] = c.ClientName
	}
	assert.Equal(t, 1, perShop["S-001"])
	assert.Equal(t, "Maribel", names["S-001"])
	assert.Equal(t, 1, perShop["S-002"])
	assert.Equal(t, "Rodrigo", names["S-002"])
	assert.Equal(t, 1, perShop["S-003"])
}

func TestAddClientRejectsDuplicateShopID(t *testing.T) {
	fx := newTestStore(t, 450)
	ctx := context.Background()

	_, err := fx.store.AddClient(ctx, activeClient("S-001", "Maribel", "KY"))
	require.NoError(t, err)

	_, err = fx.store.AddClient(ctx, activeClient("S-001", "Impostor", "KY"))
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())
}

func TestIsShopIDUniqueExcluding(t *testing.T) {
	fx := newTestStore(t, 450)
	ctx := context.Background()

	_, err := fx.store.AddClient(ctx, activeClient("S-001", "Maribel", "KY"))
	require.NoError(t, err)

	unique, err := fx.store.IsShopIDUnique(ctx, "S-001", "")
	require.NoError(t, err)
	assert.False(t, unique)

	unique, err = fx.store.IsShopIDUnique(ctx, "S-001", "S-001")
	require.NoError(t, err)
	assert.True(t, unique)

	unique, err = fx.store.IsShopIDUnique(ctx, "S-002", "")
	require.NoError(t, err)
	assert.True(t, unique)
}

func TestAddOrderGeneratesSequentialIDs(t *testing.T) {
	fx := newTestStore(t, 450)
	ctx := context.Background()

	_, err := fx.store.AddClient(ctx, activeClient("S-001", "Maribel", "KY"))
	require.NoError(t, err)

	first, err := fx.store.AddOrder(ctx, pendingOrder("S-001"))
	require.NoError(t, err)
	second, err := fx.store.AddOrder(ctx, pendingOrder("S-001"))
	require.NoError(t, err)

	assert.Equal(t, "OR00001", first.OrderID)
	assert.Equal(t, "OR00002", second.OrderID)
	assert.Equal(t, "Maribel", first.ClientName)
	assert.Equal(t, "KY", first.Agent)
}

func TestAddOrderUnknownShopUsesSentinels(t *testing.T) {
	fx := newTestStore(t, 450)

	order, err := fx.store.AddOrder(context.Background(), pendingOrder("S-404"))
	require.NoError(t, err)
	assert.Equal(t, UnknownClient, order.ClientName)
	assert.Equal(t, UnknownAgent, order.Agent)
}

func TestAddOrderValidation(t *testing.T) {
	fx := newTestStore(t, 450)
	ctx := context.Background()

	bad := pendingOrder("S-001")
	bad.Price = decimal.Zero
	_, err := fx.store.AddOrder(ctx, bad)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	bad = pendingOrder("S-001")
	bad.Status = enums.OrderStatus("shipped")
	_, err = fx.store.AddOrder(ctx, bad)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestUpdateClientPropagatesIdentity(t *testing.T) {
	fx := newTestStore(t, 450)
	ctx := context.Background()

	_, err := fx.store.AddClient(ctx, activeClient("S-001", "Maribel", "KY"))
	require.NoError(t, err)
	_, err = fx.store.AddClient(ctx, activeClient("S-002", "Rodrigo", "KY"))
	require.NoError(t, err)

	_, err = fx.store.AddOrder(ctx, pendingOrder("S-001"))
	require.NoError(t, err)
	_, err = fx.store.AddDeposit(ctx, cryptoDeposit("S-001"))
	require.NoError(t, err)
	_, err = fx.store.AddOrder(ctx, pendingOrder("S-002"))
	require.NoError(t, err)

	edited := activeClient("S-001", "Maribel Cruz", "LOVELY")
	_, err = fx.store.UpdateClient(ctx, edited)
	require.NoError(t, err)

	for _, o := range fx.store.Orders() {
		switch o.ShopID {
		case "S-001":
			assert.Equal(t, "Maribel Cruz", o.ClientName)
			assert.Equal(t, "LOVELY", o.Agent)
		case "S-002":
			assert.Equal(t, "Rodrigo", o.ClientName)
			assert.Equal(t, "KY", o.Agent)
		}
	}
	deposits := fx.store.Deposits()
	require.Len(t, deposits, 1)
	assert.Equal(t, "Maribel Cruz", deposits[0].ClientName)
}

func TestDeleteClientCascades(t *testing.T) {
	fx := newTestStore(t, 450)
	ctx := context.Background()

	_, err := fx.store.AddClient(ctx, activeClient("S-001", "Maribel", "KY"))
	require.NoError(t, err)
	_, err = fx.store.AddClient(ctx, activeClient("S-002", "Rodrigo", "KY"))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = fx.store.AddOrder(ctx, pendingOrder("S-001"))
		require.NoError(t, err)
	}
	for i := 0; i < 2; i++ {
		_, err = fx.store.AddDeposit(ctx, cryptoDeposit("S-001"))
		require.NoError(t, err)
	}
	w := models.Withdrawal{
		ShopID:      "S-001",
		Date:        time.Now(),
		Amount:      decimal.NewFromInt(25),
		PaymentMode: enums.PaymentModeEwallet,
	}
	_, err = fx.store.AddWithdrawal(ctx, w)
	require.NoError(t, err)
	_, err = fx.store.AddOrder(ctx, pendingOrder("S-002"))
	require.NoError(t, err)

	require.NoError(t, fx.store.DeleteClient(ctx, "S-001"))

	assert.Len(t, fx.store.Clients(), 1)
	orders := fx.store.Orders()
	require.Len(t, orders, 1)
	assert.Equal(t, "S-002", orders[0].ShopID)
	assert.Empty(t, fx.store.Deposits())
	assert.Empty(t, fx.store.Withdrawals())
}

func TestDeleteClientSurvivesCascadeFailure(t *testing.T) {
	fx := newTestStore(t, 450)
	ctx := context.Background()

	_, err := fx.store.AddClient(ctx, activeClient("S-001", "Maribel", "KY"))
	require.NoError(t, err)
	order, err := fx.store.AddOrder(ctx, pendingOrder("S-001"))
	require.NoError(t, err)

	fx.orders.failDelete = map[string]bool{order.OrderID: true}

	err = fx.store.DeleteClient(ctx, "S-001")
	require.Error(t, err)

	// The client itself is gone; the stuck order stays behind.
	assert.Empty(t, fx.store.Clients())
	assert.Len(t, fx.store.Orders(), 1)
}

func TestBulkAddDepositsChunksCommits(t *testing.T) {
	fx := newTestStore(t, 450)
	ctx := context.Background()

	_, err := fx.store.AddClient(ctx, activeClient("S-001", "Maribel", "KY"))
	require.NoError(t, err)

	deposits := make([]models.Deposit, 1000)
	for i := range deposits {
		deposits[i] = cryptoDeposit("S-001")
	}

	require.NoError(t, fx.store.BulkAddDeposits(ctx, deposits))

	assert.Equal(t, 3, fx.deposits.batchCreates)
	assert.Len(t, fx.store.Deposits(), 1000)

	all := fx.store.Deposits()
	assert.Equal(t, "DP00001", all[0].DepositID)
	assert.Equal(t, "DP01000", all[999].DepositID)
	assert.Equal(t, "Maribel", all[0].ClientName)
}

func TestBulkDeleteClientsCascades(t *testing.T) {
	fx := newTestStore(t, 450)
	ctx := context.Background()

	for _, id := range []string{"S-001", "S-002", "S-003"} {
		_, err := fx.store.AddClient(ctx, activeClient(id, "Client "+id, "KY"))
		require.NoError(t, err)
		_, err = fx.store.AddOrder(ctx, pendingOrder(id))
		require.NoError(t, err)
	}

	require.NoError(t, fx.store.BulkDeleteClients(ctx, []string{"S-001", "S-003"}))

	clients := fx.store.Clients()
	require.Len(t, clients, 1)
	assert.Equal(t, "S-002", clients[0].ShopID)
	orders := fx.store.Orders()
	require.Len(t, orders, 1)
	assert.Equal(t, "S-002", orders[0].ShopID)
	assert.Equal(t, 1, fx.clients.batchDeletes)
}

func TestAssignAgents(t *testing.T) {
	fx := newTestStore(t, 450)
	ctx := context.Background()

	_, err := fx.store.AddClient(ctx, activeClient("S-001", "Maribel", "KY"))
	require.NoError(t, err)
	_, err = fx.store.AddClient(ctx, activeClient("S-002", "Rodrigo", "KY"))
	require.NoError(t, err)
	_, err = fx.store.AddOrder(ctx, pendingOrder("S-001"))
	require.NoError(t, err)

	err = fx.store.AssignAgents(ctx, map[string]string{"S-001": "LOVELY"})
	require.NoError(t, err)

	for _, c := range fx.store.Clients() {
		switch c.ShopID {
		case "S-001":
			assert.Equal(t, "LOVELY", c.Agent)
		case "S-002":
			assert.Equal(t, "KY", c.Agent)
		}
	}
	orders := fx.store.Orders()
	require.Len(t, orders, 1)
	assert.Equal(t, "LOVELY", orders[0].Agent)
}

func TestAssignAgentsUnknownShop(t *testing.T) {
	fx := newTestStore(t, 450)

	err := fx.store.AssignAgents(context.Background(), map[string]string{"S-404": "LOVELY"})
	require.Error(t, err)
}

func TestOrderRequestLifecycle(t *testing.T) {
	fx := newTestStore(t, 450)
	ctx := context.Background()

	_, err := fx.store.AddClient(ctx, activeClient("S-001", "Maribel", "KY"))
	require.NoError(t, err)

	request, err := fx.store.AddOrderRequest(ctx, models.OrderRequest{
		ShopID:   "S-001",
		Date:     time.Now(),
		Location: "Manila",
		Price:    decimal.NewFromInt(75),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, request.ID)
	assert.Equal(t, enums.RequestStatusPending, request.Status)

	order, err := fx.store.ApproveOrderRequest(ctx, request.ID)
	require.NoError(t, err)
	assert.Equal(t, "OR00001", order.OrderID)
	assert.Equal(t, "Maribel", order.ClientName)
	assert.Equal(t, enums.OrderStatusPending, order.Status)

	requests := fx.store.OrderRequests()
	require.Len(t, requests, 1)
	assert.Equal(t, enums.RequestStatusApproved, requests[0].Status)

	// A reviewed request cannot be approved or rejected again.
	_, err = fx.store.ApproveOrderRequest(ctx, request.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())
}

func TestRejectOrderRequest(t *testing.T) {
	fx := newTestStore(t, 450)
	ctx := context.Background()

	request, err := fx.store.AddOrderRequest(ctx, models.OrderRequest{
		ShopID:   "S-001",
		Date:     time.Now(),
		Location: "Cebu",
		Price:    decimal.NewFromInt(75),
	})
	require.NoError(t, err)

	rejected, err := fx.store.RejectOrderRequest(ctx, request.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.RequestStatusRejected, rejected.Status)
	assert.Empty(t, fx.store.Orders())

	_, err = fx.store.RejectOrderRequest(ctx, request.ID)
	require.Error(t, err)
}

func TestRefreshReconcilesWorkingSet(t *testing.T) {
	fx := newTestStore(t, 450)
	ctx := context.Background()

	// A record committed behind the store's back appears after Refresh.
	require.NoError(t, fx.clients.Create(ctx, activeClient("S-900", "Ghost", "KY")))
	assert.Empty(t, fx.store.Clients())

	require.NoError(t, fx.store.Refresh(ctx))
	assert.Len(t, fx.store.Clients(), 1)
}

func TestStoreRequiresAllCollections(t *testing.T) {
	_, err := New(Params{})
	assert.Error(t, err)
}
