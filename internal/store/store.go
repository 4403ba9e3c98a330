// Package store owns the in-memory working set for all five record
// collections and every mutation path against them. UI-facing layers read
// snapshots and call the exported operations; nothing else mutates the
// collections.
package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/luisherrera/shopdesk-backend/internal/persistence"
	"github.com/luisherrera/shopdesk-backend/pkg/db/models"
	"github.com/luisherrera/shopdesk-backend/pkg/logger"
	"github.com/luisherrera/shopdesk-backend/pkg/metrics"
)

// Sentinel identity values for transaction records whose shop id does not
// resolve to a known client. Unknown shop ids are accepted; referential
// integrity is not enforced at write time.
const (
	UnknownClient = "Unknown Client"
	UnknownAgent  = "Unknown Agent"
)

// Store is the records store. Collections are guarded by mu; persistence
// calls happen outside the lock so slow commits never block readers.
type Store struct {
	mu            sync.RWMutex
	clients       []models.Client
	orders        []models.Order
	deposits      []models.Deposit
	withdrawals   []models.Withdrawal
	orderRequests []models.OrderRequest

	clientsCol     persistence.Collection[models.Client]
	ordersCol      persistence.Collection[models.Order]
	depositsCol    persistence.Collection[models.Deposit]
	withdrawalsCol persistence.Collection[models.Withdrawal]
	requestsCol    persistence.Collection[models.OrderRequest]

	logg    *logger.Logger
	metrics *metrics.RecordsMetrics

	cancelMu sync.Mutex
	cancels  []func()
}

// Params wires the store's collaborators.
type Params struct {
	Clients     persistence.Collection[models.Client]
	Orders      persistence.Collection[models.Order]
	Deposits    persistence.Collection[models.Deposit]
	Withdrawals persistence.Collection[models.Withdrawal]
	Requests    persistence.Collection[models.OrderRequest]
	Logger      *logger.Logger
	Metrics     *metrics.RecordsMetrics
}

// New builds a records store. All five collections are required.
func New(p Params) (*Store, error) {
	if p.Clients == nil || p.Orders == nil || p.Deposits == nil || p.Withdrawals == nil || p.Requests == nil {
		return nil, fmt.Errorf("all five collections are required")
	}
	return &Store{
		clientsCol:     p.Clients,
		ordersCol:      p.Orders,
		depositsCol:    p.Deposits,
		withdrawalsCol: p.Withdrawals,
		requestsCol:    p.Requests,
		logg:           p.Logger,
		metrics:        p.Metrics,
	}, nil
}

// Start subscribes to all five collections. Each subscription delivers an
// immediate snapshot, so the working set is populated when Start returns.
func (s *Store) Start(ctx context.Context) error {
	if err := subscribe(ctx, s, s.clientsCol, s.setClients); err != nil {
		return fmt.Errorf("subscribing clients: %w", err)
	}
	if err := subscribe(ctx, s, s.ordersCol, s.setOrders); err != nil {
		return fmt.Errorf("subscribing orders: %w", err)
	}
	if err := subscribe(ctx, s, s.depositsCol, s.setDeposits); err != nil {
		return fmt.Errorf("subscribing deposits: %w", err)
	}
	if err := subscribe(ctx, s, s.withdrawalsCol, s.setWithdrawals); err != nil {
		return fmt.Errorf("subscribing withdrawals: %w", err)
	}
	if err := subscribe(ctx, s, s.requestsCol, s.setOrderRequests); err != nil {
		return fmt.Errorf("subscribing order requests: %w", err)
	}
	return nil
}

func subscribe[T persistence.Record](ctx context.Context, s *Store, col persistence.Collection[T], apply func([]T)) error {
	var zero T
	cancel, err := col.Subscribe(ctx, apply, func(err error) {
		if s.logg != nil {
			s.logg.Error(s.logg.WithCollection(ctx, zero.Collection()), "snapshot refresh failed", err)
		}
	})
	if err != nil {
		return err
	}
	s.cancelMu.Lock()
	s.cancels = append(s.cancels, cancel)
	s.cancelMu.Unlock()
	return nil
}

// Stop tears down the collection subscriptions.
func (s *Store) Stop() {
	s.cancelMu.Lock()
	cancels := s.cancels
	s.cancels = nil
	s.cancelMu.Unlock()
	for _, cancel := range cancels {
		cancel()
	}
}

// Refresh re-lists all five collections, reconciling the working set with the
// store of record. Used after bulk operations, whose commits can outrun the
// snapshot subscription.
func (s *Store) Refresh(ctx context.Context) error {
	clients, err := s.clientsCol.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("refreshing clients: %w", err)
	}
	orders, err := s.ordersCol.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("refreshing orders: %w", err)
	}
	deposits, err := s.depositsCol.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("refreshing deposits: %w", err)
	}
	withdrawals, err := s.withdrawalsCol.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("refreshing withdrawals: %w", err)
	}
	requests, err := s.requestsCol.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("refreshing order requests: %w", err)
	}

	s.mu.Lock()
	s.clients = clients
	s.orders = orders
	s.deposits = deposits
	s.withdrawals = withdrawals
	s.orderRequests = requests
	s.mu.Unlock()
	return nil
}

func (s *Store) setClients(recs []models.Client) {
	s.mu.Lock()
	s.clients = recs
	s.mu.Unlock()
}

func (s *Store) setOrders(recs []models.Order) {
	s.mu.Lock()
	s.orders = recs
	s.mu.Unlock()
}

func (s *Store) setDeposits(recs []models.Deposit) {
	s.mu.Lock()
	s.deposits = recs
	s.mu.Unlock()
}

func (s *Store) setWithdrawals(recs []models.Withdrawal) {
	s.mu.Lock()
	s.withdrawals = recs
	s.mu.Unlock()
}

func (s *Store) setOrderRequests(recs []models.OrderRequest) {
	s.mu.Lock()
	s.orderRequests = recs
	s.mu.Unlock()
}

// Clients returns a copy of the client working set.
func (s *Store) Clients() []models.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Client(nil), s.clients...)
}

// Orders returns a copy of the order working set.
func (s *Store) Orders() []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Order(nil), s.orders...)
}

// Deposits returns a copy of the deposit working set.
func (s *Store) Deposits() []models.Deposit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Deposit(nil), s.deposits...)
}

// Withdrawals returns a copy of the withdrawal working set.
func (s *Store) Withdrawals() []models.Withdrawal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Withdrawal(nil), s.withdrawals...)
}

// OrderRequests returns a copy of the order-request working set.
func (s *Store) OrderRequests() []models.OrderRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.OrderRequest(nil), s.orderRequests...)
}

// Metrics exposes the records metrics so the API layer can observe per-row
// import outcomes. Nil when metrics are disabled; the observers no-op on nil.
func (s *Store) Metrics() *metrics.RecordsMetrics {
	return s.metrics
}

// clientIdentity resolves the denormalized name/agent pair for a shop id,
// falling back to the sentinel values when the client is unknown.
func (s *Store) clientIdentity(shopID string) (name, agent string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.clients {
		if s.clients[i].ShopID == shopID {
			return s.clients[i].ClientName, s.clients[i].Agent
		}
	}
	return UnknownClient, UnknownAgent
}
