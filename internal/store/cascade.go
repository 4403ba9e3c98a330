package store

import (
	"context"

	"go.uber.org/multierr"

	"github.com/luisherrera/shopdesk-backend/internal/persistence"
)

// cascadeDelete removes every order, deposit, withdrawal and order request
// carrying the shop id. Each related collection is listed once and its
// records deleted individually; deletes that fail are reported but never
// rolled back, and one collection's failure does not stop the others.
func (s *Store) cascadeDelete(ctx context.Context, shopID string) error {
	orderIDs, orderErr := cascadeCollection(ctx, s.ordersCol, shopID)
	s.dropOrders(orderIDs)
	s.metrics.ObserveCascadeDeletes("orders", len(orderIDs))

	depositIDs, depositErr := cascadeCollection(ctx, s.depositsCol, shopID)
	s.dropDeposits(depositIDs)
	s.metrics.ObserveCascadeDeletes("deposits", len(depositIDs))

	withdrawalIDs, withdrawalErr := cascadeCollection(ctx, s.withdrawalsCol, shopID)
	s.dropWithdrawals(withdrawalIDs)
	s.metrics.ObserveCascadeDeletes("withdrawals", len(withdrawalIDs))

	requestIDs, requestErr := cascadeCollection(ctx, s.requestsCol, shopID)
	s.dropOrderRequests(requestIDs)
	s.metrics.ObserveCascadeDeletes("orderRequests", len(requestIDs))

	return multierr.Combine(orderErr, depositErr, withdrawalErr, requestErr)
}

// cascadeCollection lists the shop's records and deletes them one by one,
// accumulating failures and returning the ids that actually went away.
func cascadeCollection[T persistence.Record](ctx context.Context, col persistence.Collection[T], shopID string) ([]string, error) {
	recs, err := col.ListByShop(ctx, shopID)
	if err != nil {
		return nil, err
	}
	var deleted []string
	var errs error
	for _, rec := range recs {
		if derr := col.Delete(ctx, rec.RecordID()); derr != nil {
			errs = multierr.Append(errs, derr)
			continue
		}
		deleted = append(deleted, rec.RecordID())
	}
	return deleted, errs
}

func (s *Store) dropOrders(ids []string) {
	if len(ids) == 0 {
		return
	}
	gone := idSet(ids)
	s.mu.Lock()
	kept := s.orders[:0]
	for _, o := range s.orders {
		if _, drop := gone[o.OrderID]; !drop {
			kept = append(kept, o)
		}
	}
	s.orders = kept
	s.mu.Unlock()
}

func (s *Store) dropDeposits(ids []string) {
	if len(ids) == 0 {
		return
	}
	gone := idSet(ids)
	s.mu.Lock()
	kept := s.deposits[:0]
	for _, d := range s.deposits {
		if _, drop := gone[d.DepositID]; !drop {
			kept = append(kept, d)
		}
	}
	s.deposits = kept
	s.mu.Unlock()
}

func (s *Store) dropWithdrawals(ids []string) {
	if len(ids) == 0 {
		return
	}
	gone := idSet(ids)
	s.mu.Lock()
	kept := s.withdrawals[:0]
	for _, w := range s.withdrawals {
		if _, drop := gone[w.WithdrawalID]; !drop {
			kept = append(kept, w)
		}
	}
	s.withdrawals = kept
	s.mu.Unlock()
}

func (s *Store) dropOrderRequests(ids []string) {
	if len(ids) == 0 {
		return
	}
	gone := idSet(ids)
	s.mu.Lock()
	kept := s.orderRequests[:0]
	for _, r := range s.orderRequests {
		if _, drop := gone[r.ID]; !drop {
			kept = append(kept, r)
		}
	}
	s.orderRequests = kept
	s.mu.Unlock()
}

func idSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
