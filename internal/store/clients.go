package store

import (
	"context"
	"strings"

	"go.uber.org/multierr"

	"github.com/luisherrera/shopdesk-backend/pkg/db"
	"github.com/luisherrera/shopdesk-backend/pkg/db/models"
	pkgerrors "github.com/luisherrera/shopdesk-backend/pkg/errors"
)

// AddClient validates and persists a new client. ShopID is caller-supplied
// and must be unique across all clients.
func (s *Store) AddClient(ctx context.Context, client models.Client) (models.Client, error) {
	client.ShopID = strings.TrimSpace(client.ShopID)
	if client.ShopID == "" {
		return models.Client{}, pkgerrors.New(pkgerrors.CodeValidation, "shop id is required")
	}
	if client.ClientName == "" {
		return models.Client{}, pkgerrors.New(pkgerrors.CodeValidation, "client name is required")
	}
	if !client.Status.IsValid() {
		return models.Client{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid client status")
	}

	unique, err := s.IsShopIDUnique(ctx, client.ShopID, "")
	if err != nil {
		return models.Client{}, err
	}
	if !unique {
		return models.Client{}, pkgerrors.New(pkgerrors.CodeConflict, "shop id already in use")
	}

	if err := s.clientsCol.Create(ctx, client); err != nil {
		// Two writers can pass the uniqueness check at the same time; the
		// database constraint is the final arbiter.
		if db.IsUniqueViolation(err, "") {
			return models.Client{}, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "shop id already in use")
		}
		return models.Client{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create client")
	}

	s.mu.Lock()
	s.clients = append(s.clients, client)
	s.mu.Unlock()
	return client, nil
}

// UpdateClient persists a client edit and propagates the (possibly changed)
// name/agent pair onto every transaction record carrying the client's shop
// id. Propagation failures are accumulated, not short-circuited: records that
// can be updated are.
func (s *Store) UpdateClient(ctx context.Context, client models.Client) (models.Client, error) {
	if client.ShopID == "" {
		return models.Client{}, pkgerrors.New(pkgerrors.CodeValidation, "shop id is required")
	}
	if !client.Status.IsValid() {
		return models.Client{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid client status")
	}

	exists, err := s.clientsCol.Exists(ctx, client.ShopID)
	if err != nil {
		return models.Client{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "look up client")
	}
	if !exists {
		return models.Client{}, pkgerrors.New(pkgerrors.CodeNotFound, "client not found")
	}

	if err := s.clientsCol.Update(ctx, client); err != nil {
		return models.Client{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update client")
	}

	s.mu.Lock()
	for i := range s.clients {
		if s.clients[i].ShopID == client.ShopID {
			s.clients[i] = client
			break
		}
	}
	s.mu.Unlock()

	if err := s.propagateIdentity(ctx, client.ShopID, client.ClientName, client.Agent); err != nil {
		return client, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "propagate client identity")
	}
	return client, nil
}

// propagateIdentity rewrites the denormalized name/agent columns on every
// order, deposit and withdrawal belonging to the shop.
func (s *Store) propagateIdentity(ctx context.Context, shopID, name, agent string) error {
	s.mu.RLock()
	var orders []models.Order
	for _, o := range s.orders {
		if o.ShopID == shopID && (o.ClientName != name || o.Agent != agent) {
			o.ClientName = name
			o.Agent = agent
			orders = append(orders, o)
		}
	}
	var deposits []models.Deposit
	for _, d := range s.deposits {
		if d.ShopID == shopID && (d.ClientName != name || d.Agent != agent) {
			d.ClientName = name
			d.Agent = agent
			deposits = append(deposits, d)
		}
	}
	var withdrawals []models.Withdrawal
	for _, w := range s.withdrawals {
		if w.ShopID == shopID && (w.ClientName != name || w.Agent != agent) {
			w.ClientName = name
			w.Agent = agent
			withdrawals = append(withdrawals, w)
		}
	}
	s.mu.RUnlock()

	var errs error
	for _, o := range orders {
		if err := s.ordersCol.Update(ctx, o); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		s.replaceOrder(o)
	}
	for _, d := range deposits {
		if err := s.depositsCol.Update(ctx, d); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		s.replaceDeposit(d)
	}
	for _, w := range withdrawals {
		if err := s.withdrawalsCol.Update(ctx, w); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		s.replaceWithdrawal(w)
	}
	return errs
}

// DeleteClient removes the client and cascades over every related record.
// The client deletion is not contingent on the cascade: related records that
// fail to delete stay behind and the error reports them.
func (s *Store) DeleteClient(ctx context.Context, shopID string) error {
	if shopID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "shop id is required")
	}

	if err := s.clientsCol.Delete(ctx, shopID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete client")
	}

	s.mu.Lock()
	kept := s.clients[:0]
	for _, c := range s.clients {
		if c.ShopID != shopID {
			kept = append(kept, c)
		}
	}
	s.clients = kept
	s.mu.Unlock()

	if err := s.cascadeDelete(ctx, shopID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cascade delete")
	}
	return nil
}

// BulkDeleteClients batches the client deletions themselves, then runs the
// per-shop cascade individually. Errors are re-thrown so callers can surface
// partial failure.
func (s *Store) BulkDeleteClients(ctx context.Context, shopIDs []string) error {
	if len(shopIDs) == 0 {
		return nil
	}

	if _, err := bulkDelete(ctx, s.clientsCol, shopIDs, s.metrics); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "bulk delete clients")
	}

	var errs error
	for _, shopID := range shopIDs {
		errs = multierr.Append(errs, s.cascadeDelete(ctx, shopID))
	}

	if err := s.Refresh(ctx); err != nil {
		errs = multierr.Append(errs, err)
	}
	if errs != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, errs, "bulk delete cascade")
	}
	return nil
}

// FilterUniqueClients screens import rows for shop-id collisions against the
// working set and against earlier rows in the same batch. Colliding rows come
// back as duplicates; the rest keep their input order. Callers report the
// duplicates as row errors and commit only the unique remainder.
func (s *Store) FilterUniqueClients(clients []models.Client) (unique []models.Client, duplicates []string) {
	taken := make(map[string]struct{})
	s.mu.RLock()
	for i := range s.clients {
		taken[s.clients[i].ShopID] = struct{}{}
	}
	s.mu.RUnlock()

	for _, c := range clients {
		if _, dup := taken[c.ShopID]; dup {
			duplicates = append(duplicates, c.ShopID)
			continue
		}
		taken[c.ShopID] = struct{}{}
		unique = append(unique, c)
	}
	return unique, duplicates
}

// BulkAddClients commits pre-validated clients in sequential chunks, then
// reconciles the working set. Rows must already be screened for shop-id
// uniqueness; see FilterUniqueClients.
func (s *Store) BulkAddClients(ctx context.Context, clients []models.Client) error {
	if len(clients) == 0 {
		return nil
	}
	if _, err := bulkCreate(ctx, s.clientsCol, clients, s.metrics); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "bulk add clients")
	}
	if err := s.Refresh(ctx); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "refresh after bulk add")
	}
	return nil
}

// AssignAgents rewrites the agent on each identified client and propagates
// the change to the client's transaction records. Unknown shop ids are
// reported, not fatal.
func (s *Store) AssignAgents(ctx context.Context, agentsByShop map[string]string) error {
	var errs error
	for shopID, agent := range agentsByShop {
		s.mu.RLock()
		var target *models.Client
		for i := range s.clients {
			if s.clients[i].ShopID == shopID {
				copied := s.clients[i]
				target = &copied
				break
			}
		}
		s.mu.RUnlock()

		if target == nil {
			errs = multierr.Append(errs, pkgerrors.New(pkgerrors.CodeNotFound, "unknown shop id "+shopID))
			continue
		}
		if target.Agent == agent {
			continue
		}
		target.Agent = agent
		if _, err := s.UpdateClient(ctx, *target); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}

// IsShopIDUnique reports whether shopID is unused. excluding allows
// edit-in-place validation, where the record's own id does not count against
// it.
func (s *Store) IsShopIDUnique(ctx context.Context, shopID, excluding string) (bool, error) {
	if shopID == "" {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "shop id is required")
	}
	if excluding != "" && shopID == excluding {
		return true, nil
	}
	exists, err := s.clientsCol.Exists(ctx, shopID)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check shop id")
	}
	return !exists, nil
}
