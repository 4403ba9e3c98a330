package store

import (
	"context"

	"github.com/luisherrera/shopdesk-backend/internal/ident"
	"github.com/luisherrera/shopdesk-backend/pkg/db/models"
	pkgerrors "github.com/luisherrera/shopdesk-backend/pkg/errors"
)

func (s *Store) lastOrderID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.orders) == 0 {
		return ""
	}
	return s.orders[len(s.orders)-1].OrderID
}

func (s *Store) lastDepositID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.deposits) == 0 {
		return ""
	}
	return s.deposits[len(s.deposits)-1].DepositID
}

func (s *Store) lastWithdrawalID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.withdrawals) == 0 {
		return ""
	}
	return s.withdrawals[len(s.withdrawals)-1].WithdrawalID
}

// AddOrder persists a new order. The order id is generated from the working
// set tail; client name and agent are denormalized from the owning client at
// creation time.
func (s *Store) AddOrder(ctx context.Context, order models.Order) (models.Order, error) {
	if order.ShopID == "" {
		return models.Order{}, pkgerrors.New(pkgerrors.CodeValidation, "shop id is required")
	}
	if !order.Price.IsPositive() {
		return models.Order{}, pkgerrors.New(pkgerrors.CodeValidation, "price must be greater than zero")
	}
	if !order.Status.IsValid() {
		return models.Order{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}

	order.OrderID = ident.Next(ident.PrefixOrder, s.lastOrderID())
	order.ClientName, order.Agent = s.clientIdentity(order.ShopID)

	if err := s.ordersCol.Create(ctx, order); err != nil {
		return models.Order{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
	}

	s.mu.Lock()
	s.orders = append(s.orders, order)
	s.mu.Unlock()
	return order, nil
}

// UpdateOrder persists an order edit.
func (s *Store) UpdateOrder(ctx context.Context, order models.Order) (models.Order, error) {
	if order.OrderID == "" {
		return models.Order{}, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	if !order.Price.IsPositive() {
		return models.Order{}, pkgerrors.New(pkgerrors.CodeValidation, "price must be greater than zero")
	}
	if !order.Status.IsValid() {
		return models.Order{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}
	if err := s.ordersCol.Update(ctx, order); err != nil {
		return models.Order{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order")
	}
	s.replaceOrder(order)
	return order, nil
}

// DeleteOrder removes a single order.
func (s *Store) DeleteOrder(ctx context.Context, orderID string) error {
	if orderID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	if err := s.ordersCol.Delete(ctx, orderID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete order")
	}
	s.mu.Lock()
	kept := s.orders[:0]
	for _, o := range s.orders {
		if o.OrderID != orderID {
			kept = append(kept, o)
		}
	}
	s.orders = kept
	s.mu.Unlock()
	return nil
}

// AddDeposit persists a new deposit with a generated id and denormalized
// client identity.
func (s *Store) AddDeposit(ctx context.Context, deposit models.Deposit) (models.Deposit, error) {
	if deposit.ShopID == "" {
		return models.Deposit{}, pkgerrors.New(pkgerrors.CodeValidation, "shop id is required")
	}
	if !deposit.Amount.IsPositive() {
		return models.Deposit{}, pkgerrors.New(pkgerrors.CodeValidation, "amount must be greater than zero")
	}
	if !deposit.PaymentMode.IsValid() {
		return models.Deposit{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment mode")
	}

	deposit.DepositID = ident.Next(ident.PrefixDeposit, s.lastDepositID())
	deposit.ClientName, deposit.Agent = s.clientIdentity(deposit.ShopID)

	if err := s.depositsCol.Create(ctx, deposit); err != nil {
		return models.Deposit{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create deposit")
	}

	s.mu.Lock()
	s.deposits = append(s.deposits, deposit)
	s.mu.Unlock()
	return deposit, nil
}

// UpdateDeposit persists a deposit edit.
func (s *Store) UpdateDeposit(ctx context.Context, deposit models.Deposit) (models.Deposit, error) {
	if deposit.DepositID == "" {
		return models.Deposit{}, pkgerrors.New(pkgerrors.CodeValidation, "deposit id is required")
	}
	if !deposit.Amount.IsPositive() {
		return models.Deposit{}, pkgerrors.New(pkgerrors.CodeValidation, "amount must be greater than zero")
	}
	if !deposit.PaymentMode.IsValid() {
		return models.Deposit{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment mode")
	}
	if err := s.depositsCol.Update(ctx, deposit); err != nil {
		return models.Deposit{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update deposit")
	}
	s.replaceDeposit(deposit)
	return deposit, nil
}

// DeleteDeposit removes a single deposit.
func (s *Store) DeleteDeposit(ctx context.Context, depositID string) error {
	if depositID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "deposit id is required")
	}
	if err := s.depositsCol.Delete(ctx, depositID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete deposit")
	}
	s.mu.Lock()
	kept := s.deposits[:0]
	for _, d := range s.deposits {
		if d.DepositID != depositID {
			kept = append(kept, d)
		}
	}
	s.deposits = kept
	s.mu.Unlock()
	return nil
}

// AddWithdrawal persists a new withdrawal with a generated id and
// denormalized client identity.
func (s *Store) AddWithdrawal(ctx context.Context, withdrawal models.Withdrawal) (models.Withdrawal, error) {
	if withdrawal.ShopID == "" {
		return models.Withdrawal{}, pkgerrors.New(pkgerrors.CodeValidation, "shop id is required")
	}
	if !withdrawal.Amount.IsPositive() {
		return models.Withdrawal{}, pkgerrors.New(pkgerrors.CodeValidation, "amount must be greater than zero")
	}
	if !withdrawal.PaymentMode.IsValid() {
		return models.Withdrawal{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment mode")
	}

	withdrawal.WithdrawalID = ident.Next(ident.PrefixWithdrawal, s.lastWithdrawalID())
	withdrawal.ClientName, withdrawal.Agent = s.clientIdentity(withdrawal.ShopID)

	if err := s.withdrawalsCol.Create(ctx, withdrawal); err != nil {
		return models.Withdrawal{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create withdrawal")
	}

	s.mu.Lock()
	s.withdrawals = append(s.withdrawals, withdrawal)
	s.mu.Unlock()
	return withdrawal, nil
}

// UpdateWithdrawal persists a withdrawal edit.
func (s *Store) UpdateWithdrawal(ctx context.Context, withdrawal models.Withdrawal) (models.Withdrawal, error) {
	if withdrawal.WithdrawalID == "" {
		return models.Withdrawal{}, pkgerrors.New(pkgerrors.CodeValidation, "withdrawal id is required")
	}
	if !withdrawal.Amount.IsPositive() {
		return models.Withdrawal{}, pkgerrors.New(pkgerrors.CodeValidation, "amount must be greater than zero")
	}
	if !withdrawal.PaymentMode.IsValid() {
		return models.Withdrawal{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment mode")
	}
	if err := s.withdrawalsCol.Update(ctx, withdrawal); err != nil {
		return models.Withdrawal{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update withdrawal")
	}
	s.replaceWithdrawal(withdrawal)
	return withdrawal, nil
}

// DeleteWithdrawal removes a single withdrawal.
func (s *Store) DeleteWithdrawal(ctx context.Context, withdrawalID string) error {
	if withdrawalID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "withdrawal id is required")
	}
	if err := s.withdrawalsCol.Delete(ctx, withdrawalID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete withdrawal")
	}
	s.mu.Lock()
	kept := s.withdrawals[:0]
	for _, w := range s.withdrawals {
		if w.WithdrawalID != withdrawalID {
			kept = append(kept, w)
		}
	}
	s.withdrawals = kept
	s.mu.Unlock()
	return nil
}

// BulkAddDeposits assigns sequential ids, denormalizes client identity, then
// commits in sequential chunks bounded by the backend's batch ceiling.
// Failures are re-thrown so callers can report partial commits. The working
// set is reconciled afterwards.
func (s *Store) BulkAddDeposits(ctx context.Context, deposits []models.Deposit) error {
	if len(deposits) == 0 {
		return nil
	}
	ids := ident.Sequence(ident.PrefixDeposit, s.lastDepositID(), len(deposits))
	for i := range deposits {
		deposits[i].DepositID = ids[i]
		if deposits[i].ClientName == "" {
			deposits[i].ClientName, deposits[i].Agent = s.clientIdentity(deposits[i].ShopID)
		}
	}
	if _, err := bulkCreate(ctx, s.depositsCol, deposits, s.metrics); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "bulk add deposits")
	}
	if err := s.Refresh(ctx); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "refresh after bulk add")
	}
	return nil
}

// BulkAddWithdrawals mirrors BulkAddDeposits.
func (s *Store) BulkAddWithdrawals(ctx context.Context, withdrawals []models.Withdrawal) error {
	if len(withdrawals) == 0 {
		return nil
	}
	ids := ident.Sequence(ident.PrefixWithdrawal, s.lastWithdrawalID(), len(withdrawals))
	for i := range withdrawals {
		withdrawals[i].WithdrawalID = ids[i]
		if withdrawals[i].ClientName == "" {
			withdrawals[i].ClientName, withdrawals[i].Agent = s.clientIdentity(withdrawals[i].ShopID)
		}
	}
	if _, err := bulkCreate(ctx, s.withdrawalsCol, withdrawals, s.metrics); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "bulk add withdrawals")
	}
	if err := s.Refresh(ctx); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "refresh after bulk add")
	}
	return nil
}

// BulkAddOrders assigns sequential order ids and commits in chunks.
func (s *Store) BulkAddOrders(ctx context.Context, orders []models.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := ident.Sequence(ident.PrefixOrder, s.lastOrderID(), len(orders))
	for i := range orders {
		orders[i].OrderID = ids[i]
		if orders[i].ClientName == "" {
			orders[i].ClientName, orders[i].Agent = s.clientIdentity(orders[i].ShopID)
		}
	}
	if _, err := bulkCreate(ctx, s.ordersCol, orders, s.metrics); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "bulk add orders")
	}
	if err := s.Refresh(ctx); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "refresh after bulk add")
	}
	return nil
}

func (s *Store) replaceOrder(order models.Order) {
	s.mu.Lock()
	for i := range s.orders {
		if s.orders[i].OrderID == order.OrderID {
			s.orders[i] = order
			break
		}
	}
	s.mu.Unlock()
}

func (s *Store) replaceDeposit(deposit models.Deposit) {
	s.mu.Lock()
	for i := range s.deposits {
		if s.deposits[i].DepositID == deposit.DepositID {
			s.deposits[i] = deposit
			break
		}
	}
	s.mu.Unlock()
}

func (s *Store) replaceWithdrawal(withdrawal models.Withdrawal) {
	s.mu.Lock()
	for i := range s.withdrawals {
		if s.withdrawals[i].WithdrawalID == withdrawal.WithdrawalID {
			s.withdrawals[i] = withdrawal
			break
		}
	}
	s.mu.Unlock()
}
