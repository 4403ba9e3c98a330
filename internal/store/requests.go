package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/luisherrera/shopdesk-backend/pkg/db/models"
	"github.com/luisherrera/shopdesk-backend/pkg/enums"
	pkgerrors "github.com/luisherrera/shopdesk-backend/pkg/errors"
)

// AddOrderRequest persists a new request with a store-generated id, Pending
// status and a creation timestamp.
func (s *Store) AddOrderRequest(ctx context.Context, request models.OrderRequest) (models.OrderRequest, error) {
	if request.ShopID == "" {
		return models.OrderRequest{}, pkgerrors.New(pkgerrors.CodeValidation, "shop id is required")
	}
	if !request.Price.IsPositive() {
		return models.OrderRequest{}, pkgerrors.New(pkgerrors.CodeValidation, "price must be greater than zero")
	}

	request.ID = uuid.NewString()
	request.Status = enums.RequestStatusPending
	request.CreatedAt = time.Now()

	if err := s.requestsCol.Create(ctx, request); err != nil {
		return models.OrderRequest{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order request")
	}

	s.mu.Lock()
	s.orderRequests = append(s.orderRequests, request)
	s.mu.Unlock()
	return request, nil
}

// DeleteOrderRequest removes a single request.
func (s *Store) DeleteOrderRequest(ctx context.Context, id string) error {
	if id == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "request id is required")
	}
	if err := s.requestsCol.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete order request")
	}
	s.mu.Lock()
	kept := s.orderRequests[:0]
	for _, r := range s.orderRequests {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	s.orderRequests = kept
	s.mu.Unlock()
	return nil
}

func (s *Store) findOrderRequest(id string) (models.OrderRequest, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.orderRequests {
		if r.ID == id {
			return r, true
		}
	}
	return models.OrderRequest{}, false
}

// ApproveOrderRequest converts a pending request into an order and marks the
// request Approved. The order inherits the request's shop id, date, location
// and price; its id is freshly generated.
func (s *Store) ApproveOrderRequest(ctx context.Context, id string) (models.Order, error) {
	request, ok := s.findOrderRequest(id)
	if !ok {
		return models.Order{}, pkgerrors.New(pkgerrors.CodeNotFound, "order request not found")
	}
	if request.Status != enums.RequestStatusPending {
		return models.Order{}, pkgerrors.New(pkgerrors.CodeConflict, "order request already reviewed")
	}

	order, err := s.AddOrder(ctx, models.Order{
		ShopID:   request.ShopID,
		Date:     request.Date,
		Location: request.Location,
		Price:    request.Price,
		Status:   enums.OrderStatusPending,
	})
	if err != nil {
		return models.Order{}, err
	}

	request.Status = enums.RequestStatusApproved
	if err := s.requestsCol.Update(ctx, request); err != nil {
		// The order is already committed; surface the half-applied state.
		return order, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark request approved")
	}
	s.replaceOrderRequest(request)
	return order, nil
}

// RejectOrderRequest marks a pending request Rejected.
func (s *Store) RejectOrderRequest(ctx context.Context, id string) (models.OrderRequest, error) {
	request, ok := s.findOrderRequest(id)
	if !ok {
		return models.OrderRequest{}, pkgerrors.New(pkgerrors.CodeNotFound, "order request not found")
	}
	if request.Status != enums.RequestStatusPending {
		return models.OrderRequest{}, pkgerrors.New(pkgerrors.CodeConflict, "order request already reviewed")
	}

	request.Status = enums.RequestStatusRejected
	if err := s.requestsCol.Update(ctx, request); err != nil {
		return models.OrderRequest{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark request rejected")
	}
	s.replaceOrderRequest(request)
	return request, nil
}

func (s *Store) replaceOrderRequest(request models.OrderRequest) {
	s.mu.Lock()
	for i := range s.orderRequests {
		if s.orderRequests[i].ID == request.ID {
			s.orderRequests[i] = request
			break
		}
	}
	s.mu.Unlock()
}
