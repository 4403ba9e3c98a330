package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/luisherrera/shopdesk-backend/pkg/enums"
)

// OrderRequest is a client-submitted order awaiting review. Approval converts
// it into an Order.
type OrderRequest struct {
	ID        string              `gorm:"column:id;primaryKey" json:"id"`
	ShopID    string              `gorm:"column:shop_id;index;not null" json:"shopId"`
	Date      time.Time           `gorm:"column:date;not null" json:"date"`
	Location  string              `gorm:"column:location;not null" json:"location"`
	Price     decimal.Decimal     `gorm:"column:price;type:numeric(12,2);not null" json:"price"`
	Status    enums.RequestStatus `gorm:"column:status;not null" json:"status"`
	CreatedAt time.Time           `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time           `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (OrderRequest) TableName() string {
	return "order_requests"
}

func (OrderRequest) Collection() string {
	return "orderRequests"
}

func (r OrderRequest) RecordID() string {
	return r.ID
}

func (r OrderRequest) ShopRef() string {
	return r.ShopID
}
