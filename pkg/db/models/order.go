package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/luisherrera/shopdesk-backend/pkg/enums"
)

// Order is a client purchase. ClientName and Agent are denormalized copies
// captured at creation time; the client-edit path rewrites them when the
// owning client changes.
type Order struct {
	OrderID    string            `gorm:"column:order_id;primaryKey" json:"orderId"`
	ShopID     string            `gorm:"column:shop_id;index;not null" json:"shopId"`
	ClientName string            `gorm:"column:client_name;not null" json:"clientName"`
	Agent      string            `gorm:"column:agent;not null" json:"agent"`
	Date       time.Time         `gorm:"column:date;not null" json:"date"`
	Location   string            `gorm:"column:location;not null" json:"location"`
	Price      decimal.Decimal   `gorm:"column:price;type:numeric(12,2);not null" json:"price"`
	Status     enums.OrderStatus `gorm:"column:status;not null" json:"status"`
	CreatedAt  time.Time         `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Order) TableName() string {
	return "orders"
}

func (Order) Collection() string {
	return "orders"
}

func (o Order) RecordID() string {
	return o.OrderID
}

func (o Order) ShopRef() string {
	return o.ShopID
}
