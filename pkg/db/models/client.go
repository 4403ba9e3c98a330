package models

import (
	"time"

	"github.com/luisherrera/shopdesk-backend/pkg/enums"
)

// Client is the canonical client record. ShopID is assigned once at creation
// and never changes; every transaction record references it.
type Client struct {
	ShopID     string             `gorm:"column:shop_id;primaryKey" json:"shopId"`
	ClientName string             `gorm:"column:client_name;not null" json:"clientName"`
	Agent      string             `gorm:"column:agent;not null" json:"agent"`
	KYCDate    time.Time          `gorm:"column:kyc_date;not null" json:"kycDate"`
	Status     enums.ClientStatus `gorm:"column:status;not null" json:"status"`
	CreatedAt  time.Time          `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time          `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

// TableName implements gorm's table naming override.
func (Client) TableName() string {
	return "clients"
}

// Collection returns the collection key shared by the remote table and the
// local cache entry.
func (Client) Collection() string {
	return "clients"
}

// RecordID returns the natural key.
func (c Client) RecordID() string {
	return c.ShopID
}

// ShopRef returns the shop id the record belongs to.
func (c Client) ShopRef() string {
	return c.ShopID
}
