package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/luisherrera/shopdesk-backend/pkg/enums"
)

// Deposit is money paid in by a client.
type Deposit struct {
	DepositID   string            `gorm:"column:deposit_id;primaryKey" json:"depositId"`
	ShopID      string            `gorm:"column:shop_id;index;not null" json:"shopId"`
	ClientName  string            `gorm:"column:client_name;not null" json:"clientName"`
	Agent       string            `gorm:"column:agent;not null" json:"agent"`
	Date        time.Time         `gorm:"column:date;not null" json:"date"`
	Amount      decimal.Decimal   `gorm:"column:amount;type:numeric(12,2);not null" json:"amount"`
	PaymentMode enums.PaymentMode `gorm:"column:payment_mode;not null" json:"paymentMode"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Deposit) TableName() string {
	return "deposits"
}

func (Deposit) Collection() string {
	return "deposits"
}

func (d Deposit) RecordID() string {
	return d.DepositID
}

func (d Deposit) ShopRef() string {
	return d.ShopID
}
