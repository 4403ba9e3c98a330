package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/luisherrera/shopdesk-backend/pkg/enums"
)

// Withdrawal is money paid out to a client. Mirrors Deposit.
type Withdrawal struct {
	WithdrawalID string            `gorm:"column:withdrawal_id;primaryKey" json:"withdrawalId"`
	ShopID       string            `gorm:"column:shop_id;index;not null" json:"shopId"`
	ClientName   string            `gorm:"column:client_name;not null" json:"clientName"`
	Agent        string            `gorm:"column:agent;not null" json:"agent"`
	Date         time.Time         `gorm:"column:date;not null" json:"date"`
	Amount       decimal.Decimal   `gorm:"column:amount;type:numeric(12,2);not null" json:"amount"`
	PaymentMode  enums.PaymentMode `gorm:"column:payment_mode;not null" json:"paymentMode"`
	CreatedAt    time.Time         `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Withdrawal) TableName() string {
	return "withdrawals"
}

func (Withdrawal) Collection() string {
	return "withdrawals"
}

func (w Withdrawal) RecordID() string {
	return w.WithdrawalID
}

func (w Withdrawal) ShopRef() string {
	return w.ShopID
}
