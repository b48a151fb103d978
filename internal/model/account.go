package model

import "github.com/shopspring/decimal"

// FeeStatus is the lifecycle state of a fee/fine account.
type FeeStatus string

const (
	FeeStatusOpen   FeeStatus = "Open"
	FeeStatusClosed FeeStatus = "Closed"
)

// Account is a patron's outstanding fee/fine balance. The service
// holds a transient copy for the duration of one action; the store
// owns the durable record. Version is the optimistic-concurrency
// token bumped by every successful update.
type Account struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user_id"`
	Remaining     decimal.Decimal `json:"remaining"`
	Status        FeeStatus       `json:"status"`
	PaymentStatus string          `json:"payment_status"`
	Version       int64           `json:"version"`
}
