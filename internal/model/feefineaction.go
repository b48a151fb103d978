package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ActionRequest is the caller-supplied description of one monetary
// action. It is never mutated by the pipeline; Amount stays a raw
// string until the single parse point during validation.
type ActionRequest struct {
	Amount          string `json:"amount"`
	Comments        string `json:"comments,omitempty"`
	NotifyPatron    bool   `json:"notify_patron"`
	TransactionInfo string `json:"transaction_info,omitempty"`
	ServicePointID  string `json:"service_point_id,omitempty"`
	UserName        string `json:"user_name,omitempty"`
	PaymentMethod   string `json:"payment_method,omitempty"`
}

// Feefineaction is the append-only ledger record of one applied
// action. Balance is the account's remaining amount immediately after
// the action; once saved the record is never mutated or deleted.
type Feefineaction struct {
	ID              string          `json:"id"`
	AccountID       string          `json:"account_id"`
	UserID          string          `json:"user_id"`
	AmountAction    decimal.Decimal `json:"amount_action"`
	Balance         decimal.Decimal `json:"balance"`
	TypeAction      string          `json:"type_action"`
	DateAction      time.Time       `json:"date_action"`
	Comments        string          `json:"comments,omitempty"`
	Notify          bool            `json:"notify"`
	TransactionInfo string          `json:"transaction_info,omitempty"`
	ServicePointID  string          `json:"service_point_id,omitempty"`
	Source          string          `json:"source,omitempty"`
	PaymentMethod   string          `json:"payment_method,omitempty"`
}

// PatronNoticeEvent is the bus payload handed to the notice worker
// when an action requests patron notification.
type PatronNoticeEvent struct {
	Action    Feefineaction `json:"action"`
	CreatedAt time.Time     `json:"created_at"`
}
