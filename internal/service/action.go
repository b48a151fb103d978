package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"feefines/internal/model"
	"feefines/internal/money"
)

// AccountRepository is the account store consumed by the pipeline.
// GetByID returns model.ErrAccountNotFound for unknown ids; Update
// returns model.ErrConflict when a concurrent writer won.
type AccountRepository interface {
	GetByID(ctx context.Context, id string) (*model.Account, error)
	Update(ctx context.Context, acc *model.Account) error
}

// ActionRepository is the append-only feefineaction store.
type ActionRepository interface {
	Save(ctx context.Context, action *model.Feefineaction) error
	FindByAccountID(ctx context.Context, accountID string) ([]model.Feefineaction, error)
}

// ActionValidator decides whether an account accepts the requested
// amount. The raw string is passed through untouched; the pipeline
// parses it only after validation succeeds.
type ActionValidator interface {
	Validate(ctx context.Context, acc *model.Account, rawAmount string) error
}

// PatronNotifier delivers the ledger record to the patron-notice
// channel. Failures are logged and swallowed by the pipeline.
type PatronNotifier interface {
	SendPatronNotice(ctx context.Context, action *model.Feefineaction) error
}

// FeeFineService is the business surface the transports depend on.
type FeeFineService interface {
	Pay(ctx context.Context, accountID string, req model.ActionRequest) (*PayResult, error)
	GetAccount(ctx context.Context, accountID string) (*model.Account, error)
	FindActionsForAccount(ctx context.Context, accountID string) ([]model.Feefineaction, error)
}

// PayResult is the post-action state returned to the caller: the
// updated account and the ledger record created for the action.
type PayResult struct {
	Account *model.Account       `json:"account"`
	Action  *model.Feefineaction `json:"feefineaction"`
}

// ActionService runs the monetary action pipeline:
// fetch -> validate -> record -> apply -> notify, strictly in order and
// fail-fast. Intermediate results travel in an actionContext value
// threaded through the steps; no step shares mutable state with
// another invocation.
type ActionService struct {
	accounts  AccountRepository
	actions   ActionRepository
	validator ActionValidator
	notifier  PatronNotifier
}

func NewActionService(accounts AccountRepository, actions ActionRepository,
	validator ActionValidator, notifier PatronNotifier) *ActionService {

	return &ActionService{
		accounts:  accounts,
		actions:   actions,
		validator: validator,
		notifier:  notifier,
	}
}

// actionContext carries one invocation's accumulated results. Steps
// receive it by value and return a copy with one more field populated,
// so a failed step can never leave half-written state behind.
type actionContext struct {
	kind            model.ActionKind
	accountID       string
	request         model.ActionRequest
	account         *model.Account
	requestedAmount decimal.Decimal
	action          *model.Feefineaction
	shouldClose     bool
}

func (c actionContext) withAccount(acc *model.Account) actionContext {
	c.account = acc
	return c
}

func (c actionContext) withRequestedAmount(amount decimal.Decimal) actionContext {
	c.requestedAmount = amount
	return c
}

func (c actionContext) withAction(action *model.Feefineaction, shouldClose bool) actionContext {
	c.action = action
	c.shouldClose = shouldClose
	return c
}

// Pay applies a payment against the account's remaining balance.
func (s *ActionService) Pay(ctx context.Context, accountID string, req model.ActionRequest) (*PayResult, error) {
	actx, err := s.performAction(ctx, model.ActionPay, accountID, req)
	if err != nil {
		return nil, err
	}
	return &PayResult{Account: actx.account, Action: actx.action}, nil
}

// GetAccount returns the current stored state of one account.
func (s *ActionService) GetAccount(ctx context.Context, accountID string) (*model.Account, error) {
	return s.accounts.GetByID(ctx, accountID)
}

// FindActionsForAccount lists the account's ledger records, oldest first.
func (s *ActionService) FindActionsForAccount(ctx context.Context, accountID string) ([]model.Feefineaction, error) {
	if _, err := s.accounts.GetByID(ctx, accountID); err != nil {
		return nil, err
	}
	return s.actions.FindByAccountID(ctx, accountID)
}

type actionStep func(ctx context.Context, actx actionContext) (actionContext, error)

func (s *ActionService) performAction(ctx context.Context, kind model.ActionKind,
	accountID string, req model.ActionRequest) (actionContext, error) {

	actx := actionContext{kind: kind, accountID: accountID, request: req}

	steps := []actionStep{
		s.findAccount,
		s.validateAction,
		s.createAction,
		s.updateAccount,
		s.sendPatronNotice,
	}
	for _, step := range steps {
		// A cancelled caller must not trigger further steps; whatever
		// is already durable stays durable.
		if err := ctx.Err(); err != nil {
			return actx, err
		}
		var err error
		if actx, err = step(ctx, actx); err != nil {
			return actx, err
		}
	}
	return actx, nil
}

func (s *ActionService) findAccount(ctx context.Context, actx actionContext) (actionContext, error) {
	acc, err := s.accounts.GetByID(ctx, actx.accountID)
	if err != nil {
		return actx, err
	}
	return actx.withAccount(acc), nil
}

// validateAction is the single point where the raw amount string
// becomes an exact decimal. Later steps never re-parse or re-check it.
func (s *ActionService) validateAction(ctx context.Context, actx actionContext) (actionContext, error) {
	if err := s.validator.Validate(ctx, actx.account, actx.request.Amount); err != nil {
		return actx, err
	}
	amount, err := money.Parse(actx.request.Amount)
	if err != nil {
		return actx, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}
	return actx.withRequestedAmount(amount), nil
}

func (s *ActionService) createAction(ctx context.Context, actx actionContext) (actionContext, error) {
	remainingAfter := money.Subtract(actx.account.Remaining, actx.requestedAmount)
	shouldClose := money.IsZero(remainingAfter)

	typeAction := actx.kind.PartialResult()
	if shouldClose {
		typeAction = actx.kind.FullResult()
	}

	req := actx.request
	action := &model.Feefineaction{
		ID:              uuid.NewString(),
		AccountID:       actx.accountID,
		UserID:          actx.account.UserID,
		AmountAction:    actx.requestedAmount,
		Balance:         remainingAfter,
		TypeAction:      typeAction,
		DateAction:      time.Now().UTC(),
		Comments:        req.Comments,
		Notify:          req.NotifyPatron,
		TransactionInfo: req.TransactionInfo,
		ServicePointID:  req.ServicePointID,
		Source:          req.UserName,
		PaymentMethod:   req.PaymentMethod,
	}

	if err := s.actions.Save(ctx, action); err != nil {
		return actx, fmt.Errorf("saving feefineaction: %w", err)
	}
	return actx.withAction(action, shouldClose), nil
}

// updateAccount reflects the saved ledger record back into the
// account. It runs only after the record is durable: an account
// mutation without an audit record is never possible, while the
// reverse is a reconcilable inconsistency because the record carries
// the authoritative post-balance.
func (s *ActionService) updateAccount(ctx context.Context, actx actionContext) (actionContext, error) {
	acc := actx.account
	acc.PaymentStatus = actx.action.TypeAction

	if actx.shouldClose {
		acc.Status = model.FeeStatusClosed
		acc.Remaining = money.Zero()
	} else {
		acc.Status = model.FeeStatusOpen
		acc.Remaining = actx.action.Balance
	}

	if err := s.accounts.Update(ctx, acc); err != nil {
		return actx, err
	}
	return actx, nil
}

func (s *ActionService) sendPatronNotice(ctx context.Context, actx actionContext) (actionContext, error) {
	if !actx.request.NotifyPatron {
		return actx, nil
	}
	// Fire and forget: a failed notice never fails the action.
	if err := s.notifier.SendPatronNotice(ctx, actx.action); err != nil {
		slog.Error("failed to send patron notice",
			"account_id", actx.accountID,
			"action_id", actx.action.ID,
			"error", err,
		)
	}
	return actx, nil
}
