package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"feefines/internal/model"
	"feefines/internal/money"
)

// ActionRepo stores feefineactions in Postgres. The table is
// append-only: the repository exposes no update or delete.
type ActionRepo struct {
	db *pgxpool.Pool
}

func NewActionRepo(db *pgxpool.Pool) *ActionRepo {
	return &ActionRepo{db: db}
}

func (r *ActionRepo) Save(ctx context.Context, action *model.Feefineaction) error {
	const query = `
		INSERT INTO feefineactions (
			id, account_id, user_id, amount_action, balance, type_action,
			date_action, comments, notify, transaction_info,
			service_point_id, source, payment_method
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.db.Exec(ctx, query,
		action.ID, action.AccountID, action.UserID,
		money.Format(action.AmountAction), money.Format(action.Balance),
		action.TypeAction, action.DateAction,
		action.Comments, action.Notify, action.TransactionInfo,
		action.ServicePointID, action.Source, action.PaymentMethod,
	)
	if err != nil {
		return fmt.Errorf("inserting feefineaction %s: %w", action.ID, err)
	}
	return nil
}

func (r *ActionRepo) FindByAccountID(ctx context.Context, accountID string) ([]model.Feefineaction, error) {
	const query = `
		SELECT id, account_id, user_id, amount_action, balance, type_action,
		       date_action, comments, notify, transaction_info,
		       service_point_id, source, payment_method
		FROM feefineactions
		WHERE account_id = $1
		ORDER BY date_action`

	rows, err := r.db.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("querying feefineactions for account %s: %w", accountID, err)
	}
	defer rows.Close()

	var result []model.Feefineaction
	for rows.Next() {
		var (
			a       model.Feefineaction
			amount  string
			balance string
		)
		err := rows.Scan(
			&a.ID, &a.AccountID, &a.UserID, &amount, &balance, &a.TypeAction,
			&a.DateAction, &a.Comments, &a.Notify, &a.TransactionInfo,
			&a.ServicePointID, &a.Source, &a.PaymentMethod,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning feefineaction: %w", err)
		}
		if a.AmountAction, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("stored amount_action is not a decimal: %w", err)
		}
		if a.Balance, err = decimal.NewFromString(balance); err != nil {
			return nil, fmt.Errorf("stored balance is not a decimal: %w", err)
		}
		result = append(result, a)
	}
	return result, rows.Err()
}
