package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"feefines/internal/model"
	"feefines/internal/money"
)

// AccountRepo stores accounts in Postgres with a Redis read-through
// cache. Reads try the cache first and warm it from the database on a
// miss; updates are optimistic (version check) and invalidate the
// cache key on success.
type AccountRepo struct {
	db  *pgxpool.Pool
	rdb *redis.Client
}

func NewAccountRepo(db *pgxpool.Pool, rdb *redis.Client) *AccountRepo {
	return &AccountRepo{db: db, rdb: rdb}
}

func accountKey(id string) string {
	return "account:" + id
}

func (r *AccountRepo) GetByID(ctx context.Context, id string) (*model.Account, error) {
	if cached, err := r.rdb.Get(ctx, accountKey(id)).Bytes(); err == nil {
		var acc model.Account
		if err := json.Unmarshal(cached, &acc); err == nil {
			return &acc, nil
		}
		// Corrupt cache entry: drop it and fall through to Postgres.
		_ = r.rdb.Del(ctx, accountKey(id)).Err()
	} else if !errors.Is(err, redis.Nil) {
		slog.Warn("account cache read failed", "account_id", id, "error", err)
	}

	acc, err := r.fetchAccount(ctx, id)
	if err != nil {
		return nil, err
	}
	r.warmCache(ctx, acc)
	return acc, nil
}

func (r *AccountRepo) fetchAccount(ctx context.Context, id string) (*model.Account, error) {
	const query = `
		SELECT id, user_id, remaining, status, payment_status, version
		FROM accounts
		WHERE id = $1`

	var (
		acc       model.Account
		remaining string
		status    string
	)
	err := r.db.QueryRow(ctx, query, id).Scan(
		&acc.ID, &acc.UserID, &remaining, &status, &acc.PaymentStatus, &acc.Version,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAccountNotFound
		}
		return nil, fmt.Errorf("querying account %s: %w", id, err)
	}

	acc.Status = model.FeeStatus(status)
	acc.Remaining, err = decimal.NewFromString(remaining)
	if err != nil {
		return nil, fmt.Errorf("stored remaining for account %s is not a decimal: %w", id, err)
	}
	return &acc, nil
}

// Update persists the account if no concurrent writer bumped the
// version since it was loaded. Zero affected rows on a known account
// means the optimistic check lost: the caller gets ErrConflict and may
// retry with fresh state.
func (r *AccountRepo) Update(ctx context.Context, acc *model.Account) error {
	const query = `
		UPDATE accounts
		SET remaining = $1, status = $2, payment_status = $3, version = version + 1
		WHERE id = $4 AND version = $5`

	tag, err := r.db.Exec(ctx, query,
		money.Format(acc.Remaining), string(acc.Status), acc.PaymentStatus,
		acc.ID, acc.Version,
	)
	if err != nil {
		return fmt.Errorf("updating account %s: %w", acc.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrConflict
	}
	acc.Version++

	// Invalidation is best effort; a stale key only costs one extra
	// conflict on the next writer.
	if err := r.rdb.Del(ctx, accountKey(acc.ID)).Err(); err != nil {
		slog.Warn("account cache invalidation failed", "account_id", acc.ID, "error", err)
	}
	return nil
}

func (r *AccountRepo) warmCache(ctx context.Context, acc *model.Account) {
	payload, err := json.Marshal(acc)
	if err != nil {
		return
	}
	if err := r.rdb.Set(ctx, accountKey(acc.ID), payload, 0).Err(); err != nil {
		slog.Warn("account cache write failed", "account_id", acc.ID, "error", err)
	}
}
