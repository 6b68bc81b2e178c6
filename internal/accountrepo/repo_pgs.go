// Package accountrepo manages repository layer of accounts.
package accountrepo

import (
	"context"
	"database/sql"
	"time"

	"github.com/sonu598/bank-account-server/internal/domain"
	"github.com/sonu598/bank-account-server/pkg/dbpkg"
	"github.com/sonu598/bank-account-server/pkg/errorspkg"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates account repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns account RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const accountColumns = `
id, username, account_number, hashed_pin, balance, failed_attempts, locked_at, created_at`

func scanAccount(row *sql.Row) (domain.Account, error) {
	var (
		a        domain.Account
		lockedAt sql.NullTime
	)

	err := row.Scan(
		&a.ID,
		&a.Username,
		&a.AccountNumber,
		&a.HashedPin,
		&a.Balance,
		&a.FailedAttempts,
		&lockedAt,
		&a.CreatedAt,
	)

	if lockedAt.Valid {
		t := lockedAt.Time
		a.LockedAt = &t
	}

	return a, err
}

const createQuery = `
INSERT INTO
    accounts (username, account_number, hashed_pin, balance)
VALUES
    ($1, $2, $3, $4)
RETURNING` + accountColumns

// Create creates the account and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, arg.Username, arg.AccountNumber, arg.HashedPin, arg.Balance)

	a, err := scanAccount(row)
	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "accounts_username_key":
				return a, domain.ErrUsernameAlreadyExists
			case "accounts_account_number_key":
				return a, domain.ErrAccountNumberTaken
			case "accounts_balance_check":
				return a, domain.ErrNegativeAmount
			}
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const getByUsernameQuery = `
SELECT` + accountColumns + `
FROM accounts
WHERE username = $1
`

// GetByUsername returns the account with the given username.
func (r *RepoPGS) GetByUsername(ctx context.Context, username string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getByUsernameQuery, username)

	a, err := scanAccount(row)
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const getByNumberQuery = `
SELECT` + accountColumns + `
FROM accounts
WHERE account_number = $1
`

// GetByNumber returns the account with the given account number.
func (r *RepoPGS) GetByNumber(ctx context.Context, accountNumber string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getByNumberQuery, accountNumber)

	a, err := scanAccount(row)
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const addBalanceQuery = `
UPDATE accounts
SET balance = balance + $1
WHERE account_number = $2
RETURNING` + accountColumns

// AddBalance changes the account's balance and returns the changed account.
//
// A negative amount debits the account; the balance check constraint
// rejects any debit that would take the balance below zero.
func (r *RepoPGS) AddBalance(ctx context.Context, amount, accountNumber string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, addBalanceQuery, amount, accountNumber)

	a, err := scanAccount(row)
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "accounts_balance_check" {
				return a, domain.ErrInsufficientFunds
			}
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const setLockoutQuery = `
UPDATE accounts
SET failed_attempts = $1, locked_at = $2
WHERE username = $3
RETURNING` + accountColumns

// SetLockout persists the lockout state for the given username.
// A nil lockedAt stores NULL, marking the account unlocked.
func (r *RepoPGS) SetLockout(ctx context.Context, username string, failedAttempts int32, lockedAt *time.Time) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	var lockedAtArg sql.NullTime
	if lockedAt != nil {
		lockedAtArg = sql.NullTime{Time: *lockedAt, Valid: true}
	}

	row := r.db.QueryRowContext(ctx, setLockoutQuery, failedAttempts, lockedAtArg, username)

	a, err := scanAccount(row)
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}
