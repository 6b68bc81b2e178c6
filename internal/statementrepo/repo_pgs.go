// Package statementrepo manages repository layer of the transaction log.
package statementrepo

import (
	"context"
	"database/sql"

	"github.com/sonu598/bank-account-server/internal/domain"
	"github.com/sonu598/bank-account-server/pkg/dbpkg"
	"github.com/sonu598/bank-account-server/pkg/errorspkg"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates transaction log repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns transaction log RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

const createQuery = `
INSERT INTO
    transactions (account_number, kind, amount, balance_after, counterparty, direction)
VALUES
    ($1, $2, $3, $4, $5, $6)
RETURNING id, account_number, kind, amount, balance_after, counterparty, direction, created_at
`

// Create appends one transaction to the account's log and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateTransactionParams) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	var counterparty, direction sql.NullString
	if arg.Counterparty != "" {
		counterparty = sql.NullString{String: arg.Counterparty, Valid: true}
		direction = sql.NullString{String: string(arg.Direction), Valid: true}
	}

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.AccountNumber,
		arg.Kind,
		arg.Amount,
		arg.BalanceAfter,
		counterparty,
		direction,
	)

	txn, err := scanTransaction(row.Scan)
	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "transactions_account_number_fkey":
				return txn, domain.ErrAccountNotFound
			case "transactions_amount_check":
				return txn, domain.ErrNegativeAmount
			}
		}

		return txn, errorspkg.ErrInternal
	}

	return txn, nil
}

const listQuery = `
SELECT id, account_number, kind, amount, balance_after, counterparty, direction, created_at
FROM transactions
WHERE account_number = $1
ORDER BY id
`

// List returns all transactions of the given account in insertion order.
func (r *RepoPGS) List(ctx context.Context, accountNumber string) ([]domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery, accountNumber)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Transaction{}

	for rows.Next() {
		txn, err := scanTransaction(rows.Scan)
		if err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, txn)
	}

	if err := rows.Close(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

func scanTransaction(scan func(...any) error) (domain.Transaction, error) {
	var (
		txn          domain.Transaction
		counterparty sql.NullString
		direction    sql.NullString
	)

	err := scan(
		&txn.ID,
		&txn.AccountNumber,
		&txn.Kind,
		&txn.Amount,
		&txn.BalanceAfter,
		&counterparty,
		&direction,
		&txn.CreatedAt,
	)

	txn.Counterparty = counterparty.String
	txn.Direction = domain.TransferDirection(direction.String)

	return txn, err
}
