// Package ledgerrepo manages repository layer of atomic ledger commits.
//
// Every operation here mutates one or two account balances together with
// the matching transaction-log appends inside a single database
// transaction, so a half-applied ledger state is unreachable.
package ledgerrepo

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/sonu598/bank-account-server/internal/accountrepo"
	"github.com/sonu598/bank-account-server/internal/domain"
	"github.com/sonu598/bank-account-server/internal/statementrepo"
	"github.com/sonu598/bank-account-server/pkg/errorspkg"
)

// RepoPGS facilitates ledger repository layer logic.
type RepoPGS struct {
	conn *sql.DB
}

// NewRepoPGS returns ledger RepoPGS with a connection to start transactions.
func NewRepoPGS(conn *sql.DB) *RepoPGS {
	return &RepoPGS{conn: conn}
}

// execTx executes fn within a database transaction.
func (r *RepoPGS) execTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	l := zerolog.Ctx(ctx)

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			l.Error().Err(rbErr).Msg("rollback failed")
		}

		return err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	return nil
}

// CreateAccount creates the account and, for a positive opening balance,
// the initial deposit transaction within a single database transaction.
func (r *RepoPGS) CreateAccount(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error) {
	var account domain.Account

	err := r.execTx(ctx, func(tx *sql.Tx) error {
		accountRepo := accountrepo.NewRepoPGS(tx)
		statementRepo := statementrepo.NewRepoPGS(tx)

		var err error

		account, err = accountRepo.Create(ctx, arg)
		if err != nil {
			return err
		}

		if arg.Balance == "" || arg.Balance == "0" {
			return nil
		}

		_, err = statementRepo.Create(ctx, domain.CreateTransactionParams{
			AccountNumber: account.AccountNumber,
			Kind:          domain.KindDeposit,
			Amount:        arg.Balance,
			BalanceAfter:  account.Balance,
		})

		return err
	})

	if err != nil {
		return domain.Account{}, err
	}

	return account, nil
}

// GetByUsername returns the account with the given username.
func (r *RepoPGS) GetByUsername(ctx context.Context, username string) (domain.Account, error) {
	return accountrepo.NewRepoPGS(r.conn).GetByUsername(ctx, username)
}

// GetByNumber returns the account with the given account number.
func (r *RepoPGS) GetByNumber(ctx context.Context, accountNumber string) (domain.Account, error) {
	return accountrepo.NewRepoPGS(r.conn).GetByNumber(ctx, accountNumber)
}

// Deposit credits the account and appends the deposit transaction atomically.
func (r *RepoPGS) Deposit(ctx context.Context, arg domain.CreateEntryParams) (domain.EntryTxResult, error) {
	return r.entryTx(ctx, arg, domain.KindDeposit)
}

// Withdraw debits the account and appends the withdrawal transaction atomically.
func (r *RepoPGS) Withdraw(ctx context.Context, arg domain.CreateEntryParams) (domain.EntryTxResult, error) {
	return r.entryTx(ctx, arg, domain.KindWithdrawal)
}

func (r *RepoPGS) entryTx(ctx context.Context, arg domain.CreateEntryParams, kind domain.TransactionKind) (domain.EntryTxResult, error) {
	var result domain.EntryTxResult

	err := r.execTx(ctx, func(tx *sql.Tx) error {
		accountRepo := accountrepo.NewRepoPGS(tx)
		statementRepo := statementrepo.NewRepoPGS(tx)

		amount := arg.Amount
		if kind == domain.KindWithdrawal || kind == domain.KindCharge {
			amount = "-" + amount
		}

		var err error

		result.Account, err = accountRepo.AddBalance(ctx, amount, arg.AccountNumber)
		if err != nil {
			return err
		}

		result.Transaction, err = statementRepo.Create(ctx, domain.CreateTransactionParams{
			AccountNumber: arg.AccountNumber,
			Kind:          kind,
			Amount:        arg.Amount,
			BalanceAfter:  result.Account.Balance,
		})

		return err
	})

	if err != nil {
		return domain.EntryTxResult{}, err
	}

	return result, nil
}

// Transfer moves money between two accounts.
//
// It debits the sender, credits the recipient and appends one transaction
// per side within a single database transaction. Either everything commits
// or nothing does.
func (r *RepoPGS) Transfer(ctx context.Context, arg domain.CreateTransferParams) (domain.TransferTxResult, error) {
	var result domain.TransferTxResult

	err := r.execTx(ctx, func(tx *sql.Tx) error {
		accountRepo := accountrepo.NewRepoPGS(tx)
		statementRepo := statementrepo.NewRepoPGS(tx)

		var err error

		// To avoid deadlocks update balances in consistent account number order.
		if arg.SenderNumber < arg.RecipientNumber {
			result.Sender, result.Recipient, err = addBalances(ctx, accountRepo, addBalanceParams{
				number1: arg.SenderNumber,
				amount1: "-" + arg.Amount,
				number2: arg.RecipientNumber,
				amount2: arg.Amount,
			})
		} else {
			result.Recipient, result.Sender, err = addBalances(ctx, accountRepo, addBalanceParams{
				number1: arg.RecipientNumber,
				amount1: arg.Amount,
				number2: arg.SenderNumber,
				amount2: "-" + arg.Amount,
			})
		}

		if err != nil {
			return err
		}

		result.SenderTransaction, err = statementRepo.Create(ctx, domain.CreateTransactionParams{
			AccountNumber: arg.SenderNumber,
			Kind:          domain.KindTransfer,
			Amount:        arg.Amount,
			BalanceAfter:  result.Sender.Balance,
			Counterparty:  arg.RecipientNumber,
			Direction:     domain.DirectionSent,
		})
		if err != nil {
			return err
		}

		result.RecipientTransaction, err = statementRepo.Create(ctx, domain.CreateTransactionParams{
			AccountNumber: arg.RecipientNumber,
			Kind:          domain.KindTransfer,
			Amount:        arg.Amount,
			BalanceAfter:  result.Recipient.Balance,
			Counterparty:  arg.SenderNumber,
			Direction:     domain.DirectionReceived,
		})

		return err
	})

	if err != nil {
		return domain.TransferTxResult{}, err
	}

	return result, nil
}

type addBalanceParams struct {
	number1 string
	amount1 string
	number2 string
	amount2 string
}

func addBalances(ctx context.Context, r *accountrepo.RepoPGS, arg addBalanceParams) (domain.Account, domain.Account, error) {
	account1, err := r.AddBalance(ctx, arg.amount1, arg.number1)
	if err != nil {
		return domain.Account{}, domain.Account{}, err
	}

	account2, err := r.AddBalance(ctx, arg.amount2, arg.number2)
	if err != nil {
		return domain.Account{}, domain.Account{}, err
	}

	return account1, account2, nil
}
