// Package ledgerservice manages business logic layer of ledger operations.
//
// Every operation validates its amount before touching any state,
// re-verifies the caller's PIN at mutation time and delegates the actual
// commit to the repository, which applies it atomically.
package ledgerservice

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/sonu598/bank-account-server/internal/domain"
	"github.com/sonu598/bank-account-server/internal/lockout"
)

// Repo provides data access layer interface needed by ledger service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package ledgerservice
type Repo interface {
	Deposit(ctx context.Context, arg domain.CreateEntryParams) (domain.EntryTxResult, error)
	Withdraw(ctx context.Context, arg domain.CreateEntryParams) (domain.EntryTxResult, error)
	Transfer(ctx context.Context, arg domain.CreateTransferParams) (domain.TransferTxResult, error)
}

// Authenticator verifies the caller's PIN under the lockout policy.
type Authenticator interface {
	VerifyPIN(ctx context.Context, username, pin string) (domain.Account, error)
}

// AccountResolver resolves transfer recipients.
type AccountResolver interface {
	GetByNumber(ctx context.Context, accountNumber string) (domain.Account, error)
}

// Service facilitates ledger service layer logic.
type Service struct {
	repo     Repo
	auth     Authenticator
	accounts AccountResolver
	now      func() time.Time
}

// New returns ledger service struct to manage ledger bussines logic.
func New(r Repo, auth Authenticator, accounts AccountResolver) *Service {
	return &Service{
		repo:     r,
		auth:     auth,
		accounts: accounts,
		now:      time.Now,
	}
}

func parseAmount(ctx context.Context, amount string) (decimal.Decimal, error) {
	l := zerolog.Ctx(ctx)

	amountDecimal, err := decimal.NewFromString(amount)
	if err != nil {
		l.Info().Err(err).Send()
		return decimal.Decimal{}, domain.ErrInvalidAmount
	}

	if amountDecimal.LessThanOrEqual(decimal.Zero) {
		return decimal.Decimal{}, domain.ErrNegativeAmount
	}

	return amountDecimal, nil
}

// Deposit credits the caller's account with the given amount.
func (s *Service) Deposit(ctx context.Context, username, pin, amount string) (domain.EntryTxResult, error) {
	amountDecimal, err := parseAmount(ctx, amount)
	if err != nil {
		return domain.EntryTxResult{}, err
	}

	account, err := s.auth.VerifyPIN(ctx, username, pin)
	if err != nil {
		return domain.EntryTxResult{}, err
	}

	return s.repo.Deposit(ctx, domain.CreateEntryParams{
		AccountNumber: account.AccountNumber,
		Amount:        amountDecimal.String(),
	})
}

// Withdraw debits the caller's account with the given amount.
func (s *Service) Withdraw(ctx context.Context, username, pin, amount string) (domain.EntryTxResult, error) {
	l := zerolog.Ctx(ctx)

	amountDecimal, err := parseAmount(ctx, amount)
	if err != nil {
		return domain.EntryTxResult{}, err
	}

	account, err := s.auth.VerifyPIN(ctx, username, pin)
	if err != nil {
		return domain.EntryTxResult{}, err
	}

	balance, err := decimal.NewFromString(account.Balance)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.EntryTxResult{}, err
	}

	if balance.LessThan(amountDecimal) {
		return domain.EntryTxResult{}, domain.ErrInsufficientFunds
	}

	return s.repo.Withdraw(ctx, domain.CreateEntryParams{
		AccountNumber: account.AccountNumber,
		Amount:        amountDecimal.String(),
	})
}

// Transfer moves the given amount from the caller's account to the
// recipient account.
//
// Sender and recipient are compared by resolved identity, both must be
// unlocked and the sender's balance must cover the amount. The commit
// itself debits, credits and appends both transaction records as one
// atomic unit.
func (s *Service) Transfer(ctx context.Context, username, pin, recipientNumber, amount string) (domain.TransferTxResult, error) {
	l := zerolog.Ctx(ctx)

	amountDecimal, err := parseAmount(ctx, amount)
	if err != nil {
		return domain.TransferTxResult{}, err
	}

	sender, err := s.auth.VerifyPIN(ctx, username, pin)
	if err != nil {
		return domain.TransferTxResult{}, err
	}

	recipient, err := s.accounts.GetByNumber(ctx, recipientNumber)
	if err != nil {
		l.Info().Err(err).Send()
		return domain.TransferTxResult{}, err
	}

	if sender.ID == recipient.ID {
		return domain.TransferTxResult{}, domain.ErrSelfTransfer
	}

	recipientLock := lockout.State{FailedAttempts: recipient.FailedAttempts, LockedAt: recipient.LockedAt}
	if recipientLock.Active(s.now()) {
		return domain.TransferTxResult{}, domain.ErrAccountLocked
	}

	senderBalance, err := decimal.NewFromString(sender.Balance)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.TransferTxResult{}, err
	}

	if senderBalance.LessThan(amountDecimal) {
		return domain.TransferTxResult{}, domain.ErrInsufficientFunds
	}

	return s.repo.Transfer(ctx, domain.CreateTransferParams{
		SenderNumber:    sender.AccountNumber,
		RecipientNumber: recipient.AccountNumber,
		Amount:          amountDecimal.String(),
	})
}
