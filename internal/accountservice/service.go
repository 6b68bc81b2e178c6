// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/sonu598/bank-account-server/internal/domain"
	"github.com/sonu598/bank-account-server/pkg/errorspkg"
	"github.com/sonu598/bank-account-server/pkg/passpkg"
	"github.com/sonu598/bank-account-server/pkg/randompkg"
)

// accountNumberRetries bounds retries on generated account number collisions.
const accountNumberRetries = 3

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	CreateAccount(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error)
	GetByUsername(ctx context.Context, username string) (domain.Account, error)
	GetByNumber(ctx context.Context, accountNumber string) (domain.Account, error)
}

// Service facilitates account service layer logic.
type Service struct {
	repo Repo
}

// New returns account service struct to manage account bussines logic.
func New(r Repo) *Service {
	return &Service{repo: r}
}

// Register creates an account with a freshly generated account number.
//
// A positive initial deposit becomes the opening balance and seeds the
// transaction log with a deposit record; an empty deposit opens the
// account at zero.
func (s *Service) Register(ctx context.Context, username, pin, initialDeposit string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	if initialDeposit == "" {
		initialDeposit = "0"
	}

	deposit, err := decimal.NewFromString(initialDeposit)
	if err != nil {
		l.Info().Err(err).Send()
		return domain.Account{}, domain.ErrInvalidAmount
	}

	if deposit.IsNegative() {
		return domain.Account{}, domain.ErrNegativeAmount
	}

	hashedPin, err := passpkg.Hash(pin)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.Account{}, errorspkg.ErrInternal
	}

	arg := domain.CreateAccountParams{
		Username:  username,
		HashedPin: hashedPin,
		Balance:   deposit.String(),
	}

	var account domain.Account

	for i := 0; i < accountNumberRetries; i++ {
		arg.AccountNumber = randompkg.AccountNumber()

		account, err = s.repo.CreateAccount(ctx, arg)
		if err != domain.ErrAccountNumberTaken {
			break
		}

		l.Info().Str("account_number", arg.AccountNumber).Msg("account number collision, retrying")
	}

	if err != nil {
		return domain.Account{}, err
	}

	return account, nil
}

// Get returns the account with the given username.
func (s *Service) Get(ctx context.Context, username string) (domain.Account, error) {
	return s.repo.GetByUsername(ctx, username)
}

// GetByNumber returns the account with the given account number.
func (s *Service) GetByNumber(ctx context.Context, accountNumber string) (domain.Account, error) {
	return s.repo.GetByNumber(ctx, accountNumber)
}
