// Package statementservice manages business logic layer of account statements.
package statementservice

import (
	"context"

	"github.com/sonu598/bank-account-server/internal/domain"
)

// Repo provides data access layer interface needed by statement service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package statementservice
type Repo interface {
	List(ctx context.Context, accountNumber string) ([]domain.Transaction, error)
}

// AccountResolver resolves the account whose statement is requested.
type AccountResolver interface {
	Get(ctx context.Context, username string) (domain.Account, error)
}

// Service facilitates statement service layer logic.
type Service struct {
	repo     Repo
	accounts AccountResolver
}

// New returns statement service struct to manage statement bussines logic.
func New(r Repo, accounts AccountResolver) *Service {
	return &Service{
		repo:     r,
		accounts: accounts,
	}
}

// GetStatement returns the account's transactions in insertion order.
// It is read only and leaves no trace in the ledger.
func (s *Service) GetStatement(ctx context.Context, username string) ([]domain.Transaction, error) {
	account, err := s.accounts.Get(ctx, username)
	if err != nil {
		return nil, err
	}

	return s.repo.List(ctx, account.AccountNumber)
}
