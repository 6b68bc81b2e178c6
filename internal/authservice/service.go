// Package authservice manages authentication and lockout business logic.
package authservice

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/sonu598/bank-account-server/internal/domain"
	"github.com/sonu598/bank-account-server/internal/lockout"
	"github.com/sonu598/bank-account-server/pkg/configpkg"
	"github.com/sonu598/bank-account-server/pkg/errorspkg"
	"github.com/sonu598/bank-account-server/pkg/passpkg"
	"github.com/sonu598/bank-account-server/pkg/tokenpkg"
)

// Repo provides data access layer interface needed by auth service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package authservice
type Repo interface {
	GetByUsername(ctx context.Context, username string) (domain.Account, error)
	SetLockout(ctx context.Context, username string, failedAttempts int32, lockedAt *time.Time) (domain.Account, error)
}

// Service facilitates auth service layer logic.
type Service struct {
	repo Repo
	// TokenMaker issues and verifies access tokens; exported for the
	// auth middleware.
	TokenMaker tokenpkg.Maker
	config     configpkg.Config
	now        func() time.Time
}

// New returns auth service struct to manage authentication bussines logic.
func New(r Repo, config configpkg.Config, tokenMaker tokenpkg.Maker) *Service {
	return &Service{
		repo:       r,
		TokenMaker: tokenMaker,
		config:     config,
		now:        time.Now,
	}
}

// VerifyPIN runs a full authentication attempt against the account's
// lockout state and credential hash.
//
// While the lock window is open the attempt is rejected without being
// counted. An expired lock resets the state before the PIN check. Every
// failed check increments the counter and the third failure locks the
// account; a successful check resets the counter.
func (s *Service) VerifyPIN(ctx context.Context, username, pin string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	account, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return domain.Account{}, err
	}

	now := s.now()
	state := lockout.State{FailedAttempts: account.FailedAttempts, LockedAt: account.LockedAt}

	begun, err := state.Begin(now)
	if err != nil {
		l.Info().Str("username", username).Msg("rejected attempt on locked account")
		return domain.Account{}, err
	}

	if begun != state {
		// The lock window elapsed; persist the automatic unlock before
		// the attempt is evaluated.
		account, err = s.repo.SetLockout(ctx, username, begun.FailedAttempts, begun.LockedAt)
		if err != nil {
			return domain.Account{}, err
		}
	}

	if err := passpkg.Check(pin, account.HashedPin); err != nil {
		next, failErr := begun.Fail(now)

		if _, err := s.repo.SetLockout(ctx, username, next.FailedAttempts, next.LockedAt); err != nil {
			l.Error().Err(err).Send()
			return domain.Account{}, errorspkg.ErrInternal
		}

		if errors.Is(failErr, domain.ErrAccountLocked) {
			l.Warn().Str("username", username).Msg("account locked after repeated failed attempts")
		}

		return domain.Account{}, failErr
	}

	if begun.FailedAttempts != 0 {
		succeeded := begun.Succeed()

		account, err = s.repo.SetLockout(ctx, username, succeeded.FailedAttempts, succeeded.LockedAt)
		if err != nil {
			return domain.Account{}, err
		}
	}

	return account, nil
}

// Login authenticates the user and issues an access token.
func (s *Service) Login(ctx context.Context, username, pin string) (domain.Account, string, time.Time, error) {
	l := zerolog.Ctx(ctx)

	account, err := s.VerifyPIN(ctx, username, pin)
	if err != nil {
		return domain.Account{}, "", time.Time{}, err
	}

	accessToken, payload, err := s.TokenMaker.CreateToken(username, s.config.AccessTokenDuration)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.Account{}, "", time.Time{}, errorspkg.ErrInternal
	}

	return account, accessToken, payload.ExpiredAt, nil
}
