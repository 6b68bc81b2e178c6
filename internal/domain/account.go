// Package domain provides defenitions of all entities.
package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrUsernameAlreadyExists indicates that the username is already taken.
	ErrUsernameAlreadyExists = errors.New("username already exists")
	// ErrAccountNumberTaken indicates a collision on a generated account number.
	ErrAccountNumberTaken = errors.New("account number already exists")
	// ErrAccountLocked indicates that the account is locked after repeated failed authentications.
	ErrAccountLocked = errors.New("account is locked")
	// ErrInvalidCredentials indicates a failed credential check.
	ErrInvalidCredentials = errors.New("invalid username or PIN")
)

// Account holds a single user's balance, credential and lockout data.
type Account struct {
	ID             int64      `json:"id"`
	Username       string     `json:"username"`
	AccountNumber  string     `json:"account_number"`
	HashedPin      string     `json:"-"`
	Balance        string     `json:"balance"`
	FailedAttempts int32      `json:"-"`
	LockedAt       *time.Time `json:"-"`
	CreatedAt      time.Time  `json:"created_at"`
}

// CreateAccountParams is the input data to create an account.
type CreateAccountParams struct {
	Username      string `json:"username"`
	AccountNumber string `json:"account_number"`
	HashedPin     string `json:"hashed_pin"`
	Balance       string `json:"balance"`
}

// CredentialsError is a failed credential check carrying the number of
// attempts left before the account locks. It matches ErrInvalidCredentials
// under errors.Is.
type CredentialsError struct {
	AttemptsRemaining int32
}

func (e *CredentialsError) Error() string {
	return fmt.Sprintf("invalid PIN, %d attempts remaining", e.AttemptsRemaining)
}

// Is reports whether the target is ErrInvalidCredentials.
func (e *CredentialsError) Is(target error) bool {
	return target == ErrInvalidCredentials
}
