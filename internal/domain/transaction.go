package domain

import (
	"errors"
	"time"
)

var (
	// ErrInvalidAmount indicates invalid amount.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrNegativeAmount indicates a zero or negative amount.
	ErrNegativeAmount = errors.New("amount must be positive")
	// ErrInsufficientFunds indicates that the account balance does not cover the amount.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrSelfTransfer indicates a transfer where sender and recipient are the same account.
	ErrSelfTransfer = errors.New("cannot transfer to own account")
)

// TransactionKind is the closed set of transaction types.
type TransactionKind string

// All permitted transaction kinds.
const (
	KindDeposit    TransactionKind = "Deposit"
	KindWithdrawal TransactionKind = "Withdrawal"
	KindTransfer   TransactionKind = "Transfer"
	KindCharge     TransactionKind = "Charge"
)

// TransferDirection tags which side of a transfer a transaction records.
type TransferDirection string

// Transfer sides.
const (
	DirectionSent     TransferDirection = "sent"
	DirectionReceived TransferDirection = "received"
)

// Transaction is one immutable entry of an account's ledger.
// Counterparty and Direction are set only for KindTransfer.
type Transaction struct {
	ID            int64             `json:"id"`
	AccountNumber string            `json:"account_number"`
	Kind          TransactionKind   `json:"kind"`
	Amount        string            `json:"amount"`
	BalanceAfter  string            `json:"balance_after"`
	Counterparty  string            `json:"counterparty,omitempty"`
	Direction     TransferDirection `json:"direction,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
}

// CreateTransactionParams is the input data to append one ledger entry.
type CreateTransactionParams struct {
	AccountNumber string
	Kind          TransactionKind
	Amount        string
	BalanceAfter  string
	Counterparty  string
	Direction     TransferDirection
}

// CreateEntryParams is the input data for a single-account ledger operation.
type CreateEntryParams struct {
	AccountNumber string `json:"account_number"`
	Amount        string `json:"amount"`
}

// EntryTxResult is the result of a deposit or withdrawal transaction.
type EntryTxResult struct {
	Account     Account     `json:"account"`
	Transaction Transaction `json:"transaction"`
}

// CreateTransferParams is the input data for the transfer transaction.
type CreateTransferParams struct {
	SenderNumber    string `json:"sender_number"`
	RecipientNumber string `json:"recipient_number"`
	Amount          string `json:"amount"`
}

// TransferTxResult is the result of the transfer transaction.
type TransferTxResult struct {
	Sender               Account     `json:"sender"`
	Recipient            Account     `json:"recipient"`
	SenderTransaction    Transaction `json:"sender_transaction"`
	RecipientTransaction Transaction `json:"recipient_transaction"`
}
