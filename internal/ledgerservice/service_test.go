package ledgerservice

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/sonu598/bank-account-server/internal/domain"
	"github.com/sonu598/bank-account-server/pkg/randompkg"
	"github.com/stretchr/testify/require"
)

const testPIN = "1234"

func testAccount(id int64, balance string) domain.Account {
	return domain.Account{
		ID:            id,
		Username:      randompkg.Owner(),
		AccountNumber: randompkg.AccountNumber(),
		Balance:       balance,
		CreatedAt:     time.Now().Truncate(time.Second).UTC(),
	}
}

func TestDeposit(t *testing.T) {
	account := testAccount(1, "100")

	wantResult := domain.EntryTxResult{
		Account: account,
		Transaction: domain.Transaction{
			AccountNumber: account.AccountNumber,
			Kind:          domain.KindDeposit,
			Amount:        "50",
			BalanceAfter:  "150",
		},
	}

	testCases := []struct {
		name          string
		amount        string
		buildStubs    func(repo *MockRepo, auth *MockAuthenticator)
		checkResponse func(t *testing.T, res domain.EntryTxResult, err error)
	}{
		{
			name:   "InvalidAmount",
			amount: "!@#$",
			buildStubs: func(repo *MockRepo, auth *MockAuthenticator) {
				auth.EXPECT().VerifyPIN(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
				repo.EXPECT().Deposit(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, res domain.EntryTxResult, err error) {
				require.Empty(t, res)
				require.ErrorIs(t, err, domain.ErrInvalidAmount)
			},
		},
		{
			name:   "NegativeAmount",
			amount: "-50",
			buildStubs: func(repo *MockRepo, auth *MockAuthenticator) {
				auth.EXPECT().VerifyPIN(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
				repo.EXPECT().Deposit(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, res domain.EntryTxResult, err error) {
				require.Empty(t, res)
				require.ErrorIs(t, err, domain.ErrNegativeAmount)
			},
		},
		{
			name:   "ZeroAmount",
			amount: "0",
			buildStubs: func(repo *MockRepo, auth *MockAuthenticator) {
				auth.EXPECT().VerifyPIN(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
				repo.EXPECT().Deposit(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, res domain.EntryTxResult, err error) {
				require.Empty(t, res)
				require.ErrorIs(t, err, domain.ErrNegativeAmount)
			},
		},
		{
			name:   "AccountLocked",
			amount: "50",
			buildStubs: func(repo *MockRepo, auth *MockAuthenticator) {
				auth.EXPECT().VerifyPIN(gomock.Any(), gomock.Eq(account.Username), gomock.Eq(testPIN)).
					Times(1).
					Return(domain.Account{}, domain.ErrAccountLocked)
				repo.EXPECT().Deposit(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, res domain.EntryTxResult, err error) {
				require.Empty(t, res)
				require.ErrorIs(t, err, domain.ErrAccountLocked)
			},
		},
		{
			name:   "OK",
			amount: "50",
			buildStubs: func(repo *MockRepo, auth *MockAuthenticator) {
				auth.EXPECT().VerifyPIN(gomock.Any(), gomock.Eq(account.Username), gomock.Eq(testPIN)).
					Times(1).
					Return(account, nil)
				repo.EXPECT().Deposit(gomock.Any(), gomock.Eq(domain.CreateEntryParams{
					AccountNumber: account.AccountNumber,
					Amount:        "50",
				})).
					Times(1).
					Return(wantResult, nil)
			},
			checkResponse: func(t *testing.T, res domain.EntryTxResult, err error) {
				require.NoError(t, err)
				require.Equal(t, wantResult, res)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			auth := NewMockAuthenticator(ctrl)
			accounts := NewMockAccountResolver(ctrl)
			service := New(repo, auth, accounts)

			tc.buildStubs(repo, auth)

			res, err := service.Deposit(context.Background(), account.Username, testPIN, tc.amount)
			tc.checkResponse(t, res, err)
		})
	}
}

func TestWithdraw(t *testing.T) {
	account := testAccount(1, "100")

	wantResult := domain.EntryTxResult{
		Account: account,
		Transaction: domain.Transaction{
			AccountNumber: account.AccountNumber,
			Kind:          domain.KindWithdrawal,
			Amount:        "50",
			BalanceAfter:  "50",
		},
	}

	testCases := []struct {
		name          string
		amount        string
		buildStubs    func(repo *MockRepo, auth *MockAuthenticator)
		checkResponse func(t *testing.T, res domain.EntryTxResult, err error)
	}{
		{
			name:   "InvalidAmount",
			amount: "abc",
			buildStubs: func(repo *MockRepo, auth *MockAuthenticator) {
				auth.EXPECT().VerifyPIN(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
				repo.EXPECT().Withdraw(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, res domain.EntryTxResult, err error) {
				require.Empty(t, res)
				require.ErrorIs(t, err, domain.ErrInvalidAmount)
			},
		},
		{
			name:   "InsufficientFunds",
			amount: "150",
			buildStubs: func(repo *MockRepo, auth *MockAuthenticator) {
				auth.EXPECT().VerifyPIN(gomock.Any(), gomock.Eq(account.Username), gomock.Eq(testPIN)).
					Times(1).
					Return(account, nil)
				repo.EXPECT().Withdraw(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, res domain.EntryTxResult, err error) {
				require.Empty(t, res)
				require.ErrorIs(t, err, domain.ErrInsufficientFunds)
			},
		},
		{
			name:   "ExactBalance",
			amount: "100",
			buildStubs: func(repo *MockRepo, auth *MockAuthenticator) {
				auth.EXPECT().VerifyPIN(gomock.Any(), gomock.Eq(account.Username), gomock.Eq(testPIN)).
					Times(1).
					Return(account, nil)
				repo.EXPECT().Withdraw(gomock.Any(), gomock.Eq(domain.CreateEntryParams{
					AccountNumber: account.AccountNumber,
					Amount:        "100",
				})).
					Times(1).
					Return(domain.EntryTxResult{}, nil)
			},
			checkResponse: func(t *testing.T, res domain.EntryTxResult, err error) {
				require.NoError(t, err)
			},
		},
		{
			name:   "OK",
			amount: "50",
			buildStubs: func(repo *MockRepo, auth *MockAuthenticator) {
				auth.EXPECT().VerifyPIN(gomock.Any(), gomock.Eq(account.Username), gomock.Eq(testPIN)).
					Times(1).
					Return(account, nil)
				repo.EXPECT().Withdraw(gomock.Any(), gomock.Eq(domain.CreateEntryParams{
					AccountNumber: account.AccountNumber,
					Amount:        "50",
				})).
					Times(1).
					Return(wantResult, nil)
			},
			checkResponse: func(t *testing.T, res domain.EntryTxResult, err error) {
				require.NoError(t, err)
				require.Equal(t, wantResult, res)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			auth := NewMockAuthenticator(ctrl)
			accounts := NewMockAccountResolver(ctrl)
			service := New(repo, auth, accounts)

			tc.buildStubs(repo, auth)

			res, err := service.Withdraw(context.Background(), account.Username, testPIN, tc.amount)
			tc.checkResponse(t, res, err)
		})
	}
}

func TestTransfer(t *testing.T) {
	sender := testAccount(1, "100")
	recipient := testAccount(2, "0")

	lockedAt := time.Now().Add(-time.Hour)
	lockedRecipient := recipient
	lockedRecipient.LockedAt = &lockedAt

	wantResult := domain.TransferTxResult{
		Sender:    sender,
		Recipient: recipient,
		SenderTransaction: domain.Transaction{
			AccountNumber: sender.AccountNumber,
			Kind:          domain.KindTransfer,
			Amount:        "50",
			BalanceAfter:  "50",
			Counterparty:  recipient.AccountNumber,
			Direction:     domain.DirectionSent,
		},
		RecipientTransaction: domain.Transaction{
			AccountNumber: recipient.AccountNumber,
			Kind:          domain.KindTransfer,
			Amount:        "50",
			BalanceAfter:  "50",
			Counterparty:  sender.AccountNumber,
			Direction:     domain.DirectionReceived,
		},
	}

	testCases := []struct {
		name          string
		recipientNum  string
		amount        string
		buildStubs    func(repo *MockRepo, auth *MockAuthenticator, accounts *MockAccountResolver)
		checkResponse func(t *testing.T, res domain.TransferTxResult, err error)
	}{
		{
			name:         "InvalidAmount",
			recipientNum: recipient.AccountNumber,
			amount:       "oops",
			buildStubs: func(repo *MockRepo, auth *MockAuthenticator, accounts *MockAccountResolver) {
				auth.EXPECT().VerifyPIN(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
				accounts.EXPECT().GetByNumber(gomock.Any(), gomock.Any()).Times(0)
				repo.EXPECT().Transfer(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, res domain.TransferTxResult, err error) {
				require.Empty(t, res)
				require.ErrorIs(t, err, domain.ErrInvalidAmount)
			},
		},
		{
			name:         "RecipientNotFound",
			recipientNum: "BANK-0000000",
			amount:       "50",
			buildStubs: func(repo *MockRepo, auth *MockAuthenticator, accounts *MockAccountResolver) {
				auth.EXPECT().VerifyPIN(gomock.Any(), gomock.Eq(sender.Username), gomock.Eq(testPIN)).
					Times(1).
					Return(sender, nil)
				accounts.EXPECT().GetByNumber(gomock.Any(), gomock.Eq("BANK-0000000")).
					Times(1).
					Return(domain.Account{}, domain.ErrAccountNotFound)
				repo.EXPECT().Transfer(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, res domain.TransferTxResult, err error) {
				require.Empty(t, res)
				require.ErrorIs(t, err, domain.ErrAccountNotFound)
			},
		},
		{
			name:         "SelfTransfer",
			recipientNum: sender.AccountNumber,
			amount:       "50",
			buildStubs: func(repo *MockRepo, auth *MockAuthenticator, accounts *MockAccountResolver) {
				auth.EXPECT().VerifyPIN(gomock.Any(), gomock.Eq(sender.Username), gomock.Eq(testPIN)).
					Times(1).
					Return(sender, nil)
				accounts.EXPECT().GetByNumber(gomock.Any(), gomock.Eq(sender.AccountNumber)).
					Times(1).
					Return(sender, nil)
				repo.EXPECT().Transfer(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, res domain.TransferTxResult, err error) {
				require.Empty(t, res)
				require.ErrorIs(t, err, domain.ErrSelfTransfer)
			},
		},
		{
			name:         "RecipientLocked",
			recipientNum: recipient.AccountNumber,
			amount:       "50",
			buildStubs: func(repo *MockRepo, auth *MockAuthenticator, accounts *MockAccountResolver) {
				auth.EXPECT().VerifyPIN(gomock.Any(), gomock.Eq(sender.Username), gomock.Eq(testPIN)).
					Times(1).
					Return(sender, nil)
				accounts.EXPECT().GetByNumber(gomock.Any(), gomock.Eq(recipient.AccountNumber)).
					Times(1).
					Return(lockedRecipient, nil)
				repo.EXPECT().Transfer(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, res domain.TransferTxResult, err error) {
				require.Empty(t, res)
				require.ErrorIs(t, err, domain.ErrAccountLocked)
			},
		},
		{
			name:         "InsufficientFunds",
			recipientNum: recipient.AccountNumber,
			amount:       "150",
			buildStubs: func(repo *MockRepo, auth *MockAuthenticator, accounts *MockAccountResolver) {
				auth.EXPECT().VerifyPIN(gomock.Any(), gomock.Eq(sender.Username), gomock.Eq(testPIN)).
					Times(1).
					Return(sender, nil)
				accounts.EXPECT().GetByNumber(gomock.Any(), gomock.Eq(recipient.AccountNumber)).
					Times(1).
					Return(recipient, nil)
				repo.EXPECT().Transfer(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, res domain.TransferTxResult, err error) {
				require.Empty(t, res)
				require.ErrorIs(t, err, domain.ErrInsufficientFunds)
			},
		},
		{
			name:         "OK",
			recipientNum: recipient.AccountNumber,
			amount:       "50",
			buildStubs: func(repo *MockRepo, auth *MockAuthenticator, accounts *MockAccountResolver) {
				auth.EXPECT().VerifyPIN(gomock.Any(), gomock.Eq(sender.Username), gomock.Eq(testPIN)).
					Times(1).
					Return(sender, nil)
				accounts.EXPECT().GetByNumber(gomock.Any(), gomock.Eq(recipient.AccountNumber)).
					Times(1).
					Return(recipient, nil)
				repo.EXPECT().Transfer(gomock.Any(), gomock.Eq(domain.CreateTransferParams{
					SenderNumber:    sender.AccountNumber,
					RecipientNumber: recipient.AccountNumber,
					Amount:          "50",
				})).
					Times(1).
					Return(wantResult, nil)
			},
			checkResponse: func(t *testing.T, res domain.TransferTxResult, err error) {
				require.NoError(t, err)
				require.Equal(t, wantResult, res)

				// Both sides reference each other's account number.
				require.Equal(t, res.SenderTransaction.Counterparty, res.Recipient.AccountNumber)
				require.Equal(t, res.RecipientTransaction.Counterparty, res.Sender.AccountNumber)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			auth := NewMockAuthenticator(ctrl)
			accounts := NewMockAccountResolver(ctrl)
			service := New(repo, auth, accounts)

			tc.buildStubs(repo, auth, accounts)

			res, err := service.Transfer(context.Background(), sender.Username, testPIN, tc.recipientNum, tc.amount)
			tc.checkResponse(t, res, err)
		})
	}
}
