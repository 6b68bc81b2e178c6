// Package ledgerdelivery handles deposit, withdrawal and transfer requests.
package ledgerdelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/sonu598/bank-account-server/internal/domain"
	"github.com/sonu598/bank-account-server/internal/middleware"
	"github.com/sonu598/bank-account-server/pkg/errorspkg"
	"github.com/sonu598/bank-account-server/pkg/tokenpkg"
	"github.com/sonu598/bank-account-server/pkg/web"
)

// Service provides the money movement operations.
//
//go:generate mockgen -source http.go -destination http_mock.go -package ledgerdelivery
type Service interface {
	Deposit(ctx context.Context, username, pin, amount string) (domain.EntryTxResult, error)
	Withdraw(ctx context.Context, username, pin, amount string) (domain.EntryTxResult, error)
	Transfer(ctx context.Context, username, pin, recipientNumber, amount string) (domain.TransferTxResult, error)
}

// Handler facilitates deposit, withdrawal and transfer requests.
type Handler struct {
	service Service
}

// NewHandler returns ledger handler.
func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

type entryRequest struct {
	Pin    string `json:"pin" binding:"required"`
	Amount string `json:"amount" binding:"required,amount"`
}

type entryData struct {
	Account     domain.Account     `json:"account"`
	Transaction domain.Transaction `json:"transaction"`
}

type entryResponse struct {
	Data entryData `json:"data"`
}

// Deposit handles http request to credit the authenticated account.
func (h *Handler) Deposit(gctx *gin.Context) {
	h.handleEntry(gctx, h.service.Deposit)
}

// Withdraw handles http request to debit the authenticated account.
func (h *Handler) Withdraw(gctx *gin.Context) {
	h.handleEntry(gctx, h.service.Withdraw)
}

func (h *Handler) handleEntry(gctx *gin.Context,
	entry func(ctx context.Context, username, pin, amount string) (domain.EntryTxResult, error),
) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req entryRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(ve)})

			return
		}

		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	result, err := entry(ctx, authPayload.Username, req.Pin, req.Amount)
	if err != nil {
		h.writeError(gctx, l, err)

		return
	}

	gctx.JSON(http.StatusOK, entryResponse{Data: entryData{
		Account:     result.Account,
		Transaction: result.Transaction,
	}})
}

type transferRequest struct {
	Pin             string `json:"pin" binding:"required"`
	RecipientNumber string `json:"recipientNumber" binding:"required"`
	Amount          string `json:"amount" binding:"required,amount"`
}

type transferData struct {
	Sender      domain.Account     `json:"account"`
	Transaction domain.Transaction `json:"transaction"`
}

type transferResponse struct {
	Data transferData `json:"data"`
}

// Transfer handles http request to move money to another account.
func (h *Handler) Transfer(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req transferRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(ve)})

			return
		}

		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	result, err := h.service.Transfer(ctx, authPayload.Username, req.Pin, req.RecipientNumber, req.Amount)
	if err != nil {
		h.writeError(gctx, l, err)

		return
	}

	gctx.JSON(http.StatusOK, transferResponse{Data: transferData{
		Sender:      result.Sender,
		Transaction: result.SenderTransaction,
	}})
}

func (h *Handler) writeError(gctx *gin.Context, l *zerolog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrNegativeAmount),
		errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrSelfTransfer):
		gctx.JSON(http.StatusBadRequest, web.Error(err))
	case errors.Is(err, domain.ErrInvalidCredentials):
		gctx.JSON(http.StatusUnauthorized, web.Error(err))
	case errors.Is(err, domain.ErrAccountLocked):
		gctx.JSON(http.StatusForbidden, web.Error(err))
	case errors.Is(err, domain.ErrAccountNotFound):
		gctx.JSON(http.StatusNotFound, web.Error(err))
	default:
		l.Error().Err(err).Send()
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
	}
}
