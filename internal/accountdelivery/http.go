// Package accountdelivery handles account registration and login requests.
package accountdelivery

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/sonu598/bank-account-server/internal/domain"
	"github.com/sonu598/bank-account-server/pkg/errorspkg"
	"github.com/sonu598/bank-account-server/pkg/web"
)

// Service provides account registration.
//
//go:generate mockgen -source http.go -destination http_mock.go -package accountdelivery
type Service interface {
	Register(ctx context.Context, username, pin, initialDeposit string) (domain.Account, error)
}

// Authenticator verifies credentials and issues access tokens.
type Authenticator interface {
	Login(ctx context.Context, username, pin string) (domain.Account, string, time.Time, error)
}

// Handler facilitates account registration and login requests.
type Handler struct {
	service Service
	auth    Authenticator
}

// NewHandler returns account handler.
func NewHandler(s Service, a Authenticator) *Handler {
	return &Handler{service: s, auth: a}
}

type registerRequest struct {
	Username       string `json:"username" binding:"required,alphanum"`
	Pin            string `json:"pin" binding:"required,numeric,min=4,max=6"`
	InitialDeposit string `json:"initialDeposit" binding:"omitempty,amount"`
}

type accountData struct {
	Account domain.Account `json:"account"`
}

type accountResponse struct {
	Data accountData `json:"data"`
}

// Register handles http request to create an account.
func (h *Handler) Register(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req registerRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(ve)})

			return
		}

		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	account, err := h.service.Register(ctx, req.Username, req.Pin, req.InitialDeposit)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUsernameAlreadyExists):
			gctx.JSON(http.StatusConflict, web.Error(err))
		case errors.Is(err, domain.ErrInvalidAmount),
			errors.Is(err, domain.ErrNegativeAmount):
			gctx.JSON(http.StatusBadRequest, web.Error(err))
		default:
			l.Error().Err(err).Send()
			gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		}

		return
	}

	gctx.JSON(http.StatusCreated, accountResponse{Data: accountData{Account: account}})
}

type loginRequest struct {
	Username string `json:"username" binding:"required,alphanum"`
	Pin      string `json:"pin" binding:"required"`
}

// Login handles http request to authenticate and issue an access token.
func (h *Handler) Login(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req loginRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(ve)})

			return
		}

		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	account, accessToken, expiresAt, err := h.auth.Login(ctx, req.Username, req.Pin)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAccountNotFound):
			gctx.JSON(http.StatusNotFound, web.Error(err))
		case errors.Is(err, domain.ErrInvalidCredentials):
			gctx.JSON(http.StatusUnauthorized, web.Error(err))
		case errors.Is(err, domain.ErrAccountLocked):
			gctx.JSON(http.StatusForbidden, web.Error(err))
		default:
			l.Error().Err(err).Send()
			gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		}

		return
	}

	gctx.JSON(http.StatusOK, web.Response{
		AccessToken:          accessToken,
		AccessTokenExpiresAt: expiresAt.Format(time.RFC3339),
		Data:                 accountData{Account: account},
	})
}
