// Package statementdelivery handles account statement requests.
package statementdelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/sonu598/bank-account-server/internal/domain"
	"github.com/sonu598/bank-account-server/internal/middleware"
	"github.com/sonu598/bank-account-server/pkg/errorspkg"
	"github.com/sonu598/bank-account-server/pkg/tokenpkg"
	"github.com/sonu598/bank-account-server/pkg/web"
)

// Service provides account statements.
//
//go:generate mockgen -source http.go -destination http_mock.go -package statementdelivery
type Service interface {
	GetStatement(ctx context.Context, username string) ([]domain.Transaction, error)
}

// Handler facilitates statement requests.
type Handler struct {
	service Service
}

// NewHandler returns statement handler.
func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

type statementData struct {
	Transactions []domain.Transaction `json:"transactions"`
}

type statementResponse struct {
	Data statementData `json:"data"`
}

// Get handles http request to list the authenticated account's transactions.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	transactions, err := h.service.GetStatement(ctx, authPayload.Username)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAccountNotFound):
			gctx.JSON(http.StatusNotFound, web.Error(err))
		default:
			l.Error().Err(err).Send()
			gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		}

		return
	}

	gctx.JSON(http.StatusOK, statementResponse{Data: statementData{Transactions: transactions}})
}
