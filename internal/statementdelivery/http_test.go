package statementdelivery

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/sonu598/bank-account-server/internal/domain"
	"github.com/sonu598/bank-account-server/internal/middleware"
	"github.com/sonu598/bank-account-server/pkg/errorspkg"
	"github.com/sonu598/bank-account-server/pkg/randompkg"
	"github.com/sonu598/bank-account-server/pkg/tokenpkg"
)

func TestGet(t *testing.T) {
	username := randompkg.Owner()
	accountNumber := randompkg.AccountNumber()

	transactions := []domain.Transaction{
		{
			ID:            1,
			AccountNumber: accountNumber,
			Kind:          domain.KindDeposit,
			Amount:        "100",
			BalanceAfter:  "100",
		},
		{
			ID:            2,
			AccountNumber: accountNumber,
			Kind:          domain.KindWithdrawal,
			Amount:        "30",
			BalanceAfter:  "70",
		},
	}

	testCases := []struct {
		name          string
		setupAuth     func(t *testing.T, request *http.Request, tokenMaker tokenpkg.Maker)
		buildStubs    func(service *MockService)
		checkResponse func(t *testing.T, recorder *httptest.ResponseRecorder)
	}{
		{
			name: "OK",
			setupAuth: func(t *testing.T, request *http.Request, tokenMaker tokenpkg.Maker) {
				middleware.AddAuthorization(t, request, tokenMaker,
					middleware.AuthTypeBearer, username, time.Minute)
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					GetStatement(gomock.Any(), username).
					Times(1).
					Return(transactions, nil)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, recorder.Code)

				var got statementResponse
				require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
				require.Len(t, got.Data.Transactions, 2)
				require.Equal(t, domain.KindDeposit, got.Data.Transactions[0].Kind)
			},
		},
		{
			name:      "NoAuthorization",
			setupAuth: func(t *testing.T, request *http.Request, tokenMaker tokenpkg.Maker) {},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					GetStatement(gomock.Any(), gomock.Any()).
					Times(0)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusUnauthorized, recorder.Code)
			},
		},
		{
			name: "AccountNotFound",
			setupAuth: func(t *testing.T, request *http.Request, tokenMaker tokenpkg.Maker) {
				middleware.AddAuthorization(t, request, tokenMaker,
					middleware.AuthTypeBearer, username, time.Minute)
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					GetStatement(gomock.Any(), username).
					Times(1).
					Return(nil, domain.ErrAccountNotFound)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusNotFound, recorder.Code)
			},
		},
		{
			name: "InternalError",
			setupAuth: func(t *testing.T, request *http.Request, tokenMaker tokenpkg.Maker) {
				middleware.AddAuthorization(t, request, tokenMaker,
					middleware.AuthTypeBearer, username, time.Minute)
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					GetStatement(gomock.Any(), username).
					Times(1).
					Return(nil, errorspkg.ErrInternal)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusInternalServerError, recorder.Code)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service := NewMockService(ctrl)
			tc.buildStubs(service)

			gin.SetMode(gin.TestMode)

			tokenMaker, err := tokenpkg.NewPasetoMaker(randompkg.String(32))
			require.NoError(t, err)

			handler := NewHandler(service)

			router := gin.New()
			router.GET("/statements", middleware.AuthMiddleware(tokenMaker), handler.Get)

			request, err := http.NewRequest(http.MethodGet, "/statements", nil)
			require.NoError(t, err)

			tc.setupAuth(t, request, tokenMaker)

			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, request)
			tc.checkResponse(t, recorder)
		})
	}
}
