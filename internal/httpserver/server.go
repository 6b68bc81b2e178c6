// Package httpserver manages server creation and api routing.
package httpserver

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/sonu598/bank-account-server/internal/accountdelivery"
	"github.com/sonu598/bank-account-server/internal/accountrepo"
	"github.com/sonu598/bank-account-server/internal/accountservice"
	"github.com/sonu598/bank-account-server/internal/authservice"
	"github.com/sonu598/bank-account-server/internal/ledgerdelivery"
	"github.com/sonu598/bank-account-server/internal/ledgerrepo"
	"github.com/sonu598/bank-account-server/internal/ledgerservice"
	"github.com/sonu598/bank-account-server/internal/middleware"
	"github.com/sonu598/bank-account-server/internal/statementdelivery"
	"github.com/sonu598/bank-account-server/internal/statementrepo"
	"github.com/sonu598/bank-account-server/internal/statementservice"
	"github.com/sonu598/bank-account-server/pkg/configpkg"
	"github.com/sonu598/bank-account-server/pkg/tokenpkg"
)

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB     *sql.DB
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes.
func New(conn *sql.DB, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	accountRepo := accountrepo.NewRepoPGS(conn)
	statementRepo := statementrepo.NewRepoPGS(conn)
	ledgerRepo := ledgerrepo.NewRepoPGS(conn)

	tokenMaker, err := tokenpkg.NewPasetoMaker(config.TokenSymmetricKey)
	if err != nil {
		return nil, errors.New("cannot create token maker")
	}

	accountService := accountservice.New(ledgerRepo)
	authService := authservice.New(accountRepo, config, tokenMaker)
	ledgerService := ledgerservice.New(ledgerRepo, authService, accountService)
	statementService := statementservice.New(statementRepo, accountService)

	accountHandler := accountdelivery.NewHandler(accountService, authService)
	ledgerHandler := ledgerdelivery.NewHandler(ledgerService)
	statementHandler := statementdelivery.NewHandler(statementService)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.POST("/users", accountHandler.Register)
	engine.POST("/users/login", accountHandler.Login)

	authRoutes := engine.Group("/").Use(middleware.AuthMiddleware(authService.TokenMaker))

	authRoutes.POST("/deposits", ledgerHandler.Deposit)
	authRoutes.POST("/withdrawals", ledgerHandler.Withdraw)
	authRoutes.POST("/transfers", ledgerHandler.Transfer)

	authRoutes.GET("/statements", statementHandler.Get)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		err := v.RegisterValidation("amount", accountdelivery.ValidAmount)
		if err != nil {
			return nil, errors.New("cannot register amount validator")
		}
	}

	server := &Server{
		DB:     conn,
		Engine: engine,
		Config: config,
	}

	return server, nil
}
