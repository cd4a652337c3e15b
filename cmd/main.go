package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	grpcctx "github.com/dtroode/envelope-relay/internal/api/grpc/context"
	"github.com/dtroode/envelope-relay/internal/api/grpc/router"
	grpcServer "github.com/dtroode/envelope-relay/internal/api/grpc/server"
	"github.com/dtroode/envelope-relay/internal/config"
	"github.com/dtroode/envelope-relay/internal/logger"
	"github.com/dtroode/envelope-relay/internal/model"
	"github.com/dtroode/envelope-relay/internal/password"
	"github.com/dtroode/envelope-relay/internal/repository/postgres"
	"github.com/dtroode/envelope-relay/internal/server"
	"github.com/dtroode/envelope-relay/internal/service"
	"github.com/dtroode/envelope-relay/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel, logger.WithFormat(cfg.LogFormat))

	conn, err := postgres.NewConnection(ctx, postgres.ConnectionConfig{
		DSN:              cfg.Database.DSN,
		MaxConns:         cfg.Database.MaxConns,
		StatementTimeout: cfg.Database.StatementTimeout,
	})
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer func() {
		if err := conn.Close(); err != nil {
			logger.Error("failed to close storage", "error", err)
		}
	}()

	identityRepo := postgres.NewIdentityRepository(conn.DB)
	envelopeRepo := postgres.NewEnvelopeRepository(conn.DB)
	refreshTokenRepo := postgres.NewRefreshTokenRepository(conn.DB)
	accountRepo := postgres.NewAccountRepository(conn.DB)

	hasher := password.NewBcrypt(cfg.Auth.BcryptCost)
	tokenManager := token.NewJWT(cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)

	identityService := service.NewIdentity(identityRepo, hasher, model.IdentifierKind(cfg.Identity.Kind), cfg.Auth.MinPasswordLength, logger)
	tokenService := service.NewTokenService(tokenManager, refreshTokenRepo, tokenManager.RefreshTTL(), logger)
	authService := service.NewAuth(identityService, identityRepo, accountRepo, hasher, tokenService, logger)
	exchangeService := service.NewExchange(authService, identityService, envelopeRepo, service.NewWatermark(identityRepo), cfg.Exchange.MaxBodyBytes, logger)

	r := router.New(identityService, authService, exchangeService, authService, grpcctx.NewManager(), cfg.Auth.HandleCapability, logger)
	grpcServer := grpcServer.NewGRPCServer(r.Register(), fmt.Sprintf(":%s", cfg.GRPC.Port))

	var sl model.SecurityLayer

	if cfg.GRPC.EnableHTTPS {
		sl = server.NewTLSListener(cfg.GRPC.CertFileName, cfg.GRPC.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address(), "tls", cfg.GRPC.EnableHTTPS)
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
			stop()
		}
	}(grpcServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := grpcServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", grpcServer.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
