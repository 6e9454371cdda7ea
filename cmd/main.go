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

	"github.com/gin-gonic/gin"

	"github.com/ratehub/ratehub-server/internal/api/http/router"
	httpServer "github.com/ratehub/ratehub-server/internal/api/http/server"
	"github.com/ratehub/ratehub-server/internal/config"
	"github.com/ratehub/ratehub-server/internal/logger"
	"github.com/ratehub/ratehub-server/internal/model"
	"github.com/ratehub/ratehub-server/internal/repository/postgres"
	"github.com/ratehub/ratehub-server/internal/server"
	"github.com/ratehub/ratehub-server/internal/service"
	"github.com/ratehub/ratehub-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	storeRepo := postgres.NewStoreRepository(db)
	ratingRepo := postgres.NewRatingRepository(db)

	tokenManager := token.NewJWT(cfg.JWT.Secret)
	tokenService := service.NewTokenService(tokenManager, userRepo, logger)
	authService := service.NewAuth(userRepo, tokenService, cfg.Auth.BcryptCost, cfg.JWT.SignupTTL, cfg.JWT.LoginTTL, logger)
	ratingService := service.NewRating(ratingRepo, storeRepo, logger)
	catalog := service.NewCatalog(storeRepo, ratingRepo, logger)
	adminService := service.NewAdmin(userRepo, storeRepo, ratingRepo, cfg.Auth.BcryptCost, logger)

	gin.SetMode(gin.ReleaseMode)
	r := router.New(authService, tokenService, ratingService, catalog, adminService, logger)
	srv := httpServer.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer
	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(srv)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
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
