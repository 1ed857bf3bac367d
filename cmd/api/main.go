package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"

	"github.com/Hanif8193/Hakathon-Todo/internal/account"
	accountrepo "github.com/Hanif8193/Hakathon-Todo/internal/account/repo"
	"github.com/Hanif8193/Hakathon-Todo/internal/auth"
	"github.com/Hanif8193/Hakathon-Todo/internal/migrations"
	"github.com/Hanif8193/Hakathon-Todo/internal/router"
	"github.com/Hanif8193/Hakathon-Todo/internal/task"
	taskrepo "github.com/Hanif8193/Hakathon-Todo/internal/task/repo"
	"github.com/Hanif8193/Hakathon-Todo/pkg/database"
	"github.com/Hanif8193/Hakathon-Todo/pkg/utilities"
)

func main() {
	// load .env file if present so os.Getenv picks values from it
	// this is best-effort: if no .env exists, continue (use defaults or real env)
	_ = godotenv.Load()

	// init logger
	lg, err := utilities.InitLogger(utilities.LogConfigFromEnv())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer lg.Sync()

	sugar := lg.Sugar()
	sugar.Info("starting todo api")

	// auth config fails fast on a missing or short secret
	authCfg, err := auth.ConfigFromEnv()
	if err != nil {
		sugar.Fatalf("auth config: %v", err)
	}
	tokens := auth.NewTokens(authCfg)

	// init db
	sqlDB, err := database.Connect(database.ConfigFromEnv())
	if err != nil {
		sugar.Fatalf("db connect: %v", err)
	}
	defer sqlDB.Close()

	// apply schema migrations before serving
	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelMigrate()
	if err := migrations.Up(migrateCtx, sqlDB); err != nil {
		sugar.Fatalf("migrations: %v", err)
	}

	// wrap with sqlx for convenience in repos
	sqlxDB := sqlx.NewDb(sqlDB, "postgres")

	accountSvc := account.NewService(accountrepo.NewPostgresRepository(sqlxDB), nil, tokens)
	taskSvc := task.NewService(taskrepo.NewPostgresRepository(sqlxDB))

	handler := router.RegisterRoutes(sugar, tokens,
		account.NewHandler(accountSvc, sugar),
		task.NewHandler(taskSvc, sugar),
	)

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = "0.0.0.0:8080"
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		sugar.Infow("listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalf("http server failed: %v", err)
		}
	}()

	<-ctx.Done()

	sugar.Info("shutting down")

	doneCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(doneCtx); err != nil {
		sugar.Warnf("http server shutdown failed: %v", err)
	}

	sugar.Info("goodbye")
}
