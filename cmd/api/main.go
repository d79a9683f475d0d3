package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/JJae-story/SimpleAccount/internal/adapter/handler"
	"github.com/JJae-story/SimpleAccount/internal/adapter/storage"
	"github.com/JJae-story/SimpleAccount/internal/core/config"
	"github.com/JJae-story/SimpleAccount/internal/core/locker"
	"github.com/JJae-story/SimpleAccount/internal/core/service"
)

func main() {
	cfg := config.LoadConfig()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	dbPool, err := storage.Connect(cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	accountRepo := storage.NewAccountRepository(dbPool)
	userRepo := storage.NewAccountUserRepository(dbPool)
	transactionRepo := storage.NewTransactionRepository(dbPool)

	accountLocker := locker.New()
	accountService := service.NewAccountService(accountRepo, userRepo)
	transactionService := service.NewTransactionService(accountRepo, userRepo, transactionRepo, accountLocker)

	accountHandler := &handler.AccountHandler{Service: accountService}
	transactionHandler := &handler.TransactionHandler{Service: transactionService}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	app.Use(cors.New())

	app.Post("/account", accountHandler.CreateAccount)
	app.Delete("/account", accountHandler.DeleteAccount)
	app.Get("/account", accountHandler.GetAccountsByUser)

	app.Post("/transaction/use", transactionHandler.UseBalance)
	app.Post("/transaction/cancel", transactionHandler.CancelBalance)
	app.Get("/transaction/:transactionId", transactionHandler.QueryTransaction)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "env", cfg.Env, "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server forced to shutdown", "error", err)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}

	dbPool.Close()
	slog.Info("server exited")
}
