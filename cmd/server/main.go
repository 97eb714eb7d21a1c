package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"webwallet-api/internal/config"
	"webwallet-api/internal/handler"
	"webwallet-api/internal/logger"
	"webwallet-api/internal/repository"
	"webwallet-api/internal/service"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", err, nil)
		os.Exit(1)
	}

	db, err := initDatabase(cfg.Database)
	if err != nil {
		logger.Error("Failed to initialize database", err, nil)
		os.Exit(1)
	}
	defer db.Close()

	// Initialize repositories
	accountRepo := repository.NewAccountRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)

	// Initialize services
	accountService := service.NewAccountService(accountRepo, db)
	transactionService := service.NewTransactionService(accountRepo, transactionRepo, db)

	// Initialize handlers
	healthHandler := handler.NewHealthHandler(db, version)
	accountHandler := handler.NewAccountHandler(accountService, transactionService)
	transactionHandler := handler.NewTransactionHandler(transactionService)

	server := initServer(cfg, healthHandler, accountHandler, transactionHandler)

	go func() {
		logger.Info("Starting server", logger.Fields{"port": cfg.Server.Port})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed to start", err, nil)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", err, nil)
		os.Exit(1)
	}

	logger.Info("Server exited", nil)
}

func initDatabase(cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Hour)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Database connection established", nil)
	return db, nil
}

func initServer(cfg *config.Config, healthHandler *handler.HealthHandler, accountHandler *handler.AccountHandler, transactionHandler *handler.TransactionHandler) *http.Server {
	mux := http.NewServeMux()

	mux.Handle("/healthz", healthHandler)

	mux.HandleFunc("/v1/accounts", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			accountHandler.ListAccounts(w, r)
		case http.MethodPost:
			accountHandler.CreateAccount(w, r)
		default:
			writeMethodNotAllowed(w)
		}
	})

	// GET/PUT/DELETE /v1/accounts/{id} and GET /v1/accounts/{id}/transactions
	mux.HandleFunc("/v1/accounts/", accountHandler.HandleAccountPath)

	mux.HandleFunc("/v1/transactions", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			transactionHandler.PostTransaction(w, r)
		} else {
			writeMethodNotAllowed(w)
		}
	})

	// GET/PUT /v1/transactions/{id}
	mux.HandleFunc("/v1/transactions/", transactionHandler.HandleTransactionPath)

	handlerWithMiddleware := loggingMiddleware(mux)

	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handlerWithMiddleware,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		logger.Info("request", logger.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   wrapped.statusCode,
			"duration": time.Since(start).String(),
		})
	})
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func writeMethodNotAllowed(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusMethodNotAllowed)
	fmt.Fprint(w, `{"error": "Method not allowed", "code": "INVALID_INPUT"}`)
}
