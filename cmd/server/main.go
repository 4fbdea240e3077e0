package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mkessler/Todo-Api/internal/api/controller"
	"mkessler/Todo-Api/internal/api/repository"
	"mkessler/Todo-Api/internal/api/service"
	"mkessler/Todo-Api/internal/db"
	"mkessler/Todo-Api/internal/logger"
	"mkessler/Todo-Api/internal/server"
	"mkessler/Todo-Api/internal/telemetry"
)

func main() {
	ctx := context.Background()

	// Initialize telemetry
	shutdown, err := telemetry.InitOtel()
	if err != nil {
		log.Fatalf("failed to initialize telemetry: %v", err)
	}
	defer func() {
		if err := shutdown(ctx); err != nil {
			log.Printf("Error shutting down telemetry: %v", err)
		}
	}()

	logger.Init()

	// Initialize Redis for the session token registry
	rdb, err := db.NewRedisClient(ctx)
	if err != nil {
		log.Fatalf("failed to initialize redis: %v", err)
	}

	// Initialize SQLite DB
	dbPath := os.Getenv("SQLITE_PATH")
	if dbPath == "" {
		dbPath = "./todo.db"
	}
	pool, err := db.Connect(dbPath)
	if err != nil {
		log.Fatalf("failed to open sqlite db: %v", err)
	}
	if err := db.Initialize(pool); err != nil {
		log.Fatalf("failed to initialize sqlite db: %v", err)
	}

	secret := os.Getenv("TOKEN_SECRET")
	if secret == "" {
		secret = "dev-only-token-secret"
	}

	// Create repositories
	userRepo := repository.NewUserRepository(pool)
	todoRepo := repository.NewTodoRepository(pool)
	tokenRepo := repository.NewTokenRepository(rdb)

	// Create services
	userService := service.NewUserService(userRepo, tokenRepo, []byte(secret))
	todoService := service.NewTodoService(todoRepo)

	// Create controllers
	userController := controller.NewUserController(userService)
	todoController := controller.NewTodoController(todoService)

	// Create the Gin-based server
	srv := server.NewServer(userController, todoController, userService)

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	httpServer := &http.Server{
		Addr:    addr,
		Handler: srv.Engine(),
	}

	go func() {
		log.Printf("http server started on %s", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("ListenAndServe: %v", err)
		}
	}()

	<-stop

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
