// File: cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/arcanum-app/arcanum/internal/config"
	"github.com/arcanum-app/arcanum/internal/database"
	"github.com/arcanum-app/arcanum/internal/handlers"
	"github.com/arcanum-app/arcanum/internal/middleware"
	chatrepo "github.com/arcanum-app/arcanum/internal/repository/chat"
	messagerepo "github.com/arcanum-app/arcanum/internal/repository/message"
	"github.com/arcanum-app/arcanum/internal/services"
	"github.com/arcanum-app/arcanum/internal/timeutil"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	db, dialect, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("❌ Database startup failed: %v", err)
	}

	logger := services.NewLogger("arcanum")

	// --- Repositories ---
	chatRepository := chatrepo.NewChatRepository(db, dialect)
	messageRepository := messagerepo.NewMessageRepository(db, dialect)

	// --- Services ---
	displayLoc := timeutil.Location(cfg.DisplayTimezone)
	authService := services.NewAuthService(cfg.JWTSecretKey, cfg.AppPasswordHash, logger)
	chatService := services.NewChatService(chatRepository, logger)
	messageService := services.NewMessageService(messageRepository, chatRepository, displayLoc, logger)
	filterService := services.NewFilterService(messageRepository, logger)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	chatHandler := handlers.NewChatHandler(chatService)
	messageHandler := handlers.NewMessageHandler(messageService, chatService)
	searchHandler := handlers.NewSearchHandler(filterService, chatService)
	dashboardHandler := handlers.NewDashboardHandler(chatService, cfg.DisplayTimezone)

	// --- Router Setup ---
	r := mux.NewRouter()
	r.Use(middleware.RecoverPanic)
	r.Use(middleware.LoggingMiddleware)

	// --- Public Routes ---
	r.HandleFunc("/health", handlers.Health).Methods("GET")
	r.HandleFunc("/api/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/api/logout", authHandler.Logout).Methods("POST")

	// --- Protected Routes ---
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.RequireSession(authService))

	api.HandleFunc("/stats", dashboardHandler.Stats).Methods("GET")
	api.HandleFunc("/search", searchHandler.SearchGlobal).Methods("GET")

	api.HandleFunc("/chats", chatHandler.ListChats).Methods("GET")
	api.HandleFunc("/chats", chatHandler.CreateChat).Methods("POST")
	api.HandleFunc("/chats/id/{id:[0-9]+}", chatHandler.GetChatByID).Methods("GET")
	api.HandleFunc("/chats/{slug}", chatHandler.GetChat).Methods("GET")
	api.HandleFunc("/chats/{slug}", chatHandler.UpdateChat).Methods("PUT")
	api.HandleFunc("/chats/{slug}", chatHandler.DeleteChat).Methods("DELETE")

	api.HandleFunc("/chats/{slug}/messages", messageHandler.ListMessages).Methods("GET")
	api.HandleFunc("/chats/{slug}/messages", messageHandler.CreateMessage).Methods("POST")
	api.HandleFunc("/chats/{slug}/search", searchHandler.SearchChat).Methods("GET")

	api.HandleFunc("/messages/{id:[0-9]+}", messageHandler.GetMessage).Methods("GET")
	api.HandleFunc("/messages/{id:[0-9]+}", messageHandler.UpdateMessage).Methods("PUT")
	api.HandleFunc("/messages/{id:[0-9]+}", messageHandler.DeleteMessage).Methods("DELETE")

	// --- Server Configuration ---
	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("[MAIN] Arcanum archive starting on port %s (backend: %s)", cfg.ServerPort, cfg.DBBackend)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Server startup failed: %v", err)
		}
	}()

	// --- Graceful Shutdown ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("[MAIN] Shutting down server gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server shutdown failed: %v", err)
	}
	log.Println("[MAIN] Server stopped.")
}
