// Package server wires the dependency graph and defines every route.
// main.go stays minimal; this is the composition root.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/gupta-8/code-snippet/internal/auth"
	"github.com/gupta-8/code-snippet/internal/executor"
	"github.com/gupta-8/code-snippet/internal/handler"
	"github.com/gupta-8/code-snippet/internal/middleware"
	sqliteRepo "github.com/gupta-8/code-snippet/internal/repository/sqlite"
	"github.com/gupta-8/code-snippet/internal/service"
)

// Version is reported by the health endpoint.
const Version = "2.0.0"

// Config holds everything the server needs, loaded from the environment
// in main.go.
type Config struct {
	Port        int
	DBPath      string
	JWTSecret   string
	CORSOrigins []string

	// GitHub OAuth is optional; the routes only register when a client
	// id is configured.
	GitHubClientID     string
	GitHubClientSecret string
	GitHubCallbackURL  string
}

// Server owns the router and the resources that need closing on
// shutdown.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
	exec   executor.Executor // nil when the sandbox is disabled
}

// New assembles the dependency chain: database, services, handlers,
// routes. Each layer receives interfaces, not concrete types below it.
func New(cfg Config, logger *slog.Logger, exec executor.Executor) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
		exec:   exec,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	if len(s.config.CORSOrigins) > 0 {
		s.router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.config.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	tokens, err := auth.NewTokenService(s.config.JWTSecret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService()

	var github *auth.GitHubProvider
	if s.config.GitHubClientID != "" {
		github = auth.NewGitHubProvider(
			s.config.GitHubClientID,
			s.config.GitHubClientSecret,
			s.config.GitHubCallbackURL,
		)
	}

	authService := service.NewAuthService(s.db, tokens, passwords, s.logger)
	snippetService := service.NewSnippetService(s.db, s.db, s.logger)
	folderService := service.NewFolderService(s.db, s.logger)
	tagService := service.NewTagService(s.db, s.db, s.logger)
	tabService := service.NewTabService(s.db, s.logger)
	transferService := service.NewTransferService(s.db, s.db, s.logger)
	statsService := service.NewStatsService(s.db, s.logger)

	authHandler := handler.NewAuthHandler(authService, github, s.logger)
	snippetHandler := handler.NewSnippetHandler(snippetService, s.logger)
	folderHandler := handler.NewFolderHandler(folderService, s.logger)
	tagHandler := handler.NewTagHandler(tagService, s.logger)
	searchHandler := handler.NewSearchHandler(snippetService, s.logger)
	transferHandler := handler.NewTransferHandler(transferService, s.logger)
	tabHandler := handler.NewTabHandler(tabService, s.logger)
	statsHandler := handler.NewStatsHandler(statsService, s.logger)
	shareHandler := handler.NewShareHandler(snippetService, s.logger)
	runHandler := handler.NewRunHandler(snippetService, s.exec, s.logger)
	healthHandler := handler.NewHealthHandler(Version)

	requireAuth := auth.RequireAuth(authService)

	s.router.Get("/health", healthHandler.HandleRoot)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.HandleAPI)
		// Share links work without a session; the id is the secret.
		r.Get("/share/{id}", shareHandler.HandleGet)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", authHandler.HandleSignup)
			r.Post("/login", authHandler.HandleLogin)
			r.Post("/refresh", authHandler.HandleRefresh)

			if github != nil {
				r.Get("/github/login", authHandler.HandleGitHubLogin)
				r.Get("/github/callback", authHandler.HandleGitHubCallback)
			}

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Get("/me", authHandler.HandleMe)
				r.Post("/logout", authHandler.HandleLogout)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Get("/snippets", snippetHandler.HandleList)
			r.Post("/snippets", snippetHandler.HandleCreate)
			r.Get("/snippets/{id}", snippetHandler.HandleGet)
			r.Put("/snippets/{id}", snippetHandler.HandleUpdate)
			r.Delete("/snippets/{id}", snippetHandler.HandleDelete)
			r.Post("/snippets/{id}/favorite", snippetHandler.HandleFavorite)
			r.Post("/snippets/{id}/run", runHandler.HandleRun)

			r.Get("/folders", folderHandler.HandleList)
			r.Post("/folders", folderHandler.HandleCreate)
			r.Get("/folders/{id}", folderHandler.HandleGet)
			r.Put("/folders/{id}", folderHandler.HandleUpdate)
			r.Delete("/folders/{id}", folderHandler.HandleDelete)

			r.Get("/tags", tagHandler.HandleList)
			r.Post("/tags", tagHandler.HandleCreate)
			r.Delete("/tags/{id}", tagHandler.HandleDelete)
			r.Post("/tags/cleanup", tagHandler.HandleCleanup)

			r.Post("/search", searchHandler.HandleSearch)
			r.Get("/search", searchHandler.HandleSearchQuery)

			r.Get("/export", transferHandler.HandleExport)
			r.Post("/import", transferHandler.HandleImport)

			r.Get("/tabs", tabHandler.HandleGet)
			r.Put("/tabs", tabHandler.HandleSave)

			r.Get("/stats", statsHandler.HandleGet)
		})
	})

	return nil
}

// Start runs the server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, drain in-flight requests, and
// close the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
