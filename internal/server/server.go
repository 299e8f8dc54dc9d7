// Package server is the composition root: it wires the database, services,
// handlers, and middleware into a chi router and owns the HTTP lifecycle.
//
// main.go stays minimal — load config, build a logger, call New and Start.
// Everything else is assembled here so a test can stand up the full router
// without a process.
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
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/reads-stash/server/internal/auth"
	"github.com/reads-stash/server/internal/config"
	"github.com/reads-stash/server/internal/handler"
	"github.com/reads-stash/server/internal/middleware"
	sqliteRepo "github.com/reads-stash/server/internal/repository/sqlite"
	"github.com/reads-stash/server/internal/service"
)

// Server owns the router, the database connection, and the config. The DB
// is closed during graceful shutdown so pending WAL frames are flushed.
type Server struct {
	router *chi.Mux
	config config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New assembles the full dependency graph: one sqlite.DB implementing every
// repository interface, services on top of it, handlers on top of those.
// Each layer receives only the interfaces it needs.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	tokens, err := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating token service: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}
	s.setupRoutes(tokens)

	return s, nil
}

// Router exposes the assembled handler chain, mainly for httptest servers.
func (s *Server) Router() http.Handler {
	return s.router
}

// setupRoutes registers middleware and every route.
//
// Middleware order: request id first so the logger can report it, then
// RealIP, then logging and metrics around the whole chain, then Recoverer so
// a panic still produces a logged 500.
func (s *Server) setupRoutes(tokens *auth.TokenService) {
	s.router.Use(middleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(middleware.Metrics())
	s.router.Use(chimiddleware.Recoverer)

	passwords := auth.NewPasswordService(s.config.BcryptCost)

	authService := service.NewAuthService(s.db, tokens, passwords, s.logger)
	userService := service.NewUserService(s.db, s.logger)
	collectionService := service.NewCollectionService(s.db, s.logger)
	journalService := service.NewJournalService(s.db, s.logger)
	recommendationService := service.NewRecommendationService(s.db, s.db, s.logger)
	followerService := service.NewFollowerService(s.db, s.db, s.logger)
	badgeService := service.NewBadgeService(s.db, s.logger)
	readService := service.NewReadService(s.db, s.db, s.logger)

	authHandler := handler.NewAuthHandler(authService, s.logger)
	userHandler := handler.NewUserHandler(userService, s.logger)
	collectionHandler := handler.NewCollectionHandler(collectionService, s.logger)
	journalHandler := handler.NewJournalHandler(journalService, s.logger)
	recommendationHandler := handler.NewRecommendationHandler(recommendationService, s.logger)
	followerHandler := handler.NewFollowerHandler(followerService, s.logger)
	badgeHandler := handler.NewBadgeHandler(badgeService, s.logger)
	readHandler := handler.NewReadHandler(readService, s.logger)

	// Prometheus scrape endpoint, outside /api and outside auth.
	s.router.Handle("/metrics", promhttp.Handler())

	s.router.Route("/api", func(r chi.Router) {
		// Public routes: registration and login issue the tokens everything
		// else requires.
		r.Post("/auth/register", authHandler.HandleRegister)
		r.Post("/auth/login", authHandler.HandleLogin)

		// Everything below carries Authorization: Bearer <jwt>.
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(tokens, handler.WriteError))

			r.Get("/users", userHandler.HandleList)
			r.Get("/users/{userId}", userHandler.HandleGet)
			r.Patch("/users/{userId}", userHandler.HandleUpdate)
			r.Delete("/users/{userId}", userHandler.HandleDelete)

			r.Get("/users/{userId}/collections", collectionHandler.HandleList)
			r.Get("/users/{userId}/collections/{collectionId}", collectionHandler.HandleGet)
			r.Post("/users/{userId}/collections", collectionHandler.HandleCreate)
			r.Patch("/users/{userId}/collections/{collectionId}", collectionHandler.HandleUpdate)
			r.Delete("/users/{userId}/collections/{collectionId}", collectionHandler.HandleDelete)

			r.Get("/users/{userId}/journals", journalHandler.HandleList)
			r.Get("/users/{userId}/journals/{journalId}", journalHandler.HandleGet)
			r.Post("/users/{userId}/journals", journalHandler.HandleCreate)
			r.Patch("/users/{userId}/journals/{journalId}", journalHandler.HandleUpdate)
			r.Delete("/users/{userId}/journals/{journalId}", journalHandler.HandleDelete)

			r.Get("/users/{userId}/recommendations", recommendationHandler.HandleList)
			r.Get("/users/{userId}/recommendations/{recommendationId}", recommendationHandler.HandleGet)
			r.Post("/users/{userId}/recommendations", recommendationHandler.HandleCreate)
			r.Delete("/users/{userId}/recommendations/{recommendationId}", recommendationHandler.HandleDelete)

			// The follower routes share the {userId} position but carry a
			// username there; the handlers treat it as such.
			r.Get("/users/{userId}/followers", followerHandler.HandleListFollowers)
			r.Get("/users/{userId}/followers/{followerUsername}", followerHandler.HandleGetFollower)
			r.Delete("/users/{userId}/followers/{followerUsername}", followerHandler.HandleDeleteFollower)

			r.Get("/users/{userId}/followed", followerHandler.HandleListFollowed)
			r.Post("/users/{userId}/followed", followerHandler.HandleFollow)
			r.Delete("/users/{userId}/followed/{followedId}", followerHandler.HandleUnfollow)

			r.Get("/badges", badgeHandler.HandleListCatalogue)
			r.Post("/badges", badgeHandler.HandleCreateBadge)
			r.Get("/users/{userId}/badges", badgeHandler.HandleListUserBadges)
			r.Get("/users/{userId}/badges/{badgeId}", badgeHandler.HandleGetUserBadge)
			r.Post("/users/{userId}/badges", badgeHandler.HandleAward)
			r.Delete("/users/{userId}/badges/{badgeId}", badgeHandler.HandleRemove)

			r.Post("/reads", readHandler.HandleCreateRead)
			r.Get("/reads/{readId}", readHandler.HandleGetRead)
			r.Get("/reads/{readId}/collections", readHandler.HandleListReadCollections)
			r.Post("/reads/{readId}/collections", readHandler.HandleFileIntoCollection)
			r.Delete("/reads/{readId}/collections/{collectionId}", readHandler.HandleRemoveFromCollection)

			r.Get("/users/{userId}/reads", readHandler.HandleListUserReads)
			r.Get("/users/{userId}/reads/{readId}", readHandler.HandleGetUserRead)
			r.Post("/users/{userId}/reads", readHandler.HandleStash)
			r.Patch("/users/{userId}/reads/{readId}", readHandler.HandleUpdateUserRead)
			r.Delete("/users/{userId}/reads/{readId}", readHandler.HandleDeleteUserRead)
		})
	})
}

// Start runs the HTTP server until SIGINT/SIGTERM, then drains in-flight
// requests for up to 30 seconds and closes the database.
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
