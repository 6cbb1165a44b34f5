package api

import (
	"net/http"

	"github.com/drawvault/workspace-api/internal/api/handler"
	customMiddleware "github.com/drawvault/workspace-api/internal/api/middleware"
	"github.com/drawvault/workspace-api/internal/authz"
	"github.com/drawvault/workspace-api/internal/config"
	repoMongo "github.com/drawvault/workspace-api/internal/repository/mongo"
	"github.com/drawvault/workspace-api/internal/repository/postgres"
	"github.com/drawvault/workspace-api/internal/repository/redis"
	"github.com/drawvault/workspace-api/internal/security"
	"github.com/drawvault/workspace-api/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, db *postgres.DB, redisClient *redis.Client, auditLog *repoMongo.AuditLog) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Server.MiddlewareTimeout))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize security components
	keyFetcher := security.NewRealmKeyFetcher(cfg.IdP.RealmURL(), cfg.IdP.FetchTimeout)
	keyCache := security.NewKeyCache(keyFetcher, cfg.IdP.KeyTTL, cfg.IdP.KeyGrace)
	tokenValidator := security.NewTokenValidator(keyCache)

	// Initialize repositories
	workspaceRepo := postgres.NewWorkspaceRepository(db)
	collectionRepo := postgres.NewCollectionRepository(db)
	drawingRepo := postgres.NewDrawingRepository(db)
	shareRepo := postgres.NewShareRepository(db)
	inviteRepo := postgres.NewInviteRepository(db)
	hierarchyRepo := postgres.NewHierarchyRepository(db)

	// Initialize rate limiter and shared-listing cache
	rateLimiter := redis.NewRateLimiter(
		redisClient,
		cfg.Security.RateLimit.RequestsPerMinute,
		cfg.Security.RateLimit.Burst,
	)
	sharedCache := redis.NewSharedListCache(redisClient)

	// Initialize authorization gate
	gate := authz.NewGate(hierarchyRepo, shareRepo)

	// Initialize services
	workspaceService := service.NewWorkspaceService(workspaceRepo, collectionRepo, gate)
	collectionService := service.NewCollectionService(collectionRepo, drawingRepo, gate)
	drawingService := service.NewDrawingService(drawingRepo, collectionRepo, gate)
	shareService := service.NewShareService(shareRepo, inviteRepo, collectionRepo, sharedCache, auditLog)

	// Initialize handlers
	workspaceHandler := handler.NewWorkspaceHandler(workspaceService)
	collectionHandler := handler.NewCollectionHandler(collectionService)
	drawingHandler := handler.NewDrawingHandler(drawingService)
	shareHandler := handler.NewShareHandler(shareService)

	// Auth middleware
	authMiddleware := customMiddleware.NewAuthMiddleware(tokenValidator)
	rateLimitMiddleware := customMiddleware.NewRateLimitMiddleware(rateLimiter)

	r.Route("/api/v1", func(r chi.Router) {
		// Health check (public)
		r.Get("/health", handler.HealthCheck)
		r.Get("/ready", handler.ReadyCheck(db))

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Use(rateLimitMiddleware.Limit)

			// Workspace routes
			r.Route("/workspaces", func(r chi.Router) {
				r.Get("/", workspaceHandler.List)
				r.Post("/", workspaceHandler.Create)

				r.Route("/{workspaceID}", func(r chi.Router) {
					r.Get("/", workspaceHandler.Get)
					r.Patch("/", workspaceHandler.Update)
					r.Delete("/", workspaceHandler.Delete)
				})
			})

			// Collection routes
			r.Route("/collections", func(r chi.Router) {
				r.Get("/", collectionHandler.List)
				r.Post("/", collectionHandler.Create)

				r.Route("/{collectionID}", func(r chi.Router) {
					r.Get("/", collectionHandler.Get)
					r.Patch("/", collectionHandler.Update)
					r.Delete("/", collectionHandler.Delete)
				})
			})

			// Drawing routes
			r.Route("/drawings", func(r chi.Router) {
				r.Post("/", drawingHandler.Create)
				r.Get("/collection/{collectionID}", drawingHandler.ListByCollection)

				r.Route("/{drawingID}", func(r chi.Router) {
					r.Get("/", drawingHandler.Get)
					r.Patch("/", drawingHandler.Update)
					r.Delete("/", drawingHandler.Delete)
				})
			})

			// Share routes
			r.Route("/shares", func(r chi.Router) {
				r.Post("/invite", shareHandler.CreateInvite)
				r.Post("/join", shareHandler.Join)
				r.Get("/collections", shareHandler.ListSharedWithMe)
				r.Get("/collection/{collectionID}", shareHandler.ListCollectionShares)

				r.Route("/{shareID}", func(r chi.Router) {
					r.Patch("/", shareHandler.UpdatePermission)
					r.Delete("/", shareHandler.Revoke)
				})
			})
		})
	})

	return r
}
