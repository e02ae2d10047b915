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

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lumierefi/store_api/internal/cache"
	"github.com/lumierefi/store_api/internal/catalog"
	"github.com/lumierefi/store_api/internal/config"
	"github.com/lumierefi/store_api/internal/database"
	"github.com/lumierefi/store_api/internal/handler"
	"github.com/lumierefi/store_api/internal/middleware"
	"github.com/lumierefi/store_api/internal/repository"
	"github.com/lumierefi/store_api/internal/service"
	"github.com/lumierefi/store_api/internal/sse"
	"github.com/lumierefi/store_api/internal/store"
	"github.com/lumierefi/store_api/internal/utils"
	"github.com/lumierefi/store_api/internal/worker"
)

// main is the application entrypoint for the Lumière store API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting store api")

	utils.SetJWTSecret(cfg.JWTSecret)

	// 3. Connect database
	db, err := database.Connect(&cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		fmt.Fprintf(os.Stderr, "database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// 3a. Run migrations
	if err := runMigrations(db.DB); err != nil {
		log.Error().Err(err).Msg("migration failed")
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}
	log.Info().Msg("migrations completed successfully")

	// 3b. Connect to Redis
	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Error().Err(err).Msg("redis connection failed")
		fmt.Fprintf(os.Stderr, "redis connection failed: %v\n", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	log.Info().Msg("redis connected successfully")

	// 4. Load the product catalog
	cat, err := catalog.Load()
	if err != nil {
		log.Error().Err(err).Msg("catalog load failed")
		fmt.Fprintf(os.Stderr, "catalog load failed: %v\n", err)
		os.Exit(1)
	}
	log.Info().Int("products", cat.Len()).Msg("catalog loaded")

	// 5. Initialize session stores
	snapshotCache := cache.NewSnapshotCache(redisClient, cfg.Snapshot.TTL)
	stores := store.NewManager(snapshotCache)

	// 6. Initialize repositories
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	addressRepo := repository.NewAddressRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	newsletterRepo := repository.NewNewsletterRepository(db)

	// 7. Initialize services
	hub := sse.NewHub()
	authSvc := service.NewAuthService(userRepo, profileRepo, hub)
	favoritesSvc := service.NewFavoritesService(favoriteRepo)
	checkoutSvc := service.NewCheckoutService(orderRepo, cat, hub)

	// 8. Initialize handlers
	handlers := &Handlers{
		Health:     handler.NewHealthHandler(db, redisClient, cat),
		Product:    handler.NewProductHandler(cat),
		Cart:       handler.NewCartHandler(stores, cat),
		Favorites:  handler.NewFavoritesHandler(stores, favoritesSvc, cat),
		UI:         handler.NewUIHandler(stores, cat),
		Auth:       handler.NewAuthHandler(authSvc, favoritesSvc, stores, cat),
		Order:      handler.NewOrderHandler(checkoutSvc, stores),
		Profile:    handler.NewProfileHandler(profileRepo, userRepo),
		Address:    handler.NewAddressHandler(addressRepo),
		Newsletter: handler.NewNewsletterHandler(newsletterRepo),
		SSE:        handler.NewSSEHandler(hub),
	}

	// 9. Setup router
	jwtMw := middleware.NewJWTMiddleware()
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware())
	setupRoutes(router, handlers, jwtMw)

	// 10. Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 11. Start the snapshot flush worker
	go worker.NewSnapshotWorker(stores, cfg.Snapshot.FlushInterval).Start(ctx)

	// 12. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 13. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 14. Cancel context to stop workers
	cancel()

	// 15. Flush outstanding snapshots, then shut down with a timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	stores.PersistDirty(shutdownCtx)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health     *handler.HealthHandler
	Product    *handler.ProductHandler
	Cart       *handler.CartHandler
	Favorites  *handler.FavoritesHandler
	UI         *handler.UIHandler
	Auth       *handler.AuthHandler
	Order      *handler.OrderHandler
	Profile    *handler.ProfileHandler
	Address    *handler.AddressHandler
	Newsletter *handler.NewsletterHandler
	SSE        *handler.SSEHandler
}

// setupRoutes registers all routes.
func setupRoutes(router *gin.Engine, handlers *Handlers, jwtMiddleware *middleware.JWTMiddleware) {
	router.GET("/v1/health", handlers.Health.GetHealth)

	// Catalog routes (public, no session needed)
	router.GET("/v1/products", handlers.Product.GetProducts)
	router.GET("/v1/products/:productId", handlers.Product.GetProduct)

	// Newsletter signup (public)
	router.POST("/v1/newsletter/subscribe", handlers.Newsletter.Subscribe)

	// SSE event stream (JWT via query param)
	router.GET("/v1/events", handlers.SSE.Stream)

	// Session-scoped routes. A signed-in JWT binds the store to the
	// account; otherwise the X-Session-Id header identifies the guest.
	session := router.Group("/v1")
	session.Use(jwtMiddleware.Optional(), middleware.SessionMiddleware())
	{
		session.GET("/cart", handlers.Cart.GetCart)
		session.POST("/cart/items", handlers.Cart.AddItem)
		session.PUT("/cart/items/:productId", handlers.Cart.SetQty)
		session.DELETE("/cart/items/:productId", handlers.Cart.RemoveItem)
		session.DELETE("/cart", handlers.Cart.ClearCart)
		session.PUT("/cart/drawer", handlers.Cart.SetDrawer)

		session.GET("/favorites", handlers.Favorites.GetFavorites)
		session.POST("/favorites/:productId/toggle", handlers.Favorites.Toggle)

		session.GET("/ui", handlers.UI.GetUI)
		session.PUT("/ui/product", handlers.UI.OpenProduct)
		session.DELETE("/ui/toast", handlers.UI.ClearToast)

		session.POST("/auth/signup", handlers.Auth.SignUp)
		session.POST("/auth/signin", handlers.Auth.SignIn)
	}

	// Account routes (JWT required)
	account := router.Group("/v1")
	account.Use(jwtMiddleware.Handle(), middleware.SessionMiddleware())
	{
		account.POST("/auth/signout", handlers.Auth.SignOut)
		account.GET("/auth/me", handlers.Auth.Me)

		account.POST("/orders", handlers.Order.PlaceOrder)
		account.GET("/orders", handlers.Order.ListOrders)

		account.GET("/profile", handlers.Profile.GetProfile)
		account.PUT("/profile", handlers.Profile.UpdateProfile)

		account.GET("/addresses", handlers.Address.ListAddresses)
		account.POST("/addresses", handlers.Address.CreateAddress)
		account.PUT("/addresses/:id", handlers.Address.UpdateAddress)
		account.DELETE("/addresses/:id", handlers.Address.DeleteAddress)
	}
}

// runMigrations runs database migrations using golang-migrate.
func runMigrations(db *sql.DB) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migration instance: %w", err)
	}

	// Run migrations
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
