package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"casino-webapp-backend/internal/auth"
	"casino-webapp-backend/internal/config"
	"casino-webapp-backend/internal/handlers"
	"casino-webapp-backend/internal/loader"
	"casino-webapp-backend/internal/middleware"
	"casino-webapp-backend/internal/registry"
	"casino-webapp-backend/internal/session"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	backend := sessionBackend(cfg)
	store := session.NewStore(backend)

	queries := auth.NewQueries(store)
	authClient := auth.NewClient(cfg.AuthServiceURL, cfg.AuthTimeout)

	// Session restore races the first guarded requests on purpose: a
	// guard that wins sees an unauthenticated session and redirects
	// with the destination preserved in next.
	initializer := auth.NewInitializer(store, authClient, cfg.RefreshCredential)
	go initializer.Run(context.Background())

	reg, err := registry.LoadFile(cfg.CatalogPath)
	if err != nil {
		log.Fatalf("Failed to load game catalog: %v", err)
	}

	modules := loader.NewModules()
	registerModules(modules, reg)
	modules.Freeze()

	gameLoader := loader.NewLoader(reg, modules)

	authHandler := handlers.NewAuthHandler(store, authClient)
	userHandler := handlers.NewUserHandler(store, queries)
	gameHandler := handlers.NewGameHandler(reg, gameLoader, queries)
	eventsHandler := handlers.NewEventsHandler(store)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	router.POST("/auth/login", authHandler.Login)
	router.POST("/auth/logout", authHandler.Logout)

	protected := router.Group("/api")
	protected.Use(middleware.Guard(queries, middleware.GuardConfig{}))
	{
		protected.GET("/me", userHandler.GetCurrentUser)
		protected.PATCH("/me", userHandler.UpdateProfile)
		protected.GET("/session/events", eventsHandler.HandleEvents)

		games := protected.Group("/games")
		{
			games.GET("", gameHandler.ListGames)
			games.GET("/featured", gameHandler.FeaturedGames)
			games.GET("/popular", gameHandler.PopularGames)
			games.GET("/new", gameHandler.NewGames)
			games.GET("/categories", gameHandler.Categories)
			games.GET("/providers", gameHandler.Providers)
			games.GET("/search", gameHandler.SearchGames)
			games.GET("/:slug", gameHandler.GetGame)
		}
	}

	launch := router.Group("/games")
	launch.Use(middleware.Guard(queries, middleware.GuardConfig{}))
	{
		launch.GET("/:slug/launch", gameHandler.LaunchGame)
	}

	admin := router.Group("/admin")
	admin.Use(middleware.AdminGuard(queries))
	{
		admin.GET("/overview", gameHandler.AdminOverview)
		admin.GET("/games", gameHandler.AdminGames)
	}

	log.Printf("Gateway starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// sessionBackend connects the session store to Redis, degrading to the
// in-memory backend when Redis is unreachable. In degraded mode
// sessions live only as long as the process, and reads keep answering
// "not authenticated" instead of erroring.
func sessionBackend(cfg *config.Config) session.Backend {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Printf("Redis unavailable, using in-memory session store: %v", err)
		return session.NewMemoryBackend()
	}

	return session.NewRedisBackend(client, cfg.SessionNamespace)
}

// registerModules binds every catalog component path to its loadable
// unit. Registration is a deployment-time concern; the set is frozen
// before the router starts serving.
func registerModules(modules *loader.Modules, reg *registry.Registry) {
	for _, game := range reg.All() {
		if game.ComponentPath == "" {
			continue
		}

		entry := "/bundles/" + game.ComponentPath + "/index.js"
		if err := modules.Register(game.ComponentPath, loader.Static(entry, "1.0.0")); err != nil {
			log.Printf("Skipping module %s: %v", game.ComponentPath, err)
		}
	}
}
