package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/reece333/SafeEats-TeamM/internal/ai"
	"github.com/reece333/SafeEats-TeamM/internal/auth"
	"github.com/reece333/SafeEats-TeamM/internal/idgen"
	"github.com/reece333/SafeEats-TeamM/internal/menu"
	"github.com/reece333/SafeEats-TeamM/internal/middleware"
	"github.com/reece333/SafeEats-TeamM/internal/policy"
	"github.com/reece333/SafeEats-TeamM/internal/restaurant"
	"github.com/reece333/SafeEats-TeamM/internal/store"
)

// New wires every handler over the given store and extraction gateway. Tests
// run the same engine against the in-memory store and a fake model client.
func New(st store.Store, gateway *ai.Gateway) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	ids := idgen.New(st)
	engine := policy.NewEngine(st)

	authService := auth.NewService(st)
	authHandler := auth.NewHandler(authService)

	restaurantService := restaurant.NewService(st, ids, engine)
	restaurantHandler := restaurant.NewHandler(restaurantService)

	menuService := menu.NewService(st, ids, engine)
	menuHandler := menu.NewHandler(menuService)

	aiHandler := ai.NewHandler(gateway)

	// ───────────────────────── AUTH ─────────────────────────
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
	}

	// ───────────────────────── RESTAURANTS ─────────────────────────
	restaurants := r.Group("/restaurants")
	restaurants.Use(middleware.AuthMiddleware())
	{
		restaurants.POST("/", restaurantHandler.Create)
		restaurants.POST("", restaurantHandler.Create)
		restaurants.GET("", restaurantHandler.List)
		restaurants.GET("/:id", restaurantHandler.Get)
		restaurants.PUT("/:id", restaurantHandler.Update)

		restaurants.POST("/:id/menu", menuHandler.Create)
		restaurants.GET("/:id/menu", menuHandler.List)
	}

	// Menu item mutations carry no bearer token; the parent and linkage
	// checks in the service are the only gate.
	r.PUT("/restaurants/:id/menu/:itemId", menuHandler.Update)
	r.DELETE("/restaurants/:id/menu/:itemId", menuHandler.Delete)

	// ───────────────────────── AI ─────────────────────────
	aiGroup := r.Group("/ai")
	aiGroup.Use(middleware.AuthMiddleware())
	{
		aiGroup.POST("/parse-ingredients", aiHandler.ParseIngredients)
		aiGroup.POST("/ingest-menu", aiHandler.IngestMenu)
	}

	// ───────────────────────── HEALTH ─────────────────────────
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
