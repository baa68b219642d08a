package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/recipebox/recipe-api/internal/api/handler"
	"github.com/recipebox/recipe-api/internal/api/middleware"
	"github.com/recipebox/recipe-api/internal/core/service"
	mongodb "github.com/recipebox/recipe-api/internal/infrastructure/db/mongo"
	redisdb "github.com/recipebox/recipe-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, tokenTTL time.Duration, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	// Routes are registered with trailing slashes; accept both forms.
	e.Pre(echomiddleware.AddTrailingSlash())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("recipebox"))

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	recipeRepo := mongodb.NewRecipeRepository(db)
	tagRepo := mongodb.NewTagRepository(db)
	ingredientRepo := mongodb.NewIngredientRepository(db)
	tokenStore := redisdb.NewTokenStore(rdb, tokenTTL)

	userService := service.NewUserService(userRepo, tokenStore, log)
	recipeService := service.NewRecipeService(recipeRepo, tagRepo, ingredientRepo, log)
	tagService := service.NewTagService(tagRepo, recipeRepo, log)
	ingredientService := service.NewIngredientService(ingredientRepo, recipeRepo, log)

	userHandler := handler.NewUserHandler(userService)
	recipeHandler := handler.NewRecipeHandler(recipeService)
	tagHandler := handler.NewNamedEntityHandler(tagService)
	ingredientHandler := handler.NewNamedEntityHandler(ingredientService)
	auth := middleware.Auth(userService)

	// --- User routes ---
	e.POST("/user/create/", userHandler.Register)
	e.POST("/user/token/", userHandler.Token)
	me := e.Group("/user/me", auth)
	me.GET("/", userHandler.Me)
	me.PUT("/", userHandler.UpdateMe)
	me.PATCH("/", userHandler.UpdateMe)

	// --- Recipe routes ---
	recipes := e.Group("/recipes", auth)
	recipes.GET("/", recipeHandler.List)
	recipes.POST("/", recipeHandler.Create)
	recipes.GET("/:id/", recipeHandler.Get)
	recipes.PUT("/:id/", recipeHandler.Update)
	recipes.PATCH("/:id/", recipeHandler.Update)
	recipes.DELETE("/:id/", recipeHandler.Delete)

	// --- Tag / ingredient routes (no create: reconciler-only creation) ---
	for prefix, h := range map[string]*handler.NamedEntityHandler{
		"/tags":        tagHandler,
		"/ingredients": ingredientHandler,
	} {
		g := e.Group(prefix, auth)
		g.GET("/", h.List)
		g.PUT("/:id/", h.Update)
		g.PATCH("/:id/", h.Update)
		g.DELETE("/:id/", h.Delete)
	}

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health/", healthHandler.Liveness)
	e.GET("/health/ready/", healthDepsHandler.Readiness)

	// --- Operational endpoints ---
	e.GET("/metrics/", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
