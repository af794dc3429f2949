package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/metrics"
	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/server/http/handlers"
	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.StreetMintFacade, m *metrics.Metrics, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	catalogHandler := handlers.NewCatalogHandler(facade)
	mintHandler := handlers.NewMintHandler(facade)
	nfcHandler := handlers.NewNfcHandler(facade)
	healthHandler := handlers.NewHealthHandler(facade)

	engine.GET("/health", healthHandler.Check)
	engine.GET("/metrics", gin.WrapH(m.Handler()))

	api := engine.Group("/api")

	artist := api.Group("/artist")
	artist.POST("/register", authHandler.Register)
	artist.POST("/login", authHandler.Login)

	api.GET("/collections/:id", catalogHandler.GetCollection)
	api.GET("/collectibles/:id", catalogHandler.GetCollectible)

	collections := api.Group("/collections")
	collections.Use(middleware.AuthRequired(facade))
	collections.POST("", catalogHandler.CreateCollection)
	collections.GET("", catalogHandler.ListCollections)
	collections.POST("/:id/addresses", catalogHandler.SetAddresses)
	collections.POST("/:id/collectibles", catalogHandler.CreateCollectible)
	collections.GET("/:id/collectibles", catalogHandler.ListCollectibles)

	mint := api.Group("/collection/mint")
	mint.POST("/initiate", mintHandler.Initiate)
	mint.POST("/process", mintHandler.Process)

	api.POST("/nfc/verify", nfcHandler.Verify)

	return engine
}
