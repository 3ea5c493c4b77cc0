package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polvex/pharmatrack/internal/server/http/handlers"
	"github.com/polvex/pharmatrack/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.PharmacyFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	paymentHandler := handlers.NewPaymentHandler(facade)
	inventoryHandler := handlers.NewInventoryHandler(facade)

	api := engine.Group("/api")
	staff := api.Group("/staff")
	staff.POST("/register", authHandler.Register)
	staff.POST("/login", authHandler.Login)

	authorized := api.Group("")
	authorized.Use(middleware.AuthRequired(facade))

	authorized.POST("/patients", orderHandler.CreatePatient)
	authorized.GET("/patients/:id/orders", orderHandler.PatientOrders)

	authorized.POST("/orders", orderHandler.Create)
	authorized.GET("/orders", orderHandler.List)
	authorized.GET("/orders/:id", orderHandler.Get)
	authorized.POST("/orders/:id/status", orderHandler.ChangeStatus)
	authorized.POST("/orders/:id/remarks", orderHandler.ChangeRemarks)
	authorized.POST("/orders/:id/refund", orderHandler.Refund)
	authorized.GET("/orders/:id/payment", paymentHandler.ByOrder)

	authorized.POST("/payments", paymentHandler.Submit)

	authorized.POST("/products", inventoryHandler.CreateProduct)
	authorized.GET("/products", inventoryHandler.ListProducts)
	authorized.POST("/products/:id/batches", inventoryHandler.ReceiveBatch)
	authorized.GET("/products/:id/batches", inventoryHandler.ListBatches)

	return engine
}
