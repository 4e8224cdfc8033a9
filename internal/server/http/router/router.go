package router

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/config"
	"github.com/polkiloo/storefront/internal/server/http/flash"
	"github.com/polkiloo/storefront/internal/server/http/handlers"
	"github.com/polkiloo/storefront/internal/server/http/middleware"
)

// Params lists router dependencies.
type Params struct {
	fx.In

	Facade  handlers.StorefrontFacade
	Flash   *flash.Store
	Limiter middleware.Limiter
	Config  *config.Config
	Logger  *slog.Logger
}

// Setup configures gin router with handlers and middleware.
func Setup(p Params) *gin.Engine {
	if p.Config.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(p.Logger))
	if len(p.Config.CORSOrigins) > 0 {
		engine.Use(cors.New(cors.Config{
			AllowOrigins:     p.Config.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			ExposeHeaders:    []string{"Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	engine.Use(middleware.DecompressRequest(middleware.DefaultMaxDecompressedBody))
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(p.Facade)
	catalogHandler := handlers.NewCatalogHandler(p.Facade, p.Flash)
	cartHandler := handlers.NewCartHandler(p.Facade, p.Flash, p.Logger)
	checkoutHandler := handlers.NewCheckoutHandler(p.Facade, p.Flash, p.Logger)
	paymentHandler := handlers.NewPaymentHandler(p.Facade, p.Flash, p.Logger)

	engine.GET("/", catalogHandler.Home)
	engine.GET("/product/:slug", catalogHandler.Product)
	engine.POST("/register", authHandler.Register)
	engine.POST("/login", middleware.Throttle(p.Limiter, p.Logger), authHandler.Login)
	engine.POST("/webhook/stripe", paymentHandler.Webhook)

	user := engine.Group("")
	user.Use(middleware.AuthRequired(p.Facade))
	user.GET("/order-summary", cartHandler.Summary)
	user.GET("/order-history", cartHandler.History)
	user.POST("/add-to-cart/:slug", cartHandler.Add)
	user.POST("/remove-from-cart/:slug", cartHandler.Remove)
	user.POST("/remove-item-from-cart/:slug", cartHandler.RemoveSingle)
	user.GET("/checkout", checkoutHandler.Form)
	user.POST("/checkout", checkoutHandler.Submit)
	user.POST("/add-coupon", checkoutHandler.ApplyCoupon)
	user.GET("/payment/:payment_option", paymentHandler.Page)
	user.POST("/payment/:payment_option", paymentHandler.Pay)
	user.POST("/payment-complete", paymentHandler.Complete)

	return engine
}
