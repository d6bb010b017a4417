package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	sloggin "github.com/samber/slog-gin"

	"github.com/tearoma/tearoma-api/internal/transport/http/handler"
	"github.com/tearoma/tearoma-api/internal/transport/http/middleware"
)

type Handlers struct {
	Auth           *handler.AuthHandler
	Profile        *handler.ProfileHandler
	Product        *handler.ProductHandler
	Recommendation *handler.RecommendationHandler
	Subscription   *handler.SubscriptionHandler
	Cart           *handler.CartHandler
	Chat           *handler.ChatHandler
	BestSeller     *handler.BestSellerHandler
}

func NewRouter(logger *slog.Logger, allowedOrigin string, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.CORS(allowedOrigin))
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "working")
	})

	// Users
	r.POST("/register", h.Auth.Register)
	r.POST("/login", h.Auth.Login)
	r.POST("/forgot-password", h.Auth.ForgotPassword)
	r.POST("/reset-password", h.Auth.ResetPassword)
	r.GET("/profile", h.Profile.Get)
	r.PUT("/profile", h.Profile.Update)

	// Catalog
	r.GET("/products", h.Product.List)
	r.POST("/products", h.Product.Create)
	r.GET("/products/:id", h.Product.GetByID)
	r.PUT("/products/:id", h.Product.Update)
	r.DELETE("/products/:id", h.Product.Delete)
	r.GET("/search", h.Product.Search)
	r.POST("/view-product/:id", h.Product.RecordView)

	// Fixed category pages
	r.GET("/teas", h.Product.ListCategory("Tea"))
	r.GET("/snacks", h.Product.ListCategory("Snack"))
	r.GET("/teaware", h.Product.ListCategory("Teaware"))
	r.GET("/tealeaves", h.Product.ListCategory("Tealeaves"))

	// Recommendations
	r.GET("/recommendations", h.Recommendation.Get)

	// Subscriptions
	r.POST("/subscribe", h.Subscription.Subscribe)
	r.POST("/unsubscribe", h.Subscription.Unsubscribe)
	r.GET("/subscriptions", h.Subscription.List)
	r.PUT("/subscriptions", h.Subscription.Update)
	r.GET("/subscription-status", h.Subscription.Status)
	r.GET("/subscription-history", h.Subscription.History)

	// Cart
	r.POST("/cart/add", h.Cart.Add)
	r.GET("/cart/:user_id", h.Cart.View)
	r.DELETE("/cart/remove", h.Cart.Remove)

	// Chat
	r.POST("/send-message", h.Chat.Send)
	r.GET("/messages", h.Chat.List)

	// Best sellers
	r.GET("/best-sellers", h.BestSeller.List)
	r.POST("/best-sellers", h.BestSeller.Add)
	r.GET("/best-sellers/top", h.BestSeller.Top)

	return r
}
