package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"tafaya_back_end/internal/handlers"
	"tafaya_back_end/internal/handlers/admin"
	"tafaya_back_end/internal/handlers/order"
	"tafaya_back_end/internal/handlers/product"
	"tafaya_back_end/internal/middleware"
)

func RegisterRoutes(r *gin.Engine) {
	// Vitrine publique : CORS ouvert, l'admin est protégé par jeton
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Guest-ID"}
	r.Use(cors.New(corsConfig))

	api := r.Group("/api")

	api.GET("/health", handlers.Health)

	// --- Catalogue (public) ---
	api.GET("/products", product.GetAllProducts)
	api.GET("/products/search", product.SearchProducts)
	api.GET("/products/:id", product.GetProduct)
	api.POST("/products/:id/view", product.IncrementViews)

	// --- Avis (public, sans compte) ---
	api.GET("/products/:id/reviews", product.GetProductReviews)
	api.POST("/products/:id/reviews", product.CreateReview)

	// --- Panier invité ---
	api.GET("/cart", handlers.GetCart)
	api.POST("/cart", handlers.AddToCart)
	api.PUT("/cart/items/:lineId", handlers.UpdateCartItem)
	api.DELETE("/cart/items/:lineId", handlers.RemoveCartItem)
	api.DELETE("/cart", handlers.ClearCart)

	// --- Commandes ---
	api.POST("/orders", order.CreateOrder)
	api.GET("/orders/:id/whatsapp-qr", order.WhatsAppQR)

	// --- Connexion admin ---
	api.POST("/admin/login", middleware.LoginRateLimit(), admin.Login)

	// --- Console admin (jeton porteur requis) ---
	protected := api.Group("", middleware.AuthRequired(), middleware.RequireAdmin)
	protected.GET("/admin/verify", admin.Verify)
	protected.POST("/products", product.CreateProduct)
	protected.PUT("/products/:id", product.UpdateProduct)
	protected.DELETE("/products/:id", product.DeleteProduct)
	protected.POST("/upload", handlers.UploadImage)
	protected.GET("/orders", order.GetOrders)
	protected.PUT("/orders/:id/status", order.UpdateOrderStatus)
}
