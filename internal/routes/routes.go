package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/ataousCode/agro-backend/internal/authz"
	"github.com/ataousCode/agro-backend/internal/handlers"
	"github.com/ataousCode/agro-backend/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	protect gin.HandlerFunc,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	productHandler *handlers.ProductHandler,
	seedHandler *handlers.CatalogHandler,
	seedlingHandler *handlers.CatalogHandler,
	machineryHandler *handlers.CatalogHandler,
	workerHandler *handlers.CatalogHandler,
	orderHandler *handlers.OrderHandler,
	cultivationHandler *handlers.CultivationHandler,
	diseaseHandler *handlers.DiseaseHandler,
) *gin.Engine {
	adminOnly := middleware.RestrictTo(authz.RoleAdmin)

	api := r.Group("/api")

	// AUTH
	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/verify-otp", authHandler.VerifyOTP)
		auth.POST("/login", authHandler.Login)
		auth.POST("/forgot-password", authHandler.ForgotPassword)
		auth.POST("/reset-password", authHandler.ResetPassword)
		auth.GET("/me", protect, authHandler.GetMe)
	}

	// USERS
	users := api.Group("/users", protect)
	{
		users.GET("/profile", userHandler.GetProfile)
		users.PUT("/profile", userHandler.UpdateProfile)
		users.PUT("/password", userHandler.UpdatePassword)

		users.GET("/", adminOnly, userHandler.ListUsers)
		users.GET("/:id", adminOnly, userHandler.GetUserByID)
		users.PUT("/:id", adminOnly, userHandler.UpdateUser)
		users.DELETE("/:id", adminOnly, userHandler.DeleteUser)
	}

	// PRODUCTS (cross-category)
	products := api.Group("/products")
	{
		products.GET("/", productHandler.GetAllProducts)
		products.GET("/featured", productHandler.GetFeaturedProducts)
		products.GET("/search", productHandler.SearchProducts)
		products.GET("/:id", productHandler.GetProductByID)
		products.POST("/:id/reviews", protect, productHandler.AddProductReview)

		products.POST("/", protect, adminOnly, productHandler.CreateProduct)
		products.PUT("/:id", protect, adminOnly, productHandler.UpdateProduct)
		products.DELETE("/:id", protect, adminOnly, productHandler.DeleteProduct)
	}

	// per-kind catalog routes share one handler shape
	catalog := []struct {
		path    string
		handler *handlers.CatalogHandler
	}{
		{"/seeds", seedHandler},
		{"/seedlings", seedlingHandler},
		{"/machinery", machineryHandler},
		{"/workers", workerHandler},
	}
	for _, entry := range catalog {
		h := entry.handler
		g := api.Group(entry.path)
		g.GET("/", h.List)
		g.GET("/:id", h.GetByID)
		g.POST("/", protect, adminOnly, h.Create)
		g.PUT("/:id", protect, adminOnly, h.Update)
		g.DELETE("/:id", protect, adminOnly, h.Delete)
	}

	// ORDERS
	orders := api.Group("/orders", protect)
	{
		orders.POST("/", orderHandler.CreateOrder)
		orders.GET("/my-orders", orderHandler.GetMyOrders)
		orders.GET("/:id", orderHandler.GetOrderByID)
		orders.GET("/:id/invoice", orderHandler.GetOrderInvoice)

		orders.GET("/", adminOnly, orderHandler.ListOrders)
		orders.PUT("/:id/status", adminOnly, orderHandler.UpdateOrderStatus)
		orders.PUT("/:id/pay", adminOnly, orderHandler.PayOrder)
	}

	// CULTIVATION
	cultivation := api.Group("/cultivation")
	{
		cultivation.GET("/", cultivationHandler.GetAllCultivations)
		cultivation.GET("/crops", cultivationHandler.GetCropTypes)
		cultivation.GET("/:id", cultivationHandler.GetCultivationByID)

		cultivation.POST("/", protect, adminOnly, cultivationHandler.CreateCultivation)
		cultivation.PUT("/:id", protect, adminOnly, cultivationHandler.UpdateCultivation)
		cultivation.DELETE("/:id", protect, adminOnly, cultivationHandler.DeleteCultivation)
	}

	// DISEASES
	diseases := api.Group("/diseases")
	{
		diseases.GET("/", diseaseHandler.GetAllDiseases)
		diseases.GET("/:id", diseaseHandler.GetDiseaseByID)

		diseases.POST("/", protect, adminOnly, diseaseHandler.CreateDisease)
		diseases.PUT("/:id", protect, adminOnly, diseaseHandler.UpdateDisease)
		diseases.DELETE("/:id", protect, adminOnly, diseaseHandler.DeleteDisease)
	}

	return r
}
