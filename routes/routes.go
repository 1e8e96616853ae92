package routes

import (
	"net/http"

	"greenzest/admin"
	"greenzest/auth"
	"greenzest/comments"
	"greenzest/middleware"
	"greenzest/notifications"
	"greenzest/orders"
	"greenzest/products"
	"greenzest/profile"
	"greenzest/ratelim"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/productpic/*filepath", http.Dir("static/productpic"))
}

func AddAuthRoutes(router *httprouter.Router) {
	router.POST("/api/auth/signup", ratelim.RateLimit(auth.Register))
	router.POST("/api/auth/login", ratelim.RateLimit(auth.Login))
	router.GET("/api/auth/verify", middleware.Authenticate(auth.Verify))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.Logout))
}

func AddProductRoutes(router *httprouter.Router) {
	router.GET("/api/products", middleware.OptionalAuth(products.GetProducts))
	router.GET("/api/products/product/:productid", middleware.OptionalAuth(products.GetProduct))
	router.GET("/api/products/category/:category", middleware.OptionalAuth(products.GetProductsByCategory))
	router.GET("/api/products/search/:query", middleware.OptionalAuth(products.SearchProducts))
	router.POST("/api/products/product/:productid/reviews", middleware.Authenticate(products.AddReview))
}

func AddOrderRoutes(router *httprouter.Router) {
	router.POST("/api/orders", ratelim.RateLimit(middleware.Authenticate(orders.PlaceOrder)))
	router.GET("/api/orders", middleware.Authenticate(orders.GetOrders))
	router.GET("/api/orders/:orderid", middleware.Authenticate(orders.GetOrder))
	router.POST("/api/orders/:orderid/cancel", middleware.Authenticate(orders.CancelOrder))
	router.PUT("/api/orders/:orderid/status", middleware.Authenticate(middleware.RequireAdmin(orders.UpdateOrderStatus)))
	router.GET("/api/orders/:orderid/invoice", middleware.Authenticate(orders.OrderInvoice))
}

func AddNotificationRoutes(router *httprouter.Router, hub *notifications.Hub) {
	router.GET("/api/notifications", middleware.Authenticate(notifications.GetNotifications))
	router.PUT("/api/notifications/read-all", middleware.Authenticate(notifications.MarkAllRead))
	router.PUT("/api/notifications/read/:notifid", middleware.Authenticate(notifications.MarkRead))
	router.DELETE("/api/notifications/:notifid", middleware.Authenticate(notifications.DeleteNotification))
	router.GET("/ws/notifications", middleware.Authenticate(notifications.StreamHandler(hub)))
}

func AddCommentsRoutes(router *httprouter.Router) {
	router.POST("/api/comments", middleware.Authenticate(comments.CreateComment))
	router.GET("/api/comments", middleware.OptionalAuth(comments.GetComments))
	router.GET("/api/comments/product/:productid", middleware.OptionalAuth(comments.GetProductComments))
	router.PUT("/api/comments/:commentid", middleware.Authenticate(comments.UpdateComment))
	router.DELETE("/api/comments/:commentid", middleware.Authenticate(comments.DeleteComment))
}

func AddProfileRoutes(router *httprouter.Router) {
	router.GET("/api/profile", middleware.Authenticate(profile.GetProfile))
	router.PUT("/api/profile", middleware.Authenticate(profile.EditProfile))
	router.PUT("/api/profile/password", middleware.Authenticate(profile.ChangePassword))
}

func AddAdminRoutes(router *httprouter.Router) {
	router.POST("/api/admin/bootstrap", ratelim.RateLimit(middleware.Authenticate(admin.BootstrapAdmin)))

	router.GET("/api/admin/users", middleware.Authenticate(middleware.RequireAdmin(admin.GetUsers)))
	router.PUT("/api/admin/users/:userid/deactivate", middleware.Authenticate(middleware.RequireAdmin(admin.DeactivateUser)))
	router.PUT("/api/admin/users/:userid/activate", middleware.Authenticate(middleware.RequireAdmin(admin.ActivateUser)))
	router.PUT("/api/admin/users/:userid/promote", middleware.Authenticate(middleware.RequireAdmin(admin.PromoteUser)))

	router.GET("/api/admin/orders", middleware.Authenticate(middleware.RequireAdmin(admin.GetAllOrders)))
	router.GET("/api/admin/stats", middleware.Authenticate(middleware.RequireAdmin(admin.GetStats)))
	router.GET("/api/admin/analytics", middleware.Authenticate(middleware.RequireAdmin(admin.GetAnalytics)))

	router.GET("/api/admin/products", middleware.Authenticate(middleware.RequireAdmin(products.GetAllProducts)))
	router.POST("/api/admin/products", middleware.Authenticate(middleware.RequireAdmin(products.CreateProduct)))
	router.PUT("/api/admin/products/:productid", middleware.Authenticate(middleware.RequireAdmin(products.EditProduct)))
	router.DELETE("/api/admin/products/:productid", middleware.Authenticate(middleware.RequireAdmin(products.DeleteProduct)))
	router.POST("/api/admin/products/:productid/image", middleware.Authenticate(middleware.RequireAdmin(products.UploadProductImage)))

	router.PUT("/api/admin/comments/:commentid/approve", middleware.Authenticate(middleware.RequireAdmin(comments.ApproveComment)))
	router.PUT("/api/admin/comments/:commentid/spam", middleware.Authenticate(middleware.RequireAdmin(comments.FlagSpam)))
}
