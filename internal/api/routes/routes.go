// server/internal/api/routes/routes.go
package routes

import (
	"chefhub-kw-api-server/config"
	"chefhub-kw-api-server/internal/api/handlers"
	"chefhub-kw-api-server/internal/api/middleware"
	"chefhub-kw-api-server/internal/cache"
	"chefhub-kw-api-server/internal/models"
	"chefhub-kw-api-server/internal/notifier"
	"chefhub-kw-api-server/internal/s3"
	"chefhub-kw-api-server/internal/socket"
	"chefhub-kw-api-server/internal/statemachine"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// SetupRouter nhận vào các thành phần phụ thuộc và thiết lập các route
func SetupRouter(
	cfg config.Config,
	db *mongo.Database,
	s3Uploader *s3.Uploader,
	wsHub *socket.Hub,
	ratings *cache.RatingsCache,
	ntf *notifier.Notifier,
	emailClient *notifier.EmailClient,
	whatsAppClient *notifier.WhatsAppClient,
) *gin.Engine {
	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
	}))

	jwtSecret := []byte(cfg.JWT.Secret)

	chefMachine := &statemachine.ChefStatusMachine{DB: db, Notifier: ntf}
	orderMachine := &statemachine.OrderMachine{DB: db, Notifier: ntf}

	// Khởi tạo các handlers
	authHandler := &handlers.AuthHandler{DB: db, Cfg: cfg, Notifier: ntf}
	chefHandler := &handlers.ChefHandler{DB: db, Machine: chefMachine, Ratings: ratings}
	dishHandler := &handlers.DishHandler{DB: db, Cfg: cfg, S3Uploader: s3Uploader}
	orderHandler := &handlers.OrderHandler{DB: db, Cfg: cfg, Machine: orderMachine, Notifier: ntf}
	specialOrderHandler := &handlers.SpecialOrderHandler{DB: db, Notifier: ntf}
	bannerHandler := &handlers.BannerHandler{DB: db, S3Uploader: s3Uploader}
	reviewHandler := &handlers.ReviewHandler{DB: db, Notifier: ntf, Ratings: ratings}
	notificationHandler := &handlers.NotificationHandler{DB: db}
	adminHandler := &handlers.AdminHandler{DB: db, Machine: chefMachine}
	dispatchHandler := &handlers.DispatchHandler{Email: emailClient, WhatsApp: whatsAppClient}
	webSocketHandler := &handlers.WebSocketHandler{Hub: wsHub, JWTSecret: jwtSecret}

	// === CÁC ENDPOINT DISPATCH NỘI BỘ ===
	// Đứng ngoài /api/v1, bảo vệ bằng dispatch token tĩnh thay vì JWT.
	internalAPI := router.Group("/api")
	internalAPI.Use(middleware.RequireDispatchToken(cfg.Notify.DispatchToken))
	{
		internalAPI.POST("/admin/delete-user", adminHandler.DeleteUser)
		internalAPI.POST("/notifications/email", dispatchHandler.SendEmail)
		internalAPI.POST("/notifications/whatsapp", dispatchHandler.SendWhatsApp)
	}

	apiV1 := router.Group("/api/v1")
	{
		// Route cho WebSocket
		apiV1.GET("/ws", webSocketHandler.ServeWs)

		// === CÁC ROUTE KHÔNG YÊU CẦU XÁC THỰC ===

		// Nhóm API authentication
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// Nhóm API công khai cho trang chủ và trang chef/món
		public := apiV1.Group("/")
		{
			public.GET("/chefs", chefHandler.GetActiveChefs)
			public.GET("/chefs/:id", chefHandler.GetChefByID)
			public.GET("/chefs/:id/rating", chefHandler.GetChefRating)
			public.GET("/chefs/:id/reviews", reviewHandler.GetChefReviews)
			public.GET("/dishes", dishHandler.GetActiveDishes)
			public.GET("/dishes/:id", dishHandler.GetDishByID)
			public.GET("/dishes/:id/qr", dishHandler.GetDishQR)
			public.GET("/banners", bannerHandler.GetActiveBanners)
		}

		// === CÁC ROUTE YÊU CẦU XÁC THỰC (PROTECTED) ===

		// Nhóm chung cho mọi user đã đăng nhập
		authed := apiV1.Group("/")
		authed.Use(middleware.Authenticate(jwtSecret))
		{
			notifications := authed.Group("/notifications")
			{
				notifications.GET("/", notificationHandler.GetMyNotifications)
				notifications.PUT("/:id/read", notificationHandler.MarkNotificationRead)
				notifications.PUT("/read-all", notificationHandler.MarkAllNotificationsRead)
			}

			// Chi tiết và chuyển trạng thái đơn: bảng transition quyết định
			// quyền theo actor, route chỉ cần user đã đăng nhập.
			orders := authed.Group("/orders")
			{
				orders.GET("/:id", orderHandler.GetOrderByID)
				orders.PUT("/:id/status", orderHandler.UpdateOrderStatus)
			}
		}

		// Nhóm API dành cho customer
		customer := apiV1.Group("/")
		customer.Use(middleware.Authenticate(jwtSecret))
		customer.Use(middleware.Authorize(models.RoleCustomer))
		{
			customer.POST("/orders", orderHandler.CreateOrder)
			customer.GET("/orders", orderHandler.GetMyOrders)

			customer.POST("/special-orders", specialOrderHandler.CreateSpecialOrder)
			customer.GET("/special-orders", specialOrderHandler.GetMySpecialOrders)
			customer.PUT("/special-orders/:id/accept", specialOrderHandler.AcceptQuote)
			customer.PUT("/special-orders/:id/decline", specialOrderHandler.DeclineQuote)

			customer.POST("/reviews", reviewHandler.CreateReview)
			customer.GET("/reviews", reviewHandler.GetMyReviews)
		}

		// Nhóm API dành cho chef
		chef := apiV1.Group("/chef")
		chef.Use(middleware.Authenticate(jwtSecret))
		chef.Use(middleware.Authorize(models.RoleChef))
		{
			chef.GET("/profile", chefHandler.GetMyProfile)
			chef.PUT("/profile", chefHandler.UpdateMyProfile)

			dishes := chef.Group("/dishes")
			{
				dishes.GET("/", dishHandler.GetMyDishes)
				dishes.POST("/", dishHandler.CreateDish)
				dishes.PUT("/:id", dishHandler.UpdateMyDish)
				dishes.PUT("/:id/toggle", dishHandler.ToggleMyDish)
				dishes.DELETE("/:id", dishHandler.DeleteMyDish)
				dishes.POST("/:id/image", dishHandler.UploadDishImage)
			}

			chef.GET("/orders", orderHandler.GetChefOrders)

			specialOrders := chef.Group("/special-orders")
			{
				specialOrders.GET("/", specialOrderHandler.GetChefSpecialOrders)
				specialOrders.PUT("/:id/quote", specialOrderHandler.QuoteSpecialOrder)
				specialOrders.PUT("/:id/reject", specialOrderHandler.RejectSpecialOrder)
			}
		}

		// Nhóm API quản trị, yêu cầu vai trò "admin"
		admin := apiV1.Group("/admin")
		admin.Use(middleware.Authenticate(jwtSecret))
		admin.Use(middleware.Authorize(models.RoleAdmin))
		{
			admin.GET("/chefs", chefHandler.GetAllChefs)
			admin.PUT("/chefs/:id/status", chefHandler.SetChefStatus)
			admin.DELETE("/chefs/:id", chefHandler.DeleteChef)

			admin.GET("/orders", orderHandler.GetAllOrders)

			banners := admin.Group("/banners")
			{
				banners.GET("/", bannerHandler.GetAllBanners)
				banners.POST("/", bannerHandler.CreateBanner)
				banners.PUT("/:id/toggle", bannerHandler.ToggleBanner)
				banners.PUT("/:id/reorder", bannerHandler.ReorderBanner)
				banners.DELETE("/:id", bannerHandler.DeleteBanner)
				banners.POST("/:id/image", bannerHandler.UploadBannerImage)
			}
		}
	}

	return router
}
