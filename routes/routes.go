package routes

import (
	"net/http"

	"github.com/Himanshu790310/biryaniclub7/configs"
	"github.com/Himanshu790310/biryaniclub7/controllers"
	"github.com/Himanshu790310/biryaniclub7/entity"
	"github.com/Himanshu790310/biryaniclub7/middlewares"
	"github.com/Himanshu790310/biryaniclub7/services"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, svc *services.Services, cfg *configs.Config) {
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	// Controllers
	authCtrl := controllers.NewAuthController(svc.Auth)
	menuCtrl := controllers.NewMenuController(svc.Menu, svc.Store)
	storeCtrl := controllers.NewStoreController(svc.Store)
	cartCtrl := controllers.NewCartController(svc.Cart)
	promoCtrl := controllers.NewPromotionController(svc.Promotions)
	orderCtrl := controllers.NewOrderController(svc.Checkout, svc.Orders)
	loyaltyCtrl := controllers.NewLoyaltyController(svc.Loyalty)
	deliveryCtrl := controllers.NewDeliveryController(svc.Delivery)
	adminCtrl := controllers.NewAdminController(svc.Orders, svc.Users)

	required := func(roles ...entity.Role) gin.HandlerFunc {
		return middlewares.AuthMiddleware(cfg.JWTSecret, svc.Now, roles...)
	}
	optional := middlewares.OptionalAuth(cfg.JWTSecret, svc.Now)

	// Public
	r.GET("/menu", menuCtrl.List)
	r.GET("/menu/popular", menuCtrl.Popular)
	r.GET("/menu/categories", menuCtrl.Categories)
	r.GET("/store", storeCtrl.Status)
	r.GET("/promotions", promoCtrl.Available)

	// Auth
	a := r.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
		a.GET("/me", required(), authCtrl.Me)
	}

	// JSON endpoints used by the storefront scripts
	api := r.Group("/api")
	{
		api.POST("/validate_coupon", promoCtrl.ValidateCoupon)
		api.GET("/order_status/:orderNumber", orderCtrl.Status)
		api.GET("/cart_count", optional, cartCtrl.Count)
	}

	// Checkout and order pages: guests allowed, signed-in users identified
	guest := r.Group("/", optional)
	{
		guest.POST("/checkout/quote", orderCtrl.Quote)
		guest.POST("/checkout", orderCtrl.Create)
		guest.GET("/orders/:orderNumber", orderCtrl.Detail)
		guest.GET("/orders/:orderNumber/payment", orderCtrl.Payment)
		guest.POST("/orders/:orderNumber/confirm_payment", orderCtrl.ConfirmPayment)
	}

	// Customer
	u := r.Group("/", required())
	{
		u.GET("/cart", cartCtrl.Get)
		u.POST("/cart/items", cartCtrl.Add)
		u.PATCH("/cart/items", cartCtrl.UpdateQty)
		u.DELETE("/cart/items/:menuItemId", cartCtrl.Remove)
		u.DELETE("/cart", cartCtrl.Clear)

		u.GET("/my/orders", orderCtrl.ListForMe)
		u.POST("/orders/:orderNumber/cancel", orderCtrl.Cancel)

		u.GET("/loyalty", loyaltyCtrl.Summary)
		u.POST("/loyalty/redeem", loyaltyCtrl.Redeem)
	}

	// Delivery
	d := r.Group("/delivery", required(entity.RoleDelivery))
	{
		d.GET("", deliveryCtrl.Dashboard)
		d.POST("/orders/:id/assign", deliveryCtrl.Assign)
		d.POST("/orders/:id/pickup", deliveryCtrl.Pickup)
		d.POST("/orders/:id/complete", deliveryCtrl.Complete)
	}

	// Admin (admin only)
	admin := r.Group("/admin", required(entity.RoleAdmin))
	{
		admin.GET("/dashboard", adminCtrl.Dashboard)
		admin.POST("/store/toggle", storeCtrl.Toggle)

		admin.GET("/orders", adminCtrl.ListOrders)
		admin.PATCH("/orders/:id/status", adminCtrl.UpdateOrderStatus)
		admin.POST("/orders/:id/cancel", adminCtrl.CancelOrder)

		admin.GET("/users", adminCtrl.ListUsers)
		admin.PATCH("/users/:id", adminCtrl.UpdateUser)
		admin.POST("/users/:id/toggle", adminCtrl.ToggleUser)

		admin.GET("/menu", menuCtrl.AdminList)
		admin.POST("/menu", menuCtrl.Create)
		admin.PATCH("/menu/:id", menuCtrl.Update)
		admin.POST("/menu/:id/toggle", menuCtrl.ToggleStock)

		admin.GET("/promotions", promoCtrl.List)
		admin.POST("/promotions", promoCtrl.Create)
		admin.PATCH("/promotions/:id", promoCtrl.Update)
		admin.POST("/promotions/:id/toggle", promoCtrl.Toggle)
		admin.DELETE("/promotions/:id", promoCtrl.Delete)
	}
}
