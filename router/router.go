package router

import (
	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-pos/controllers"
	"github.com/yeremiapane/restaurant-pos/middlewares"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	// Rate limiter global per IP harus terpasang sebelum route
	// didaftarkan; gin membekukan chain handler saat registrasi
	rateLimiter := middlewares.NewRateLimiter(50, 1)
	r.Use(rateLimiter.RateLimit())

	// Inisialisasi controller
	userCtrl := controllers.NewUserController(db)
	tableCtrl := controllers.NewTableController(db)
	sessionCtrl := controllers.NewSessionController(db)
	orderCtrl := controllers.NewOrderController(db)
	customerCtrl := controllers.NewCustomerController(db)
	menuCtrl := controllers.NewMenuController(db)
	categoryCtrl := controllers.NewMenuCategoryController(db)
	adminCtrl := controllers.NewAdminController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Rate limiter ketat untuk login/register
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())

	auth.GET("/profile", userCtrl.GetProfile)
	auth.GET("/users", userCtrl.GetAllUsers)

	// TABLES (baca untuk semua user terautentikasi)
	auth.GET("/tables", tableCtrl.GetAllTables)
	auth.GET("/tables/:table_number", tableCtrl.GetTableByNumber)

	// TABLE SESSIONS
	// GET /table-sessions adalah riwayat session tertutup (paginasi)
	auth.POST("/table-sessions", sessionCtrl.OpenSession)
	auth.GET("/table-sessions", sessionCtrl.GetClosedSessions)
	auth.GET("/table-sessions/:session_id", sessionCtrl.GetSessionByID)
	auth.PATCH("/table-sessions/:session_id", sessionCtrl.UpdateSession)
	auth.POST("/table-sessions/:session_id/orders", sessionCtrl.CreateOrder)
	auth.POST("/table-sessions/:session_id/close", sessionCtrl.CloseSession)
	auth.DELETE("/table-sessions/:session_id", sessionCtrl.DeleteSession)

	// ORDERS
	auth.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	auth.POST("/orders/:order_id/items", orderCtrl.AddOrderItem)
	auth.POST("/orders/:order_id/serve", orderCtrl.MarkOrderServed)
	auth.DELETE("/orders/:order_id", orderCtrl.DeleteOrder)

	// CUSTOMERS
	auth.GET("/customers", customerCtrl.GetAllCustomers)
	auth.POST("/customers", customerCtrl.CreateCustomer)
	auth.GET("/customers/:customer_id", customerCtrl.GetCustomerByID)
	auth.PATCH("/customers/:customer_id", customerCtrl.UpdateCustomer)
	auth.DELETE("/customers/:customer_id", customerCtrl.DeleteCustomer)

	// MENU CATALOG (baca)
	auth.GET("/menus", menuCtrl.GetAllMenuItems)
	auth.GET("/menus/:menu_item_id", menuCtrl.GetMenuItemByID)
	auth.GET("/categories", categoryCtrl.GetAllCategories)
	auth.GET("/sub-categories", categoryCtrl.GetSubCategories)

	// ----------------------------------------------------------------
	//                      ADMIN ROUTES
	// ----------------------------------------------------------------
	admin := auth.Group("/admin")
	admin.Use(middlewares.RequireRoles("admin"))

	admin.POST("/tables", tableCtrl.CreateTable)
	admin.DELETE("/tables/:table_number", tableCtrl.DeleteTable)

	admin.POST("/menus", menuCtrl.CreateMenuItem)
	admin.PATCH("/menus/:menu_item_id", menuCtrl.UpdateMenuItem)
	admin.DELETE("/menus/:menu_item_id", menuCtrl.DeleteMenuItem)

	admin.POST("/categories", categoryCtrl.CreateCategory)
	admin.PATCH("/categories/:cat_id", categoryCtrl.UpdateCategory)
	admin.DELETE("/categories/:cat_id", categoryCtrl.DeleteCategory)
	admin.POST("/sub-categories", categoryCtrl.CreateSubCategory)
	admin.DELETE("/sub-categories/:subcat_id", categoryCtrl.DeleteSubCategory)

	admin.GET("/dashboard/stats", adminCtrl.GetDashboardStats)

	return r
}
