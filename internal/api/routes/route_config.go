package routes

import (
	"Hostel-Food-Ordering/domain"
	"Hostel-Food-Ordering/internal/api/handlers"
	"Hostel-Food-Ordering/internal/middleware"
	"Hostel-Food-Ordering/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App               *fiber.App
	UserHandler       handlers.UserHandler
	UniversityHandler handlers.UniversityHandler
	MenuHandler       handlers.MenuHandler
	CartHandler       handlers.CartHandler
	OrderHandler      handlers.OrderHandler
	MidtransHandler   handlers.MidtransHandler
	Middleware        middleware.Middleware
	JWTService        jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()
	c.Auth()
	c.Student()
	c.Orders()
	c.Admin()
	c.Caterer()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
	c.App.Get("/api/universities", c.UniversityHandler.GetUniversities)
	c.App.Post("/webhook/midtrans", c.MidtransHandler.MidtransWebhookHandler)
}

func (c *Config) Auth() {
	auth := c.App.Group("/api/auth")
	{
		auth.Post("/register", c.UserHandler.Register)
		auth.Post("/login", c.UserHandler.Login)
		auth.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
	}
}

func (c *Config) Student() {
	student := c.App.Group("/api/student",
		c.Middleware.AuthMiddleware(c.JWTService),
		c.Middleware.RoleMiddleware(domain.RoleStudent),
	)
	student.Get("/menu", c.MenuHandler.GetStudentMenu)
	student.Get("/cart", c.CartHandler.GetCart)
	student.Put("/cart", c.CartHandler.SaveCart)
	student.Delete("/cart", c.CartHandler.ClearCart)
}

func (c *Config) Orders() {
	orders := c.App.Group("/api/orders",
		c.Middleware.AuthMiddleware(c.JWTService),
		c.Middleware.RoleMiddleware(domain.RoleStudent),
	)
	orders.Post("/quote", c.OrderHandler.QuoteCart)
	orders.Post("", c.OrderHandler.PlaceOrder)
	orders.Get("", c.OrderHandler.GetOrders)
	orders.Get("/:id", c.OrderHandler.GetOrder)
	orders.Get("/:id/status", c.OrderHandler.GetOrderStatus)
	orders.Get("/:id/qr", c.OrderHandler.GetQRPayload)
	orders.Post("/:id/cancel", c.OrderHandler.CancelOrder)
}

func (c *Config) Admin() {
	admin := c.App.Group("/api/admin",
		c.Middleware.AuthMiddleware(c.JWTService),
		c.Middleware.RoleMiddleware(domain.RoleManager, domain.RoleAdmin),
	)
	adminOnly := c.Middleware.RoleMiddleware(domain.RoleAdmin)

	// orders
	admin.Get("/orders", c.OrderHandler.GetOrders)
	admin.Get("/orders/:id", c.OrderHandler.GetOrder)
	admin.Patch("/orders/:id", c.OrderHandler.UpdateOrderStatus)
	admin.Delete("/orders/:id", adminOnly, c.OrderHandler.DeleteOrder)

	// menu
	admin.Get("/menu", c.MenuHandler.GetMenuItems)
	admin.Post("/menu", c.MenuHandler.CreateMenuItem)
	admin.Put("/menu/:id", c.MenuHandler.UpdateMenuItem)
	admin.Delete("/menu/:id", c.MenuHandler.DeleteMenuItem)
	admin.Put("/menu/:id/availability", c.MenuHandler.SetAvailability)
	admin.Post("/menu/:id/image", c.MenuHandler.UploadMenuImage)

	// users
	admin.Get("/users", c.UserHandler.GetUsers)
	admin.Patch("/users/:id/status", c.UserHandler.UpdateUserStatus)
	admin.Post("/users", adminOnly, c.UserHandler.CreateStaff)
	admin.Post("/universities", adminOnly, c.UniversityHandler.CreateUniversity)
}

func (c *Config) Caterer() {
	caterer := c.App.Group("/api/caterer",
		c.Middleware.AuthMiddleware(c.JWTService),
		c.Middleware.RoleMiddleware(domain.RoleCaterer),
	)
	caterer.Get("/orders", c.OrderHandler.GetTodayReadyOrders)
	caterer.Post("/orders/:id/serve", c.OrderHandler.ServeOrder)
	caterer.Post("/scan", c.OrderHandler.ScanQR)
}
