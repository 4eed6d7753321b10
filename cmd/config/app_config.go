package config

import (
	"Hostel-Food-Ordering/internal/api/handlers"
	"Hostel-Food-Ordering/internal/api/routes"
	"Hostel-Food-Ordering/internal/middleware"
	"Hostel-Food-Ordering/internal/utils"
	"Hostel-Food-Ordering/internal/utils/mailing"
	"Hostel-Food-Ordering/internal/utils/storage"
	"Hostel-Food-Ordering/pkg/cache"
	"Hostel-Food-Ordering/pkg/cart"
	"Hostel-Food-Ordering/pkg/events"
	"Hostel-Food-Ordering/pkg/jwt"
	"Hostel-Food-Ordering/pkg/menu"
	"Hostel-Food-Ordering/pkg/midtrans"
	"Hostel-Food-Ordering/pkg/order"
	"Hostel-Food-Ordering/pkg/university"
	"Hostel-Food-Ordering/pkg/user"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: !utils.IsProd(),
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate
	location := utils.LoadLocation(utils.GetConfig("TIMEZONE"))

	// setting up logging and limiter
	if err := os.MkdirAll("./logs", os.ModePerm); err != nil {
		return nil, fmt.Errorf("creating logs directory: %w", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   location.String(),
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        20,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()
	store := newCache()
	publisher := newPublisher()
	app.Hooks().OnShutdown(func() error {
		if closer, ok := publisher.(*events.KafkaProducer); ok {
			closer.Close()
		}
		return file.Close()
	})

	taxRate, err := decimal.NewFromString(utils.GetConfig("TAX_RATE"))
	if err != nil {
		log.Warnf("invalid TAX_RATE %q, using 0.10", utils.GetConfig("TAX_RATE"))
		taxRate = decimal.RequireFromString("0.10")
	}

	// Repository
	universityRepository := university.NewUniversityRepository(db)
	userRepository := user.NewUserRepository(db)
	menuRepository := menu.NewMenuRepository(db)
	orderRepository := order.NewOrderRepository(db)

	// Service
	jwtService := jwt.NewJWTService(utils.GetConfig("JWT_SECRET"))
	universityService := university.NewUniversityService(universityRepository)
	userService := user.NewUserService(
		userRepository,
		universityRepository,
		jwtService,
		newMailer(),
		utils.GetConfig("APP_URL"),
	)
	menuService := menu.NewMenuService(menuRepository, s3)
	cartService := cart.NewCartService(store)
	midtransService := midtrans.NewMidtransService(
		orderRepository,
		publisher,
		utils.GetConfig("SERVER_KEY"),
		utils.IsProd(),
	)
	var payments order.PaymentGateway
	if utils.GetConfig("SERVER_KEY") != "" {
		payments = midtransService
	} else {
		log.Warn("SERVER_KEY not set, online payments are disabled")
	}
	orderService := order.NewOrderService(
		orderRepository,
		menuRepository,
		store,
		publisher,
		cartService,
		payments,
		order.Settings{
			Location:   location,
			TaxRate:    taxRate,
			CutoffHour: utils.GetConfigInt("ORDER_CUTOFF_HOUR", 22),
		},
	)

	if err := userService.EnsureAdmin(context.Background(), utils.GetConfig("ADMIN_EMAIL"), utils.GetConfig("ADMIN_PASSWORD")); err != nil {
		log.Errorf("failed to bootstrap admin account: %v", err)
	}

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	universityHandler := handlers.NewUniversityHandler(universityService, validator)
	menuHandler := handlers.NewMenuHandler(menuService, validator)
	cartHandler := handlers.NewCartHandler(cartService, validator)
	orderHandler := handlers.NewOrderHandler(orderService, validator)
	midtransHandler := handlers.NewMidtransHandler(midtransService, validator)

	// routes
	routesConfig := routes.Config{
		App:               app,
		UserHandler:       userHandler,
		UniversityHandler: universityHandler,
		MenuHandler:       menuHandler,
		CartHandler:       cartHandler,
		OrderHandler:      orderHandler,
		MidtransHandler:   midtransHandler,
		Middleware:        middlewares,
		JWTService:        jwtService,
	}
	routesConfig.Setup()
	return app, nil
}

func newCache() cache.Cache {
	addr := utils.GetConfig("REDIS_ADDR")
	if addr == "" {
		log.Warn("REDIS_ADDR not set, using in-process cache")
		return cache.NewMemoryCache()
	}

	client := cache.NewRedisClient(addr, utils.GetConfig("REDIS_PASSWORD"))
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warnf("redis at %s unreachable: %v", addr, err)
	}
	return cache.NewRedisCache(client)
}

func newPublisher() events.Publisher {
	brokers := events.ParseBrokers(utils.GetConfig("KAFKA_BROKERS"))
	if len(brokers) == 0 {
		log.Warn("KAFKA_BROKERS not set, domain events are not published")
		return events.NewNoopPublisher()
	}

	producer := events.NewKafkaProducer(brokers, utils.GetConfig("KAFKA_TOPIC"), 1024)
	producer.Start()
	return producer
}

func newMailer() mailing.Mailer {
	cfg, ok := mailing.LoadSMTPConfig()
	if !ok {
		log.Warn("SMTP_HOST not set, account status mails are disabled")
		return nil
	}
	return mailing.NewSMTPMailer(cfg)
}
