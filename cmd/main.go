package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/robfig/cron/v3"

	"invoicing-service/internal/config"
	"invoicing-service/internal/database/minio"
	"invoicing-service/internal/database/postgres"
	"invoicing-service/internal/database/redis"
	"invoicing-service/internal/event"
	"invoicing-service/internal/handlers"
	"invoicing-service/internal/middleware"
	"invoicing-service/internal/repository"
	"invoicing-service/internal/services"
	"invoicing-service/internal/utils"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.New()

	db, err := postgres.ConnectAndCreateDB(cfg.PostgresCfg)
	if err != nil {
		slog.Error("initial postgres connection failed, retrying", "error", err)
		postgres.RetryConnectOnFailed(10*time.Second, &db, cfg.PostgresCfg)
	}
	defer db.Close()
	slog.Info("connected to postgres", "host", cfg.PostgresCfg.Host, "db", cfg.PostgresCfg.DBname)

	// Redis, MinIO and RabbitMQ are best-effort: the service runs without
	// them, losing the summary cache, receipt uploads and usage events.
	var summaryCache services.SummaryCache
	redisClient, err := redis.NewRedisClient(cfg.RedisCfg.Host, cfg.RedisCfg.Port, cfg.RedisCfg.Password, cfg.RedisCfg.DB)
	if err != nil {
		slog.Warn("redis unavailable, summary caching disabled", "error", err)
	} else {
		summaryCache = redisClient
		defer redisClient.Close()
	}

	var uploader services.ReceiptUploader
	minioClient, err := minio.NewMinioClient(cfg.MinioCfg)
	if err != nil {
		slog.Warn("minio unavailable, receipt uploads disabled", "error", err)
	} else {
		uploader = minioClient
	}

	var publisher services.UsageEventPublisher
	rabbitConn, err := event.ConnectRabbitMQ(cfg.RabbitMQCfg)
	if err != nil {
		slog.Warn("rabbitmq unavailable, coupon usage events disabled", "error", err)
	} else {
		publisher = event.NewCouponUsagePublisher(rabbitConn)
		defer rabbitConn.Close()
	}

	customerRepo := repository.NewCustomerRepository(db)
	itemRepo := repository.NewInventoryItemRepository(db)
	couponRepo := repository.NewCouponRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)

	customerService := services.NewCustomerService(customerRepo)
	itemService := services.NewInventoryItemService(itemRepo)
	couponService := services.NewCouponService(couponRepo)
	bookkeepingService := services.NewBookkeepingService(expenseRepo, invoiceRepo, customerRepo, summaryCache)
	invoiceService := services.NewInvoiceService(invoiceRepo, customerRepo, itemRepo, couponService, publisher, bookkeepingService)
	expenseService := services.NewExpenseService(expenseRepo, uploader, bookkeepingService)

	scheduler := cron.New()
	overdueJob := services.NewInvoiceOverdueJob(invoiceRepo)
	if err := overdueJob.Schedule(scheduler); err != nil {
		slog.Error("failed to schedule overdue job", "error", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	app := fiber.New()

	app.Get("/checkhealth", func(c fiber.Ctx) error {
		return c.JSON(utils.CreateSuccessResponse(fiber.Map{"status": "ok"}))
	})

	org := app.Group("/v1/:org", middleware.RequireUser())
	handlers.NewCustomerHandler(customerService).RegisterRoutes(org)
	handlers.NewInventoryItemHandler(itemService).RegisterRoutes(org)
	handlers.NewCouponHandler(couponService).RegisterRoutes(org)
	handlers.NewInvoiceHandler(invoiceService).RegisterRoutes(org)
	handlers.NewExpenseHandler(expenseService).RegisterRoutes(org)
	handlers.NewBookkeepingHandler(bookkeepingService).RegisterRoutes(org)

	slog.Info("invoicing service listening", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
