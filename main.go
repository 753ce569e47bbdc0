package main

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tksilicon/tshirtshop/config"
	"github.com/tksilicon/tshirtshop/controllers"
	"github.com/tksilicon/tshirtshop/database"
	"github.com/tksilicon/tshirtshop/errors"
	"github.com/tksilicon/tshirtshop/logger"
	"github.com/tksilicon/tshirtshop/middleware"
	"github.com/tksilicon/tshirtshop/models"
	"github.com/tksilicon/tshirtshop/repository"
	"github.com/tksilicon/tshirtshop/routes"
	"github.com/tksilicon/tshirtshop/services"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	logger.Initialize(cfg.Env)
	log := logger.Log
	defer log.Sync()

	if err := database.Connect(cfg); err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	if err := models.Migrate(database.DB); err != nil {
		log.Fatal("database migration failed", zap.Error(err))
	}

	catalogRepo := repository.NewGormCatalogRepository(database.DB)
	customerRepo := repository.NewGormCustomerRepository(database.DB)
	cartRepo := repository.NewGormCartRepository(database.DB)
	orderRepo := repository.NewGormOrderRepository(database.DB)

	tokenService := services.NewTokenService(cfg.JWTSecret)
	orderService := services.NewOrderService(database.DB, log)
	stripeService := services.NewStripeService(cfg.StripeSecretKey, cfg.OutboundTimeout)
	emailService := services.NewEmailService(services.EmailConfig{
		SMTPServer:  cfg.SMTPServer,
		SMTPPort:    cfg.SMTPPort,
		SenderEmail: cfg.SMTPEmail,
		SenderPass:  cfg.SMTPPassword,
		SenderName:  cfg.SMTPSenderName,
		Timeout:     cfg.OutboundTimeout,
	}, log)

	productController := controllers.NewProductController(catalogRepo, log)
	customerController := controllers.NewCustomerController(customerRepo, tokenService, log)
	cartController := controllers.NewCartController(
		cartRepo, catalogRepo, orderRepo, orderService,
		tokenService, stripeService, emailService, log,
	)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(log))
	r.Use(gin.CustomRecovery(errors.Recovery(log)))
	r.Use(cors.New(cors.Config{
		AllowOrigins:  strings.Split(cfg.AllowedOrigins, ","),
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders: []string{"USERKEY"},
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.Register(r, productController, customerController, cartController, tokenService, customerRepo)

	log.Info("server starting", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
