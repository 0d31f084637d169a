package routes

import (
	"log"
	"strconv"

	_ "payhub/docs" // generated swagger spec
	"payhub/internal/adapter/http/handlers"
	"payhub/internal/adapter/persistence/repository"
	"payhub/internal/infrastructure/database"
	"payhub/internal/infrastructure/payments"
	"payhub/internal/usecase"
	"payhub/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

const PORT = 8080

// Run wires every dependency and starts the server.
func Run() {
	setMiddlewares()

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes()

	err := router.Run(":" + strconv.Itoa(PORT))
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes() {
	ddb := database.ConnectDynamoDB()

	paymentRepo := repository.NewPaymentDynamoRepository(ddb)
	userRepo := repository.NewUserDynamoRepository(ddb)

	var providers interfaces.IProviderResolver
	registry, err := payments.NewRegistry(payments.ConfigFromEnv())
	if err != nil {
		// Capture and webhook routes answer with a configuration error until
		// provider credentials are supplied; reads still work.
		log.Printf("payment providers not configured: %v", err)
	} else {
		providers = registry
	}

	paymentUseCase := usecase.NewPaymentUseCase(paymentRepo, userRepo, providers)
	webhookUseCase := usecase.NewWebhookUseCase(providers, paymentUseCase)

	paymentHandler := handlers.NewPaymentHandler(paymentUseCase)
	webhookHandler := handlers.NewWebhookHandler(webhookUseCase)

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addPaymentRoutes(v1, paymentHandler, webhookHandler)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
