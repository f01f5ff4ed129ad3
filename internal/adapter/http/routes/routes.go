package routes

import (
	"log"
	"os"
	"strconv"

	_ "pagamentos_api/docs" // swag-generated
	"pagamentos_api/internal/adapter/http/handlers"
	"pagamentos_api/internal/adapter/persistence/repository"
	"pagamentos_api/internal/infrastructure/database"
	"pagamentos_api/internal/infrastructure/payments"
	"pagamentos_api/internal/usecase"
	"pagamentos_api/internal/usecase/interfaces"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

const PORT = 8080

// Run will start the server
func Run() {
	setMiddlewares()

	// Swagger documentation endpoint
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

	// A missing gateway only blocks credit card creation; PIX and the read
	// side keep working.
	var paymentGateway interfaces.IPaymentGateway
	mpGateway, err := payments.NewMercadoPagoGateway(os.Getenv("MERCADOPAGO_ACCESS_TOKEN"), os.Getenv("BASE_URL"))
	if err != nil {
		log.Printf("Mercado Pago gateway not configured: %v", err)
	} else {
		paymentGateway = mpGateway
	}

	paymentUseCase := usecase.NewPaymentUseCase(paymentRepo, paymentGateway)

	paymentHandler := handlers.NewPaymentHandler(paymentUseCase)
	webhookHandler := handlers.NewWebhookHandler(paymentUseCase)

	api := router.Group("/api")
	addPingRoutes(api)
	addPaymentRoutes(api, paymentHandler, webhookHandler)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(cors.Default())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
