package routes

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strconv"

	_ "catering_quotes/docs" // generated swagger docs
	"catering_quotes/internal/adapter/http/handlers"
	"catering_quotes/internal/adapter/persistence/repository"
	"catering_quotes/internal/infrastructure/database"
	"catering_quotes/internal/infrastructure/payments"
	"catering_quotes/internal/usecase"
	"catering_quotes/internal/usecase/interfaces"

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
	quoteRepo, catalogRepo := selectBackend(context.Background())

	var linkProvider interfaces.IPaymentLinkProvider
	mpLinks, err := payments.NewMercadoPagoLinkProvider(os.Getenv("MERCADOPAGO_ACCESS_TOKEN"))
	if err != nil {
		slog.Info("payment link provider not configured", "err", err)
	} else {
		linkProvider = mpLinks
	}

	quoteUseCase := usecase.NewQuoteUseCase(quoteRepo, linkProvider)
	catalogUseCase := usecase.NewCatalogUseCase(catalogRepo)

	quoteHandler := handlers.NewQuoteHandler(quoteUseCase, catalogUseCase)
	catalogHandler := handlers.NewCatalogHandler(catalogUseCase)

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addQuoteRoutes(v1, quoteHandler, catalogHandler)
}

// selectBackend picks the storage port implementation: DynamoDB when the
// backend is configured and answers a probe, the local JSON store otherwise.
// The choice changes where records persist, never what the API computes.
func selectBackend(ctx context.Context) (interfaces.IQuoteRepository, interfaces.ICatalogRepository) {
	ddb, err := database.ConnectDynamoDB(ctx)
	if err != nil {
		slog.Warn("dynamodb client setup failed, using local store", "err", err)
		return newLocalRepositories()
	}
	if !database.Reachable(ctx, ddb) {
		slog.Warn("dynamodb unreachable, using local store")
		return newLocalRepositories()
	}

	slog.Info("storage backend selected", "source", "dynamodb")
	return repository.NewQuoteDynamoRepository(ddb), repository.NewCatalogDynamoRepository(ddb)
}

func newLocalRepositories() (interfaces.IQuoteRepository, interfaces.ICatalogRepository) {
	store := repository.NewLocalStore()
	slog.Info("storage backend selected", "source", "local")
	return repository.NewLocalQuoteRepository(store), repository.NewLocalCatalogRepository(store)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		slog.Error("recovered from panic", "panic", recovered)
		c.AbortWithStatus(500)
	}))
}
