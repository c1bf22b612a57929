package main

import (
	_ "catering_quotes/docs"
	"catering_quotes/internal/adapter/http/routes"
	"catering_quotes/pkg/logging"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Catering Quote Service API
// @version         1.0
// @description     Catering quote pricing and lifecycle service backed by DynamoDB with a local fallback store.

// @contact.name   API Support

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

func main() {
	logging.Setup()
	routes.Run()
}
