package main

import (
	_ "payhub/docs"
	"payhub/internal/adapter/http/routes"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Payhub API
// @version         1.0
// @description     Payment orchestration service (capture, refund, webhook reconciliation) backed by DynamoDB.

// @contact.name   API Support

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

func main() {
	routes.Run()
}
