package main

import (
	_ "pagamentos_api/docs"
	"pagamentos_api/internal/adapter/http/routes"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Payment Management API
// @version         1.0
// @description     Payment management API (CRUD + Mercado Pago checkout preferences) backed by DynamoDB.

// @contact.name   API Support

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /api

func main() {
	routes.Run()
}
