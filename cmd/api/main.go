package main

import (
	"log"

	_ "ges_billing/docs"
	"ges_billing/internal/adapter/http/routes"
	"ges_billing/internal/infrastructure/config"

	_ "github.com/joho/godotenv/autoload"
)

// @title           GES Billing API
// @version         1.0
// @description     Condominium water billing: readings, apportioned shares, expenses and monthly payments backed by DynamoDB.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := routes.Run(cfg); err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}
