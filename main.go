package main

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/creatorstation/fibboscore/internal/appcron"
	"github.com/creatorstation/fibboscore/internal/db"
	"github.com/creatorstation/fibboscore/internal/scoring"
	"github.com/creatorstation/fibboscore/internal/store"
)

func main() {
	godotenv.Load()
	logrus.SetFormatter(&logrus.JSONFormatter{})

	db.ConnectMongo()
	db.ConnectPG()

	entities := store.NewEntityStore(db.GetPGDB())
	telemetry := store.NewTelemetryStore(db.GetMongoDB())
	scores := store.NewScoreStore(db.GetPGDB())

	engine := scoring.NewEngine(entities, telemetry, scores, logrus.StandardLogger())

	app := fiber.New()

	scoring.MountController(app.Group("/scoring"), engine)
	appcron.MountController(app.Group("/cron"), engine, entities)
	appcron.SetupScoringCron(engine, entities)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	app.Listen(":" + port)
}
