package db

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var mongoDatabase *mongo.Database

// ConnectMongo establishes a connection to the telemetry MongoDB
func ConnectMongo() {
	ctx := context.Background()

	opts := options.Client().ApplyURI(os.Getenv("MONGO_URI"))
	mongoClient, err := mongo.Connect(ctx, opts)
	if err != nil {
		logrus.Fatalf("mongo.Connect failed: %v", err)
	}

	mongoDatabase = mongoClient.Database("fibbo_metrics")
}

// GetMongoDB returns the MongoDB database
func GetMongoDB() *mongo.Database {
	return mongoDatabase
}
