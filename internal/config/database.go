package config

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"
)

type MongoDBConfig struct {
	URI      string
	Database string
}

func NewMongoDBConfig() *MongoDBConfig {
	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		log.Fatal("MONGODB_URI not set")
	}
	dbName := os.Getenv("MONGODB_DATABASE")
	if dbName == "" {
		dbName = "medicine_reminder"
	}
	return &MongoDBConfig{URI: uri, Database: dbName}
}

type MongoDBClient struct {
	Client   *mongo.Client
	Database *mongo.Database
}

func NewMongoDBClient(lc fx.Lifecycle, config *MongoDBConfig) (*MongoDBClient, *mongo.Database, error) {
	clientOptions := options.Client().ApplyURI(config.URI)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	err = client.Ping(ctx, nil)
	if err != nil {
		log.Fatalf("Failed to ping MongoDB: %v", err)
	}

	log.Println("Connected to MongoDB")

	lc.Append(fx.Hook{
		OnStart: func(Startctx context.Context) error {
			log.Println("MongoDB connection verified on startup")
			return nil
		},
		OnStop: func(Stopctx context.Context) error {
			log.Println("Closing MongoDB connection ...")
			return client.Disconnect(Stopctx)
		},
	})
	db := client.Database(config.Database)
	return &MongoDBClient{Client: client, Database: db}, db, nil
}

// UserActiveIndex creates the compound index used by per-user medicine queries.
func UserActiveIndex(collection *mongo.Collection) {
	indexmodel := mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "active", Value: 1}},
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	_, err := collection.Indexes().CreateOne(ctx, indexmodel)
	if err != nil {
		log.Fatal("Failed to create user/active index:", err)
	}

	log.Println("Index on user_id/active created successfully")
}

// UniqueEmailIndex enforces one account per email address.
func UniqueEmailIndex(collection *mongo.Collection) {
	indexmodel := mongo.IndexModel{
		Keys:    bson.M{"email": 1},
		Options: options.Index().SetUnique(true),
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	_, err := collection.Indexes().CreateOne(ctx, indexmodel)
	if err != nil {
		log.Fatal("Failed to create unique index on email:", err)
	}
}

func (c *MongoDBClient) GetCollection(collectionName string) *mongo.Collection {
	return c.Database.Collection(collectionName)
}
