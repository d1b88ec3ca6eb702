// server/internal/database/mongo.go
package database

import (
	"context"
	"fmt"
	"time"

	"chefhub-kw-api-server/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Connect mở kết nối MongoDB và ping để chắc chắn server sẵn sàng.
func Connect(cfg config.MongoConfig) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client, client.Database(cfg.DBName), nil
}

// EnsureIndexes tạo các index mà các truy vấn chính dựa vào.
func EnsureIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	indexes := map[string][]mongo.IndexModel{
		"users": {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "userID", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		"chefs": {
			{Keys: bson.D{{Key: "chefID", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "status", Value: 1}}},
		},
		"dishes": {
			{Keys: bson.D{{Key: "dishID", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "chefID", Value: 1}}},
		},
		"orders": {
			{Keys: bson.D{{Key: "orderID", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "customerID", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "chefID", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		"special_orders": {
			{Keys: bson.D{{Key: "specialOrderID", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "chefID", Value: 1}, {Key: "status", Value: 1}}},
		},
		"notifications": {
			{Keys: bson.D{{Key: "userID", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		"notification_outbox": {
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: 1}}},
		},
		"chef_reviews": {
			{Keys: bson.D{{Key: "chefID", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
	}

	for name, models := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes for %s: %w", name, err)
		}
	}
	return nil
}
