// server/internal/database/seeder.go
package database

import (
	"context"
	"time"

	"chefhub-kw-api-server/internal/auth"
	"chefhub-kw-api-server/internal/models"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// SeedAdmin tạo tài khoản admin mặc định nếu chưa có.
func SeedAdmin(db *mongo.Database, email, password string) error {
	userCollection := db.Collection("users")

	// Kiểm tra xem admin đã tồn tại chưa
	count, err := userCollection.CountDocuments(context.Background(), bson.M{"role": models.RoleAdmin})
	if err != nil {
		return err
	}

	if count > 0 {
		logrus.Info("Admin account already exists. Seeding skipped.")
		return nil
	}

	// Tạo admin nếu chưa có
	logrus.Info("Admin account not found. Seeding...")
	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	admin := models.User{
		UserID:    models.AdminRecipient,
		Email:     email,
		Name:      "ChefHub Admin",
		Password:  hashedPassword,
		Role:      models.RoleAdmin,
		Status:    models.StatusActive,
		IsActive:  true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	_, err = userCollection.InsertOne(context.Background(), admin)
	if err != nil {
		return err
	}

	logrus.Info("Admin account seeded successfully.")
	return nil
}
