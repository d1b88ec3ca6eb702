// server/cmd/api/main.go
package main

import (
	"context"

	"chefhub-kw-api-server/config"
	"chefhub-kw-api-server/internal/api/routes"
	"chefhub-kw-api-server/internal/cache"
	"chefhub-kw-api-server/internal/database"
	"chefhub-kw-api-server/internal/notifier"
	"chefhub-kw-api-server/internal/s3"
	"chefhub-kw-api-server/internal/socket"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	// .env chỉ dùng cho môi trường dev; thiếu file không phải là lỗi.
	_ = godotenv.Load()

	logrus.SetFormatter(&logrus.JSONFormatter{})

	// 1. Load configuration
	cfg, err := config.LoadConfig("./config")
	if err != nil {
		logrus.WithError(err).Fatal("Could not load config")
	}

	// 2. Kết nối MongoDB và chuẩn bị index
	client, db, err := database.Connect(cfg.Mongo)
	if err != nil {
		logrus.WithError(err).Fatal("Could not connect to MongoDB")
	}
	defer client.Disconnect(context.Background())

	if err := database.EnsureIndexes(db); err != nil {
		logrus.WithError(err).Fatal("Could not create MongoDB indexes")
	}

	// 3. Seed tài khoản admin mặc định
	if cfg.Admin.Email != "" && cfg.Admin.Password != "" {
		if err := database.SeedAdmin(db, cfg.Admin.Email, cfg.Admin.Password); err != nil {
			logrus.WithError(err).Fatal("Could not seed admin account")
		}
	}

	// 4. Khởi tạo các thành phần hạ tầng
	s3Uploader, err := s3.NewUploader(cfg.S3)
	if err != nil {
		logrus.WithError(err).Fatal("Could not initialize S3 uploader")
	}

	wsHub := socket.NewHub()
	ratings := cache.NewRatingsCache(cfg.Redis)
	ntf := notifier.New(db, wsHub)
	emailClient := notifier.NewEmailClient(cfg.Email)
	whatsAppClient := notifier.NewWhatsAppClient(cfg.WhatsApp)

	// 5. Chạy outbox worker nền cho email/WhatsApp
	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	outboxWorker := notifier.NewOutboxWorker(db, emailClient, whatsAppClient, cfg.Notify.OutboxInterval, cfg.Notify.OutboxBatch)
	go outboxWorker.Start(workerCtx)

	// 6. Truyền tất cả các thành phần cần thiết vào router
	router := routes.SetupRouter(cfg, db, s3Uploader, wsHub, ratings, ntf, emailClient, whatsAppClient)

	// 7. Start server
	logrus.WithField("port", cfg.Server.Port).Info("Starting API server")
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		logrus.WithError(err).Fatal("Failed to run server")
	}
}
