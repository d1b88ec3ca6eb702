// server/config/config.go
package config

import (
	"time"

	"github.com/spf13/viper"
)

// --- Các struct con, phản ánh cấu trúc của YAML ---

type ServerConfig struct {
	Port    string `mapstructure:"port"`
	BaseURL string `mapstructure:"baseURL"` // Dùng để tạo link chia sẻ món ăn (QR, deep link)
}

type MongoConfig struct {
	URI    string `mapstructure:"uri"`
	DBName string `mapstructure:"dbName"`
}

type JWTConfig struct {
	Secret     string `mapstructure:"secret"`
	Expiration string `mapstructure:"expiration"`
}

type S3Config struct {
	Bucket           string `mapstructure:"bucket"`
	Region           string `mapstructure:"region"`
	AccessKeyID      string `mapstructure:"accessKeyID"`
	SecretAccessKey  string `mapstructure:"secretAccessKey"`
	CloudFrontDomain string `mapstructure:"cloudFrontDomain"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"` // Để trống thì tắt cache rating
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// EmailConfig cấu hình provider gửi email giao dịch (HTTP API).
type EmailConfig struct {
	ProviderURL string `mapstructure:"providerURL"`
	APIKey      string `mapstructure:"apiKey"`
	FromName    string `mapstructure:"fromName"`
	FromAddress string `mapstructure:"fromAddress"`
}

// WhatsAppConfig cấu hình provider gửi tin WhatsApp (HTTP API).
type WhatsAppConfig struct {
	ProviderURL string `mapstructure:"providerURL"`
	APIKey      string `mapstructure:"apiKey"`
}

// NotifyConfig cấu hình outbox worker và token bảo vệ các endpoint dispatch.
type NotifyConfig struct {
	DispatchToken  string        `mapstructure:"dispatchToken"` // Để trống thì không yêu cầu token (môi trường dev)
	OutboxInterval time.Duration `mapstructure:"outboxInterval"`
	OutboxBatch    int           `mapstructure:"outboxBatch"`
}

// AdminConfig tài khoản admin mặc định được seed lúc khởi động.
type AdminConfig struct {
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
}

// MarketConfig các tham số nghiệp vụ của marketplace.
type MarketConfig struct {
	CommissionRate float64 `mapstructure:"commissionRate"` // Ví dụ: 0.15 = 15% hoa hồng trên subtotal
}

// --- Struct Config chính, bao gồm tất cả các struct con ---

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Mongo    MongoConfig    `mapstructure:"mongo"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	S3       S3Config       `mapstructure:"s3"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Email    EmailConfig    `mapstructure:"email"`
	WhatsApp WhatsAppConfig `mapstructure:"whatsapp"`
	Notify   NotifyConfig   `mapstructure:"notify"`
	Admin    AdminConfig    `mapstructure:"admin"`
	Market   MarketConfig   `mapstructure:"market"`
}

// LoadConfig đọc cấu hình từ file và ghi đè bằng các biến môi trường.
func LoadConfig(path string) (config Config, err error) {
	// Thiết lập đường dẫn và tên file config
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Bật tính năng tự động đọc biến môi trường
	viper.AutomaticEnv()

	viper.BindEnv("server.port", "SERVER_PORT")
	viper.BindEnv("server.baseURL", "SERVER_BASE_URL")
	viper.BindEnv("mongo.uri", "MONGO_URI")
	viper.BindEnv("mongo.dbName", "MONGO_DBNAME")
	viper.BindEnv("jwt.secret", "JWT_SECRET")
	viper.BindEnv("jwt.expiration", "JWT_EXPIRATION")
	viper.BindEnv("s3.bucket", "S3_BUCKET")
	viper.BindEnv("s3.region", "S3_REGION")
	viper.BindEnv("s3.accessKeyID", "S3_ACCESS_KEY_ID")
	viper.BindEnv("s3.secretAccessKey", "S3_SECRET_ACCESS_KEY")
	viper.BindEnv("s3.cloudFrontDomain", "S3_CLOUDFRONT_DOMAIN")
	viper.BindEnv("redis.addr", "REDIS_ADDR")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")
	viper.BindEnv("email.providerURL", "EMAIL_PROVIDER_URL")
	viper.BindEnv("email.apiKey", "EMAIL_API_KEY")
	viper.BindEnv("email.fromName", "EMAIL_FROM_NAME")
	viper.BindEnv("email.fromAddress", "EMAIL_FROM_ADDRESS")
	viper.BindEnv("whatsapp.providerURL", "WHATSAPP_PROVIDER_URL")
	viper.BindEnv("whatsapp.apiKey", "WHATSAPP_API_KEY")
	viper.BindEnv("notify.dispatchToken", "NOTIFY_DISPATCH_TOKEN")
	viper.BindEnv("admin.email", "ADMIN_EMAIL")
	viper.BindEnv("admin.password", "ADMIN_PASSWORD")
	viper.BindEnv("market.commissionRate", "MARKET_COMMISSION_RATE")

	// Giá trị mặc định cho các tham số không bắt buộc
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("notify.outboxInterval", 30*time.Second)
	viper.SetDefault("notify.outboxBatch", 50)
	viper.SetDefault("market.commissionRate", 0.15)

	// Đọc file config.yaml
	// Nếu file không tồn tại, Viper sẽ chỉ sử dụng các biến môi trường.
	err = viper.ReadInConfig()
	if err != nil {
		// Chỉ trả về lỗi nếu đó không phải là lỗi "không tìm thấy file"
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
	}

	// Unmarshal toàn bộ cấu hình đã được kết hợp (từ file và env) vào struct Config
	err = viper.Unmarshal(&config)
	if err != nil {
		return
	}

	return
}
