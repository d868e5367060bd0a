package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"TPV"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	Log struct {
		Level  string `envconfig:"LOG_LEVEL" default:"info"`
		Format string `envconfig:"LOG_FORMAT" default:"text"`
	}

	Storage struct {
		Driver  string `envconfig:"STORAGE_DRIVER" default:"file"`
		Key     string `envconfig:"STORAGE_KEY" default:"ivanmarket_data"`
		FileDir string `envconfig:"STORAGE_FILE_DIR" default:"./data"`
	}

	SQLite struct {
		Path string `envconfig:"SQLITE_PATH" default:"./data/tpv.db"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"tpv"`
	}

	Redis struct {
		URL      string `envconfig:"REDIS_URL"`
		Addr     string `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"`
		Password string `envconfig:"REDIS_PASSWORD"`
		DB       int    `envconfig:"REDIS_DB" default:"0"`
	}

	S3 struct {
		Bucket    string `envconfig:"S3_BUCKET"`
		Region    string `envconfig:"S3_REGION" default:"us-east-1"`
		Endpoint  string `envconfig:"S3_ENDPOINT"`
		PathStyle bool   `envconfig:"S3_PATH_STYLE" default:"false"`
	}

	Shop struct {
		GeneralCustomerID string `envconfig:"GENERAL_CUSTOMER_ID" default:"c3"`
		LowStockThreshold int    `envconfig:"LOW_STOCK_THRESHOLD" default:"10"`
	}

	Auth struct {
		JWTSecret      string        `envconfig:"JWT_SECRET" default:"change-me"`
		JWTTTL         time.Duration `envconfig:"JWT_TTL" default:"12h"`
		AdminPassword  string        `envconfig:"ADMIN_PASSWORD" default:"Enzema2025"`
		SellerPassword string        `envconfig:"SELLER_PASSWORD" default:"Vendedor2025"`
		UserPassword   string        `envconfig:"USER_PASSWORD" default:"Usuario2025"`
	}

	Server struct {
		Timeout     time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		CORSOrigins []string      `envconfig:"CORS_ORIGINS" default:"*"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

// Logger builds the process logger from the LOG_* settings.
func (c *Config) Logger() *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	if strings.EqualFold(c.Log.Format, "json") {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}

	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
