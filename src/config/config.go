package config

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config ค่าตั้งค่าทั้งหมดของแอป
type Config struct {
	App    AppConfig
	Mongo  MongoConfig
	Redis  RedisConfig
	Upload UploadConfig
	Log    LogConfig
}

type AppConfig struct {
	Port           string
	BaseURL        string
	Env            string
	AllowedOrigins string
	RateLimitMax   int
	BodyLimit      int
	SeedSampleData bool
}

type MongoConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// RedisConfig is optional. Empty Addr disables cache, distributed locks and background jobs.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type UploadConfig struct {
	Dir          string
	MaxBytes     int64
	MaxDimension int
}

type LogConfig struct {
	Level string
}

// Enabled reports whether a Redis address was configured.
func (r RedisConfig) Enabled() bool { return r.Addr != "" }

// IsProduction reports whether APP_ENV is production.
func (a AppConfig) IsProduction() bool {
	return strings.EqualFold(a.Env, "production") || strings.EqualFold(a.Env, "prod")
}

var ErrMissingMongoURI = errors.New("MONGODB_URI environment variable not set")

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "9000")
	v.SetDefault("base_url", "http://localhost:9000")
	v.SetDefault("app_env", "development")
	v.SetDefault("allowed_origins", "*")
	v.SetDefault("rate_limit_max", 100)
	v.SetDefault("body_limit", 8*1024*1024)
	v.SetDefault("seed_sample_data", false)

	v.SetDefault("mongo_database", "student_tracker")
	v.SetDefault("mongo_timeout", 10*time.Second)

	v.SetDefault("redis_db", 0)

	v.SetDefault("upload_dir", "public/uploads")
	v.SetDefault("upload_max_bytes", 5*1024*1024)
	v.SetDefault("upload_max_dimension", 1024)

	v.SetDefault("log_level", "info")
}

// Load โหลดค่า config จาก .env และ environment variables
// ลำดับความสำคัญ: environment > .env > ค่า default
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Warning: No .env file found")
	}
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)
	// MONGODB_URI is the canonical name, MONGO_URI is accepted too.
	_ = v.BindEnv("mongo_uri", "MONGODB_URI", "MONGO_URI")
	_ = v.BindEnv("redis_uri", "REDIS_URI", "REDIS_ADDR")
	return v
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Port:           v.GetString("port"),
			BaseURL:        strings.TrimRight(v.GetString("base_url"), "/"),
			Env:            v.GetString("app_env"),
			AllowedOrigins: v.GetString("allowed_origins"),
			RateLimitMax:   v.GetInt("rate_limit_max"),
			BodyLimit:      v.GetInt("body_limit"),
			SeedSampleData: v.GetBool("seed_sample_data"),
		},
		Mongo: MongoConfig{
			URI:      v.GetString("mongo_uri"),
			Database: v.GetString("mongo_database"),
			Timeout:  v.GetDuration("mongo_timeout"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis_uri"),
			Password: v.GetString("redis_password"),
			DB:       v.GetInt("redis_db"),
		},
		Upload: UploadConfig{
			Dir:          v.GetString("upload_dir"),
			MaxBytes:     v.GetInt64("upload_max_bytes"),
			MaxDimension: v.GetInt("upload_max_dimension"),
		},
		Log: LogConfig{
			Level: v.GetString("log_level"),
		},
	}

	if cfg.Mongo.URI == "" {
		return nil, ErrMissingMongoURI
	}
	if int64(cfg.App.BodyLimit) < cfg.Upload.MaxBytes {
		// leave room for the multipart envelope around the largest accepted file
		cfg.App.BodyLimit = int(cfg.Upload.MaxBytes) + 1024*1024
	}
	return cfg, nil
}
