package config

import (
	"fmt"
	"os"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Razorpay RazorpayConfig
	R2       R2Config
	Email    EmailConfig
	ImageGen ImageGenConfig
	Logger   LoggerConfig
}

type AppConfig struct {
	Port         string
	AllowOrigins string
}

type DatabaseConfig struct {
	URL string
}

type JWTConfig struct {
	Secret string
}

type RazorpayConfig struct {
	KeyID     string
	KeySecret string
	Currency  string
}

type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	PublicURL       string
}

type EmailConfig struct {
	APIKey      string
	FromAddress string
	FromName    string
}

type ImageGenConfig struct {
	APIKey  string
	BaseURL string
}

type LoggerConfig struct {
	Level string
}

// Load reads configuration from the environment. The signing secrets and the
// database URL have no safe defaults and are required.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Port:         getEnv("PORT", "4000"),
			AllowOrigins: getEnv("ALLOW_ORIGINS", "*"),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		JWT: JWTConfig{
			Secret: os.Getenv("JWT_SECRET"),
		},
		Razorpay: RazorpayConfig{
			KeyID:     os.Getenv("RAZORPAY_KEY_ID"),
			KeySecret: os.Getenv("RAZORPAY_KEY_SECRET"),
			Currency:  getEnv("CURRENCY", "INR"),
		},
		R2: R2Config{
			AccountID:       os.Getenv("R2_ACCOUNT_ID"),
			AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
			Bucket:          os.Getenv("R2_BUCKET"),
			PublicURL:       os.Getenv("R2_PUBLIC_URL"),
		},
		Email: EmailConfig{
			APIKey:      os.Getenv("RESEND_API_KEY"),
			FromAddress: getEnv("EMAIL_FROM_ADDRESS", "noreply@pixelforge.dev"),
			FromName:    getEnv("EMAIL_FROM_NAME", "PixelForge"),
		},
		ImageGen: ImageGenConfig{
			APIKey:  os.Getenv("CLIPDROP_API_KEY"),
			BaseURL: getEnv("CLIPDROP_BASE_URL", "https://clipdrop-api.co"),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	required := map[string]string{
		"DATABASE_URL":        cfg.Database.URL,
		"JWT_SECRET":          cfg.JWT.Secret,
		"RAZORPAY_KEY_ID":     cfg.Razorpay.KeyID,
		"RAZORPAY_KEY_SECRET": cfg.Razorpay.KeySecret,
	}
	for name, value := range required {
		if value == "" {
			return nil, fmt.Errorf("%s is not set", name)
		}
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
