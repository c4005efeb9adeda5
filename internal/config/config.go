package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	AppPort    string
	AppEnv     string
	JWTSecret  string

	// EmailDomain is the institutional domain suffix a registration
	// email must carry, without the leading "@".
	EmailDomain string

	// OTPDevBypass accepts the fixed development code during order
	// completion. Forced off when AppEnv is "production".
	OTPDevBypass bool
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:       os.Getenv("DB_HOST"),
		DBUser:       os.Getenv("DB_USER"),
		DBPassword:   os.Getenv("DB_PASSWORD"),
		DBName:       os.Getenv("DB_NAME"),
		DBPort:       os.Getenv("DB_PORT"),
		AppPort:      os.Getenv("APP_PORT"),
		AppEnv:       os.Getenv("APP_ENV"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		EmailDomain:  os.Getenv("EMAIL_DOMAIN"),
		OTPDevBypass: os.Getenv("OTP_DEV_BYPASS") == "true",
	}

	if cfg.EmailDomain == "" {
		cfg.EmailDomain = "iiit.ac.in"
	}
	if cfg.AppPort == "" {
		cfg.AppPort = "5000"
	}

	if cfg.AppEnv == "production" {
		cfg.OTPDevBypass = false
	}

	if cfg.DBHost == "" {
		log.Fatal("Environment variables not loaded properly")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	return cfg
}
