package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"hotel_manager/service"

	"github.com/joho/godotenv"
)

const DefaultTimezone = service.DefaultTimezone

// Config func to get env value
func Config(key string) string {
	// load .env file; a missing file falls back to the process environment
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		fmt.Print("Error loading .env file")
	}
	return os.Getenv(key)
}

type Settings struct {
	Port            string
	DBHost          string
	DBPort          uint64
	DBUser          string
	DBPassword      string
	DBName          string
	RedisAddr       string
	JWTSecret       string
	LogLevel        string
	LogFormat       string
	DefaultTimezone string
	StrictGuestName bool
	PortalBaseURL   string
	AllowOrigins    string
}

// UseDatabase reports whether a postgres host is configured; otherwise the in-memory store is used.
func (s Settings) UseDatabase() bool {
	return s.DBHost != ""
}

func (s Settings) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		s.DBHost, s.DBPort, s.DBUser, s.DBPassword, s.DBName)
}

func Load() (Settings, error) {
	s := Settings{
		Port:            withDefault(Config("PORT"), "8002"),
		DBHost:          Config("DB_HOST"),
		DBUser:          Config("DB_USER"),
		DBPassword:      Config("DB_PASSWORD"),
		DBName:          Config("DB_NAME"),
		RedisAddr:       Config("REDIS_ADDR"),
		JWTSecret:       Config("JWT_SECRET"),
		LogLevel:        withDefault(Config("LOG_LEVEL"), "info"),
		LogFormat:       withDefault(Config("LOG_FORMAT"), "text"),
		DefaultTimezone: withDefault(Config("DEFAULT_TIMEZONE"), DefaultTimezone),
		PortalBaseURL:   withDefault(Config("PORTAL_BASE_URL"), "http://localhost:5173"),
		AllowOrigins:    withDefault(Config("ALLOW_ORIGINS"), "http://localhost:5173"),
	}

	if strings.TrimSpace(s.JWTSecret) == "" {
		return s, errors.New("JWT_SECRET is required")
	}

	if s.DBHost != "" {
		port, err := strconv.ParseUint(withDefault(Config("DB_PORT"), "5432"), 10, 32)
		if err != nil {
			return s, fmt.Errorf("parse DB_PORT: %w", err)
		}
		s.DBPort = port
	}

	if raw := strings.TrimSpace(Config("STRICT_GUEST_NAME")); raw != "" {
		strict, err := strconv.ParseBool(raw)
		if err != nil {
			return s, fmt.Errorf("parse STRICT_GUEST_NAME: %w", err)
		}
		s.StrictGuestName = strict
	}

	return s, nil
}

func withDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
