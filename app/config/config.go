package config

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

type Config struct {
	DB          *sql.DB
	Port        string
	FrontendURL string
	Env         string
}

var AppConfig *Config

// Getenv returns the value of an environment variable or a fallback.
func Getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// IsProduction reports whether the app runs with APP_ENV=production.
func IsProduction() bool {
	return AppConfig != nil && AppConfig.Env == "production"
}

func InitDB() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		host := Getenv("DB_HOST", "localhost")
		port := Getenv("DB_PORT", "5432")
		user := Getenv("DB_USER", "postgres")
		password := os.Getenv("DB_PASSWORD")
		dbname := Getenv("DB_NAME", "vagues")
		sslmode := Getenv("DB_SSLMODE", "disable")

		dsn = fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=%s connect_timeout=10",
			host, port, user, dbname, sslmode)
		if password != "" {
			dsn += " password=" + password
		}
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatal("Failed to open database connection:", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err = db.Ping(); err != nil {
		log.Fatal("Cannot establish database connection: ", err)
	}

	AppConfig = &Config{
		DB:          db,
		Port:        Getenv("PORT", "5000"),
		FrontendURL: Getenv("FRONTEND_URL", "http://localhost:3000"),
		Env:         Getenv("APP_ENV", "development"),
	}
	log.Println("Database connected successfully")
}

func GetDB() *sql.DB {
	return AppConfig.DB
}
