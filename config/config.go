// Package config provides runtime configuration values for the service.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
)

// Store drivers accepted in STORE_DRIVER.
const (
	DriverMemory   = "memory"
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// Config holds every knob the service reads at startup. It is built once in
// main and handed to the components that need it.
type Config struct {
	Port            string
	SecretKey       string
	TokenTTL        time.Duration
	ShutdownTimeout time.Duration
	LogLevel        string
	CORSOrigins     []string

	StoreDriver   string
	MongoURI      string
	MongoDatabase string
	DatabaseURL   string
	MySQL         MySQLConfig

	CloudinaryURL    string
	CloudinaryFolder string
	UploadDir        string
	PublicBaseURL    string
	MaxUploadFiles   int
	MaxUploadBytes   int64
}

// MySQLConfig mirrors the MYSQL_* variables.
type MySQLConfig struct {
	User     string
	Password string
	Host     string
	Database string
}

// DSN builds a go-sql-driver DSN with time parsing enabled.
func (m MySQLConfig) DSN() string {
	c := mysql.NewConfig()
	c.User = m.User
	c.Passwd = m.Password
	c.Net = "tcp"
	c.Addr = m.Host
	c.DBName = m.Database
	c.ParseTime = true
	c.Loc = time.Local
	return c.FormatDSN()
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoienv(key string, def int) int {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func durenvs(key string, defSec int) time.Duration {
	return time.Duration(atoienv(key, defSec)) * time.Second
}

func listenv(key, def string) []string {
	var out []string
	for _, p := range strings.Split(getenv(key, def), ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Load reads an optional .env file and then collects configuration from the
// environment with defaults. Variables already set win over the file.
func Load() Config {
	_ = godotenv.Load()
	return Config{
		Port:            getenv("PORT", "8080"),
		SecretKey:       getenv("SECRET_KEY", ""),
		TokenTTL:        time.Duration(atoienv("TOKEN_TTL_HOURS", 24)) * time.Hour,
		ShutdownTimeout: durenvs("SHUTDOWN_TIMEOUT", 15),
		LogLevel:        getenv("LOG_LEVEL", "info"),
		CORSOrigins:     listenv("CORS_ORIGINS", "*"),

		StoreDriver:   strings.ToLower(getenv("STORE_DRIVER", DriverMemory)),
		MongoURI:      getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getenv("MONGO_DATABASE", "eri"),
		DatabaseURL:   getenv("DATABASE_URL", ""),
		MySQL: MySQLConfig{
			User:     getenv("MYSQL_USER", "user"),
			Password: getenv("MYSQL_PWD", "password"),
			Host:     getenv("MYSQL_HOST", "127.0.0.1:3306"),
			Database: getenv("MYSQL_DATABASE", "eri"),
		},

		CloudinaryURL:    getenv("CLOUDINARY_URL", ""),
		CloudinaryFolder: getenv("CLOUDINARY_FOLDER", "eri-items"),
		UploadDir:        getenv("UPLOAD_DIR", "uploads"),
		PublicBaseURL:    strings.TrimRight(getenv("PUBLIC_BASE_URL", "http://localhost:8080/uploads"), "/"),
		MaxUploadFiles:   atoienv("MAX_UPLOAD_FILES", 5),
		MaxUploadBytes:   int64(atoienv("MAX_UPLOAD_MB", 20)) << 20,
	}
}

// Validate reports settings the service cannot start without.
func (c Config) Validate() error {
	if c.SecretKey == "" {
		return errors.New("SECRET_KEY is required")
	}
	if c.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL_HOURS must be positive")
	}
	if c.MaxUploadFiles < 1 {
		return errors.New("MAX_UPLOAD_FILES must be at least 1")
	}
	switch c.StoreDriver {
	case DriverMemory, DriverMongo, DriverMySQL:
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	return nil
}
