package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Server struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	CORSEnabled  bool
}

type DB struct {
	DbHOST       string
	DbPORT       string
	DbUSER       string
	DbPASSWORD   string
	DbNAME       string
	DbSSLMODE    string
	MaxOpenConns int
	MaxIdleConns int
}

type MinIO struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	BucketName string
	UseSSL     bool
	Region     string
}

// Security holds token secrets and lifetimes. ExpiresIn and RefreshIn are
// kept as durations; the environment carries them in seconds.
type Security struct {
	AccessSecret      string
	RefreshSecret     string
	ExpiresIn         time.Duration
	RefreshIn         time.Duration
	BcryptSaltOrRound string
}

type Config struct {
	Server        Server
	DB            DB
	MinIO         MinIO
	Security      Security
	MaxUploadSize int64
	LogLevel      string
	MetricsPath   string
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolValue, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return boolValue
		}
	}
	return fallback
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return fallback
}

func getEnvSeconds(key string, fallback int) time.Duration {
	return time.Duration(getEnvAsInt(key, fallback)) * time.Second
}

func parseMaxUploadSize(value string) int64 {
	size, err := strconv.ParseInt(value, 10, 64)
	if err != nil || size <= 0 {
		return 10 * 1024 * 1024
	}
	return size
}

func LoadServer() Server {
	return Server{
		Port:         getEnvAsInt("SERVER_PORT", 8080),
		ReadTimeout:  getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second),
		WriteTimeout: getEnvDuration("SERVER_WRITE_TIMEOUT", 0),
		IdleTimeout:  getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
		CORSEnabled:  getEnvBool("CORS_ENABLED", true),
	}
}

func LoadDB() DB {
	return DB{
		DbHOST:       getEnv("DB_HOST", "localhost"),
		DbPORT:       getEnv("DB_PORT", "5432"),
		DbUSER:       getEnv("DB_USER", "postgres"),
		DbPASSWORD:   getEnv("DB_PASSWORD", "password"),
		DbNAME:       getEnv("DB_NAME", "blog"),
		DbSSLMODE:    getEnv("DB_SSLMODE", "disable"),
		MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
	}
}

func LoadMinIO() MinIO {
	return MinIO{
		Endpoint:   getEnv("MINIO_ENDPOINT", "localhost:9000"),
		AccessKey:  getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		SecretKey:  getEnv("MINIO_SECRET_KEY", "minioadmin"),
		BucketName: getEnv("MINIO_BUCKET_NAME", "images"),
		UseSSL:     getEnvBool("MINIO_USE_SSL", false),
		Region:     getEnv("MINIO_REGION", "us-east-1"),
	}
}

func LoadSecurity() Security {
	return Security{
		AccessSecret:      getEnv("JWT_ACCESS_SECRET", ""),
		RefreshSecret:     getEnv("JWT_REFRESH_SECRET", ""),
		ExpiresIn:         getEnvSeconds("JWT_EXPIRES_IN", 120),
		RefreshIn:         getEnvSeconds("JWT_REFRESH_IN", 604800),
		BcryptSaltOrRound: getEnv("BCRYPT_SALT_OR_ROUND", "10"),
	}
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	return &Config{
		Server:        LoadServer(),
		DB:            LoadDB(),
		MinIO:         LoadMinIO(),
		Security:      LoadSecurity(),
		MaxUploadSize: parseMaxUploadSize(getEnv("MAX_UPLOAD_SIZE", "10485760")),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		MetricsPath:   getEnv("METRICS_PATH", "/metrics"),
	}
}

// Validate reports configuration that would let the server start in an
// insecure state.
func (c *Config) Validate() error {
	if c.Security.AccessSecret == "" {
		return errors.New("JWT_ACCESS_SECRET is not set")
	}
	if c.Security.RefreshSecret == "" {
		return errors.New("JWT_REFRESH_SECRET is not set")
	}
	if c.Security.AccessSecret == c.Security.RefreshSecret {
		return errors.New("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET must differ")
	}
	if c.Security.ExpiresIn <= 0 || c.Security.RefreshIn <= 0 {
		return errors.New("token lifetimes must be positive")
	}
	return nil
}
