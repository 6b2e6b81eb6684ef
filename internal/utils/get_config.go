package utils

import (
	"os"

	"gopkg.in/yaml.v2"
)

type Config struct {
	// Server configuration
	AppPort      string `yaml:"APP_PORT"`
	CORSOrigins  string `yaml:"CORS_ORIGINS"`
	RateLimitMax string `yaml:"RATE_LIMIT_MAX"`
	AccessLog    string `yaml:"ACCESS_LOG"`

	// Database configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`
	DBSSLMode  string `yaml:"DB_SSLMODE"`

	// JWT
	JWTSecret string `yaml:"JWT_SECRET"`

	// AWS S3 configuration
	AWSS3Bucket   string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region   string `yaml:"AWS_S3_REGION"`
	AWSS3Endpoint string `yaml:"AWS_S3_ENDPOINT"`
	AWSAccessKey  string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey  string `yaml:"AWS_SECRET_KEY"`

	// Logging
	LogLevel  string `yaml:"LOG_LEVEL"`
	LogFormat string `yaml:"LOG_FORMAT"`
}

var config Config

// LoadConfig reads config.yaml, or the file named by CONFIG_PATH. A missing
// file is not an error: every key can also come from the environment.
func LoadConfig() error {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config.yaml"
	}

	file, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	return yaml.Unmarshal(file, &config)
}

func GetConfig(key string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}

	switch key {
	case "APP_PORT":
		return withDefault(config.AppPort, "8080")
	case "CORS_ORIGINS":
		return withDefault(config.CORSOrigins, "*")
	case "RATE_LIMIT_MAX":
		return withDefault(config.RateLimitMax, "20")
	case "ACCESS_LOG":
		return withDefault(config.AccessLog, "./logs/app.log")
	case "DB_USER":
		return config.DBUser
	case "DB_NAME":
		return config.DBName
	case "DB_PASSWORD":
		return config.DBPassword
	case "DB_PORT":
		return withDefault(config.DBPort, "5432")
	case "DB_HOST":
		return withDefault(config.DBHost, "localhost")
	case "DB_SSLMODE":
		return withDefault(config.DBSSLMode, "disable")
	case "JWT_SECRET":
		return config.JWTSecret
	case "AWS_S3_BUCKET":
		return config.AWSS3Bucket
	case "AWS_S3_REGION":
		return config.AWSS3Region
	case "AWS_S3_ENDPOINT":
		return config.AWSS3Endpoint
	case "AWS_ACCESS_KEY":
		return config.AWSAccessKey
	case "AWS_SECRET_KEY":
		return config.AWSSecretKey
	case "LOG_LEVEL":
		return withDefault(config.LogLevel, "info")
	case "LOG_FORMAT":
		return withDefault(config.LogFormat, "json")
	default:
		return ""
	}
}

func withDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
