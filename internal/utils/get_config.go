package utils

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const defaultTimezone = "Asia/Taipei"

type Config struct {
	// Application
	AppPort     string `yaml:"APP_PORT"`
	AppTimezone string `yaml:"APP_TIMEZONE"`
	LogLevel    string `yaml:"LOG_LEVEL"`

	// Database configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`

	// Mailing configuration
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`

	// AWS S3 configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`
}

var config Config

// LoadConfig reads config.yaml, then lets .env and the process environment
// override individual keys.
func LoadConfig() {
	file, err := os.ReadFile("config.yaml")
	if err != nil {
		log.Printf("Error reading YAML file: %s\n", err)
	} else if err := yaml.Unmarshal(file, &config); err != nil {
		log.Printf("Error parsing YAML file: %s\n", err)
	}

	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, using system env")
	}

	overrides := map[string]*string{
		"APP_PORT":           &config.AppPort,
		"APP_TIMEZONE":       &config.AppTimezone,
		"LOG_LEVEL":          &config.LogLevel,
		"DB_USER":            &config.DBUser,
		"DB_NAME":            &config.DBName,
		"DB_PASSWORD":        &config.DBPassword,
		"DB_PORT":            &config.DBPort,
		"DB_HOST":            &config.DBHost,
		"SMTP_HOST":          &config.SMTPHost,
		"SMTP_PORT":          &config.SMTPPort,
		"SMTP_SENDER_NAME":   &config.SMTPSenderName,
		"SMTP_AUTH_EMAIL":    &config.SMTPAuthEmail,
		"SMTP_AUTH_PASSWORD": &config.SMTPAuthPassword,
		"AWS_S3_BUCKET":      &config.AWSS3Bucket,
		"AWS_S3_REGION":      &config.AWSS3Region,
		"AWS_ACCESS_KEY":     &config.AWSAccessKey,
		"AWS_SECRET_KEY":     &config.AWSSecretKey,
	}
	for key, field := range overrides {
		if val, ok := os.LookupEnv(key); ok {
			*field = val
		}
	}

	if config.AppPort == "" {
		config.AppPort = "3000"
	}
	if config.AppTimezone == "" {
		config.AppTimezone = defaultTimezone
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
}

func GetConfig(key string) string {
	switch key {
	case "APP_PORT":
		return config.AppPort
	case "APP_TIMEZONE":
		return config.AppTimezone
	case "LOG_LEVEL":
		return config.LogLevel
	case "DB_USER":
		return config.DBUser
	case "DB_NAME":
		return config.DBName
	case "DB_PASSWORD":
		return config.DBPassword
	case "DB_PORT":
		return config.DBPort
	case "DB_HOST":
		return config.DBHost
	case "SMTP_HOST":
		return config.SMTPHost
	case "SMTP_PORT":
		return config.SMTPPort
	case "SMTP_SENDER_NAME":
		return config.SMTPSenderName
	case "SMTP_AUTH_EMAIL":
		return config.SMTPAuthEmail
	case "SMTP_AUTH_PASSWORD":
		return config.SMTPAuthPassword
	case "AWS_S3_BUCKET":
		return config.AWSS3Bucket
	case "AWS_S3_REGION":
		return config.AWSS3Region
	case "AWS_ACCESS_KEY":
		return config.AWSAccessKey
	case "AWS_SECRET_KEY":
		return config.AWSSecretKey
	default:
		return ""
	}
}

// Location returns the diary's time zone. Day boundaries and entry dates
// are computed in it.
func Location() *time.Location {
	name := config.AppTimezone
	if name == "" {
		name = defaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("Unknown timezone %q, falling back to UTC+8\n", name)
		return time.FixedZone(defaultTimezone, 8*60*60)
	}
	return loc
}
