package utils

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	// Server configuration
	HTTPAddr string `yaml:"HTTP_ADDR"`
	Timezone string `yaml:"TIMEZONE"`

	// Database configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`

	// JWT
	JWTSecret string `yaml:"JWT_SECRET"`

	// Bootstrap admin account
	AdminEmail    string `yaml:"ADMIN_EMAIL"`
	AdminPassword string `yaml:"ADMIN_PASSWORD"`

	// Ordering rules
	TaxRate         string `yaml:"TAX_RATE"`
	OrderCutoffHour string `yaml:"ORDER_CUTOFF_HOUR"`

	// Mailing configuration
	AppURL           string `yaml:"APP_URL"`
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`

	// Midtrans configuration
	ClientKey string `yaml:"CLIENT_KEY"`
	ServerKey string `yaml:"SERVER_KEY"`
	IsProd    bool   `yaml:"IsProd"`

	// AWS S3 configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`

	// Redis configuration
	RedisAddr     string `yaml:"REDIS_ADDR"`
	RedisPassword string `yaml:"REDIS_PASSWORD"`

	// Kafka configuration
	KafkaBrokers string `yaml:"KAFKA_BROKERS"`
	KafkaTopic   string `yaml:"KAFKA_TOPIC"`
}

var config Config

var defaults = map[string]string{
	"HTTP_ADDR":         ":8080",
	"TIMEZONE":          "Asia/Kolkata",
	"DB_PORT":           "5432",
	"TAX_RATE":          "0.10",
	"ORDER_CUTOFF_HOUR": "22",
	"KAFKA_TOPIC":       "hostel.orders",
}

// LoadConfig reads .env (when present) into the environment and then config.yaml.
// Environment variables always win over yaml values.
func LoadConfig() {
	LoadConfigFrom(".env", "config.yaml")
}

func LoadConfigFrom(envFile, yamlFile string) {
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		log.Printf("Error reading env file: %s\n", err)
	}

	file, err := os.ReadFile(yamlFile)
	if err != nil {
		log.Printf("Error reading YAML file: %s\n", err)
		return
	}

	config = Config{}
	err = yaml.Unmarshal(file, &config)
	if err != nil {
		log.Printf("Error parsing YAML file: %s\n", err)
		return
	}
}

func getBoolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func GetConfig(key string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	if v := fromFile(key); v != "" {
		return v
	}
	return defaults[key]
}

func GetConfigInt(key string, fallback int) int {
	v, err := strconv.Atoi(GetConfig(key))
	if err != nil {
		return fallback
	}
	return v
}

func fromFile(key string) string {
	switch key {
	case "HTTP_ADDR":
		return config.HTTPAddr
	case "TIMEZONE":
		return config.Timezone
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
	case "JWT_SECRET":
		return config.JWTSecret
	case "ADMIN_EMAIL":
		return config.AdminEmail
	case "ADMIN_PASSWORD":
		return config.AdminPassword
	case "TAX_RATE":
		return config.TaxRate
	case "ORDER_CUTOFF_HOUR":
		return config.OrderCutoffHour
	case "APP_URL":
		return config.AppURL
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
	case "CLIENT_KEY":
		return config.ClientKey
	case "SERVER_KEY":
		return config.ServerKey
	case "IsProd":
		return getBoolString(config.IsProd)
	case "AWS_S3_BUCKET":
		return config.AWSS3Bucket
	case "AWS_S3_REGION":
		return config.AWSS3Region
	case "AWS_ACCESS_KEY":
		return config.AWSAccessKey
	case "AWS_SECRET_KEY":
		return config.AWSSecretKey
	case "REDIS_ADDR":
		return config.RedisAddr
	case "REDIS_PASSWORD":
		return config.RedisPassword
	case "KAFKA_BROKERS":
		return config.KafkaBrokers
	case "KAFKA_TOPIC":
		return config.KafkaTopic
	default:
		return ""
	}
}

func IsProd() bool {
	v, _ := strconv.ParseBool(GetConfig("IsProd"))
	return v
}
