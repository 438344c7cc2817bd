package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort   string `mapstructure:"APP_PORT"`
	Env       string `mapstructure:"ENV"`
	JWTSecret string `mapstructure:"JWT_SECRET"`
	LogLevel  string `mapstructure:"LOG_LEVEL"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`
	RedisOTPDB     int    `mapstructure:"REDIS_OTP_DB"`
	RedisQueryDB   int    `mapstructure:"REDIS_QUERY_DB"`
	RedisTaskDB    int    `mapstructure:"REDIS_TASK_DB"`

	// Wizard session TTL in minutes.
	SessionTTLMinutes int `mapstructure:"SESSION_TTL_MINUTES"`

	// Upstream enquiry/email API.
	EnquiryAPIBaseURL string `mapstructure:"ENQUIRY_API_BASE_URL"`
	EnquiryAPIToken   string `mapstructure:"ENQUIRY_API_TOKEN"`

	// Checkout gateway.
	CheckoutKey      string `mapstructure:"CHECKOUT_KEY"`
	CheckoutCurrency string `mapstructure:"CHECKOUT_CURRENCY"`
	StripeKey        string `mapstructure:"STRIPE_KEY"`

	// Institution branding used in OTP and confirmation emails.
	InstitutionName string `mapstructure:"INSTITUTION_NAME"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 0)
	viper.SetDefault("REDIS_OTP_DB", 1)
	viper.SetDefault("REDIS_QUERY_DB", 2)
	viper.SetDefault("REDIS_TASK_DB", 3)
	viper.SetDefault("SESSION_TTL_MINUTES", 30)
	viper.SetDefault("ENQUIRY_API_BASE_URL", "http://localhost:9090")
	viper.SetDefault("CHECKOUT_CURRENCY", "INR")
	viper.SetDefault("INSTITUTION_NAME", "EduPath")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
