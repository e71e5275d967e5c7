package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// JWT / access tokens
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Refresh tokens
	RefreshTokenExpiryDuration time.Duration

	// Password hashing and reset
	PasswordHashIterations int
	PasswordResetPepper    string
	PasswordResetOtpExpiry time.Duration

	// Transactional mail provider (template REST API)
	MailAPIURL               string
	MailAPIToken             string
	MailFromAddress          string
	MailFromName             string
	MailWelcomeTemplate      string
	MailVerificationTemplate string

	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("JWT_EXPIRY_DURATION", "15m")
	viper.SetDefault("JWT_ISSUER", "base-backend")
	viper.SetDefault("REFRESH_TOKEN_EXPIRY_DURATION", "168h")
	viper.SetDefault("PASSWORD_HASH_ITERATIONS", 600000)
	viper.SetDefault("PASSWORD_RESET_PEPPER", "")
	viper.SetDefault("PASSWORD_RESET_OTP_EXPIRY", "30m")
	viper.SetDefault("MAIL_API_URL", "")
	viper.SetDefault("MAIL_API_TOKEN", "")
	viper.SetDefault("MAIL_FROM_ADDRESS", "noreply@example.com")
	viper.SetDefault("MAIL_FROM_NAME", "Base Backend")
	viper.SetDefault("MAIL_WELCOME_TEMPLATE", "")
	viper.SetDefault("MAIL_VERIFICATION_TEMPLATE", "")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = 15 * time.Minute
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration)
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	refreshExpiryStr := viper.GetString("REFRESH_TOKEN_EXPIRY_DURATION")
	refreshExpiry, err := time.ParseDuration(refreshExpiryStr)
	if err != nil {
		refreshExpiry = 7 * 24 * time.Hour
		log.Printf("Warning: Invalid value for REFRESH_TOKEN_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", refreshExpiryStr, refreshExpiry)
	}
	cfg.RefreshTokenExpiryDuration = refreshExpiry

	cfg.PasswordHashIterations = viper.GetInt("PASSWORD_HASH_ITERATIONS")
	if cfg.PasswordHashIterations <= 0 {
		cfg.PasswordHashIterations = 600000
		log.Printf("Warning: Invalid PASSWORD_HASH_ITERATIONS. Defaulting to %d.\n", cfg.PasswordHashIterations)
	}

	cfg.PasswordResetPepper = viper.GetString("PASSWORD_RESET_PEPPER")
	if cfg.PasswordResetPepper == "" {
		log.Println("Warning: PASSWORD_RESET_PEPPER not set. OTP hashing will fall back to JWT_SECRET.")
	}

	otpExpiryStr := viper.GetString("PASSWORD_RESET_OTP_EXPIRY")
	otpExpiry, err := time.ParseDuration(otpExpiryStr)
	if err != nil {
		otpExpiry = 30 * time.Minute
		log.Printf("Warning: Invalid value for PASSWORD_RESET_OTP_EXPIRY ('%s'). Defaulting to %s.\n", otpExpiryStr, otpExpiry)
	}
	cfg.PasswordResetOtpExpiry = otpExpiry

	cfg.MailAPIURL = viper.GetString("MAIL_API_URL")
	cfg.MailAPIToken = viper.GetString("MAIL_API_TOKEN")
	cfg.MailFromAddress = viper.GetString("MAIL_FROM_ADDRESS")
	cfg.MailFromName = viper.GetString("MAIL_FROM_NAME")
	cfg.MailWelcomeTemplate = viper.GetString("MAIL_WELCOME_TEMPLATE")
	cfg.MailVerificationTemplate = viper.GetString("MAIL_VERIFICATION_TEMPLATE")
	if cfg.MailAPIURL == "" || cfg.MailAPIToken == "" {
		log.Println("Warning: mail provider not fully configured. Emails will be logged, not sent.")
	}

	cfg.CORSAllowedOrigins = viper.GetStringSlice("CORS_ALLOWED_ORIGINS")

	return cfg, nil
}
