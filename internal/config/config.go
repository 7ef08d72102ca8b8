package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config represents the application configuration structure
type Config struct {
	// Environment defines whether the application runs in 'dev' or 'prod' mode
	Environment string `default:"dev"`

	// WebListenAddress is the address the web console binds to
	WebListenAddress string `default:":8000" split_words:"true"`
	// WebBaseAddress is the public base address of the web console; an https address enables the Secure cookie flag
	WebBaseAddress string `default:"http://localhost:8000" split_words:"true"`
	// WebAllowedOrigin is the origin the JSON endpoints accept cross-origin requests from
	WebAllowedOrigin string `default:"*" split_words:"true"`

	// OperatorPasswordHash is the bcrypt hash of the operator password; the plaintext password is never configured
	OperatorPasswordHash string `required:"true" split_words:"true"`
	// SessionSigningSecret is the base64 representation of the symmetric session token signing key
	SessionSigningSecret string `required:"true" split_words:"true"`
	// SessionLifetime is the validity duration of issued session tokens
	SessionLifetime time.Duration `default:"1h" split_words:"true"`

	// TwilioAccountSID is the SID of the provider account messages are listed from and sent through
	TwilioAccountSID string `required:"true" envconfig:"TWILIO_ACCOUNT_SID"`
	// TwilioAPIKey and TwilioAPISecret authenticate this process against the provider (not the operator)
	TwilioAPIKey    string `required:"true" envconfig:"TWILIO_API_KEY"`
	TwilioAPISecret string `required:"true" envconfig:"TWILIO_API_SECRET"`
	// TwilioBaseURL is the base URL of the provider REST API
	TwilioBaseURL string `default:"https://api.twilio.com" envconfig:"TWILIO_BASE_URL"`
}

// LoadFromEnv loads a new configuration structure using environment variables and an optional .env file
func LoadFromEnv() (*Config, error) {
	// Load a .env file if it exists
	_ = godotenv.Overload()

	// Load a new configuration structure using environment variables
	config := new(Config)
	if err := envconfig.Process("sc", config); err != nil {
		return nil, err
	}
	return config, nil
}

// IsEnvProduction returns whether the application runs in 'prod' mode
func (config *Config) IsEnvProduction() bool {
	return strings.EqualFold(config.Environment, "prod")
}

// IsWebSecure returns whether the web console is served via HTTPS
func (config *Config) IsWebSecure() bool {
	return strings.HasPrefix(strings.ToLower(config.WebBaseAddress), "https://")
}
