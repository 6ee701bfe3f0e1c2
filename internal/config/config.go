package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds the movies API configuration loaded from environment variables.
type Config struct {
	Port          int    `envconfig:"PORT" default:"3000"`
	LogLevel      string `envconfig:"LOG_LEVEL" default:"info"`
	Dev           bool   `envconfig:"DEV" default:"true"`
	DatabaseURL   string `envconfig:"DATABASE_URL" required:"true"`
	AuthJWTSecret string `envconfig:"AUTH_JWT_SECRET" required:"true"`
	BcryptCost    int    `envconfig:"BCRYPT_COST" default:"12"`
	Version       string `envconfig:"VERSION" default:"dev"`
}

// GatewayConfig holds the auth gateway configuration. The gateway never talks
// to the stores directly; it only needs the upstream API location and the
// API key carrying its scope grant.
type GatewayConfig struct {
	Port                  int           `envconfig:"PORT" default:"8000"`
	LogLevel              string        `envconfig:"LOG_LEVEL" default:"info"`
	APIURL                string        `envconfig:"API_URL" required:"true"`
	APIKeyToken           string        `envconfig:"API_KEY_TOKEN" required:"true"`
	UpstreamTimeout       time.Duration `envconfig:"UPSTREAM_TIMEOUT" default:"10s"`
	TwitterConsumerKey    string        `envconfig:"TWITTER_CONSUMER_KEY" default:""`
	TwitterConsumerSecret string        `envconfig:"TWITTER_CONSUMER_SECRET" default:""`
	CallbackURL           string        `envconfig:"CALLBACK_URL" default:"/auth/provider/callback"`
}

// Load reads the movies API configuration from the environment. A local .env
// file is applied first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadGateway reads the gateway configuration from the environment.
func LoadGateway() (*GatewayConfig, error) {
	_ = godotenv.Load()

	var cfg GatewayConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
