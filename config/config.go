package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	MongoURI            string        `envconfig:"MONGODB_URI" required:"true"`
	DBName              string        `envconfig:"DB_NAME" default:"virtuo"`
	FirebaseCredentials string        `envconfig:"FIREBASE_CREDENTIALS_PATH"`
	DigestTime          string        `envconfig:"DIGEST_TIME" default:"16:00"` // local wall-clock "HH:mm"
	PollInterval        time.Duration `envconfig:"POLL_INTERVAL" default:"1m"`
	AppURL              string        `envconfig:"APP_URL" default:"/"`
	Workers             int           `envconfig:"WORKERS" default:"8"`
	HTTPAddr            string        `envconfig:"HTTP_ADDR" default:":8080"` // healthz and manual tick trigger
	LogLevel            string        `envconfig:"LOG_LEVEL" default:"info"`  // debug|info|warn|error
}

// Load reads environment variables into Config.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
