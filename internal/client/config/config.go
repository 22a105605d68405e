package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the NexaBoard client.
type Config struct {
	// APIBaseURL is prefixed to every REST path (/auth/login, /tasks, ...).
	APIBaseURL string
	// DataFile is the sqlite database holding the persisted session. Empty
	// keeps the session in memory only.
	DataFile string
	// RequestTimeout bounds every API call.
	RequestTimeout time.Duration
	// RememberFor is how long a remembered token stays valid locally.
	RememberFor time.Duration

	LogFile  string
	LogLevel string

	// S3 settings used by `export s3://bucket/key`. Empty values fall back
	// to the AWS SDK defaults (shared config, AWS_* variables).
	S3Endpoint  string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
}

// LoadDefaults populates c with defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:5000/api"
	c.DataFile = "nexaboard.db"
	c.RequestTimeout = 10 * time.Second
	c.RememberFor = 30 * 24 * time.Hour
	c.LogFile = "nexaboard.log"
	c.LogLevel = "info"
	c.S3Region = "us-east-1"
}

// LoadConfig builds a Config from defaults, environment, JSON and flags
// read from os.Args. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	return Load(os.Args[1:])
}

// Load is LoadConfig with explicit arguments.
func Load(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJSON(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
