package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

const envPrefix = "NEXABOARD_"

// dotenvFiles are loaded before the environment is read. godotenv never
// overrides a variable that is already set, so the real environment wins.
var dotenvFiles = []string{".env"}

// parseEnv overlays cfg with NEXABOARD_* variables. A malformed duration
// panics, matching the JSON and flag loaders.
func parseEnv(cfg *Config) {
	for _, f := range dotenvFiles {
		if _, err := os.Stat(f); err == nil {
			if err := godotenv.Load(f); err != nil {
				panic(err)
			}
		}
	}

	setString(&cfg.APIBaseURL, "API_URL")
	setString(&cfg.DataFile, "DATA_FILE")
	setDuration(&cfg.RequestTimeout, "REQUEST_TIMEOUT")
	setDuration(&cfg.RememberFor, "REMEMBER_FOR")
	setString(&cfg.LogFile, "LOG_FILE")
	setString(&cfg.LogLevel, "LOG_LEVEL")
	setString(&cfg.S3Endpoint, "S3_ENDPOINT")
	setString(&cfg.S3Region, "S3_REGION")
	setString(&cfg.S3AccessKey, "S3_ACCESS_KEY")
	setString(&cfg.S3SecretKey, "S3_SECRET_KEY")
}

func setString(dst *string, name string) {
	if v, ok := os.LookupEnv(envPrefix + name); ok {
		*dst = v
	}
}

func setDuration(dst *time.Duration, name string) {
	v, ok := os.LookupEnv(envPrefix + name)
	if !ok || v == "" {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(err)
	}
	*dst = d
}
