package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/nexaboard/internal/flagx"
	"github.com/dmitrijs2005/nexaboard/internal/timex"
)

// JSONConfig is the on-disk DTO. Zero values leave the current setting
// untouched so a file may override only what it names.
type JSONConfig struct {
	APIBaseURL     string         `json:"api_base_url"`
	DataFile       string         `json:"data_file"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	RememberFor    timex.Duration `json:"remember_for"`
	LogFile        string         `json:"log_file"`
	LogLevel       string         `json:"log_level"`
	S3Endpoint     string         `json:"s3_endpoint"`
	S3Region       string         `json:"s3_region"`
}

// parseJSON overlays cfg with the file named by -c / -config, if any.
// Read or decode errors panic.
func parseJSON(cfg *Config, args []string) {
	path := flagx.ConfigPath(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JSONConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	overlay(&cfg.APIBaseURL, jc.APIBaseURL)
	overlay(&cfg.DataFile, jc.DataFile)
	overlay(&cfg.LogFile, jc.LogFile)
	overlay(&cfg.LogLevel, jc.LogLevel)
	overlay(&cfg.S3Endpoint, jc.S3Endpoint)
	overlay(&cfg.S3Region, jc.S3Region)
	overlayDuration(&cfg.RequestTimeout, jc.RequestTimeout)
	overlayDuration(&cfg.RememberFor, jc.RememberFor)
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func overlayDuration(dst *time.Duration, v timex.Duration) {
	if v.Duration != 0 {
		*dst = v.Duration
	}
}
