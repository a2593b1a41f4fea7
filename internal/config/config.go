// Package config loads the scraper binary's configuration from environment
// variables, with optional .env loading for local runs. The library itself
// is configured through the fluent facade; this package only serves cmd and
// the internal service packages.
package config

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration parameters, read from SRF_* environment
// variables.
type Config struct {
	// Extraction
	InputPath         string `envconfig:"INPUT_PATH" default:"program.txt"`
	OutputDir         string `envconfig:"OUTPUT_DIR" default:"output"`
	FirstPage         int    `envconfig:"FIRST_PAGE"`
	IDOffset          int    `envconfig:"ID_OFFSET" default:"1"`
	SourceLabel       string `envconfig:"SOURCE_LABEL"`
	KeepEmptySessions bool   `envconfig:"KEEP_EMPTY_SESSIONS" default:"false"`

	// Serve
	HTTPPort string `envconfig:"HTTP_PORT" default:"8080"`
	// CronSchedule re-runs extraction on a schedule when the source
	// document is refreshed in place. Empty disables the scheduler.
	CronSchedule string `envconfig:"CRON_SCHEDULE"`

	// Publish (S3-compatible storage; endpoint URL allows non-AWS hosts)
	S3Key    string `envconfig:"S3_KEY"`
	S3Secret string `envconfig:"S3_SECRET"`
	S3URL    string `envconfig:"S3_URL"`
	S3Region string `envconfig:"S3_REGION" default:"us-east-1"`
	S3Bucket string `envconfig:"S3_BUCKET"`
	S3Prefix string `envconfig:"S3_PREFIX" default:"srf2025"`
}

// Load reads the configuration from the environment. A .env file in the
// working directory is loaded first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()
	var c Config
	err := envconfig.Process("srf", &c)
	return &c, err
}
