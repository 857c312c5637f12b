// Package config handles configuration for the patentcert application,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings.
//
// Fields:
//   - StorePath: path of the JSON document file (used when DatabaseDSN is empty).
//   - DatabaseDSN: PostgreSQL DSN; when set, the document lives in Postgres.
//   - SecretKey: HMAC secret for signing session JWTs (HS256). Do not use test defaults in prod.
//   - SessionValidityDuration: session token lifetime.
//   - ExportDir: directory that exported certificate PDFs are written to.
//   - S3RootUser / S3RootPassword: credentials for the S3-compatible archive backend.
//   - S3Bucket / S3Region / S3BaseEndpoint: archive storage settings; an empty
//     endpoint disables archiving.
type Config struct {
	StorePath               string
	DatabaseDSN             string
	SecretKey               string
	SessionValidityDuration time.Duration
	ExportDir               string
	S3RootUser              string
	S3RootPassword          string
	S3Bucket                string
	S3Region                string
	S3BaseEndpoint          string
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.StorePath = "data/patentcert.json"
	c.DatabaseDSN = ""
	c.SecretKey = "secretKey"
	c.SessionValidityDuration = 8 * time.Hour
	c.ExportDir = "exports"
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = "certificates"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = ""
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
