package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/patentcert/internal/flagx"
	"github.com/dmitrijs2005/patentcert/internal/timex"
)

// JsonConfig is the DTO for JSON configuration files. Interval fields use
// timex.Duration, which accepts both string values such as "8h" and integer
// nanoseconds. After unmarshalling, values are copied into the runtime
// Config struct.
type JsonConfig struct {
	StorePath               string         `json:"store_path"`
	DatabaseDSN             string         `json:"database_dsn"`
	SecretKey               string         `json:"secret_key"`
	SessionValidityDuration timex.Duration `json:"session_validity_duration"`
	ExportDir               string         `json:"export_dir"`
	S3RootUser              string         `json:"s3_root_user"`
	S3RootPassword          string         `json:"s3_root_password"`
	S3Bucket                string         `json:"s3_bucket"`
	S3Region                string         `json:"s3_region"`
	S3BaseEndpoint          string         `json:"s3_base_endpoint"`
}

// parseJson loads configuration values from the JSON file named by the
// -c/-config flags into the provided Config. When no file is named, nothing
// happens. An unreadable or invalid file panics: a config file that was
// explicitly requested but cannot be used is a startup defect.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	config.StorePath = c.StorePath
	config.DatabaseDSN = c.DatabaseDSN
	config.SecretKey = c.SecretKey
	config.SessionValidityDuration = time.Duration(c.SessionValidityDuration.Duration)
	config.ExportDir = c.ExportDir
	config.S3RootUser = c.S3RootUser
	config.S3RootPassword = c.S3RootPassword
	config.S3Bucket = c.S3Bucket
	config.S3Region = c.S3Region
	config.S3BaseEndpoint = c.S3BaseEndpoint
}
