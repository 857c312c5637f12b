package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"cmd",
		"-f", "/data/doc.json", "-d", "postgres://db", "-s", "secret",
		"-t", "90", "-o", "/out", "-u", "user", "-p", "password",
		"-b", "bucket", "-g", "us-west-1", "-e", "http://endpoint",
	}

	config := &Config{}
	parseFlags(config)

	assert.Equal(t, &Config{
		StorePath:               "/data/doc.json",
		DatabaseDSN:             "postgres://db",
		SecretKey:               "secret",
		SessionValidityDuration: 90 * time.Minute,
		ExportDir:               "/out",
		S3RootUser:              "user",
		S3RootPassword:          "password",
		S3Bucket:                "bucket",
		S3Region:                "us-west-1",
		S3BaseEndpoint:          "http://endpoint",
	}, config)
}

func TestParseFlagsKeepsDefaults(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"cmd"}

	config := &Config{}
	config.LoadDefaults()
	parseFlags(config)

	assert.Equal(t, "data/patentcert.json", config.StorePath)
	assert.Equal(t, 8*time.Hour, config.SessionValidityDuration)
}
