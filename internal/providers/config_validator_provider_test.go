package providers

import (
	"stationd/internal/structures"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() *structures.Config {
	return &structures.Config{
		WebServer: structures.Server{
			Host: "127.0.0.1",
			Port: 8711,
		},
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   "/tmp/logs",
		},
		Catalog: structures.CatalogConfig{
			SrvDomain:      "radio-browser.info",
			FallbackHost:   "all.api.radio-browser.info",
			Scheme:         "https",
			UserAgent:      "stationd/1.0",
			RequestTimeout: 10 * time.Second,
		},
		Starred: structures.StarredConfig{
			FilePath:        "/tmp/stationd/starred.json",
			RefreshInterval: time.Hour,
		},
		Source: structures.SourceConfig{
			PageSize: 50,
			MaxOpen:  64,
		},
		Search: structures.SearchConfig{
			Debounce: 500 * time.Millisecond,
		},
	}
}

func TestConfigValidator_ValidConfig(t *testing.T) {
	v := NewCnfValidator(validConfig())
	assert.NoError(t, v.Validate())
}

func TestConfigValidator_EmptyHost(t *testing.T) {
	c := validConfig()
	c.WebServer.Host = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_ZeroPort(t *testing.T) {
	c := validConfig()
	c.WebServer.Port = 0
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_EmptyLogLevel(t *testing.T) {
	c := validConfig()
	c.Logger.Level = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_InvalidLogLevel(t *testing.T) {
	c := validConfig()
	c.Logger.Level = "verbose"
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_UnknownScheme(t *testing.T) {
	c := validConfig()
	c.Catalog.Scheme = "ftp"
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_PageSizeTooLarge(t *testing.T) {
	c := validConfig()
	c.Source.PageSize = 501
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_MissingStarredFile(t *testing.T) {
	c := validConfig()
	c.Starred.FilePath = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}
