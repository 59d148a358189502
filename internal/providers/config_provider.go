package providers

import (
	"fmt"
	"github.com/spf13/viper"
	"path/filepath"
	"stationd/internal/structures"
	"strings"
	"time"
)

const ServersEnv = "STATIOND_SERVERS"

func setDefaults() {
	viper.SetDefault("webServer.host", "127.0.0.1")
	viper.SetDefault("webServer.port", 8711)
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.mode", 0644)
	viper.SetDefault("catalog.srvDomain", "radio-browser.info")
	viper.SetDefault("catalog.fallbackHost", "all.api.radio-browser.info")
	viper.SetDefault("catalog.scheme", "https")
	viper.SetDefault("catalog.userAgent", "stationd/1.0")
	viper.SetDefault("catalog.requestTimeout", 10*time.Second)
	viper.SetDefault("starred.refreshInterval", 6*time.Hour)
	viper.SetDefault("source.pageSize", 50)
	viper.SetDefault("source.maxOpen", 64)
	viper.SetDefault("search.debounce", 500*time.Millisecond)
	viper.SetDefault("cache.ttl", 5*time.Minute)
}

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")
	setDefaults()

	viper.BindEnv("catalog.servers", ServersEnv)
	viper.BindEnv("logger.level", "STATIOND_LOG_LEVEL")
	viper.BindEnv("starred.filePath", "STATIOND_STARRED_FILE")
	viper.BindEnv("cache.enabled", "STATIOND_CACHE_ENABLED")
	viper.BindEnv("cache.size", "STATIOND_CACHE_SIZE")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "StationDirectoryDaemon"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}

// SplitServers turns the colon-separated override into a host list,
// dropping blanks and duplicates while keeping order.
func SplitServers(raw string) []string {
	seen := make(map[string]struct{})
	var hosts []string
	for _, h := range strings.Split(raw, ":") {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		if _, ok := seen[h]; ok {
			continue
		}
		seen[h] = struct{}{}
		hosts = append(hosts, h)
	}
	return hosts
}
