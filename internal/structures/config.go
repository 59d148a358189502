package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

// CatalogConfig describes how the fleet of catalog API servers is found and talked to.
// Servers is a colon-separated list; when set, discovery is skipped entirely.
type CatalogConfig struct {
	Servers        string        `yaml:"servers"`
	SrvDomain      string        `yaml:"srvDomain" validate:"required"`
	FallbackHost   string        `yaml:"fallbackHost" validate:"required"`
	Scheme         string        `yaml:"scheme" validate:"required|in:http,https"`
	UserAgent      string        `yaml:"userAgent" validate:"required"`
	RequestTimeout time.Duration `yaml:"requestTimeout" validate:"required|min:1"`
}

type StarredConfig struct {
	FilePath        string        `yaml:"filePath" validate:"required|unixPath"`
	RefreshInterval time.Duration `yaml:"refreshInterval"`
}

type SourceConfig struct {
	PageSize int `yaml:"pageSize" validate:"required|min:1|max:500"`
	MaxOpen  int `yaml:"maxOpen" validate:"required|min:1"`
}

type SearchConfig struct {
	Debounce time.Duration `yaml:"debounce" validate:"required|min:1"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName   string
	Debug     bool
	Path      string
	WebServer Server        `yaml:"webServer"`
	Logger    LoggerConfig  `yaml:"logger"`
	Catalog   CatalogConfig `yaml:"catalog"`
	Starred   StarredConfig `yaml:"starred"`
	Source    SourceConfig  `yaml:"source"`
	Search    SearchConfig  `yaml:"search"`
	Cache     CacheConfig   `yaml:"cache"`
	Metrics   MetricsConfig `yaml:"metrics"`
}
