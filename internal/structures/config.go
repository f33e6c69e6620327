package structures

import (
	"net/http"
	"time"
)

const (
	BackendMemory = "memory"
	BackendMongo  = "mongo"
	BackendRedis  = "redis"
)

type CliFlags struct {
	ConfigPath string
	DebugMode  bool
	Console    bool
}

type Route struct {
	Url     string
	Handler http.Handler
}

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type Persistence struct {
	FilePath     string        `yaml:"filePath" validate:"required|unixPath"`
	SaveInterval time.Duration `yaml:"saveInterval" validate:"required|min:1"`
}

type LoggerConfig struct {
	Level      string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode       uint32 `yaml:"mode" validate:"required|uint"`
	Dir        string `yaml:"dir" validate:"required|unixPath"`
	MaxSizeMB  int    `yaml:"maxSizeMB"`
	MaxBackups int    `yaml:"maxBackups"`
}

type MetadataConfig struct {
	BaseURL       string        `yaml:"baseURL" validate:"required|fullUrl"`
	ImageBaseURL  string        `yaml:"imageBaseURL" validate:"required|fullUrl"`
	Token         string        `yaml:"token" validate:"required"`
	Timeout       time.Duration `yaml:"timeout"`
	TrailerPolicy string        `yaml:"trailerPolicy" validate:"in:official,official-trailer,official-title"`
}

type MongoConfig struct {
	URI        string `yaml:"uri"`
	Database   string `yaml:"database"`
	Collection string `yaml:"collection"`
}

type RedisConfig struct {
	Addr      string `yaml:"addr"`
	Password  string `yaml:"password"`
	DB        int    `yaml:"db"`
	KeyPrefix string `yaml:"keyPrefix"`
}

type PopularityConfig struct {
	Backend       string      `yaml:"backend" validate:"required|in:memory,mongo,redis"`
	TrendingLimit int         `yaml:"trendingLimit" validate:"required|min:1"`
	Mongo         MongoConfig `yaml:"mongo"`
	Redis         RedisConfig `yaml:"redis"`
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
	Enabled         bool          `yaml:"enabled"`
	RefreshInterval time.Duration `yaml:"refreshInterval"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	WebServer   Server           `yaml:"webServer"`
	Logger      LoggerConfig     `yaml:"logger"`
	Metadata    MetadataConfig   `yaml:"metadata"`
	Popularity  PopularityConfig `yaml:"popularity"`
	Persistence Persistence      `yaml:"persistence"`
	Search      SearchConfig     `yaml:"search"`
	Cache       CacheConfig      `yaml:"cache"`
	Metrics     MetricsConfig    `yaml:"metrics"`
}
