package providers

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/StormKing969/movie-review-app/internal/structures"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("webServer.host", "0.0.0.0")
	v.SetDefault("webServer.port", 8080)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", 0644)
	v.SetDefault("logger.maxSizeMB", 50)
	v.SetDefault("logger.maxBackups", 3)
	v.SetDefault("metadata.baseURL", "https://api.themoviedb.org/3")
	v.SetDefault("metadata.imageBaseURL", "https://image.tmdb.org")
	v.SetDefault("metadata.trailerPolicy", "official")
	v.SetDefault("popularity.backend", structures.BackendMemory)
	v.SetDefault("popularity.trendingLimit", 5)
	v.SetDefault("popularity.mongo.database", "movies")
	v.SetDefault("popularity.mongo.collection", "popularity")
	v.SetDefault("popularity.redis.keyPrefix", "mra:")
	v.SetDefault("persistence.saveInterval", 30*time.Second)
	v.SetDefault("search.debounce", time.Second)
	v.SetDefault("cache.ttl", 10*time.Second)
	v.SetDefault("metrics.refreshInterval", 15*time.Second)
}

// loadDotEnv reads an optional .env file next to the config file.
func loadDotEnv(configPath string) error {
	err := godotenv.Load(filepath.Join(filepath.Dir(configPath), ".env"))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("unable to load .env: %w", err)
	}
	return nil
}

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	if err := loadDotEnv(flags.ConfigPath); err != nil {
		return nil, err
	}

	v := viper.New()
	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")
	setDefaults(v)

	v.BindEnv("logger.level", "MRA_LOG_LEVEL")
	v.BindEnv("metadata.token", "MRA_TMDB_TOKEN", "TMDB_API_TOKEN", "VITE_TMDB_API_KEY")
	v.BindEnv("popularity.backend", "MRA_POPULARITY_BACKEND")
	v.BindEnv("popularity.trendingLimit", "MRA_TRENDING_LIMIT")
	v.BindEnv("popularity.mongo.uri", "MRA_MONGO_URI")
	v.BindEnv("popularity.redis.addr", "MRA_REDIS_ADDR")
	v.BindEnv("popularity.redis.password", "MRA_REDIS_PASSWORD")
	v.BindEnv("search.debounce", "MRA_SEARCH_DEBOUNCE")
	v.BindEnv("cache.enabled", "MRA_CACHE_ENABLED")
	v.BindEnv("cache.size", "MRA_CACHE_SIZE")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "MovieReviewApp"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
