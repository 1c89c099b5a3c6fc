package api

import (
	"github.com/mrcliffo/nfl-market-pulse/logging"
	"github.com/mrcliffo/nfl-market-pulse/markets"
	"github.com/spf13/viper"
	"strings"
	"sync"
	"time"
)

const (
	BackendMemory   = "memory"
	BackendDynamoDB = "dynamodb"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

type Config struct {
	StorageConfig
	ServerConfig
	UpstreamConfig
	LoggingConfig
}

type StorageConfig struct {
	Backend           string
	TableNameVotes    string
	TableNameCounters string
	DynamoEndpoint    string
	PostgresDSN       string
	SQLitePath        string
}

type ServerConfig struct {
	Port int
}

type UpstreamConfig struct {
	GammaURL       string
	ClobURL        string
	Timeout        time.Duration
	PageSize       int
	MaxConcurrency int
	Keywords       []string
}

type LoggingConfig struct {
	Level string
	File  string
}

var settingsOnce sync.Once

func ReadConfig() *Config {

	var conf = &Config{
		StorageConfig: StorageConfig{
			Backend:           strings.ToLower(getStringOrDefault("storage.backend", BackendMemory)),
			TableNameVotes:    getStringOrDefault("storage.tableNameVotes", "MarketPulseVotes"),
			TableNameCounters: getStringOrDefault("storage.tableNameCounters", "MarketPulseCounters"),
			DynamoEndpoint:    viper.GetString("storage.dynamoEndpoint"),
			PostgresDSN:       viper.GetString("storage.postgresDSN"),
			SQLitePath:        getStringOrDefault("storage.sqlitePath", "data/votes.db"),
		},
		ServerConfig: ServerConfig{
			Port: getIntOrDefault("server.port", 3000),
		},
		UpstreamConfig: UpstreamConfig{
			GammaURL:       getStringOrDefault("upstream.gammaURL", markets.DefaultGammaURL),
			ClobURL:        getStringOrDefault("upstream.clobURL", markets.DefaultClobURL),
			Timeout:        getDurationOrDefault("upstream.timeout", markets.DefaultTimeout),
			PageSize:       getIntOrDefault("upstream.pageSize", markets.DefaultPageSize),
			MaxConcurrency: getIntOrDefault("upstream.maxConcurrency", markets.DefaultMaxConcurrency),
			Keywords:       getStringSliceOrDefault("upstream.keywords", markets.DefaultKeywords),
		},
		LoggingConfig: LoggingConfig{
			Level: getStringOrDefault("logging.level", "info"),
			File:  viper.GetString("logging.file"),
		},
	}

	settingsOnce.Do(func() {
		logging.Log.Print("Reading settings!")
	})

	return conf
}

func getIntOrDefault(name string, def int) int {
	if viper.IsSet(name) {
		v := viper.GetInt(name)
		logging.Log.Printf("found '%s' in viper", name)
		return v
	}
	logging.Log.Printf("could not find '%s' in viper! Returning default", name)
	return def
}

func getStringOrDefault(name string, def string) string {
	if viper.IsSet(name) {
		v := viper.GetString(name)
		logging.Log.Printf("found '%s' in viper", name)
		return v
	}
	logging.Log.Printf("could not find '%s' in viper! Returning default", name)
	return def
}

func getDurationOrDefault(name string, def time.Duration) time.Duration {
	if viper.IsSet(name) {
		v := viper.GetDuration(name)
		logging.Log.Printf("found '%s' in viper", name)
		return v
	}
	logging.Log.Printf("could not find '%s' in viper! Returning default", name)
	return def
}

// getStringSliceOrDefault also accepts a comma separated string, which is how
// lists arrive from environment variables.
func getStringSliceOrDefault(name string, def []string) []string {
	if !viper.IsSet(name) {
		logging.Log.Printf("could not find '%s' in viper! Returning default", name)
		return def
	}
	logging.Log.Printf("found '%s' in viper", name)

	var out []string
	for _, item := range viper.GetStringSlice(name) {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
