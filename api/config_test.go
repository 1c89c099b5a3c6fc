package api

import (
	"github.com/mrcliffo/nfl-market-pulse/logging"
	"github.com/mrcliffo/nfl-market-pulse/markets"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"strings"
	"testing"
	"time"
)

func resetViper(t *testing.T) {
	t.Helper()
	logging.Log = logrus.New()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestReadConfig(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		resetViper(t)

		conf := ReadConfig()
		assert.Equal(t, BackendMemory, conf.Backend)
		assert.Equal(t, 3000, conf.Port)
		assert.Equal(t, markets.DefaultGammaURL, conf.GammaURL)
		assert.Equal(t, markets.DefaultClobURL, conf.ClobURL)
		assert.Equal(t, 10*time.Second, conf.Timeout)
		assert.Equal(t, 100, conf.PageSize)
		assert.Equal(t, 8, conf.MaxConcurrency)
		assert.Equal(t, markets.DefaultKeywords, conf.Keywords)
		assert.Equal(t, "info", conf.Level)
	})

	t.Run("Values from config", func(t *testing.T) {
		resetViper(t)
		viper.Set("storage.backend", "Postgres")
		viper.Set("storage.postgresDSN", "postgres://localhost/pulse")
		viper.Set("server.port", 8080)
		viper.Set("upstream.timeout", "3s")
		viper.Set("upstream.keywords", []string{"Playoffs", "Wild Card"})

		conf := ReadConfig()
		assert.Equal(t, BackendPostgres, conf.Backend, "backend name is case-insensitive")
		assert.Equal(t, "postgres://localhost/pulse", conf.PostgresDSN)
		assert.Equal(t, 8080, conf.Port)
		assert.Equal(t, 3*time.Second, conf.Timeout)
		assert.Equal(t, []string{"Playoffs", "Wild Card"}, conf.Keywords)
	})

	t.Run("Values from environment", func(t *testing.T) {
		resetViper(t)
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.AutomaticEnv()
		t.Setenv("UPSTREAM_KEYWORDS", "NFL, Draft")
		t.Setenv("UPSTREAM_MAXCONCURRENCY", "2")

		conf := ReadConfig()
		assert.Equal(t, []string{"NFL", "Draft"}, conf.Keywords)
		assert.Equal(t, 2, conf.MaxConcurrency)
	})
}
