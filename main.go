// @title NFL Market Pulse API
// @version 1.0
// @description Crowd sentiment votes on NFL prediction markets, with a consolidated Polymarket feed
package main

import (
	_ "github.com/mrcliffo/nfl-market-pulse/docs"

	"errors"
	"github.com/joho/godotenv"
	"github.com/mrcliffo/nfl-market-pulse/api"
	"github.com/mrcliffo/nfl-market-pulse/logging"
	"github.com/spf13/viper"
	"strings"
)

func main() {
	logging.BoostrapLogger()

	// .env is optional; real environment variables win
	if err := godotenv.Load(); err != nil {
		logging.Log.Debugf("no .env file loaded: %v", err)
	}

	// Load env
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			logging.Log.Errorf("Failed to read config file: %v", err)
			panic("Failed to read config file: " + err.Error())
		}
		logging.Log.Warn("config.yaml not found, using defaults and environment")
	}

	// Read config
	config := api.ReadConfig()
	logging.Configure(config.Level, config.File)

	// Start the service (lambda, or a local listener when APP_ENV=local)
	service := api.NewServer(config)
	service.Start()
}
