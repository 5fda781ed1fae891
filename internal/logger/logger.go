package logger

import (
	"grammable/configs"
	"os"

	log "github.com/sirupsen/logrus"
)

// Configure applies log.level and log.format to the standard logrus logger.
func Configure(config *configs.Config) {
	log.SetOutput(os.Stdout)

	switch config.Viper.GetString("log.format") {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	default:
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	level, err := log.ParseLevel(config.Viper.GetString("log.level"))
	if err != nil {
		log.Warnf("Unknown log level %q, falling back to info", config.Viper.GetString("log.level"))
		level = log.InfoLevel
	}
	log.SetLevel(level)
}
