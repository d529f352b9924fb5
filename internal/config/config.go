package config

import (
	"flag"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	RunAddress      string
	BotToken        string
	FiltersPath     string
	DatabaseURI     string
	GeocoderAddress string
	GeocoderCountry string
	QueueSize       int
}

func New() *Config {
	// Optional .env for local runs; real deployments set the environment.
	_ = godotenv.Load()

	cfg := &Config{}

	flag.StringVar(&cfg.RunAddress, "a", "localhost:8080", "ingest server address and port")
	flag.StringVar(&cfg.BotToken, "t", "", "telegram bot token")
	flag.StringVar(&cfg.FiltersPath, "f", "filters.json", "path to the filter store file")
	flag.StringVar(&cfg.DatabaseURI, "d", "", "database URI (optional, enables the Postgres filter store)")
	flag.StringVar(&cfg.GeocoderAddress, "g", "https://nominatim.openstreetmap.org", "geocoding service address")
	flag.StringVar(&cfg.GeocoderCountry, "c", "de", "countrycodes filter for geocoding, empty to disable")
	flag.IntVar(&cfg.QueueSize, "q", 64, "message queue capacity")
	flag.Parse()

	cfg.RunAddress = getEnv("RUN_ADDRESS", cfg.RunAddress)
	cfg.BotToken = getEnv("BOT_TOKEN", cfg.BotToken)
	cfg.FiltersPath = getEnv("FILTERS_PATH", cfg.FiltersPath)
	cfg.DatabaseURI = getEnv("DATABASE_URI", cfg.DatabaseURI)
	cfg.GeocoderAddress = getEnv("GEOCODER_ADDRESS", cfg.GeocoderAddress)
	cfg.GeocoderCountry = getEnv("GEOCODER_COUNTRY", cfg.GeocoderCountry)

	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
