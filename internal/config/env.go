package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Defaults used when neither flags nor environment provide a value.
const (
	DefaultDataPath   = "data/sp500_data.csv"
	DefaultLogLevel   = "info"
	DefaultListenAddr = ":8080"
)

// Environment holds process-level settings read from the environment
type Environment struct {
	DataPath   string
	LogLevel   string
	ListenAddr string
}

// LoadEnvironment reads optional .env files, then DCA_* variables.
// Variables already set in the process environment win over file values.
// Missing files are ignored.
func LoadEnvironment(files ...string) (Environment, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Environment{}, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	return Environment{
		DataPath:   getEnv("DCA_DATA_PATH", DefaultDataPath),
		LogLevel:   getEnv("DCA_LOG_LEVEL", DefaultLogLevel),
		ListenAddr: getEnv("DCA_LISTEN_ADDR", DefaultListenAddr),
	}, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
