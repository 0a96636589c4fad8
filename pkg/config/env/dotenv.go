package env

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

const PathVar = "ENV_PATH"

// LoadDotEnv loads variables from a .env file without overriding ones already set.
// ENV_PATH takes precedence over defaultPath. A missing file is an error only in
// local mode (env "local" or empty).
func LoadDotEnv(env string, defaultPath string) error {
	envPath := os.Getenv(PathVar)
	if envPath == "" {
		slog.Debug("ENV_PATH is not set, using default path", "defaultPath", defaultPath)
		envPath = defaultPath
	}

	err := godotenv.Load(envPath)
	if err != nil {
		if env == "local" || env == "" {
			return fmt.Errorf("load %s: %w", envPath, err)
		}
		slog.Debug("Skipping .env ...", "path", envPath)
	}

	return nil
}
