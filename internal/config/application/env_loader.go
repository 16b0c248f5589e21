package application

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/joho/godotenv"

	"zbxstats/internal/shared/logger"
)

// DefaultEnvFile is read when no env file is named
const DefaultEnvFile = ".env"

// LoadEnvFile exports the variables of a dotenv file that are not already set
// in the environment and returns their names. A missing default file is not an
// error; a missing file that was asked for by name is.
func LoadEnvFile(logger logger.Logger, envFile string) ([]string, error) {
	explicit := envFile != "" && envFile != DefaultEnvFile
	if envFile == "" {
		envFile = DefaultEnvFile
	}

	values, err := godotenv.Read(envFile)
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		logger.Debug("No .env file found", "path", envFile)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read env file %s: %w", envFile, err)
	}

	var applied []string
	for key, value := range values {
		if _, set := os.LookupEnv(key); set {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return applied, fmt.Errorf("failed to export %s: %w", key, err)
		}
		applied = append(applied, key)
	}
	sort.Strings(applied)

	logger.Debug("Loaded .env file", "path", envFile, "applied", len(applied), "skipped", len(values)-len(applied))
	return applied, nil
}
