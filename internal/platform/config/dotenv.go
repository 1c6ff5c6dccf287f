package config

import (
	"os"

	"github.com/habibaehabb05/Factify/internal/platform/logger"

	"github.com/joho/godotenv"
)

// DefaultDotenvPaths are probed in order when LoadDotenv gets no paths
var DefaultDotenvPaths = []string{".env", "../.env", "../../.env"}

// LoadDotenv loads the first readable .env file from paths
// variables already present in the process env are never overridden
// returns the path that was loaded or "" when none was found
func LoadDotenv(paths ...string) string {
	if len(paths) == 0 {
		paths = DefaultDotenvPaths
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			logger.Get().Warn().Err(err).Str("path", p).Msg("dotenv parse failed")
			continue
		}
		return p
	}
	return ""
}
