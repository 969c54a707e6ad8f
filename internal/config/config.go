package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// LoadEnv loads environment variables from a .env file in the working
// directory or its parent, if one exists. Variables already set in the
// environment win over the file. It returns the file that was loaded, or ""
// when none was found.
func LoadEnv() (string, error) {
	for _, candidate := range []string{".env", filepath.Join("..", ".env")} {
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		if err := godotenv.Load(candidate); err != nil {
			return candidate, err
		}
		return candidate, nil
	}
	return "", nil
}
