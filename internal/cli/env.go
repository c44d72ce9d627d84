package cli

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

const (
	envKey    = "SEMANTRIA_KEY"
	envSecret = "SEMANTRIA_SECRET"
	envApp    = "SEMANTRIA_APP"
	envFormat = "SEMANTRIA_FORMAT"
	envHost   = "SEMANTRIA_HOST"
)

// loadDotEnv loads .env from the working directory. Variables already set
// in the environment are not overridden, and a missing file is not an error.
func loadDotEnv() {
	cwd, err := os.Getwd()
	if err != nil {
		return
	}
	_ = godotenv.Load(filepath.Join(cwd, ".env"))
}
