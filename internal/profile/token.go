package profile

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadToken reads the named environment variable after loading .env.local and
// .env from the working directory. Variables already set in the environment win.
func LoadToken(envName string) string {
	if envName == "" {
		envName = "GITHUB_TOKEN"
	}
	for _, file := range []string{".env.local", ".env"} {
		if _, err := os.Stat(file); err == nil {
			_ = godotenv.Load(file)
		}
	}
	return os.Getenv(envName)
}
