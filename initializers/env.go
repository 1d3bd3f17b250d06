package initializers

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// LoadEnv loads a .env file when present. Variables already set in the
// environment win over the file.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Failed to load .env file: %v", err)
			return
		}
		log.Println("No .env file found, using process environment")
	}

	for _, key := range []string{"DB_URL", "SECRET"} {
		if os.Getenv(key) == "" {
			log.Printf("WARNING: %s is not set", key)
		}
	}
}
