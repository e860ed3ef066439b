package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// envFiles lists the dotenv files tried in order; the first one that loads wins.
var envFiles = []string{".env", ".env.local"}

// loadEnvFile merges variables from the first readable dotenv file into the process
// environment. Existing process environment variables are not overwritten.
func loadEnvFile() error {
	for _, envPath := range envFiles {
		if _, err := os.Stat(envPath); err != nil {
			continue
		}
		if err := godotenv.Load(envPath); err != nil {
			return fmt.Errorf("load %s: %w", envPath, err)
		}
		fmt.Fprintf(os.Stderr, "Loaded environment variables from %s\n", envPath)
		return nil
	}
	return fmt.Errorf("no .env file found")
}
