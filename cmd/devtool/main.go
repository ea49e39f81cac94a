package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	registry := NewRegistry(
		&MigrateCommand{},
		&WaitForDBCommand{},
		&HealthCheckCommand{},
		&RunJobCommand{},
		&ResetCommand{},
	)

	if err := registry.Dispatch(os.Args[1:]); err != nil {
		PrintError("%v", err)
		if errors.Is(err, errUnknownCommand) {
			registry.PrintHelp()
		}
		os.Exit(1)
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func apiURL() string {
	return getEnv("API_URL", fmt.Sprintf("http://localhost:%s", getEnv("PORT", "8080")))
}
