package main

import (
	"os"

	"github.com/spigell/shortlister/cmd"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists. Secrets may also come from files.
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
