package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"euclid-dex/cmd"
)

func main() {
	// .env is optional; real environment variables still apply
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
