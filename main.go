// main is the entry point for the sizewatch CLI.
package main

import (
	"github.com/huangsam/sizewatch/cmd"
	"github.com/huangsam/sizewatch/internal/contract"
	"github.com/huangsam/sizewatch/internal/history"
	"github.com/joho/godotenv"
)

func main() {
	// A .env file is optional; real environment variables take precedence
	_ = godotenv.Load()

	err := cmd.Execute()
	history.Close()
	if err != nil {
		contract.LogFatal("sizewatch", err)
	}
}
