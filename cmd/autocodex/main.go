// Package main is the entry point for the autocodex CLI.
package main

import (
	"fmt"
	"os"

	"github.com/docu3c/autocodex/cmd"
	"github.com/docu3c/autocodex/internal/iocache"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env if present so tokens can live outside the shell profile.
	_ = godotenv.Load()

	cmd.SetCacheManager(iocache.Manager)

	err := cmd.Execute()
	iocache.CloseStores()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
