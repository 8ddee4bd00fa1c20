// devicetel sends OTLP/JSON telemetry from the command line and runs a small
// traced HTTP and MQTT endpoint for device experiments.
package main

import (
	"os"

	"github.com/joho/godotenv"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	// A .env file is optional; DEVICETEL_* variables may come from the shell.
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
