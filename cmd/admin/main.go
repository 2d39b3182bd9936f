package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	// a missing .env is fine; flags fall back to the process environment
	_ = godotenv.Load()

	if err := newApp().Run(os.Args); err != nil {
		logrus.WithError(err).Error("command failed")
		os.Exit(1)
	}
}
