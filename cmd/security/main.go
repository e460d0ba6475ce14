package main

import (
	"log"

	"github.com/hearthsocial/hearth/internal/security/app"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("security service: %v", err)
	}
}

func run() error {
	application, err := app.New(app.LoadConfig())
	if err != nil {
		return err
	}
	return application.Run()
}
