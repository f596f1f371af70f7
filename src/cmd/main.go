package main

import (
	"log"

	"github.com/joho/godotenv"

	cfg "galleryserv/src/configuration"
	server "galleryserv/src/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, reading from environment variables")
	}
	config := cfg.ReadProperties()
	server.RunServer(config)
}
