package main

import (
	"log"

	"github.com/22kyasue/adlottery/internal/app"
)

func main() {
	server := app.NewServer()
	log.Fatal(server.Start())
}
