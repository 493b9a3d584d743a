package main

import (
	"log"

	"github.com/wernert71/fnaf-browser-game/internal/server"
)

func main() {
	if err := server.Run(); err != nil {
		log.Fatal(err.Error())
	}
}
