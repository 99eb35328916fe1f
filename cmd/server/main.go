package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/joeshaw/envdecode"
	"github.com/minaorangina/uno/server"
	"github.com/minaorangina/uno/session"
)

type config struct {
	Port int `env:"PORT,default=8000"`
}

func main() {
	var cfg config
	if err := envdecode.Decode(&cfg); err != nil {
		log.Fatal(err.Error())
	}

	manager := session.NewManager()
	s := server.NewServer(manager)

	log.Printf("Listening on port %d...", cfg.Port)
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%d", cfg.Port), s))
}
