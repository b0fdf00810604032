package main

import (
	"log"
	"net/http"
	"os"

	"royal235/internal/relay"
)

func main() {
	srv := relay.NewServer()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", srv.HandleWebSocket)
	mux.HandleFunc("/", srv.HandleHealth)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	addr := ":" + port

	log.Printf("[Server] Starting relay on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("[Server] Failed to start: %v", err)
	}
}
