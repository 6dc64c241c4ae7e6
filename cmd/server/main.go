package main

import (
	"log"

	transport "github.com/Zed-Kryp/BlogSphere/internal/transport/http"
)

func main() {
	if err := transport.Run(); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
