// Command demoserver serves the fixture site used to try webshot locally.
// Usage: go run ./cmd/demoserver [port]
// Default port: 9999
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/raysh454/webshot/internal/demoserver"
	"github.com/raysh454/webshot/internal/logging"
)

func main() {
	cfg := demoserver.DefaultConfig()

	// Optional: custom port from command line
	if len(os.Args) > 1 {
		port, err := strconv.Atoi(os.Args[1])
		if err != nil || port < 1 || port > 65535 {
			log.Fatalf("Invalid port: %s", os.Args[1])
		}
		cfg.Port = port
	}

	logger := logging.NewStdoutLogger("demoserver")
	server := demoserver.NewDemoServer(cfg, logger)

	fmt.Println("Fixture pages:")
	for _, p := range demoserver.GetAllPages() {
		fmt.Printf("  http://localhost:%d%-12s %s\n", cfg.Port, p.Path, p.Description)
	}
	fmt.Println()
	fmt.Printf("Try: webshot http://localhost:%d/ --selector \"#hero\" --output hero\n\n", cfg.Port)

	if err := server.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
