// Command generate_demo creates a demo database with sample training data.
// Usage: go run cmd/generate_demo/main.go [-db path/to/demo.db]
package main

import (
	"flag"

	log "github.com/sirupsen/logrus"

	"github.com/mlahtinen/fitcomp/internal/demo"
)

const defaultDemoDatabasePath = "./demo/demo.db"

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	flag.Parse()

	log.Printf("Generating demo database at %s...", *dbPath)
	if err := demo.Generate(*dbPath); err != nil {
		log.Fatalf("Failed to generate demo database: %v", err)
	}
	log.Println("Demo database generated successfully!")
}
