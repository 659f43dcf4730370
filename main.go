package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mlahtinen/fitcomp/internal/config"
	"github.com/mlahtinen/fitcomp/internal/demo"
	"github.com/mlahtinen/fitcomp/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	// If no arguments or "serve" command, run the HTTP server
	if len(os.Args) < 2 || os.Args[1] == "serve" {
		cfg := config.NewConfig()
		entrypoint.Run(cfg, Version)
		return
	}

	switch os.Args[1] {
	case "seed":
		fs := flag.NewFlagSet("seed", flag.ExitOnError)
		dbPath := fs.String("db", config.DefaultDatabasePath, "path to the database file to seed")
		fs.Parse(os.Args[2:])

		if err := demo.Generate(*dbPath); err != nil {
			fmt.Fprintf(os.Stderr, "Seeding failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Seeded database at %s\n", *dbPath)

	case "version":
		fmt.Printf("fitcomp %s (%s)\n", Version, Commit)

	case "-h", "--help", "help":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  serve    Start the HTTP server (default if no command given)\n")
	fmt.Fprintf(os.Stderr, "  seed     Replace the database with sample training data\n")
	fmt.Fprintf(os.Stderr, "  version  Print version information\n")
}
