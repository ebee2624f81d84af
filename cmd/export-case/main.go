// export-case downloads one submission from the API and packages it into the
// same archive the dashboard produces.
//
// Usage:
//
//	export-case -id 2024007 -server http://localhost:8080 -token <jwt> [-out dir]
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"registration-service-api/export"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	id := flag.String("id", "", "submission ID (e.g. 2024007)")
	server := flag.String("server", envOr("API_SERVER", "http://localhost:8080"), "API base URL")
	token := flag.String("token", os.Getenv("API_TOKEN"), "admin JWT")
	out := flag.String("out", ".", "output directory")
	flag.Parse()

	if *id == "" {
		flag.Usage()
		os.Exit(2)
	}

	client := export.NewClient(*server, *token)
	record, err := client.FetchCase(*id)
	if errors.Is(err, export.ErrCaseNotFound) {
		log.Fatalf("Submission %s was not found", *id)
	}
	if err != nil {
		log.Fatalf("Failed to fetch submission %s: %v", *id, err)
	}

	target := filepath.Join(*out, export.ArchiveName(*id))
	file, err := os.Create(target)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", target, err)
	}

	if err := export.BuildArchive(record, file); err != nil {
		file.Close()
		os.Remove(target)
		log.Fatalf("Failed to build archive for %s: %v", *id, err)
	}
	if err := file.Close(); err != nil {
		log.Fatalf("Failed to finish %s: %v", target, err)
	}

	fmt.Printf("Archive written to %s\n", target)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
